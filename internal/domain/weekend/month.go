package weekend

import (
	"fmt"
	"strings"
	"time"
)

// MonthLayout is the identifier format of a monthly fixture collection.
const MonthLayout = "2006-01"

// DefaultUpcomingMonths is the current month plus the six following ones.
const DefaultUpcomingMonths = 7

// Month identifies a calendar month, e.g. "2026-02".
type Month struct {
	Year  int
	Month time.Month
}

func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

func ParseMonth(raw string) (Month, error) {
	value := strings.TrimSpace(raw)
	parsed, err := time.Parse(MonthLayout, value)
	if err != nil {
		return Month{}, fmt.Errorf("parse month %q: expected YYYY-MM", raw)
	}
	return MonthOf(parsed), nil
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// IsZero reports whether m is the zero Month.
func (m Month) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}

// AddMonths returns the month n months after m (n may be negative).
func (m Month) AddMonths(n int) Month {
	return MonthOf(time.Date(m.Year, m.Month+time.Month(n), 1, 0, 0, 0, 0, time.UTC))
}

// FirstDay returns midnight of the first day of the month in loc.
func (m Month) FirstDay(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, loc)
}

// LastDay returns midnight of the last day of the month in loc.
func (m Month) LastDay(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, loc)
}

// Label renders the month for the selector, e.g. "février 2026".
func (m Month) Label() string {
	if m.Month < time.January || m.Month > time.December {
		return m.String()
	}
	return fmt.Sprintf("%s %d", longMonthFR[m.Month-1], m.Year)
}

// UpcomingMonths lists count months starting with the month of now.
func UpcomingMonths(now time.Time, count int) []Month {
	if count <= 0 {
		return []Month{}
	}
	start := MonthOf(now)
	out := make([]Month, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, start.AddMonths(i))
	}
	return out
}

// ListMonthWeekends returns every weekend, partial or full, that overlaps m,
// in chronological order. A month starting on a Sunday includes the weekend
// whose Saturday is the last day of the previous month.
func ListMonthWeekends(m Month, loc *time.Location) []Window {
	first := m.FirstDay(loc)
	last := m.LastDay(loc)

	out := make([]Window, 0, 6)
	for w := Covering(first); !w.Start.After(last); w = Containing(w.Sunday().AddDate(0, 0, 1)) {
		out = append(out, w)
	}
	return out
}

// DefaultMonthWeekend picks the weekend preselected for m: the first weekend
// of m that is not over at now, so a Sunday keeps its own weekend. When every
// weekend of m is over, the last one is returned.
func DefaultMonthWeekend(m Month, now time.Time, loc *time.Location) Window {
	if loc == nil {
		loc = time.Local
	}
	weekends := ListMonthWeekends(m, loc)
	for _, w := range weekends {
		if !w.End.Before(now) {
			return w
		}
	}
	return weekends[len(weekends)-1]
}

var longMonthFR = [12]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}
