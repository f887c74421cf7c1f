package weekend

import (
	"fmt"
	"strings"
	"time"
)

// IDLayout formats a weekend by its Saturday date.
const IDLayout = "2006-01-02"

const endOfDayNanos = int(999 * time.Millisecond)

// Window is the inclusive Saturday 00:00:00.000 to Sunday 23:59:59.999 interval
// of one weekend, in the location of the date it was derived from.
type Window struct {
	Start time.Time
	End   time.Time
}

// Containing returns the weekend of the next Saturday on or after t, using the
// weekday offset (6 - weekday + 7) % 7 where Sunday is 0. A Saturday maps to its
// own weekend; a Sunday maps to the following Saturday.
func Containing(t time.Time) Window {
	offset := (6 - int(t.Weekday()) + 7) % 7
	y, m, d := t.Date()
	return fromSaturday(time.Date(y, m, d+offset, 0, 0, 0, 0, t.Location()))
}

// Covering returns the weekend t belongs to when t is a Saturday or a Sunday,
// and the next weekend otherwise.
func Covering(t time.Time) Window {
	if t.Weekday() == time.Sunday {
		y, m, d := t.Date()
		return fromSaturday(time.Date(y, m, d-1, 0, 0, 0, 0, t.Location()))
	}
	return Containing(t)
}

// ParseID parses a Saturday date in IDLayout form into its weekend window.
func ParseID(id string, loc *time.Location) (Window, error) {
	if loc == nil {
		loc = time.Local
	}
	sat, err := time.ParseInLocation(IDLayout, strings.TrimSpace(id), loc)
	if err != nil {
		return Window{}, fmt.Errorf("parse weekend id %q: %w", id, err)
	}
	if sat.Weekday() != time.Saturday {
		return Window{}, fmt.Errorf("weekend id %q is a %s, expected a Saturday", id, sat.Weekday())
	}
	return fromSaturday(sat), nil
}

func fromSaturday(sat time.Time) Window {
	y, m, d := sat.Date()
	return Window{
		Start: time.Date(y, m, d, 0, 0, 0, 0, sat.Location()),
		End:   time.Date(y, m, d+1, 23, 59, 59, endOfDayNanos, sat.Location()),
	}
}

// Contains reports whether t lies in [Start, End], both ends inclusive.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// ID returns the Saturday of the window as YYYY-MM-DD.
func (w Window) ID() string {
	return w.Start.Format(IDLayout)
}

// Sunday returns midnight of the second day of the window.
func (w Window) Sunday() time.Time {
	y, m, d := w.Start.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, w.Start.Location())
}

// Label renders the window the way the selector shows it, e.g. "14 févr.–15 févr. 2026".
func (w Window) Label() string {
	sun := w.Sunday()
	return fmt.Sprintf("%02d %s–%02d %s %d",
		w.Start.Day(), shortMonthFR[w.Start.Month()-1],
		sun.Day(), shortMonthFR[sun.Month()-1],
		w.Start.Year(),
	)
}

// Months returns the month of Start and, when the weekend straddles a month
// boundary, the month of End.
func (w Window) Months() []Month {
	first := MonthOf(w.Start)
	last := MonthOf(w.End)
	if first == last {
		return []Month{first}
	}
	return []Month{first, last}
}

var shortMonthFR = [12]string{
	"janv.", "févr.", "mars", "avr.", "mai", "juin",
	"juil.", "août", "sept.", "oct.", "nov.", "déc.",
}
