package presenter

import (
	"strconv"
	"time"
)

var shortWeekdayFR = [7]string{"dim.", "lun.", "mar.", "mer.", "jeu.", "ven.", "sam."}

// FormatKickoff renders a kickoff as "sam. 14/02 18:00" in loc.
func FormatKickoff(t time.Time, loc *time.Location) string {
	local := t.In(loc)
	return shortWeekdayFR[local.Weekday()] + " " + local.Format("02/01 15:04")
}

func FormatKm(km float64) string {
	return strconv.FormatFloat(km, 'f', 1, 64)
}
