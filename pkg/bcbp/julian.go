package bcbp

import "time"

// ResolveDayOfYear converts a BCBP julian day-of-year (1..366) to an ISO
// calendar date in the UTC year of the reference instant. Day 1 is January 1.
//
// The reference instant must be supplied by the caller; this package never
// reads the wall clock. Boarding passes carry no year, so the resolved date is
// always placed in the reference year, even when that puts it in the past.
func ResolveDayOfYear(day int, ref time.Time) (string, bool) {
	if day < 1 || day > 366 {
		return "", false
	}
	year := ref.UTC().Year()
	date := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, day-1)
	return date.Format("2006-01-02"), true
}
