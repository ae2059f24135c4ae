package services

import "time"

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	return a.Format("2006-01-02") == b.Format("2006-01-02")
}

// daysBetween counts whole calendar days from a to b, negative when b is
// earlier. Both are truncated to midnight first so DST offsets cannot skew
// the division.
func daysBetween(a, b time.Time) int {
	from := dateOnly(a)
	to := dateOnly(b)
	return int(to.Sub(from).Hours() / 24)
}

// DayRange returns the [start, end] instants of the calendar day containing t
// in the given location.
func DayRange(t time.Time, location *time.Location) (time.Time, time.Time) {
	if location == nil {
		location = time.Local
	}
	local := t.In(location)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, location)
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return start, end
}
