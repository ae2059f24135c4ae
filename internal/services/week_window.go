package services

import "time"

// CurrentWeekIndex returns the zero-based treatment week containing now,
// negative when now is before the cycle start.
func CurrentWeekIndex(startDate time.Time, now time.Time) int {
	days := daysBetween(startDate, now)
	if days < 0 {
		return (days - 6) / 7
	}
	return days / 7
}

// WeekWindow computes the ordered calendar dates shown for one treatment week.
//
// Past weeks are historical fact: exactly 7 days, never moved. The current
// week is still catching up, so it keeps its start but grows by one trailing
// make-up day per missed dose inside it. Future weeks are already known to be
// pushed back: they shift forward by the number of missed doses in all earlier
// weeks and stay 7 days long. This asymmetry is deliberate; do not "simplify"
// it into a single shift rule.
func WeekWindow(startDate time.Time, weekOffset int, missedDates []time.Time, now time.Time) []time.Time {
	start := dateOnly(startDate).AddDate(0, 0, weekOffset*7)
	length := 7

	currentWeek := CurrentWeekIndex(startDate, now)
	switch {
	case weekOffset > currentWeek:
		start = start.AddDate(0, 0, countMissedBeforeWeek(startDate, missedDates, weekOffset))
	case weekOffset == currentWeek:
		length += countMissedInWeek(startDate, missedDates, weekOffset)
	}

	dates := make([]time.Time, 0, length)
	for offset := 0; offset < length; offset++ {
		dates = append(dates, start.AddDate(0, 0, offset))
	}
	return dates
}

func countMissedBeforeWeek(startDate time.Time, missedDates []time.Time, weekOffset int) int {
	count := 0
	for _, missed := range missedDates {
		week := daysBetween(startDate, missed) / 7
		if daysBetween(startDate, missed) >= 0 && week < weekOffset {
			count++
		}
	}
	return count
}

func countMissedInWeek(startDate time.Time, missedDates []time.Time, weekOffset int) int {
	count := 0
	for _, missed := range missedDates {
		days := daysBetween(startDate, missed)
		if days >= 0 && days/7 == weekOffset {
			count++
		}
	}
	return count
}
