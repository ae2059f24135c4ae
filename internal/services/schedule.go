package services

import (
	"time"

	"github.com/hazelbrook/doseline/internal/models"
)

// ItemDueOn reports whether an item is due on the given calendar day.
//
// Items without a configured schedule are due every day; older clients never
// wrote a schedule type, so the empty string keeps their items visible.
func ItemDueOn(item models.Item, day time.Time) bool {
	switch item.ScheduleType {
	case models.ScheduleEveryOtherDay:
		if item.ScheduleStartDate == nil {
			return true
		}
		diff := daysBetween(*item.ScheduleStartDate, day)
		if diff < 0 {
			diff = -diff
		}
		return diff%2 == 0
	case models.ScheduleCustom:
		// 1=Sunday .. 7=Saturday, matching how the weekday set is stored.
		weekday := int(dateOnly(day).Weekday()) + 1
		for _, configured := range item.ScheduleWeekdays {
			if configured == weekday {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// DueItemsOn filters items to those due on the given day, preserving order.
func DueItemsOn(items []models.Item, day time.Time) []models.Item {
	due := make([]models.Item, 0, len(items))
	for _, item := range items {
		if ItemDueOn(item, day) {
			due = append(due, item)
		}
	}
	return due
}
