package services

import (
	"time"

	"github.com/hazelbrook/doseline/internal/models"
)

type ConsumptionStore interface {
	Create(entry *models.ConsumptionLog) error
	Delete(entryID uint) error
	FindByItemDayUser(itemID uint, dayStart time.Time, dayEnd time.Time, userID uint) (models.ConsumptionLog, bool, error)
	ListByCycleRange(cycleID uint, from *time.Time, to *time.Time) ([]models.ConsumptionLog, error)
}

type ConsumptionService struct {
	logs     ConsumptionStore
	location *time.Location
}

func NewConsumptionService(logs ConsumptionStore, location *time.Location) *ConsumptionService {
	if location == nil {
		location = time.Local
	}
	return &ConsumptionService{logs: logs, location: location}
}

// ToggleConsumption flips the taken mark for (item, day) by this user: logging
// an already-logged day removes the entry, which is how the mobile checkmark
// behaves. Returns whether the item is now marked taken.
func (service *ConsumptionService) ToggleConsumption(cycleID uint, itemID uint, userID uint, day time.Time, now time.Time) (bool, error) {
	dayStart, dayEnd := DayRange(day, service.location)

	existing, found, err := service.logs.FindByItemDayUser(itemID, dayStart, dayEnd, userID)
	if err != nil {
		return false, err
	}
	if found {
		if err := service.logs.Delete(existing.ID); err != nil {
			return true, err
		}
		return false, nil
	}

	entry := models.ConsumptionLog{
		CycleID: cycleID,
		ItemID:  itemID,
		UserID:  userID,
		Date:    dayStart,
		TakenAt: now,
	}
	if err := service.logs.Create(&entry); err != nil {
		return false, err
	}
	return true, nil
}

func (service *ConsumptionService) ListLogs(cycleID uint, from *time.Time, to *time.Time) ([]models.ConsumptionLog, error) {
	var fromStart *time.Time
	var toEnd *time.Time
	if from != nil {
		start, _ := DayRange(*from, service.location)
		fromStart = &start
	}
	if to != nil {
		_, end := DayRange(*to, service.location)
		toEnd = &end
	}
	return service.logs.ListByCycleRange(cycleID, fromStart, toEnd)
}
