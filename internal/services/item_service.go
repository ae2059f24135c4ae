package services

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/hazelbrook/doseline/internal/models"
)

var (
	ErrItemNameRequired      = errors.New("item name required")
	ErrUnknownCategory       = errors.New("unknown item category")
	ErrUnknownScheduleType   = errors.New("unknown schedule type")
	ErrEmptyWeekdaySet       = errors.New("custom schedule needs at least one weekday")
	ErrInvalidWeekday        = errors.New("weekday must be 1 (Sunday) through 7 (Saturday)")
	ErrScheduleStartRequired = errors.New("every-other-day schedule needs a start date")
	ErrDoseConflict          = errors.New("item cannot have both a constant dose and a weekly table")
	ErrInvalidWeekNumber     = errors.New("weekly dose week must be positive")
)

type ItemStore interface {
	Create(item *models.Item) error
	Save(item *models.Item) error
	Delete(itemID uint) error
	FindByID(itemID uint) (models.Item, error)
	ListByCycle(cycleID uint) ([]models.Item, error)
	ReplaceWeeklyDoses(itemID uint, doses []models.WeeklyDose) error
	UpdateDisplayOrders(cycleID uint, orderedIDs []uint) error
}

type ItemService struct {
	items ItemStore
}

func NewItemService(items ItemStore) *ItemService {
	return &ItemService{items: items}
}

type ItemInput struct {
	Name              string
	Category          string
	Dose              *float64
	Unit              string
	ScheduleType      string
	ScheduleStartDate *time.Time
	ScheduleWeekdays  []int
	WeeklyDoses       []models.WeeklyDose
}

// ValidateItemInput rejects the states the core treats as errors-by-absence:
// an empty custom weekday set and a doubly-populated dose. Catching them here
// keeps the predicate and resolver free of error returns.
func ValidateItemInput(input ItemInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrItemNameRequired
	}
	if !models.KnownCategory(input.Category) {
		return ErrUnknownCategory
	}
	if !models.KnownScheduleType(input.ScheduleType) {
		return ErrUnknownScheduleType
	}

	switch input.ScheduleType {
	case models.ScheduleEveryOtherDay:
		if input.ScheduleStartDate == nil {
			return ErrScheduleStartRequired
		}
	case models.ScheduleCustom:
		if len(input.ScheduleWeekdays) == 0 {
			return ErrEmptyWeekdaySet
		}
		for _, weekday := range input.ScheduleWeekdays {
			if weekday < 1 || weekday > 7 {
				return ErrInvalidWeekday
			}
		}
	}

	if input.Dose != nil && len(input.WeeklyDoses) > 0 {
		return ErrDoseConflict
	}
	for _, weekly := range input.WeeklyDoses {
		if weekly.Week < 1 {
			return ErrInvalidWeekNumber
		}
	}
	return nil
}

func (service *ItemService) CreateItem(cycleID uint, input ItemInput) (models.Item, error) {
	if err := ValidateItemInput(input); err != nil {
		return models.Item{}, err
	}

	existing, err := service.items.ListByCycle(cycleID)
	if err != nil {
		return models.Item{}, err
	}

	item := models.Item{
		CycleID:           cycleID,
		Name:              strings.TrimSpace(input.Name),
		Category:          input.Category,
		Dose:              input.Dose,
		Unit:              input.Unit,
		DisplayOrder:      len(existing),
		ScheduleType:      input.ScheduleType,
		ScheduleStartDate: normalizedScheduleStart(input.ScheduleStartDate),
		ScheduleWeekdays:  sortedWeekdays(input.ScheduleWeekdays),
	}
	if err := service.items.Create(&item); err != nil {
		return models.Item{}, err
	}

	if len(input.WeeklyDoses) > 0 {
		if err := service.items.ReplaceWeeklyDoses(item.ID, input.WeeklyDoses); err != nil {
			return models.Item{}, err
		}
	}
	return service.items.FindByID(item.ID)
}

func (service *ItemService) UpdateItem(itemID uint, input ItemInput) (models.Item, error) {
	if err := ValidateItemInput(input); err != nil {
		return models.Item{}, err
	}

	item, err := service.items.FindByID(itemID)
	if err != nil {
		return models.Item{}, err
	}

	item.Name = strings.TrimSpace(input.Name)
	item.Category = input.Category
	item.Dose = input.Dose
	item.Unit = input.Unit
	item.ScheduleType = input.ScheduleType
	item.ScheduleStartDate = normalizedScheduleStart(input.ScheduleStartDate)
	item.ScheduleWeekdays = sortedWeekdays(input.ScheduleWeekdays)
	item.WeeklyDoses = nil
	if err := service.items.Save(&item); err != nil {
		return models.Item{}, err
	}

	if err := service.items.ReplaceWeeklyDoses(item.ID, input.WeeklyDoses); err != nil {
		return models.Item{}, err
	}
	return service.items.FindByID(item.ID)
}

func (service *ItemService) DeleteItem(itemID uint) error {
	return service.items.Delete(itemID)
}

func (service *ItemService) FindItem(itemID uint) (models.Item, error) {
	return service.items.FindByID(itemID)
}

func (service *ItemService) ListItems(cycleID uint) ([]models.Item, error) {
	return service.items.ListByCycle(cycleID)
}

func (service *ItemService) ReorderItems(cycleID uint, orderedIDs []uint) error {
	return service.items.UpdateDisplayOrders(cycleID, orderedIDs)
}

func normalizedScheduleStart(start *time.Time) *time.Time {
	if start == nil {
		return nil
	}
	normalized := dateOnly(*start)
	return &normalized
}

func sortedWeekdays(weekdays []int) []int {
	if len(weekdays) == 0 {
		return nil
	}
	unique := make(map[int]struct{}, len(weekdays))
	for _, weekday := range weekdays {
		unique[weekday] = struct{}{}
	}
	sorted := make([]int, 0, len(unique))
	for weekday := range unique {
		sorted = append(sorted, weekday)
	}
	sort.Ints(sorted)
	return sorted
}
