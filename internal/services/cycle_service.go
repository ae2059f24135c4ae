package services

import (
	"errors"
	"strconv"
	"time"

	"github.com/hazelbrook/doseline/internal/models"
)

var (
	ErrCycleDatesInverted  = errors.New("food challenge date before start date")
	ErrPatientNameRequired = errors.New("patient name required")
	ErrMissedDateOutside   = errors.New("missed dose date outside cycle")
)

type CycleStore interface {
	Create(cycle *models.Cycle) error
	Save(cycle *models.Cycle) error
	FindByID(cycleID uint) (models.Cycle, error)
	ListByRoom(roomID uint) ([]models.Cycle, error)
	MaxNumberForRoom(roomID uint) (int, error)
	CreateMissedDose(missed *models.MissedDose) error
	FindMissedDose(cycleID uint, dayStart time.Time, dayEnd time.Time) (models.MissedDose, bool, error)
	DeleteMissedDose(missedID uint) error
	ListMissedDoses(cycleID uint) ([]models.MissedDose, error)
}

type WeekItemStore interface {
	ListByCycle(cycleID uint) ([]models.Item, error)
}

type WeekLogStore interface {
	ListByCycleRange(cycleID uint, from *time.Time, to *time.Time) ([]models.ConsumptionLog, error)
}

type CycleService struct {
	cycles   CycleStore
	items    WeekItemStore
	logs     WeekLogStore
	location *time.Location
}

func NewCycleService(cycles CycleStore, items WeekItemStore, logs WeekLogStore, location *time.Location) *CycleService {
	if location == nil {
		location = time.Local
	}
	return &CycleService{
		cycles:   cycles,
		items:    items,
		logs:     logs,
		location: location,
	}
}

type CycleInput struct {
	PatientName       string
	StartDate         time.Time
	FoodChallengeDate time.Time
}

func (input CycleInput) validate() error {
	if input.PatientName == "" {
		return ErrPatientNameRequired
	}
	if input.FoodChallengeDate.Before(input.StartDate) {
		return ErrCycleDatesInverted
	}
	return nil
}

func (service *CycleService) CreateCycle(roomID uint, input CycleInput) (models.Cycle, error) {
	if err := input.validate(); err != nil {
		return models.Cycle{}, err
	}

	highest, err := service.cycles.MaxNumberForRoom(roomID)
	if err != nil {
		return models.Cycle{}, err
	}

	cycle := models.Cycle{
		RoomID:            roomID,
		Number:            highest + 1,
		PatientName:       input.PatientName,
		StartDate:         dateOnly(input.StartDate),
		FoodChallengeDate: dateOnly(input.FoodChallengeDate),
	}
	if err := service.cycles.Create(&cycle); err != nil {
		return models.Cycle{}, err
	}
	return cycle, nil
}

func (service *CycleService) UpdateCycle(cycleID uint, input CycleInput) (models.Cycle, error) {
	if err := input.validate(); err != nil {
		return models.Cycle{}, err
	}

	cycle, err := service.cycles.FindByID(cycleID)
	if err != nil {
		return models.Cycle{}, err
	}

	cycle.PatientName = input.PatientName
	cycle.StartDate = dateOnly(input.StartDate)
	cycle.FoodChallengeDate = dateOnly(input.FoodChallengeDate)
	if err := service.cycles.Save(&cycle); err != nil {
		return models.Cycle{}, err
	}
	return cycle, nil
}

func (service *CycleService) FindCycle(cycleID uint) (models.Cycle, error) {
	return service.cycles.FindByID(cycleID)
}

func (service *CycleService) ListCycles(roomID uint) ([]models.Cycle, error) {
	return service.cycles.ListByRoom(roomID)
}

// RecordMissedDose is idempotent per day: marking the same day twice returns
// the existing record instead of shifting the layout twice.
func (service *CycleService) RecordMissedDose(cycleID uint, day time.Time) (models.MissedDose, error) {
	cycle, err := service.cycles.FindByID(cycleID)
	if err != nil {
		return models.MissedDose{}, err
	}
	if dateOnly(day).Before(dateOnly(cycle.StartDate)) {
		return models.MissedDose{}, ErrMissedDateOutside
	}

	dayStart, dayEnd := DayRange(day, service.location)
	existing, found, err := service.cycles.FindMissedDose(cycleID, dayStart, dayEnd)
	if err != nil {
		return models.MissedDose{}, err
	}
	if found {
		return existing, nil
	}

	missed := models.MissedDose{CycleID: cycleID, Date: dayStart}
	if err := service.cycles.CreateMissedDose(&missed); err != nil {
		return models.MissedDose{}, err
	}
	return missed, nil
}

func (service *CycleService) RemoveMissedDose(cycleID uint, day time.Time) error {
	dayStart, dayEnd := DayRange(day, service.location)
	existing, found, err := service.cycles.FindMissedDose(cycleID, dayStart, dayEnd)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}
	return service.cycles.DeleteMissedDose(existing.ID)
}

func (service *CycleService) ListMissedDoses(cycleID uint) ([]models.MissedDose, error) {
	return service.cycles.ListMissedDoses(cycleID)
}

func (service *CycleService) missedDates(cycleID uint) ([]time.Time, error) {
	missed, err := service.cycles.ListMissedDoses(cycleID)
	if err != nil {
		return nil, err
	}
	dates := make([]time.Time, 0, len(missed))
	for _, record := range missed {
		dates = append(dates, record.Date)
	}
	return dates, nil
}

type WeekDay struct {
	Date     string `json:"date"`
	Weekday  string `json:"weekday"`
	IsToday  bool   `json:"is_today"`
	IsMakeUp bool   `json:"is_make_up"`
}

type WeekViewItem struct {
	ItemID      uint   `json:"item_id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	DoseDisplay string `json:"dose_display"`
	Due         []bool `json:"due"`
	Taken       []bool `json:"taken"`
}

type WeekView struct {
	Week  int            `json:"week"`
	Days  []WeekDay      `json:"days"`
	Items []WeekViewItem `json:"items"`
}

// BuildWeekView assembles everything the week screen shows: the (possibly
// shifted or extended) date window, and per item the resolved dose plus
// due/taken flags aligned with the window.
func (service *CycleService) BuildWeekView(cycle models.Cycle, weekOffset int, now time.Time) (WeekView, error) {
	missedDates, err := service.missedDates(cycle.ID)
	if err != nil {
		return WeekView{}, err
	}

	dates := WeekWindow(cycle.StartDate, weekOffset, missedDates, now)
	today := dateOnly(now.In(service.location))

	days := make([]WeekDay, 0, len(dates))
	for index, date := range dates {
		days = append(days, WeekDay{
			Date:     date.Format("2006-01-02"),
			Weekday:  date.Weekday().String(),
			IsToday:  sameDay(date, today),
			IsMakeUp: index >= 7,
		})
	}

	items, err := service.items.ListByCycle(cycle.ID)
	if err != nil {
		return WeekView{}, err
	}

	takenKeys, err := service.takenKeysInWindow(cycle.ID, dates)
	if err != nil {
		return WeekView{}, err
	}

	weekNumber := weekOffset + 1
	viewItems := make([]WeekViewItem, 0, len(items))
	for _, item := range items {
		viewItem := WeekViewItem{
			ItemID:   item.ID,
			Name:     item.Name,
			Category: item.Category,
			Due:      make([]bool, len(dates)),
			Taken:    make([]bool, len(dates)),
		}
		if resolved, ok := ResolveDose(item, weekNumber); ok {
			viewItem.DoseDisplay = resolved.Display()
		}
		for index, date := range dates {
			viewItem.Due[index] = ItemDueOn(item, date)
			viewItem.Taken[index] = takenKeys[consumptionKey(item.ID, date)]
		}
		viewItems = append(viewItems, viewItem)
	}

	return WeekView{
		Week:  weekNumber,
		Days:  days,
		Items: viewItems,
	}, nil
}

func (service *CycleService) takenKeysInWindow(cycleID uint, dates []time.Time) (map[string]bool, error) {
	if len(dates) == 0 {
		return map[string]bool{}, nil
	}

	from, _ := DayRange(dates[0], service.location)
	_, to := DayRange(dates[len(dates)-1], service.location)
	entries, err := service.logs.ListByCycleRange(cycleID, &from, &to)
	if err != nil {
		return nil, err
	}

	taken := make(map[string]bool, len(entries))
	for _, entry := range entries {
		taken[consumptionKey(entry.ItemID, entry.Date)] = true
	}
	return taken, nil
}

func consumptionKey(itemID uint, date time.Time) string {
	return date.Format("2006-01-02") + "#" + strconv.FormatUint(uint64(itemID), 10)
}
