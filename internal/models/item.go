package models

import "time"

const (
	CategoryMedicine    = "medicine"
	CategoryFood        = "food"
	CategoryMaintenance = "maintenance"
	CategoryTreatment   = "treatment"
)

const (
	ScheduleEveryday      = "everyday"
	ScheduleEveryOtherDay = "every_other_day"
	ScheduleCustom        = "custom"
)

// Item is one medicine/food entry of a cycle. Its dose is either the constant
// Dose/Unit pair or the WeeklyDoses table, never both.
type Item struct {
	ID                uint     `gorm:"primaryKey"`
	CycleID           uint     `gorm:"not null;index"`
	Name              string   `gorm:"not null"`
	Category          string   `gorm:"not null"`
	Dose              *float64 `gorm:""`
	Unit              string   `gorm:"not null;default:''"`
	DisplayOrder      int      `gorm:"not null;default:0"`
	ScheduleType      string   `gorm:"not null;default:''"`
	ScheduleStartDate *time.Time
	ScheduleWeekdays  []int `gorm:"serializer:json"`
	WeeklyDoses       []WeeklyDose
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// WeeklyDose maps a 1-based treatment week to the dose that applies from that
// week on, until a later entry overrides it.
type WeeklyDose struct {
	ID     uint    `gorm:"primaryKey"`
	ItemID uint    `gorm:"not null;uniqueIndex:uidx_weekly_item_week"`
	Week   int     `gorm:"not null;uniqueIndex:uidx_weekly_item_week"`
	Dose   float64 `gorm:"not null"`
	Unit   string  `gorm:"not null;default:''"`
}

func KnownCategory(category string) bool {
	switch category {
	case CategoryMedicine, CategoryFood, CategoryMaintenance, CategoryTreatment:
		return true
	default:
		return false
	}
}

func KnownScheduleType(scheduleType string) bool {
	switch scheduleType {
	case "", ScheduleEveryday, ScheduleEveryOtherDay, ScheduleCustom:
		return true
	default:
		return false
	}
}
