package models

import "time"

type Cycle struct {
	ID                uint      `gorm:"primaryKey"`
	RoomID            uint      `gorm:"not null;index"`
	Number            int       `gorm:"not null"`
	PatientName       string    `gorm:"not null"`
	StartDate         time.Time `gorm:"type:date;not null"`
	FoodChallengeDate time.Time `gorm:"type:date;not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// MissedDose marks a skipped treatment day. Every recorded miss pushes the
// content of all later days back by one calendar day, since the skipped dose
// is made up the next day.
type MissedDose struct {
	ID      uint      `gorm:"primaryKey"`
	CycleID uint      `gorm:"not null;uniqueIndex:uidx_missed_cycle_date"`
	Date    time.Time `gorm:"type:date;not null;uniqueIndex:uidx_missed_cycle_date"`
}
