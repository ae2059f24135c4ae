package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey"`
	Name         string    `gorm:"not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	PlanID       string    `gorm:"not null;default:''"`
	GracePeriod  bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time `gorm:"not null"`
}
