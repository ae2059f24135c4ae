package models

import "time"

type Room struct {
	ID         uint      `gorm:"primaryKey"`
	Name       string    `gorm:"not null"`
	OwnerID    uint      `gorm:"not null;index"`
	InviteCode string    `gorm:"uniqueIndex;not null"`
	CreatedAt  time.Time `gorm:"not null"`
}

type RoomMember struct {
	ID       uint      `gorm:"primaryKey"`
	RoomID   uint      `gorm:"not null;uniqueIndex:uidx_room_user"`
	UserID   uint      `gorm:"not null;uniqueIndex:uidx_room_user"`
	IsAdmin  bool      `gorm:"not null;default:false"`
	IsActive bool      `gorm:"not null;default:true"`
	JoinedAt time.Time `gorm:"not null"`
}

// RoomSettings is per user per room: each member keeps their own reminder
// preferences for the same shared room.
type RoomSettings struct {
	ID               uint   `gorm:"primaryKey"`
	RoomID           uint   `gorm:"not null;uniqueIndex:uidx_settings_room_user"`
	UserID           uint   `gorm:"not null;uniqueIndex:uidx_settings_room_user"`
	RemindersEnabled bool   `gorm:"not null;default:false"`
	ReminderTime     string `gorm:"not null;default:'08:00'"`
	TreatmentTimer   bool   `gorm:"not null;default:false"`
}
