package models

import "time"

// Reaction is a logged adverse event. ItemID is nil when the cause is unknown.
type Reaction struct {
	ID           uint      `gorm:"primaryKey"`
	CycleID      uint      `gorm:"not null;index"`
	ItemID       *uint     `gorm:"index"`
	UserID       uint      `gorm:"not null"`
	Date         time.Time `gorm:"type:date;not null"`
	Symptoms     []string  `gorm:"serializer:json"`
	OtherSymptom string    `gorm:"not null;default:''"`
	Description  string    `gorm:"not null;default:''"`
	CreatedAt    time.Time
}

func BuiltinSymptoms() []string {
	return []string{
		"Hives",
		"Itchy mouth",
		"Swelling",
		"Stomach pain",
		"Vomiting",
		"Diarrhea",
		"Runny nose",
		"Sneezing",
		"Coughing",
		"Wheezing",
		"Trouble breathing",
		"Eczema flare",
		"Fatigue",
	}
}

func KnownSymptom(name string) bool {
	for _, symptom := range BuiltinSymptoms() {
		if symptom == name {
			return true
		}
	}
	return false
}
