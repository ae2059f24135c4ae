package models

import "time"

// ConsumptionLog records that a user took an item on a given day. Date is the
// day bucket, TakenAt the exact moment of logging.
type ConsumptionLog struct {
	ID      uint      `gorm:"primaryKey"`
	CycleID uint      `gorm:"not null;index"`
	ItemID  uint      `gorm:"not null;uniqueIndex:uidx_log_item_date_user"`
	UserID  uint      `gorm:"not null;uniqueIndex:uidx_log_item_date_user"`
	Date    time.Time `gorm:"type:date;not null;uniqueIndex:uidx_log_item_date_user"`
	TakenAt time.Time `gorm:"not null"`
}
