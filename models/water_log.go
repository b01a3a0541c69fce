package models

import (
	"time"

	"gorm.io/gorm"
)

// One row per glass. "Remove water" deletes the most recent row for the
// current day rather than an arbitrary one.
type WaterLog struct {
	gorm.Model
	UserID   uint      `gorm:"index;not null" json:"user_id"`
	Amount   int       `gorm:"default:1" json:"amount"`
	LoggedAt time.Time `gorm:"index;not null" json:"logged_at"`
}
