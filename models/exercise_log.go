package models

import (
	"time"

	"gorm.io/gorm"
)

type ExerciseLog struct {
	gorm.Model
	UserID          uint      `gorm:"index;not null" json:"user_id"`
	ActivityName    string    `gorm:"size:100;not null" json:"activity_name"`
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`
	CaloriesBurned  int       `json:"calories_burned"`
	LoggedAt        time.Time `gorm:"index;not null" json:"logged_at"`
}
