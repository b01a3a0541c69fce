package models

import (
	"time"

	"gorm.io/gorm"
)

type FoodLog struct {
	gorm.Model
	UserID   uint      `gorm:"index;not null" json:"user_id"`
	Name     string    `gorm:"size:100;not null" json:"name"`
	Calories int       `gorm:"not null" json:"calories"`
	Protein  float64   `json:"protein"`
	Carbs    float64   `json:"carbs"`
	Fat      float64   `json:"fat"`
	ImageRef string    `gorm:"size:255" json:"image_ref,omitempty"`
	LoggedAt time.Time `gorm:"index;not null" json:"logged_at"`
}
