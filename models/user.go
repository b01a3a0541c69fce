package models

import (
	"gorm.io/gorm"
)

// Activity levels accepted on the profile form. Anything else falls back
// to the Moderate multiplier when goals are derived.
const (
	ActivitySedentary = "Sedentary"
	ActivityLight     = "Light"
	ActivityModerate  = "Moderate"
	ActivityActive    = "Active"
)

type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`

	// Physical stats
	Height        float64 `json:"height"` // cm
	Weight        float64 `json:"weight"` // kg
	Age           int     `json:"age"`
	Gender        string  `gorm:"size:10" json:"gender"`
	ActivityLevel string  `gorm:"size:20" json:"activity_level"`

	// Daily goals
	GoalCalories int `gorm:"default:2000" json:"goal_calories"`
	GoalProtein  int `gorm:"default:150" json:"goal_protein"`
	GoalWater    int `gorm:"default:8" json:"goal_water"` // glasses
}
