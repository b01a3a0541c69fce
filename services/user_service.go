package services

import (
	"fmt"

	"titanfit/models"
	"titanfit/utils"

	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) Get(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// StatsInput is the manual profile form. This path is strict: malformed
// values reject the whole update, unlike the AI body-analysis path which
// defaults them.
type StatsInput struct {
	Weight   float64 `json:"weight"`
	Height   float64 `json:"height"`
	Age      int     `json:"age"`
	Gender   string  `json:"gender"`
	Activity string  `json:"activity"`
}

// UpdateStats saves the user's physical stats and recomputes both goals.
func (s *UserService) UpdateStats(userID uint, input StatsInput) (*models.User, error) {
	if input.Weight <= 0 || input.Height <= 0 || input.Age <= 0 {
		return nil, fmt.Errorf("%w: weight, height and age must be positive", ErrInvalidInput)
	}
	if input.Gender != "Male" && input.Gender != "Female" {
		return nil, fmt.Errorf("%w: gender must be Male or Female", ErrInvalidInput)
	}
	if !utils.KnownActivityLevel(input.Activity) {
		return nil, fmt.Errorf("%w: unknown activity level %q", ErrInvalidInput, input.Activity)
	}

	user, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	calorieGoal, waterGoal := utils.ComputeGoals(
		input.Weight, input.Height, input.Age, input.Gender, input.Activity)

	user.Weight = input.Weight
	user.Height = input.Height
	user.Age = input.Age
	user.Gender = input.Gender
	user.ActivityLevel = input.Activity
	user.GoalCalories = calorieGoal
	user.GoalWater = waterGoal

	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// ApplyBodyEstimate updates stats from an AI body-photo estimate and
// recomputes goals. Missing or implausible fields default (Male / 175 cm /
// 70 kg; age 25 and Moderate activity when unset on the record) instead of
// rejecting, since the payload is the model's best guess.
func (s *UserService) ApplyBodyEstimate(userID uint, est *BodyEstimate) (*models.User, error) {
	user, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	gender := est.Gender
	if gender != "Male" && gender != "Female" {
		gender = "Male"
	}
	height := est.Height
	if height <= 0 {
		height = 175
	}
	weight := est.Weight
	if weight <= 0 {
		weight = 70
	}

	age := user.Age
	if age <= 0 {
		age = 25
	}
	activity := user.ActivityLevel
	if activity == "" {
		activity = models.ActivityModerate
	}

	calorieGoal, waterGoal := utils.ComputeGoals(weight, height, age, gender, activity)

	user.Gender = gender
	user.Height = height
	user.Weight = weight
	user.GoalCalories = calorieGoal
	user.GoalWater = waterGoal

	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the user and every log that references them in one
// transaction, so no orphaned ledger rows survive.
func (s *UserService) Delete(userID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.FoodLog{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.WaterLog{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.ExerciseLog{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, userID).Error
	})
}
