package services

import (
	"errors"
	"fmt"
	"time"

	"titanfit/models"

	"gorm.io/gorm"
)

// LedgerService is the append/delete store for food, water and exercise logs.
// Deletes are idempotent: removing a missing id is a no-op. Range queries are
// ordered by timestamp ascending and re-read current state on every call.
type LedgerService struct {
	db *gorm.DB
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{db: db}
}

// CreateFoodLog persists one food entry. LoggedAt defaults to now when unset.
func (s *LedgerService) CreateFoodLog(log *models.FoodLog) error {
	if log.Name == "" {
		return fmt.Errorf("%w: food name is required", ErrInvalidInput)
	}
	if log.Calories < 0 || log.Protein < 0 || log.Carbs < 0 || log.Fat < 0 {
		return fmt.Errorf("%w: nutrition values must be non-negative", ErrInvalidInput)
	}
	if log.LoggedAt.IsZero() {
		log.LoggedAt = time.Now()
	}
	return s.db.Create(log).Error
}

func (s *LedgerService) CreateExerciseLog(log *models.ExerciseLog) error {
	if log.ActivityName == "" {
		return fmt.Errorf("%w: activity name is required", ErrInvalidInput)
	}
	if log.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}
	if log.CaloriesBurned < 0 {
		return fmt.Errorf("%w: calories burned must be non-negative", ErrInvalidInput)
	}
	if log.LoggedAt.IsZero() {
		log.LoggedAt = time.Now()
	}
	return s.db.Create(log).Error
}

// CreateWaterLog records one glass.
func (s *LedgerService) CreateWaterLog(userID uint) error {
	return s.db.Create(&models.WaterLog{
		UserID:   userID,
		Amount:   1,
		LoggedAt: time.Now(),
	}).Error
}

func (s *LedgerService) DeleteFoodLog(userID, id uint) error {
	return s.db.
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.FoodLog{}).Error
}

func (s *LedgerService) DeleteExerciseLog(userID, id uint) error {
	return s.db.
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.ExerciseLog{}).Error
}

// DeleteLatestWater removes the most recent glass inside [start, end], not an
// arbitrary one. Missing rows are a no-op.
func (s *LedgerService) DeleteLatestWater(userID uint, start, end time.Time) error {
	var log models.WaterLog
	err := s.db.
		Where("user_id = ? AND logged_at >= ? AND logged_at <= ?", userID, start, end).
		Order("logged_at DESC").
		First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return s.db.Delete(&log).Error
}

func (s *LedgerService) FoodLogsInRange(userID uint, start, end time.Time) ([]models.FoodLog, error) {
	var logs []models.FoodLog
	err := s.db.
		Where("user_id = ? AND logged_at >= ? AND logged_at <= ?", userID, start, end).
		Order("logged_at ASC").
		Find(&logs).Error
	return logs, err
}

func (s *LedgerService) ExerciseLogsInRange(userID uint, start, end time.Time) ([]models.ExerciseLog, error) {
	var logs []models.ExerciseLog
	err := s.db.
		Where("user_id = ? AND logged_at >= ? AND logged_at <= ?", userID, start, end).
		Order("logged_at ASC").
		Find(&logs).Error
	return logs, err
}

func (s *LedgerService) WaterCountInRange(userID uint, start, end time.Time) (int, error) {
	var count int64
	err := s.db.
		Model(&models.WaterLog{}).
		Where("user_id = ? AND logged_at >= ? AND logged_at <= ?", userID, start, end).
		Count(&count).Error
	return int(count), err
}
