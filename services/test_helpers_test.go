package services

import (
	"context"
	"path/filepath"
	"testing"

	"titanfit/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "titanfit.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.FoodLog{},
		&models.WaterLog{},
		&models.ExerciseLog{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestUser(t *testing.T, db *gorm.DB, goalCalories int) *models.User {
	t.Helper()
	user := &models.User{
		Email:         "titan@example.com",
		Password:      "x",
		Height:        175,
		Weight:        70,
		Age:           25,
		Gender:        "Male",
		ActivityLevel: models.ActivityModerate,
		GoalCalories:  goalCalories,
		GoalProtein:   150,
		GoalWater:     8,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

// fakeAdvisor lets tests script each collaborator call.
type fakeAdvisor struct {
	classifyText  func(description string) (*Candidate, error)
	classifyImage func(image []byte, hints []string) (*Candidate, error)
	analyzeBody   func(image []byte) (*BodyEstimate, error)
	chat          func(message, contextSummary string) (*ChatResult, error)
}

func (f *fakeAdvisor) ClassifyText(_ context.Context, description string) (*Candidate, error) {
	return f.classifyText(description)
}

func (f *fakeAdvisor) ClassifyImage(_ context.Context, image []byte, hints []string) (*Candidate, error) {
	return f.classifyImage(image, hints)
}

func (f *fakeAdvisor) AnalyzeBody(_ context.Context, image []byte) (*BodyEstimate, error) {
	return f.analyzeBody(image)
}

func (f *fakeAdvisor) Chat(_ context.Context, message, contextSummary string) (*ChatResult, error) {
	return f.chat(message, contextSummary)
}
