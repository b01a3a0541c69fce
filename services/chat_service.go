package services

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"titanfit/models"

	"gorm.io/gorm"
)

// ChatService sends a message to the coach and applies whatever action comes
// back. The structured reply is untrusted: every field is validated or
// defaulted, and a malformed payload never aborts the chat response.
type ChatService struct {
	db      *gorm.DB
	advisor Advisor
	ledger  *LedgerService
}

func NewChatService(db *gorm.DB, advisor Advisor, ledger *LedgerService) *ChatService {
	return &ChatService{db: db, advisor: advisor, ledger: ledger}
}

// Send runs one chat round trip. An advisor failure degrades to a canned
// reply with no action rather than an error.
func (s *ChatService) Send(ctx context.Context, user *models.User, message string) (*ChatResult, error) {
	summary := fmt.Sprintf("User is %.0fkg, Goal: %dkcal. Activity: %s.",
		user.Weight, user.GoalCalories, user.ActivityLevel)

	res, err := s.advisor.Chat(ctx, message, summary)
	if err != nil {
		return &ChatResult{
			Reply:  "I'm having trouble thinking right now.",
			Action: "none",
		}, nil
	}

	if err := s.Dispatch(user, res); err != nil {
		return nil, err
	}
	return res, nil
}

// Dispatch validates and applies the action embedded in a chat reply.
//
//   - "none" (or anything unrecognized): no mutation.
//   - "log_food": creates a FoodLog; missing fields default (name "Quick Add",
//     calories/protein 0) and chat logs never carry carbs or fat.
//   - "update_goal": sets the user's calorie goal when goal_calories is
//     integer-convertible, otherwise ignored silently.
//
// Only store errors are returned; payload problems always degrade.
func (s *ChatService) Dispatch(user *models.User, res *ChatResult) error {
	switch res.Action {
	case "log_food":
		name := asString(res.Data["food_name"])
		if name == "" {
			name = "Quick Add"
		}
		calories, _ := asInt(res.Data["calories"])
		protein, _ := asFloat(res.Data["protein"])

		return s.ledger.CreateFoodLog(&models.FoodLog{
			UserID:   user.ID,
			Name:     name,
			Calories: clampInt(calories),
			Protein:  clampFloat(protein),
			Carbs:    0,
			Fat:      0,
		})

	case "update_goal":
		goal, ok := asInt(res.Data["goal_calories"])
		if !ok {
			return nil
		}
		user.GoalCalories = goal
		return s.db.Save(user).Error
	}

	return nil
}

func asString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// asInt coerces the loosely typed JSON values the model produces: numbers
// arrive as float64, but it occasionally quotes them.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(math.Round(n)), true
	case int:
		return n, true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
