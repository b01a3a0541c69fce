package services

import (
	"context"
	"errors"
	"testing"

	"titanfit/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchLogFood(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, 2000)
	chat := NewChatService(db, &fakeAdvisor{}, NewLedgerService(db))

	err := chat.Dispatch(user, &ChatResult{
		Reply:  "Logged your apple!",
		Action: "log_food",
		Data:   map[string]any{"food_name": "Apple", "calories": float64(95), "protein": 0.5},
	})
	require.NoError(t, err)

	var log models.FoodLog
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&log).Error)
	assert.Equal(t, "Apple", log.Name)
	assert.Equal(t, 95, log.Calories)
	assert.InDelta(t, 0.5, log.Protein, 0.0001)
	assert.Zero(t, log.Carbs)
	assert.Zero(t, log.Fat)
}

func TestDispatchLogFoodDefaults(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, 2000)
	chat := NewChatService(db, &fakeAdvisor{}, NewLedgerService(db))

	err := chat.Dispatch(user, &ChatResult{
		Action: "log_food",
		Data:   map[string]any{"calories": "not a number", "protein": []any{1, 2}},
	})
	require.NoError(t, err)

	var log models.FoodLog
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&log).Error)
	assert.Equal(t, "Quick Add", log.Name)
	assert.Equal(t, 0, log.Calories)
	assert.Zero(t, log.Protein)
}

func TestDispatchLogFoodClampsNegatives(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, 2000)
	chat := NewChatService(db, &fakeAdvisor{}, NewLedgerService(db))

	err := chat.Dispatch(user, &ChatResult{
		Action: "log_food",
		Data:   map[string]any{"food_name": "Weird", "calories": float64(-40), "protein": float64(-2)},
	})
	require.NoError(t, err)

	var log models.FoodLog
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&log).Error)
	assert.Equal(t, 0, log.Calories)
	assert.Zero(t, log.Protein)
}

func TestDispatchUpdateGoal(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, 2000)
	chat := NewChatService(db, &fakeAdvisor{}, NewLedgerService(db))

	err := chat.Dispatch(user, &ChatResult{
		Action: "update_goal",
		Data:   map[string]any{"goal_calories": float64(3000)},
	})
	require.NoError(t, err)

	var saved models.User
	require.NoError(t, db.First(&saved, user.ID).Error)
	assert.Equal(t, 3000, saved.GoalCalories)
}

func TestDispatchUpdateGoalStringCoercion(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, 2000)
	chat := NewChatService(db, &fakeAdvisor{}, NewLedgerService(db))

	err := chat.Dispatch(user, &ChatResult{
		Action: "update_goal",
		Data:   map[string]any{"goal_calories": "2750"},
	})
	require.NoError(t, err)

	var saved models.User
	require.NoError(t, db.First(&saved, user.ID).Error)
	assert.Equal(t, 2750, saved.GoalCalories)
}

func TestDispatchUpdateGoalIgnoresMalformed(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, 2000)
	chat := NewChatService(db, &fakeAdvisor{}, NewLedgerService(db))

	for _, data := range []map[string]any{
		nil,
		{},
		{"goal_calories": "three thousand"},
		{"goal_calories": map[string]any{"value": 3000}},
	} {
		require.NoError(t, chat.Dispatch(user, &ChatResult{Action: "update_goal", Data: data}))
	}

	var saved models.User
	require.NoError(t, db.First(&saved, user.ID).Error)
	assert.Equal(t, 2000, saved.GoalCalories)
}

func TestDispatchNoneAndUnknownActions(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, 2000)
	chat := NewChatService(db, &fakeAdvisor{}, NewLedgerService(db))

	require.NoError(t, chat.Dispatch(user, &ChatResult{Action: "none", Reply: "hi"}))
	require.NoError(t, chat.Dispatch(user, &ChatResult{Action: "reboot_universe"}))

	var count int64
	require.NoError(t, db.Model(&models.FoodLog{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSendPassesReplyThrough(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, 2000)
	advisor := &fakeAdvisor{
		chat: func(message, summary string) (*ChatResult, error) {
			assert.Contains(t, summary, "70kg")
			assert.Contains(t, summary, "2000kcal")
			return &ChatResult{Reply: "Keep it up!", Action: "none"}, nil
		},
	}
	chat := NewChatService(db, advisor, NewLedgerService(db))

	res, err := chat.Send(context.Background(), user, "how am I doing?")
	require.NoError(t, err)
	assert.Equal(t, "Keep it up!", res.Reply)
}

func TestSendDegradesOnAdvisorFailure(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, 2000)
	advisor := &fakeAdvisor{
		chat: func(string, string) (*ChatResult, error) {
			return nil, errors.New("upstream timeout")
		},
	}
	chat := NewChatService(db, advisor, NewLedgerService(db))

	res, err := chat.Send(context.Background(), user, "hello?")
	require.NoError(t, err)
	assert.Equal(t, "none", res.Action)
	assert.Equal(t, "I'm having trouble thinking right now.", res.Reply)

	// a failed round trip leaves no ledger mutation
	var count int64
	require.NoError(t, db.Model(&models.FoodLog{}).Count(&count).Error)
	assert.Zero(t, count)
}
