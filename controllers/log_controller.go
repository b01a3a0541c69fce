package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"titanfit/models"
	"titanfit/services"

	"github.com/gin-gonic/gin"
)

// LogController covers the water and exercise endpoints.
type LogController struct {
	ledger *services.LedgerService
	users  *services.UserService
}

func NewLogController(ledger *services.LedgerService, users *services.UserService) *LogController {
	return &LogController{ledger: ledger, users: users}
}

func (ctl *LogController) todayWaterCount(userID uint) (int, int, error) {
	start, end := services.DayBounds(time.Now())
	count, err := ctl.ledger.WaterCountInRange(userID, start, end)
	if err != nil {
		return 0, 0, err
	}
	user, err := ctl.users.Get(userID)
	if err != nil {
		return 0, 0, err
	}
	return count, user.GoalWater, nil
}

// POST /api/water — add one glass, return today's count
func (ctl *LogController) AddWater(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	if err := ctl.ledger.CreateWaterLog(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	count, goal, err := ctl.todayWaterCount(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "water": count, "goal": goal})
}

// DELETE /api/water — remove the most recent glass logged today
func (ctl *LogController) RemoveWater(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	start, end := services.DayBounds(time.Now())
	if err := ctl.ledger.DeleteLatestWater(userID, start, end); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	count, goal, err := ctl.todayWaterCount(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "water": count, "goal": goal})
}

type ExerciseInput struct {
	Activity        string `json:"activity" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"required"`
	CaloriesBurned  int    `json:"calories_burned"`
}

// POST /api/exercise
func (ctl *LogController) AddExercise(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input ExerciseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log := &models.ExerciseLog{
		UserID:          userID,
		ActivityName:    input.Activity,
		DurationMinutes: input.DurationMinutes,
		CaloriesBurned:  input.CaloriesBurned,
	}
	if err := ctl.ledger.CreateExerciseLog(log); err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, log)
}

// DELETE /api/exercise/:id
func (ctl *LogController) DeleteExercise(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := ctl.ledger.DeleteExerciseLog(userID, uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
