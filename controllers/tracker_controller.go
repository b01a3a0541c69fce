package controllers

import (
	"net/http"
	"time"

	"titanfit/services"

	"github.com/gin-gonic/gin"
)

type TrackerController struct {
	tracker *services.TrackerService
	ledger  *services.LedgerService
}

func NewTrackerController(tracker *services.TrackerService, ledger *services.LedgerService) *TrackerController {
	return &TrackerController{tracker: tracker, ledger: ledger}
}

// GET /api/dashboard — today's totals plus the raw food and exercise lists
func (ctl *TrackerController) Dashboard(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	now := time.Now()

	summary, err := ctl.tracker.DailyTotals(userID, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	start, end := services.DayBounds(now)
	foods, err := ctl.ledger.FoodLogsInRange(userID, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	exercises, err := ctl.ledger.ExerciseLogsInRange(userID, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary":      summary,
		"food_log":     foods,
		"exercise_log": exercises,
	})
}

// GET /api/stats/weekly — last 7 days of calories, zero-filled
func (ctl *TrackerController) WeeklyStats(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	days, err := ctl.tracker.WeeklyTotals(userID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}
