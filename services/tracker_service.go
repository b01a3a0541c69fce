package services

import (
	"time"

	"titanfit/models"

	"gorm.io/gorm"
)

// TrackerService computes the day and week rollups shown on the dashboard and
// the stats chart.
type TrackerService struct {
	db     *gorm.DB
	ledger *LedgerService
}

func NewTrackerService(db *gorm.DB, ledger *LedgerService) *TrackerService {
	return &TrackerService{db: db, ledger: ledger}
}

// DailySummary is one day's totals against the user's goals.
type DailySummary struct {
	CalsEaten  int     `json:"cals_eaten"`
	CalsBurned int     `json:"cals_burned"`
	NetCals    int     `json:"net_cals"`
	Remaining  int     `json:"remaining"`
	Protein    float64 `json:"protein"`
	Water      int     `json:"water"`
}

// DayCalories is one point of the weekly chart.
type DayCalories struct {
	Date     string `json:"date"` // YYYY-MM-DD
	Calories int    `json:"calories"`
}

// DayBounds returns the closed interval covering t's local calendar day,
// [00:00:00, 23:59:59.999]. Closed on both ends so a log written at the last
// instant of the day still counts.
func DayBounds(t time.Time) (start, end time.Time) {
	tt := t.In(time.Local)
	start = time.Date(tt.Year(), tt.Month(), tt.Day(), 0, 0, 0, 0, time.Local)
	end = start.Add(24*time.Hour - time.Millisecond)
	return start, end
}

// DailyTotals sums the user's logs for day and derives remaining calories
// from the user's goal: remaining = goal - (eaten - burned).
func (s *TrackerService) DailyTotals(userID uint, day time.Time) (*DailySummary, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, err
	}

	start, end := DayBounds(day)

	foods, err := s.ledger.FoodLogsInRange(userID, start, end)
	if err != nil {
		return nil, err
	}
	exercises, err := s.ledger.ExerciseLogsInRange(userID, start, end)
	if err != nil {
		return nil, err
	}
	water, err := s.ledger.WaterCountInRange(userID, start, end)
	if err != nil {
		return nil, err
	}

	summary := &DailySummary{Water: water}
	for _, f := range foods {
		summary.CalsEaten += f.Calories
		summary.Protein += f.Protein
	}
	for _, e := range exercises {
		summary.CalsBurned += e.CaloriesBurned
	}
	summary.NetCals = summary.CalsEaten - summary.CalsBurned
	summary.Remaining = user.GoalCalories - summary.NetCals

	return summary, nil
}

// WeeklyTotals returns seven zero-filled (date, calories) pairs covering
// [endDay-6, endDay] in chronological order. Food calories only; exercise is
// not subtracted in this view.
func (s *TrackerService) WeeklyTotals(userID uint, endDay time.Time) ([]DayCalories, error) {
	weekStart, _ := DayBounds(endDay.AddDate(0, 0, -6))
	_, weekEnd := DayBounds(endDay)

	foods, err := s.ledger.FoodLogsInRange(userID, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]int, 7)
	for _, f := range foods {
		totals[f.LoggedAt.In(time.Local).Format("2006-01-02")] += f.Calories
	}

	out := make([]DayCalories, 0, 7)
	for d := weekStart; !d.After(weekEnd); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		out = append(out, DayCalories{Date: key, Calories: totals[key]})
	}
	return out, nil
}
