package utils

import "math"

// Activity multipliers applied on top of BMR to get the daily calorie goal.
var activityMultipliers = map[string]float64{
	"Sedentary": 1.2,
	"Light":     1.375,
	"Moderate":  1.55,
	"Active":    1.725,
}

// Unknown or unset activity levels use the Moderate multiplier on every path.
const defaultMultiplier = 1.55

const (
	mlPerKg      = 35.0
	mlPerGlass   = 250.0
	maleOffset   = 5.0
	femaleOffset = -161.0
)

// BMR computes basal metabolic rate with the Mifflin-St Jeor equation.
// Height in centimeters, weight in kilograms.
func BMR(weightKg, heightCm float64, age int, gender string) float64 {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if gender == "Male" {
		bmr += maleOffset
	} else {
		bmr += femaleOffset
	}
	return bmr
}

// ComputeGoals derives the daily calorie goal (TDEE, floored) and the water
// goal in glasses (35 ml per kg body weight, 250 ml per glass).
func ComputeGoals(weightKg, heightCm float64, age int, gender, activity string) (calorieGoal, waterGoal int) {
	mult, ok := activityMultipliers[activity]
	if !ok {
		mult = defaultMultiplier
	}

	calorieGoal = int(math.Floor(BMR(weightKg, heightCm, age, gender) * mult))
	waterGoal = int(math.Floor(weightKg * mlPerKg / mlPerGlass))
	return calorieGoal, waterGoal
}

// KnownActivityLevel reports whether the given level is one of the
// enumerated activity levels.
func KnownActivityLevel(activity string) bool {
	_, ok := activityMultipliers[activity]
	return ok
}

// BMI returns the body mass index and its WHO category for display on the
// profile. ok is false when the stats cannot produce a meaningful value.
func BMI(weightKg, heightCm float64) (value float64, category string, ok bool) {
	if weightKg <= 0 || heightCm <= 0 {
		return 0, "", false
	}

	h := heightCm / 100.0
	value = weightKg / (h * h)

	switch {
	case value < 18.5:
		category = "Underweight"
	case value < 25.0:
		category = "Normal"
	case value < 30.0:
		category = "Overweight"
	default:
		category = "Obese"
	}
	return value, category, true
}
