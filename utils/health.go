package utils

import (
	"math"
	"strings"
)

// ActivityLevel describes one entry of the fixed activity multiplier table.
type ActivityLevel struct {
	Multiplier  float64
	Description string
}

// ActivityMultipliers is the fixed TDEE multiplier table. Never configurable
// per user beyond selecting the level. Iterate via models.ActivityLevels to
// get a stable order.
var ActivityMultipliers = map[string]ActivityLevel{
	"sedentary":        {1.2, "Little or no exercise"},
	"lightlyActive":    {1.375, "Light exercise 1-3 days/week"},
	"moderatelyActive": {1.55, "Moderate exercise 3-5 days/week"},
	"veryActive":       {1.725, "Hard exercise 6-7 days/week"},
	"extremelyActive":  {1.9, "Very hard exercise, physical job"},
}

// BMICategoryAdvice maps each BMI category to its one-line advice.
var BMICategoryAdvice = map[string]string{
	"underweight": "Focus on healthy weight gain",
	"normal":      "Maintain current healthy weight",
	"overweight":  "Focus on gradual weight loss",
	"obese":       "Focus on significant weight loss and health improvement",
}

// CalculateBMI expects weight in kilograms and height in centimeters.
// Inputs are pre-validated upstream to [20,300]kg and [100,250]cm.
// Result is rounded to 1 decimal.
func CalculateBMI(weightKg, heightCm float64) float64 {
	h := heightCm / 100.0
	return math.Round(weightKg/(h*h)*10) / 10
}

// BMICategory buckets a BMI value into half-open ranges: boundary values
// (18.5, 25, 30) belong to the upper category.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "underweight"
	case bmi < 25.0:
		return "normal"
	case bmi < 30.0:
		return "overweight"
	default:
		return "obese"
	}
}

// CalculateBMR computes basal metabolic rate via Mifflin-St Jeor.
// Gender comparison is case-insensitive; anything other than "male" uses
// the female constant.
func CalculateBMR(weightKg, heightCm float64, age int, gender string) float64 {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if strings.EqualFold(gender, "male") {
		return bmr + 5
	}
	return bmr - 161
}

// CalculateDailyCalories computes TDEE as BMR times the activity multiplier.
// Unknown activity levels fall back to the sedentary multiplier rather than
// failing.
func CalculateDailyCalories(bmr float64, activityLevel string) int {
	mult := 1.2
	if lvl, ok := ActivityMultipliers[activityLevel]; ok {
		mult = lvl.Multiplier
	}
	return int(math.Round(bmr * mult))
}
