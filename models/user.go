package models

import (
	"strings"

	"gorm.io/gorm"
)

// ActivityLevels lists the valid activity levels in ascending intensity order.
var ActivityLevels = []string{"sedentary", "lightlyActive", "moderatelyActive", "veryActive", "extremelyActive"}

func IsValidActivityLevel(level string) bool {
	for _, l := range ActivityLevels {
		if l == level {
			return true
		}
	}
	return false
}

// Profile holds the fitness profile used for BMI/BMR/calorie calculations.
// Zero values mean "not provided yet"; the bot asks for missing fields
// instead of failing.
type Profile struct {
	Weight        float64 `json:"weight"` // kg
	Height        float64 `json:"height"` // cm
	Age           int     `json:"age"`
	Gender        string  `json:"gender"` // "male" | "female" | "other"
	ActivityLevel string  `json:"activityLevel"`
}

// HasBMIInputs reports whether weight and height are both set.
func (p Profile) HasBMIInputs() bool {
	return p.Weight > 0 && p.Height > 0
}

// IsComplete reports whether all five fields needed for calorie
// calculations are present.
func (p Profile) IsComplete() bool {
	return p.Weight > 0 && p.Height > 0 && p.Age > 0 &&
		strings.TrimSpace(p.Gender) != "" && strings.TrimSpace(p.ActivityLevel) != ""
}

type User struct {
	gorm.Model
	Name     string  `gorm:"not null" json:"name"`
	Email    string  `gorm:"uniqueIndex;not null" json:"email"`
	Password string  `gorm:"not null" json:"-"`
	Profile  Profile `gorm:"embedded;embeddedPrefix:profile_" json:"profile"`
}
