package models

import (
	"time"

	"gorm.io/gorm"
)

// Valid meal types for a food log entry.
var MealTypes = []string{"breakfast", "lunch", "dinner", "snack"}

func IsValidMealType(mealType string) bool {
	for _, m := range MealTypes {
		if m == mealType {
			return true
		}
	}
	return false
}

// Nutrition holds nutrient values. Depending on context these are either
// per-100g reference values (catalog items) or absolute values for a logged
// serving (food entries). Absent nutrients are 0, never null.
type Nutrition struct {
	Energy        float64 `json:"energy"` // kcal
	Protein       float64 `json:"protein"`
	Fat           float64 `json:"fat"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fiber         float64 `json:"fiber"`
	Sugar         float64 `json:"sugar"`
	Sodium        float64 `json:"sodium"`
	Salt          float64 `json:"salt"`
	SaturatedFat  float64 `json:"saturatedFat"`
}

// ServingSize is the amount+unit the user actually logged.
type ServingSize struct {
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit" gorm:"default:g"` // g, ml, oz, cup, piece, slice
}

// FoodSnapshot is a point-in-time copy of the catalog item at log time,
// not a live reference. Catalog data can change; the log should not.
type FoodSnapshot struct {
	FoodID   string `json:"id"`
	Name     string `json:"name" gorm:"not null"`
	Brand    string `json:"brand"`
	ImageURL string `json:"imageUrl"`
}

// FoodEntry is one logged food item. Immutable once created except for
// deletion; owned by the user who created it.
type FoodEntry struct {
	gorm.Model
	UserID      uint         `gorm:"index:idx_food_entries_user_date;not null" json:"userId"`
	Date        time.Time    `gorm:"index:idx_food_entries_user_date;not null" json:"date"`
	MealType    string       `gorm:"index;not null" json:"mealType"`
	Food        FoodSnapshot `gorm:"embedded;embeddedPrefix:food_" json:"food"`
	Nutrition   Nutrition    `gorm:"embedded;embeddedPrefix:nutrition_" json:"nutrition"`
	ServingSize ServingSize  `gorm:"embedded;embeddedPrefix:serving_" json:"servingSize"`
}
