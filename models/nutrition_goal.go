package models

import "gorm.io/gorm"

// DailyGoals holds each user's daily nutrient-intake targets.
type DailyGoals struct {
	Calories      float64 `json:"calories"` // kcal
	Protein       float64 `json:"protein"`  // g
	Fat           float64 `json:"fat"`      // g
	Carbohydrates float64 `json:"carbohydrates"`
	Fiber         float64 `json:"fiber"`
	Sodium        float64 `json:"sodium"` // mg
}

// NutritionGoal is upserted per user (one row each).
type NutritionGoal struct {
	gorm.Model
	UserID           uint       `gorm:"uniqueIndex;not null" json:"userId"`
	DailyGoals       DailyGoals `gorm:"embedded;embeddedPrefix:goal_" json:"dailyGoals"`
	GoalType         string     `gorm:"default:maintain" json:"goalType"` // maintain | lose | gain
	WeeklyWeightGoal float64    `json:"weeklyWeightGoal"`                 // kg per week, negative for loss
	ActivityLevel    string     `json:"activityLevel"`
}
