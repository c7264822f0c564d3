package services

import (
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/Jaykaran24/fitbot/apperrors"
	"github.com/Jaykaran24/fitbot/models"
	"github.com/Jaykaran24/fitbot/utils"
)

// DailyTotals is the nutrient sum over one day's food entries.
type DailyTotals struct {
	Energy        float64 `json:"energy"`
	Protein       float64 `json:"protein"`
	Fat           float64 `json:"fat"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fiber         float64 `json:"fiber"`
	Sugar         float64 `json:"sugar"`
	Sodium        float64 `json:"sodium"`
}

// MealGroup is one meal type's slice of the day.
type MealGroup struct {
	Items         []models.FoodEntry `json:"items"`
	TotalCalories float64            `json:"totalCalories"`
}

// DailySummary is the aggregated view of one day: totals, a per-meal
// breakdown, and the raw entries. Progress is filled in only when the user
// has goals to measure against.
type DailySummary struct {
	Date     string               `json:"date"`
	Totals   DailyTotals          `json:"totals"`
	Meals    map[string]MealGroup `json:"meals"`
	Entries  []models.FoodEntry   `json:"entries"`
	Progress map[string]float64   `json:"progress,omitempty"`
}

// NutritionService owns the food log and nutrition goals.
type NutritionService struct {
	db *gorm.DB
}

func NewNutritionService(db *gorm.DB) *NutritionService {
	return &NutritionService{db: db}
}

// LogEntry stores one logged food item.
func (s *NutritionService) LogEntry(entry *models.FoodEntry) error {
	if !models.IsValidMealType(entry.MealType) {
		return apperrors.Newf(apperrors.KindValidation, "invalid meal type %q", entry.MealType)
	}
	return s.db.Create(entry).Error
}

// EntriesForDay returns the user's entries with Date in [start of day,
// start of next day), oldest first. Day boundaries are always UTC so that
// explicit YYYY-MM-DD dates, which parse as UTC midnight, land in the
// window named by their calendar date regardless of the server's zone.
func (s *NutritionService) EntriesForDay(userID uint, day time.Time) ([]models.FoodEntry, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	var entries []models.FoodEntry
	err := s.db.Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}

// DeleteEntry removes one entry, but only if it belongs to the user.
func (s *NutritionService) DeleteEntry(userID, entryID uint) error {
	res := s.db.Where("id = ? AND user_id = ?", entryID, userID).Delete(&models.FoodEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.Newf(apperrors.KindNotFound, "food entry %d not found", entryID)
	}
	return nil
}

// DailySummaryFor aggregates one day's entries. Every meal type is present
// in the breakdown even when empty, so clients never null-check.
func (s *NutritionService) DailySummaryFor(userID uint, day time.Time) (DailySummary, error) {
	entries, err := s.EntriesForDay(userID, day)
	if err != nil {
		return DailySummary{}, err
	}

	meals := make(map[string]MealGroup, len(models.MealTypes))
	for _, m := range models.MealTypes {
		meals[m] = MealGroup{Items: []models.FoodEntry{}}
	}

	var totals DailyTotals
	for _, e := range entries {
		totals.Energy += e.Nutrition.Energy
		totals.Protein += e.Nutrition.Protein
		totals.Fat += e.Nutrition.Fat
		totals.Carbohydrates += e.Nutrition.Carbohydrates
		totals.Fiber += e.Nutrition.Fiber
		totals.Sugar += e.Nutrition.Sugar
		totals.Sodium += e.Nutrition.Sodium

		group := meals[e.MealType]
		group.Items = append(group.Items, e)
		group.TotalCalories += e.Nutrition.Energy
		meals[e.MealType] = group
	}

	if entries == nil {
		entries = []models.FoodEntry{}
	}
	return DailySummary{
		Date:    day.Format("2006-01-02"),
		Totals:  totals,
		Meals:   meals,
		Entries: entries,
	}, nil
}

// GetGoal returns the user's stored goal, or nil when none has been set.
func (s *NutritionService) GetGoal(userID uint) (*models.NutritionGoal, error) {
	var goal models.NutritionGoal
	err := s.db.Where("user_id = ?", userID).First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// UpsertGoal creates or replaces the user's single goal row.
func (s *NutritionService) UpsertGoal(goal *models.NutritionGoal) error {
	var existing models.NutritionGoal
	err := s.db.Where("user_id = ?", goal.UserID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.db.Create(goal).Error
	}
	if err != nil {
		return err
	}
	goal.ID = existing.ID
	goal.CreatedAt = existing.CreatedAt
	return s.db.Save(goal).Error
}

// GoalProgress reports consumed/target per tracked nutrient as a fraction
// capped at 1. Nutrients without a positive target are omitted.
func GoalProgress(totals DailyTotals, goals models.DailyGoals) map[string]float64 {
	progress := make(map[string]float64, 6)
	add := func(name string, consumed, target float64) {
		if target <= 0 {
			return
		}
		p := consumed / target
		if p > 1 {
			p = 1
		}
		progress[name] = math.Round(p*100) / 100
	}
	add("calories", totals.Energy, goals.Calories)
	add("protein", totals.Protein, goals.Protein)
	add("fat", totals.Fat, goals.Fat)
	add("carbohydrates", totals.Carbohydrates, goals.Carbohydrates)
	add("fiber", totals.Fiber, goals.Fiber)
	add("sodium", totals.Sodium, goals.Sodium)
	return progress
}

// DefaultGoals derives targets from a complete profile: protein at 1.6 g/kg,
// fat at 25% of calories, carbohydrates from the remainder, with fixed fiber
// and sodium references.
func DefaultGoals(p models.Profile) models.DailyGoals {
	bmr := utils.CalculateBMR(p.Weight, p.Height, p.Age, p.Gender)
	calories := float64(utils.CalculateDailyCalories(bmr, p.ActivityLevel))

	protein := math.Round(p.Weight * 1.6)
	fat := math.Round(calories * 0.25 / 9)
	carbs := math.Round((calories - protein*4 - calories*0.25) / 4)

	return models.DailyGoals{
		Calories:      calories,
		Protein:       protein,
		Fat:           fat,
		Carbohydrates: carbs,
		Fiber:         25,
		Sodium:        2300,
	}
}
