package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Jaykaran24/fitbot/models"
	"github.com/Jaykaran24/fitbot/services"
)

type NutritionController struct {
	DB        *gorm.DB
	Nutrition *services.NutritionService
}

func NewNutritionController(db *gorm.DB, nutrition *services.NutritionService) *NutritionController {
	return &NutritionController{DB: db, Nutrition: nutrition}
}

type GoalsInput struct {
	Calories         float64 `json:"calories" binding:"required,gt=0"`
	Protein          float64 `json:"protein" binding:"required,gt=0"`
	Fat              float64 `json:"fat" binding:"required,gt=0"`
	Carbohydrates    float64 `json:"carbohydrates" binding:"required,gt=0"`
	Fiber            float64 `json:"fiber" binding:"gte=0"`
	Sodium           float64 `json:"sodium" binding:"gte=0"`
	GoalType         string  `json:"goalType" binding:"omitempty,oneof=maintain lose gain"`
	WeeklyWeightGoal float64 `json:"weeklyWeightGoal"`
	ActivityLevel    string  `json:"activityLevel"`
}

// GetGoals returns the stored goals, or defaults derived from the profile
// when the user never set any. Users without a complete profile get neither.
func (nc *NutritionController) GetGoals(c *gin.Context) {
	userID := c.GetUint("userID")

	goal, err := nc.Nutrition.GetGoal(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load goals"})
		return
	}
	if goal != nil {
		c.JSON(http.StatusOK, gin.H{"goals": goal.DailyGoals, "goalType": goal.GoalType, "isDefault": false})
		return
	}

	var user models.User
	if err := nc.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if !user.Profile.IsComplete() {
		c.JSON(http.StatusNotFound, gin.H{"error": "no goals set and profile incomplete; complete your profile to get defaults"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"goals":     services.DefaultGoals(user.Profile),
		"goalType":  "maintain",
		"isDefault": true,
	})
}

func (nc *NutritionController) SetGoals(c *gin.Context) {
	userID := c.GetUint("userID")

	var input GoalsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.ActivityLevel != "" && !models.IsValidActivityLevel(input.ActivityLevel) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid activity level"})
		return
	}

	goalType := input.GoalType
	if goalType == "" {
		goalType = "maintain"
	}

	goal := models.NutritionGoal{
		UserID: userID,
		DailyGoals: models.DailyGoals{
			Calories:      input.Calories,
			Protein:       input.Protein,
			Fat:           input.Fat,
			Carbohydrates: input.Carbohydrates,
			Fiber:         input.Fiber,
			Sodium:        input.Sodium,
		},
		GoalType:         goalType,
		WeeklyWeightGoal: input.WeeklyWeightGoal,
		ActivityLevel:    input.ActivityLevel,
	}
	if err := nc.Nutrition.UpsertGoal(&goal); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save goals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"goals": goal.DailyGoals, "goalType": goal.GoalType})
}

// DailySummary aggregates one day's log with totals and a per-meal
// breakdown.
func (nc *NutritionController) DailySummary(c *gin.Context) {
	userID := c.GetUint("userID")

	day := time.Now().UTC()
	if raw := c.Param("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	summary, err := nc.Nutrition.DailySummaryFor(userID, day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build daily summary"})
		return
	}

	if goals, ok := nc.goalsFor(userID); ok {
		summary.Progress = services.GoalProgress(summary.Totals, goals)
	}
	c.JSON(http.StatusOK, summary)
}

// goalsFor resolves the targets to measure against: stored goals first,
// otherwise profile-derived defaults.
func (nc *NutritionController) goalsFor(userID uint) (models.DailyGoals, bool) {
	goal, err := nc.Nutrition.GetGoal(userID)
	if err == nil && goal != nil {
		return goal.DailyGoals, true
	}

	var user models.User
	if err := nc.DB.First(&user, userID).Error; err != nil || !user.Profile.IsComplete() {
		return models.DailyGoals{}, false
	}
	return services.DefaultGoals(user.Profile), true
}
