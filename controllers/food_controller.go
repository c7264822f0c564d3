package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Jaykaran24/fitbot/models"
	"github.com/Jaykaran24/fitbot/services"
)

type FoodController struct {
	Food      *services.FoodService
	Nutrition *services.NutritionService
	Metrics   *services.Metrics
}

func NewFoodController(food *services.FoodService, nutrition *services.NutritionService, metrics *services.Metrics) *FoodController {
	return &FoodController{Food: food, Nutrition: nutrition, Metrics: metrics}
}

type FoodSearchInput struct {
	Query string `json:"query" binding:"required"`
	Limit int    `json:"limit"`
}

type LogFoodInput struct {
	FoodID      string             `json:"foodId" binding:"required"`
	MealType    string             `json:"mealType" binding:"required"`
	ServingSize models.ServingSize `json:"servingSize" binding:"required"`
	Date        string             `json:"date"` // YYYY-MM-DD, defaults to today
}

func (fc *FoodController) Search(c *gin.Context) {
	var input FoodSearchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	foods, err := fc.Food.Search(c.Request.Context(), input.Query, input.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	if foods == nil {
		foods = []services.CatalogItem{}
	}

	fc.Metrics.RecordFoodSearch()
	c.JSON(http.StatusOK, gin.H{"foods": foods})
}

func (fc *FoodController) Details(c *gin.Context) {
	ref := services.ParseFoodRef(c.Param("id"))

	item, err := fc.Food.GetDetails(c.Request.Context(), ref)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"food": item})
}

// LogFood resolves the food, scales its per-100g nutrition to the requested
// serving and stores the entry as a snapshot.
func (fc *FoodController) LogFood(c *gin.Context) {
	userID := c.GetUint("userID")

	var input LogFoodInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.ServingSize.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "serving amount must be positive"})
		return
	}

	date := time.Now().UTC()
	if input.Date != "" {
		parsed, err := time.Parse("2006-01-02", input.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	item, err := fc.Food.GetDetails(c.Request.Context(), services.ParseFoodRef(input.FoodID))
	if err != nil {
		respondError(c, err)
		return
	}

	entry := models.FoodEntry{
		UserID:   userID,
		Date:     date,
		MealType: input.MealType,
		Food: models.FoodSnapshot{
			FoodID:   item.ID,
			Name:     item.Name,
			Brand:    item.Brand,
			ImageURL: item.ImageURL,
		},
		Nutrition:   services.ScaleServing(item, input.ServingSize.Amount, input.ServingSize.Unit),
		ServingSize: input.ServingSize,
	}
	if err := fc.Nutrition.LogEntry(&entry); err != nil {
		respondError(c, err)
		return
	}

	fc.Metrics.RecordFoodEntry()
	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

func (fc *FoodController) TodayLog(c *gin.Context) {
	fc.logForDay(c, time.Now().UTC())
}

func (fc *FoodController) LogByDate(c *gin.Context) {
	date, err := time.Parse("2006-01-02", c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}
	fc.logForDay(c, date)
}

func (fc *FoodController) logForDay(c *gin.Context, day time.Time) {
	userID := c.GetUint("userID")

	entries, err := fc.Nutrition.EntriesForDay(userID, day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load food log"})
		return
	}
	if entries == nil {
		entries = []models.FoodEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"date": day.Format("2006-01-02"), "entries": entries})
}

func (fc *FoodController) DeleteEntry(c *gin.Context) {
	userID := c.GetUint("userID")

	entryID, err := strconv.ParseUint(c.Param("entryId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}

	if err := fc.Nutrition.DeleteEntry(userID, uint(entryID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "entry deleted"})
}
