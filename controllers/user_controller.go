package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Jaykaran24/fitbot/models"
	"github.com/Jaykaran24/fitbot/utils"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

type ProfileInput struct {
	Weight        float64 `json:"weight" binding:"required,gte=20,lte=300"`
	Height        float64 `json:"height" binding:"required,gte=100,lte=250"`
	Age           int     `json:"age" binding:"required,gte=10,lte=120"`
	Gender        string  `json:"gender" binding:"required,oneof=male female other"`
	ActivityLevel string  `json:"activityLevel" binding:"required"`
}

func (uc *UserController) GetProfile(c *gin.Context) {
	userID := c.GetUint("userID")

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	resp := gin.H{"profile": user.Profile}
	if user.Profile.IsComplete() {
		resp["stats"] = profileStats(user.Profile)
	}
	c.JSON(http.StatusOK, resp)
}

func (uc *UserController) UpdateProfile(c *gin.Context) {
	userID := c.GetUint("userID")

	var input ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.IsValidActivityLevel(input.ActivityLevel) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid activity level"})
		return
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	user.Profile = models.Profile{
		Weight:        input.Weight,
		Height:        input.Height,
		Age:           input.Age,
		Gender:        input.Gender,
		ActivityLevel: input.ActivityLevel,
	}
	if err := uc.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile": user.Profile,
		"stats":   profileStats(user.Profile),
	})
}

// profileStats derives the display metrics clients show after a profile
// save.
func profileStats(p models.Profile) gin.H {
	bmi := utils.CalculateBMI(p.Weight, p.Height)
	bmr := utils.CalculateBMR(p.Weight, p.Height, p.Age, p.Gender)
	return gin.H{
		"bmi":           bmi,
		"bmiCategory":   utils.BMICategory(bmi),
		"dailyCalories": utils.CalculateDailyCalories(bmr, p.ActivityLevel),
	}
}
