package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Jaykaran24/fitbot/config"
	"github.com/Jaykaran24/fitbot/controllers"
	"github.com/Jaykaran24/fitbot/middlewares"
	"github.com/Jaykaran24/fitbot/services"
)

// Deps carries everything the router wires together.
type Deps struct {
	Config     *config.Config
	DB         *gorm.DB
	Log        zerolog.Logger
	Metrics    *services.Metrics
	LocalFoods *services.LocalFoodDB
	Food       *services.FoodService
	Chat       *services.ChatService
	Nutrition  *services.NutritionService
	Hub        *services.ChatStreamHub
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestLogger(d.Log, d.Metrics))

	secret := []byte(d.Config.JWTSecret)
	rl := d.Config.RateLimit

	authCtl := controllers.NewAuthController(d.DB, secret, d.Metrics)
	userCtl := controllers.NewUserController(d.DB)
	chatCtl := controllers.NewChatController(d.DB, d.Chat, d.Hub, d.Metrics)
	foodCtl := controllers.NewFoodController(d.Food, d.Nutrition, d.Metrics)
	nutritionCtl := controllers.NewNutritionController(d.DB, d.Nutrition)
	healthCtl := controllers.NewHealthController(d.DB, d.LocalFoods, d.Metrics, d.Config.AdminEmail)

	requireAuth := middlewares.AuthMiddleware(secret, d.DB)
	generalLimit := middlewares.RateLimit(rl.GeneralMax, rl.Window, "Too many requests, please slow down")

	// Health endpoints stay outside the rate limiters.
	r.GET("/health", healthCtl.Health)
	r.GET("/live", healthCtl.Live)
	r.GET("/ready", healthCtl.Ready)
	r.GET("/metrics", requireAuth, healthCtl.MetricsSnapshot)

	auth := r.Group("/api/auth")
	auth.Use(middlewares.RateLimit(rl.AuthMax, rl.Window, "Too many authentication attempts, please try again later"))
	{
		auth.POST("/signup", authCtl.Signup)
		auth.POST("/login", authCtl.Login)
	}

	// Authenticated groups run auth first so the limiter keys on the user,
	// not the IP.
	profile := r.Group("/api/profile")
	profile.Use(requireAuth, generalLimit)
	{
		profile.GET("", userCtl.GetProfile)
		profile.POST("", userCtl.UpdateProfile)
	}

	chat := r.Group("/api/chat")
	chat.Use(requireAuth, middlewares.RateLimit(rl.ChatMax, rl.Window, "Too many chat messages, please slow down"))
	{
		chat.POST("", chatCtl.SendMessage)
		chat.GET("/history", chatCtl.History)
		chat.GET("/ws", chatCtl.ChatWS)
	}

	food := r.Group("/api/food")
	food.Use(requireAuth, generalLimit)
	{
		food.POST("/search", foodCtl.Search)
		food.GET("/log", foodCtl.TodayLog)
		food.POST("/log", foodCtl.LogFood)
		food.GET("/log/:date", foodCtl.LogByDate)
		food.DELETE("/log/:entryId", foodCtl.DeleteEntry)
		food.GET("/:id", foodCtl.Details)
	}

	nutrition := r.Group("/api/nutrition")
	nutrition.Use(requireAuth, generalLimit)
	{
		nutrition.GET("/goals", nutritionCtl.GetGoals)
		nutrition.POST("/goals", nutritionCtl.SetGoals)
		nutrition.GET("/daily", nutritionCtl.DailySummary)
		nutrition.GET("/daily/:date", nutritionCtl.DailySummary)
	}

	return r
}
