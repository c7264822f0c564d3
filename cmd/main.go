package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/Jaykaran24/fitbot/config"
	"github.com/Jaykaran24/fitbot/routes"
	"github.com/Jaykaran24/fitbot/services"
)

func main() {
	// .env is a development convenience; absence is fine.
	_ = godotenv.Load()

	cfg := config.Load()
	log := zerolog.New(os.Stdout).Level(cfg.LogLevel).With().Timestamp().Logger()

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	db, err := config.ConnectDB(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}

	localFoods := services.LoadLocalFoodDB(cfg.FoodDataPath, log)
	metrics := services.NewMetrics()
	hub := services.NewChatStreamHub()

	food := services.NewFoodService(localFoods, services.NewOpenFoodFactsService())
	nutrition := services.NewNutritionService(db)

	external := services.NewOpenRouterService(cfg.OpenRouter)
	if !external.Enabled() {
		log.Warn().Msg("OPENROUTER_API_KEY not set, external AI disabled")
	}
	chat := services.NewChatService(db, services.NewFitBot(), external, cfg.ExternalAIMode, log)

	r := routes.SetupRouter(routes.Deps{
		Config:     cfg,
		DB:         db,
		Log:        log,
		Metrics:    metrics,
		LocalFoods: localFoods,
		Food:       food,
		Chat:       chat,
		Nutrition:  nutrition,
		Hub:        hub,
	})

	log.Info().Str("port", cfg.Port).Str("aiMode", cfg.ExternalAIMode).Msg("fitbot server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
