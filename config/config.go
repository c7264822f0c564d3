package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Jaykaran24/fitbot/models"
)

// ExternalAIMode selects how the chat endpoint orchestrates the external AI.
const (
	// ModeFallback runs the rule-based bot first and escalates only when
	// it did not match an intent.
	ModeFallback = "fallback"
	// ModeExternalFirst tries the external AI first (when the request
	// allows it) and falls back to the rule-based bot on any failure.
	ModeExternalFirst = "external-first"
)

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type OpenRouterConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

type RateLimitConfig struct {
	Window     time.Duration
	AuthMax    int
	ChatMax    int
	GeneralMax int
}

type Config struct {
	Port           string
	JWTSecret      string
	AdminEmail     string
	ExternalAIMode string
	FoodDataPath   string
	LogLevel       zerolog.Level
	DB             DBConfig
	OpenRouter     OpenRouterConfig
	RateLimit      RateLimitConfig
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

// Load reads configuration from the environment. Call godotenv.Load first
// if a .env file should be honored.
func Load() *Config {
	level, err := zerolog.ParseLevel(getEnvOrDefault("LOG_LEVEL", "info"))
	if err != nil {
		level = zerolog.InfoLevel
	}

	mode := getEnvOrDefault("EXTERNAL_AI_MODE", ModeExternalFirst)
	if mode != ModeFallback && mode != ModeExternalFirst {
		mode = ModeExternalFirst
	}

	return &Config{
		Port:           getEnvOrDefault("PORT", "3000"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		AdminEmail:     os.Getenv("ADMIN_EMAIL"),
		ExternalAIMode: mode,
		FoodDataPath:   getEnvOrDefault("FOOD_DATABASE_PATH", "data/food-database.csv"),
		LogLevel:       level,
		DB: DBConfig{
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getEnvOrDefault("DB_PORT", "5432"),
			User:     getEnvOrDefault("DB_USER", "postgres"),
			Password: getEnvOrDefault("DB_PASSWORD", "postgres"),
			Name:     getEnvOrDefault("DB_NAME", "fitbot"),
		},
		OpenRouter: OpenRouterConfig{
			APIKey:  os.Getenv("OPENROUTER_API_KEY"),
			BaseURL: getEnvOrDefault("OPENROUTER_API_URL", "https://openrouter.ai/api/v1"),
			Model:   getEnvOrDefault("OPENROUTER_MODEL", "openai/gpt-3.5-turbo"),
			Timeout: time.Duration(getEnvInt("OPENROUTER_TIMEOUT_SECONDS", 8)) * time.Second,
		},
		RateLimit: RateLimitConfig{
			Window:     time.Duration(getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 10)) * time.Second,
			AuthMax:    getEnvInt("RATE_LIMIT_AUTH_MAX", 20),
			ChatMax:    getEnvInt("RATE_LIMIT_CHAT_MAX", 50),
			GeneralMax: getEnvInt("RATE_LIMIT_GENERAL_MAX", 200),
		},
	}
}

// ConnectDB opens the Postgres connection and migrates the schema.
func ConnectDB(cfg DBConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.FoodEntry{},
		&models.NutritionGoal{},
		&models.ChatMessage{},
	); err != nil {
		return nil, fmt.Errorf("automigrate failed: %w", err)
	}
	return db, nil
}
