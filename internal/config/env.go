package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func init() {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()
}

type Config struct {
	// Required
	LineChannelSecret        string
	LineChannelAccessToken   string
	OpenAIAPIKey             string
	GoogleServiceAccountFile string
	GoogleTokenFile          string
	GoogleCalendarID         string

	// Optional with defaults
	OpenAIModel       string
	OpenAITemperature float64
	TasklistTitle     string
	Timezone          string
	SlotMinutes       int
	HTTPPort          int
}

func LoadFromEnv() *Config {
	cfg := &Config{
		// Required
		LineChannelSecret:        os.Getenv("LINE_CHANNEL_SECRET"),
		LineChannelAccessToken:   os.Getenv("LINE_CHANNEL_ACCESS_TOKEN"),
		OpenAIAPIKey:             os.Getenv("OPENAI_API_KEY"),
		GoogleServiceAccountFile: getEnvOrDefault("GOOGLE_SERVICE_ACCOUNT_JSON", "./service_account.json"),
		GoogleTokenFile:          getEnvOrDefault("GOOGLE_TOKEN_JSON", "./token.json"),
		GoogleCalendarID:         os.Getenv("GOOGLE_CALENDAR_ID"),

		// Optional with defaults
		OpenAIModel:       getEnvOrDefault("OPENAI_MODEL", "gpt-3.5-turbo"),
		OpenAITemperature: getEnvAsFloatOrDefault("OPENAI_TEMPERATURE", 0.1),
		TasklistTitle:     getEnvOrDefault("GOOGLE_TASKLIST_TITLE", "geeksさんのリスト"),
		Timezone:          getEnvOrDefault("BUTLER_TIMEZONE", "Asia/Tokyo"),
		SlotMinutes:       getEnvAsIntOrDefault("BUTLER_SLOT_MINUTES", 30),
		HTTPPort:          getEnvAsIntOrDefault("BUTLER_HTTP_PORT", 5000),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
