package config

import (
	"os"
	"strconv"
)

// ServiceConfig holds the backend configuration. It is assembled once at
// startup and passed to components explicitly; nothing reads the environment
// after this point.
type ServiceConfig struct {
	Port          string
	PublicBaseURL string

	// Restaurant scope for menu, order and reservation operations. The
	// backend currently serves a single restaurant; multi-location routing
	// is out of scope.
	RestaurantID int64

	// Retell vendor API configuration
	RetellAPIKey        string
	RetellBaseURL       string
	RetellWebhookSecret string

	// Locally cached vendor identifiers, persisted in EnvFilePath across
	// process invocations by the bootstrap CLI.
	RetellAgentID     string
	RetellPhoneNumber string
	EnvFilePath       string

	// Optional Redis for webhook duplicate suppression. Empty host disables
	// it and the receiver falls back to an in-process store.
	RedisHost     string
	RedisPort     string
	RedisPassword string

	// Rate limiting for the Retell-facing endpoints (requests per second
	// with a burst allowance).
	WebhookRateLimit float64
	WebhookRateBurst int
}

// LoadServiceConfig loads the backend configuration from environment
// variables. The .env file is loaded in main for local development.
func LoadServiceConfig() *ServiceConfig {
	return &ServiceConfig{
		Port:          getEnvOrDefault("PORT", "8080"),
		PublicBaseURL: getEnvOrDefault("PUBLIC_BASE_URL", "http://localhost:8080"),

		RestaurantID: getEnvAsInt64OrDefault("RESTAURANT_ID", 1),

		RetellAPIKey:        os.Getenv("RETELL_API_KEY"),
		RetellBaseURL:       getEnvOrDefault("RETELL_BASE_URL", "https://api.retellai.com"),
		RetellWebhookSecret: os.Getenv("RETELL_WEBHOOK_SECRET"),

		RetellAgentID:     os.Getenv("RETELL_AGENT_ID"),
		RetellPhoneNumber: os.Getenv("RETELL_PHONE_NUMBER"),
		EnvFilePath:       getEnvOrDefault("ENV_FILE_PATH", ".env.local"),

		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPort:     getEnvOrDefault("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		WebhookRateLimit: getEnvAsFloatOrDefault("WEBHOOK_RATE_LIMIT", 25),
		WebhookRateBurst: getEnvAsIntOrDefault("WEBHOOK_RATE_BURST", 50),
	}
}

// WebhookURL returns the public inbound webhook endpoint bound to
// provisioned phone numbers.
func (c *ServiceConfig) WebhookURL() string {
	return c.PublicBaseURL + "/api/voice/retell/webhook"
}

// getEnvOrDefault gets an environment variable or returns the default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault gets an environment variable as int or returns the default.
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsInt64OrDefault gets an environment variable as int64 or returns the default.
func getEnvAsInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloatOrDefault gets an environment variable as float64 or returns the default.
func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
