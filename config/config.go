package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the EcoSort classification service
type Config struct {
	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Server configuration
	Port string

	// LLM provider configuration
	LLMProvider  string
	AIGatewayURL string
	AIGatewayKey string
	AIModel      string
	GeminiAPIKey string
	GeminiModel  string
	ModelTimeout time.Duration

	// Rate limiting
	RateLimit       int
	RateLimitWindow time.Duration

	// Learned corrections fetched per classification request
	CorrectionsLimit int

	// Auth
	JWTSecret string

	// RabbitMQ (optional)
	RabbitMQURL                  string
	RabbitMQExchange             string
	ClassificationRoutingKey     string
	CorrectionApprovedRoutingKey string

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		// Database defaults
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "server"),
		DBPassword: getEnv("DB_PASSWORD", "secret_app"),
		DBName:     getEnv("DB_NAME", "ecosort"),

		// Server defaults
		Port: getEnv("PORT", "8080"),

		// LLM defaults
		LLMProvider:  getEnv("LLM_PROVIDER", "gateway"),
		AIGatewayURL: getEnv("AI_GATEWAY_URL", "https://ai.gateway.lovable.dev/v1/chat/completions"),
		AIGatewayKey: getEnv("AI_GATEWAY_KEY", ""),
		AIModel:      getEnv("AI_MODEL", "google/gemini-2.5-flash"),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		ModelTimeout: getDurationEnv("MODEL_TIMEOUT", 60*time.Second),

		// Rate limiting defaults: 5 requests per trailing 60 seconds
		RateLimit:       getIntEnv("RATE_LIMIT", 5),
		RateLimitWindow: getDurationEnv("RATE_LIMIT_WINDOW", 60*time.Second),

		// Corrections defaults: most recent 50
		CorrectionsLimit: getIntEnv("CORRECTIONS_LIMIT", 50),

		// Auth defaults
		JWTSecret: getEnv("JWT_SECRET", ""),

		// RabbitMQ defaults (empty URL disables publishing)
		RabbitMQURL:                  getEnv("RABBITMQ_URL", ""),
		RabbitMQExchange:             getEnv("RABBITMQ_EXCHANGE", "ecosort"),
		ClassificationRoutingKey:     getEnv("RABBITMQ_CLASSIFICATION_ROUTING_KEY", "classification.completed"),
		CorrectionApprovedRoutingKey: getEnv("RABBITMQ_CORRECTION_ROUTING_KEY", "correction.approved"),

		// Logging defaults
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv gets a duration environment variable or returns a default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getIntEnv gets an integer environment variable or returns a default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
