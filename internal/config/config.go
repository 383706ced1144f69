package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Environment string
	Port        string

	// DatabaseURL selects the backing store: Postgres when set, the
	// in-process memory store when empty (single-node mode).
	DatabaseURL string

	JWTSecret string

	SentimentURL     string
	SentimentAPIKey  string
	SentimentTimeout time.Duration

	AllowAnonymousReviews bool
	MaxPageSize           int

	RateLimitRPS int

	SMTPHost       string
	SMTPPort       int
	SMTPUsername   string
	SMTPPassword   string
	FromEmail      string
	ModeratorEmail string

	// Seed credentials for the single admin account, created at
	// startup when no account with AdminEmail exists.
	AdminEmail    string
	AdminPassword string

	CORSAllowedOrigins []string
}

func Load() *Config {
	smtpPort, _ := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	rateLimitRPS, _ := strconv.Atoi(getEnv("RATE_LIMIT_RPS", "100"))
	maxPageSize, _ := strconv.Atoi(getEnv("MAX_PAGE_SIZE", "100"))
	sentimentTimeoutMS, _ := strconv.Atoi(getEnv("SENTIMENT_TIMEOUT_MS", "3000"))
	allowAnonymous, _ := strconv.ParseBool(getEnv("ALLOW_ANONYMOUS_REVIEWS", "true"))

	return &Config{
		Environment:           getEnv("ENVIRONMENT", "development"),
		Port:                  getEnv("PORT", "8080"),
		DatabaseURL:           getEnv("DATABASE_URL", ""),
		JWTSecret:             getEnv("JWT_SECRET", "your-super-secret-jwt-key"),
		SentimentURL:          getEnv("SENTIMENT_URL", "http://localhost:8000/api/sentiment"),
		SentimentAPIKey:       getEnv("SENTIMENT_INTERNAL_KEY", ""),
		SentimentTimeout:      time.Duration(sentimentTimeoutMS) * time.Millisecond,
		AllowAnonymousReviews: allowAnonymous,
		MaxPageSize:           maxPageSize,
		RateLimitRPS:          rateLimitRPS,
		SMTPHost:              getEnv("SMTP_HOST", ""),
		SMTPPort:              smtpPort,
		SMTPUsername:          getEnv("SMTP_USERNAME", ""),
		SMTPPassword:          getEnv("SMTP_PASSWORD", ""),
		FromEmail:             getEnv("FROM_EMAIL", "noreply@reviewhub.io"),
		ModeratorEmail:        getEnv("MODERATOR_EMAIL", ""),
		AdminEmail:            getEnv("ADMIN_EMAIL", ""),
		AdminPassword:         getEnv("ADMIN_PASSWORD", ""),
		CORSAllowedOrigins:    []string{getEnv("CORS_ALLOWED_ORIGIN", "*")},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
