package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Server configuration
	Port        string
	Environment string

	// Redis configuration
	RedisURL      string
	RedisPassword string
	RedisDB       int

	// Khalti ePayment configuration
	KhaltiBaseURL   string
	KhaltiSecretKey string
	KhaltiReturnURL string
	KhaltiSiteURL   string

	// eSewa configuration
	EsewaBaseURL      string
	EsewaMerchantCode string
	EsewaSecretKey    string
	EsewaSuccessURL   string
	EsewaFailureURL   string

	// Mail configuration
	SenderName    string
	SenderAddress string

	// Timeout configuration
	GatewayTimeout time.Duration

	// Rate limiting
	SubmissionRateLimit int

	// Monitoring
	EnableMetrics bool
	MetricsPort   string
}

func LoadConfig() *Config {
	return &Config{
		// Server
		Port:        getEnv("PORT", "8090"),
		Environment: getEnv("ENVIRONMENT", "development"),

		// Redis
		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		// Khalti
		KhaltiBaseURL:   getEnv("KHALTI_BASE_URL", "https://khalti.com"),
		KhaltiSecretKey: getEnv("KHALTI_SECRET_KEY", ""),
		KhaltiReturnURL: getEnv("KHALTI_RETURN_URL", "http://localhost:8090/api/v1/payment/callback/khalti"),
		KhaltiSiteURL:   getEnv("KHALTI_SITE_URL", "http://localhost:8090"),

		// eSewa
		EsewaBaseURL:      getEnv("ESEWA_BASE_URL", "https://epay.esewa.com.np"),
		EsewaMerchantCode: getEnv("ESEWA_MERCHANT_CODE", "EPAYTEST"),
		EsewaSecretKey:    getEnv("ESEWA_SECRET_KEY", ""),
		EsewaSuccessURL:   getEnv("ESEWA_SUCCESS_URL", "http://localhost:8090/api/v1/payment/callback/esewa"),
		EsewaFailureURL:   getEnv("ESEWA_FAILURE_URL", "http://localhost:8090/payment/failed"),

		// Mail
		SenderName:    getEnv("MAIL_SENDER_NAME", "Event Solution"),
		SenderAddress: getEnv("MAIL_SENDER_ADDRESS", "tickets@eventsolution.com.np"),

		// Timeouts
		GatewayTimeout: getEnvAsDuration("GATEWAY_TIMEOUT", "10s"),

		// Rate limiting
		SubmissionRateLimit: getEnvAsInt("SUBMISSION_RATE_LIMIT", 30),

		// Monitoring
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),
		MetricsPort:   getEnv("METRICS_PORT", "9090"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	// If parsing fails, try to parse default value
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
