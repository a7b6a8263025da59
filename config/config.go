package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int

	DBDriver   string // postgres (default) or mysql
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// 64 hex chars = 32 bytes, validated on first use by utils.Encrypt
	EncryptionKey string

	FrontendURL string

	EmailProvider string // brevo (default) or sendgrid
	EmailSender   string
	EmailFrom     string
	BrevoApiKey   string
	SendGridKey   string

	StorageEndpoint  string
	StorageAccessKey string
	StorageSecretKey string
	StorageBucket    string
	StorageUseSSL    bool

	// Cron spec for the policy expiry digest email. Empty disables it.
	DigestCron string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "5000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", ""),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "adhya"),

		EncryptionKey: getEnv("ENCRYPTION_KEY", ""),

		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		EmailProvider: getEnv("EMAIL_PROVIDER", "brevo"),
		EmailSender:   getEnv("EMAIL_SENDER", "Adhya Computer"),
		EmailFrom:     getEnv("EMAIL_FROM", ""),
		BrevoApiKey:   getEnv("BREVO_API_KEY", ""),
		SendGridKey:   getEnv("SENDGRID_API_KEY", ""),

		StorageEndpoint:  getEnv("STORAGE_ENDPOINT", ""),
		StorageAccessKey: getEnv("STORAGE_ACCESS_KEY", ""),
		StorageSecretKey: getEnv("STORAGE_SECRET_KEY", ""),
		StorageBucket:    getEnv("STORAGE_BUCKET", "adhya-documents"),
		StorageUseSSL:    getEnvBool("STORAGE_USE_SSL", true),

		DigestCron: getEnv("DIGEST_CRON", ""),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.EncryptionKey == "" {
		log.Println("Warning: ENCRYPTION_KEY is not set. Encrypted fields will fail on first use.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

// getEnvBool retrieves an environment variable as a bool or returns the default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to bool: %v", key, err)
		return defaultValue
	}
	return boolValue
}
