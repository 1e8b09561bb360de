package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application. It is built once
// at startup and passed by reference into constructors; nothing reads
// ambient environment state at call time.
type Config struct {
	AppMode  string
	Port     string
	Database DatabaseConfig
	JWT      JWTConfig
	Auth     AuthConfig
	SMTP     SMTPConfig
	Upload   UploadConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// JWTConfig holds token issuer configuration
type JWTConfig struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

// AuthConfig holds lockout and password reset configuration
type AuthConfig struct {
	LockoutThreshold int
	LockoutDuration  time.Duration
	ResetTokenTTL    time.Duration
	ResetLinkBase    string
}

// SMTPConfig holds outbound mail configuration. An empty Host disables
// mail dispatch (dev mode).
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// UploadConfig holds file upload configuration
type UploadConfig struct {
	Dir         string
	MaxFileSize int64
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	jwtCfg, err := loadJWTConfig()
	if err != nil {
		return nil, err
	}

	config := &Config{
		AppMode:  appMode,
		Port:     getEnv("PORT", "3000"),
		Database: loadDatabaseConfig(),
		JWT:      jwtCfg,
		Auth:     loadAuthConfig(),
		SMTP:     loadSMTPConfig(),
		Upload:   loadUploadConfig(),
	}

	log.Printf("Configuration loaded [MODE: %s]", appMode)
	return config, nil
}

// loadDatabaseConfig loads database config
func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "3306"),
		User:     getEnv("DB_USER", "root"),
		Password: getEnv("DB_PASS", ""),
		DBName:   getEnv("DB_NAME", "companyhub"),
	}
}

// loadJWTConfig loads token issuer config. A missing signing secret is
// a fatal startup condition, never a per-request error.
func loadJWTConfig() (JWTConfig, error) {
	secret := strings.TrimSpace(getEnv("JWT_SECRET", ""))
	if secret == "" {
		return JWTConfig{}, fmt.Errorf("JWT_SECRET is not configured")
	}

	ttlMins, _ := strconv.Atoi(getEnv("JWT_TTL_MINUTES", "60"))
	if ttlMins <= 0 {
		ttlMins = 60
	}

	return JWTConfig{
		Secret:   secret,
		Issuer:   getEnv("JWT_ISSUER", "companyhub"),
		Audience: getEnv("JWT_AUDIENCE", "companyhub-clients"),
		TTL:      time.Duration(ttlMins) * time.Minute,
	}, nil
}

// loadAuthConfig loads lockout and reset token config
func loadAuthConfig() AuthConfig {
	threshold, _ := strconv.Atoi(getEnv("LOCKOUT_THRESHOLD", "5"))
	lockoutMins, _ := strconv.Atoi(getEnv("LOCKOUT_MINUTES", "15"))
	resetMins, _ := strconv.Atoi(getEnv("RESET_TOKEN_MINUTES", "60"))

	return AuthConfig{
		LockoutThreshold: threshold,
		LockoutDuration:  time.Duration(lockoutMins) * time.Minute,
		ResetTokenTTL:    time.Duration(resetMins) * time.Minute,
		ResetLinkBase:    getEnv("RESET_LINK_BASE", "http://localhost:3000/reset-password"),
	}
}

// loadSMTPConfig loads outbound mail config
func loadSMTPConfig() SMTPConfig {
	port, _ := strconv.Atoi(getEnv("SMTP_PORT", "587"))

	return SMTPConfig{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     port,
		Username: getEnv("SMTP_USER", ""),
		Password: getEnv("SMTP_PASS", ""),
		From:     getEnv("SMTP_FROM", "no-reply@companyhub.local"),
	}
}

// loadUploadConfig loads file upload config
func loadUploadConfig() UploadConfig {
	maxMB, _ := strconv.ParseInt(getEnv("UPLOAD_MAX_MB", "3"), 10, 64)
	if maxMB <= 0 {
		maxMB = 3
	}

	return UploadConfig{
		Dir:         getEnv("UPLOAD_DIR", "UploadedImages"),
		MaxFileSize: maxMB * 1024 * 1024,
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" && c.IsDev() {
		return "*"
	}
	return origins
}
