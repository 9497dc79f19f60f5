package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode    string
	Port       string
	Store      string
	Database   DatabaseConfig
	JWT        JWTConfig
	Encryption EncryptionConfig
	OTP        OTPConfig
	Mail       MailConfig
	Seed       SeedConfig

	// EnvFileLoaded reports whether a .env file was found
	EnvFileLoaded bool
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// JWTConfig holds session token configuration
type JWTConfig struct {
	Secret          string
	AccessTokenMins int
}

// EncryptionConfig holds the one-time code cipher secrets
type EncryptionConfig struct {
	Key  string
	Salt string
}

// OTPConfig holds verification code settings
type OTPConfig struct {
	TTLMinutes int
}

// MailConfig holds SMTP transport and template settings.
// An empty Host disables delivery; messages stay in the outbox.
type MailConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	From         string
	SupportEmail string
	FrontendURL  string
	RetryCron    string
}

// SeedConfig holds the bootstrap admin account
type SeedConfig struct {
	AdminEmail    string
	AdminPassword string
}

const (
	devJWTSecret      = "dev_jwt_secret"
	devEncryptionKey  = "dev_encryption_key"
	devEncryptionSalt = "dev_encryption_salt"
)

// Store backends
const (
	StoreMySQL  = "mysql"
	StoreMemory = "memory"
)

// ErrMissingSecret is returned in prod when a required secret is unset
var ErrMissingSecret = errors.New("required secret is not set")

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (missing file is fine, the environment wins)
	envLoaded := godotenv.Load() == nil

	// Get APP_MODE (default to "dev") - trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	config := &Config{
		AppMode:       appMode,
		Port:          getEnv("PORT", "3000"),
		Store:         strings.TrimSpace(getEnv("STORE", StoreMySQL)),
		Database:      loadDatabaseConfig(appMode),
		JWT:           loadJWTConfig(appMode),
		Encryption:    loadEncryptionConfig(appMode),
		OTP:           OTPConfig{TTLMinutes: getEnvInt("OTP_TTL_MINUTES", 10)},
		Mail:          loadMailConfig(),
		Seed:          SeedConfig{AdminEmail: getEnv("ADMIN_EMAIL", ""), AdminPassword: getEnv("ADMIN_PASSWORD", "")},
		EnvFileLoaded: envLoaded,
	}

	if config.Store != StoreMySQL && config.Store != StoreMemory {
		return nil, fmt.Errorf("invalid STORE: '%s' (must be '%s' or '%s')", config.Store, StoreMySQL, StoreMemory)
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// validate requires real secrets outside dev
func (c *Config) validate() error {
	if c.IsDev() {
		return nil
	}
	for name, value := range map[string]string{
		"PROD_JWT_SECRET":     c.JWT.Secret,
		"APP_ENCRYPTION_KEY":  c.Encryption.Key,
		"APP_ENCRYPTION_SALT": c.Encryption.Salt,
	} {
		if value == "" {
			return fmt.Errorf("%w: %s", ErrMissingSecret, name)
		}
	}
	return nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := modePrefix(mode)

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "petfind"),
	}
}

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	prefix := modePrefix(mode)

	secret := getEnv(prefix+"JWT_SECRET", getEnv("JWT_SECRET", ""))
	if secret == "" && mode == "dev" {
		secret = devJWTSecret
	}

	return JWTConfig{
		Secret:          secret,
		AccessTokenMins: getEnvInt("ACCESS_TOKEN_MINUTES", 60),
	}
}

// loadEncryptionConfig loads the code cipher secrets
func loadEncryptionConfig(mode string) EncryptionConfig {
	cfg := EncryptionConfig{
		Key:  getEnv("APP_ENCRYPTION_KEY", ""),
		Salt: getEnv("APP_ENCRYPTION_SALT", ""),
	}
	if mode == "dev" {
		if cfg.Key == "" {
			cfg.Key = devEncryptionKey
		}
		if cfg.Salt == "" {
			cfg.Salt = devEncryptionSalt
		}
	}
	return cfg
}

// loadMailConfig loads SMTP and notification settings
func loadMailConfig() MailConfig {
	return MailConfig{
		Host:         getEnv("SMTP_HOST", ""),
		Port:         getEnvInt("SMTP_PORT", 587),
		User:         getEnv("SMTP_USER", ""),
		Password:     getEnv("SMTP_PASS", ""),
		From:         getEnv("SMTP_FROM", "no-reply@petfind.app"),
		SupportEmail: getEnv("SUPPORT_EMAIL", "support@petfind.app"),
		FrontendURL:  getEnv("FRONTEND_URL", "http://localhost:5173"),
		RetryCron:    getEnv("MAIL_RETRY_CRON", "@every 5m"),
	}
}

func modePrefix(mode string) string {
	if mode == "prod" {
		return "PROD_"
	}
	return "DEV_"
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt parses an integer variable, falling back on bad input
func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// MailEnabled reports whether an SMTP transport is configured
func (c *Config) MailEnabled() bool {
	return c.Mail.Host != ""
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return c.Mail.FrontendURL
	}
	return origins
}
