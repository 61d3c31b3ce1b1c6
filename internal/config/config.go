package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
	Directory  DirectoryConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Name               string
	Version            string
	Port               int
	Env                string
	LogLevel           string
	CORSAllowedOrigins []string
}

// AttendanceConfig controls summary computation and caching.
type AttendanceConfig struct {
	// CacheTTL is the summary freshness window. Keep the 300s default unless
	// an operator has a reason to trade freshness for database load.
	CacheTTL          time.Duration
	Timezone          *time.Location
	HierarchyMaxDepth int
}

// DirectoryConfig maps login aliases that have no employee record to a fixed identity.
type DirectoryConfig struct {
	SuperUserAliases  []string
	SuperUserFullName string
	SuperUserEmail    string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	} else if err != nil {
		slog.Info("No .env file found, using process environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Name:               getEnv("APP_NAME", "attendance-summary"),
		Version:            getEnv("APP_VERSION", "v1.0.0"),
		Port:               appPort,
		Env:                getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Attendance configuration
	cacheTTL, err := time.ParseDuration(getEnv("ATTENDANCE_CACHE_TTL", "300s"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_CACHE_TTL: %w", err)
	}

	loc, err := time.LoadLocation(getEnv("ATTENDANCE_TIMEZONE", "Local"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_TIMEZONE: %w", err)
	}

	maxDepth, err := strconv.Atoi(getEnv("HIERARCHY_MAX_DEPTH", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid HIERARCHY_MAX_DEPTH: %w", err)
	}

	config.Attendance = AttendanceConfig{
		CacheTTL:          cacheTTL,
		Timezone:          loc,
		HierarchyMaxDepth: maxDepth,
	}

	config.Directory = DirectoryConfig{
		SuperUserAliases:  getEnvSlice("SUPERUSER_ALIASES", ""),
		SuperUserFullName: getEnv("SUPERUSER_FULL_NAME", ""),
		SuperUserEmail:    getEnv("SUPERUSER_EMAIL", ""),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Attendance.CacheTTL <= 0 {
		return fmt.Errorf("ATTENDANCE_CACHE_TTL must be positive")
	}
	if c.Attendance.HierarchyMaxDepth < 0 {
		return fmt.Errorf("HIERARCHY_MAX_DEPTH must not be negative")
	}
	if len(c.Directory.SuperUserAliases) > 0 && c.Directory.SuperUserFullName == "" {
		return fmt.Errorf("SUPERUSER_FULL_NAME is required when SUPERUSER_ALIASES is set")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
