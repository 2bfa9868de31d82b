package main

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	// Server
	PortAddress     string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	StaticDir       string

	// Storage
	DataDir string

	// Accounts
	BcryptCost    int
	AdminEmail    string
	AdminPassword string

	LogLevel slog.Level
}

// LoadConfig reads envFile if it exists, then builds the config from the environment.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) *Config {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			slog.Warn("could not load env file", "path", envFile, "error", err)
		}
	}

	return &Config{
		PortAddress:     ":" + getEnv("PORT", "3000"),
		ReadTimeout:     getEnvAsDuration("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvAsDuration("WRITE_TIMEOUT", 15*time.Second),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 5*time.Second),
		StaticDir:       getEnv("STATIC_DIR", "public"),

		DataDir: getEnv("DATA_DIR", "data"),

		BcryptCost:    getEnvAsBcryptCost("BCRYPT_COST", bcrypt.DefaultCost),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@example.com"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),

		LogLevel: getEnvAsLogLevel("LOG_LEVEL", slog.LevelInfo),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsBcryptCost(key string, defaultValue int) int {
	cost := getEnvAsInt(key, defaultValue)
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return defaultValue
	}
	return cost
}

func getEnvAsLogLevel(key string, defaultValue slog.Level) slog.Level {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return defaultValue
	}
	return level
}
