package config

import (
	"os"
)

type Config struct {
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	RedisHost     string
	RedisPort     string
	SessionSecret string
	JWTSecret     string
	GinMode       string
	ServerPort    string
	SeedData      bool
}

func Load() *Config {
	return &Config{
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "3306"),
		DBUser:        getEnv("DB_USER", "taskboard"),
		DBPassword:    getEnv("DB_PASSWORD", "taskboard"),
		DBName:        getEnv("DB_NAME", "taskboard"),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		SessionSecret: getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		JWTSecret:     getEnv("JWT_SECRET", "default-jwt-key-change-me"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		SeedData:      getEnv("SEED_DATA", "") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
