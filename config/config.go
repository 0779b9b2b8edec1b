package config

import (
	"log"
	"os"
)

// Config holds all process configuration, read from the environment once at
// startup and passed down by value.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	FrontendURL string
}

func Load() Config {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	if cfg.JWTSecret == "" {
		// Known weakness kept for compatibility: tokens signed with the
		// placeholder secret are forgeable. Set JWT_SECRET in production.
		log.Println("⚠️ JWT_SECRET not set, using insecure default")
		cfg.JWTSecret = "secret"
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
