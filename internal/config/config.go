// Package config loads process configuration from the environment once at
// startup. Components receive their settings explicitly through constructors;
// nothing reads environment variables after Load returns.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all settings the service needs for its lifetime.
type Config struct {
	// Port is the HTTP listen port.
	Port string

	// GeminiAPIKey authenticates calls to the Gemini API (statement reading
	// and transcript summarization).
	GeminiAPIKey string

	// YouTubeAPIKey authenticates calls to the YouTube Data API v3.
	YouTubeAPIKey string

	// FrontendOrigin is the single origin allowed by CORS.
	FrontendOrigin string
}

// Load reads configuration from the environment, picking up a .env file from
// the working directory when one exists. Missing keys fall back to defaults;
// empty API keys are tolerated here and reported by the caller.
func Load() *Config {
	// A missing .env file is not an error; containers set real env vars.
	_ = godotenv.Load()

	return &Config{
		Port:           getenv("PORT", "8000"),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		YouTubeAPIKey:  os.Getenv("YOUTUBE_API_KEY"),
		FrontendOrigin: getenv("FRONTEND_ORIGIN", "http://localhost:3000"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
