// Package config loads runtime settings from the environment.
//
// Settings come from process environment variables, optionally seeded from a
// .env file in the working directory (convenient during development; absent
// in production deployments).
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/ironsheep/mammo-screen-mcp/internal/assess"
)

// Config holds all runtime settings for the server.
type Config struct {
	// GeminiAPIKey authenticates risk-assessment calls. When empty the
	// mammo_assess tool reports assessment as unavailable; every other
	// tool keeps working.
	GeminiAPIKey string

	// GeminiModel selects the generative model. Empty selects the default.
	GeminiModel string

	// OCRLanguage is the Tesseract language code for annotation
	// extraction.
	OCRLanguage string

	// VerdictThreshold overrides the heuristic accept threshold when set
	// in the environment; zero means use the built-in default.
	VerdictThreshold float64
}

// Load reads configuration from the environment. A .env file is loaded
// first if present; real environment variables win over it.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  os.Getenv("GEMINI_MODEL"),
		OCRLanguage:  os.Getenv("MAMMO_OCR_LANGUAGE"),
	}
	if cfg.GeminiModel == "" {
		cfg.GeminiModel = assess.DefaultModel
	}
	if cfg.OCRLanguage == "" {
		cfg.OCRLanguage = "eng"
	}
	if v := os.Getenv("MAMMO_VERDICT_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 && f < 1 {
			cfg.VerdictThreshold = f
		}
	}
	return cfg
}
