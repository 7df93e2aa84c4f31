package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	Env             string

	GroqAPIKey string
	GroqModel  string

	EmbedBackend     string
	GeminiAPIKey     string
	GeminiEmbedModel string

	ReportDir string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	_ = godotenv.Load()
	_ = godotenv.Load("cmd/.env")

	return Config{
		Port:             getEnv("PORT", "8080"),
		CORSAllowOrigin:  splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		Env:              normalizeEnv(getEnv("ENV", "dev")),
		GroqAPIKey:       os.Getenv("GROQ_API_KEY"),
		GroqModel:        getEnv("GROQ_MODEL", ""),
		EmbedBackend:     normalizeEmbedBackend(getEnv("EMBED_BACKEND", "local")),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiEmbedModel: getEnv("GEMINI_EMBED_MODEL", ""),
		ReportDir:        getEnv("REPORT_DIR", "./reports"),
	}
}

// Validate reports configuration problems that must stop startup.
func (c Config) Validate() error {
	if strings.TrimSpace(c.GroqAPIKey) == "" {
		return errors.New("GROQ_API_KEY is required")
	}
	if c.EmbedBackend == "gemini" && strings.TrimSpace(c.GeminiAPIKey) == "" {
		return errors.New("GEMINI_API_KEY is required when EMBED_BACKEND=gemini")
	}
	return nil
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeEmbedBackend(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "gemini":
		return "gemini"
	default:
		return "local"
	}
}
