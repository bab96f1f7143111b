package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port                    string
	CORSAllowOrigin         []string
	DatabaseURL             string
	Env                     string
	InferenceBaseURL        string
	InferenceAPIKey         string
	InferenceSummaryModel   string
	InferenceSentimentModel string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	for _, path := range []string{".env", "cmd/.env"} {
		_ = godotenv.Load(path)
	}

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:                    getEnv("PORT", "8080"),
		CORSAllowOrigin:         splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		DatabaseURL:             dbURL,
		Env:                     env,
		InferenceBaseURL:        getEnv("INFERENCE_API_URL", "https://router.huggingface.co"),
		InferenceAPIKey:         getEnv("INFERENCE_API_KEY", ""),
		InferenceSummaryModel:   getEnv("INFERENCE_SUMMARY_MODEL", "facebook/bart-large-cnn"),
		InferenceSentimentModel: getEnv("INFERENCE_SENTIMENT_MODEL", "cardiffnlp/twitter-roberta-base-sentiment-latest"),
	}
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
