package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         int
	LogLevel     string
	DatabaseURL  string
	NatsURL      string
	NatsToken    string
	NewsAPIKey   string
	NewsAPIURL   string
	NewsRPS      float64
	WikipediaURL string
	StaticDir    string
	APIToken     string
	CORSOrigins  []string
	SessionTTL   time.Duration
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present; real environment variables win.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:         envInt("SCOUT_PORT", 8760),
		LogLevel:     envStr("LOG_LEVEL", "info"),
		DatabaseURL:  envStr("DATABASE_URL", ""),
		NatsURL:      envStr("NATS_URL", ""),
		NatsToken:    envStr("NATS_TOKEN", ""),
		NewsAPIKey:   envStr("NEWS_API_KEY", ""),
		NewsAPIURL:   envStr("NEWS_API_URL", "https://newsapi.org"),
		NewsRPS:      envFloat("NEWS_RPS", 1),
		WikipediaURL: envStr("WIKIPEDIA_URL", "https://en.wikipedia.org/api/rest_v1"),
		StaticDir:    envStr("STATIC_DIR", ""),
		APIToken:     envStr("SCOUT_API_TOKEN", ""),
		CORSOrigins:  envList("CORS_ORIGINS"),
		SessionTTL:   envDuration("SESSION_TTL", 24*time.Hour),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
