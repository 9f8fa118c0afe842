package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	Env             string
	DatabaseURL     string
	CatalogStore    string
	SQLitePath      string
	CatalogSeedFile string
	CatalogTTL      time.Duration
	AdvisorProvider string
	AdvisorModel    string
	AdvisorTimeout  time.Duration
	OpenAIAPIKey    string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")
	store := normalizeStoreType(getEnv("CATALOG_STORE", "memory"))

	if store == "postgres" && dbURL == "" {
		log.Printf("DATABASE_URL is required when CATALOG_STORE=postgres")
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		Env:             env,
		DatabaseURL:     dbURL,
		CatalogStore:    store,
		SQLitePath:      getEnv("SQLITE_PATH", "./data/catalog.db"),
		CatalogSeedFile: getEnv("CATALOG_SEED_FILE", ""),
		CatalogTTL:      getEnvDuration("CATALOG_TTL_SECONDS", time.Hour),
		AdvisorProvider: strings.ToLower(getEnv("ADVISOR_PROVIDER", "none")),
		AdvisorModel:    getEnv("ADVISOR_MODEL", "gpt-4o-mini"),
		AdvisorTimeout:  getEnvDuration("ADVISOR_TIMEOUT_SECONDS", 10*time.Second),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	secs, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || secs <= 0 {
		log.Printf("ignoring invalid %s=%q", key, raw)
		return def
	}
	return time.Duration(secs) * time.Second
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

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "postgres", "pg":
		return "postgres"
	case "sqlite":
		return "sqlite"
	default:
		return "memory"
	}
}
