// Package config loads server settings from the environment, with a
// best-effort .env file loader for local development.
package config

import (
	"log"
	"os"
	"strings"
)

// Config is the resolved runtime configuration of the service.
type Config struct {
	Port               string
	CORSAllowOrigin    []string
	DatabaseURL        string
	Env                string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	UIRedirectURL      string
}

// envAliases maps accepted ENV spellings onto canonical names. Anything
// unrecognized resolves to dev.
var envAliases = map[string]string{
	"production":  "production",
	"prod":        "production",
	"staging":     "staging",
	"local":       "local",
	"development": "dev",
	"dev":         "dev",
}

// Load resolves configuration from the process environment.
func Load() Config {
	loadEnvFiles(".env", "cmd/.env")

	cfg := Config{
		Port:               envOr("PORT", "8080"),
		CORSAllowOrigin:    splitOrigins(envOr("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		Env:                canonicalEnv(os.Getenv("ENV")),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		UIRedirectURL:      os.Getenv("UI_REDIRECT_URL"),
	}

	if cfg.Env == "production" && cfg.DatabaseURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func canonicalEnv(raw string) string {
	if env, ok := envAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return env
	}
	return "dev"
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, part := range strings.Split(raw, ",") {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
