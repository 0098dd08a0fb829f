package config

import (
	"os"
	"strings"
	"time"
)

func getEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

// parseEnv overlays cfg with NOTES_* environment variables. Empty values and
// unparsable durations leave the current value untouched.
func parseEnv(cfg *Config) {
	if v, ok := getEnv("NOTES_API_URL"); ok {
		cfg.APIBaseURL = v
	}
	if v, ok := getEnv("NOTES_DB_PATH"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnv("NOTES_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := getEnv("NOTES_REDIRECT_DELAY"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RedirectDelay = d
		}
	}
}
