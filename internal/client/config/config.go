package config

import (
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for the notes client.
type Config struct {
	// APIBaseURL is the prefix of the register/login endpoints.
	APIBaseURL string
	// DBPath is the SQLite file holding the persisted session.
	DBPath string
	// RedirectDelay is how long the registration success message stays on
	// screen before the client moves to the login page.
	RedirectDelay time.Duration
	LogLevel      string
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000/api"
	c.DBPath = "session.db"
	c.RedirectDelay = 2 * time.Second
	c.LogLevel = "info"
}

// LoadConfig builds a Config from defaults, environment (including .env),
// JSON and flags, in that order of precedence.
func LoadConfig() *Config {
	// a missing .env is fine, the process environment is used as is
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
