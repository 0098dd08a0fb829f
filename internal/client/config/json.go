package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/notekeeper/internal/flagx"
	"github.com/dmitrijs2005/notekeeper/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations go through
// timex.Duration so they can be written as "2s".
type JsonConfig struct {
	APIBaseURL    string         `json:"api_base_url"`
	DBPath        string         `json:"db_path"`
	RedirectDelay timex.Duration `json:"redirect_delay"`
	LogLevel      string         `json:"log_level"`
}

// parseJson overlays cfg with the non-empty values of the file given by -c or
// -config. Without either flag it does nothing. Read or decode failures
// panic, like flag errors do.
func parseJson(cfg *Config) {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.DBPath != "" {
		cfg.DBPath = jc.DBPath
	}
	if jc.RedirectDelay.Duration > 0 {
		cfg.RedirectDelay = jc.RedirectDelay.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
