package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/notekeeper/internal/flagx"
)

// parseFlags applies -a, -d and -l. Other arguments (for example -c, which
// parseJson handles) are filtered out first so they do not cause errors.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the notes API")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "path of the local session database")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
