// Package config loads runtime configuration for the notes terminal client.
//
// Sources, later ones overriding earlier ones:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment, after loading an optional .env file from the working
//     directory: NOTES_API_URL, NOTES_DB_PATH, NOTES_LOG_LEVEL,
//     NOTES_REDIRECT_DELAY.
//  3. Optional JSON file selected with -c or -config.
//  4. Command-line flags.
//
// Flags
//
//	-a string   base URL of the notes API (e.g. http://localhost:8000/api)
//	-d string   path of the local session database
//	-l string   log level: debug, info, warn, error
//
// JSON schema (durations accept "2s" or integer nanoseconds):
//
//	{
//	  "api_base_url": "http://localhost:8000/api",
//	  "db_path": "session.db",
//	  "redirect_delay": "2s",
//	  "log_level": "info"
//	}
package config
