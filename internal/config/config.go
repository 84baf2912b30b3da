package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Time-tracking API
	APIToken   string
	APIBaseURL string
	// FetchDelay is the courtesy pause before each non-cached project or
	// client fetch.
	FetchDelay time.Duration

	// Billing
	TargetClient  string
	HourlyRate    int64 // whole currency units per hour
	LookbackWeeks int   // backdates the window start to catch late entries

	// Database
	SQLiteDBPath string

	// Optional invoice export
	GoogleSpreadsheetID string
	GoogleSheetName     string
}

func Load() *Config {
	return &Config{
		APIToken:   getEnv("TOGGL_API_TOKEN", ""),
		APIBaseURL: getEnv("TOGGL_API_URL", "https://api.track.toggl.com/api/v8"),
		FetchDelay: getEnvDuration("FETCH_DELAY", time.Second),

		TargetClient:  getEnv("TARGET_CLIENT", ""),
		HourlyRate:    int64(getEnvInt("HOURLY_RATE", 0)),
		LookbackWeeks: getEnvInt("LOOKBACK_WEEKS", 0),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/fattura.db"),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:     getEnv("GOOGLE_SHEET_NAME", "Invoices"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if strings.TrimSpace(c.APIToken) == "" {
		errors = append(errors, "TOGGL_API_TOKEN is required")
	}

	if parsed, err := url.Parse(c.APIBaseURL); err != nil {
		errors = append(errors, fmt.Sprintf("invalid API URL '%s': %v", c.APIBaseURL, err))
	} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
		errors = append(errors, fmt.Sprintf("invalid API URL scheme '%s': must be 'http' or 'https'", parsed.Scheme))
	}

	if strings.TrimSpace(c.TargetClient) == "" {
		errors = append(errors, "TARGET_CLIENT is required")
	}

	if c.HourlyRate < 1 {
		errors = append(errors, fmt.Sprintf("invalid hourly rate %d: must be a positive integer", c.HourlyRate))
	}

	if c.LookbackWeeks < 0 {
		errors = append(errors, fmt.Sprintf("invalid look-back %d: must be zero or more weeks", c.LookbackWeeks))
	} else if c.LookbackWeeks > 52 {
		errors = append(errors, fmt.Sprintf("invalid look-back %d: must be at most 52 weeks", c.LookbackWeeks))
	}

	if c.FetchDelay < 0 {
		errors = append(errors, fmt.Sprintf("invalid fetch delay %v: must not be negative", c.FetchDelay))
	}

	if c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path cannot be empty")
	} else {
		dir := filepath.Dir(c.SQLiteDBPath)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	}

	// Export is optional, but when a spreadsheet is configured it needs a
	// sheet name to append to.
	if c.GoogleSpreadsheetID != "" && strings.TrimSpace(c.GoogleSheetName) == "" {
		errors = append(errors, "GOOGLE_SHEET_NAME cannot be empty when GOOGLE_SPREADSHEET_ID is set")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// ExportEnabled reports whether the post-commit invoice export is
// configured.
func (c *Config) ExportEnabled() bool {
	return c.GoogleSpreadsheetID != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
