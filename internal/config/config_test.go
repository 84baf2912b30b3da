package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		APIToken:     "tok",
		APIBaseURL:   "https://api.track.toggl.com/api/v8",
		FetchDelay:   time.Second,
		TargetClient: "ACME",
		HourlyRate:   100,
		SQLiteDBPath: "./test.db",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:        "missing API token",
			mutate:      func(c *Config) { c.APIToken = "  " },
			wantErr:     true,
			errorString: "TOGGL_API_TOKEN is required",
		},
		{
			name:        "invalid API URL scheme",
			mutate:      func(c *Config) { c.APIBaseURL = "ftp://example.com" },
			wantErr:     true,
			errorString: "invalid API URL scheme 'ftp'",
		},
		{
			name:        "missing target client",
			mutate:      func(c *Config) { c.TargetClient = "" },
			wantErr:     true,
			errorString: "TARGET_CLIENT is required",
		},
		{
			name:        "zero hourly rate",
			mutate:      func(c *Config) { c.HourlyRate = 0 },
			wantErr:     true,
			errorString: "invalid hourly rate 0",
		},
		{
			name:        "negative look-back",
			mutate:      func(c *Config) { c.LookbackWeeks = -1 },
			wantErr:     true,
			errorString: "invalid look-back -1",
		},
		{
			name:        "excessive look-back",
			mutate:      func(c *Config) { c.LookbackWeeks = 60 },
			wantErr:     true,
			errorString: "invalid look-back 60: must be at most 52 weeks",
		},
		{
			name:        "negative fetch delay",
			mutate:      func(c *Config) { c.FetchDelay = -time.Second },
			wantErr:     true,
			errorString: "invalid fetch delay",
		},
		{
			name:        "empty database path",
			mutate:      func(c *Config) { c.SQLiteDBPath = "" },
			wantErr:     true,
			errorString: "SQLite database path cannot be empty",
		},
		{
			name: "spreadsheet without sheet name",
			mutate: func(c *Config) {
				c.GoogleSpreadsheetID = "sheet-id"
				c.GoogleSheetName = " "
			},
			wantErr:     true,
			errorString: "GOOGLE_SHEET_NAME cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected validation error")
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Fatalf("error %q does not contain %q", err.Error(), tt.errorString)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected valid config, got %v", err)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	// Environment comes from the process; clear the keys we assert on.
	for _, key := range []string{
		"TOGGL_API_TOKEN", "TOGGL_API_URL", "FETCH_DELAY",
		"TARGET_CLIENT", "HOURLY_RATE", "LOOKBACK_WEEKS", "SQLITE_DB_PATH",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.APIBaseURL != "https://api.track.toggl.com/api/v8" {
		t.Errorf("API URL default: got %q", cfg.APIBaseURL)
	}
	if cfg.FetchDelay != time.Second {
		t.Errorf("fetch delay default: got %v, want 1s", cfg.FetchDelay)
	}
	if cfg.LookbackWeeks != 0 {
		t.Errorf("look-back default: got %d, want 0", cfg.LookbackWeeks)
	}
	if cfg.SQLiteDBPath != "./data/fattura.db" {
		t.Errorf("db path default: got %q", cfg.SQLiteDBPath)
	}
	if cfg.ExportEnabled() {
		t.Error("export should be disabled without a spreadsheet id")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("TOGGL_API_TOKEN", "tok")
	t.Setenv("TARGET_CLIENT", "ACME")
	t.Setenv("HOURLY_RATE", "120")
	t.Setenv("LOOKBACK_WEEKS", "12")
	t.Setenv("FETCH_DELAY", "250ms")
	t.Setenv("GOOGLE_SPREADSHEET_ID", "sheet-id")

	cfg := Load()
	if cfg.APIToken != "tok" || cfg.TargetClient != "ACME" {
		t.Errorf("credentials not loaded: %+v", cfg)
	}
	if cfg.HourlyRate != 120 {
		t.Errorf("hourly rate: got %d, want 120", cfg.HourlyRate)
	}
	if cfg.LookbackWeeks != 12 {
		t.Errorf("look-back: got %d, want 12", cfg.LookbackWeeks)
	}
	if cfg.FetchDelay != 250*time.Millisecond {
		t.Errorf("fetch delay: got %v, want 250ms", cfg.FetchDelay)
	}
	if !cfg.ExportEnabled() {
		t.Error("export should be enabled with a spreadsheet id")
	}
}
