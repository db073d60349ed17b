package cfg

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadArgsDefaults(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)
	unsetEnv(t, "RSS_LENS_DATA_DIR", "RSS_LENS_FEEDS_FILE", "RSS_LENS_USER_AGENT",
		"RSS_LENS_WORKERS", "RSS_LENS_TIMEOUT", "RSS_LENS_HOST_INTERVAL")

	cfg, err := LoadArgs(nil)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	expectedDir := filepath.Join(dataHome, "rss-lens")
	if cfg.DataDir != expectedDir {
		t.Errorf("Expected data dir '%s', got '%s'", expectedDir, cfg.DataDir)
	}
	if cfg.FeedsFile != filepath.Join(expectedDir, "custom_feeds.json") {
		t.Errorf("Expected feeds file under data dir, got '%s'", cfg.FeedsFile)
	}
	if cfg.WorkerCount != 10 {
		t.Errorf("Expected worker count 10, got %d", cfg.WorkerCount)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Expected timeout 5s, got %s", cfg.Timeout)
	}
	if cfg.HostInterval != 0 {
		t.Errorf("Expected host interval disabled, got %s", cfg.HostInterval)
	}
	if cfg.UserAgent != "rss-lens/"+GetVersion() {
		t.Errorf("Expected default user agent, got '%s'", cfg.UserAgent)
	}
	if Get() != cfg {
		t.Error("Expected Get to return the loaded configuration")
	}
}

func TestLoadArgsFlagsAndEnv(t *testing.T) {
	dir := t.TempDir()
	unsetEnv(t, "RSS_LENS_FEEDS_FILE", "RSS_LENS_TIMEOUT", "RSS_LENS_HOST_INTERVAL", "RSS_LENS_USER_AGENT")
	t.Setenv("RSS_LENS_DATA_DIR", dir)
	t.Setenv("RSS_LENS_WORKERS", "4")

	cfg, err := LoadArgs([]string{
		"--feeds-file", "/etc/rss-lens/feeds.yml",
		"--timeout", "12",
		"--host-interval", "250",
		"--user-agent", "Test Agent",
		"--timezone", "UTC",
		"--debug",
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.DataDir != dir {
		t.Errorf("Expected data dir '%s', got '%s'", dir, cfg.DataDir)
	}
	if cfg.WorkerCount != 4 {
		t.Errorf("Expected worker count 4, got %d", cfg.WorkerCount)
	}
	if cfg.FeedsFile != "/etc/rss-lens/feeds.yml" {
		t.Errorf("Expected feeds file '/etc/rss-lens/feeds.yml', got '%s'", cfg.FeedsFile)
	}
	if cfg.Timeout != 12*time.Second {
		t.Errorf("Expected timeout 12s, got %s", cfg.Timeout)
	}
	if cfg.HostInterval != 250*time.Millisecond {
		t.Errorf("Expected host interval 250ms, got %s", cfg.HostInterval)
	}
	if cfg.UserAgent != "Test Agent" {
		t.Errorf("Expected user agent 'Test Agent', got '%s'", cfg.UserAgent)
	}
	if cfg.Timezone != "UTC" {
		t.Errorf("Expected timezone 'UTC', got '%s'", cfg.Timezone)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}

	if cfg.ReadFile() != filepath.Join(dir, "read_articles.json") {
		t.Errorf("Unexpected read file: %s", cfg.ReadFile())
	}
	if cfg.FavoritesFile() != filepath.Join(dir, "favorites.json") {
		t.Errorf("Unexpected favorites file: %s", cfg.FavoritesFile())
	}
	if cfg.LogFile() != filepath.Join(dir, "rss-lens.log") {
		t.Errorf("Unexpected log file: %s", cfg.LogFile())
	}
	if cfg.ExportFile() != filepath.Join(dir, "favorites.xml") {
		t.Errorf("Unexpected export file: %s", cfg.ExportFile())
	}
}

func TestLoadArgsInvalid(t *testing.T) {
	unsetEnv(t, "RSS_LENS_WORKERS", "RSS_LENS_TIMEOUT", "RSS_LENS_HOST_INTERVAL")
	t.Setenv("RSS_LENS_DATA_DIR", t.TempDir())

	tests := []struct {
		name string
		args []string
	}{
		{name: "zero workers", args: []string{"--workers", "0"}},
		{name: "zero timeout", args: []string{"--timeout", "0"}},
		{name: "negative interval", args: []string{"--host-interval=-1"}},
		{name: "unknown flag", args: []string{"--port", "8080"}},
		{name: "not a number", args: []string{"--workers", "many"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadArgs(tt.args); err == nil {
				t.Error("Expected error for invalid configuration")
			}
		})
	}
}

func TestApplyTimezone(t *testing.T) {
	original := time.Local
	defer func() { time.Local = original }()

	if err := ApplyTimezone(""); err != nil {
		t.Errorf("Expected empty timezone to be accepted, got %v", err)
	}
	if err := ApplyTimezone("Not/AZone"); err == nil {
		t.Error("Expected error for invalid timezone")
	}
	if err := ApplyTimezone("UTC"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if time.Local.String() != "UTC" {
		t.Errorf("Expected local timezone UTC, got %s", time.Local)
	}
}
