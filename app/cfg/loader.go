package cfg

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Storage
	DataDir   string `long:"data-dir" env:"RSS_LENS_DATA_DIR" description:"Directory for read state, favorites and logs (default: $XDG_DATA_HOME/rss-lens)"`
	FeedsFile string `long:"feeds-file" env:"RSS_LENS_FEEDS_FILE" description:"Feed source file: .json pairs, .yml or .opml (default: <data-dir>/custom_feeds.json)"`

	// Fetching
	WorkerCount  int    `long:"workers" env:"RSS_LENS_WORKERS" default:"10" description:"Maximum parallel feed fetches (capped at 10)"`
	Timeout      int    `long:"timeout" env:"RSS_LENS_TIMEOUT" default:"5" description:"Per-feed fetch timeout in seconds"`
	HostInterval int    `long:"host-interval" env:"RSS_LENS_HOST_INTERVAL" default:"0" description:"Minimum milliseconds between requests to the same host (0 disables)"`
	UserAgent    string `long:"user-agent" env:"RSS_LENS_USER_AGENT" description:"User agent string for HTTP requests (default: rss-lens/<version>)"`

	// Application metadata
	Timezone string `long:"timezone" env:"TZ" description:"Timezone for displayed timestamps (e.g., UTC, Europe/Berlin)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

// Load parses the process arguments and environment. It returns nil, nil
// when help was requested.
func Load() (*Cfg, error) {
	return LoadArgs(os.Args[1:])
}

func LoadArgs(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if raw.WorkerCount <= 0 {
		return nil, fmt.Errorf("workers must be positive, got %d", raw.WorkerCount)
	}
	if raw.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %d", raw.Timeout)
	}
	if raw.HostInterval < 0 {
		return nil, fmt.Errorf("host interval must not be negative, got %d", raw.HostInterval)
	}

	dataDir := raw.DataDir
	if dataDir == "" {
		var err error
		if dataDir, err = defaultDataDir(); err != nil {
			return nil, err
		}
	}

	version := GetVersion()
	cfg := &Cfg{
		DataDir:      dataDir,
		FeedsFile:    cmp.Or(raw.FeedsFile, filepath.Join(dataDir, "custom_feeds.json")),
		WorkerCount:  raw.WorkerCount,
		Timeout:      time.Duration(raw.Timeout) * time.Second,
		HostInterval: time.Duration(raw.HostInterval) * time.Millisecond,
		UserAgent:    cmp.Or(raw.UserAgent, "rss-lens/"+version),
		Timezone:     raw.Timezone,
		Debug:        raw.Debug,
		Version:      version,
	}

	return cfg, nil
}

// ApplyTimezone sets the process-wide display location. An empty name keeps
// the system default.
func ApplyTimezone(timezone string) error {
	if timezone == "" {
		return nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return err
	}
	time.Local = loc
	return nil
}

func defaultDataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "rss-lens"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "rss-lens"), nil
}
