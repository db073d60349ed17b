package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lysyi3m/rss-lens/app/cfg"
	"github.com/lysyi3m/rss-lens/app/feed"
	"github.com/lysyi3m/rss-lens/app/state"
	"github.com/lysyi3m/rss-lens/app/tasks"
	"github.com/lysyi3m/rss-lens/app/tui"
	"github.com/lysyi3m/rss-lens/app/view"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "rss-lens: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	config, err := cfg.Load()
	if err != nil {
		return err
	}
	if config == nil {
		// Help was shown
		return nil
	}

	if err := os.MkdirAll(config.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	logFile, err := os.OpenFile(config.LogFile(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	logLevel := slog.LevelInfo
	if config.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{
		Level: logLevel,
	})))

	slog.Info("Starting rss-lens", "version", config.Version, "data_dir", config.DataDir)

	if err := cfg.ApplyTimezone(config.Timezone); err != nil {
		slog.Warn("Invalid timezone, using system default", "timezone", config.Timezone, "error", err)
	}

	sources, err := feed.LoadSources(config.FeedsFile)
	if err != nil {
		slog.Error("Failed to load feed sources, continuing with none", "path", config.FeedsFile, "error", err)
		sources = nil
	}
	slog.Info("Loaded feed sources", "path", config.FeedsFile, "count", len(sources))

	store := state.Open(config.ReadFile(), config.FavoritesFile())

	httpClient := &http.Client{}

	var limiter *feed.HostLimiter
	if config.HostInterval > 0 {
		limiter = feed.NewHostLimiter(config.HostInterval)
	}

	fetcher := feed.NewFetcher(httpClient, feed.NewParser(), feed.NewFilterer(), limiter, config.UserAgent, config.Timeout)

	session := tasks.NewSession()
	aggregator := tasks.NewAggregator(fetcher, config.WorkerCount)
	aggregator.Start(context.Background(), session, sources, store)

	model := tui.New(tui.Options{
		View:       view.New(session, store, len(sources)),
		Store:      store,
		Extractor:  feed.NewContentExtractor(httpClient, config.UserAgent, config.Timeout),
		Generator:  feed.NewGenerator(config.Version),
		Cleaner:    feed.NewCleaner(),
		FeedsFile:  config.FeedsFile,
		ExportPath: config.ExportFile(),
	})

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}

	// Outstanding fetches are abandoned on exit
	slog.Info("rss-lens stopped")

	return nil
}
