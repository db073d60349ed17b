package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	DefaultTimeout = 5 * time.Second

	maxBodySize = 10 << 20
)

type Fetcher struct {
	httpClient *http.Client
	parser     *Parser
	filterer   *Filterer
	limiter    *HostLimiter
	userAgent  string
	timeout    time.Duration
}

// NewFetcher builds a Fetcher sharing httpClient across all sources.
// limiter may be nil; a non-positive timeout falls back to DefaultTimeout.
func NewFetcher(httpClient *http.Client, parser *Parser, filterer *Filterer, limiter *HostLimiter, userAgent string, timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{
		httpClient: httpClient,
		parser:     parser,
		filterer:   filterer,
		limiter:    limiter,
		userAgent:  userAgent,
		timeout:    timeout,
	}
}

// Fetch retrieves and parses one source. It returns either the complete
// entry list or a *FetchError naming the source, never both.
func (f *Fetcher) Fetch(ctx context.Context, source Source) ([]Entry, error) {
	start := time.Now()

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, source.URL); err != nil {
			return nil, &FetchError{Source: source.Name, Err: fmt.Errorf("rate limit wait failed: %w", err)}
		}
	}

	data, err := f.fetchBody(ctx, source.URL)
	if err != nil {
		return nil, &FetchError{Source: source.Name, Err: err}
	}

	entries, err := f.parser.Run(source.Name, data)
	if err != nil {
		return nil, &FetchError{Source: source.Name, Err: err}
	}

	total := len(entries)
	entries = f.filterer.Run(entries, source)

	slog.Debug("Source fetched",
		"source", source.Name,
		"duration", time.Since(start),
		"total", total,
		"kept", len(entries))

	return entries, nil
}

func (f *Fetcher) fetchBody(ctx context.Context, url string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	return readBody(resp.Body)
}

// readBody reads at most maxBodySize bytes and fails rather than truncate.
func readBody(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(data) > maxBodySize {
		return nil, ErrBodyTooLarge
	}

	return data, nil
}
