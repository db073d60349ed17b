package feed

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"codeberg.org/readeck/go-readability/v2"
)

// ContentExtractor fetches an article page and reduces it to its readable
// text. It backs the on-demand "full article" view.
type ContentExtractor struct {
	httpClient *http.Client
	userAgent  string
	timeout    time.Duration
}

func NewContentExtractor(httpClient *http.Client, userAgent string, timeout time.Duration) *ContentExtractor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ContentExtractor{
		httpClient: httpClient,
		userAgent:  userAgent,
		timeout:    timeout,
	}
}

func (e *ContentExtractor) Extract(ctx context.Context, link string) (string, error) {
	if link == "" {
		return "", fmt.Errorf("entry has no link")
	}

	pageURL, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("invalid link: %w", err)
	}

	data, err := e.fetchPage(ctx, link)
	if err != nil {
		return "", err
	}

	return e.Run(data, pageURL)
}

// Run extracts readable text from an HTML page.
func (e *ContentExtractor) Run(data []byte, pageURL *url.URL) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("HTML data is empty")
	}

	article, err := readability.FromReader(bytes.NewReader(data), pageURL)
	if err != nil {
		return "", fmt.Errorf("failed to extract content: %w", err)
	}

	var buf strings.Builder
	if err := article.RenderText(&buf); err != nil {
		return "", fmt.Errorf("failed to render content: %w", err)
	}

	text := normalizeText(buf.String())
	if text == "" {
		return "", fmt.Errorf("no content extracted from HTML data")
	}

	slog.Debug("Content extracted successfully", "content_length", len(text))

	return text, nil
}

func (e *ContentExtractor) fetchPage(ctx context.Context, link string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, http.MethodGet, link, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if e.userAgent != "" {
		req.Header.Set("User-Agent", e.userAgent)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	return readBody(resp.Body)
}
