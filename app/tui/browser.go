package tui

import (
	"fmt"
	"io"

	"github.com/pkg/browser"
)

func init() {
	// The terminal belongs to the UI; opener output would corrupt it.
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
}

// OpenURL opens link in the default browser.
func OpenURL(link string) error {
	if link == "" {
		return fmt.Errorf("article has no link")
	}

	if err := browser.OpenURL(link); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	return nil
}
