package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
)

// loadLinks reads a JSON array of links. A missing file is an empty set.
func loadLinks(path string) (map[string]struct{}, error) {
	links := make(map[string]struct{})

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return links, nil
		}
		return links, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return links, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	for _, link := range list {
		if link != "" {
			links[link] = struct{}{}
		}
	}

	return links, nil
}

// saveLinks replaces path with the sorted links, writing through a temp
// file in the same directory so a crash never leaves a partial file.
func saveLinks(path string, links map[string]struct{}) error {
	list := make([]string, 0, len(links))
	for link := range links {
		list = append(list, link)
	}
	slices.Sort(list)

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode links: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return nil
}
