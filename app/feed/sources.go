package feed

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

type sourcesFile struct {
	Sources []Source `yaml:"sources" toml:"sources"`
}

// LoadSources reads the feed source table from path. The format is chosen
// by extension: .json holds [name, url] pairs, .yml/.yaml and .toml a
// "sources" list with optional filters, .opml/.xml an OPML outline. A missing file yields an
// empty table and no error.
func LoadSources(path string) ([]Source, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var sources []Source
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		sources, err = parseSourcePairs(data)
	case ".yml", ".yaml":
		sources, err = parseSourcesYAML(data)
	case ".toml":
		sources, err = parseSourcesTOML(data)
	case ".opml", ".xml":
		sources, err = parseOPML(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unsupported feeds file extension %q", ext)
	}
	if err != nil {
		return nil, err
	}

	valid := make([]Source, 0, len(sources))
	for i, source := range sources {
		source.Name = strings.TrimSpace(source.Name)
		source.URL = strings.TrimSpace(source.URL)
		if err := validateSource(source); err != nil {
			slog.Warn("Skipping invalid source", "index", i, "error", err)
			continue
		}
		valid = append(valid, source)
	}

	return valid, nil
}

// parseSourcePairs decodes a JSON array of [name, url] pairs. Pairs that are
// not exactly two strings are skipped.
func parseSourcePairs(data []byte) ([]Source, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	sources := make([]Source, 0, len(raw))
	for i, item := range raw {
		var pair []any
		if err := json.Unmarshal(item, &pair); err != nil || len(pair) != 2 {
			slog.Warn("Skipping malformed source pair", "index", i)
			continue
		}
		name, nameOK := pair[0].(string)
		url, urlOK := pair[1].(string)
		if !nameOK || !urlOK {
			slog.Warn("Skipping non-string source pair", "index", i)
			continue
		}
		sources = append(sources, Source{Name: name, URL: url})
	}

	return sources, nil
}

func parseSourcesYAML(data []byte) ([]Source, error) {
	var file sourcesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return file.Sources, nil
}

func parseSourcesTOML(data []byte) ([]Source, error) {
	var file sourcesFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	return file.Sources, nil
}

func validateSource(source Source) error {
	requiredFields := map[string]string{
		"source name": source.Name,
		"source URL":  source.URL,
	}

	for fieldName, fieldValue := range requiredFields {
		if fieldValue == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
	}

	for i, filter := range source.Filters {
		if !filterFields[filter.Field] {
			return fmt.Errorf("invalid filter field at index %d: %s", i, filter.Field)
		}
		if len(filter.Includes) == 0 && len(filter.Excludes) == 0 {
			return fmt.Errorf("filter at index %d must have at least one include or exclude rule", i)
		}
	}

	return nil
}
