package feed

import (
	"fmt"
	"log/slog"
	"strings"
)

var filterFields = map[string]bool{
	"title":   true,
	"summary": true,
	"link":    true,
}

type Filterer struct{}

func NewFilterer() *Filterer {
	return &Filterer{}
}

// Run drops the entries rejected by the source's filters. Sources without
// filters pass every entry through unchanged.
func (f *Filterer) Run(entries []Entry, source Source) []Entry {
	if len(source.Filters) == 0 {
		return entries
	}

	kept := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if rejected, reason := f.applyFilters(entry, source.Filters); rejected {
			slog.Debug("Entry filtered", "source", source.Name, "link", entry.Link, "reason", reason)
			continue
		}
		kept = append(kept, entry)
	}

	return kept
}

func (f *Filterer) applyFilters(entry Entry, filters []SourceFilter) (bool, string) {
	for _, filter := range filters {
		value := f.getFieldValue(entry, filter.Field)

		for _, exclude := range filter.Excludes {
			if f.matchesFilter(value, exclude) {
				return true, fmt.Sprintf("excluded by %s filter: contains '%s'", filter.Field, exclude)
			}
		}

		if len(filter.Includes) > 0 {
			matched := false
			for _, include := range filter.Includes {
				if f.matchesFilter(value, include) {
					matched = true
					break
				}
			}
			if !matched {
				return true, fmt.Sprintf("excluded by %s filter: does not contain any of %v", filter.Field, filter.Includes)
			}
		}
	}

	return false, ""
}

func (f *Filterer) matchesFilter(value, pattern string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(pattern))
}

func (f *Filterer) getFieldValue(entry Entry, field string) string {
	switch field {
	case "title":
		return entry.Title
	case "summary":
		return entry.Summary
	case "link":
		return entry.Link
	default:
		return ""
	}
}
