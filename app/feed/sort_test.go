package feed

import (
	"slices"
	"testing"
	"time"
)

func at(t time.Time) *time.Time {
	return &t
}

func TestSortEntries_NewestFirst(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	entries := []Entry{
		{Title: "old", PublishedAt: at(base.Add(-time.Hour))},
		{Title: "undated"},
		{Title: "new", PublishedAt: at(base.Add(time.Hour))},
		{Title: "mid", PublishedAt: at(base)},
	}

	SortEntries(entries)

	titles := make([]string, len(entries))
	for i, e := range entries {
		titles[i] = e.Title
	}
	expected := []string{"new", "mid", "old", "undated"}
	if !slices.Equal(titles, expected) {
		t.Errorf("Expected %v, got %v", expected, titles)
	}
}

func TestSortEntries_StableForEqualTimestamps(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	entries := []Entry{
		{Title: "first", PublishedAt: at(ts)},
		{Title: "undated-1"},
		{Title: "second", PublishedAt: at(ts)},
		{Title: "undated-2"},
		{Title: "third", PublishedAt: at(ts)},
	}

	SortEntries(entries)

	titles := make([]string, len(entries))
	for i, e := range entries {
		titles[i] = e.Title
	}
	expected := []string{"first", "second", "third", "undated-1", "undated-2"}
	if !slices.Equal(titles, expected) {
		t.Errorf("Expected %v, got %v", expected, titles)
	}
}

func TestSortEntries_UndatedEqualsEpoch(t *testing.T) {
	entries := []Entry{
		{Title: "undated"},
		{Title: "epoch", PublishedAt: at(time.Unix(0, 0))},
	}

	SortEntries(entries)

	// Equal sort keys keep arrival order.
	if entries[0].Title != "undated" || entries[1].Title != "epoch" {
		t.Errorf("Expected [undated epoch], got [%s %s]", entries[0].Title, entries[1].Title)
	}
}
