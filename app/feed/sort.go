package feed

import (
	"slices"
	"time"
)

var epoch = time.Unix(0, 0).UTC()

// SortTime is the timestamp an entry sorts by. Entries without a
// publication time sort as the epoch.
func (e Entry) SortTime() time.Time {
	if e.PublishedAt == nil {
		return epoch
	}
	return *e.PublishedAt
}

// SortEntries orders entries newest first. The sort is stable, so entries
// with equal timestamps keep their arrival order.
func SortEntries(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return b.SortTime().Compare(a.SortTime())
	})
}
