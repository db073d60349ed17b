package tasks

import (
	"context"

	"github.com/lysyi3m/rss-lens/app/feed"
)

// Fetcher retrieves the entries of one source. *feed.Fetcher is the
// production implementation.
type Fetcher interface {
	Fetch(ctx context.Context, source feed.Source) ([]feed.Entry, error)
}

// FavoriteSeeder receives the final sorted entries of a run so favorites
// persisted as links can be matched back to entries.
// Example usage:
//
//	store := state.Open(readPath, favoritesPath)
//	aggregator.Start(ctx, session, sources, store)
type FavoriteSeeder interface {
	SeedFavorites(entries []feed.Entry)
}
