package state

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/samber/lo"

	"github.com/lysyi3m/rss-lens/app/feed"
)

// Bulk names the direction MarkAll chose.
type Bulk int

const (
	BulkRead Bulk = iota
	BulkUnread
)

func (b Bulk) String() string {
	if b == BulkUnread {
		return "unread"
	}
	return "read"
}

// Store owns the read and favorite sets. Every mutation is written through
// to disk before the call returns. A failed write is logged and the
// in-memory state stays authoritative.
type Store struct {
	mu            sync.Mutex
	readPath      string
	favoritesPath string
	read          map[string]struct{}
	favorites     map[string]struct{}
	favoriteList  []feed.Entry
}

// Open loads both state files. Missing or corrupt files start empty.
func Open(readPath, favoritesPath string) *Store {
	s := &Store{
		readPath:      readPath,
		favoritesPath: favoritesPath,
	}

	var err error
	if s.read, err = loadLinks(readPath); err != nil {
		slog.Warn("Failed to load read articles, starting empty", "path", readPath, "error", err)
	}
	if s.favorites, err = loadLinks(favoritesPath); err != nil {
		slog.Warn("Failed to load favorites, starting empty", "path", favoritesPath, "error", err)
	}

	slog.Debug("State loaded", "read", len(s.read), "favorites", len(s.favorites))

	return s
}

func (s *Store) MarkRead(link string) {
	if link == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.read[link] = struct{}{}
	s.saveRead()
}

func (s *Store) MarkUnread(link string) {
	if link == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.read, link)
	s.saveRead()
}

// ToggleFavorite flips the favorite state of entry and returns the new
// state. Entries without a link are never favorites.
func (s *Store) ToggleFavorite(entry feed.Entry) bool {
	if !entry.HasIdentity() {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	favorite := false
	if _, ok := s.favorites[entry.Link]; ok {
		delete(s.favorites, entry.Link)
		s.favoriteList = slices.DeleteFunc(s.favoriteList, func(e feed.Entry) bool {
			return e.Link == entry.Link
		})
	} else {
		s.favorites[entry.Link] = struct{}{}
		s.favoriteList = append(s.favoriteList, entry)
		favorite = true
	}

	feed.SortEntries(s.favoriteList)
	s.saveFavorites()

	return favorite
}

// MarkAll marks every entry read when at least half of them are unread,
// otherwise marks every entry unread.
func (s *Store) MarkAll(entries []feed.Entry) Bulk {
	s.mu.Lock()
	defer s.mu.Unlock()

	unread := s.unreadCount(entries)
	if unread >= len(entries)-unread {
		s.setRead(entries, true)
		return BulkRead
	}
	s.setRead(entries, false)
	return BulkUnread
}

func (s *Store) MarkAllRead(entries []feed.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setRead(entries, true)
}

func (s *Store) MarkAllUnread(entries []feed.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setRead(entries, false)
}

// SeedFavorites rebuilds the favorite entry list from freshly fetched
// entries. Favorite links with no matching entry stay in the set.
func (s *Store) SeedFavorites(entries []feed.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := lo.UniqBy(lo.Filter(entries, func(e feed.Entry, _ int) bool {
		_, ok := s.favorites[e.Link]
		return ok
	}), func(e feed.Entry) string {
		return e.Link
	})

	feed.SortEntries(list)
	s.favoriteList = list

	if missing := len(s.favorites) - len(list); missing > 0 {
		slog.Debug("Favorites without a fetched entry", "count", missing)
	}
}

func (s *Store) IsRead(link string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.read[link]
	return ok
}

func (s *Store) IsFavorite(link string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.favorites[link]
	return ok
}

// Favorites returns a copy of the favorite entries, newest first.
func (s *Store) Favorites() []feed.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.favoriteList)
}

// FavoriteLinks is the size of the persisted favorite set, which can exceed
// len(Favorites()) when favorited articles dropped out of their feeds.
func (s *Store) FavoriteLinks() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.favorites)
}

func (s *Store) UnreadCount(entries []feed.Entry) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.unreadCount(entries)
}

// unreadCount counts entries whose link is not in the read set. Entries
// without a link are always unread.
func (s *Store) unreadCount(entries []feed.Entry) int {
	count := 0
	for _, e := range entries {
		if _, ok := s.read[e.Link]; !ok {
			count++
		}
	}
	return count
}

func (s *Store) setRead(entries []feed.Entry, read bool) {
	for _, e := range entries {
		if !e.HasIdentity() {
			continue
		}
		if read {
			s.read[e.Link] = struct{}{}
		} else {
			delete(s.read, e.Link)
		}
	}
	s.saveRead()
}

func (s *Store) saveRead() {
	if err := saveLinks(s.readPath, s.read); err != nil {
		slog.Warn("Failed to save read articles", "path", s.readPath, "error", err)
	}
}

func (s *Store) saveFavorites() {
	if err := saveLinks(s.favoritesPath, s.favorites); err != nil {
		slog.Warn("Failed to save favorites", "path", s.favoritesPath, "error", err)
	}
}
