package view

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/samber/lo"

	"github.com/lysyi3m/rss-lens/app/feed"
	"github.com/lysyi3m/rss-lens/app/tasks"
)

// SessionReader is the read side of an aggregation session.
type SessionReader interface {
	Entries() []feed.Entry
	Progress() tasks.Progress
	Problems() []feed.Problem
}

// StateReader is the read side of the read/favorite store.
type StateReader interface {
	IsRead(link string) bool
	IsFavorite(link string) bool
	Favorites() []feed.Entry
	UnreadCount(entries []feed.Entry) int
}

// Model is the snapshot interface the terminal UI renders from. None of its
// methods wait on the aggregation.
type Model struct {
	session     SessionReader
	state       StateReader
	sourceCount int
}

func New(session SessionReader, state StateReader, sourceCount int) *Model {
	return &Model{
		session:     session,
		state:       state,
		sourceCount: sourceCount,
	}
}

// Entries is the merged article list, empty until aggregation is done.
func (m *Model) Entries() []feed.Entry {
	return m.session.Entries()
}

func (m *Model) Favorites() []feed.Entry {
	return m.state.Favorites()
}

func (m *Model) UnreadCount(entries []feed.Entry) int {
	return m.state.UnreadCount(entries)
}

func (m *Model) IsRead(link string) bool {
	return m.state.IsRead(link)
}

func (m *Model) IsFavorite(link string) bool {
	return m.state.IsFavorite(link)
}

func (m *Model) SourceCount() int {
	return m.sourceCount
}

// Status is the load state shown while and after feeds are fetched.
type Status struct {
	Progress  tasks.Progress
	Problems  []feed.Problem
	NoSources bool
}

func (m *Model) Status() Status {
	return Status{
		Progress:  m.session.Progress(),
		Problems:  m.session.Problems(),
		NoSources: m.sourceCount == 0,
	}
}

// Loading reports whether the article list is still being assembled.
func (s Status) Loading() bool {
	return !s.NoSources && !s.Progress.Done
}

// Summary joins the problems as "source: cause" pairs and truncates the
// result to width display cells.
func (s Status) Summary(width int) string {
	if len(s.Problems) == 0 || width <= 0 {
		return ""
	}

	parts := lo.Map(s.Problems, func(p feed.Problem, _ int) string {
		return p.String()
	})
	line := strings.Join(strings.Fields(strings.Join(parts, "; ")), " ")

	return runewidth.Truncate(line, width, "...")
}
