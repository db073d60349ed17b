package tasks

import (
	"slices"
	"sync"

	"github.com/lysyi3m/rss-lens/app/feed"
)

// Progress reports how far an aggregation run has come.
type Progress struct {
	Completed int
	Total     int
	Done      bool
}

// Session holds the shared result of one aggregation run. The Aggregator is
// its only writer; readers get copies and never wait on fetches.
type Session struct {
	mu       sync.RWMutex
	entries  []feed.Entry
	problems []feed.Problem
	progress Progress
}

func NewSession() *Session {
	return &Session{}
}

// Begin resets the session for a run over total sources.
func (s *Session) Begin(total int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	s.problems = nil
	s.progress = Progress{Total: total}
}

// Entries returns the merged, sorted entries. It stays empty until the run
// is done.
func (s *Session) Entries() []feed.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.progress.Done {
		return []feed.Entry{}
	}
	return slices.Clone(s.entries)
}

func (s *Session) Progress() Progress {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.progress
}

func (s *Session) Problems() []feed.Problem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.problems)
}

func (s *Session) complete(problem *feed.Problem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if problem != nil {
		s.problems = append(s.problems, *problem)
	}
	s.progress.Completed++
}

func (s *Session) publish(entries []feed.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = entries
	s.progress.Done = true
}
