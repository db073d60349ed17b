package feed

import (
	"time"
)

// Source is one named feed endpoint. Sources are created from configuration
// at startup and never mutated.
type Source struct {
	Name    string         `yaml:"name" toml:"name"`
	URL     string         `yaml:"url" toml:"url"`
	Filters []SourceFilter `yaml:"filters" toml:"filters"`
}

type SourceFilter struct {
	Field    string   `yaml:"field" toml:"field"`
	Includes []string `yaml:"includes" toml:"includes"`
	Excludes []string `yaml:"excludes" toml:"excludes"`
}

// Entry is a normalized feed item. Link is the identity key; an empty Link
// means the entry can be displayed but never marked read or favorited.
type Entry struct {
	SourceName  string
	Title       string
	Link        string
	PublishedAt *time.Time // nil sorts as the epoch
	Summary     string     // raw markup
}

func (e Entry) HasIdentity() bool {
	return e.Link != ""
}

// Problem records one failed source fetch.
type Problem struct {
	Source string
	Err    string
}

func (p Problem) String() string {
	return p.Source + ": " + p.Err
}
