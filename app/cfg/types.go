package cfg

import (
	"path/filepath"
	"time"
)

type Cfg struct {
	// Storage
	DataDir   string
	FeedsFile string

	// Fetching
	WorkerCount  int
	Timeout      time.Duration
	HostInterval time.Duration
	UserAgent    string

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}

func (c *Cfg) ReadFile() string {
	return filepath.Join(c.DataDir, "read_articles.json")
}

func (c *Cfg) FavoritesFile() string {
	return filepath.Join(c.DataDir, "favorites.json")
}

func (c *Cfg) LogFile() string {
	return filepath.Join(c.DataDir, "rss-lens.log")
}

func (c *Cfg) ExportFile() string {
	return filepath.Join(c.DataDir, "favorites.xml")
}
