package feed

import (
	"bytes"
	"cmp"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

type Parser struct {
	gofeedParser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
	}
}

// Run parses a feed document and stamps every entry with sourceName.
// Entries keep document order.
func (p *Parser) Run(sourceName string, data []byte) ([]Entry, error) {
	parsed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	entries := make([]Entry, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		entries = append(entries, p.normalizeItem(sourceName, item))
	}

	return entries, nil
}

func (p *Parser) normalizeItem(sourceName string, item *gofeed.Item) Entry {
	entry := Entry{
		SourceName: sourceName,
		Title:      strings.TrimSpace(item.Title),
		Link:       strings.TrimSpace(item.Link),
		Summary:    cmp.Or(item.Description, item.Content),
	}

	switch {
	case item.PublishedParsed != nil:
		entry.PublishedAt = copyTime(*item.PublishedParsed)
	case item.UpdatedParsed != nil:
		entry.PublishedAt = copyTime(*item.UpdatedParsed)
	}

	return entry
}

func copyTime(t time.Time) *time.Time {
	return &t
}
