package feed

import (
	"bytes"
	"cmp"
	"encoding/xml"
	"fmt"
	"strings"
	"time"
)

// Generator renders entries as an RSS 2.0 document. It backs the favorites
// export.
type Generator struct {
	version string
	now     func() time.Time
}

func NewGenerator(version string) *Generator {
	return &Generator{
		version: cmp.Or(version, "dev"),
		now:     time.Now,
	}
}

func (g *Generator) Run(title string, entries []Entry) (string, error) {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">`)
	buf.WriteString("\n  <channel>\n")

	g.writeElement(&buf, "title", cmp.Or(title, "rss-lens favorites"), 4)
	g.writeElement(&buf, "description", fmt.Sprintf("%d saved articles", len(entries)), 4)

	lastBuildDate := g.now().In(time.Local)
	if len(entries) > 0 && entries[0].PublishedAt != nil {
		lastBuildDate = *entries[0].PublishedAt
	}

	g.writeElement(&buf, "lastBuildDate", lastBuildDate.Format(time.RFC1123Z), 4)
	g.writeElement(&buf, "generator", fmt.Sprintf("rss-lens/%s", g.version), 4)

	for _, entry := range entries {
		g.writeItem(&buf, entry)
	}

	buf.WriteString("  </channel>\n</rss>")

	return buf.String(), nil
}

func (g *Generator) writeItem(buf *bytes.Buffer, entry Entry) {
	buf.WriteString("    <item>\n")

	if entry.Link != "" {
		buf.WriteString(fmt.Sprintf("      <guid isPermaLink=\"%t\">", g.isURL(entry.Link)))
		xml.EscapeText(buf, []byte(entry.Link))
		buf.WriteString("</guid>\n")
	}

	g.writeElement(buf, "title", cmp.Or(entry.Title, "(untitled)"), 6)
	g.writeElement(buf, "link", entry.Link, 6)

	if entry.Summary != "" {
		g.writeElement(buf, "description", NewCleaner().Clean(entry.Summary).Text, 6)
		buf.WriteString("      <content:encoded><![CDATA[")
		buf.WriteString(strings.ReplaceAll(entry.Summary, "]]>", "]]]]><![CDATA[>"))
		buf.WriteString("]]></content:encoded>\n")
	}

	if entry.PublishedAt != nil {
		g.writeElement(buf, "pubDate", entry.PublishedAt.Format(time.RFC1123Z), 6)
	}

	g.writeElement(buf, "category", entry.SourceName, 6)

	buf.WriteString("    </item>\n")
}

func (g *Generator) writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	buf.WriteString(strings.Repeat(" ", indent))
	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}

func (g *Generator) isURL(s string) bool {
	return (len(s) > 7 && s[:7] == "http://") || (len(s) > 8 && s[:8] == "https://")
}
