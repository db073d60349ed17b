package feed

import (
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/samber/lo"
	xhtml "golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// Cleaned is entry markup reduced to plain text plus the URLs it referenced.
type Cleaned struct {
	Text   string // paragraphs separated by blank lines
	Images []string
	Links  []string
}

var blockElements = map[string]bool{
	"p": true, "div": true, "article": true, "section": true, "blockquote": true,
	"pre": true, "ul": true, "ol": true, "li": true, "table": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"figure": true, "figcaption": true, "header": true, "footer": true,
}

type Cleaner struct {
	policy *bluemonday.Policy
}

func NewCleaner() *Cleaner {
	return &Cleaner{policy: bluemonday.UGCPolicy()}
}

// Clean converts raw summary markup into display text.
func (c *Cleaner) Clean(markup string) Cleaned {
	trimmed := strings.TrimSpace(markup)
	if trimmed == "" {
		return Cleaned{}
	}

	if !strings.Contains(trimmed, "<") {
		return Cleaned{Text: normalizeText(html.UnescapeString(trimmed))}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(c.policy.Sanitize(trimmed)))
	if err != nil {
		return Cleaned{Text: normalizeText(bluemonday.StrictPolicy().Sanitize(trimmed))}
	}

	var cleaned Cleaned
	doc.Find("img[src]").Each(func(_ int, s *goquery.Selection) {
		if src, ok := s.Attr("src"); ok && src != "" {
			cleaned.Images = append(cleaned.Images, src)
		}
	})
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		if href, ok := s.Attr("href"); ok && href != "" {
			cleaned.Links = append(cleaned.Links, href)
		}
	})

	cleaned.Images = lo.Uniq(cleaned.Images)
	cleaned.Links = lo.Uniq(cleaned.Links)

	var b strings.Builder
	for _, n := range doc.Nodes {
		renderNode(n, &b)
	}
	cleaned.Text = normalizeText(b.String())

	return cleaned
}

func renderNode(n *xhtml.Node, b *strings.Builder) {
	switch n.Type {
	case xhtml.TextNode:
		b.WriteString(n.Data)
		return
	case xhtml.ElementNode:
		if n.Data == "br" {
			b.WriteString("\n")
			return
		}
	}

	block := n.Type == xhtml.ElementNode && blockElements[n.Data]
	if block {
		b.WriteString("\n\n")
		if n.Data == "li" {
			b.WriteString("• ")
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		renderNode(child, b)
	}
	if block {
		b.WriteString("\n\n")
	}
}

// normalizeText collapses horizontal whitespace, trims every line and keeps
// at most one blank line between paragraphs.
func normalizeText(s string) string {
	s = norm.NFC.String(s)

	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			blank = len(out) > 0
			continue
		}
		if blank {
			out = append(out, "")
			blank = false
		}
		out = append(out, line)
	}

	return strings.Join(out, "\n")
}
