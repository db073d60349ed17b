package feed

import (
	"cmp"
	"encoding/xml"
	"fmt"
	"io"
)

type opmlDocument struct {
	XMLName xml.Name `xml:"opml"`
	Body    struct {
		Outlines []opmlOutline `xml:"outline"`
	} `xml:"body"`
}

type opmlOutline struct {
	Text     string        `xml:"text,attr"`
	Title    string        `xml:"title,attr"`
	XMLURL   string        `xml:"xmlUrl,attr"`
	Outlines []opmlOutline `xml:"outline"`
}

// parseOPML flattens an OPML outline tree into sources, depth first.
// Folders contribute nothing but their children.
func parseOPML(r io.Reader) ([]Source, error) {
	var doc opmlDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode OPML: %w", err)
	}

	var sources []Source
	var walk func(outlines []opmlOutline)
	walk = func(outlines []opmlOutline) {
		for _, o := range outlines {
			if o.XMLURL != "" {
				sources = append(sources, Source{
					Name: cmp.Or(o.Title, o.Text, o.XMLURL),
					URL:  o.XMLURL,
				})
				continue
			}
			walk(o.Outlines)
		}
	}
	walk(doc.Body.Outlines)

	return sources, nil
}
