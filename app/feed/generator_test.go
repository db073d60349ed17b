package feed

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateRSS(t *testing.T) {
	generator := NewGenerator("1.2.3")

	published := time.Date(2023, 7, 3, 10, 0, 0, 0, time.UTC)
	entries := []Entry{
		{
			SourceName:  "Tech",
			Title:       "Test Item 1",
			Link:        "https://example.com/item1",
			PublishedAt: &published,
			Summary:     "<p>Test Item 1 Description</p>",
		},
		{
			SourceName: "News",
			Title:      "Test Item 2",
			Link:       "item-2",
		},
	}

	rss, err := generator.Run("My favorites", entries)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	expected := []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`<rss version="2.0"`,
		`xmlns:content="http://purl.org/rss/1.0/modules/content/"`,
		"<title>My favorites</title>",
		"<description>2 saved articles</description>",
		"<lastBuildDate>Mon, 03 Jul 2023 10:00:00 +0000</lastBuildDate>",
		"<generator>rss-lens/1.2.3</generator>",
		"<title>Test Item 1</title>",
		"<link>https://example.com/item1</link>",
		`<guid isPermaLink="true">https://example.com/item1</guid>`,
		"<description>Test Item 1 Description</description>",
		"<content:encoded><![CDATA[<p>Test Item 1 Description</p>]]></content:encoded>",
		"<pubDate>Mon, 03 Jul 2023 10:00:00 +0000</pubDate>",
		"<category>Tech</category>",
		`<guid isPermaLink="false">item-2</guid>`,
		"<category>News</category>",
		"</channel>",
		"</rss>",
	}
	for _, want := range expected {
		if !strings.Contains(rss, want) {
			t.Errorf("RSS should contain %q", want)
		}
	}

	if strings.Count(rss, "<pubDate>") != 1 {
		t.Error("Undated entries should not carry a pubDate")
	}
}

func TestGenerateWithSpecialCharacters(t *testing.T) {
	generator := NewGenerator("")

	entries := []Entry{
		{
			SourceName: "Category & Ampersand",
			Title:      "Item with <tags> & \"quotes\"",
			Link:       "https://example.com/item",
			Summary:    "Content with <strong>bold</strong> and ]]> inside",
		},
	}

	rss, err := generator.Run("Feed with <special> & \"characters\"", entries)
	if err != nil {
		t.Fatalf("Expected no error with special characters, got: %v", err)
	}

	if !strings.Contains(rss, "Feed with &lt;special&gt; &amp; &#34;characters&#34;") {
		t.Error("Feed title should have escaped special characters")
	}

	if !strings.Contains(rss, "Item with &lt;tags&gt; &amp; &#34;quotes&#34;") {
		t.Error("Item title should have escaped special characters")
	}

	if !strings.Contains(rss, "Category &amp; Ampersand") {
		t.Error("Category with ampersand should be escaped")
	}

	if !strings.Contains(rss, "<![CDATA[Content with <strong>bold</strong> and ]]]]><![CDATA[> inside]]>") {
		t.Error("CDATA terminators in content should be split")
	}

	if !strings.Contains(rss, "<generator>rss-lens/dev</generator>") {
		t.Error("Empty version should fall back to dev")
	}
}

func TestGenerateWithEmptyEntries(t *testing.T) {
	generator := NewGenerator("dev")
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	generator.now = func() time.Time { return fixed }

	rss, err := generator.Run("", nil)
	if err != nil {
		t.Fatalf("Expected no error with empty entries, got: %v", err)
	}

	if !strings.Contains(rss, "<title>rss-lens favorites</title>") {
		t.Error("Empty title should fall back to the default")
	}

	if strings.Contains(rss, "<item>") {
		t.Error("Empty entries RSS should not contain any items")
	}

	if !strings.Contains(rss, "<lastBuildDate>"+fixed.In(time.Local).Format(time.RFC1123Z)+"</lastBuildDate>") {
		t.Error("Empty entries RSS should use the current time as lastBuildDate")
	}
}

func TestIsURLMethod(t *testing.T) {
	generator := NewGenerator("dev")

	tests := []struct {
		input    string
		expected bool
	}{
		{"", false},
		{"http://example.com", true},
		{"https://example.com", true},
		{"ftp://example.com", false},
		{"not-a-url", false},
		{"http://", false},
		{"https://", false},
		{"mailto:test@example.com", false},
	}

	for _, test := range tests {
		result := generator.isURL(test.input)
		if result != test.expected {
			t.Errorf("For input '%s', expected %v, got %v", test.input, test.expected, result)
		}
	}
}
