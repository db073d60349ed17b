package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/lysyi3m/rss-lens/app/feed"
	"github.com/lysyi3m/rss-lens/app/view"
)

const (
	banner      = "★ rss-lens ★"
	dateLayout  = "2006-01-02"
	noDate      = "----------"
	rowPadding  = 2
	columnSep   = " | "
	favoriteTag = "★ "
	unreadTag   = "● "
	readTag     = "  "
)

// progressBar draws completed/total as a bar of width cells.
func progressBar(completed, total, width int) string {
	if width <= 0 {
		return ""
	}
	filled := width
	if total > 0 {
		filled = completed * width / total
	}
	filled = min(max(filled, 0), width)

	return progressFilled.Render(strings.Repeat("█", filled)) +
		progressEmpty.Render(strings.Repeat("░", width-filled))
}

func center(s string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}

// truncate cuts s to width display cells, padding is never added.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

func formatDate(e feed.Entry) string {
	if e.PublishedAt == nil {
		return noDate
	}
	return e.PublishedAt.Local().Format(dateLayout)
}

// renderRow lays out one list line as "date | source | ★ title".
func renderRow(e feed.Entry, width int, read, favorite, selected bool) string {
	marker := unreadTag
	if read {
		marker = readTag
	}

	prefix := strings.Repeat(" ", rowPadding) + marker + formatDate(e) + columnSep
	source := truncate(e.SourceName, 24)
	star := ""
	if favorite {
		star = favoriteTag
	}

	title := strings.Join(strings.Fields(e.Title), " ")
	if title == "" {
		title = "(untitled)"
	}
	available := width - runewidth.StringWidth(prefix) - runewidth.StringWidth(source) -
		runewidth.StringWidth(columnSep) - runewidth.StringWidth(star) - rowPadding
	title = truncate(title, available)

	base := rowStyle
	if read {
		base = readRowStyle
	}
	if selected {
		line := prefix + source + columnSep + star + title
		return selectedStyle.Render(runewidth.FillRight(line, max(width-rowPadding, 0)))
	}

	return base.Render(prefix) +
		sourceStyle.Inherit(base).Render(source) +
		base.Render(columnSep) +
		starStyle.Render(star) +
		base.Render(title)
}

// renderStats is the "ARTICLES | UNREAD | FEEDS" header line.
func renderStats(label string, total, unread, feeds int) string {
	return statsStyle.Render(fmt.Sprintf("%s %d | UNREAD %d | FEEDS %d", label, total, unread, feeds))
}

// renderLoading draws the screen shown while feeds are fetched.
func renderLoading(status view.Status, width, height int) string {
	barWidth := min(max(width-20, 10), 60)
	counter := fmt.Sprintf("%d/%d", status.Progress.Completed, status.Progress.Total)

	lines := []string{
		center(bannerStyle.Render(banner), width),
		"",
		center("loading feeds... please wait", width),
		"",
		center(progressBar(status.Progress.Completed, status.Progress.Total, barWidth)+" "+counter, width),
	}
	if summary := status.Summary(width - 4); summary != "" {
		lines = append(lines, "", center(problemStyle.Render(summary), width))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(lines, "\n"))
}

// renderNoSources draws the screen shown for an empty source table.
func renderNoSources(feedsFile string, width, height int) string {
	lines := []string{
		bannerStyle.Render(banner),
		"",
		"no sources configured",
		"",
		truncate("add feeds to "+feedsFile, width-4),
		"",
		helpStyle.Render("press any key to quit"),
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, lines...))
}

// articleBody turns an entry summary into the text shown in the detail
// view, followed by the images and links it referenced.
func articleBody(cleaner *feed.Cleaner, e feed.Entry) string {
	cleaned := cleaner.Clean(e.Summary)

	var parts []string
	if cleaned.Text != "" {
		parts = append(parts, cleaned.Text)
	} else {
		parts = append(parts, "No content available.")
	}
	if len(cleaned.Images) > 0 {
		parts = append(parts, "Images:\n- "+strings.Join(cleaned.Images, "\n- "))
	}
	if len(cleaned.Links) > 0 {
		parts = append(parts, "Links:\n- "+strings.Join(cleaned.Links, "\n- "))
	}

	return strings.Join(parts, "\n\n")
}

// renderDetailHeader draws the source, title and date above the body.
func renderDetailHeader(e feed.Entry, width int, favorite bool) string {
	title := strings.Join(strings.Fields(e.Title), " ")
	if favorite {
		title = favoriteTag + title
	}
	date := noDate
	if e.PublishedAt != nil {
		date = e.PublishedAt.Local().Format("Mon, 02 Jan 2006 15:04 MST")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		detailSourceStyle.Render(truncate(e.SourceName, width)),
		detailTitleStyle.Width(width).Render(title),
		detailDateStyle.Render(date),
	)
}
