package tui

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lysyi3m/rss-lens/app/feed"
	"github.com/lysyi3m/rss-lens/app/state"
	"github.com/lysyi3m/rss-lens/app/view"
)

const (
	pollInterval    = 100 * time.Millisecond
	clockInterval   = 30 * time.Second
	extractTimeout  = 15 * time.Second
	headerHeight    = 3
	footerHeight    = 2
	detailMargin    = 4
	detailHeaderGap = 1
)

// Store is the write side of the read/favorite state used by the UI.
type Store interface {
	MarkRead(link string)
	MarkUnread(link string)
	ToggleFavorite(entry feed.Entry) bool
	MarkAll(entries []feed.Entry) state.Bulk
}

// Extractor fetches the readable text of an article page.
type Extractor interface {
	Extract(ctx context.Context, link string) (string, error)
}

type Options struct {
	View       *view.Model
	Store      Store
	Extractor  Extractor
	Generator  *feed.Generator
	Cleaner    *feed.Cleaner
	FeedsFile  string
	ExportPath string
	OpenURL    func(link string) error
	Now        func() time.Time
}

type screen int

const (
	screenLoading screen = iota
	screenNoSources
	screenList
	screenDetail
)

type (
	pollMsg      time.Time
	clockMsg     time.Time
	extractedMsg struct {
		link string
		text string
		err  error
	}
	exportedMsg struct {
		path  string
		count int
		err   error
	}
	openedMsg struct {
		err error
	}
)

type Model struct {
	opts Options
	keys keyMap

	screen    screen
	favorites bool
	all       []feed.Entry
	entries   []feed.Entry
	cursor    int
	offset    int

	viewport viewport.Model
	body     string
	status   string
	now      time.Time

	width  int
	height int
}

func New(opts Options) Model {
	if opts.OpenURL == nil {
		opts.OpenURL = OpenURL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Cleaner == nil {
		opts.Cleaner = feed.NewCleaner()
	}

	vp := viewport.New(0, 0)
	vp.KeyMap = detailViewportKeys()
	vp.MouseWheelEnabled = true

	return Model{
		opts:     opts,
		keys:     defaultKeyMap(),
		screen:   screenLoading,
		viewport: vp,
		now:      opts.Now(),
		width:    80,
		height:   24,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(pollCmd(), clockCmd())
}

func pollCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg { return pollMsg(t) })
}

func clockCmd() tea.Cmd {
	return tea.Tick(clockInterval, func(t time.Time) tea.Msg { return clockMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resizeViewport()
		m.clampOffset()
		if e, ok := m.selected(); ok && m.screen == screenDetail {
			m.setDetailContent(e)
		}
		return m, nil

	case pollMsg:
		return m.poll()

	case clockMsg:
		m.now = time.Time(msg)
		return m, clockCmd()

	case extractedMsg:
		return m.handleExtracted(msg), nil

	case exportedMsg:
		if msg.err != nil {
			slog.Warn("Failed to export favorites", "path", msg.path, "error", msg.err)
			m.status = "export failed: " + msg.err.Error()
		} else {
			slog.Info("Favorites exported", "path", msg.path, "count", msg.count)
			m.status = fmt.Sprintf("exported %d favorites to %s", msg.count, msg.path)
		}
		return m, nil

	case openedMsg:
		if msg.err != nil {
			slog.Warn("Failed to open browser", "error", msg.err)
			m.status = "could not open browser: " + msg.err.Error()
		}
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		switch m.screen {
		case screenLoading:
			if key.Matches(msg, m.keys.Back) {
				return m, tea.Quit
			}
		case screenNoSources:
			return m, tea.Quit
		case screenList:
			return m.updateList(msg)
		case screenDetail:
			return m.updateDetail(msg)
		}
	}

	return m, nil
}

// poll checks the aggregation once and keeps polling until it is done.
func (m Model) poll() (tea.Model, tea.Cmd) {
	if m.screen != screenLoading {
		return m, nil
	}

	status := m.opts.View.Status()
	if status.Loading() {
		return m, pollCmd()
	}

	if status.NoSources {
		m.screen = screenNoSources
		return m, nil
	}

	m.all = m.opts.View.Entries()
	m.entries = m.all
	m.screen = screenList
	if len(status.Problems) > 0 {
		m.status = fmt.Sprintf("%d feeds failed", len(status.Problems))
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Back):
		if m.favorites {
			m.showAll()
			return m, nil
		}
		return m, tea.Quit
	case key.Matches(msg, m.keys.Favorites):
		if m.favorites {
			m.showAll()
		} else {
			m.showFavorites()
		}
	case key.Matches(msg, m.keys.Next):
		m.move(1)
	case key.Matches(msg, m.keys.Prev):
		m.move(-1)
	case key.Matches(msg, m.keys.PageDown):
		m.move(m.listHeight())
	case key.Matches(msg, m.keys.PageUp):
		m.move(-m.listHeight())
	case key.Matches(msg, m.keys.Home):
		m.move(-len(m.entries))
	case key.Matches(msg, m.keys.End):
		m.move(len(m.entries))
	case key.Matches(msg, m.keys.Open):
		if e, ok := m.selected(); ok {
			m.openDetail(e)
		}
	case key.Matches(msg, m.keys.Browser):
		if e, ok := m.selected(); ok {
			return m, m.openBrowser(e.Link)
		}
	case key.Matches(msg, m.keys.Favorite):
		m.toggleFavorite()
	case key.Matches(msg, m.keys.Unread):
		if e, ok := m.selected(); ok && e.HasIdentity() {
			m.opts.Store.MarkUnread(e.Link)
			m.status = "marked unread"
		}
	case key.Matches(msg, m.keys.MarkAll):
		if len(m.entries) > 0 {
			bulk := m.opts.Store.MarkAll(m.entries)
			m.status = fmt.Sprintf("marked %d articles %s", len(m.entries), bulk)
		}
	case key.Matches(msg, m.keys.Export):
		if m.favorites {
			return m, m.export()
		}
	}

	return m, nil
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Open):
		m.screen = screenList
		m.status = ""
		return m, nil
	case key.Matches(msg, m.keys.MarkAll):
		if len(m.entries) > 0 {
			bulk := m.opts.Store.MarkAll(m.entries)
			m.status = fmt.Sprintf("marked %d articles %s", len(m.entries), bulk)
		}
		return m, nil
	case key.Matches(msg, m.keys.Next) && msg.String() != "down":
		if m.cursor < len(m.entries)-1 {
			m.move(1)
			m.openDetail(m.entries[m.cursor])
		}
		return m, nil
	case key.Matches(msg, m.keys.Prev) && msg.String() != "up":
		if m.cursor > 0 {
			m.move(-1)
			m.openDetail(m.entries[m.cursor])
		}
		return m, nil
	case key.Matches(msg, m.keys.Browser):
		if e, ok := m.selected(); ok {
			return m, m.openBrowser(e.Link)
		}
		return m, nil
	case key.Matches(msg, m.keys.Favorite):
		m.toggleFavorite()
		if e, ok := m.selected(); ok && m.screen == screenDetail {
			m.setDetailContent(e)
		}
		return m, nil
	case key.Matches(msg, m.keys.Unread):
		if e, ok := m.selected(); ok && e.HasIdentity() {
			m.opts.Store.MarkUnread(e.Link)
			m.status = "marked unread"
		}
		return m, nil
	case key.Matches(msg, m.keys.Extract):
		if e, ok := m.selected(); ok && m.opts.Extractor != nil {
			m.status = "extracting full article..."
			return m, m.extract(e.Link)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case screenDetail:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case screenList:
	default:
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.move(-1)
	case tea.MouseButtonWheelDown:
		m.move(1)
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			break
		}
		row := msg.Y - headerHeight
		if row < 0 || row >= m.listHeight() {
			break
		}
		index := m.offset + row
		if index >= len(m.entries) {
			break
		}
		if index == m.cursor {
			m.openDetail(m.entries[index])
		} else {
			m.cursor = index
		}
	}

	return m, nil
}

func (m Model) handleExtracted(msg extractedMsg) Model {
	e, ok := m.selected()
	if m.screen != screenDetail || !ok || e.Link != msg.link {
		return m
	}

	if msg.err != nil {
		slog.Warn("Failed to extract article", "link", msg.link, "error", msg.err)
		m.status = "extraction failed: " + msg.err.Error()
		return m
	}

	m.body = msg.text
	m.setDetailContent(e)
	m.viewport.GotoTop()
	m.status = "full article"
	return m
}

func (m *Model) showAll() {
	m.favorites = false
	m.entries = m.all
	m.cursor, m.offset = 0, 0
}

func (m *Model) showFavorites() {
	m.favorites = true
	m.entries = m.opts.View.Favorites()
	m.cursor, m.offset = 0, 0
}

func (m *Model) selected() (feed.Entry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return feed.Entry{}, false
	}
	return m.entries[m.cursor], true
}

func (m *Model) move(delta int) {
	if len(m.entries) == 0 {
		m.cursor, m.offset = 0, 0
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.entries)-1)
	m.clampOffset()
}

func (m *Model) clampOffset() {
	height := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+height {
		m.offset = m.cursor - height + 1
	}
	m.offset = max(m.offset, 0)
}

func (m *Model) listHeight() int {
	return max(m.height-headerHeight-footerHeight, 1)
}

func (m *Model) toggleFavorite() {
	e, ok := m.selected()
	if !ok || !e.HasIdentity() {
		return
	}

	if m.opts.Store.ToggleFavorite(e) {
		m.status = "saved to favorites"
	} else {
		m.status = "removed from favorites"
	}

	if m.favorites {
		m.entries = m.opts.View.Favorites()
		m.screen = screenList
		m.move(0)
	}
}

func (m *Model) openDetail(e feed.Entry) {
	if e.HasIdentity() {
		m.opts.Store.MarkRead(e.Link)
	}
	m.screen = screenDetail
	m.status = ""
	m.resizeViewport()
	m.body = articleBody(m.opts.Cleaner, e)
	m.setDetailContent(e)
	m.viewport.GotoTop()
}

func (m *Model) setDetailContent(e feed.Entry) {
	width := m.detailWidth()
	header := renderDetailHeader(e, width, m.opts.View.IsFavorite(e.Link))
	wrapped := lipgloss.NewStyle().Width(width).Render(m.body)
	m.viewport.SetContent(header + strings.Repeat("\n", detailHeaderGap+1) + wrapped)
}

func (m *Model) detailWidth() int {
	return max(m.width-2*detailMargin, 20)
}

func (m *Model) resizeViewport() {
	m.viewport.Width = m.detailWidth()
	m.viewport.Height = max(m.height-headerHeight-footerHeight, 1)
}

func (m Model) openBrowser(link string) tea.Cmd {
	open := m.opts.OpenURL
	return func() tea.Msg {
		return openedMsg{err: open(link)}
	}
}

func (m Model) extract(link string) tea.Cmd {
	extractor := m.opts.Extractor
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), extractTimeout)
		defer cancel()

		text, err := extractor.Extract(ctx, link)
		return extractedMsg{link: link, text: text, err: err}
	}
}

func (m Model) export() tea.Cmd {
	favorites := m.opts.View.Favorites()
	generator := m.opts.Generator
	path := m.opts.ExportPath

	return func() tea.Msg {
		if generator == nil || path == "" {
			return exportedMsg{path: path, err: fmt.Errorf("export is not configured")}
		}

		document, err := generator.Run("rss-lens favorites", favorites)
		if err != nil {
			return exportedMsg{path: path, err: err}
		}
		if err := os.WriteFile(path, []byte(document), 0644); err != nil {
			return exportedMsg{path: path, err: fmt.Errorf("failed to write export: %w", err)}
		}

		return exportedMsg{path: path, count: len(favorites)}
	}
}

func (m Model) View() string {
	switch m.screen {
	case screenLoading:
		return renderLoading(m.opts.View.Status(), m.width, m.height)
	case screenNoSources:
		return renderNoSources(m.opts.FeedsFile, m.width, m.height)
	case screenDetail:
		return m.viewDetail()
	default:
		return m.viewList()
	}
}

func (m Model) viewHeader() string {
	label := "ARTICLES"
	if m.favorites {
		label = "FAVORITES"
	}
	stats := renderStats(label, len(m.entries), m.opts.View.UnreadCount(m.entries), m.opts.View.SourceCount())
	clock := clockStyle.Render(m.now.Format("15:04"))

	gap := max(m.width-lipgloss.Width(stats)-lipgloss.Width(clock)-2, 1)
	return center(bannerStyle.Render(banner), m.width) + "\n" +
		" " + stats + strings.Repeat(" ", gap) + clock + "\n"
}

func (m Model) viewFooter(help string) string {
	line := ""
	switch {
	case m.status != "":
		line = statusStyle.Render(truncate(m.status, m.width-2))
	default:
		if summary := m.opts.View.Status().Summary(m.width - 2); summary != "" {
			line = problemStyle.Render(summary)
		}
	}
	return " " + line + "\n" + center(helpStyle.Render(truncate(help, m.width)), m.width)
}

func (m Model) viewList() string {
	var b strings.Builder
	b.WriteString(m.viewHeader())

	height := m.listHeight()
	rows := 0
	if len(m.entries) == 0 {
		empty := "no articles."
		if m.favorites {
			empty = "no favorites yet."
		}
		b.WriteString(center(empty, m.width) + "\n")
		rows++
	}
	for i := m.offset; i < len(m.entries) && rows < height; i++ {
		e := m.entries[i]
		b.WriteString(renderRow(e, m.width, m.opts.View.IsRead(e.Link), m.opts.View.IsFavorite(e.Link), i == m.cursor))
		b.WriteString("\n")
		rows++
	}
	for ; rows < height; rows++ {
		b.WriteString("\n")
	}

	help := helpLine(m.keys.Next, m.keys.Open, m.keys.Browser, m.keys.Favorite, m.keys.Unread, m.keys.MarkAll, m.keys.Favorites, m.keys.Back)
	if m.favorites {
		help = helpLine(m.keys.Next, m.keys.Open, m.keys.Browser, m.keys.Favorite, m.keys.Export, m.keys.Back)
	}
	b.WriteString(m.viewFooter(help))

	return b.String()
}

func (m Model) viewDetail() string {
	var b strings.Builder
	b.WriteString(m.viewHeader())

	body := lipgloss.NewStyle().MarginLeft(detailMargin).Render(m.viewport.View())
	b.WriteString(body)
	b.WriteString("\n")

	help := helpLine(m.keys.Next, m.keys.Browser, m.keys.Favorite, m.keys.Unread, m.keys.MarkAll, m.keys.Extract, m.keys.Back)
	b.WriteString(m.viewFooter(help))

	return b.String()
}
