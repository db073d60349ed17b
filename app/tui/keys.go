package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
)

type keyMap struct {
	Next      key.Binding
	Prev      key.Binding
	PageDown  key.Binding
	PageUp    key.Binding
	Home      key.Binding
	End       key.Binding
	Open      key.Binding
	Browser   key.Binding
	Favorite  key.Binding
	Unread    key.Binding
	MarkAll   key.Binding
	Favorites key.Binding
	Export    key.Binding
	Extract   key.Binding
	Back      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:      key.NewBinding(key.WithKeys("j", "J", "down"), key.WithHelp("j/k", "next/prev")),
		Prev:      key.NewBinding(key.WithKeys("k", "K", "up")),
		PageDown:  key.NewBinding(key.WithKeys("pgdown", "ctrl+d")),
		PageUp:    key.NewBinding(key.WithKeys("pgup", "ctrl+u")),
		Home:      key.NewBinding(key.WithKeys("home", "g")),
		End:       key.NewBinding(key.WithKeys("end", "G")),
		Open:      key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "read")),
		Browser:   key.NewBinding(key.WithKeys("o", "O"), key.WithHelp("o", "open")),
		Favorite:  key.NewBinding(key.WithKeys("s", "S", "l", "L"), key.WithHelp("s", "save")),
		Unread:    key.NewBinding(key.WithKeys("u", "U"), key.WithHelp("u", "unread")),
		MarkAll:   key.NewBinding(key.WithKeys("m", "M"), key.WithHelp("m", "mark all")),
		Favorites: key.NewBinding(key.WithKeys("f", "F"), key.WithHelp("f", "favorites")),
		Export:    key.NewBinding(key.WithKeys("e", "E"), key.WithHelp("e", "export")),
		Extract:   key.NewBinding(key.WithKeys("x", "X"), key.WithHelp("x", "full text")),
		Back:      key.NewBinding(key.WithKeys("q", "Q", "esc"), key.WithHelp("q", "back")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// detailViewportKeys scrolls the article body. j and k are left out since
// they move between articles in the detail view.
func detailViewportKeys() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		Up:           key.NewBinding(key.WithKeys("up")),
		Down:         key.NewBinding(key.WithKeys("down")),
	}
}

// helpLine renders the short key legend shown at the bottom of a screen.
func helpLine(bindings ...key.Binding) string {
	line := ""
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		if line != "" {
			line += " | "
		}
		line += h.Key + "=" + h.Desc
	}
	return line
}
