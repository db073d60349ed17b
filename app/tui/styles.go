package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	bannerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	statsStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	clockStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	problemStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))

	rowStyle      = lipgloss.NewStyle()
	readRowStyle  = lipgloss.NewStyle().Faint(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	sourceStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	starStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	detailSourceStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	detailTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	detailDateStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	progressFilled = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	progressEmpty  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)
