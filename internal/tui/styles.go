package tui

import "github.com/charmbracelet/lipgloss"

// Styles is the theme-dependent palette. Light and dark mirror the web
// frontend's two themes.
type Styles struct {
	Header     lipgloss.Style
	UserBubble lipgloss.Style
	BotBubble  lipgloss.Style
	Welcome    lipgloss.Style
	Timestamp  lipgloss.Style
	Error      lipgloss.Style
	Status     lipgloss.Style
	Suggestion lipgloss.Style
	Help       lipgloss.Style
	Listening  lipgloss.Style
}

func NewStyles(theme string) Styles {
	var (
		green  = lipgloss.Color("34")
		leaf   = lipgloss.Color("77")
		gray   = lipgloss.Color("245")
		red    = lipgloss.Color("160")
		yellow = lipgloss.Color("178")
	)
	if theme == "dark" {
		green = lipgloss.Color("42")
		leaf = lipgloss.Color("83")
		gray = lipgloss.Color("243")
		red = lipgloss.Color("203")
		yellow = lipgloss.Color("221")
	}

	return Styles{
		Header:     lipgloss.NewStyle().Bold(true).Foreground(green),
		UserBubble: lipgloss.NewStyle().Foreground(green).Bold(true),
		BotBubble:  lipgloss.NewStyle().Foreground(leaf),
		Welcome:    lipgloss.NewStyle().Foreground(leaf).Italic(true),
		Timestamp:  lipgloss.NewStyle().Foreground(gray),
		Error:      lipgloss.NewStyle().Foreground(red),
		Status:     lipgloss.NewStyle().Foreground(yellow),
		Suggestion: lipgloss.NewStyle().Foreground(leaf),
		Help:       lipgloss.NewStyle().Foreground(gray),
		Listening:  lipgloss.NewStyle().Foreground(yellow).Bold(true),
	}
}
