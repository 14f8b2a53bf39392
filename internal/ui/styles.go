package ui

import "github.com/charmbracelet/lipgloss"

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	text      = lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#fafafa"}
	muted     = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}
	warning   = lipgloss.AdaptiveColor{Light: "#C2410C", Dark: "#FB923C"}
	danger    = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(highlight).
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(subtle)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(subtle).
			Padding(0, 1)

	ActivePanelStyle = PanelStyle.
				BorderForeground(highlight)

	PanelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(highlight).
			MarginBottom(1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(text)

	SelectedStyle = lipgloss.NewStyle().
			Background(highlight).
			Foreground(lipgloss.Color("#000000"))

	MutedStyle = lipgloss.NewStyle().
			Foreground(muted)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(highlight)

	TagStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true)

	OverdueStyle = lipgloss.NewStyle().
			Foreground(warning).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(danger).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(special)

	DialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(highlight).
			Padding(1, 3).
			Align(lipgloss.Center)

	KeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(highlight)

	KeyHintStyle = lipgloss.NewStyle().
			Foreground(muted)
)

const (
	FolderIcon = "📁"
	NoteIcon   = "📝"
	PinIcon    = "📌"
)

// ApplyTheme picks the light or dark side of the adaptive palette.
func ApplyTheme(theme string) {
	switch theme {
	case "light":
		lipgloss.SetHasDarkBackground(false)
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	}
}
