package ui

import (
	"github.com/Dezmoral/Askar/internal/i18n"
	"github.com/charmbracelet/bubbles/key"
)

type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Enter     key.Binding
	Escape    key.Binding
	Tab       key.Binding
	ShiftTab  key.Binding
	Edit      key.Binding
	Title     key.Binding
	Tags      key.Binding
	Deadline  key.Binding
	Pin       key.Binding
	Image     key.Binding
	Save      key.Binding
	New       key.Binding
	NewFolder key.Binding
	Delete    key.Binding
	Search    key.Binding
	Logout    key.Binding
	Help      key.Binding
	Quit      key.Binding

	// auth screen only
	SwitchAuth key.Binding
}

func NewKeyMap() KeyMap {
	t := i18n.T()
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", t.KeyUp),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", t.KeyDown),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", t.KeyEnter),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", t.KeyEscape),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", t.KeyTab),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
		),
		Edit: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", t.KeyEdit),
		),
		Title: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", t.KeyTitle),
		),
		Tags: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", t.KeyTags),
		),
		Deadline: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", t.KeyDeadline),
		),
		Pin: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", t.KeyPin),
		),
		Image: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", t.KeyImage),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("Ctrl+S", t.KeySave),
		),
		New: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("Ctrl+N", t.KeyNew),
		),
		NewFolder: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("Ctrl+D", t.KeyNewFold),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", t.KeyDelete),
		),
		Search: key.NewBinding(
			key.WithKeys("ctrl+f", "/"),
			key.WithHelp("Ctrl+F", t.KeySearch),
		),
		Logout: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("Ctrl+O", t.KeyLogout),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", t.KeyHelp),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+q", "ctrl+c"),
			key.WithHelp("Ctrl+Q", t.KeyQuit),
		),
		SwitchAuth: key.NewBinding(
			key.WithKeys("ctrl+r"),
		),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Enter, k.Edit, k.New, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter, k.Tab, k.Escape},
		{k.Edit, k.Title, k.Tags, k.Deadline, k.Pin, k.Image, k.Save},
		{k.New, k.NewFolder, k.Delete, k.Search},
		{k.Logout, k.Help, k.Quit},
	}
}
