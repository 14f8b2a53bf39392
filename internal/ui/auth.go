package ui

import (
	"github.com/Dezmoral/Askar/internal/i18n"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	fieldUsername = iota
	fieldEmail
	fieldPassword
)

type authForm struct {
	registering bool
	inputs      []textinput.Model
	focused     int
	message     string
	failed      bool
}

func newAuthForm(email string) authForm {
	t := i18n.T()

	username := textinput.New()
	username.Placeholder = t.Username
	username.CharLimit = 64

	mail := textinput.New()
	mail.Placeholder = t.Email
	mail.CharLimit = 254
	mail.SetValue(email)

	password := textinput.New()
	password.Placeholder = t.Password
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 256

	f := authForm{inputs: []textinput.Model{username, mail, password}}
	if email != "" {
		f.focus(fieldPassword)
	} else {
		f.focus(fieldEmail)
	}
	return f
}

// fields lists the inputs shown in the current mode, in tab order.
func (f *authForm) fields() []int {
	if f.registering {
		return []int{fieldUsername, fieldEmail, fieldPassword}
	}
	return []int{fieldEmail, fieldPassword}
}

func (f *authForm) focus(field int) {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	f.focused = field
	f.inputs[field].Focus()
}

func (f *authForm) step(delta int) {
	fields := f.fields()
	pos := 0
	for i, field := range fields {
		if field == f.focused {
			pos = i
		}
	}
	pos = (pos + delta + len(fields)) % len(fields)
	f.focus(fields[pos])
}

func (f *authForm) last() bool {
	fields := f.fields()
	return f.focused == fields[len(fields)-1]
}

func (f *authForm) toggle() {
	f.registering = !f.registering
	f.message = ""
	f.failed = false
	f.inputs[fieldPassword].SetValue("")
	f.focus(f.fields()[0])
}

func (m Model) handleAuthKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.SwitchAuth):
		m.auth.toggle()
		return m, nil
	}

	switch msg.String() {
	case "tab", "down":
		m.auth.step(1)
		return m, nil

	case "shift+tab", "up":
		m.auth.step(-1)
		return m, nil

	case "enter":
		if !m.auth.last() {
			m.auth.step(1)
			return m, nil
		}
		in := m.auth.inputs
		m.auth.message = ""
		if m.auth.registering {
			return m, m.register(in[fieldUsername].Value(), in[fieldEmail].Value(), in[fieldPassword].Value())
		}
		return m, m.login(in[fieldEmail].Value(), in[fieldPassword].Value())
	}

	m.auth.inputs[m.auth.focused], cmd = m.auth.inputs[m.auth.focused].Update(msg)
	return m, cmd
}

func (m Model) renderAuth() string {
	t := i18n.T()
	f := m.auth

	title := t.Login
	hint := t.SwitchToRegister
	if f.registering {
		title = t.Register
		hint = t.SwitchToLogin
	}

	rows := []string{TitleStyle.Render(title), ""}
	for _, field := range f.fields() {
		rows = append(rows, f.inputs[field].View())
	}
	rows = append(rows, "")

	if f.message != "" {
		if f.failed {
			rows = append(rows, ErrorStyle.Render(f.message))
		} else {
			rows = append(rows, SuccessStyle.Render(f.message))
		}
		rows = append(rows, "")
	}
	rows = append(rows, MutedStyle.Render(t.EnterConfirm+"  "+hint))

	dialog := DialogStyle.Width(50).Align(lipgloss.Left).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, dialog)
}
