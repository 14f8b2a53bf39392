package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Dezmoral/Askar/internal/db"
	"github.com/Dezmoral/Askar/internal/i18n"
	"github.com/charmbracelet/lipgloss"
)

const previewLength = 140

func (m Model) folderWidth() int {
	return int(float64(m.width) * 0.22)
}

func (m Model) listWidth() int {
	return int(float64(m.width) * 0.30)
}

func (m Model) contentWidth() int {
	return m.width - m.folderWidth() - m.listWidth()
}

func (m Model) contentHeight() int {
	return m.height - 5
}

// visibleNotes is how many two-line note entries fit in the list panel.
func (m Model) visibleNotes() int {
	return max((m.contentHeight()-4)/2, 1)
}

func (m Model) View() string {
	t := i18n.T()

	if m.width == 0 {
		return t.Loading
	}

	switch m.mode {
	case ModeAuth:
		return m.renderAuth()
	case ModeHelp:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderHelp())
	case ModeInput:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderInputDialog())
	case ModeConfirmDelete:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderConfirmDialog())
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderFolders(), m.renderNotes(), m.renderContent())
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, m.renderStatus())
}

func (m Model) panelStyle(p Panel) lipgloss.Style {
	if m.activePanel == p {
		return ActivePanelStyle
	}
	return PanelStyle
}

func (m Model) renderHeader() string {
	title := "Askar"
	if m.account != nil {
		title += "  " + MutedStyle.Render(m.account.Username+" <"+m.account.Email+">")
	}
	return HeaderStyle.Width(m.width - 2).Render(title)
}

func (m Model) renderFolders() string {
	t := i18n.T()
	width := m.folderWidth() - 4

	lines := []string{PanelTitleStyle.Render(t.Folders)}
	lines = append(lines, m.listLine(0, FolderIcon+" "+t.AllNotes, width))
	for i, node := range m.tree {
		label := strings.Repeat("  ", node.Depth) + FolderIcon + " " + node.Name
		lines = append(lines, m.listLine(i+1, label, width))
	}

	return m.panelStyle(PanelFolders).
		Width(m.folderWidth() - 2).
		Height(m.contentHeight()).
		Render(strings.Join(lines, "\n"))
}

func (m Model) listLine(index int, label string, width int) string {
	label = truncate(label, width)
	if index == m.folderCursor {
		return SelectedStyle.Render(fmt.Sprintf("%-*s", width, label))
	}
	return label
}

func (m Model) renderNotes() string {
	t := i18n.T()
	width := m.listWidth() - 4
	now := time.Now()

	heading := t.AllNotes
	if id := m.selectedFolderID(); id != nil {
		heading = m.tree[m.folderCursor-1].Name
	}
	if m.search != "" {
		heading += "  " + MutedStyle.Render("/"+m.search)
	}
	lines := []string{PanelTitleStyle.Render(truncate(heading, width))}

	end := min(m.listOffset+m.visibleNotes(), len(m.notes))
	for i := m.listOffset; i < end; i++ {
		n := m.notes[i]
		title := n.Title
		if title == "" {
			title = t.UntitledNote
		}
		if n.Pinned {
			title = PinIcon + " " + title
		}
		badge := ""
		if n.Overdue(now) {
			badge = " " + OverdueStyle.Render("!")
		}

		titleLine := truncate(title, width-lipgloss.Width(badge))
		preview := truncate(n.Preview(previewLength), width)
		if preview == "" {
			preview = t.EmptyNote
		}

		if i == m.noteCursor {
			lines = append(lines,
				SelectedStyle.Render(fmt.Sprintf("%-*s", width-lipgloss.Width(badge), titleLine))+badge,
				MutedStyle.Render(preview))
		} else {
			lines = append(lines, TitleStyle.Render(titleLine)+badge, MutedStyle.Render(preview))
		}
	}

	return m.panelStyle(PanelNotes).
		Width(m.listWidth() - 2).
		Height(m.contentHeight()).
		Render(strings.Join(lines, "\n"))
}

func (m Model) renderContent() string {
	t := i18n.T()
	style := m.panelStyle(PanelContent).Width(m.contentWidth() - 2).Height(m.contentHeight())

	if m.current == nil {
		return style.Render(MutedStyle.Render(t.NoNoteSelected))
	}

	title := m.current.Title
	if title == "" {
		title = t.UntitledNote
	}

	var body string
	if m.mode == ModeEditing {
		body = m.textarea.View()
	} else if m.current.Content == "" {
		body = MutedStyle.Render(t.EmptyNote)
	} else {
		body = m.current.Content
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left,
		PanelTitleStyle.Render(NoteIcon+" "+title),
		body,
		"",
		m.renderMetadata(),
	))
}

func (m Model) renderMetadata() string {
	t := i18n.T()
	n := m.current

	tags := MutedStyle.Render(t.None)
	if n.Tags != "" {
		var rendered []string
		for _, tag := range db.ParseTags(n.Tags) {
			rendered = append(rendered, TagStyle.Render("#"+tag))
		}
		tags = strings.Join(rendered, " ")
	}

	deadline := MutedStyle.Render(t.None)
	if n.Deadline != nil {
		deadline = *n.Deadline
		note := db.Note{Deadline: n.Deadline}
		if note.Overdue(time.Now()) {
			deadline += "  " + OverdueStyle.Render(t.Overdue)
		}
	}

	pinned := t.No
	if n.Pinned {
		pinned = t.Yes
	}

	image := MutedStyle.Render(t.None)
	if n.ImagePath != "" {
		image = n.ImagePath
	}

	rows := [][2]string{
		{t.Tags, tags},
		{t.Deadline, deadline},
		{t.Pinned, pinned},
		{t.Image, image},
		{t.CreatedAt, formatTimestamp(n.CreatedAt)},
		{t.ModifiedAt, formatTimestamp(n.UpdatedAt)},
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, LabelStyle.Render(r[0]+":")+" "+r[1])
	}
	return strings.Join(lines, "\n")
}

func formatTimestamp(ts db.Timestamp) string {
	parsed, err := ts.Time()
	if err != nil {
		return string(ts)
	}
	return parsed.Local().Format("2006-01-02 15:04")
}

func (m Model) renderStatus() string {
	t := i18n.T()

	mode := t.ModeNormal
	if m.mode == ModeEditing {
		mode = t.ModeEdit
	} else if m.search != "" {
		mode = t.ModeSearch
	}

	left := fmt.Sprintf(" %s | %d %s", mode, len(m.notes), t.Notes)
	switch {
	case m.err != nil:
		left += " | " + ErrorStyle.Render(m.err.Error())
	case m.status != "" && !m.lastSave.IsZero():
		left += " | " + SuccessStyle.Render(m.status+" "+m.lastSave.Format("15:04:05"))
	}

	right := fmt.Sprintf("? %s | Ctrl+Q %s", t.Help, t.Exit)
	if m.dirty {
		right = "* " + t.Unsaved + " | " + right
	}

	padding := max(m.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 0)
	return StatusBarStyle.Render(left + strings.Repeat(" ", padding) + right)
}

func (m Model) renderInputDialog() string {
	t := i18n.T()

	var title string
	switch m.input {
	case inputSearch:
		title = t.Search
	case inputNewFolder:
		title = t.NewFolder
	case inputTitle:
		title = t.EditTitle
	case inputTags:
		title = t.EditTags
	case inputDeadline:
		title = t.EditDeadline
	case inputImage:
		title = t.EditImage
	}

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		TitleStyle.Render(title),
		"",
		m.textinput.View(),
		"",
		MutedStyle.Render(t.EnterConfirm+"  "+t.EscCancel),
	)
	return DialogStyle.Width(50).Render(content)
}

func (m Model) renderConfirmDialog() string {
	t := i18n.T()

	title := ""
	if m.current != nil {
		title = m.current.Title
	}
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		TitleStyle.Render(t.DeleteNote),
		"",
		fmt.Sprintf(t.DeleteConfirm, title),
		"",
		MutedStyle.Render("[Y] "+t.Yes+"  [N] "+t.No),
	)
	return DialogStyle.Width(40).Render(content)
}

func (m Model) renderHelp() string {
	t := i18n.T()

	var b strings.Builder
	b.WriteString(LabelStyle.Render(t.HelpTitle) + "\n\n")
	for _, group := range m.keys.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %s %s\n", KeyStyle.Render(fmt.Sprintf("%-10s", h.Key)), KeyHintStyle.Render(h.Desc)))
		}
		b.WriteString("\n")
	}
	b.WriteString(MutedStyle.Render(t.EscCancel))

	return DialogStyle.Align(lipgloss.Left).Render(b.String())
}

// truncate cuts s to max display runes, marking the cut with an ellipsis.
func truncate(s string, max int) string {
	r := []rune(s)
	if max <= 0 {
		return ""
	}
	if len(r) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}
