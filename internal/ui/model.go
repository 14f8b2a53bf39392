package ui

import (
	"errors"
	"strings"
	"time"

	"github.com/Dezmoral/Askar/internal/config"
	"github.com/Dezmoral/Askar/internal/db"
	"github.com/Dezmoral/Askar/internal/i18n"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type Mode int

const (
	ModeAuth Mode = iota
	ModeNormal
	ModeEditing
	ModeInput
	ModeConfirmDelete
	ModeHelp
)

type Panel int

const (
	PanelFolders Panel = iota
	PanelNotes
	PanelContent
)

// inputKind says what the single-line dialog is collecting.
type inputKind int

const (
	inputSearch inputKind = iota
	inputNewFolder
	inputTitle
	inputTags
	inputDeadline
	inputImage
)

type Model struct {
	db         *db.DB
	config     *config.Config
	configPath string
	logger     *zap.Logger
	watcher    *Watcher

	account *db.PublicAccount
	auth    authForm

	tree         []db.FolderNode
	folderCursor int // 0 is "all notes", i selects tree[i-1]

	notes      []db.Note
	noteCursor int
	listOffset int
	current    *db.NoteView
	pending    int64 // note to select once the list reloads

	mode        Mode
	activePanel Panel
	input       inputKind

	textarea  textarea.Model
	textinput textinput.Model
	search    string

	width  int
	height int

	keys KeyMap

	dirty    bool
	lastSave time.Time
	status   string
	err      error
}

// NewModel builds the TUI. watcher may be nil.
func NewModel(database *db.DB, cfg *config.Config, configPath string, logger *zap.Logger, watcher *Watcher) Model {
	t := i18n.T()
	if logger == nil {
		logger = zap.NewNop()
	}

	ti := textinput.New()
	ti.CharLimit = 256

	ta := textarea.New()
	ta.Placeholder = t.NotePlaceholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0

	return Model{
		db:          database,
		config:      cfg,
		configPath:  configPath,
		logger:      logger,
		watcher:     watcher,
		auth:        newAuthForm(cfg.LastEmail),
		keys:        NewKeyMap(),
		textinput:   ti,
		textarea:    ta,
		mode:        ModeAuth,
		activePanel: PanelNotes,
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.tickCmd()}
	if m.watcher != nil {
		cmds = append(cmds, m.watcher.wait())
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textarea.SetWidth(m.contentWidth() - 4)
		m.textarea.SetHeight(m.contentHeight() - 10)

	case tickMsg:
		if m.dirty && m.mode == ModeEditing {
			cmds = append(cmds, m.saveContent())
		}
		cmds = append(cmds, m.tickCmd())

	case storeChangedMsg:
		if m.account != nil {
			cmds = append(cmds, m.loadFolders(), m.loadNotes())
			if m.current != nil && m.mode != ModeEditing {
				cmds = append(cmds, m.loadNote(m.current.ID))
			}
		}
		cmds = append(cmds, m.watcher.wait())

	case loggedInMsg:
		m.account = msg.account
		m.mode = ModeNormal
		m.auth = newAuthForm(msg.account.Email)
		m.status = ""
		m.rememberEmail(msg.account.Email)
		m.logger.Info("logged in", zap.Int64("account_id", msg.account.ID))
		cmds = append(cmds, m.loadFolders(), m.loadNotes())

	case registeredMsg:
		m.auth = newAuthForm(msg.email)
		m.auth.message = i18n.T().Registered
		m.auth.failed = false

	case foldersLoadedMsg:
		m.tree = msg
		if m.folderCursor > len(m.tree) {
			m.folderCursor = 0
		}

	case notesLoadedMsg:
		m.notes = msg
		selected := m.pending
		if selected == 0 && m.current != nil {
			selected = m.current.ID
		}
		for i, n := range m.notes {
			if n.ID == selected {
				m.noteCursor = i
				break
			}
		}
		m.pending = 0
		if m.noteCursor >= len(m.notes) {
			m.noteCursor = max(len(m.notes)-1, 0)
		}
		m.clampOffset()
		if m.current == nil && len(m.notes) > 0 {
			cmds = append(cmds, m.loadNote(m.notes[m.noteCursor].ID))
		}
		if len(m.notes) == 0 && m.mode != ModeEditing {
			m.current = nil
		}

	case noteLoadedMsg:
		m.current = msg.note
		if msg.note != nil && m.mode != ModeEditing {
			m.textarea.SetValue(msg.note.Content)
			m.dirty = false
		}

	case noteCreatedMsg:
		m.current = nil
		m.pending = msg.id
		m.activePanel = PanelContent
		cmds = append(cmds, m.loadNotes())

	case noteSavedMsg:
		m.lastSave = time.Now()
		m.status = i18n.T().Saved
		m.err = nil
		cmds = append(cmds, m.loadNotes())
		if m.mode != ModeEditing {
			m.dirty = false
			cmds = append(cmds, m.loadNote(msg.id))
			break
		}
		// The editor stays open: take the stored copy as the new baseline
		// and stay dirty only if the text moved on since the save started.
		if msg.note != nil && m.current != nil && m.current.ID == msg.id {
			m.current = msg.note
		}
		m.dirty = m.current != nil && m.textarea.Value() != m.current.Content

	case noteDeletedMsg:
		m.current = nil
		cmds = append(cmds, m.loadNotes())

	case folderCreatedMsg:
		cmds = append(cmds, m.loadFolders())

	case errMsg:
		if m.mode == ModeAuth {
			m.auth.message = msg.Error()
			m.auth.failed = true
			break
		}
		m.err = msg.err
		m.status = ""
		var validation *db.ValidationError
		if !errors.As(msg.err, &validation) {
			m.logger.Warn("operation failed", zap.Error(msg.err))
		}

	case tea.KeyMsg:
		switch m.mode {
		case ModeAuth:
			return m.handleAuthKeys(msg)
		case ModeEditing:
			return m.handleEditingKeys(msg)
		case ModeInput:
			return m.handleInputKeys(msg)
		case ModeConfirmDelete:
			return m.handleConfirmDeleteKeys(msg)
		case ModeHelp:
			if key.Matches(msg, m.keys.Escape) || key.Matches(msg, m.keys.Help) {
				m.mode = ModeNormal
			}
			return m, nil
		}
		return m.handleNormalKeys(msg)
	}

	return m, tea.Batch(cmds...)
}

// selectedFolderID is nil while "all notes" is selected.
func (m Model) selectedFolderID() *int64 {
	if m.folderCursor <= 0 || m.folderCursor > len(m.tree) {
		return nil
	}
	id := m.tree[m.folderCursor-1].ID
	return &id
}

func (m Model) selectedNote() *db.Note {
	if m.noteCursor >= 0 && m.noteCursor < len(m.notes) {
		return &m.notes[m.noteCursor]
	}
	return nil
}

func (m *Model) clampOffset() {
	rows := m.visibleNotes()
	if m.noteCursor < m.listOffset {
		m.listOffset = m.noteCursor
	}
	if m.noteCursor >= m.listOffset+rows {
		m.listOffset = m.noteCursor - rows + 1
	}
	if m.listOffset < 0 {
		m.listOffset = 0
	}
}

func (m *Model) rememberEmail(email string) {
	if m.config.LastEmail == email || m.configPath == "" {
		return
	}
	m.config.LastEmail = email
	if err := m.config.Save(m.configPath); err != nil {
		m.logger.Warn("failed to remember login email", zap.Error(err))
	}
}

func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	t := i18n.T()
	m.err = nil

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp

	case key.Matches(msg, m.keys.Tab):
		m.activePanel = (m.activePanel + 1) % 3

	case key.Matches(msg, m.keys.ShiftTab):
		m.activePanel = (m.activePanel + 2) % 3

	case key.Matches(msg, m.keys.Up):
		return m.moveCursor(-1)

	case key.Matches(msg, m.keys.Down):
		return m.moveCursor(1)

	case key.Matches(msg, m.keys.Enter):
		switch m.activePanel {
		case PanelFolders:
			m.activePanel = PanelNotes
		case PanelNotes:
			if n := m.selectedNote(); n != nil {
				m.activePanel = PanelContent
				return m, m.loadNote(n.ID)
			}
		}

	case key.Matches(msg, m.keys.Escape):
		if m.search != "" {
			m.search = ""
			return m, m.loadNotes()
		}
		m.activePanel = PanelNotes

	case key.Matches(msg, m.keys.Edit):
		if m.current != nil {
			m.mode = ModeEditing
			m.activePanel = PanelContent
			m.textarea.SetValue(m.current.Content)
			m.textarea.Focus()
		}

	case key.Matches(msg, m.keys.Title):
		if m.current != nil {
			return m.openInput(inputTitle, m.current.Title, t.TitlePlaceholder)
		}

	case key.Matches(msg, m.keys.Tags):
		if m.current != nil {
			return m.openInput(inputTags, m.current.Tags, t.TagsPlaceholder)
		}

	case key.Matches(msg, m.keys.Deadline):
		if m.current != nil {
			deadline := ""
			if m.current.Deadline != nil {
				deadline = *m.current.Deadline
			}
			return m.openInput(inputDeadline, deadline, t.DeadlinePlaceholder)
		}

	case key.Matches(msg, m.keys.Image):
		if m.current != nil {
			return m.openInput(inputImage, m.current.ImagePath, t.ImagePlaceholder)
		}

	case key.Matches(msg, m.keys.Pin):
		if m.current != nil {
			fields := m.current.Fields()
			fields.Pinned = !fields.Pinned
			return m, m.saveNote(m.current.ID, fields)
		}

	case key.Matches(msg, m.keys.New):
		return m, m.createNote()

	case key.Matches(msg, m.keys.NewFolder):
		return m.openInput(inputNewFolder, "", t.FolderPlaceholder)

	case key.Matches(msg, m.keys.Delete):
		if m.current != nil && !m.current.Deleted {
			m.mode = ModeConfirmDelete
		}

	case key.Matches(msg, m.keys.Search):
		return m.openInput(inputSearch, m.search, t.Search+"...")

	case key.Matches(msg, m.keys.Logout):
		return m.logout(), nil
	}

	return m, nil
}

func (m Model) moveCursor(delta int) (tea.Model, tea.Cmd) {
	switch m.activePanel {
	case PanelFolders:
		next := m.folderCursor + delta
		if next < 0 || next > len(m.tree) {
			return m, nil
		}
		m.folderCursor = next
		m.noteCursor = 0
		m.listOffset = 0
		m.current = nil
		return m, m.loadNotes()

	case PanelNotes:
		next := m.noteCursor + delta
		if next < 0 || next >= len(m.notes) {
			return m, nil
		}
		m.noteCursor = next
		m.clampOffset()
		return m, m.loadNote(m.notes[next].ID)
	}
	return m, nil
}

func (m Model) logout() Model {
	m.account = nil
	m.tree = nil
	m.notes = nil
	m.current = nil
	m.folderCursor = 0
	m.noteCursor = 0
	m.listOffset = 0
	m.search = ""
	m.dirty = false
	m.status = ""
	m.mode = ModeAuth
	m.auth = newAuthForm(m.config.LastEmail)
	return m
}

func (m Model) openInput(kind inputKind, value, placeholder string) (tea.Model, tea.Cmd) {
	m.mode = ModeInput
	m.input = kind
	m.textinput.Placeholder = placeholder
	m.textinput.SetValue(value)
	m.textinput.CursorEnd()
	return m, m.textinput.Focus()
}

func (m Model) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = ModeNormal
		m.textinput.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		value := m.textinput.Value()
		m.mode = ModeNormal
		m.textinput.Blur()
		cmd = m.submitInput(value)
		return m, cmd

	default:
		m.textinput, cmd = m.textinput.Update(msg)
	}
	return m, cmd
}

func (m *Model) submitInput(value string) tea.Cmd {
	switch m.input {
	case inputSearch:
		m.search = strings.TrimSpace(value)
		m.noteCursor = 0
		m.listOffset = 0
		m.current = nil
		m.activePanel = PanelNotes
		return m.loadNotes()
	case inputNewFolder:
		return m.createFolder(value)
	}

	if m.current == nil {
		return nil
	}
	fields := m.current.Fields()
	switch m.input {
	case inputTitle:
		fields.Title = value
	case inputTags:
		fields.Tags = value
	case inputDeadline:
		fields.Deadline = value
	case inputImage:
		fields.ImagePath = value
	}
	return m.saveNote(m.current.ID, fields)
}

func (m Model) handleEditingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = ModeNormal
		m.textarea.Blur()
		if m.dirty {
			return m, m.saveContent()
		}
		if m.current != nil {
			return m, m.loadNote(m.current.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Save):
		return m, m.saveContent()

	case key.Matches(msg, m.keys.Quit):
		if m.dirty {
			return m, tea.Sequence(m.saveContent(), tea.Quit)
		}
		return m, tea.Quit

	default:
		m.textarea, cmd = m.textarea.Update(msg)
		if m.current != nil && m.textarea.Value() != m.current.Content {
			m.dirty = true
		}
	}
	return m, cmd
}

// saveContent stores the editor text, keeping every other field as loaded.
func (m Model) saveContent() tea.Cmd {
	if m.current == nil {
		return nil
	}
	fields := m.current.Fields()
	fields.Content = m.textarea.Value()
	return m.saveNote(m.current.ID, fields)
}

func (m Model) handleConfirmDeleteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "д", "Д":
		m.mode = ModeNormal
		if m.current != nil {
			return m, m.deleteNote(m.current.ID)
		}
	case "n", "N", "н", "Н", "esc":
		m.mode = ModeNormal
	}
	return m, nil
}
