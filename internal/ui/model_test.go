package ui

import (
	"testing"
	"time"

	"github.com/Dezmoral/Askar/internal/config"
	"github.com/Dezmoral/Askar/internal/crypto"
	"github.com/Dezmoral/Askar/internal/db"
	"github.com/Dezmoral/Askar/internal/i18n"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T) (Model, *db.DB) {
	t.Helper()
	store := db.New(db.NewMemoryStorage(), db.WithHasher(crypto.NewHasher(1000)))
	_, err := store.Register("alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	cfg := config.Default()
	cfg.AutoSaveInterval = time.Hour
	m := NewModel(store, cfg, "", nil, nil)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model), store
}

// settle runs cmd and feeds what it produces back into the model until no
// store commands are left. Only store-backed commands are expected here.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			next, more := m.Update(msg)
			m = next.(Model)
			queue = append(queue, more)
		}
	}
	return m
}

func press(m Model, keys string) (Model, tea.Cmd) {
	var msg tea.KeyMsg
	switch keys {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+n":
		msg = tea.KeyMsg{Type: tea.KeyCtrlN}
	case "ctrl+d":
		msg = tea.KeyMsg{Type: tea.KeyCtrlD}
	case "ctrl+r":
		msg = tea.KeyMsg{Type: tea.KeyCtrlR}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)}
	}
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func typeText(m Model, s string) Model {
	m, _ = press(m, s)
	return m
}

func loggedIn(t *testing.T) (Model, *db.DB) {
	t.Helper()
	m, store := newTestModel(t)
	m.auth.inputs[fieldEmail].SetValue("alice@example.com")
	m.auth.focus(fieldPassword)
	m.auth.inputs[fieldPassword].SetValue("secret1")

	m, cmd := press(m, "enter")
	m = settle(t, m, cmd)
	require.Equal(t, ModeNormal, m.mode)
	require.NotNil(t, m.account)
	return m, store
}

func TestLoginFlow(t *testing.T) {
	m, _ := loggedIn(t)

	assert.Equal(t, int64(1), m.account.ID)
	require.Len(t, m.tree, 1)
	assert.Equal(t, db.DefaultFolderName, m.tree[0].Name)
	assert.Empty(t, m.notes)
	assert.Nil(t, m.current)
	assert.NotEmpty(t, m.View())
}

func TestLoginFailureStaysOnAuthScreen(t *testing.T) {
	m, _ := newTestModel(t)
	m.auth.inputs[fieldEmail].SetValue("alice@example.com")
	m.auth.focus(fieldPassword)
	m.auth.inputs[fieldPassword].SetValue("wrong")

	m, cmd := press(m, "enter")
	m = settle(t, m, cmd)

	assert.Equal(t, ModeAuth, m.mode)
	assert.True(t, m.auth.failed)
	assert.Equal(t, i18n.T().InvalidCredentials, m.auth.message)
}

func TestRegisterFlow(t *testing.T) {
	m, store := newTestModel(t)
	m, _ = press(m, "ctrl+r")
	require.True(t, m.auth.registering)
	assert.Equal(t, fieldUsername, m.auth.focused)

	m.auth.inputs[fieldUsername].SetValue("bob")
	m.auth.inputs[fieldEmail].SetValue("bob@example.com")
	m.auth.focus(fieldPassword)
	m.auth.inputs[fieldPassword].SetValue("hunter22")

	m, cmd := press(m, "enter")
	m = settle(t, m, cmd)

	assert.False(t, m.auth.registering)
	assert.Equal(t, i18n.T().Registered, m.auth.message)
	assert.Equal(t, "bob@example.com", m.auth.inputs[fieldEmail].Value())
	assert.NotNil(t, store.GetAccount(2))
}

func TestCreateAndEditNote(t *testing.T) {
	m, store := loggedIn(t)

	m, cmd := press(m, "ctrl+n")
	m = settle(t, m, cmd)
	require.Len(t, m.notes, 1)
	require.NotNil(t, m.current)
	assert.Equal(t, PanelContent, m.activePanel)

	m, _ = press(m, "e")
	require.Equal(t, ModeInput, m.mode)
	m.textinput.SetValue("Покупки")
	m, cmd = press(m, "enter")
	m = settle(t, m, cmd)
	assert.Equal(t, "Покупки", m.current.Title)

	m, _ = press(m, "t")
	m.textinput.SetValue("Home, Urgent")
	m, cmd = press(m, "enter")
	m = settle(t, m, cmd)
	assert.Equal(t, "home, urgent", m.current.Tags)

	m, cmd = press(m, "p")
	m = settle(t, m, cmd)
	assert.True(t, m.current.Pinned)
	assert.Equal(t, "Покупки", m.current.Title, "other fields are kept")

	m, _ = press(m, "i")
	require.Equal(t, ModeEditing, m.mode)
	m = typeText(m, "молоко")
	assert.True(t, m.dirty)
	m, cmd = press(m, "esc")
	m = settle(t, m, cmd)

	assert.Equal(t, ModeNormal, m.mode)
	assert.False(t, m.dirty)
	stored := store.GetNote(1, m.current.ID)
	assert.Equal(t, "молоко", stored.Content)
	assert.Equal(t, "home, urgent", stored.Tags)
	assert.True(t, stored.Pinned)
}

func TestAutoSaveKeepsEditorClean(t *testing.T) {
	m, store := loggedIn(t)
	m, cmd := press(m, "ctrl+n")
	m = settle(t, m, cmd)

	m, _ = press(m, "i")
	m = typeText(m, "milk")
	require.True(t, m.dirty)

	// what a tick does while editing
	m = settle(t, m, m.saveContent())
	require.Equal(t, ModeEditing, m.mode)
	assert.False(t, m.dirty)

	stored := store.GetNote(1, m.current.ID)
	assert.Equal(t, "milk", m.current.Content)
	assert.Equal(t, stored.UpdatedAt, m.current.UpdatedAt)

	m, _ = press(m, "left")
	assert.False(t, m.dirty, "moving the cursor does not change the text")

	m = typeText(m, "s")
	assert.True(t, m.dirty)
}

func TestInvalidDeadlineShowsError(t *testing.T) {
	m, _ := loggedIn(t)
	m, cmd := press(m, "ctrl+n")
	m = settle(t, m, cmd)

	m, _ = press(m, "D")
	m.textinput.SetValue("someday")
	m, cmd = press(m, "enter")
	m = settle(t, m, cmd)

	require.Error(t, m.err)
	assert.Equal(t, i18n.T().InvalidDeadline, m.err.Error())
	assert.Nil(t, m.current.Deadline)
}

func TestNewFolderUnderSelection(t *testing.T) {
	m, store := loggedIn(t)
	m.activePanel = PanelFolders
	m, cmd := press(m, "down")
	m = settle(t, m, cmd)
	require.NotNil(t, m.selectedFolderID())

	m, _ = press(m, "ctrl+d")
	require.Equal(t, ModeInput, m.mode)
	m.textinput.SetValue("Работа")
	m, cmd = press(m, "enter")
	m = settle(t, m, cmd)

	tree := store.FolderTree(1)
	require.Len(t, tree, 2)
	assert.Equal(t, "Работа", tree[1].Name)
	assert.Equal(t, 1, tree[1].Depth)
	assert.Len(t, m.tree, 2)
}

func TestSearchAndDelete(t *testing.T) {
	m, store := loggedIn(t)
	for _, title := range []string{"alpha", "beta"} {
		id, err := store.CreateNote(1, nil)
		require.NoError(t, err)
		require.NoError(t, store.SaveNote(1, id, db.NoteFields{Title: title}))
	}
	m = settle(t, m, m.loadNotes())
	require.Len(t, m.notes, 2)

	m, _ = press(m, "/")
	require.Equal(t, ModeInput, m.mode)
	m.textinput.SetValue("ALPHA")
	m, cmd := press(m, "enter")
	m = settle(t, m, cmd)
	require.Len(t, m.notes, 1)
	require.NotNil(t, m.current)
	assert.Equal(t, "alpha", m.current.Title)

	m, _ = press(m, "d")
	require.Equal(t, ModeConfirmDelete, m.mode)
	m, cmd = press(m, "y")
	m = settle(t, m, cmd)
	assert.Empty(t, m.notes)
	assert.Nil(t, m.current)

	m, cmd = press(m, "esc")
	m = settle(t, m, cmd)
	assert.Equal(t, "", m.search)
	require.Len(t, m.notes, 1)
	assert.Equal(t, "beta", m.notes[0].Title)
}

func TestLogout(t *testing.T) {
	m, _ := loggedIn(t)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlO})
	m = next.(Model)

	assert.Equal(t, ModeAuth, m.mode)
	assert.Nil(t, m.account)
	assert.Empty(t, m.notes)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "прив…", truncate("привет мир", 5))
	assert.Equal(t, "", truncate("abc", 0))
}
