package ui

import (
	"time"

	"github.com/Dezmoral/Askar/internal/db"
	tea "github.com/charmbracelet/bubbletea"
)

type tickMsg time.Time
type foldersLoadedMsg []db.FolderNode
type notesLoadedMsg []db.Note
type noteLoadedMsg struct {
	note *db.NoteView
}
type noteSavedMsg struct {
	id   int64
	note *db.NoteView
}
type noteCreatedMsg struct {
	id int64
}
type noteDeletedMsg struct {
	id int64
}
type folderCreatedMsg struct {
	folder *db.Folder
}
type loggedInMsg struct {
	account *db.PublicAccount
}
type registeredMsg struct {
	email string
}
type errMsg struct {
	err error
}

func (e errMsg) Error() string { return e.err.Error() }

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.config.AutoSaveInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) login(email, password string) tea.Cmd {
	return func() tea.Msg {
		account, err := m.db.Login(email, password)
		if err != nil {
			return errMsg{err}
		}
		return loggedInMsg{account: account}
	}
}

func (m Model) register(username, email, password string) tea.Cmd {
	return func() tea.Msg {
		account, err := m.db.Register(username, email, password)
		if err != nil {
			return errMsg{err}
		}
		return registeredMsg{email: account.Email}
	}
}

func (m Model) loadFolders() tea.Cmd {
	ownerID := m.account.ID
	return func() tea.Msg {
		return foldersLoadedMsg(m.db.FolderTree(ownerID))
	}
}

func (m Model) loadNotes() tea.Cmd {
	ownerID := m.account.ID
	filter := db.NoteFilter{FolderID: m.selectedFolderID(), Search: m.search}
	return func() tea.Msg {
		return notesLoadedMsg(m.db.ListNotes(ownerID, filter))
	}
}

func (m Model) loadNote(id int64) tea.Cmd {
	ownerID := m.account.ID
	return func() tea.Msg {
		return noteLoadedMsg{note: m.db.GetNote(ownerID, id)}
	}
}

func (m Model) createNote() tea.Cmd {
	ownerID := m.account.ID
	folderID := m.selectedFolderID()
	return func() tea.Msg {
		id, err := m.db.CreateNote(ownerID, folderID)
		if err != nil {
			return errMsg{err}
		}
		return noteCreatedMsg{id: id}
	}
}

func (m Model) createFolder(name string) tea.Cmd {
	ownerID := m.account.ID
	parentID := m.selectedFolderID()
	return func() tea.Msg {
		folder, err := m.db.CreateFolder(ownerID, name, parentID)
		if err != nil {
			return errMsg{err}
		}
		return folderCreatedMsg{folder: folder}
	}
}

// saveNote writes fields over the note. The caller builds fields from the
// current view so untouched values are kept.
func (m Model) saveNote(id int64, fields db.NoteFields) tea.Cmd {
	ownerID := m.account.ID
	return func() tea.Msg {
		if err := m.db.SaveNote(ownerID, id, fields); err != nil {
			return errMsg{err}
		}
		return noteSavedMsg{id: id, note: m.db.GetNote(ownerID, id)}
	}
}

func (m Model) deleteNote(id int64) tea.Cmd {
	ownerID := m.account.ID
	return func() tea.Msg {
		if err := m.db.DeleteNote(ownerID, id); err != nil {
			return errMsg{err}
		}
		return noteDeletedMsg{id: id}
	}
}
