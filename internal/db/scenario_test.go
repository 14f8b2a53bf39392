package db

import (
	"path/filepath"
	"testing"

	"github.com/Dezmoral/Askar/internal/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNotebookSession drives one user through the whole surface against a
// file-backed store and then reopens it.
func TestNotebookSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "askar", "notes.json")
	storage, err := NewFileStorage(path)
	require.NoError(t, err)
	db := newTestDBWith(storage)

	_, err = db.Register("alice", "Alice@Example.com", "secret1")
	require.NoError(t, err)

	account, err := db.Login("alice@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), account.ID)

	folders := db.ListFolders(account.ID)
	require.Len(t, folders, 1)
	assert.Equal(t, DefaultFolderName, folders[0].Name)

	id, err := db.CreateNote(account.ID, &folders[0].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	require.NoError(t, db.SaveNote(account.ID, id, NoteFields{
		Title:    "",
		Content:  "hi",
		FolderID: &folders[0].ID,
		Tags:     "a, b",
	}))

	note := db.GetNote(account.ID, id)
	require.NotNil(t, note)
	assert.Equal(t, i18n.T().UntitledNote, note.Title)
	assert.Equal(t, "a, b", note.Tags)

	notes := db.ListNotes(account.ID, NoteFilter{FolderID: &folders[0].ID})
	require.Len(t, notes, 1)
	assert.Equal(t, []string{"a", "b"}, notes[0].Tags)
	assert.Equal(t, "a, b", JoinTags(notes[0].Tags))

	reopened := newTestDBWith(storage)
	again, err := reopened.Login("ALICE@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, account, again)
	assert.Equal(t, note, reopened.GetNote(account.ID, id))

	next, err := reopened.CreateNote(account.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), next, "counters survive a restart")
}
