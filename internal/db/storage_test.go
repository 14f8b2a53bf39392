package db

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleData() *Data {
	data := NewData()
	folder := int64(1)
	deadline := "2024-05-01"
	data.Counters = Counters{Account: 2, Folder: 2, Note: 2}
	data.Accounts = append(data.Accounts, Account{ID: 1, Username: "alice", Email: "alice@example.com", Credential: "aa:bb", CreatedAt: "2024-01-01T00:00:00.000Z"})
	data.Folders = append(data.Folders, Folder{ID: 1, OwnerID: 1, Name: DefaultFolderName, CreatedAt: "2024-01-01T00:00:00.000Z"})
	data.Notes = append(data.Notes, Note{
		ID: 1, OwnerID: 1, FolderID: &folder, Title: "Заметка", Content: "текст",
		Deadline: &deadline, Pinned: true, Tags: []string{"a", "b"},
		CreatedAt: "2024-01-01T00:00:00.000Z", UpdatedAt: "2024-01-02T00:00:00.000Z",
	})
	return data
}

func TestFileStorageMissingFile(t *testing.T) {
	storage, err := NewFileStorage(filepath.Join(t.TempDir(), "nested", "notes.json"))
	require.NoError(t, err)

	_, err = storage.Load()
	assert.ErrorIs(t, err, ErrNoData)

	info, err := os.Stat(filepath.Dir(storage.Path()))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFileStorageRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.json")
	storage, err := NewFileStorage(path)
	require.NoError(t, err)

	want := sampleData()
	require.NoError(t, storage.Persist(want))

	got, err := storage.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files are left behind")
}

func TestFileStorageLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.json")
	storage, err := NewFileStorage(path)
	require.NoError(t, err)
	require.NoError(t, storage.Persist(sampleData()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "{\n  \"counters\""), "document is indented")

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.ElementsMatch(t, []string{"counters", "accounts", "folders", "notes"}, keys(doc))

	var counters map[string]int64
	require.NoError(t, json.Unmarshal(doc["counters"], &counters))
	assert.Equal(t, map[string]int64{"account": 2, "folder": 2, "note": 2}, counters)

	var notes []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(doc["notes"], &notes))
	require.Len(t, notes, 1)
	assert.ElementsMatch(t, []string{
		"id", "owner_id", "folder_id", "title", "content", "image_path",
		"deadline", "pinned", "deleted", "tags", "created_at", "updated_at",
	}, keys(notes[0]))

	var folders []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(doc["folders"], &folders))
	assert.Equal(t, "null", string(folders[0]["parent_id"]))
}

func keys(m map[string]json.RawMessage) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestFileStorageQuarantinesCorruptContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0600))

	storage, err := NewFileStorage(path)
	require.NoError(t, err)

	_, err = storage.Load()
	var corrupt *CorruptError
	require.ErrorAs(t, err, &corrupt)
	require.NotEmpty(t, corrupt.Backup)

	backup, err := os.ReadFile(corrupt.Backup)
	require.NoError(t, err)
	assert.Equal(t, "{broken", string(backup))
}

func TestDBOverCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.json")
	require.NoError(t, os.WriteFile(path, []byte("not json at all"), 0600))

	storage, err := NewFileStorage(path)
	require.NoError(t, err)
	db := newTestDBWith(storage)

	account := register(t, db, "alice", "alice@example.com")
	assert.Equal(t, int64(1), account.ID)
	assert.Equal(t, 1, db.Recoveries())

	data, err := storage.Load()
	require.NoError(t, err)
	assert.Len(t, data.Accounts, 1)
}

func TestSQLiteStorage(t *testing.T) {
	storage, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "notes.db"))
	require.NoError(t, err)
	defer storage.Close()

	_, err = storage.Load()
	assert.ErrorIs(t, err, ErrNoData)

	want := sampleData()
	require.NoError(t, storage.Persist(want))
	require.NoError(t, storage.Persist(want), "second persist replaces the snapshot")

	got, err := storage.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	jsonDB, err := Open(BackendJSON, filepath.Join(dir, "notes.json"))
	require.NoError(t, err)
	assert.NoError(t, jsonDB.Close())

	sqliteDB, err := Open(BackendSQLite, filepath.Join(dir, "notes.db"))
	require.NoError(t, err)
	sqliteDB.hasher.Iterations = 1000
	_, err = sqliteDB.Register("alice", "alice@example.com", "secret1")
	require.NoError(t, err)
	assert.NoError(t, sqliteDB.Close())

	reopened, err := Open(BackendSQLite, filepath.Join(dir, "notes.db"))
	require.NoError(t, err)
	defer reopened.Close()
	assert.NotNil(t, reopened.GetAccount(1))

	_, err = Open("postgres", filepath.Join(dir, "x"))
	assert.Error(t, err)
}
