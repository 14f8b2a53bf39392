package ui

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWatcherReportsStoreWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "askar.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))

	w, err := NewWatcher(path, zap.NewNop())
	require.NoError(t, err)
	w.debounce = 10 * time.Millisecond
	require.NoError(t, w.Start(context.Background()))
	defer w.Close()

	// Replace the file the way the file store does.
	tmp := filepath.Join(dir, ".askar.json.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte(`{"counters":{}}`), 0o600))
	require.NoError(t, os.Rename(tmp, path))

	select {
	case <-w.Changes():
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "askar.json")

	w, err := NewWatcher(path, nil)
	require.NoError(t, err)
	w.debounce = 10 * time.Millisecond
	require.NoError(t, w.Start(context.Background()))
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "askar.log"), []byte("line\n"), 0o600))

	select {
	case <-w.Changes():
		t.Fatal("unrelated file reported")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherWaitEndsOnClose(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "askar.json"), nil)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	done := make(chan any, 1)
	go func() { done <- w.wait()() }()
	require.NoError(t, w.Close())

	select {
	case msg := <-done:
		assert.Nil(t, msg)
	case <-time.After(2 * time.Second):
		t.Fatal("wait did not return after Close")
	}
}
