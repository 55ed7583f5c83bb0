package watcher_test

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/abdidvp/forcekraft/internal/adapters/outbound/watcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_BatchesMatchingChanges(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "metadata"), 0755))

	w, err := watcher.New(watcher.Config{
		Root:          dir,
		DebounceDelay: 50 * time.Millisecond,
		FileFilter:    func(p string) bool { return strings.HasSuffix(p, ".json") },
		Logger:        log.New(io.Discard, "", 0),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	batches := make(chan []string, 4)
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, func(paths []string) { batches <- paths }) }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "metadata", "fields.json"), []byte("[]"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "metadata", "notes.txt"), []byte("x"), 0644))

	select {
	case paths := <-batches:
		require.NotEmpty(t, paths)
		for _, p := range paths {
			assert.True(t, strings.HasSuffix(p, ".json"), p)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change batch received")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_MissingRoot(t *testing.T) {
	_, err := watcher.New(watcher.Config{Root: filepath.Join(t.TempDir(), "missing")})
	assert.Error(t, err)
}
