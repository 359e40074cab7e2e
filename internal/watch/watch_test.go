package watch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snipref/internal/watch"
)

const (
	testDebounce = 50 * time.Millisecond
	testTimeout  = 5 * time.Second
)

func TestRun_NotifiesOnWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("v1\n"), 0o600))

	changed := make(chan string, 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)

	go func() {
		done <- watch.Run(ctx, []string{path}, testDebounce, func(p string) {
			select {
			case changed <- p:
			default:
			}
		})
	}()

	// Give the watcher a moment to arm before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("v2\n"), 0o600))

	select {
	case got := <-changed:
		assert.Equal(t, filepath.Clean(path), got)
	case <-time.After(testTimeout):
		t.Fatal("expected a change notification")
	}

	cancel()
	require.NoError(t, <-done)
}

func TestRun_IgnoresUnwatchedSiblings(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	sibling := filepath.Join(dir, "other.md")
	require.NoError(t, os.WriteFile(path, []byte("v1\n"), 0o600))

	changed := make(chan string, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)

	go func() {
		done <- watch.Run(ctx, []string{path}, testDebounce, func(p string) {
			changed <- p
		})
	}()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(sibling, []byte("noise\n"), 0o600))

	select {
	case got := <-changed:
		t.Fatalf("unexpected notification for %s", got)
	case <-time.After(300 * time.Millisecond):
	}

	require.NoError(t, <-done)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("v1\n"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := watch.Run(ctx, []string{path}, testDebounce, func(string) {})
	require.NoError(t, err)
}
