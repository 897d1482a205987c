package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func startWatcher(t *testing.T, path string, onChange func(string)) (*FileWatcher, context.CancelFunc, <-chan error) {
	t.Helper()
	fw, err := NewFileWatcher(path, 40*time.Millisecond, onChange, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- fw.Run(ctx) }()
	return fw, cancel, done
}

func stop(t *testing.T, cancel context.CancelFunc, done <-chan error) {
	t.Helper()
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestFileWatcher_DebouncesBurstIntoOneCallback(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "phq9.yaml")
	require.NoError(t, os.WriteFile(path, []byte("title: a\n"), 0644))

	calls := make(chan string, 10)
	fw, cancel, done := startWatcher(t, path, func(p string) { calls <- p })

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("title: b\n"), 0644))
	}

	select {
	case got := <-calls:
		assert.Equal(t, fw.Path(), got)
	case <-time.After(2 * time.Second):
		t.Fatal("no change callback")
	}

	select {
	case <-calls:
		t.Fatal("burst produced more than one callback")
	case <-time.After(150 * time.Millisecond):
	}

	stop(t, cancel, done)
	stats := fw.Stats()
	assert.Equal(t, 1, stats.Triggers)
	assert.GreaterOrEqual(t, stats.Events, 1)
}

func TestFileWatcher_IgnoresSiblings(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "target.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

	var calls atomic.Int32
	fw, cancel, done := startWatcher(t, path, func(string) { calls.Add(1) })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0644))
	time.Sleep(200 * time.Millisecond)

	stop(t, cancel, done)
	assert.Zero(t, calls.Load())
	assert.Zero(t, fw.Stats().Events)
}

func TestNewFileWatcher_MissingDirectory(t *testing.T) {
	_, err := NewFileWatcher(filepath.Join(t.TempDir(), "nope", "t.yaml"), 0, func(string) {}, nil)
	assert.Error(t, err)
}
