package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) record(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) snapshot() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

func startWatcher(t *testing.T, path string, opts ...Option) *recorder {
	t.Helper()
	rec := &recorder{}
	w, err := New(path, rec.record, append([]Option{WithDebounce(20 * time.Millisecond)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	return rec
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "write", OpWrite.String())
	assert.Equal(t, "create", OpCreate.String())
	assert.Equal(t, "remove", OpRemove.String())
	assert.Equal(t, "rename", OpRename.String())
	assert.Equal(t, "unknown", Op(42).String())
}

func TestFromFS(t *testing.T) {
	tests := []struct {
		in   fsnotify.Op
		want Op
		ok   bool
	}{
		{fsnotify.Write, OpWrite, true},
		{fsnotify.Create, OpCreate, true},
		{fsnotify.Create | fsnotify.Write, OpCreate, true},
		{fsnotify.Remove, OpRemove, true},
		{fsnotify.Rename, OpRename, true},
		{fsnotify.Chmod, 0, false},
	}
	for _, tt := range tests {
		got, ok := fromFS(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in.String())
		if ok {
			assert.Equal(t, tt.want, got, tt.in.String())
		}
	}
}

func TestCoalesce(t *testing.T) {
	tests := []struct {
		name string
		ops  []Op
		want Op
	}{
		{"write write", []Op{OpWrite, OpWrite}, OpWrite},
		{"create write", []Op{OpCreate, OpWrite}, OpCreate},
		{"write remove", []Op{OpWrite, OpRemove}, OpRemove},
		{"remove create", []Op{OpRemove, OpCreate}, OpCreate},
		{"rename write", []Op{OpRename, OpWrite}, OpRename},
	}
	for _, tt := range tests {
		got := tt.ops[0]
		for _, op := range tt.ops[1:] {
			got = coalesce(got, op)
		}
		assert.Equal(t, tt.want, got, tt.name)
	}
}

func TestNewMissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope", "config.toml"), func(Event) {})
	assert.Error(t, err)
}

func TestNewDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	w, err := New(path, func(Event) {}, WithDebounce(0))
	require.NoError(t, err)
	defer w.Close()

	assert.Equal(t, DefaultDebounce, w.debounce)
	assert.True(t, filepath.IsAbs(w.Path()))
}

func TestCloseTwice(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "config.toml"), func(Event) {})
	require.NoError(t, err)
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}

func TestDetectsModification(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[board]\n"), 0o644))

	rec := startWatcher(t, path)
	require.NoError(t, os.WriteFile(path, []byte("[board]\nmax_fret = 5\n"), 0o644))

	require.Eventually(t, func() bool { return len(rec.snapshot()) > 0 }, 2*time.Second, 10*time.Millisecond)
	ev := rec.snapshot()[0]
	abs, _ := filepath.Abs(path)
	assert.Equal(t, abs, ev.Path)
	assert.Contains(t, []Op{OpWrite, OpCreate}, ev.Op)
}

func TestDebouncesBursts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	rec := startWatcher(t, path, WithDebounce(150*time.Millisecond))
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte{byte('a' + i)}, 0o644))
		time.Sleep(5 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return len(rec.snapshot()) > 0 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(300 * time.Millisecond)
	assert.Len(t, rec.snapshot(), 1)
}

func TestIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	rec := startWatcher(t, path)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x"), 0o644))

	time.Sleep(150 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
}

func TestHandlerPanicRecovered(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	calls := make(chan struct{}, 4)
	w, err := New(path, func(Event) {
		calls <- struct{}{}
		panic("boom")
	}, WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))
	select {
	case <-calls:
	case <-time.After(2 * time.Second):
		t.Fatal("handler not called")
	}

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("b"), 0o644))
	select {
	case <-calls:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher stopped after a handler panic")
	}
}
