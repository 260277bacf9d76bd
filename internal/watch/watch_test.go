package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func startWatcher(t *testing.T, root string, extra []string, debounce time.Duration, fn RegenerateFunc) *Watcher {
	t.Helper()
	w, err := New(root, extra, debounce, fn, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	t.Cleanup(w.Stop)
	return w
}

func TestWatcher_RegeneratesOnManifestChange(t *testing.T) {
	root := t.TempDir()
	var runs atomic.Int32
	w := startWatcher(t, root, nil, 50*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	writeFile(t, root, "package.json", `{"dependencies": {}}`)

	require.Eventually(t, func() bool { return runs.Load() == 1 }, 3*time.Second, 20*time.Millisecond)

	stats := w.Stats()
	assert.GreaterOrEqual(t, stats.EventsSeen, 1)
	assert.Equal(t, 1, stats.RunsTriggered)
	assert.False(t, stats.LastRun.IsZero())
}

func TestWatcher_CoalescesBursts(t *testing.T) {
	root := t.TempDir()
	var runs atomic.Int32
	startWatcher(t, root, nil, 150*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	writeFile(t, root, "package.json", `{}`)
	writeFile(t, root, ".env", "A=1")
	writeFile(t, root, "README.md", "# App")

	require.Eventually(t, func() bool { return runs.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)
	time.Sleep(500 * time.Millisecond)
	assert.EqualValues(t, 1, runs.Load())
}

func TestWatcher_IgnoresUnrelatedFiles(t *testing.T) {
	root := t.TempDir()
	var runs atomic.Int32
	w := startWatcher(t, root, nil, 50*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	writeFile(t, root, "notes.txt", "scratch")

	time.Sleep(400 * time.Millisecond)
	assert.EqualValues(t, 0, runs.Load())
	assert.Equal(t, 0, w.Stats().EventsSeen)
}

func TestWatcher_CallbackFailureKeepsWatching(t *testing.T) {
	root := t.TempDir()
	var runs atomic.Int32
	startWatcher(t, root, nil, 50*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return errors.New("disk full")
	})

	writeFile(t, root, "package.json", `{}`)
	require.Eventually(t, func() bool { return runs.Load() == 1 }, 3*time.Second, 20*time.Millisecond)

	writeFile(t, root, "README.md", "# App")
	require.Eventually(t, func() bool { return runs.Load() == 2 }, 3*time.Second, 20*time.Millisecond)
}

func TestWatcher_WatchesSourceDirs(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "components"), 0755))

	var runs atomic.Int32
	startWatcher(t, root, nil, 50*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	writeFile(t, root, "components/Button.tsx", "export function Button() {}")

	require.Eventually(t, func() bool { return runs.Load() == 1 }, 3*time.Second, 20*time.Millisecond)
}

func TestWatcher_ExtraPaths(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "packages"), 0755))

	var runs atomic.Int32
	startWatcher(t, root, []string{"packages"}, 50*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	writeFile(t, root, "packages/shared.ts", "export const x = 1")

	require.Eventually(t, func() bool { return runs.Load() == 1 }, 3*time.Second, 20*time.Millisecond)
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	w, err := New(t.TempDir(), nil, 50*time.Millisecond, func(ctx context.Context) error { return nil }, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	w.Stop()
	w.Stop()
}

func TestIsRelevant(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/p/package.json", true},
		{"/p/composer.json", true},
		{"/p/README.md", true},
		{"/p/.env", true},
		{"/p/.env.local", true},
		{"/p/app/page.tsx", true},
		{"/p/src/main.vue", true},
		{"/p/routes/web.php", true},
		{"/p/lib/types.ts", true},
		{"/p/notes.txt", false},
		{"/p/styles.css", false},
		{"/p/.gitignore", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isRelevant(tt.path), tt.path)
	}
}
