package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewErrors(t *testing.T) {
	t.Parallel()

	_, err := New(nil, Options{})
	assert.ErrorContains(t, err, "no files to watch")

	_, err = New([]string{filepath.Join(t.TempDir(), "missing", "releases.yaml")}, Options{})
	assert.ErrorContains(t, err, "watching")
}

func TestRunCallsOnChange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	watched := filepath.Join(dir, "releases.yaml")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(watched, []byte("- name: 1.0.0\n"), 0o644))

	w, err := New([]string{watched}, Options{Debounce: 20 * time.Millisecond})
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(context.Context) error {
			calls <- struct{}{}
			return errors.New("callback errors are logged")
		})
	}()

	require.NoError(t, os.WriteFile(other, []byte("ignored"), 0o644))
	select {
	case <-calls:
		t.Fatal("callback ran for an unwatched file")
	case <-time.After(150 * time.Millisecond):
	}

	for range 3 {
		require.NoError(t, os.WriteFile(watched, []byte("- name: 1.1.0\n"), 0o644))
	}
	select {
	case <-calls:
	case <-time.After(2 * time.Second):
		t.Fatal("callback did not run after change")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "releases.yaml")
	w, err := New([]string{path}, Options{})
	require.NoError(t, err)

	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
