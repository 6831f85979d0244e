// Package testutil provides shared test helpers for setting up note stores.
package testutil

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/starford/notatnik/internal/notestore"
)

// TestStore opens a store over a fresh file in a temporary directory,
// seeded with notes.
func TestStore(t *testing.T, notes ...string) *notestore.Store {
	t.Helper()
	store, err := notestore.Open(filepath.Join(t.TempDir(), "test_notes.json"))
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range notes {
		if err := store.Add(n); err != nil {
			t.Fatal(err)
		}
	}
	return store
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
