package noteservice

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/starford/notatnik/internal/notestore"
)

func testService(t *testing.T) (*Service, *bytes.Buffer) {
	t.Helper()
	store, err := notestore.Open(filepath.Join(t.TempDir(), "test_notes.json"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	var out bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewService(store, &out, logger), &out
}

func TestRemove_EmptyListPrintsInvalidIndex(t *testing.T) {
	svc, out := testService(t)
	res, err := svc.Remove(0)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if res.Status != notestore.InvalidIndex {
		t.Errorf("status = %v", res.Status)
	}
	if got := strings.TrimSpace(out.String()); got != "Nieprawidłowy indeks." {
		t.Errorf("output = %q", got)
	}
}

func TestRemove_PrintsRemovedNote(t *testing.T) {
	svc, out := testService(t)
	_ = svc.Add("Test note 1")
	if _, err := svc.Remove(0); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if got := out.String(); got != "Usunięto notatkę: Test note 1\n" {
		t.Errorf("output = %q", got)
	}
}

func TestRemove_InvalidKeepsNote(t *testing.T) {
	svc, out := testService(t)
	_ = svc.Add("Test note 1")
	_, _ = svc.Remove(5)
	if got := out.String(); got != "Nieprawidłowy indeks.\n" {
		t.Errorf("output = %q", got)
	}
	if notes := svc.Store().Notes(); len(notes) != 1 || notes[0] != "Test note 1" {
		t.Errorf("notes = %q", notes)
	}
}

func TestAdd_PrintsNothing(t *testing.T) {
	svc, out := testService(t)
	if err := svc.Add("quiet"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestDisplay_Empty(t *testing.T) {
	svc, out := testService(t)
	if err := svc.Display(); err != nil {
		t.Fatalf("Display: %v", err)
	}
	if got := out.String(); got != "Brak notatek.\n" {
		t.Errorf("output = %q", got)
	}
}

func TestDisplay_Lines(t *testing.T) {
	svc, out := testService(t)
	_ = svc.Add("Test note 1")
	_ = svc.Add("Test note 2")
	if err := svc.Display(); err != nil {
		t.Fatalf("Display: %v", err)
	}
	if got := out.String(); got != "0: Test note 1\n1: Test note 2\n" {
		t.Errorf("output = %q", got)
	}
}

func TestDisplay_NoFileIO(t *testing.T) {
	svc, out := testService(t)
	_ = svc.Add("a")
	if err := os.Remove(svc.Store().Path()); err != nil {
		t.Fatal(err)
	}
	if err := svc.Display(); err != nil {
		t.Fatalf("Display: %v", err)
	}
	if got := out.String(); got != "0: a\n" {
		t.Errorf("output = %q", got)
	}
	if _, err := os.Stat(svc.Store().Path()); !os.IsNotExist(err) {
		t.Error("Display must not write the backing file")
	}
}

func TestDisplay_EmptyNoteLine(t *testing.T) {
	var buf bytes.Buffer
	if err := Display(&buf, []string{""}); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "0: \n" {
		t.Errorf("output = %q", buf.String())
	}
}
