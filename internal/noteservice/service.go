// Package noteservice presents note-store operations on a console.
package noteservice

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/starford/notatnik/internal/notestore"
)

// Service prints the outcome of store operations to a writer.
type Service struct {
	store  *notestore.Store
	out    io.Writer
	logger *slog.Logger
}

// NewService creates a new console service over store writing to out.
func NewService(store *notestore.Store, out io.Writer, logger *slog.Logger) *Service {
	return &Service{store: store, out: out, logger: logger}
}

// Store returns the underlying note store.
func (s *Service) Store() *notestore.Store {
	return s.store
}

// Add appends a note. Nothing is printed on success.
func (s *Service) Add(text string) error {
	if err := s.store.Add(text); err != nil {
		s.logger.Error("add note failed", slog.String("error", err.Error()))
		return err
	}
	return nil
}

// Remove deletes the note at index and prints either the removal
// confirmation or the invalid-index message.
func (s *Service) Remove(index int) (notestore.RemoveResult, error) {
	res, err := s.store.Remove(index)
	if err != nil {
		s.logger.Error("remove note failed", slog.Int("index", index), slog.String("error", err.Error()))
		return res, err
	}
	switch res.Status {
	case notestore.Removed:
		_, err = fmt.Fprintf(s.out, MsgRemovedFmt+"\n", res.Note)
	default:
		err = s.InvalidIndex()
	}
	return res, err
}

// InvalidIndex prints the invalid-index message. Callers that fail to parse
// an index use it to report the same way Remove does.
func (s *Service) InvalidIndex() error {
	_, err := fmt.Fprintln(s.out, MsgInvalidIndex)
	return err
}

// Display prints every note as "<index>: <text>", or the no-notes message
// when the list is empty. It does not touch the backing file.
func (s *Service) Display() error {
	return Display(s.out, s.store.Notes())
}

// Display writes notes to w in the console list format.
func Display(w io.Writer, notes []string) error {
	if len(notes) == 0 {
		_, err := fmt.Fprintln(w, MsgNoNotes)
		return err
	}
	for i, n := range notes {
		if _, err := fmt.Fprintf(w, lineFmt+"\n", i, n); err != nil {
			return err
		}
	}
	return nil
}
