// Package notestore keeps an ordered list of text notes in sync with a JSON
// file on disk.
//
// Every mutation rewrites the whole backing file before returning, so after
// any completed call the file holds exactly the serialized in-memory list.
// A Store has a single owner and is not safe for concurrent use.
package notestore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"unicode/utf8"

	"github.com/starford/notatnik/internal/apperr"
	"github.com/starford/notatnik/internal/models"
	"github.com/starford/notatnik/internal/storage"
)

// DefaultPath is the backing file used when none is configured.
const DefaultPath = "notes.json"

// Status is the outcome of a Remove call.
type Status int

const (
	// Removed means the note at the index was deleted and the file rewritten.
	Removed Status = iota
	// InvalidIndex means the index was outside the list; nothing changed.
	InvalidIndex
)

func (s Status) String() string {
	switch s {
	case Removed:
		return "removed"
	case InvalidIndex:
		return "invalid_index"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// RemoveResult describes what Remove did.
type RemoveResult struct {
	Status Status
	// Note is the removed text; empty unless Status is Removed.
	Note string
}

// Option configures a Store.
type Option func(*Store)

// WithProvider replaces the file-system backend.
func WithProvider(p storage.Provider) Option {
	return func(s *Store) {
		s.provider = p
	}
}

// WithLogger sets the logger used for mutation traces.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// Store is an ordered, mutable sequence of notes backed by a JSON file.
type Store struct {
	path     string
	notes    []string
	provider storage.Provider
	logger   *slog.Logger
}

// Open loads the note list from path. A missing file yields an empty list
// and no file is created until the first mutation. Content that is not a
// JSON array of strings fails with an error wrapping apperr.ErrCorruptFile.
func Open(path string, opts ...Option) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}
	s := &Store{path: path}
	for _, opt := range opts {
		opt(s)
	}
	if s.provider == nil {
		s.provider = storage.NewFile(path)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	data, err := s.provider.Read()
	switch {
	case errors.Is(err, os.ErrNotExist):
		s.notes = []string{}
		s.logger.Debug("notestore: no backing file yet", slog.String("path", path))
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("notestore: load %s: %w", path, err)
	}

	notes, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("notestore: load %s: %w", path, err)
	}
	s.notes = notes
	s.logger.Debug("notestore: loaded", slog.String("path", path), slog.Int("count", len(notes)))
	return s, nil
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

// Len returns the number of notes.
func (s *Store) Len() int {
	return len(s.notes)
}

// Notes returns a copy of the notes in order.
func (s *Store) Notes() []string {
	out := make([]string, len(s.notes))
	copy(out, s.notes)
	return out
}

// Entries returns the notes paired with their indices.
func (s *Store) Entries() []models.Entry {
	return models.EntriesOf(s.notes)
}

// Add appends text to the end of the list and rewrites the backing file.
// The text is stored as given, including the empty string. Text that is not
// valid UTF-8 is rejected with apperr.ErrInvalidText, since JSON would
// rewrite the bad bytes. If the write fails the list is left as it was.
func (s *Store) Add(text string) error {
	if !utf8.ValidString(text) {
		return fmt.Errorf("notestore: add: %w", apperr.ErrInvalidText)
	}
	s.notes = append(s.notes, text)
	if err := s.persist(); err != nil {
		s.notes = s.notes[:len(s.notes)-1]
		return err
	}
	s.logger.Debug("notestore: added", slog.Int("index", len(s.notes)-1))
	return nil
}

// Remove deletes the note at index and rewrites the backing file. An index
// outside [0, Len()) is reported as InvalidIndex with a nil error and
// leaves both the list and the file untouched.
func (s *Store) Remove(index int) (RemoveResult, error) {
	if index < 0 || index >= len(s.notes) {
		s.logger.Debug("notestore: invalid index", slog.Int("index", index), slog.Int("count", len(s.notes)))
		return RemoveResult{Status: InvalidIndex}, nil
	}

	prev := s.notes
	removed := prev[index]
	next := make([]string, 0, len(prev)-1)
	next = append(next, prev[:index]...)
	next = append(next, prev[index+1:]...)

	s.notes = next
	if err := s.persist(); err != nil {
		s.notes = prev
		return RemoveResult{}, err
	}
	s.logger.Debug("notestore: removed", slog.Int("index", index))
	return RemoveResult{Status: Removed, Note: removed}, nil
}

func (s *Store) persist() error {
	data, err := Encode(s.notes)
	if err != nil {
		return fmt.Errorf("notestore: encode: %w", err)
	}
	if err := s.provider.Write(data); err != nil {
		return fmt.Errorf("notestore: save %s: %w", s.path, err)
	}
	return nil
}

// Encode serializes notes as a JSON array. An empty or nil list encodes as
// [] and text is written without HTML escaping.
func Encode(notes []string) ([]byte, error) {
	if notes == nil {
		notes = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(notes); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Decode parses backing-file content. Blank content and a JSON null are
// treated as an empty list.
func Decode(data []byte) ([]string, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []string{}, nil
	}
	var notes []string
	if err := json.Unmarshal(data, &notes); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrCorruptFile, err)
	}
	if notes == nil {
		notes = []string{}
	}
	return notes, nil
}
