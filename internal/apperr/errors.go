// Package apperr holds the sentinel errors shared across packages.
package apperr

import "errors"

var (
	// ErrCorruptFile reports a backing file that is not a JSON array of strings.
	ErrCorruptFile = errors.New("corrupt notes file")
	// ErrInvalidIndex reports a note position that is not an integer or lies
	// outside the current list.
	ErrInvalidIndex = errors.New("invalid index")
	// ErrInvalidText reports note text that is not valid UTF-8 and so cannot
	// be stored in the JSON file unchanged.
	ErrInvalidText = errors.New("note text is not valid UTF-8")
)
