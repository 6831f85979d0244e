// Package storage defines the backing-file abstraction for the note list.
package storage

// Provider is the interface for whole-file persistence of the note list.
type Provider interface {
	// Read returns the raw bytes of the backing file.
	Read() ([]byte, error)
	// Write atomically replaces the backing file with content.
	Write(content []byte) error
}
