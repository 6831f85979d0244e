// Package models defines the domain types exposed by the outer surfaces.
package models

// Entry is a note together with its zero-based position in the list.
type Entry struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// EntriesOf numbers notes in list order.
func EntriesOf(notes []string) []Entry {
	out := make([]Entry, len(notes))
	for i, n := range notes {
		out[i] = Entry{Index: i, Text: n}
	}
	return out
}
