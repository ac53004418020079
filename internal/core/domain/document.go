package domain

import (
	"strings"
	"time"
)

// Document represents a single chapter of a manuscript.
// It is the unit of text that suggestions anchor to and
// that sweep rewrites replace wholesale.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Title is the human-readable chapter title.
	Title string

	// Text is the full chapter text.
	Text string

	// WordCount is derived from Text (whitespace token count).
	// It is recomputed on every text mutation and must never be
	// trusted across a mutation.
	WordCount int

	// UpdatedAt is when the text was last modified.
	UpdatedAt time.Time
}

// CountWords returns the whitespace-token word count of text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// SetText replaces the document text, recomputing the derived
// word count and stamping the modification time.
func (d *Document) SetText(text string) {
	d.Text = text
	d.WordCount = CountWords(text)
	d.UpdatedAt = time.Now().UTC()
}

// Manuscript is the ordered collection of documents under revision.
// Order is display/iteration order only; the revision algorithms do
// not attach meaning to it beyond determinism.
type Manuscript struct {
	// ID is the unique identifier for the manuscript.
	ID string

	// Title is the human-readable manuscript title.
	Title string

	// Documents are the chapters, in display order. IDs are unique
	// within the manuscript.
	Documents []Document
}

// Clone returns a deep copy of the manuscript. Snapshots handed to
// observers and to the version history are always clones; nothing
// outside the owning service ever aliases the live documents.
func (m Manuscript) Clone() Manuscript {
	out := m
	out.Documents = make([]Document, len(m.Documents))
	copy(out.Documents, m.Documents)
	return out
}

// Document returns the document with the given ID, or nil if the
// manuscript has no such chapter.
func (m *Manuscript) Document(id string) *Document {
	for i := range m.Documents {
		if m.Documents[i].ID == id {
			return &m.Documents[i]
		}
	}
	return nil
}

// Replace swaps the document with the same ID for doc.
// Returns false if no document with that ID exists.
func (m *Manuscript) Replace(doc Document) bool {
	for i := range m.Documents {
		if m.Documents[i].ID == doc.ID {
			m.Documents[i] = doc
			return true
		}
	}
	return false
}

// WordCount returns the total word count across all documents.
func (m Manuscript) WordCount() int {
	total := 0
	for i := range m.Documents {
		total += m.Documents[i].WordCount
	}
	return total
}
