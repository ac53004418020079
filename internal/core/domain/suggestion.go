package domain

import "strings"

// SuggestionKind classifies what an edit suggestion addresses.
type SuggestionKind string

// Available suggestion kinds.
const (
	// SuggestionConsistency flags contradictions with earlier chapters.
	SuggestionConsistency SuggestionKind = "consistency"

	// SuggestionPacing flags passages that drag or rush.
	SuggestionPacing SuggestionKind = "pacing"

	// SuggestionProse flags word-level prose problems.
	SuggestionProse SuggestionKind = "prose"

	// SuggestionOther covers anything the editorial service
	// could not classify.
	SuggestionOther SuggestionKind = "other"
)

// IsValid returns true if the kind is recognised.
func (k SuggestionKind) IsValid() bool {
	switch k {
	case SuggestionConsistency, SuggestionPacing, SuggestionProse, SuggestionOther:
		return true
	default:
		return false
	}
}

// SuggestionStatus tracks whether a suggestion has been applied.
type SuggestionStatus string

// Suggestion statuses. The transition is monotonic: unapplied to
// applied, never back. An undo that restores older document text does
// not rewind the flag; see Suggestion.AppliedIn for the derived view.
const (
	StatusUnapplied SuggestionStatus = "unapplied"
	StatusApplied   SuggestionStatus = "applied"
)

// Suggestion is one anchored edit proposed by the editorial service.
//
// OriginalText is a content anchor: at creation time it is a verbatim
// substring of the referenced document's text. It is not a position
// offset, since offsets are invalidated by any prior edit; the anchor
// is revalidated by substring search at apply time instead.
type Suggestion struct {
	// ID is the unique identifier for the suggestion.
	ID string

	// DocumentID references the document the anchor lives in.
	DocumentID string

	// Kind classifies the suggestion.
	Kind SuggestionKind

	// OriginalText is the anchored text to replace.
	OriginalText string

	// SuggestedText is the replacement text.
	SuggestedText string

	// Rationale is the editorial service's explanation.
	Rationale string

	// Status records whether the suggestion was applied.
	Status SuggestionStatus
}

// AppliedIn reports whether the suggestion's replacement is present
// in text. This is the derived view of applied state: after an undo
// the persisted Status flag can diverge from the document, so readers
// that care about the manuscript as it stands should use this rather
// than Status. The flag itself only gates re-processing.
func (s Suggestion) AppliedIn(text string) bool {
	return s.SuggestedText != "" && strings.Contains(text, s.SuggestedText)
}
