package domain

import "time"

// HistoryLimit bounds the number of retained snapshots. The oldest
// entry is evicted when a push would exceed it, so undo depth is at
// most HistoryLimit-1 steps.
const HistoryLimit = 10

// HistoryEntry is one immutable snapshot of the whole manuscript.
// Snapshots are full deep copies rather than diffs: memory is traded
// for the absence of any patch-ordering dependency between entries.
type HistoryEntry struct {
	Manuscript Manuscript
	TakenAt    time.Time
}

// VersionHistory is a bounded linear undo/redo stack. The cursor
// points at the entry matching the live manuscript; pushing after an
// undo truncates the abandoned redo tail. This is a line, not a tree.
type VersionHistory struct {
	entries []HistoryEntry
	cursor  int
}

// NewVersionHistory returns an empty history.
func NewVersionHistory() *VersionHistory {
	return &VersionHistory{cursor: -1}
}

// Push records a snapshot of m as the new head. Any entries beyond
// the cursor (a redo tail left by prior undos) are discarded first;
// the oldest entry is evicted if the bound would be exceeded.
func (h *VersionHistory) Push(m Manuscript) {
	h.entries = append(h.entries[:h.cursor+1], HistoryEntry{
		Manuscript: m.Clone(),
		TakenAt:    time.Now().UTC(),
	})
	if len(h.entries) > HistoryLimit {
		h.entries = h.entries[len(h.entries)-HistoryLimit:]
	}
	h.cursor = len(h.entries) - 1
}

// CanUndo reports whether an older snapshot is available.
func (h *VersionHistory) CanUndo() bool {
	return h.cursor > 0
}

// CanRedo reports whether a newer snapshot is available.
func (h *VersionHistory) CanRedo() bool {
	return h.cursor >= 0 && h.cursor < len(h.entries)-1
}

// Undo moves the cursor back one entry and returns a copy of that
// snapshot. Returns false without moving when already at the oldest
// retained entry.
func (h *VersionHistory) Undo() (Manuscript, bool) {
	if !h.CanUndo() {
		return Manuscript{}, false
	}
	h.cursor--
	return h.entries[h.cursor].Manuscript.Clone(), true
}

// Redo moves the cursor forward one entry and returns a copy of that
// snapshot. Returns false without moving when already at the newest.
func (h *VersionHistory) Redo() (Manuscript, bool) {
	if !h.CanRedo() {
		return Manuscript{}, false
	}
	h.cursor++
	return h.entries[h.cursor].Manuscript.Clone(), true
}

// Len returns the number of retained snapshots.
func (h *VersionHistory) Len() int {
	return len(h.entries)
}

// Cursor returns the index of the entry matching the live state,
// or -1 when the history is empty.
func (h *VersionHistory) Cursor() int {
	return h.cursor
}
