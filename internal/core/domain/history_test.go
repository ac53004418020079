package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot(text string) Manuscript {
	return Manuscript{
		ID:        "m1",
		Documents: []Document{{ID: "c1", Text: text}},
	}
}

// TestVersionHistory_Empty tests behaviour before any push
func TestVersionHistory_Empty(t *testing.T) {
	h := NewVersionHistory()

	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
	assert.Equal(t, 0, h.Len())
	assert.Equal(t, -1, h.Cursor())

	_, ok := h.Undo()
	assert.False(t, ok)
	_, ok = h.Redo()
	assert.False(t, ok)
}

// TestVersionHistory_UndoRedo tests linear cursor movement
func TestVersionHistory_UndoRedo(t *testing.T) {
	h := NewVersionHistory()
	h.Push(snapshot("v1"))
	h.Push(snapshot("v2"))
	h.Push(snapshot("v3"))

	ms, ok := h.Undo()
	require.True(t, ok)
	assert.Equal(t, "v2", ms.Documents[0].Text)

	ms, ok = h.Undo()
	require.True(t, ok)
	assert.Equal(t, "v1", ms.Documents[0].Text)

	// At the oldest entry: undo is a no-op.
	_, ok = h.Undo()
	assert.False(t, ok)

	ms, ok = h.Redo()
	require.True(t, ok)
	assert.Equal(t, "v2", ms.Documents[0].Text)

	ms, ok = h.Redo()
	require.True(t, ok)
	assert.Equal(t, "v3", ms.Documents[0].Text)

	_, ok = h.Redo()
	assert.False(t, ok)
}

// TestVersionHistory_PushTruncatesRedoTail tests that a push after
// undo discards the abandoned future
func TestVersionHistory_PushTruncatesRedoTail(t *testing.T) {
	h := NewVersionHistory()
	h.Push(snapshot("v1"))
	h.Push(snapshot("v2"))
	h.Push(snapshot("v3"))

	_, ok := h.Undo()
	require.True(t, ok)
	_, ok = h.Undo()
	require.True(t, ok)

	h.Push(snapshot("v2b"))

	assert.False(t, h.CanRedo())
	assert.Equal(t, 2, h.Len())

	ms, ok := h.Undo()
	require.True(t, ok)
	assert.Equal(t, "v1", ms.Documents[0].Text)
}

// TestVersionHistory_Bound tests eviction at the retention limit:
// after 15 pushes exactly 10 entries remain, and exhaustive undo
// lands on the oldest retained state, not an evicted one
func TestVersionHistory_Bound(t *testing.T) {
	h := NewVersionHistory()
	for i := 1; i <= 15; i++ {
		h.Push(snapshot(fmt.Sprintf("v%d", i)))
	}

	assert.Equal(t, HistoryLimit, h.Len())

	var last Manuscript
	steps := 0
	for {
		ms, ok := h.Undo()
		if !ok {
			break
		}
		last = ms
		steps++
	}

	assert.Equal(t, HistoryLimit-1, steps)
	assert.Equal(t, "v6", last.Documents[0].Text)
}

// TestVersionHistory_SnapshotsAreCopies tests that history entries do
// not alias the pushed manuscript or each other
func TestVersionHistory_SnapshotsAreCopies(t *testing.T) {
	h := NewVersionHistory()
	live := snapshot("v1")
	h.Push(live)

	live.Documents[0].Text = "mutated after push"
	h.Push(live)

	ms, ok := h.Undo()
	require.True(t, ok)
	assert.Equal(t, "v1", ms.Documents[0].Text)

	// Mutating the returned copy must not corrupt the stored entry.
	ms.Documents[0].Text = "mutated after undo"
	ms2, ok := h.Redo()
	require.True(t, ok)
	_, ok = h.Undo()
	require.True(t, ok)
	assert.Equal(t, "mutated after push", ms2.Documents[0].Text)
}
