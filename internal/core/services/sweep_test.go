package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redraft-labs/redraft-cli/internal/core/domain"
)

// fastSweepConfig keeps tests quick; pacing behaviour itself is
// exercised through the limiter type, not wall-clock waits.
var fastSweepConfig = SweepConfig{
	PacingInterval: time.Millisecond,
	CallTimeout:    time.Second,
}

func setupSweep(t *testing.T, editor *mockEditor, issues []string) (*SweepService, *ProjectService) {
	t.Helper()
	project := NewProjectService(nil, testManuscript())
	scans := NewScanService(project, editor, nil, domain.AnalysisRecord{
		Health: &domain.HealthReport{GlobalIssues: issues},
	})
	return NewSweepService(project, scans, editor, fastSweepConfig), project
}

// TestSweep_RewritesEveryChapterSequentially tests the full pass:
// every chapter rewritten once, in manuscript order
func TestSweep_RewritesEveryChapterSequentially(t *testing.T) {
	editor := &mockEditor{}
	sweep, project := setupSweep(t, editor, []string{"middle act drags"})

	err := sweep.Run(context.Background(), domain.ScanHealth)
	require.NoError(t, err)

	require.Len(t, editor.rewriteCalls, 3)
	assert.Equal(t, "The sky was blue. The sky was blue again.", editor.rewriteCalls[0])
	assert.Equal(t, "It rained for a week.", editor.rewriteCalls[1])
	assert.Equal(t, "Then the sun returned.", editor.rewriteCalls[2])

	ms := project.Manuscript()
	for _, doc := range ms.Documents {
		assert.Contains(t, doc.Text, "rewritten: ")
		assert.Equal(t, domain.CountWords(doc.Text), doc.WordCount)
	}

	status := sweep.Status()
	assert.False(t, status.Running)
	assert.Equal(t, 3, status.Completed)
	assert.Equal(t, 0, status.Failed)
	assert.InDelta(t, 100.0, status.PercentComplete, 0.01)
}

// TestSweep_InstructionsCombineIssues tests the shared instruction block
func TestSweep_InstructionsCombineIssues(t *testing.T) {
	editor := &mockEditor{}
	sweep, _ := setupSweep(t, editor, []string{"flat antagonist", "rushed ending"})

	require.NoError(t, sweep.Run(context.Background(), domain.ScanHealth))

	require.NotEmpty(t, editor.instructions)
	assert.Contains(t, editor.instructions[0], "flat antagonist")
	assert.Contains(t, editor.instructions[0], "rushed ending")
	assert.Contains(t, editor.instructions[0], "Preserve the author's voice")
	// Every chapter gets the identical block.
	assert.Equal(t, editor.instructions[0], editor.instructions[2])
}

// TestSweep_Resilience tests that one failed rewrite does not abort
// the sweep: later chapters are still attempted, the failed chapter
// keeps its text
func TestSweep_Resilience(t *testing.T) {
	editor := &mockEditor{
		rewriteFn: func(text string) (string, error) {
			if text == "It rained for a week." {
				return "", errors.New("provider error")
			}
			return "rewritten: " + text, nil
		},
	}
	sweep, project := setupSweep(t, editor, []string{"issue"})

	err := sweep.Run(context.Background(), domain.ScanHealth)
	require.NoError(t, err)

	ms := project.Manuscript()
	assert.Contains(t, ms.Document("c1").Text, "rewritten: ")
	assert.Equal(t, "It rained for a week.", ms.Document("c2").Text)
	assert.Contains(t, ms.Document("c3").Text, "rewritten: ")

	status := sweep.Status()
	assert.Equal(t, 2, status.Completed)
	assert.Equal(t, 1, status.Failed)
	assert.InDelta(t, 100.0, status.PercentComplete, 0.01)
}

// TestSweep_EmptyRewriteIsFailure tests that blank output counts as a
// per-document failure rather than blanking the chapter
func TestSweep_EmptyRewriteIsFailure(t *testing.T) {
	editor := &mockEditor{
		rewriteFn: func(string) (string, error) { return "  \n ", nil },
	}
	sweep, project := setupSweep(t, editor, []string{"issue"})

	require.NoError(t, sweep.Run(context.Background(), domain.ScanHealth))

	ms := project.Manuscript()
	assert.Equal(t, "The sky was blue. The sky was blue again.", ms.Document("c1").Text)
	assert.Equal(t, 3, sweep.Status().Failed)
}

// TestSweep_NoIssues tests the empty-input no-op
func TestSweep_NoIssues(t *testing.T) {
	sweep, _ := setupSweep(t, &mockEditor{}, nil)
	err := sweep.Run(context.Background(), domain.ScanHealth)
	assert.ErrorIs(t, err, domain.ErrNothingToDo)
}

// TestSweep_WithoutEditor tests graceful degradation
func TestSweep_WithoutEditor(t *testing.T) {
	project := NewProjectService(nil, testManuscript())
	scans := NewScanService(project, nil, nil, domain.AnalysisRecord{})
	sweep := NewSweepService(project, scans, nil, fastSweepConfig)

	err := sweep.Run(context.Background(), domain.ScanHealth)
	assert.ErrorIs(t, err, domain.ErrEditorUnavailable)
}

// TestSweep_InvalidKind tests kind validation
func TestSweep_InvalidKind(t *testing.T) {
	sweep, _ := setupSweep(t, &mockEditor{}, []string{"issue"})
	err := sweep.Run(context.Background(), domain.ScanKind("vibes"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestSweep_CancelKeepsCompletedWork tests that cancellation stops
// before the next chapter and keeps finished rewrites
func TestSweep_CancelKeepsCompletedWork(t *testing.T) {
	sweepCh := make(chan *SweepService, 1)
	editor := &mockEditor{}
	editor.rewriteFn = func(text string) (string, error) {
		if text == "It rained for a week." {
			// Cancel mid-run: after this chapter completes, the
			// pipeline must stop before chapter three.
			s := <-sweepCh
			s.Cancel()
		}
		return "rewritten: " + text, nil
	}
	sweep, project := setupSweep(t, editor, []string{"issue"})
	sweepCh <- sweep

	err := sweep.Run(context.Background(), domain.ScanHealth)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	ms := project.Manuscript()
	assert.Contains(t, ms.Document("c1").Text, "rewritten: ")
	assert.Equal(t, "Then the sun returned.", ms.Document("c3").Text)
	assert.False(t, sweep.Status().Running)
}

// TestSweep_ProgressObservableMidRun tests incremental publication:
// an observer polling between chapters sees earlier rewrites already
// in the manuscript
func TestSweep_ProgressObservableMidRun(t *testing.T) {
	var midRun domain.Manuscript
	var sweepProject *ProjectService
	editor := &mockEditor{}
	editor.rewriteFn = func(text string) (string, error) {
		if text == "Then the sun returned." {
			midRun = sweepProject.Manuscript()
		}
		return "rewritten: " + text, nil
	}
	sweep, project := setupSweep(t, editor, []string{"issue"})
	sweepProject = project

	require.NoError(t, sweep.Run(context.Background(), domain.ScanHealth))

	// While chapter three was being rewritten, chapters one and two
	// were already published.
	assert.Contains(t, midRun.Document("c1").Text, "rewritten: ")
	assert.Contains(t, midRun.Document("c2").Text, "rewritten: ")
	assert.Equal(t, "Then the sun returned.", midRun.Document("c3").Text)
}

// TestSweep_CommitAllowsUndo tests that one undo reverts the whole
// sweep
func TestSweep_CommitAllowsUndo(t *testing.T) {
	sweep, project := setupSweep(t, &mockEditor{}, []string{"issue"})
	require.NoError(t, sweep.Run(context.Background(), domain.ScanHealth))

	ms, err := project.Undo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "The sky was blue. The sky was blue again.", ms.Document("c1").Text)
	assert.Equal(t, "It rained for a week.", ms.Document("c2").Text)
}
