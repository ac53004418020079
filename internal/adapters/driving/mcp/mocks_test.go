package mcp

import (
	"context"

	"github.com/redraft-labs/redraft-cli/internal/core/domain"
	"github.com/redraft-labs/redraft-cli/internal/core/ports/driving"
)

// mockProjectSession is a mock implementation of driving.ProjectSession.
type mockProjectSession struct {
	manuscript domain.Manuscript
	canUndo    bool
	canRedo    bool
	cursor     int
	length     int
	err        error
}

func (m *mockProjectSession) Manuscript() domain.Manuscript {
	return m.manuscript
}

func (m *mockProjectSession) Undo(_ context.Context) (domain.Manuscript, error) {
	return m.manuscript, m.err
}

func (m *mockProjectSession) Redo(_ context.Context) (domain.Manuscript, error) {
	return m.manuscript, m.err
}

func (m *mockProjectSession) CanUndo() bool { return m.canUndo }

func (m *mockProjectSession) CanRedo() bool { return m.canRedo }

func (m *mockProjectSession) HistoryPosition() (int, int) {
	return m.cursor, m.length
}

func (m *mockProjectSession) Save(_ context.Context) error { return m.err }

// mockReviewer is a mock implementation of driving.Reviewer.
type mockReviewer struct {
	suggestions []domain.Suggestion
	summary     driving.ApplySummary
	status      driving.ReviewStatus
	streamErr   error
	applyErr    error
}

func (m *mockReviewer) Stream(_ context.Context) error {
	return m.streamErr
}

func (m *mockReviewer) Suggestions() []domain.Suggestion {
	return m.suggestions
}

func (m *mockReviewer) ApplyOne(_ context.Context, _ string) error {
	return m.applyErr
}

func (m *mockReviewer) ApplyAllRemaining(_ context.Context) (driving.ApplySummary, error) {
	return m.summary, m.applyErr
}

func (m *mockReviewer) Status() driving.ReviewStatus {
	return m.status
}

// mockSweepPipeline is a mock implementation of driving.SweepPipeline.
type mockSweepPipeline struct {
	status driving.SweepStatus
	err    error
}

func (m *mockSweepPipeline) Run(_ context.Context, _ domain.ScanKind) error {
	return m.err
}

func (m *mockSweepPipeline) Status() driving.SweepStatus {
	return m.status
}

func (m *mockSweepPipeline) Cancel() {}

// mockScanRunner is a mock implementation of driving.ScanRunner.
type mockScanRunner struct {
	record domain.AnalysisRecord
	err    error
}

func (m *mockScanRunner) Scan(_ context.Context, _ domain.ScanKind) (*domain.AnalysisRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	rec := m.record.Clone()
	return &rec, nil
}

func (m *mockScanRunner) Record() domain.AnalysisRecord {
	return m.record.Clone()
}
