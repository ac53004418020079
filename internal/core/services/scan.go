package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/redraft-labs/redraft-cli/internal/core/domain"
	"github.com/redraft-labs/redraft-cli/internal/core/ports/driven"
	"github.com/redraft-labs/redraft-cli/internal/core/ports/driving"
	"github.com/redraft-labs/redraft-cli/internal/logger"
)

// Ensure ScanService implements the interface.
var _ driving.ScanRunner = (*ScanService)(nil)

// ScanService drives analysis passes against the manuscript and folds
// their results into one accumulating record. Results from different
// kinds never overwrite each other; a failed scan leaves the previous
// record fully intact.
type ScanService struct {
	project *ProjectService
	editor  driven.EditorService
	store   driven.ProjectStore

	mu      sync.Mutex
	running map[domain.ScanKind]bool
	record  domain.AnalysisRecord
}

// NewScanService creates a scan service seeded with any previously
// persisted record (zero value when none exists).
func NewScanService(
	project *ProjectService,
	editor driven.EditorService,
	store driven.ProjectStore,
	record domain.AnalysisRecord,
) *ScanService {
	record.ManuscriptID = project.Manuscript().ID
	return &ScanService{
		project: project,
		editor:  editor,
		store:   store,
		running: make(map[domain.ScanKind]bool),
		record:  record,
	}
}

// Record returns a copy of the accumulated analysis record.
func (s *ScanService) Record() domain.AnalysisRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record.Clone()
}

// Scan runs one analysis kind and merges the result into the record.
// Each kind carries its own reentrancy lock: the same kind cannot run
// twice concurrently, different kinds can.
func (s *ScanService) Scan(ctx context.Context, kind domain.ScanKind) (*domain.AnalysisRecord, error) {
	if s.editor == nil {
		return nil, domain.ErrEditorUnavailable
	}
	if !kind.IsValid() {
		return nil, fmt.Errorf("scan kind %q: %w", kind, domain.ErrInvalidInput)
	}

	s.mu.Lock()
	if s.running[kind] {
		s.mu.Unlock()
		return nil, fmt.Errorf("%s: %w", kind, domain.ErrScanInProgress)
	}
	s.running[kind] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.running, kind)
		s.mu.Unlock()
	}()

	ms := s.project.Manuscript()
	logger.Info("scan: running %s over %d chapters", kind, len(ms.Documents))

	result, err := s.editor.Scan(ctx, kind, ms)
	if err != nil {
		// Previous results survive a failed scan untouched.
		logger.Warn("scan: %s failed: %v", kind, err)
		return nil, fmt.Errorf("%s scan: %w", kind, err)
	}
	if result == nil {
		return nil, fmt.Errorf("%s scan returned no result: %w", kind, domain.ErrInvalidInput)
	}

	s.mu.Lock()
	if !s.record.Merge(kind, *result) {
		s.mu.Unlock()
		return nil, fmt.Errorf("%s scan result carried no %s payload: %w", kind, kind, domain.ErrInvalidInput)
	}
	snapshot := s.record.Clone()
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.SaveAnalysis(ctx, &snapshot); err != nil {
			logger.Warn("persisting analysis record for %s failed: %v", snapshot.ManuscriptID, err)
		}
	}

	return &snapshot, nil
}
