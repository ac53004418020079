package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/redraft-labs/redraft-cli/internal/core/domain"
	"github.com/redraft-labs/redraft-cli/internal/core/ports/driven"
	"github.com/redraft-labs/redraft-cli/internal/core/ports/driving"
	"github.com/redraft-labs/redraft-cli/internal/logger"
)

// Ensure SweepService implements the interface.
var _ driving.SweepPipeline = (*SweepService)(nil)

// Default pacing and timeout values.
const (
	// DefaultPacingInterval spaces rewrite calls to respect the
	// provider's call-rate limit.
	DefaultPacingInterval = 1500 * time.Millisecond

	// DefaultCallTimeout bounds one rewrite call so an unresponsive
	// provider becomes a per-document failure instead of a hang.
	DefaultCallTimeout = 3 * time.Minute
)

// SweepConfig tunes the sweep pipeline.
type SweepConfig struct {
	// PacingInterval is the minimum spacing between rewrite calls.
	// Zero selects DefaultPacingInterval.
	PacingInterval time.Duration

	// CallTimeout is the per-call timeout. Zero selects
	// DefaultCallTimeout.
	CallTimeout time.Duration
}

// SweepService rewrites every chapter once per run against the
// combined issue list of one analysis kind. Strictly sequential:
// chapters are processed in manuscript order, never in parallel, and
// each rewritten chapter is published before the next is attempted so
// observers see incremental progress.
//
// A run is not idempotent: repeating it with the same issue list
// rewrites every chapter again. Callers decide whether re-running
// against unresolved issues is intended.
type SweepService struct {
	project *ProjectService
	scans   driving.ScanRunner
	editor  driven.EditorService
	limiter *rate.Limiter
	timeout time.Duration

	statusMu sync.Mutex
	status   driving.SweepStatus
	cancel   context.CancelFunc
}

// NewSweepService creates a sweep pipeline.
func NewSweepService(
	project *ProjectService,
	scans driving.ScanRunner,
	editor driven.EditorService,
	cfg SweepConfig,
) *SweepService {
	if cfg.PacingInterval <= 0 {
		cfg.PacingInterval = DefaultPacingInterval
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = DefaultCallTimeout
	}
	return &SweepService{
		project: project,
		scans:   scans,
		editor:  editor,
		limiter: rate.NewLimiter(rate.Every(cfg.PacingInterval), 1),
		timeout: cfg.CallTimeout,
	}
}

// Status returns the current sweep status.
func (s *SweepService) Status() driving.SweepStatus {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	return s.status
}

// Cancel requests a running sweep stop before its next document.
// Chapters already rewritten are kept.
func (s *SweepService) Cancel() {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
}

// Run executes one sweep for the given analysis kind.
func (s *SweepService) Run(ctx context.Context, kind domain.ScanKind) error {
	if s.editor == nil {
		return domain.ErrEditorUnavailable
	}
	if !kind.IsValid() {
		return fmt.Errorf("scan kind %q: %w", kind, domain.ErrInvalidInput)
	}

	record := s.scans.Record()
	issues := record.IssuesFor(kind)
	if len(issues) == 0 {
		logger.Info("sweep: no %s issues recorded, nothing to do", kind)
		return domain.ErrNothingToDo
	}

	ms := s.project.Manuscript()
	total := len(ms.Documents)
	if total == 0 {
		return domain.ErrNothingToDo
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.statusMu.Lock()
	if s.status.Running {
		s.statusMu.Unlock()
		return domain.ErrSweepInProgress
	}
	s.status = driving.SweepStatus{
		Running:    true,
		Total:      total,
		StatusText: fmt.Sprintf("sweeping %d chapters against %d %s issues", total, len(issues), kind),
	}
	s.cancel = cancel
	s.statusMu.Unlock()

	instructions := buildInstructions(issues)
	projectContext := buildProjectContext(ms, record)

	logger.Section(fmt.Sprintf("sweep: %s", kind))

	var swept bool
	for i, doc := range ms.Documents {
		if err := s.limiter.Wait(runCtx); err != nil {
			s.finish(swept, fmt.Sprintf("sweep cancelled after %d of %d chapters", i, total))
			return fmt.Errorf("sweep cancelled: %w", err)
		}

		s.setStatusText(fmt.Sprintf("rewriting %q (%d of %d)", doc.Title, i+1, total))

		newText, err := s.rewriteOne(runCtx, doc, instructions, projectContext)
		switch {
		case err != nil && runCtx.Err() != nil:
			// The run itself was cancelled, not just this call.
			s.finish(swept, fmt.Sprintf("sweep cancelled after %d of %d chapters", i, total))
			return fmt.Errorf("sweep cancelled: %w", runCtx.Err())
		case err != nil:
			// Per-document failure: log, count, carry on. The failed
			// chapter keeps its text for this pass.
			logger.Warn("sweep: rewrite of %s failed: %v", doc.ID, err)
			s.bumpProgress(i+1, total, false)
		default:
			doc.SetText(newText)
			s.project.ReplaceDocument(doc)
			swept = true
			s.bumpProgress(i+1, total, true)
		}
	}

	s.statusMu.Lock()
	completed, failed := s.status.Completed, s.status.Failed
	s.statusMu.Unlock()

	s.finish(swept, fmt.Sprintf("sweep complete: %d rewritten, %d failed", completed, failed))
	return nil
}

// rewriteOne performs a single rewrite call under the per-call
// timeout, so a hung provider surfaces as a recoverable failure.
func (s *SweepService) rewriteOne(ctx context.Context, doc domain.Document, instructions, projectContext string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	newText, err := s.editor.RewriteDocument(callCtx, doc.Text, instructions, projectContext, doc.WordCount)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(newText) == "" {
		return "", fmt.Errorf("rewrite returned empty text: %w", domain.ErrInvalidInput)
	}
	return newText, nil
}

func (s *SweepService) setStatusText(text string) {
	s.statusMu.Lock()
	s.status.StatusText = text
	s.statusMu.Unlock()
}

func (s *SweepService) bumpProgress(processed, total int, ok bool) {
	s.statusMu.Lock()
	if ok {
		s.status.Completed++
	} else {
		s.status.Failed++
	}
	s.status.PercentComplete = float64(processed) / float64(total) * 100
	s.statusMu.Unlock()
}

// finish closes out the run: commits a single history snapshot when
// any chapter changed, then flips the status back to idle.
func (s *SweepService) finish(swept bool, statusText string) {
	if swept {
		if err := s.project.Commit(context.Background()); err != nil {
			logger.Warn("sweep: committing snapshot failed: %v", err)
		}
	}
	s.statusMu.Lock()
	s.status.Running = false
	s.status.StatusText = statusText
	s.cancel = nil
	s.statusMu.Unlock()
	logger.Info("%s", statusText)
}

// buildInstructions combines the issue list into one natural-language
// instruction block shared by every chapter rewrite in the run.
func buildInstructions(issues []string) string {
	var b strings.Builder
	b.WriteString("Resolve the following manuscript-wide issues. ")
	b.WriteString("Preserve the author's voice and do not change the core plot.\n")
	for _, issue := range issues {
		b.WriteString("- ")
		b.WriteString(issue)
		b.WriteString("\n")
	}
	return b.String()
}

// buildProjectContext gives the rewriter whole-manuscript context:
// the title and, when a synopsis scan has run, the overall summary.
func buildProjectContext(ms domain.Manuscript, record domain.AnalysisRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Manuscript: %s (%d chapters, %d words)\n", ms.Title, len(ms.Documents), ms.WordCount())
	if record.Synopsis != nil && record.Synopsis.Overall != "" {
		b.WriteString("Synopsis: ")
		b.WriteString(record.Synopsis.Overall)
		b.WriteString("\n")
	}
	return b.String()
}
