package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redraft-labs/redraft-cli/internal/core/domain"
	"github.com/redraft-labs/redraft-cli/internal/core/ports/driven"
)

// Default per-kind scan prompts. Each asks for a JSON object matching
// the kind's payload so decodeScanResult can unmarshal it directly.
var defaultScanPrompts = map[domain.ScanKind]string{
	domain.ScanSynopsis: `Summarise this manuscript.
Return ONLY JSON: {"overall":"...","chapters":[{"document_id":"...","summary":"..."}]}
Use the chapter IDs given in the headers.

%s`,
	domain.ScanHealth: `Assess this manuscript's overall health.
Return ONLY JSON: {"score":0-100,"strengths":["..."],"global_issues":["..."]}

%s`,
	domain.ScanContinuity: `Find contradictions between chapters of this manuscript
(facts, descriptions, established details that conflict).
Return ONLY JSON: {"issues":[{"description":"...","document_ids":["..."]}]}

%s`,
	domain.ScanThemes: `Extract the themes and plot threads of this manuscript.
Return ONLY JSON:
{"themes":["..."],"threads":[{"name":"...","status":"resolved|partial|unresolved","summary":"..."}]}

%s`,
	domain.ScanCohesion: `Check this manuscript for cross-chapter cohesion problems:
character/place naming inconsistencies and timeline inconsistencies.
Return ONLY JSON: {"naming_issues":["..."],"timeline_issues":["..."],"notes":"..."}

%s`,
}

// scanPrompt builds the full prompt for one scan kind, flattening the
// manuscript with per-chapter headers carrying the document IDs.
func (s *EditorService) scanPrompt(kind domain.ScanKind, ms domain.Manuscript) (string, error) {
	fallback, ok := defaultScanPrompts[kind]
	if !ok {
		return "", fmt.Errorf("scan kind %q: %w", kind, domain.ErrInvalidInput)
	}
	template := s.loadPrompt(driven.PromptScanPrefix+kind.String(), fallback)

	var b strings.Builder
	fmt.Fprintf(&b, "Manuscript: %s\n", ms.Title)
	for _, doc := range ms.Documents {
		fmt.Fprintf(&b, "\n--- Chapter %q (id: %s) ---\n%s\n", doc.Title, doc.ID, doc.Text)
	}

	return fmt.Sprintf(template, b.String()), nil
}

// Wire payloads for scan responses.
type synopsisPayload struct {
	Overall  string `json:"overall"`
	Chapters []struct {
		DocumentID string `json:"document_id"`
		Summary    string `json:"summary"`
	} `json:"chapters"`
}

type healthPayload struct {
	Score        int      `json:"score"`
	Strengths    []string `json:"strengths"`
	GlobalIssues []string `json:"global_issues"`
}

type continuityPayload struct {
	Issues []struct {
		Description string   `json:"description"`
		DocumentIDs []string `json:"document_ids"`
	} `json:"issues"`
}

type themesPayload struct {
	Themes  []string `json:"themes"`
	Threads []struct {
		Name    string `json:"name"`
		Status  string `json:"status"`
		Summary string `json:"summary"`
	} `json:"threads"`
}

type cohesionPayload struct {
	NamingIssues   []string `json:"naming_issues"`
	TimelineIssues []string `json:"timeline_issues"`
	Notes          string   `json:"notes"`
}

// decodeScanResult unmarshals the kind-specific payload into a
// ScanResult carrying only that kind's field.
func decodeScanResult(kind domain.ScanKind, raw string) (*domain.ScanResult, error) {
	switch kind {
	case domain.ScanSynopsis:
		var p synopsisPayload
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, fmt.Errorf("decode synopsis: %w", err)
		}
		result := &domain.SynopsisResult{Overall: p.Overall}
		for _, ch := range p.Chapters {
			result.Chapters = append(result.Chapters, domain.ChapterSynopsis{
				DocumentID: ch.DocumentID,
				Summary:    ch.Summary,
			})
		}
		return &domain.ScanResult{Synopsis: result}, nil

	case domain.ScanHealth:
		var p healthPayload
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, fmt.Errorf("decode health: %w", err)
		}
		return &domain.ScanResult{Health: &domain.HealthReport{
			Score:        p.Score,
			Strengths:    p.Strengths,
			GlobalIssues: p.GlobalIssues,
		}}, nil

	case domain.ScanContinuity:
		var p continuityPayload
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, fmt.Errorf("decode continuity: %w", err)
		}
		report := &domain.ContinuityReport{}
		for _, iss := range p.Issues {
			report.Issues = append(report.Issues, domain.ContinuityIssue{
				Description: iss.Description,
				DocumentIDs: iss.DocumentIDs,
			})
		}
		return &domain.ScanResult{Continuity: report}, nil

	case domain.ScanThemes:
		var p themesPayload
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, fmt.Errorf("decode themes: %w", err)
		}
		report := &domain.ThemeReport{Themes: p.Themes}
		for _, th := range p.Threads {
			status := domain.ThreadStatus(th.Status)
			switch status {
			case domain.ThreadResolved, domain.ThreadPartial, domain.ThreadUnresolved:
			default:
				status = domain.ThreadUnresolved
			}
			report.Threads = append(report.Threads, domain.PlotThread{
				Name:    th.Name,
				Status:  status,
				Summary: th.Summary,
			})
		}
		return &domain.ScanResult{Themes: report}, nil

	case domain.ScanCohesion:
		var p cohesionPayload
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, fmt.Errorf("decode cohesion: %w", err)
		}
		return &domain.ScanResult{Cohesion: &domain.CohesionReport{
			NamingIssues:   p.NamingIssues,
			TimelineIssues: p.TimelineIssues,
			Notes:          p.Notes,
		}}, nil

	default:
		return nil, fmt.Errorf("scan kind %q: %w", kind, domain.ErrInvalidInput)
	}
}
