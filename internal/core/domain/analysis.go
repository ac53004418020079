package domain

import "time"

// ScanKind identifies one of the manuscript analysis passes.
type ScanKind string

// Available scan kinds.
const (
	// ScanSynopsis produces per-chapter and whole-manuscript summaries.
	ScanSynopsis ScanKind = "synopsis"

	// ScanHealth scores the manuscript and lists global issues.
	ScanHealth ScanKind = "health"

	// ScanContinuity finds contradictions between chapters.
	ScanContinuity ScanKind = "continuity"

	// ScanThemes extracts themes and tracks plot threads.
	ScanThemes ScanKind = "themes"

	// ScanCohesion checks naming and timeline consistency across
	// the whole manuscript.
	ScanCohesion ScanKind = "cohesion"
)

// AllScanKinds lists every scan kind in canonical order.
func AllScanKinds() []ScanKind {
	return []ScanKind{ScanSynopsis, ScanHealth, ScanContinuity, ScanThemes, ScanCohesion}
}

// IsValid returns true if the scan kind is recognised.
func (k ScanKind) IsValid() bool {
	switch k {
	case ScanSynopsis, ScanHealth, ScanContinuity, ScanThemes, ScanCohesion:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k ScanKind) String() string {
	return string(k)
}

// ChapterSynopsis summarises a single chapter.
type ChapterSynopsis struct {
	DocumentID string
	Summary    string
}

// SynopsisResult is the outcome of a synopsis scan.
type SynopsisResult struct {
	Overall  string
	Chapters []ChapterSynopsis
}

// HealthReport is the outcome of a health scan.
type HealthReport struct {
	// Score is an overall quality score in [0,100].
	Score int

	// Strengths lists what is working.
	Strengths []string

	// GlobalIssues lists manuscript-wide problems. These feed the
	// sweep pipeline when the health view is active.
	GlobalIssues []string
}

// ContinuityIssue describes one contradiction between chapters.
type ContinuityIssue struct {
	Description string

	// DocumentIDs are the chapters involved, when known.
	DocumentIDs []string
}

// ContinuityReport is the outcome of a continuity scan.
type ContinuityReport struct {
	Issues []ContinuityIssue
}

// ThreadStatus tracks how far a plot thread has progressed.
type ThreadStatus string

// Plot thread statuses.
const (
	ThreadResolved   ThreadStatus = "resolved"
	ThreadPartial    ThreadStatus = "partial"
	ThreadUnresolved ThreadStatus = "unresolved"
)

// PlotThread is one narrative thread tracked by the themes scan.
type PlotThread struct {
	Name    string
	Status  ThreadStatus
	Summary string
}

// ThemeReport is the outcome of a themes scan.
type ThemeReport struct {
	Themes  []string
	Threads []PlotThread
}

// CohesionReport is the outcome of a cross-document cohesion scan.
type CohesionReport struct {
	NamingIssues   []string
	TimelineIssues []string
	Notes          string
}

// ScanResult carries the outcome of one scan. Exactly one field is
// non-nil, matching the requested kind.
type ScanResult struct {
	Synopsis   *SynopsisResult
	Health     *HealthReport
	Continuity *ContinuityReport
	Themes     *ThemeReport
	Cohesion   *CohesionReport
}

// AnalysisRecord accumulates scan results per kind. Each field is
// independently nullable and independently refreshable: merging one
// kind's result never touches another kind's field.
type AnalysisRecord struct {
	ManuscriptID string

	Synopsis   *SynopsisResult
	Health     *HealthReport
	Continuity *ContinuityReport
	Themes     *ThemeReport
	Cohesion   *CohesionReport

	// UpdatedAt is when any kind was last merged.
	UpdatedAt time.Time
}

// Merge folds a scan result into the record, replacing only the field
// for the requested kind. Returns false if the result carries nothing
// for that kind.
func (r *AnalysisRecord) Merge(kind ScanKind, result ScanResult) bool {
	switch kind {
	case ScanSynopsis:
		if result.Synopsis == nil {
			return false
		}
		r.Synopsis = result.Synopsis
	case ScanHealth:
		if result.Health == nil {
			return false
		}
		r.Health = result.Health
	case ScanContinuity:
		if result.Continuity == nil {
			return false
		}
		r.Continuity = result.Continuity
	case ScanThemes:
		if result.Themes == nil {
			return false
		}
		r.Themes = result.Themes
	case ScanCohesion:
		if result.Cohesion == nil {
			return false
		}
		r.Cohesion = result.Cohesion
	default:
		return false
	}
	r.UpdatedAt = time.Now().UTC()
	return true
}

// Clone returns a deep copy of the record. Published snapshots are
// always clones so observers cannot mutate the accumulator.
func (r AnalysisRecord) Clone() AnalysisRecord {
	out := r
	if r.Synopsis != nil {
		s := *r.Synopsis
		s.Chapters = append([]ChapterSynopsis(nil), r.Synopsis.Chapters...)
		out.Synopsis = &s
	}
	if r.Health != nil {
		h := *r.Health
		h.Strengths = append([]string(nil), r.Health.Strengths...)
		h.GlobalIssues = append([]string(nil), r.Health.GlobalIssues...)
		out.Health = &h
	}
	if r.Continuity != nil {
		c := *r.Continuity
		c.Issues = make([]ContinuityIssue, len(r.Continuity.Issues))
		for i, iss := range r.Continuity.Issues {
			iss.DocumentIDs = append([]string(nil), iss.DocumentIDs...)
			c.Issues[i] = iss
		}
		out.Continuity = &c
	}
	if r.Themes != nil {
		t := *r.Themes
		t.Themes = append([]string(nil), r.Themes.Themes...)
		t.Threads = append([]PlotThread(nil), r.Themes.Threads...)
		out.Themes = &t
	}
	if r.Cohesion != nil {
		c := *r.Cohesion
		c.NamingIssues = append([]string(nil), r.Cohesion.NamingIssues...)
		c.TimelineIssues = append([]string(nil), r.Cohesion.TimelineIssues...)
		out.Cohesion = &c
	}
	return out
}

// IssuesFor extracts the flat issue list a sweep would act on for the
// given kind. Synopsis never yields issues. Themes yields the
// summaries of threads that are not yet resolved. Cohesion combines
// naming and timeline issues.
func (r AnalysisRecord) IssuesFor(kind ScanKind) []string {
	switch kind {
	case ScanHealth:
		if r.Health == nil {
			return nil
		}
		return append([]string(nil), r.Health.GlobalIssues...)
	case ScanContinuity:
		if r.Continuity == nil {
			return nil
		}
		issues := make([]string, 0, len(r.Continuity.Issues))
		for _, iss := range r.Continuity.Issues {
			issues = append(issues, iss.Description)
		}
		return issues
	case ScanThemes:
		if r.Themes == nil {
			return nil
		}
		var issues []string
		for _, th := range r.Themes.Threads {
			if th.Status == ThreadResolved {
				continue
			}
			issues = append(issues, th.Summary)
		}
		return issues
	case ScanCohesion:
		if r.Cohesion == nil {
			return nil
		}
		issues := append([]string(nil), r.Cohesion.NamingIssues...)
		return append(issues, r.Cohesion.TimelineIssues...)
	default:
		return nil
	}
}
