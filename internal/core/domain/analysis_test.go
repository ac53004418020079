package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAnalysisRecord_MergeIsolation tests that merging one kind's
// result leaves every other kind's field untouched
func TestAnalysisRecord_MergeIsolation(t *testing.T) {
	rec := AnalysisRecord{ManuscriptID: "m1"}

	ok := rec.Merge(ScanHealth, ScanResult{Health: &HealthReport{
		Score:        72,
		GlobalIssues: []string{"middle act drags"},
	}})
	require.True(t, ok)

	ok = rec.Merge(ScanContinuity, ScanResult{Continuity: &ContinuityReport{
		Issues: []ContinuityIssue{{Description: "eye colour changes in chapter 3"}},
	}})
	require.True(t, ok)

	require.NotNil(t, rec.Health)
	assert.Equal(t, 72, rec.Health.Score)
	require.NotNil(t, rec.Continuity)
	assert.Len(t, rec.Continuity.Issues, 1)
	assert.Nil(t, rec.Synopsis)
	assert.Nil(t, rec.Themes)
	assert.Nil(t, rec.Cohesion)
}

// TestAnalysisRecord_MergeWrongPayload tests that a result carrying
// nothing for the requested kind is rejected without mutation
func TestAnalysisRecord_MergeWrongPayload(t *testing.T) {
	rec := AnalysisRecord{}

	ok := rec.Merge(ScanHealth, ScanResult{Synopsis: &SynopsisResult{Overall: "..."}})
	assert.False(t, ok)
	assert.Nil(t, rec.Health)
	assert.True(t, rec.UpdatedAt.IsZero())
}

// TestAnalysisRecord_MergeRefresh tests that re-running a kind
// replaces only that kind's previous result
func TestAnalysisRecord_MergeRefresh(t *testing.T) {
	rec := AnalysisRecord{}
	require.True(t, rec.Merge(ScanHealth, ScanResult{Health: &HealthReport{Score: 50}}))
	require.True(t, rec.Merge(ScanSynopsis, ScanResult{Synopsis: &SynopsisResult{Overall: "draft"}}))

	require.True(t, rec.Merge(ScanHealth, ScanResult{Health: &HealthReport{Score: 80}}))

	assert.Equal(t, 80, rec.Health.Score)
	assert.Equal(t, "draft", rec.Synopsis.Overall)
}

// TestAnalysisRecord_IssuesFor tests issue extraction per kind
func TestAnalysisRecord_IssuesFor(t *testing.T) {
	rec := AnalysisRecord{
		Health: &HealthReport{GlobalIssues: []string{"pacing sags", "flat antagonist"}},
		Continuity: &ContinuityReport{Issues: []ContinuityIssue{
			{Description: "timeline jumps a week"},
		}},
		Themes: &ThemeReport{Threads: []PlotThread{
			{Name: "heist", Status: ThreadResolved, Summary: "resolved thread"},
			{Name: "betrayal", Status: ThreadUnresolved, Summary: "betrayal never pays off"},
			{Name: "romance", Status: ThreadPartial, Summary: "romance fizzles"},
		}},
		Cohesion: &CohesionReport{
			NamingIssues:   []string{"Anna vs Anne"},
			TimelineIssues: []string{"winter in chapter 2, summer in chapter 3"},
		},
	}

	assert.Equal(t, []string{"pacing sags", "flat antagonist"}, rec.IssuesFor(ScanHealth))
	assert.Equal(t, []string{"timeline jumps a week"}, rec.IssuesFor(ScanContinuity))
	assert.Equal(t, []string{"betrayal never pays off", "romance fizzles"}, rec.IssuesFor(ScanThemes))
	assert.Equal(t, []string{"Anna vs Anne", "winter in chapter 2, summer in chapter 3"}, rec.IssuesFor(ScanCohesion))
	assert.Nil(t, rec.IssuesFor(ScanSynopsis))
}

// TestAnalysisRecord_IssuesForEmpty tests extraction with no results
func TestAnalysisRecord_IssuesForEmpty(t *testing.T) {
	rec := AnalysisRecord{}
	for _, kind := range AllScanKinds() {
		assert.Empty(t, rec.IssuesFor(kind))
	}
}

// TestScanKind_IsValid tests kind validation
func TestScanKind_IsValid(t *testing.T) {
	for _, kind := range AllScanKinds() {
		assert.True(t, kind.IsValid())
	}
	assert.False(t, ScanKind("vibes").IsValid())
}
