package services

import (
	"fmt"
	"strings"

	"github.com/redraft-labs/redraft-cli/internal/core/domain"
)

// RenderReport formats an analysis record as a flat human-readable
// document. Pure formatting: no state, no side effects.
func RenderReport(ms domain.Manuscript, rec domain.AnalysisRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Analysis report: %s\n", ms.Title)
	fmt.Fprintf(&b, "%d chapters, %d words\n", len(ms.Documents), ms.WordCount())
	if !rec.UpdatedAt.IsZero() {
		fmt.Fprintf(&b, "Last scan: %s\n", rec.UpdatedAt.Format("2006-01-02 15:04 MST"))
	}

	if rec.Synopsis != nil {
		b.WriteString("\n## Synopsis\n\n")
		b.WriteString(rec.Synopsis.Overall)
		b.WriteString("\n")
		for _, ch := range rec.Synopsis.Chapters {
			title := ch.DocumentID
			if doc := ms.Document(ch.DocumentID); doc != nil {
				title = doc.Title
			}
			fmt.Fprintf(&b, "\n%s: %s\n", title, ch.Summary)
		}
	}

	if rec.Health != nil {
		b.WriteString("\n## Health\n\n")
		fmt.Fprintf(&b, "Score: %d/100\n", rec.Health.Score)
		writeList(&b, "Strengths", rec.Health.Strengths)
		writeList(&b, "Global issues", rec.Health.GlobalIssues)
	}

	if rec.Continuity != nil {
		b.WriteString("\n## Continuity\n\n")
		if len(rec.Continuity.Issues) == 0 {
			b.WriteString("No contradictions found.\n")
		}
		for _, iss := range rec.Continuity.Issues {
			fmt.Fprintf(&b, "- %s", iss.Description)
			if len(iss.DocumentIDs) > 0 {
				fmt.Fprintf(&b, " (%s)", strings.Join(iss.DocumentIDs, ", "))
			}
			b.WriteString("\n")
		}
	}

	if rec.Themes != nil {
		b.WriteString("\n## Themes & plot threads\n\n")
		writeList(&b, "Themes", rec.Themes.Themes)
		if len(rec.Themes.Threads) > 0 {
			b.WriteString("Plot threads:\n")
			for _, th := range rec.Themes.Threads {
				fmt.Fprintf(&b, "- %s [%s]: %s\n", th.Name, th.Status, th.Summary)
			}
		}
	}

	if rec.Cohesion != nil {
		b.WriteString("\n## Cohesion\n\n")
		writeList(&b, "Naming issues", rec.Cohesion.NamingIssues)
		writeList(&b, "Timeline issues", rec.Cohesion.TimelineIssues)
		if rec.Cohesion.Notes != "" {
			fmt.Fprintf(&b, "Notes: %s\n", rec.Cohesion.Notes)
		}
	}

	if rec.Synopsis == nil && rec.Health == nil && rec.Continuity == nil &&
		rec.Themes == nil && rec.Cohesion == nil {
		b.WriteString("\nNo scans have run yet.\n")
	}

	return b.String()
}

func writeList(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n", heading)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}
