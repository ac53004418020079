// Package tui provides an interactive terminal user interface for redraft.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/redraft-labs/redraft-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Project exposes the live manuscript and its history.
	Project driving.ProjectSession

	// Review gathers and applies edit suggestions.
	Review driving.Reviewer

	// Sweep runs whole-manuscript rewrite passes.
	Sweep driving.SweepPipeline

	// Scan runs manuscript analysis passes.
	Scan driving.ScanRunner
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	project driving.ProjectSession,
	review driving.Reviewer,
	sweep driving.SweepPipeline,
	scan driving.ScanRunner,
) *Ports {
	return &Ports{
		Project: project,
		Review:  review,
		Sweep:   sweep,
		Scan:    scan,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Project == nil {
		return ErrMissingProjectSession
	}
	if p.Review == nil {
		return ErrMissingReviewer
	}
	if p.Sweep == nil {
		return ErrMissingSweepPipeline
	}
	// Scan is optional; the report view renders an empty record without it
	return nil
}
