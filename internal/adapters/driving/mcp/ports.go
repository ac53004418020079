package mcp

import (
	"github.com/redraft-labs/redraft-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
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

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Project == nil {
		return ErrMissingProjectSession
	}
	if p.Review == nil {
		return ErrMissingReviewer
	}
	// Sweep and Scan are optional; their tools report unavailability
	return nil
}
