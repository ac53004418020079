// Package domain defines the core business entities for Redraft.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A single chapter of a manuscript
//   - Manuscript: The ordered set of chapters under revision
//   - Suggestion: An anchored edit proposed by the editorial service
//   - AnalysisRecord: Accumulated results from manuscript scans
//   - VersionHistory: A bounded linear undo/redo stack of snapshots
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
