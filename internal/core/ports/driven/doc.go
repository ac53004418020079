// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ProjectStore: Manuscript, suggestion and analysis persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - EditorService: Language model operations. Without it, scans,
//     sweeps and suggestion streaming are disabled; applying already
//     gathered suggestions and undo/redo keep working.
//   - PromptStore: Custom prompt templates. Without it, adapters use
//     their embedded defaults.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
