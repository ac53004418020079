// Package sqlite provides a SQLite-based implementation of the
// project store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// that requires no CGO, enabling easy cross-compilation. It persists
// manuscripts with their documents, the suggestion list from the last
// review, and the accumulated analysis record.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in
// the migrations/ directory. Each migration is a pair of .up.sql and
// .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.redraft/data/projects.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode.
package sqlite
