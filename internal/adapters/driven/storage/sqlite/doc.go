// Package sqlite provides a SQLite-based implementation of the estix
// storage ports.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. A single database connection backs:
//
//   - ProjectStore: projects with their levels, rooms, line items and photos
//   - ExportStore: the export audit trail
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.estix/data/estix.db
package sqlite
