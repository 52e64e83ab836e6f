// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and adapters implement them.
//
// # Required Interfaces
//
//   - DocumentEncoder / DocumentDecoder: ESX interchange codec
//   - ProjectStore: Project graph persistence
//   - ExportStore: Export audit persistence
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - SheetReader: Spreadsheet line-item import. Without it ImportSheet is disabled.
//   - ConfigStore: Without it services use domain.DefaultSettings.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or codec package
package driven
