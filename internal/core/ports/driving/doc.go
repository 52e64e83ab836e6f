// Package driving defines the interfaces that infrastructure calls INTO core.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// The CLI, MCP server, TUI and inbox watcher call these interfaces; core
// services implement them.
//
// # Interfaces
//
//   - InterchangeService: ESX export/import, preview and sheet import
//   - ProjectService: Project browsing
//   - SettingsService: Interchange settings
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or services package
package driving
