// Package domain holds the estimate entities exchanged as ESX documents.
//
// A ProjectGraph is what gets exported: the project header plus its levels,
// rooms, line items and photos, linked by optional ID references. A
// ParseResult is what an import produces: the same entities rebuilt by
// position, with rooms pointing at levels and items pointing at rooms by
// index. ExportRecord audits each export and CellValue models one
// spreadsheet cell for the line-item sheet importer.
//
// The package imports only the standard library. Ports, services, codecs
// and adapters all depend on it; it depends on none of them.
package domain
