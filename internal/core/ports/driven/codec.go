package driven

import "github.com/custodia-labs/estix-cli/internal/core/domain"

// DocumentEncoder renders a project graph in an interchange format.
// Implementations are pure and safe for concurrent use.
type DocumentEncoder interface {
	// Encode returns the document bytes. It fails with
	// domain.ErrMissingRequiredField when the project has no name.
	Encode(graph *domain.ProjectGraph, opts domain.EncodeOptions) ([]byte, error)

	// FormatVersion identifies the document version written.
	FormatVersion() string
}

// DocumentDecoder rebuilds project records from an interchange document.
type DocumentDecoder interface {
	// Decode never returns nil. Hard failures are reported through
	// ParseResult.Success and ParseResult.Err.
	Decode(data []byte) *domain.ParseResult
}

// SheetReader reads spreadsheet line-item rows.
type SheetReader interface {
	// Read returns one line item per non-blank row. RoomIndex is -1 on
	// every item; RoomName carries the row's room column.
	Read(data []byte) ([]domain.ParsedLineItem, error)
}
