package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// Interchange Errors.

	// ErrMissingRequiredField indicates an encode was refused because a
	// mandatory field (the project name) is absent.
	ErrMissingRequiredField = errors.New("missing required field")

	// ErrMalformedDocument indicates the input is not well-formed XML.
	ErrMalformedDocument = errors.New("malformed document")

	// ErrMissingRootElement indicates a well-formed document that lacks
	// the ESX top-level container.
	ErrMissingRootElement = errors.New("missing root element")

	// ErrInputTooLarge indicates an import payload exceeded the configured limit.
	ErrInputTooLarge = errors.New("input too large")

	// ErrMissingHeader indicates a spreadsheet without a usable header row.
	ErrMissingHeader = errors.New("missing header row")
)
