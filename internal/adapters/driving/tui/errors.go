package tui

import "errors"

// ErrMissingInterchangeService is returned when the interchange service is not provided.
var ErrMissingInterchangeService = errors.New("tui: interchange service is required")

// ErrMissingDocument is returned when no decoded document is supplied.
var ErrMissingDocument = errors.New("tui: document is required")
