package types

import "errors"

// Pantry operation errors. Callers distinguish them with errors.Is; every
// layer wraps them with context rather than returning them bare.
var (
	// ErrValidation means a mutation would break an Item invariant
	// (quantity going negative).
	ErrValidation = errors.New("validation failed")

	// ErrInput means a caller supplied a malformed quantity, amount, or date.
	// Interactive callers re-prompt on it.
	ErrInput = errors.New("invalid input")

	// ErrNotFound means the referenced item or file does not exist.
	ErrNotFound = errors.New("not found")

	// ErrFormat means a persisted record could not be parsed.
	ErrFormat = errors.New("malformed record")

	// ErrCategoryExists is returned when creating a category whose name is
	// already present (exact, case-sensitive match).
	ErrCategoryExists = errors.New("category already exists")
)

// Config validation errors.
var (
	ErrLogLevelUnknown  = errors.New("unknown log level")
	ErrLogFormatUnknown = errors.New("unknown log format")
)
