package model

import "strings"

// Error is a single malformed-model finding (§7 ModelError). Compilation
// collects every finding before returning, rather than failing on the
// first one, so a model author sees the whole list at once.
type Error struct {
	Field   string
	Message string
}

func (e Error) String() string {
	return e.Field + ": " + e.Message
}

// ValidationError aggregates every Error found while validating or
// compiling a Description. It is fatal to the run: compilation must
// return it to the caller before any event is scheduled (§7).
type ValidationError struct {
	Errors []Error
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		parts[i] = err.String()
	}
	return "model validation failed:\n  " + strings.Join(parts, "\n  ")
}

// HasErrors reports whether any findings were collected.
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Errors) > 0
}

func (e *ValidationError) add(field, message string) {
	e.Errors = append(e.Errors, Error{Field: field, Message: message})
}
