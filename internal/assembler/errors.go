package assembler

import "errors"

var (
	// ErrEmptyLineGeometry indicates a text line with no constituent word
	// geometries, leaving its bounding box undefined. Validation error,
	// never coerced to a zero box.
	ErrEmptyLineGeometry = errors.New("text line has no word geometries")

	// ErrBlockConflict indicates conflicting block population: the same
	// block identifier received both text-line merges and non-text
	// content. Fatal for the page's assembly.
	ErrBlockConflict = errors.New("conflicting block population")
)
