package geometry

import "errors"

// ErrInvalidBox indicates a bounding box violating the coordinate contract
// (inverted or non-finite corners). It marks a caller error: boxes must be
// validated before they enter geometric computation.
var ErrInvalidBox = errors.New("invalid bounding box")
