package waveguide

import "errors"

var (
	// ErrConfiguration indicates a required parameter is unknown or of the
	// wrong kind for the requested operation.
	ErrConfiguration = errors.New("required parameter is not set")
	// ErrGeometry indicates a parameter combination with no real solution.
	ErrGeometry = errors.New("no real solution for geometry")
	// ErrState indicates an operation on a trajectory whose state forbids it.
	ErrState = errors.New("trajectory state forbids operation")
)
