package scoring

import "errors"

var (
	// ErrLandmarkIndex means a landmark set is shorter than the anatomical index being read.
	ErrLandmarkIndex = errors.New("landmark index out of range")
	// ErrDegenerateGeometry means the points cannot produce a meaningful measurement.
	ErrDegenerateGeometry = errors.New("degenerate landmark geometry")
	// ErrInvalidFrame means there is no usable pixel buffer to evaluate.
	ErrInvalidFrame = errors.New("invalid frame")
)
