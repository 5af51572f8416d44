package sweep

import "errors"

// Errors reported by sampling and building. They are always returned wrapped
// with context and should be compared with errors.Is.
var (
	// ErrInvalidInterval is returned when the extrusion interval is not
	// strictly positive or is longer than the curve itself.
	ErrInvalidInterval = errors.New("invalid extrusion interval")
	// ErrInvalidSampleCount is returned when fewer than one uniform sample is requested.
	ErrInvalidSampleCount = errors.New("invalid sample count")
	// ErrCurveEvaluation is returned when the curve fails to evaluate at a parameter.
	ErrCurveEvaluation = errors.New("curve evaluation failed")
	// ErrMissingTemplate is returned when no cross-section data was supplied.
	ErrMissingTemplate = errors.New("missing cross-section template")
	// ErrInvalidTemplate is returned when cross-section buffers are inconsistent.
	ErrInvalidTemplate = errors.New("invalid cross-section template")
	// ErrDegenerateFrame is reported when a frame's tangent is zero or parallel
	// to its up reference. Builds recover from it and never return it.
	ErrDegenerateFrame = errors.New("degenerate frame")
)
