// Package curve implements arc-length parametrized curves that can be
// sampled by package sweep.
package curve

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// ErrTooFewKnots is returned when building a curve from less than two knots.
	ErrTooFewKnots = errors.New("curve needs at least two knots")
	// ErrParameter is returned when evaluating outside [0,1].
	ErrParameter = errors.New("curve parameter out of range")
)

// paramTol is the tolerance allowed on the [0,1] parameter range.
const paramTol = 1e-12

func checkParam(t float64) (float64, error) {
	if !(t >= -paramTol && t <= 1+paramTol) {
		return 0, fmt.Errorf("%w: %g", ErrParameter, t)
	}
	if t < 0 {
		return 0, nil
	} else if t > 1 {
		return 1, nil
	}
	return t, nil
}

// locate returns the segment containing arc length s and the arc length
// remaining inside that segment. cum holds cumulative segment lengths
// starting at 0. Zero length segments are never returned unless every
// segment has zero length.
func locate(cum []float64, s float64) (seg int, local float64) {
	last := len(cum) - 2
	i := sort.SearchFloat64s(cum, s)
	if i == 0 {
		for seg < last && cum[seg+1] == 0 {
			seg++
		}
		return seg, 0
	}
	if i > last+1 {
		i = last + 1
	}
	return i - 1, s - cum[i-1]
}

// orthoUp returns up made perpendicular to tangent. If that is not possible
// up is returned unchanged and the frame is left for the caller to resolve.
func orthoUp(up, tangent r3.Vec) r3.Vec {
	tn2 := r3.Norm2(tangent)
	if tn2 == 0 {
		return up
	}
	ortho := r3.Sub(up, r3.Scale(r3.Dot(up, tangent)/tn2, tangent))
	if r3.Norm2(ortho) < 1e-18 {
		return up
	}
	return r3.Unit(ortho)
}

// defaultUp is the up vector of knots that do not define one.
var defaultUp = r3.Vec{Y: 1}

func upOrDefault(up r3.Vec) r3.Vec {
	if up == (r3.Vec{}) {
		return defaultUp
	}
	return up
}
