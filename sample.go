package sweep

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// SampleFrame is a single evaluation of a curve. Consecutive frames delimit
// one extruded segment.
type SampleFrame struct {
	// T is the curve parameter in [0,1] the frame was evaluated at.
	T        float64
	Position r3.Vec
	Tangent  r3.Vec
	Up       r3.Vec
}

// Curve is a read-only parametric path. Implementations should parametrize
// by normalized arc length so that equal parameter steps are equal distances
// along the curve.
type Curve interface {
	// Evaluate returns the position, tangent and up vector of the curve in
	// its local space at t in [0,1]. The returned frame's T field is ignored.
	Evaluate(t float64) (SampleFrame, error)
	// Length returns the arc length of the curve after applying the world
	// transform to it.
	Length(world Transform) float64
}

const (
	// endEpsilon is how close to the curve end a sample may be before the
	// end itself is sampled in its place.
	endEpsilon = 0.001
	// paramTol absorbs rounding when a parameter step lands on the curve end.
	paramTol = 1e-9
)

// SampleByInterval samples c every interval units of world arc length,
// starting at t=0. The curve end t=1 is always sampled exactly, so the last
// segment may be shorter than interval. It fails with ErrInvalidInterval if
// interval is not positive or exceeds the curve length.
func SampleByInterval(c Curve, world Transform, interval float64) ([]SampleFrame, error) {
	length := c.Length(world)
	if !(length > 0) || math.IsInf(length, 0) {
		return nil, fmt.Errorf("%w: curve length %g", ErrInvalidInterval, length)
	}
	if !(interval > 0) || interval > length {
		return nil, fmt.Errorf("%w: %g not in (0, %g]", ErrInvalidInterval, interval, length)
	}
	return evaluateAll(c, intervalParams(interval/length))
}

// SampleUniform returns exactly n samples of c at parameters i/(n-1).
// A single sample is taken at t=0.
func SampleUniform(c Curve, n int) ([]SampleFrame, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleCount, n)
	}
	params := make([]float64, n)
	for i := 1; i < n; i++ {
		params[i] = float64(i) / float64(n-1)
	}
	if n > 1 {
		params[n-1] = 1
	}
	return evaluateAll(c, params)
}

// intervalParams returns the parameters 0, step, 2*step... up to and
// including exactly 1. Parameters are computed by multiplication so rounding
// does not accumulate.
func intervalParams(step float64) []float64 {
	params := make([]float64, 0, int(math.Ceil(1/step))+2)
	for k := 0; ; k++ {
		t := float64(k) * step
		if 1-t <= paramTol {
			return append(params, 1)
		}
		if next := float64(k+1) * step; next > 1+paramTol {
			if t >= 1-endEpsilon {
				// Too close to the end to keep both samples.
				return append(params, 1)
			}
			return append(params, t, 1)
		}
		params = append(params, t)
	}
}

func evaluateAll(c Curve, params []float64) ([]SampleFrame, error) {
	frames := make([]SampleFrame, len(params))
	for i, t := range params {
		f, err := c.Evaluate(t)
		if err != nil {
			return nil, fmt.Errorf("%w at t=%g: %w", ErrCurveEvaluation, t, err)
		}
		f.T = t
		frames[i] = f
	}
	return frames, nil
}
