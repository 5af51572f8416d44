package sweep

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

// WorldUp is the global vertical used as up reference when roll is suppressed.
var WorldUp = r3.Vec{Y: 1}

var identityRotation = r3.Rotation{Real: 1}

const (
	// zeroTol is the norm below which a forward or up vector is considered zero.
	zeroTol = 1e-12
	// parallelTol is the sine of the angle below which forward and up are parallel.
	parallelTol = 1e-9
)

// ComputeRotation returns the rotation taking template space onto the frame
// described by tangent and up. Template +Z maps onto the tangent and +Y
// onto the up vector, orthogonalized against the tangent.
//
// When useWorldUp is set the tangent's vertical component is discarded and
// WorldUp is used as up reference, so the extruded shape never banks.
// Otherwise the rotation follows the curve's own up vector and any roll it
// carries. A zero tangent or one parallel to the up reference yields the
// identity and an error wrapping ErrDegenerateFrame.
func ComputeRotation(tangent, up r3.Vec, useWorldUp bool) (r3.Rotation, error) {
	if useWorldUp {
		tangent.Y = 0
		up = WorldUp
	}
	return lookRotation(tangent, up)
}

// ComputeFlatRotation returns the single rotation shared by both rings of a
// faceted segment. The two tangents are averaged, and the two up vectors too
// unless useWorldUp is set, before computing the rotation as ComputeRotation does.
// The averages are not renormalized: opposed tangents or up vectors cancel
// out and are reported as ErrDegenerateFrame.
func ComputeFlatRotation(firstTangent, firstUp, secondTangent, secondUp r3.Vec, useWorldUp bool) (r3.Rotation, error) {
	return ComputeRotation(r3.Add(firstTangent, secondTangent), r3.Add(firstUp, secondUp), useWorldUp)
}

func lookRotation(forward, up r3.Vec) (r3.Rotation, error) {
	fnorm := r3.Norm(forward)
	if !(fnorm > zeroTol) {
		return identityRotation, fmt.Errorf("%w: zero tangent %v", ErrDegenerateFrame, forward)
	}
	unorm := r3.Norm(up)
	if !(unorm > zeroTol) {
		return identityRotation, fmt.Errorf("%w: zero up vector %v", ErrDegenerateFrame, up)
	}
	forward = r3.Scale(1/fnorm, forward)
	right := r3.Cross(up, forward)
	rnorm := r3.Norm(right)
	if !(rnorm > parallelTol*unorm) {
		return identityRotation, fmt.Errorf("%w: tangent %v parallel to up %v", ErrDegenerateFrame, forward, up)
	}
	right = r3.Scale(1/rnorm, right)
	return basisRotation(right, r3.Cross(forward, right), forward), nil
}

// basisRotation returns the rotation whose matrix has columns x, y and z.
// The basis must be orthonormal and right handed.
func basisRotation(x, y, z r3.Vec) r3.Rotation {
	m := mgl64.Mat3FromCols(
		mgl64.Vec3{x.X, x.Y, x.Z},
		mgl64.Vec3{y.X, y.Y, y.Z},
		mgl64.Vec3{z.X, z.Y, z.Z},
	)
	q := mgl64.Mat4ToQuat(m.Mat4()).Normalize()
	return r3.Rotation{Real: q.W, Imag: q.V[0], Jmag: q.V[1], Kmag: q.V[2]}
}

// orienter computes frame rotations in curve order, substituting the last
// valid rotation for degenerate frames.
type orienter struct {
	useWorldUp bool
	log        *zap.Logger
	last       r3.Rotation
	lastFlat   r3.Rotation
	hasFlat    bool
	degenerate int
}

func newOrienter(useWorldUp bool, log *zap.Logger) *orienter {
	return &orienter{useWorldUp: useWorldUp, log: log, last: identityRotation}
}

func (o *orienter) frame(f SampleFrame) r3.Rotation {
	q, err := ComputeRotation(f.Tangent, f.Up, o.useWorldUp)
	if err != nil {
		o.degenerate++
		o.log.Warn("degenerate frame, reusing previous rotation", zap.Float64("t", f.T), zap.Error(err))
		return o.last
	}
	o.last = q
	return q
}

// flat returns the shared rotation of the faceted segment from a to b.
// startRot is used if no flat rotation has been valid yet.
func (o *orienter) flat(a, b SampleFrame, startRot r3.Rotation) r3.Rotation {
	q, err := ComputeFlatRotation(a.Tangent, a.Up, b.Tangent, b.Up, o.useWorldUp)
	if err != nil {
		o.degenerate++
		o.log.Warn("degenerate flat segment rotation, reusing previous rotation",
			zap.Float64("t0", a.T), zap.Float64("t1", b.T), zap.Error(err))
		if o.hasFlat {
			return o.lastFlat
		}
		return startRot
	}
	o.lastFlat, o.hasFlat = q, true
	return q
}
