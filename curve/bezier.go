package curve

import (
	"fmt"
	"sort"

	"github.com/soypat/sweep"
	"github.com/soypat/sweep/internal/d3"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// lutSize is the number of arc length subdivisions per cubic.
	lutSize = 32
	// quadPoints is the Gauss-Legendre order used per integration interval.
	quadPoints = 8
	// lengthPoints is the Gauss-Legendre order used for whole cubic lengths.
	lengthPoints = 24
)

// BezierKnot is a knot of a cubic Bezier spline. TangentIn and TangentOut
// are handle offsets relative to Position. A zero Up defaults to +Y.
type BezierKnot struct {
	Position   r3.Vec `yaml:"position"`
	TangentIn  r3.Vec `yaml:"tangent_in"`
	TangentOut r3.Vec `yaml:"tangent_out"`
	Up         r3.Vec `yaml:"up"`
}

// Bezier is a spline of cubic Bezier curves joining consecutive knots.
// It is parametrized by normalized arc length.
type Bezier struct {
	knots  []BezierKnot
	cubics []cubic
	// cum holds the cumulative local length at every knot.
	cum []float64
}

var _ sweep.Curve = (*Bezier)(nil)

// cubic is a single Bezier curve and its arc length table.
type cubic struct {
	p [4]r3.Vec
	// lut[j] is the arc length from the start to u = j/lutSize.
	lut [lutSize + 1]float64
}

// NewBezier returns the spline through knots. The slice is copied.
func NewBezier(knots []BezierKnot) (*Bezier, error) {
	if len(knots) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewKnots, len(knots))
	}
	b := &Bezier{
		knots:  make([]BezierKnot, len(knots)),
		cubics: make([]cubic, len(knots)-1),
	}
	for i, k := range knots {
		if !d3.IsFinite(k.Position) || !d3.IsFinite(k.TangentIn) || !d3.IsFinite(k.TangentOut) || !d3.IsFinite(k.Up) {
			return nil, fmt.Errorf("knot %d is not finite", i)
		}
		k.Up = upOrDefault(k.Up)
		b.knots[i] = k
	}
	lengths := make([]float64, len(knots))
	for i := range b.cubics {
		c := &b.cubics[i]
		c.p = controlPoints(b.knots[i], b.knots[i+1], sweep.Transform{})
		c.buildLUT()
		lengths[i+1] = c.lut[lutSize]
	}
	b.cum = floats.CumSum(lengths, lengths)
	return b, nil
}

func controlPoints(k0, k1 BezierKnot, world sweep.Transform) [4]r3.Vec {
	return [4]r3.Vec{
		world.Apply(k0.Position),
		world.Apply(r3.Add(k0.Position, k0.TangentOut)),
		world.Apply(r3.Add(k1.Position, k1.TangentIn)),
		world.Apply(k1.Position),
	}
}

// Evaluate implements sweep.Curve. The tangent is the derivative of the
// cubic containing t with respect to its own parameter.
func (b *Bezier) Evaluate(t float64) (sweep.SampleFrame, error) {
	t, err := checkParam(t)
	if err != nil {
		return sweep.SampleFrame{}, err
	}
	total := b.cum[len(b.cum)-1]
	seg, local := locate(b.cum, t*total)
	c := &b.cubics[seg]
	u := c.param(local)
	tangent := c.derivative(u)
	up := d3.Lerp(b.knots[seg].Up, b.knots[seg+1].Up, u)
	return sweep.SampleFrame{
		Position: c.point(u),
		Tangent:  tangent,
		Up:       orthoUp(up, tangent),
	}, nil
}

// Length implements sweep.Curve. Cubic Bezier curves are affine invariant
// so the world length is that of the curve through transformed control points.
func (b *Bezier) Length(world sweep.Transform) float64 {
	length := 0.0
	for i := range b.cubics {
		c := cubic{p: controlPoints(b.knots[i], b.knots[i+1], world)}
		length += c.length(0, 1, lengthPoints)
	}
	return length
}

func (c *cubic) point(u float64) r3.Vec {
	v := 1 - u
	b0 := v * v * v
	b1 := 3 * v * v * u
	b2 := 3 * v * u * u
	b3 := u * u * u
	return r3.Add(
		r3.Add(r3.Scale(b0, c.p[0]), r3.Scale(b1, c.p[1])),
		r3.Add(r3.Scale(b2, c.p[2]), r3.Scale(b3, c.p[3])),
	)
}

func (c *cubic) derivative(u float64) r3.Vec {
	v := 1 - u
	d0 := r3.Scale(3*v*v, r3.Sub(c.p[1], c.p[0]))
	d1 := r3.Scale(6*v*u, r3.Sub(c.p[2], c.p[1]))
	d2 := r3.Scale(3*u*u, r3.Sub(c.p[3], c.p[2]))
	return r3.Add(d0, r3.Add(d1, d2))
}

func (c *cubic) length(u0, u1 float64, n int) float64 {
	speed := func(u float64) float64 { return r3.Norm(c.derivative(u)) }
	return quad.Fixed(speed, u0, u1, n, quad.Legendre{}, 0)
}

func (c *cubic) buildLUT() {
	var parts [lutSize + 1]float64
	for j := 1; j <= lutSize; j++ {
		parts[j] = c.length(float64(j-1)/lutSize, float64(j)/lutSize, quadPoints)
	}
	floats.CumSum(c.lut[:], parts[:])
}

// param returns the curve parameter at arc length s from the cubic start
// by interpolating the arc length table.
func (c *cubic) param(s float64) float64 {
	total := c.lut[lutSize]
	if !(total > 0) || s <= 0 {
		return 0
	}
	if s >= total {
		return 1
	}
	j := sort.SearchFloat64s(c.lut[:], s)
	// c.lut[j-1] < s <= c.lut[j]
	l0, l1 := c.lut[j-1], c.lut[j]
	frac := 0.0
	if l1 > l0 {
		frac = (s - l0) / (l1 - l0)
	}
	return (float64(j-1) + frac) / lutSize
}
