package curve

import (
	"fmt"

	"github.com/soypat/sweep"
	"github.com/soypat/sweep/internal/d3"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// Knot is a polyline vertex. A zero Up defaults to +Y.
type Knot struct {
	Position r3.Vec `yaml:"position"`
	Up       r3.Vec `yaml:"up"`
}

// Polyline is a piecewise linear curve through its knots.
type Polyline struct {
	knots []Knot
	// cum holds the cumulative local length at every knot.
	cum []float64
}

var _ sweep.Curve = (*Polyline)(nil)

// NewPolyline returns a polyline through knots. The slice is copied.
func NewPolyline(knots []Knot) (*Polyline, error) {
	if len(knots) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewKnots, len(knots))
	}
	p := &Polyline{knots: make([]Knot, len(knots))}
	lengths := make([]float64, len(knots))
	for i, k := range knots {
		if !d3.IsFinite(k.Position) || !d3.IsFinite(k.Up) {
			return nil, fmt.Errorf("knot %d is not finite", i)
		}
		k.Up = upOrDefault(k.Up)
		p.knots[i] = k
		if i > 0 {
			lengths[i] = r3.Norm(r3.Sub(k.Position, knots[i-1].Position))
		}
	}
	p.cum = floats.CumSum(lengths, lengths)
	return p, nil
}

// Evaluate implements sweep.Curve. The tangent is the direction of the
// segment containing t, scaled to the segment length.
func (p *Polyline) Evaluate(t float64) (sweep.SampleFrame, error) {
	t, err := checkParam(t)
	if err != nil {
		return sweep.SampleFrame{}, err
	}
	total := p.cum[len(p.cum)-1]
	seg, local := locate(p.cum, t*total)
	k0, k1 := p.knots[seg], p.knots[seg+1]
	segLen := p.cum[seg+1] - p.cum[seg]
	u := 0.0
	if segLen > 0 {
		u = local / segLen
		if u > 1 {
			u = 1
		}
	}
	tangent := r3.Sub(k1.Position, k0.Position)
	return sweep.SampleFrame{
		Position: d3.Lerp(k0.Position, k1.Position, u),
		Tangent:  tangent,
		Up:       orthoUp(d3.Lerp(k0.Up, k1.Up, u), tangent),
	}, nil
}

// Length implements sweep.Curve. Translation does not change segment
// lengths so only the linear part of world is applied to each edge.
func (p *Polyline) Length(world sweep.Transform) float64 {
	length := 0.0
	for i, k := range p.knots[1:] {
		edge := r3.Sub(k.Position, p.knots[i].Position)
		length += r3.Norm(world.ApplyDir(edge))
	}
	return length
}
