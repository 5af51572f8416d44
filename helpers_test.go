package sweep

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// lineCurve is a straight segment with a constant up vector.
type lineCurve struct {
	from, to, up r3.Vec
}

func (c lineCurve) Evaluate(t float64) (SampleFrame, error) {
	if t < 0 || t > 1 {
		return SampleFrame{}, errors.New("parameter out of range")
	}
	return SampleFrame{
		Position: r3.Add(c.from, r3.Scale(t, r3.Sub(c.to, c.from))),
		Tangent:  r3.Sub(c.to, c.from),
		Up:       c.up,
	}, nil
}

func (c lineCurve) Length(world Transform) float64 {
	return r3.Norm(r3.Sub(world.Apply(c.to), world.Apply(c.from)))
}

// arcCurve is a half circle of radius r in the XZ plane, centered at the
// origin and starting at (r,0,0). It ignores the world transform.
type arcCurve struct {
	r float64
}

func (c arcCurve) Evaluate(t float64) (SampleFrame, error) {
	sin, cos := math.Sincos(math.Pi * t)
	return SampleFrame{
		Position: r3.Vec{X: c.r * cos, Z: c.r * sin},
		Tangent:  r3.Vec{X: -sin, Z: cos},
		Up:       r3.Vec{Y: 1},
	}, nil
}

func (c arcCurve) Length(Transform) float64 { return math.Pi * c.r }

// kinkCurve runs along X for t < 0.5 and straight up afterwards.
type kinkCurve struct{}

func (kinkCurve) Evaluate(t float64) (SampleFrame, error) {
	if t < 0.5 {
		return SampleFrame{Position: r3.Vec{X: 20 * t}, Tangent: r3.Vec{X: 1}, Up: r3.Vec{Y: 1}}, nil
	}
	return SampleFrame{Position: r3.Vec{X: 10, Y: 20*t - 10}, Tangent: r3.Vec{Y: 1}, Up: r3.Vec{X: -1}}, nil
}

func (kinkCurve) Length(Transform) float64 { return 20 }

// failCurve fails to evaluate past t=0.5.
type failCurve struct{ lineCurve }

var errFail = errors.New("evaluation failed")

func (c failCurve) Evaluate(t float64) (SampleFrame, error) {
	if t > 0.5 {
		return SampleFrame{}, errFail
	}
	return c.lineCurve.Evaluate(t)
}

// unitSquare is a quad of 4 vertices, 2 on each side of the X axis plane.
func unitSquare() *Template {
	return &Template{
		Vertices: []r3.Vec{
			{X: -0.5, Y: -0.5}, {X: -0.5, Y: 0.5},
			{X: 0.5, Y: -0.5}, {X: 0.5, Y: 0.5},
		},
		Normals: []r3.Vec{{Z: 1}, {Z: 1}, {Z: 1}, {Z: 1}},
		UVs:     []r2.Vec{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 0}, {X: 1, Y: 1}},
		Triangles: []int{
			0, 2, 3,
			0, 3, 1,
		},
	}
}

// tube is an open square tube along Z with its rings at z=-0.5 and z=0.5.
func tube() *Template {
	corners := []r3.Vec{{X: 1, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: -1}, {X: 1, Y: -1}}
	t := &Template{}
	for _, z := range []float64{-0.5, 0.5} {
		for _, c := range corners {
			c.Z = z
			t.Vertices = append(t.Vertices, c)
			t.Normals = append(t.Normals, r3.Unit(r3.Vec{X: c.X, Y: c.Y}))
		}
	}
	for i := 0; i < 4; i++ {
		a, b := i, (i+1)%4
		t.Triangles = append(t.Triangles, a, b, b+4, a, b+4, a+4)
	}
	return t
}

func vecClose(a, b r3.Vec, tol float64) bool {
	return r3.Norm(r3.Sub(a, b)) <= tol
}

// sameRotation reports whether p and q rotate the basis vectors alike.
func sameRotation(p, q r3.Rotation, tol float64) bool {
	for _, v := range []r3.Vec{{X: 1}, {Y: 1}, {Z: 1}} {
		if !vecClose(p.Rotate(v), q.Rotate(v), tol) {
			return false
		}
	}
	return true
}
