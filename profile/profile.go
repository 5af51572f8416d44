// Package profile builds cross-section templates for package sweep.
//
// Templates built here use Z as extrusion axis: the leading ring lies at
// negative Z and the trailing ring at positive Z, so they are meant to be
// extruded with sweep.AxisZ.
package profile

import (
	"errors"
	"fmt"
	"math"

	"github.com/soypat/sweep"
	"github.com/soypat/sweep/internal/d2"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Extrude returns a template for the closed polygon with both rings depth
// apart along Z. The polygon may have either winding; triangles always face
// outward. The first vertex is repeated at the end of each ring so texture
// U runs from 0 to 1 around the perimeter. V is 0 on the leading ring and 1
// on the trailing ring. A closing vertex equal to the first is dropped.
func Extrude(polygon []r2.Vec, depth float64) (*sweep.Template, error) {
	const closeTol = 1e-12
	n := len(polygon)
	if n > 1 && d2.EqualWithin(polygon[0], polygon[n-1], closeTol) {
		n--
	}
	if n < 3 {
		return nil, fmt.Errorf("polygon needs at least 3 vertices, got %d", n)
	}
	if !(depth > 0) {
		return nil, errors.New("extrusion depth must be positive")
	}
	pts := make(d2.Set, n)
	for i, p := range polygon[:n] {
		if !d2.IsFinite(p) {
			return nil, fmt.Errorf("polygon vertex %d is not finite", i)
		}
		pts[i] = p
	}
	area := pts.SignedArea()
	if area == 0 {
		return nil, errors.New("polygon has no area")
	} else if area < 0 {
		pts.Reverse()
	}

	// Outward edge normals and perimeter arc length per vertex.
	arc := pts.Perimeter()
	edgeN := make([]r2.Vec, n)
	for i := range pts {
		l := arc[i+1] - arc[i]
		if l == 0 {
			return nil, fmt.Errorf("polygon vertex %d repeated", i)
		}
		e := r2.Sub(pts[(i+1)%n], pts[i])
		edgeN[i] = r2.Vec{X: e.Y / l, Y: -e.X / l}
	}

	ring := n + 1
	t := &sweep.Template{
		Vertices:  make([]r3.Vec, 2*ring),
		Normals:   make([]r3.Vec, 2*ring),
		UVs:       make([]r2.Vec, 2*ring),
		Triangles: make([]int, 0, 6*n),
	}
	half := depth / 2
	for i := 0; i < ring; i++ {
		p := pts[i%n]
		nrm := r2.Unit(r2.Add(edgeN[(i+n-1)%n], edgeN[i%n]))
		u := arc[i] / arc[n]
		t.Vertices[i] = r3.Vec{X: p.X, Y: p.Y, Z: -half}
		t.Vertices[ring+i] = r3.Vec{X: p.X, Y: p.Y, Z: half}
		t.Normals[i] = r3.Vec{X: nrm.X, Y: nrm.Y}
		t.Normals[ring+i] = t.Normals[i]
		t.UVs[i] = r2.Vec{X: u, Y: 0}
		t.UVs[ring+i] = r2.Vec{X: u, Y: 1}
	}
	for i := 0; i < n; i++ {
		a, b := i, i+1
		c, d := ring+i, ring+i+1
		t.Triangles = append(t.Triangles, a, b, d, a, d, c)
	}
	return t, nil
}

// Nagon returns the vertices of a regular polygon with n sides inscribed in
// a circle of the given radius, counter-clockwise from +X.
func Nagon(n int, radius float64) ([]r2.Vec, error) {
	if n < 3 {
		return nil, errors.New("nagon needs at least 3 sides")
	}
	if !(radius > 0) {
		return nil, errors.New("nagon radius must be positive")
	}
	pts := make([]r2.Vec, n)
	step := 2 * math.Pi / float64(n)
	for i := range pts {
		pts[i] = d2.Pol{R: radius, Theta: float64(i) * step}.PolarToCartesian()
	}
	return pts, nil
}

// Rect returns the counter-clockwise corners of a width by height rectangle
// centered at the origin.
func Rect(width, height float64) ([]r2.Vec, error) {
	if !(width > 0) || !(height > 0) {
		return nil, errors.New("rectangle sides must be positive")
	}
	w, h := width/2, height/2
	return []r2.Vec{{X: -w, Y: -h}, {X: w, Y: -h}, {X: w, Y: h}, {X: -w, Y: h}}, nil
}
