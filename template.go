package sweep

import (
	"fmt"

	"github.com/soypat/sweep/internal/d3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Template is the cross-section profile copied at every sample of a curve.
// It is never modified by this package and may be shared between builds.
type Template struct {
	Vertices []r3.Vec `yaml:"vertices"`
	// Normals holds one normal per vertex.
	Normals []r3.Vec `yaml:"normals"`
	// UVs is either empty or holds one texture coordinate per vertex.
	UVs []r2.Vec `yaml:"uvs"`
	// Triangles holds vertex indices, three per triangle.
	Triangles []int `yaml:"triangles"`
}

// Validate checks the template buffers are consistent with one another.
// A nil or vertex-less template is reported as ErrMissingTemplate.
func (t *Template) Validate() error {
	if t == nil || len(t.Vertices) == 0 {
		return ErrMissingTemplate
	}
	nv := len(t.Vertices)
	switch {
	case len(t.Normals) != nv:
		return fmt.Errorf("%w: %d normals for %d vertices", ErrInvalidTemplate, len(t.Normals), nv)
	case len(t.UVs) != 0 && len(t.UVs) != nv:
		return fmt.Errorf("%w: %d uvs for %d vertices", ErrInvalidTemplate, len(t.UVs), nv)
	case len(t.Triangles)%3 != 0:
		return fmt.Errorf("%w: triangle index count %d not a multiple of 3", ErrInvalidTemplate, len(t.Triangles))
	}
	for i, idx := range t.Triangles {
		if idx < 0 || idx >= nv {
			return fmt.Errorf("%w: triangle index %d at %d out of range [0,%d)", ErrInvalidTemplate, idx, i, nv)
		}
	}
	for i, v := range t.Vertices {
		if !d3.IsFinite(v) {
			return fmt.Errorf("%w: vertex %d is not finite", ErrInvalidTemplate, i)
		}
	}
	return nil
}

// Partition splits template vertex indices into the ring placed at the start
// of a segment and the ring placed at its end.
type Partition struct {
	Leading  []int
	Trailing []int
}

// PartitionByAxis assigns every vertex with a strictly negative coordinate
// along axis to the leading ring and every other vertex to the trailing ring.
// Indices are in ascending order. Vertices exactly on the plane go to the
// trailing ring. A template with an empty ring is valid and produces
// collapsed caps.
func PartitionByAxis(t *Template, axis Axis) Partition {
	var p Partition
	i := axis.index()
	for idx, v := range t.Vertices {
		if d3.Component(v, i) < 0 {
			p.Leading = append(p.Leading, idx)
		} else {
			p.Trailing = append(p.Trailing, idx)
		}
	}
	return p
}

// CollapseAxis returns a copy of vertices with the coordinate along axis set
// to zero. The argument is not modified.
func CollapseAxis(vertices []r3.Vec, axis Axis) []r3.Vec {
	collapsed := make([]r3.Vec, len(vertices))
	i := axis.index()
	for idx, v := range vertices {
		collapsed[idx] = d3.WithComponent(v, i, 0)
	}
	return collapsed
}
