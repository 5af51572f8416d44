package sweep

import (
	"fmt"

	"github.com/soypat/sweep/internal/d3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh is an indexed triangle mesh. Normals has one entry per vertex and UVs
// is either empty or has one entry per vertex.
type Mesh struct {
	Vertices  []r3.Vec
	Triangles []int
	Normals   []r3.Vec
	UVs       []r2.Vec
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int { return len(m.Triangles) / 3 }

// Triangle returns the vertex positions of the i'th triangle.
func (m *Mesh) Triangle(i int) [3]r3.Vec {
	idx := m.Triangles[3*i : 3*i+3]
	return [3]r3.Vec{m.Vertices[idx[0]], m.Vertices[idx[1]], m.Vertices[idx[2]]}
}

// Bounds returns the bounding box of the mesh vertices. An empty mesh has
// the zero box.
func (m *Mesh) Bounds() r3.Box {
	if len(m.Vertices) == 0 {
		return r3.Box{}
	}
	return r3.Box(d3.BoundingBox(m.Vertices))
}

// Validate checks buffer lengths agree and every triangle index refers to
// an existing vertex.
func (m *Mesh) Validate() error {
	nv := len(m.Vertices)
	switch {
	case len(m.Normals) != nv:
		return fmt.Errorf("mesh has %d normals for %d vertices", len(m.Normals), nv)
	case len(m.UVs) != 0 && len(m.UVs) != nv:
		return fmt.Errorf("mesh has %d uvs for %d vertices", len(m.UVs), nv)
	case len(m.Triangles)%3 != 0:
		return fmt.Errorf("mesh triangle index count %d not a multiple of 3", len(m.Triangles))
	}
	for i, idx := range m.Triangles {
		if idx < 0 || idx >= nv {
			return fmt.Errorf("mesh triangle index %d at %d out of range [0,%d)", idx, i, nv)
		}
	}
	return nil
}

// Assemble extrudes the template along the sample frames, one segment per
// pair of consecutive frames. The template is not validated. Fewer than two
// frames or a nil template yield an empty mesh.
func Assemble(frames []SampleFrame, t *Template, axis Axis, smoothFaces, useWorldUp bool) *Mesh {
	if t == nil {
		return &Mesh{}
	}
	a := assembler{
		t:          t,
		axis:       axis,
		smooth:     smoothFaces,
		useWorldUp: useWorldUp,
		log:        zap.NewNop(),
	}
	job := a.prepare(frames)
	job.writeRange(0, len(job.rots))
	return job.m
}

type assembler struct {
	t          *Template
	axis       Axis
	smooth     bool
	useWorldUp bool
	workers    int
	log        *zap.Logger
}

// assembly is a mesh with its buffers allocated and segment rotations
// resolved, waiting for its segments to be written.
type assembly struct {
	m          *Mesh
	frames     []SampleFrame
	rots       []segmentRotation
	sw         segmentWriter
	degenerate int
}

// prepare allocates the mesh and resolves every segment rotation.
func (a *assembler) prepare(frames []SampleFrame) *assembly {
	if len(frames) < 2 {
		return &assembly{m: &Mesh{}}
	}
	nseg := len(frames) - 1
	nv := len(a.t.Vertices)
	ni := len(a.t.Triangles)
	m := &Mesh{
		Vertices:  make([]r3.Vec, nseg*nv),
		Normals:   make([]r3.Vec, nseg*nv),
		Triangles: make([]int, nseg*ni),
	}
	if len(a.t.UVs) > 0 {
		m.UVs = make([]r2.Vec, nseg*nv)
	}

	// Rotations depend on the previous valid frame so they are resolved in
	// curve order before any segment is written.
	o := newOrienter(a.useWorldUp, a.log)
	rots := make([]segmentRotation, nseg)
	prev := o.frame(frames[0])
	for i := range rots {
		next := o.frame(frames[i+1])
		rots[i] = segmentRotation{start: prev, end: next}
		if !a.smooth {
			rots[i].flat = o.flat(frames[i], frames[i+1], prev)
		}
		prev = next
	}
	return &assembly{
		m:      m,
		frames: frames,
		rots:   rots,
		sw: segmentWriter{
			t:         a.t,
			collapsed: CollapseAxis(a.t.Vertices, a.axis),
			p:         PartitionByAxis(a.t, a.axis),
			smooth:    a.smooth,
		},
		degenerate: o.degenerate,
	}
}

// writeRange writes segments [first, last). Disjoint ranges touch disjoint
// parts of the mesh buffers.
func (j *assembly) writeRange(first, last int) {
	t := j.sw.t
	nv, ni := len(t.Vertices), len(t.Triangles)
	m := j.m
	for i := first; i < last; i++ {
		voff := i * nv
		j.sw.write(m.Vertices[voff:voff+nv], m.Normals[voff:voff+nv],
			j.frames[i].Position, j.frames[i+1].Position, j.rots[i])
		tris := m.Triangles[i*ni : (i+1)*ni]
		for k, idx := range t.Triangles {
			tris[k] = idx + voff
		}
		if m.UVs != nil {
			copy(m.UVs[voff:voff+nv], t.UVs)
		}
	}
}

// assemble returns the mesh and the number of degenerate rotations replaced.
// Segments are written by up to a.workers goroutines.
func (a *assembler) assemble(frames []SampleFrame) (*Mesh, int, error) {
	job := a.prepare(frames)
	nseg := len(job.rots)
	workers := a.workers
	if workers > nseg {
		workers = nseg
	}
	if workers <= 1 {
		job.writeRange(0, nseg)
		return job.m, job.degenerate, nil
	}
	var g errgroup.Group
	g.SetLimit(workers)
	chunk := (nseg + workers - 1) / workers
	for first := 0; first < nseg; first += chunk {
		first, last := first, first+chunk
		if last > nseg {
			last = nseg
		}
		g.Go(func() error {
			job.writeRange(first, last)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return job.m, job.degenerate, nil
}
