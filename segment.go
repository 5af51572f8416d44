package sweep

import (
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Segment is one copy of the template stretched between two sample frames.
// Triangle indices refer to the segment's own vertices.
type Segment struct {
	Vertices  []r3.Vec
	Normals   []r3.Vec
	Triangles []int
	UVs       []r2.Vec
}

// BuildSegment places the leading ring of the template at start and the
// trailing ring at end. collapsed must be CollapseAxis applied to the
// template vertices and p the partition of the template over the same axis.
//
// With smoothFaces each ring's normals follow its own frame rotation.
// Otherwise both rings share one flat rotation so the segment is shaded as
// a single facet. Degenerate frames fall back to the identity rotation;
// Assemble carries rotations forward between segments instead.
func BuildSegment(t *Template, collapsed []r3.Vec, p Partition, start, end SampleFrame, smoothFaces, useWorldUp bool) Segment {
	o := newOrienter(useWorldUp, zap.NewNop())
	rot := segmentRotation{start: o.frame(start), end: o.frame(end)}
	if !smoothFaces {
		rot.flat = o.flat(start, end, rot.start)
	}
	seg := Segment{
		Vertices:  make([]r3.Vec, len(t.Vertices)),
		Normals:   make([]r3.Vec, len(t.Vertices)),
		Triangles: append([]int(nil), t.Triangles...),
		UVs:       append([]r2.Vec(nil), t.UVs...),
	}
	sw := segmentWriter{t: t, collapsed: collapsed, p: p, smooth: smoothFaces}
	sw.write(seg.Vertices, seg.Normals, start.Position, end.Position, rot)
	return seg
}

type segmentRotation struct {
	start, end r3.Rotation
	// flat is only used for faceted segments.
	flat r3.Rotation
}

// segmentWriter holds the per-build data shared read-only by every segment.
type segmentWriter struct {
	t         *Template
	collapsed []r3.Vec
	p         Partition
	smooth    bool
}

// write fills template-sized vertex and normal buffers for one segment.
func (sw *segmentWriter) write(vertices, normals []r3.Vec, startPos, endPos r3.Vec, rot segmentRotation) {
	normalRot := rot.flat
	if sw.smooth {
		normalRot = rot.start
	}
	for _, idx := range sw.p.Leading {
		vertices[idx] = r3.Add(rot.start.Rotate(sw.collapsed[idx]), startPos)
		normals[idx] = normalRot.Rotate(sw.t.Normals[idx])
	}
	if sw.smooth {
		normalRot = rot.end
	}
	for _, idx := range sw.p.Trailing {
		vertices[idx] = r3.Add(rot.end.Rotate(sw.collapsed[idx]), endPos)
		normals[idx] = normalRot.Rotate(sw.t.Normals[idx])
	}
}
