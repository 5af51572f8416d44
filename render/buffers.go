package render

import (
	"errors"
	"math"

	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/sweep"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Buffers holds a mesh in the single precision layout expected by GPU
// vertex and index buffers.
type Buffers struct {
	Positions []ms3.Vec
	Normals   []ms3.Vec
	// UVs is empty if the mesh has no texture coordinates.
	UVs     []ms2.Vec
	Indices []uint32
}

// Buffers32 converts m to single precision buffers.
func Buffers32(m *sweep.Mesh) (Buffers, error) {
	if err := m.Validate(); err != nil {
		return Buffers{}, err
	}
	if int64(len(m.Vertices)) > math.MaxUint32 {
		return Buffers{}, errors.New("too many vertices for 32 bit indices")
	}
	b := Buffers{
		Positions: make([]ms3.Vec, len(m.Vertices)),
		Normals:   make([]ms3.Vec, len(m.Normals)),
		UVs:       make([]ms2.Vec, len(m.UVs)),
		Indices:   make([]uint32, len(m.Triangles)),
	}
	for i, v := range m.Vertices {
		b.Positions[i] = toVec32(v)
	}
	for i, n := range m.Normals {
		b.Normals[i] = toVec32(n)
	}
	for i, uv := range m.UVs {
		b.UVs[i] = toVec2_32(uv)
	}
	for i, idx := range m.Triangles {
		b.Indices[i] = uint32(idx)
	}
	return b, nil
}

func toVec32(v r3.Vec) ms3.Vec {
	return ms3.Vec{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

func toVec2_32(v r2.Vec) ms2.Vec {
	return ms2.Vec{X: float32(v.X), Y: float32(v.Y)}
}
