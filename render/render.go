// Package render writes sweep meshes to files and images.
package render

import (
	"io"

	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/sweep"
)

// Renderer streams triangles of a model.
type Renderer interface {
	// ReadTriangles writes triangles into dst and returns the number written.
	// It returns io.EOF once all triangles have been read.
	ReadTriangles(dst []ms3.Triangle) (int, error)
}

type meshRenderer struct {
	m    *sweep.Mesh
	next int
}

// NewMeshRenderer returns a Renderer over the triangles of m.
func NewMeshRenderer(m *sweep.Mesh) Renderer {
	return &meshRenderer{m: m}
}

func (r *meshRenderer) ReadTriangles(dst []ms3.Triangle) (n int, err error) {
	if len(dst) == 0 {
		panic("cannot write to empty triangle slice")
	}
	nt := r.m.TriangleCount()
	if r.next >= nt {
		return 0, io.EOF
	}
	for n < len(dst) && r.next < nt {
		tri := r.m.Triangle(r.next)
		dst[n] = ms3.Triangle{toVec32(tri[0]), toVec32(tri[1]), toVec32(tri[2])}
		n++
		r.next++
	}
	return n, nil
}

// RenderAll reads the full contents of a Renderer and returns the slice read.
// It does not return error on io.EOF, like the io.ReadAll implementation.
func RenderAll(r Renderer) ([]ms3.Triangle, error) {
	var err error
	var nt int
	result := make([]ms3.Triangle, 0, 1<<12)
	buf := make([]ms3.Triangle, 1024)
	for {
		nt, err = r.ReadTriangles(buf)
		result = append(result, buf[:nt]...)
		if err != nil {
			break
		}
	}
	if err == io.EOF {
		return result, nil
	}
	return result, err
}
