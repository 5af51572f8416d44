package render

import (
	"errors"
	"image"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"github.com/soypat/sweep"
	"github.com/soypat/sweep/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// ViewConfig positions the preview camera. The mesh is first fit into a
// bi-unit cube centered at the origin so the same view frames any mesh.
type ViewConfig struct {
	LookAt r3.Vec
	Up     r3.Vec
	Eye    r3.Vec
	Near   float64
	Far    float64
	// Fovy is the vertical field of view in degrees.
	Fovy float64
}

// DefaultView returns an isometric view of the bi-unit cube.
func DefaultView() ViewConfig {
	return ViewConfig{
		Up:   r3.Vec{Y: 1},
		Eye:  d3.Elem(2.4), // iso view.
		Near: 1,
		Far:  10,
		Fovy: 30,
	}
}

const (
	// supersampling factor of the rasterized image.
	previewScale = 2
	objectColor  = "#468966"
	clearColor   = "#FFF8E3"
)

// Preview rasterizes m with Phong shading into a width by height image.
func Preview(m *sweep.Mesh, view ViewConfig, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New("preview size must be positive")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	nt := m.TriangleCount()
	if nt == 0 {
		return nil, errors.New("empty mesh")
	}
	tris := make([]*fauxgl.Triangle, nt)
	for i := range tris {
		idx := m.Triangles[3*i : 3*i+3]
		tris[i] = &fauxgl.Triangle{
			V1: fauxVertex(m, idx[0]),
			V2: fauxVertex(m, idx[1]),
			V3: fauxVertex(m, idx[2]),
		}
	}
	mesh := fauxgl.NewTriangleMesh(tris)
	// fit mesh in a bi-unit cube centered at the origin
	mesh.BiUnitCube()

	var (
		eye    = fauxV(view.Eye)
		center = fauxV(view.LookAt)
		up     = fauxV(view.Up)
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize()
	)
	context := fauxgl.NewContext(width*previewScale, height*previewScale)
	context.ClearColorBufferWith(fauxgl.HexColor(clearColor))
	aspect := float64(width) / float64(height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(view.Fovy, aspect, view.Near, view.Far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = fauxgl.HexColor(objectColor)
	context.Shader = shader
	context.DrawMesh(mesh)
	// downsample image for antialiasing
	img := context.Image()
	return resize.Resize(uint(width), uint(height), img, resize.Bilinear), nil
}

// SavePreview renders m with Preview and writes it as a PNG file.
func SavePreview(path string, m *sweep.Mesh, view ViewConfig, width, height int) error {
	img, err := Preview(m, view, width, height)
	if err != nil {
		return err
	}
	return fauxgl.SavePNG(path, img)
}

func fauxV(v r3.Vec) fauxgl.Vector { return fauxgl.V(v.X, v.Y, v.Z) }

func fauxVertex(m *sweep.Mesh, idx int) fauxgl.Vertex {
	v := fauxgl.Vertex{
		Position: fauxV(m.Vertices[idx]),
		Normal:   fauxV(m.Normals[idx]),
	}
	if len(m.UVs) > 0 {
		uv := m.UVs[idx]
		v.Texture = fauxgl.V(uv.X, uv.Y, 0)
	}
	return v
}
