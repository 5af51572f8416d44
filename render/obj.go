package render

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/soypat/sweep"
)

// WriteOBJ writes m as a Wavefront OBJ object with positions, texture
// coordinates when present, and per-vertex normals.
func WriteOBJ(w io.Writer, m *sweep.Mesh) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if m.TriangleCount() == 0 {
		return errors.New("empty mesh")
	}
	bw := bufio.NewWriter(w)
	ff := func(f float64) string { return strconv.FormatFloat(f, 'g', 9, 64) }
	for _, v := range m.Vertices {
		fmt.Fprintf(bw, "v %s %s %s\n", ff(v.X), ff(v.Y), ff(v.Z))
	}
	for _, uv := range m.UVs {
		fmt.Fprintf(bw, "vt %s %s\n", ff(uv.X), ff(uv.Y))
	}
	for _, n := range m.Normals {
		fmt.Fprintf(bw, "vn %s %s %s\n", ff(n.X), ff(n.Y), ff(n.Z))
	}
	hasUV := len(m.UVs) > 0
	for i := 0; i < len(m.Triangles); i += 3 {
		// OBJ indices are 1-based.
		a, b, c := m.Triangles[i]+1, m.Triangles[i+1]+1, m.Triangles[i+2]+1
		if hasUV {
			fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
		} else {
			fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
		}
	}
	return bw.Flush()
}

// CreateOBJ writes m to an OBJ file at path.
func CreateOBJ(path string, m *sweep.Mesh) error {
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	defer fp.Close()
	if err = WriteOBJ(fp, m); err != nil {
		return err
	}
	return fp.Close()
}
