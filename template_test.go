package sweep

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestPartitionByAxis(t *testing.T) {
	p := PartitionByAxis(unitSquare(), AxisX)
	if !equalInts(p.Leading, []int{0, 1}) || !equalInts(p.Trailing, []int{2, 3}) {
		t.Errorf("unit square partition %+v", p)
	}
	p = PartitionByAxis(tube(), AxisZ)
	if !equalInts(p.Leading, []int{0, 1, 2, 3}) || !equalInts(p.Trailing, []int{4, 5, 6, 7}) {
		t.Errorf("tube partition %+v", p)
	}
	// Vertices on the partition plane go to the trailing ring.
	onPlane := &Template{Vertices: []r3.Vec{{Y: -1}, {}, {Y: 1}}}
	p = PartitionByAxis(onPlane, AxisY)
	if !equalInts(p.Leading, []int{0}) || !equalInts(p.Trailing, []int{1, 2}) {
		t.Errorf("on-plane partition %+v", p)
	}
}

func TestPartitionTotal(t *testing.T) {
	for _, tmpl := range []*Template{unitSquare(), tube()} {
		for _, axis := range []Axis{AxisX, AxisY, AxisZ} {
			p := PartitionByAxis(tmpl, axis)
			if len(p.Leading)+len(p.Trailing) != len(tmpl.Vertices) {
				t.Errorf("axis %v: %d+%d indices for %d vertices", axis, len(p.Leading), len(p.Trailing), len(tmpl.Vertices))
			}
			seen := make(map[int]bool)
			for _, idx := range append(append([]int{}, p.Leading...), p.Trailing...) {
				if seen[idx] {
					t.Errorf("axis %v: index %d in both rings", axis, idx)
				}
				seen[idx] = true
			}
		}
	}
}

func TestCollapseAxis(t *testing.T) {
	vertices := tube().Vertices
	orig := append([]r3.Vec(nil), vertices...)
	for _, axis := range []Axis{AxisX, AxisY, AxisZ} {
		once := CollapseAxis(vertices, axis)
		twice := CollapseAxis(once, axis)
		for i := range once {
			if once[i] != twice[i] {
				t.Errorf("axis %v: collapse not idempotent at %d: %v != %v", axis, i, once[i], twice[i])
			}
			for j := 0; j < 3; j++ {
				got := [3]float64{once[i].X, once[i].Y, once[i].Z}[j]
				want := [3]float64{orig[i].X, orig[i].Y, orig[i].Z}[j]
				if j == int(axis) {
					want = 0
				}
				if got != want {
					t.Errorf("axis %v: vertex %d component %d = %g, want %g", axis, i, j, got, want)
				}
			}
		}
	}
	for i := range vertices {
		if vertices[i] != orig[i] {
			t.Fatal("CollapseAxis modified its argument")
		}
	}
}

func TestTemplateValidate(t *testing.T) {
	if err := unitSquare().Validate(); err != nil {
		t.Fatal(err)
	}
	var nilTemplate *Template
	if err := nilTemplate.Validate(); !errors.Is(err, ErrMissingTemplate) {
		t.Errorf("nil template: %v", err)
	}
	if err := (&Template{}).Validate(); !errors.Is(err, ErrMissingTemplate) {
		t.Errorf("empty template: %v", err)
	}
	tests := []struct {
		name   string
		modify func(*Template)
	}{
		{"normals", func(tm *Template) { tm.Normals = tm.Normals[:3] }},
		{"uvs", func(tm *Template) { tm.UVs = append(tm.UVs, r2.Vec{}) }},
		{"triangle multiple", func(tm *Template) { tm.Triangles = tm.Triangles[:5] }},
		{"index range", func(tm *Template) { tm.Triangles[4] = 4 }},
		{"negative index", func(tm *Template) { tm.Triangles[0] = -1 }},
		{"nan vertex", func(tm *Template) { tm.Vertices[2].Y = math.NaN() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := unitSquare()
			tt.modify(tm)
			if err := tm.Validate(); !errors.Is(err, ErrInvalidTemplate) {
				t.Errorf("want ErrInvalidTemplate, got %v", err)
			}
		})
	}
	// Texture coordinates are optional.
	tm := unitSquare()
	tm.UVs = nil
	if err := tm.Validate(); err != nil {
		t.Errorf("template without uvs: %v", err)
	}
}

func TestAxisText(t *testing.T) {
	for _, axis := range []Axis{AxisX, AxisY, AxisZ} {
		text, err := axis.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var got Axis
		if err := got.UnmarshalText(text); err != nil {
			t.Fatal(err)
		}
		if got != axis {
			t.Errorf("got %v, want %v", got, axis)
		}
	}
	var a Axis
	if err := a.UnmarshalText([]byte(" z ")); err != nil || a != AxisZ {
		t.Errorf("lowercase axis: %v %v", a, err)
	}
	if err := a.UnmarshalText([]byte("W")); err == nil {
		t.Error("expected error on unknown axis")
	}
	if _, err := Axis(5).MarshalText(); err == nil {
		t.Error("expected error marshaling invalid axis")
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
