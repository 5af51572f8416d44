package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/soypat/sweep"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Extrude.Axis != sweep.AxisZ {
		t.Errorf("expected Z extrusion axis, got %v", cfg.Extrude.Axis)
	}
	if cfg.Extrude.Interval != 10 {
		t.Errorf("expected interval 10, got %g", cfg.Extrude.Interval)
	}
	if !cfg.Extrude.SmoothFaces || !cfg.Extrude.UseWorldUp {
		t.Error("expected smooth faces and world up by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "job.yaml")

	yamlContent := `
extrude:
  extrusion_axis: x
  extrusion_interval: 2.5
  smooth_faces: false
  use_world_up: false
  workers: 4
curve:
  kind: bezier
  knots:
    - position: {x: 0, y: 0, z: 0}
      tangent_out: {x: 5, y: 0, z: 0}
    - position: {x: 10, y: 0, z: 10}
      tangent_in: {x: -5, y: 0, z: 0}
  transform:
    rotation: {x: 0, y: 90, z: 0}
profile:
  kind: nagon
  sides: 6
  radius: 0.5
  depth: 1
output:
  stl: out.stl
  png: out.png
logging:
  level: debug
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(&Flags{Config: configPath})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Extrude.Axis != sweep.AxisX {
		t.Errorf("expected X axis, got %v", cfg.Extrude.Axis)
	}
	if cfg.Extrude.Interval != 2.5 || cfg.Extrude.SmoothFaces || cfg.Extrude.UseWorldUp || cfg.Extrude.Workers != 4 {
		t.Errorf("extrude section not loaded: %+v", cfg.Extrude)
	}
	if cfg.Curve.Kind != CurveBezier || len(cfg.Curve.Knots) != 2 {
		t.Fatalf("curve not loaded: %+v", cfg.Curve)
	}
	if cfg.Curve.Knots[0].TangentOut != (r3.Vec{X: 5}) {
		t.Errorf("tangent handle not loaded: %v", cfg.Curve.Knots[0].TangentOut)
	}
	// Unspecified values keep their defaults.
	if cfg.Curve.Transform.Scale != (r3.Vec{X: 1, Y: 1, Z: 1}) {
		t.Errorf("scale default lost: %v", cfg.Curve.Transform.Scale)
	}
	if cfg.Output.PreviewWidth != 800 {
		t.Errorf("preview width default lost: %d", cfg.Output.PreviewWidth)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	c, err := cfg.Curve.Build()
	if err != nil {
		t.Fatal(err)
	}
	if l := c.Length(sweep.Transform{}); !(l > 14) {
		t.Errorf("bezier length %g shorter than its chord", l)
	}
	tmpl, err := cfg.Profile.Build()
	if err != nil {
		t.Fatal(err)
	}
	if err := tmpl.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "job.yaml")
	if err := os.WriteFile(configPath, []byte("extrude:\n  intervl: 3\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(&Flags{Config: configPath}); err == nil {
		t.Error("expected error on misspelled key")
	}
}

func TestFlagsOverride(t *testing.T) {
	var f Flags
	fs := flag.NewFlagSet("sweep", flag.ContinueOnError)
	f.Register(fs)
	err := fs.Parse([]string{"-debug", "-interval", "3", "-flat", "-roll", "-workers", "8", "-obj", "a.obj"})
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(&f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug level, got %s", cfg.Logging.Level)
	}
	e := cfg.Extrude
	if e.Interval != 3 || e.SmoothFaces || e.UseWorldUp || e.Workers != 8 {
		t.Errorf("flags not applied: %+v", e)
	}
	if cfg.Output.OBJ != "a.obj" || cfg.Output.STL != "sweep.stl" {
		t.Errorf("unexpected outputs: %+v", cfg.Output)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errSub string
	}{
		{"zero interval", func(c *Config) { c.Extrude.Interval = 0 }, "extrusion_interval"},
		{"curve kind", func(c *Config) { c.Curve.Kind = "nurbs" }, "curve kind"},
		{"one knot", func(c *Config) { c.Curve.Knots = c.Curve.Knots[:1] }, "knots"},
		{"zero scale", func(c *Config) { c.Curve.Transform.Scale.Y = 0 }, "scale"},
		{"profile kind", func(c *Config) { c.Profile.Kind = "star" }, "profile kind"},
		{"polygon points", func(c *Config) { c.Profile.Kind = ProfilePolygon }, "3 points"},
		{"mesh path", func(c *Config) { c.Profile.Kind = ProfileMesh }, "template path"},
		{"depth", func(c *Config) { c.Profile.Depth = 0 }, "depth"},
		{"no output", func(c *Config) { c.Output = OutputConfig{} }, "no output"},
		{"preview size", func(c *Config) { c.Output.PNG = "a.png"; c.Output.PreviewWidth = 0 }, "preview size"},
		{"log level", func(c *Config) { c.Logging.Level = "loud" }, "log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.errSub) {
				t.Errorf("error %q does not mention %q", err, tt.errSub)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "job.yaml")
	cfg := Default()
	cfg.Extrude.Axis = sweep.AxisY
	cfg.Curve.Transform.Position = r3.Vec{X: 1, Y: 2, Z: 3}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "extrusion_axis: \"Y\"") && !strings.Contains(string(data), "extrusion_axis: Y") {
		t.Errorf("axis not written as text:\n%s", data)
	}
	got, err := Load(&Flags{Config: path})
	if err != nil {
		t.Fatal(err)
	}
	if got.Extrude.Axis != sweep.AxisY || got.Curve.Transform.Position != cfg.Curve.Transform.Position {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestTransformWorld(t *testing.T) {
	tc := TransformConfig{
		Position: r3.Vec{X: 10},
		Rotation: r3.Vec{Y: 90},
		Scale:    r3.Vec{X: 2, Y: 2, Z: 2},
	}
	got := tc.World().Apply(r3.Vec{X: 1})
	// Scale to (2,0,0), rotate 90 degrees about Y to (0,0,-2), then translate.
	want := r3.Vec{X: 10, Z: -2}
	if r3.Norm(r3.Sub(got, want)) > 1e-9 {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTransformParent(t *testing.T) {
	child := TransformConfig{
		Position: r3.Vec{X: 1},
		Scale:    r3.Vec{X: 1, Y: 1, Z: 1},
		Parent: &TransformConfig{
			Position: r3.Vec{Y: 5},
			Rotation: r3.Vec{Z: 90},
			Scale:    r3.Vec{X: 2, Y: 2, Z: 2},
		},
	}
	// Child moves (1,0,0) to (2,0,0). The parent scales it to (4,0,0),
	// rotates it onto +Y and translates to (0,9,0).
	got := child.World().Apply(r3.Vec{X: 1})
	want := r3.Vec{Y: 9}
	if r3.Norm(r3.Sub(got, want)) > 1e-9 {
		t.Errorf("got %v, want %v", got, want)
	}

	cfg := Default()
	cfg.Curve.Transform.Parent = &TransformConfig{}
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "curve.transform.parent.scale") {
		t.Errorf("expected parent scale error, got %v", err)
	}
}

func TestCurveKindCase(t *testing.T) {
	cfg := Default()
	cfg.Curve.Kind = "PolyLine"
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	c, err := cfg.Curve.Build()
	if err != nil {
		t.Fatal(err)
	}
	if l := c.Length(sweep.Transform{}); l != 100 {
		t.Errorf("length %g, want 100", l)
	}
}
