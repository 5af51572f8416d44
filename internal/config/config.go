// Package config handles loading and validating sweep job files.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/soypat/sweep"
	"github.com/soypat/sweep/curve"
	"github.com/soypat/sweep/internal/logger"
	"github.com/soypat/sweep/profile"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Config holds a complete extrusion job.
type Config struct {
	Extrude sweep.Config  `yaml:"extrude"`
	Curve   CurveConfig   `yaml:"curve"`
	Profile ProfileConfig `yaml:"profile"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// Curve kinds.
const (
	CurvePolyline = "polyline"
	CurveBezier   = "bezier"
)

// CurveConfig describes the path to extrude along.
type CurveConfig struct {
	Kind string `yaml:"kind"` // polyline or bezier
	// Knots of the curve. Polylines ignore the tangent handles.
	Knots     []curve.BezierKnot `yaml:"knots"`
	Transform TransformConfig    `yaml:"transform"`
}

// TransformConfig is the transform of the object owning the curve,
// relative to Parent when one is set.
type TransformConfig struct {
	Position r3.Vec `yaml:"position"`
	// Rotation holds Euler angles in degrees.
	Rotation r3.Vec           `yaml:"rotation"`
	Scale    r3.Vec           `yaml:"scale"`
	Parent   *TransformConfig `yaml:"parent,omitempty"`
}

// Profile kinds.
const (
	ProfilePolygon = "polygon"
	ProfileNagon   = "nagon"
	ProfileRect    = "rect"
	ProfileMesh    = "mesh"
)

// ProfileConfig describes the cross-section template. Polygon, nagon and
// rect profiles are extruded Depth units along Z. Mesh profiles are loaded
// from the template file at Path.
type ProfileConfig struct {
	Kind   string   `yaml:"kind"`
	Points []r2.Vec `yaml:"points"`
	Sides  int      `yaml:"sides"`
	Radius float64  `yaml:"radius"`
	Width  float64  `yaml:"width"`
	Height float64  `yaml:"height"`
	Depth  float64  `yaml:"depth"`
	Path   string   `yaml:"path"`
}

// OutputConfig holds output file paths. Empty paths are not written.
type OutputConfig struct {
	STL           string `yaml:"stl"`
	OBJ           string `yaml:"obj"`
	PNG           string `yaml:"png"`
	PreviewWidth  int    `yaml:"preview_width"`
	PreviewHeight int    `yaml:"preview_height"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a job extruding a unit square 100 units along X.
func Default() *Config {
	extrude := sweep.DefaultConfig()
	// Generated profiles run along Z.
	extrude.Axis = sweep.AxisZ
	return &Config{
		Extrude: extrude,
		Curve: CurveConfig{
			Kind: CurvePolyline,
			Knots: []curve.BezierKnot{
				{Position: r3.Vec{}},
				{Position: r3.Vec{X: 100}},
			},
			Transform: TransformConfig{Scale: r3.Vec{X: 1, Y: 1, Z: 1}},
		},
		Profile: ProfileConfig{
			Kind:   ProfileRect,
			Width:  1,
			Height: 1,
			Depth:  1,
		},
		Output: OutputConfig{
			STL:           "sweep.stl",
			PreviewWidth:  800,
			PreviewHeight: 600,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks the job is complete. It does not build the curve or the
// profile, so errors in their geometry are reported by Build.
func (c *Config) Validate() error {
	var errs []error
	if !(c.Extrude.Interval > 0) {
		errs = append(errs, fmt.Errorf("extrude.extrusion_interval must be positive, got %g", c.Extrude.Interval))
	}
	if c.Extrude.Workers < 0 {
		errs = append(errs, errors.New("extrude.workers must not be negative"))
	}
	switch strings.ToLower(c.Curve.Kind) {
	case CurvePolyline, CurveBezier:
	default:
		errs = append(errs, fmt.Errorf("unknown curve kind %q", c.Curve.Kind))
	}
	if len(c.Curve.Knots) < 2 {
		errs = append(errs, fmt.Errorf("curve needs at least 2 knots, got %d", len(c.Curve.Knots)))
	}
	for tr, name := &c.Curve.Transform, "curve.transform"; tr != nil; tr, name = tr.Parent, name+".parent" {
		if s := tr.Scale; s.X == 0 || s.Y == 0 || s.Z == 0 {
			errs = append(errs, fmt.Errorf("%s.scale has zero component %v", name, s))
		}
	}
	if err := c.Profile.validate(); err != nil {
		errs = append(errs, err)
	}
	o := c.Output
	if o.STL == "" && o.OBJ == "" && o.PNG == "" {
		errs = append(errs, errors.New("no output file configured"))
	}
	if o.PNG != "" && (o.PreviewWidth <= 0 || o.PreviewHeight <= 0) {
		errs = append(errs, fmt.Errorf("invalid preview size %dx%d", o.PreviewWidth, o.PreviewHeight))
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (p *ProfileConfig) validate() error {
	switch strings.ToLower(p.Kind) {
	case ProfilePolygon:
		if len(p.Points) < 3 {
			return fmt.Errorf("polygon profile needs at least 3 points, got %d", len(p.Points))
		}
	case ProfileNagon:
		if p.Sides < 3 {
			return fmt.Errorf("nagon profile needs at least 3 sides, got %d", p.Sides)
		}
	case ProfileRect:
	case ProfileMesh:
		if p.Path == "" {
			return errors.New("mesh profile needs a template path")
		}
		return nil
	default:
		return fmt.Errorf("unknown profile kind %q", p.Kind)
	}
	if !(p.Depth > 0) {
		return fmt.Errorf("profile depth must be positive, got %g", p.Depth)
	}
	return nil
}

// Build returns the curve described by c.
func (c *CurveConfig) Build() (sweep.Curve, error) {
	switch strings.ToLower(c.Kind) {
	case CurvePolyline:
		knots := make([]curve.Knot, len(c.Knots))
		for i, k := range c.Knots {
			knots[i] = curve.Knot{Position: k.Position, Up: k.Up}
		}
		return curve.NewPolyline(knots)
	case CurveBezier:
		return curve.NewBezier(c.Knots)
	}
	return nil, fmt.Errorf("unknown curve kind %q", c.Kind)
}

// World returns the transform applied to the curve, composed with the
// transforms of every parent.
func (t TransformConfig) World() sweep.Transform {
	local := sweep.ComposeTransform(t.Position, t.Scale, sweep.EulerRotation(t.Rotation))
	if t.Parent == nil {
		return local
	}
	return t.Parent.World().Mul(local)
}

// Build returns the cross-section template described by p.
func (p *ProfileConfig) Build() (*sweep.Template, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	var (
		pts []r2.Vec
		err error
	)
	switch strings.ToLower(p.Kind) {
	case ProfileMesh:
		return profile.Load(p.Path)
	case ProfilePolygon:
		pts = p.Points
	case ProfileNagon:
		pts, err = profile.Nagon(p.Sides, p.Radius)
	case ProfileRect:
		pts, err = profile.Rect(p.Width, p.Height)
	}
	if err != nil {
		return nil, err
	}
	return profile.Extrude(pts, p.Depth)
}
