// Package sweep generates triangle meshes by extruding a fixed cross-section
// template along a curve.
//
// The curve is sampled at a fixed arc-length interval, an orientation is
// computed for every sample and a copy of the template is stretched between
// each pair of consecutive samples. The curve itself is only consumed through
// the Curve interface; see package curve for implementations.
package sweep

import (
	"fmt"

	"go.uber.org/zap"
)

// Config holds the extrusion options.
type Config struct {
	// Axis is the template's local axis running through the profile. It
	// selects the leading and trailing rings and is flattened before the
	// profile is oriented along the curve.
	Axis Axis `yaml:"extrusion_axis"`
	// Interval is the world arc length between samples.
	Interval float64 `yaml:"extrusion_interval"`
	// SmoothFaces selects per-ring normals. When false every segment is
	// shaded as one facet.
	SmoothFaces bool `yaml:"smooth_faces"`
	// UseWorldUp suppresses roll by orienting against WorldUp instead of the
	// curve's up vector.
	UseWorldUp bool `yaml:"use_world_up"`
	// Workers is the number of goroutines writing segments. Values below 2
	// build sequentially.
	Workers int `yaml:"workers"`
}

// DefaultConfig returns the default extrusion options.
func DefaultConfig() Config {
	return Config{
		Axis:        AxisX,
		Interval:    10,
		SmoothFaces: true,
		UseWorldUp:  true,
		Workers:     1,
	}
}

// Extruder builds meshes from a curve and a template.
type Extruder struct {
	Config
	// Log receives degenerate frame warnings and build summaries. May be nil.
	Log *zap.Logger
}

// Result is the outcome of a successful build.
type Result struct {
	Mesh   *Mesh
	Frames int
	// DegenerateFrames counts rotations that were undefined and replaced
	// by the previous valid rotation.
	DegenerateFrames int
}

// Segments returns the number of extruded segments in the result.
func (r Result) Segments() int {
	if r.Frames < 2 {
		return 0
	}
	return r.Frames - 1
}

// Build samples c under the world transform and extrudes t along it.
// Builds are all-or-nothing: on error the returned Result is the zero value
// and callers should keep any mesh they already have.
func (e *Extruder) Build(c Curve, world Transform, t *Template) (Result, error) {
	log := e.Log
	if log == nil {
		log = zap.NewNop()
	}
	if c == nil {
		return Result{}, fmt.Errorf("%w: nil curve", ErrCurveEvaluation)
	}
	if !e.Axis.valid() {
		return Result{}, fmt.Errorf("invalid extrusion axis %d", int(e.Axis))
	}
	if err := t.Validate(); err != nil {
		return Result{}, err
	}
	frames, err := SampleByInterval(c, world, e.Interval)
	if err != nil {
		return Result{}, err
	}
	a := assembler{
		t:          t,
		axis:       e.Axis,
		smooth:     e.SmoothFaces,
		useWorldUp: e.UseWorldUp,
		workers:    e.Workers,
		log:        log,
	}
	m, degenerate, err := a.assemble(frames)
	if err != nil {
		return Result{}, err
	}
	res := Result{Mesh: m, Frames: len(frames), DegenerateFrames: degenerate}
	log.Debug("extruded mesh",
		zap.Int("frames", res.Frames),
		zap.Int("segments", res.Segments()),
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("triangles", m.TriangleCount()),
		zap.Int("degenerate", degenerate),
	)
	return res, nil
}
