// Command sweep extrudes a cross-section along a curve and writes the
// resulting mesh as STL, OBJ or a PNG preview.
//
// Usage:
//
//	sweep -config job.yaml [-interval 5] [-flat] [-roll] [-stl out.stl] [-save-config resolved.yaml]
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/soypat/sweep"
	"github.com/soypat/sweep/internal/config"
	"github.com/soypat/sweep/internal/d3"
	"github.com/soypat/sweep/internal/logger"
	"github.com/soypat/sweep/profile"
	"github.com/soypat/sweep/render"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "sweep: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var (
		flags      config.Flags
		profileOut string
	)
	fs := flag.NewFlagSet("sweep", flag.ContinueOnError)
	flags.Register(fs)
	fs.StringVar(&profileOut, "profile-out", "", "Write the cross-section template as YAML")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(&flags)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if flags.SaveConfig != "" {
		if err := cfg.SaveTo(flags.SaveConfig); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
	}

	var logFile logger.FileConfig
	if cfg.Logging.LogFile != "" {
		logFile = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	log, err := logger.New(cfg.Logging.Level, logFile, true)
	if err != nil {
		return err
	}
	defer logger.Sync(log)
	log.Sugar().Debugf("config: %+v", cfg)

	c, err := cfg.Curve.Build()
	if err != nil {
		return fmt.Errorf("building curve: %w", err)
	}
	tmpl, err := cfg.Profile.Build()
	if err != nil {
		return fmt.Errorf("building profile: %w", err)
	}
	if profileOut != "" {
		if err := writeTemplate(profileOut, tmpl); err != nil {
			return err
		}
	}

	e := sweep.Extruder{Config: cfg.Extrude, Log: log}
	res, err := e.Build(c, cfg.Curve.Transform.World(), tmpl)
	if err != nil {
		return err
	}
	bounds := d3.Box(res.Mesh.Bounds())
	log.Info("extruded mesh",
		zap.Int("frames", res.Frames),
		zap.Int("segments", res.Segments()),
		zap.Int("vertices", len(res.Mesh.Vertices)),
		zap.Int("triangles", res.Mesh.TriangleCount()),
		zap.Int("degenerate", res.DegenerateFrames),
		zap.Any("center", bounds.Center()),
		zap.Any("size", bounds.Size()),
	)
	return writeOutputs(log, cfg.Output, res.Mesh)
}

func writeOutputs(log *zap.Logger, out config.OutputConfig, m *sweep.Mesh) error {
	if out.STL != "" {
		if err := render.CreateSTL(out.STL, render.NewMeshRenderer(m)); err != nil {
			return fmt.Errorf("writing STL: %w", err)
		}
		log.Info("wrote STL", zap.String("path", out.STL))
	}
	if out.OBJ != "" {
		if err := render.CreateOBJ(out.OBJ, m); err != nil {
			return fmt.Errorf("writing OBJ: %w", err)
		}
		log.Info("wrote OBJ", zap.String("path", out.OBJ))
	}
	if out.PNG != "" {
		err := render.SavePreview(out.PNG, m, render.DefaultView(), out.PreviewWidth, out.PreviewHeight)
		if err != nil {
			return fmt.Errorf("writing preview: %w", err)
		}
		log.Info("wrote preview", zap.String("path", out.PNG))
	}
	return nil
}

func writeTemplate(path string, t *sweep.Template) error {
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	defer fp.Close()
	if err := profile.Encode(fp, t); err != nil {
		return fmt.Errorf("writing template: %w", err)
	}
	return fp.Close()
}
