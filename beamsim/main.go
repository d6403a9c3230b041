// beamsim evaluates a stored beamforming scenario and writes its polar pattern, interference
// map and array geometry as a Matlab script and PNG images.
package main

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/wiless/beamforming"
	"github.com/wiless/beamforming/antenna"
	"github.com/wiless/beamforming/deployment"
	"github.com/wiless/beamforming/export"
	"github.com/wiless/beamforming/pattern"
	"github.com/wiless/beamforming/scenario"
	"github.com/wiless/vlib"
)

// checkDirs makes both directories absolute, creating outdir when needed
func checkDirs(indir, outdir string) (string, string, error) {
	finfo, err := os.Stat(indir)
	if err != nil {
		return "", "", fmt.Errorf("input dir: %w", err)
	}
	if !finfo.IsDir() {
		return "", "", fmt.Errorf("input dir %s is not a directory", indir)
	}
	if err := os.MkdirAll(outdir, 0o755); err != nil {
		return "", "", fmt.Errorf("output dir: %w", err)
	}
	indir, err = filepath.Abs(indir)
	if err != nil {
		return "", "", fmt.Errorf("input dir: %w", err)
	}
	outdir, err = filepath.Abs(outdir)
	if err != nil {
		return "", "", fmt.Errorf("output dir: %w", err)
	}
	log.Infof("INPUT directory : %s", indir)
	log.Infof("OUTPUT directory : %s", outdir)
	return indir, outdir, nil
}

func loadScenario(cfg AppConfig) (scenario.Scenario, error) {
	store, err := scenario.NewStore(cfg.ScenarioDir)
	if err != nil {
		return scenario.Scenario{}, err
	}
	if cfg.SeedDefaults {
		written, err := store.SeedDefaults()
		if err != nil {
			return scenario.Scenario{}, err
		}
		if len(written) > 0 {
			log.Infof("Seeded %d default scenarios in %s", len(written), cfg.ScenarioDir)
		}
	}
	s, err := store.Load(cfg.Scenario)
	if errors.Is(err, os.ErrNotExist) {
		if p, ok := scenario.Preset(cfg.Scenario); ok {
			log.Warnf("Scenario %q not in %s, using the built-in preset", cfg.Scenario, cfg.ScenarioDir)
			return p, nil
		}
		names, _ := store.List()
		return s, fmt.Errorf("%w (available: %v)", err, names)
	}
	return s, err
}

// applyLayout replaces the arrays of w by copies of its first array placed on the layout
func applyLayout(w beamforming.System, cfg AppConfig) beamforming.System {
	if cfg.Layout == "" || w.Len() == 0 {
		return w
	}
	base := w.Arrays()[0]
	centre := base.Centre
	var points []vlib.Location3D
	switch cfg.Layout {
	case "line":
		points = deployment.Locations3D(deployment.LinePoints(centre.Cmplx(), cfg.LayoutSpacing, base.Rotation, cfg.LayoutCount))
	case "ring":
		points = deployment.Locations3D(deployment.CircularPoints(centre.Cmplx(), cfg.LayoutSpacing, 0, cfg.LayoutCount))
	case "hex":
		points = deployment.HexGrid(cfg.LayoutCount, centre, cfg.LayoutSpacing, 0)
	}

	var arrays []antenna.SettingArray
	if cfg.FaceCentre {
		arrays = deployment.PlaceFacing(base, points, centre)
	} else {
		arrays = deployment.Place(base, points)
	}
	result := w
	result.Scenario = scenario.New(w.Scenario.Name, arrays...)
	result.Scenario.Description = w.Scenario.Description
	log.Infof("Layout %s: %d arrays", cfg.Layout, len(arrays))
	return result
}

func run(cfg AppConfig) (beamforming.PatternMetric, error) {
	s, err := loadScenario(cfg)
	if err != nil {
		return beamforming.PatternMetric{}, err
	}

	w := beamforming.NewSystem(s)
	w.RequireArrays = true
	if cfg.Workers > 0 {
		w.Evaluator = pattern.Evaluator{Workers: cfg.Workers}
	}
	if !math.IsNaN(cfg.Steering) {
		if w, err = w.SteerAll(cfg.Steering); err != nil {
			return beamforming.PatternMetric{}, err
		}
	}
	w = applyLayout(w, cfg)

	metric, err := w.EvaluateMetric(pattern.FullCircle(cfg.PolarSamples))
	if err != nil {
		return metric, err
	}
	grid := w.DefaultGrid()
	grid.NX, grid.NY = cfg.GridPoints, cfg.GridPoints
	m, err := w.InterferenceMap(grid)
	if err != nil {
		return metric, err
	}
	elements, err := w.Elements()
	if err != nil {
		return metric, err
	}

	log.WithFields(log.Fields{
		"scenario":   metric.Scenario,
		"arrays":     metric.NArrays,
		"elements":   metric.NElements,
		"peak":       metric.PeakAngle,
		"direction":  metric.Direction,
		"sidelobeDb": metric.SidelobeDb,
		"hpbw":       metric.BeamwidthDeg,
	}).Info("Pattern evaluated")

	base := filepath.Join(cfg.OutDir, scenario.SanitizeName(s.Name))
	if cfg.Matlab {
		fid, err := os.Create(base + ".m")
		if err != nil {
			return metric, err
		}
		err = export.WriteMatlab(fid, s.Name, metric.Samples, m, elements)
		if cerr := fid.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return metric, err
		}
		log.Infof("Saved Matlab script to %s.m", base)
	}
	if cfg.PNG {
		if err := export.SavePolarPNG(base+"_polar.png", s.Name, metric.Samples); err != nil {
			return metric, err
		}
		if err := export.SaveHeatMapPNG(base+"_map.png", s.Name, m); err != nil {
			return metric, err
		}
		if err := export.SaveGeometryPNG(base+"_geometry.png", s.Name, elements); err != nil {
			return metric, err
		}
	}
	return metric, nil
}

func main() {
	var indir, outdir, name string
	var steer float64
	flag.StringVar(&outdir, "outdir", ".", "Directory where all the output files are generated..")
	flag.StringVar(&indir, "indir", ".", "Directory where config and scenarios are read..")
	flag.StringVar(&name, "scenario", "", "Scenario to evaluate, overrides the config")
	flag.Float64Var(&steer, "steer", 0, "Steer every array to this angle (degree)")
	help := flag.Bool("help", false, "prints this help")
	verbose := flag.Bool("v", false, "Print debug logs")
	flag.Parse()

	if *help {
		flag.PrintDefaults()
		os.Exit(0)
	}

	indir, outdir, err := checkDirs(indir, outdir)
	if err != nil {
		log.Fatal(err)
	}
	cfg, err := ReadAppConfig(indir)
	if err != nil {
		log.Fatal(err)
	}
	cfg.OutDir = outdir
	if name != "" {
		cfg.Scenario = name
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "steer" {
			cfg.Steering = steer
		}
	})

	level, _ := log.ParseLevel(cfg.LogLevel)
	if *verbose {
		level = log.DebugLevel
	}
	log.SetLevel(level)

	if _, err := run(cfg); err != nil {
		log.Fatal(err)
	}
}
