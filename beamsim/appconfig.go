package main

import (
	"fmt"
	"math"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// AppConfig holds the parameters of one beamsim run
type AppConfig struct {
	InDir  string
	OutDir string

	ScenarioDir  string // relative paths are resolved against InDir
	Scenario     string
	SeedDefaults bool
	Steering     float64 // NaN keeps the steering of the scenario

	Layout        string // "", "line", "ring" or "hex"
	LayoutCount   int
	LayoutSpacing float64 // metres, ring radius for "ring"
	FaceCentre    bool

	PolarSamples int
	GridPoints   int
	Workers      int

	Matlab   bool
	PNG      bool
	LogLevel string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ScenarioDir", "scenarios")
	v.SetDefault("Scenario", "5G_urban_small_cell")
	v.SetDefault("SeedDefaults", true)
	v.SetDefault("Steering", math.NaN())
	v.SetDefault("Layout", "")
	v.SetDefault("LayoutCount", 1)
	v.SetDefault("LayoutSpacing", 1.0)
	v.SetDefault("FaceCentre", false)
	v.SetDefault("PolarSamples", 721)
	v.SetDefault("GridPoints", 400)
	v.SetDefault("Workers", 0)
	v.SetDefault("Matlab", true)
	v.SetDefault("PNG", true)
	v.SetDefault("LogLevel", "info")
}

// ReadAppConfig reads config.{yaml,toml,json} from indir on top of the defaults. A missing
// config file is not an error.
func ReadAppConfig(indir string) (AppConfig, error) {
	v := viper.New()
	setDefaults(v)
	v.AddConfigPath(indir)
	v.SetConfigName("config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return AppConfig{}, fmt.Errorf("read config: %w", err)
		}
		log.Debugf("No config file in %s, using defaults", indir)
	} else {
		log.Infof("Using config %s", v.ConfigFileUsed())
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	cfg.InDir = indir
	if !filepath.IsAbs(cfg.ScenarioDir) {
		cfg.ScenarioDir = filepath.Join(indir, cfg.ScenarioDir)
	}
	return cfg, cfg.validate()
}

func (c AppConfig) validate() error {
	if c.PolarSamples < 2 {
		return fmt.Errorf("PolarSamples must be at least 2, got %d", c.PolarSamples)
	}
	if c.GridPoints < 2 {
		return fmt.Errorf("GridPoints must be at least 2, got %d", c.GridPoints)
	}
	switch c.Layout {
	case "", "line", "ring", "hex":
	default:
		return fmt.Errorf("unknown Layout %q", c.Layout)
	}
	if c.Layout != "" && c.LayoutCount < 1 {
		return fmt.Errorf("LayoutCount must be positive, got %d", c.LayoutCount)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}
