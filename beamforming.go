// Package beamforming ties the array engine to scenarios. A System is a value: every change
// returns a new System and leaves the receiver untouched.
package beamforming

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/wiless/beamforming/antenna"
	"github.com/wiless/beamforming/pattern"
	"github.com/wiless/beamforming/scenario"
	"github.com/wiless/vlib"
)

// DefaultGridPoints is the number of samples per axis of DefaultGrid
const DefaultGridPoints = 400

// DefaultGridWavelengths is the half width of DefaultGrid in wavelengths of the first array
const DefaultGridWavelengths = 10.0

type System struct {
	Scenario  scenario.Scenario
	Evaluator pattern.Evaluator
	// RequireArrays makes evaluations of a system without arrays fail with scenario.ErrValidation
	// instead of returning all-zero results.
	RequireArrays bool
}

func NewSystem(s scenario.Scenario) System {
	var result System
	result.Scenario = s.Clone()
	result.Evaluator = pattern.DefaultEvaluator
	return result
}

// Arrays returns a copy of the array settings
func (w System) Arrays() []antenna.SettingArray {
	return w.Scenario.Clone().Arrays
}

func (w System) Len() int {
	return len(w.Scenario.Arrays)
}

// Add returns a System with cfg appended. cfg is validated first.
func (w System) Add(cfg antenna.SettingArray) (System, error) {
	if err := cfg.Validate(); err != nil {
		return w, fmt.Errorf("add array: %w", err)
	}
	result := w
	result.Scenario = w.Scenario.Clone()
	result.Scenario.Arrays = append(result.Scenario.Arrays, cfg)
	log.Debugf("System: added %s array with %d elements at (%v,%v)", cfg.Kind(), cfg.N, cfg.Centre.X, cfg.Centre.Y)
	return result, nil
}

// Remove returns a System without array i. An index out of range is ignored.
func (w System) Remove(i int) System {
	result := w
	result.Scenario = w.Scenario.Clone()
	if i < 0 || i >= len(result.Scenario.Arrays) {
		return result
	}
	arrays := result.Scenario.Arrays
	result.Scenario.Arrays = append(arrays[:i:i], arrays[i+1:]...)
	return result
}

// SteerAll returns a System with every array steered to degree
func (w System) SteerAll(degree float64) (System, error) {
	if err := antenna.CheckSteeringAngle(degree); err != nil {
		return w, err
	}
	result := w
	result.Scenario = w.Scenario.Clone()
	for i := range result.Scenario.Arrays {
		result.Scenario.Arrays[i].SteeringAngle = degree
	}
	return result, nil
}

func (w System) check() error {
	if w.RequireArrays && len(w.Scenario.Arrays) == 0 {
		return fmt.Errorf("%w: scenario %q has no arrays", scenario.ErrValidation, w.Scenario.Name)
	}
	return nil
}

// Pattern returns the combined polar pattern of all arrays, peak normalized to 1.0
func (w System) Pattern(angles vlib.VectorF) ([]pattern.Sample, error) {
	if err := w.check(); err != nil {
		return nil, err
	}
	return w.Evaluator.CombinePolar(w.Scenario.Arrays, angles)
}

// InterferenceMap returns the combined near-field intensity of all arrays on grid
func (w System) InterferenceMap(grid pattern.Grid) (*pattern.IntensityMap, error) {
	if err := w.check(); err != nil {
		return nil, err
	}
	return w.Evaluator.CombineArrays(w.Scenario.Arrays, grid)
}

// DefaultGrid spans DefaultGridWavelengths wavelengths of the first array (1 GHz when there is
// none) on each side of the origin.
func (w System) DefaultGrid() pattern.Grid {
	lamda := antenna.GetLamda(1e9)
	if len(w.Scenario.Arrays) > 0 {
		lamda = w.Scenario.Arrays[0].Lamda()
	}
	return pattern.CentredGrid(vlib.Location3D{}, DefaultGridWavelengths*lamda, DefaultGridPoints)
}

// SteeringInfo returns the steering summary of every array, in order
func (w System) SteeringInfo() ([]antenna.SteeringInfo, error) {
	result := make([]antenna.SteeringInfo, 0, len(w.Scenario.Arrays))
	for i, cfg := range w.Scenario.Arrays {
		arr, err := antenna.NewArray(cfg)
		if err != nil {
			return nil, fmt.Errorf("array %d: %w", i, err)
		}
		result = append(result, arr.SteeringInfo())
	}
	return result, nil
}

// Elements returns the global element positions of every array
func (w System) Elements() ([][]antenna.Element, error) {
	result := make([][]antenna.Element, 0, len(w.Scenario.Arrays))
	for i, cfg := range w.Scenario.Arrays {
		elements, err := antenna.ElementPositions(cfg)
		if err != nil {
			return nil, fmt.Errorf("array %d: %w", i, err)
		}
		result = append(result, elements)
	}
	return result, nil
}
