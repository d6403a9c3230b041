package scenario

import (
	"sort"

	"github.com/wiless/beamforming/antenna"
)

var presets = map[string]Scenario{
	"5G_urban_small_cell": {
		Name:        "5G_urban_small_cell",
		Description: "mmWave small cell, linear array at 28 GHz",
		Arrays: []antenna.SettingArray{
			{N: 16, ESpacingFactor: 0.4, FreqHz: 28e9},
		},
	},
	"medical_ultrasound_imaging": {
		Name:        "medical_ultrasound_imaging",
		Description: "curved imaging aperture",
		Arrays: []antenna.SettingArray{
			{N: 32, ESpacingFactor: 0.25, FreqHz: 7.5e9, CurveRadius: 15},
		},
	},
	"tumor_ablation_adaptive": {
		Name:        "tumor_ablation_adaptive",
		Description: "focused curved array at 2.45 GHz",
		Arrays: []antenna.SettingArray{
			{N: 32, ESpacingFactor: 0.5, FreqHz: 2.45e9, CurveRadius: 10},
		},
	},
}

// Presets returns the built-in scenarios sorted by name
func Presets() []Scenario {
	var result []Scenario
	for _, s := range presets {
		result = append(result, s.Clone())
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

func Preset(name string) (Scenario, bool) {
	s, ok := presets[name]
	if !ok {
		return Scenario{}, false
	}
	return s.Clone(), true
}
