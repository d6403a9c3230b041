package beamforming

import (
	"math"

	"github.com/wiless/beamforming/antenna"
	"github.com/wiless/beamforming/pattern"
	"github.com/wiless/vlib"
)

// PatternMetric summarises the combined polar pattern of a System
type PatternMetric struct {
	Scenario     string
	NArrays      int
	NElements    int
	Bearing      float64 // steering bearing of the first array, degree
	PeakAngle    float64 // degree
	Direction    string  // compass name of PeakAngle
	SidelobeDb   float64 // -Inf when the sampled range has no sidelobe
	BeamwidthDeg float64 // half power, NaN when the main lobe does not close
	Samples      []pattern.Sample
}

var compassPoints = [...]string{
	"North", "Northeast", "East", "Southeast", "South", "Southwest", "West", "Northwest",
}

// Compass names the 45 degree sector of a bearing, 0 is North and East is 90
func Compass(bearing float64) string {
	sector := int(math.Floor((antenna.Wrap0To360(bearing) + 22.5) / 45))
	return compassPoints[sector%len(compassPoints)]
}

// EvaluateMetric computes the pattern on angles and the figures displayed by the application.
// The main lobe is the one closest to the steering bearing of the first array. The mirror
// image of every beam behind its array is not counted as a sidelobe.
func (w System) EvaluateMetric(angles vlib.VectorF) (PatternMetric, error) {
	var result PatternMetric
	result.Scenario = w.Scenario.Name
	result.NArrays = len(w.Scenario.Arrays)
	var mirrors []float64
	for i, cfg := range w.Scenario.Arrays {
		result.NElements += cfg.N
		bearing := antenna.Wrap180To180(cfg.SteeringAngle + cfg.Rotation)
		if i == 0 {
			result.Bearing = bearing
		}
		mirrors = append(mirrors, antenna.Wrap180To180(180+cfg.Rotation-cfg.SteeringAngle))
	}

	samples, err := w.Pattern(angles)
	if err != nil {
		return result, err
	}
	result.Samples = samples
	lobes := pattern.MainLobe(samples, result.Bearing, mirrors...)
	result.PeakAngle = lobes.Peak.Angle
	result.Direction = Compass(result.PeakAngle)
	result.SidelobeDb = lobes.SidelobeDb
	result.BeamwidthDeg = math.NaN()
	if lobes.HasBeamwidth {
		result.BeamwidthDeg = lobes.BeamwidthDeg
	}
	return result, nil
}
