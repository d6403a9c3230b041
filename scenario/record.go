package scenario

import (
	"fmt"
	"math"
	"reflect"

	ms "github.com/mitchellh/mapstructure"
	"github.com/wiless/beamforming/antenna"
)

// arrayRecord is the on-disk form of one antenna.SettingArray
type arrayRecord struct {
	Elements        int       `json:"elements" yaml:"elements" toml:"elements" mapstructure:"elements"`
	Spacing         float64   `json:"spacing" yaml:"spacing" toml:"spacing" mapstructure:"spacing"` // wavelengths
	FrequencyHz     float64   `json:"frequency_hz" yaml:"frequency_hz" toml:"frequency_hz" mapstructure:"frequency_hz"`
	Position        []float64 `json:"position" yaml:"position,flow" toml:"position" mapstructure:"position"` // [x, y] metres
	CurvatureRadius float64   `json:"curvature_radius" yaml:"curvature_radius" toml:"curvature_radius" mapstructure:"curvature_radius"`
	Rotation        float64   `json:"rotation" yaml:"rotation" toml:"rotation" mapstructure:"rotation"`
	SteeringAngle   float64   `json:"steering_angle" yaml:"steering_angle" toml:"steering_angle" mapstructure:"steering_angle"`
}

type record struct {
	Name        string        `json:"name" yaml:"name" toml:"name" mapstructure:"name"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty" mapstructure:"description"`
	Arrays      []arrayRecord `json:"arrays" yaml:"arrays" toml:"arrays" mapstructure:"arrays"`
}

// legacyRecord is the single array scenario file of the desktop application, frequency in GHz
type legacyRecord struct {
	NumElements     int       `mapstructure:"num_elements"`
	ElementSpacing  float64   `mapstructure:"element_spacing"`
	Frequency       float64   `mapstructure:"frequency"`
	Position        []float64 `mapstructure:"position"`
	CurvedArray     bool      `mapstructure:"curved_array"`
	CurvatureRadius *float64  `mapstructure:"curvature_radius"`
}

const legacyRadius = 10.0

func newArrayRecord(s antenna.SettingArray) arrayRecord {
	r := arrayRecord{
		Elements:        s.N,
		Spacing:         s.ESpacingFactor,
		FrequencyHz:     s.FreqHz,
		Position:        []float64{s.Centre.X, s.Centre.Y},
		CurvatureRadius: s.CurveRadius,
		Rotation:        s.Rotation,
		SteeringAngle:   s.SteeringAngle,
	}
	// +Inf is a linear array too, and cannot be written to JSON
	if math.IsInf(r.CurvatureRadius, 1) {
		r.CurvatureRadius = 0
	}
	return r
}

func (r arrayRecord) setting() (antenna.SettingArray, error) {
	s := antenna.SettingArray{
		N:              r.Elements,
		ESpacingFactor: r.Spacing,
		FreqHz:         r.FrequencyHz,
		CurveRadius:    r.CurvatureRadius,
		Rotation:       r.Rotation,
		SteeringAngle:  r.SteeringAngle,
	}
	x, y, err := position(r.Position)
	s.Centre.X, s.Centre.Y = x, y
	return s, err
}

func newRecord(s Scenario) record {
	r := record{Name: s.Name, Description: s.Description}
	r.Arrays = make([]arrayRecord, len(s.Arrays))
	for i, a := range s.Arrays {
		r.Arrays[i] = newArrayRecord(a)
	}
	return r
}

func position(p []float64) (x, y float64, err error) {
	switch len(p) {
	case 0:
	case 1:
		x = p[0]
	case 2:
		x, y = p[0], p[1]
	default:
		err = fmt.Errorf("position must be [x, y], got %v", p)
	}
	return x, y, err
}

func decodeInto(input interface{}, result interface{}) error {
	decoder, err := ms.NewDecoder(&ms.DecoderConfig{
		DecodeHook:       ms.DecodeHookFuncKind(wholeNumber),
		WeaklyTypedInput: true,
		Result:           result,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

// wholeNumber rejects a fractional value decoded into an integer field, e.g. elements: 12.7
func wholeNumber(from, to reflect.Kind, data interface{}) (interface{}, error) {
	if to != reflect.Int {
		return data, nil
	}
	var v float64
	switch from {
	case reflect.Float64:
		v = data.(float64)
	case reflect.Float32:
		v = float64(data.(float32))
	default:
		return data, nil
	}
	if v != math.Trunc(v) {
		return nil, fmt.Errorf("%v is not a whole number", v)
	}
	return data, nil
}

// fromMap converts a decoded scenario file. Array fields missing in the file take the
// antenna.SettingArray defaults.
func fromMap(raw map[string]interface{}) (Scenario, error) {
	if _, ok := raw["num_elements"]; ok {
		return fromLegacy(raw)
	}

	var s Scenario
	if err := decodeInto(raw["name"], &s.Name); err != nil {
		return s, fmt.Errorf("name: %w", err)
	}
	if err := decodeInto(raw["description"], &s.Description); err != nil {
		return s, fmt.Errorf("description: %w", err)
	}
	var items []map[string]interface{}
	if err := decodeInto(raw["arrays"], &items); err != nil {
		return s, fmt.Errorf("arrays: %w", err)
	}
	for i, item := range items {
		r := newArrayRecord(*antenna.NewSettingArray())
		r.Position = nil
		if err := decodeInto(item, &r); err != nil {
			return s, fmt.Errorf("array %d: %w", i, err)
		}
		a, err := r.setting()
		if err != nil {
			return s, fmt.Errorf("array %d: %w", i, err)
		}
		s.Arrays = append(s.Arrays, a)
	}
	return s, nil
}

func fromLegacy(raw map[string]interface{}) (Scenario, error) {
	radius := legacyRadius
	l := legacyRecord{
		NumElements:     8,
		ElementSpacing:  0.5,
		Frequency:       1.0,
		CurvatureRadius: &radius,
	}
	if err := decodeInto(raw, &l); err != nil {
		return Scenario{}, err
	}
	a := antenna.SettingArray{
		N:              l.NumElements,
		ESpacingFactor: l.ElementSpacing,
		FreqHz:         l.Frequency * 1e9,
	}
	if l.CurvedArray {
		a.CurveRadius = legacyRadius
		if l.CurvatureRadius != nil {
			a.CurveRadius = *l.CurvatureRadius
		}
	}
	x, y, err := position(l.Position)
	if err != nil {
		return Scenario{}, err
	}
	a.Centre.X, a.Centre.Y = x, y
	return New("", a), nil
}
