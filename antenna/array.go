// Package antenna models a phased array unit made of isotropic point radiators: element
// placement (linear or circular arc), electronic steering phases and the complex field
// radiated by the elements.
//
// Conventions used throughout the package:
//   - lengths are in metres, the element spacing is given in wavelengths
//   - angles are in degree at the API, bearings are measured from +y (broadside of an
//     unrotated array) and are positive towards +x
//   - the array-local x-axis is the element baseline, local +y is broadside
package antenna

import (
	"math"
	"math/cmplx"

	log "github.com/sirupsen/logrus"
	"github.com/wiless/vlib"
)

// CSpeed is the speed of light in m/s
const CSpeed float64 = 299792458.0

type ArrayType int

const (
	LinearPhaseArray ArrayType = iota
	CircularPhaseArray
)

var ArrayTypes = [...]string{
	"LinearPhaseArray",
	"CircularPhaseArray",
}

func (a ArrayType) String() string {
	if int(a) < 0 || int(a) >= len(ArrayTypes) {
		return "Unknown-ArrayType"
	}
	return ArrayTypes[a]
}

// SettingArray describes one array unit. It is a plain value, the engine never modifies it.
type SettingArray struct {
	N              int             // number of elements
	ESpacingFactor float64         // element spacing in wavelengths
	FreqHz         float64         // carrier frequency
	Centre         vlib.Location3D // array centre in metres, Z is ignored
	CurveRadius    float64         // 0 or +Inf for a linear array, radius in metres otherwise
	Rotation       float64         // clockwise rotation of the array frame in degree
	SteeringAngle  float64         // degree from broadside, -180..180
}

func (s *SettingArray) SetDefault() {
	s.N = 8
	s.ESpacingFactor = 0.5
	s.FreqHz = 1.0e9
	s.Centre = vlib.Location3D{}
	s.CurveRadius = 0
	s.Rotation = 0
	s.SteeringAngle = 0
}

func NewSettingArray() *SettingArray {
	result := new(SettingArray)
	result.SetDefault()
	return result
}

// GetLamda returns the wavelength in metres for the frequency in Hz
func GetLamda(freqHz float64) float64 {
	return CSpeed / freqHz
}

func (s SettingArray) Lamda() float64 {
	return GetLamda(s.FreqHz)
}

// Spacing returns the physical element spacing in metres
func (s SettingArray) Spacing() float64 {
	return s.ESpacingFactor * s.Lamda()
}

// Kind derives the geometry from CurveRadius, 0 and +Inf are the linear sentinels.
func (s SettingArray) Kind() ArrayType {
	if s.CurveRadius == 0 || math.IsInf(s.CurveRadius, 1) {
		return LinearPhaseArray
	}
	return CircularPhaseArray
}

// Validate checks the geometry and the steering angle.
func (s SettingArray) Validate() error {
	if err := s.validateGeometry(); err != nil {
		return err
	}
	return CheckSteeringAngle(s.SteeringAngle)
}

func (s SettingArray) validateGeometry() error {
	if s.N < 2 {
		return invalid("N", float64(s.N))
	}
	if !(s.ESpacingFactor > 0) || math.IsInf(s.ESpacingFactor, 1) {
		return invalid("ESpacingFactor", s.ESpacingFactor)
	}
	if !(s.FreqHz > 0) || math.IsInf(s.FreqHz, 1) {
		return invalid("FreqHz", s.FreqHz)
	}
	if !isFinite(s.Centre.X) {
		return invalid("Centre.X", s.Centre.X)
	}
	if !isFinite(s.Centre.Y) {
		return invalid("Centre.Y", s.Centre.Y)
	}
	if !isFinite(s.Rotation) {
		return invalid("Rotation", s.Rotation)
	}
	if math.IsNaN(s.CurveRadius) || s.CurveRadius < 0 {
		return invalid("CurveRadius", s.CurveRadius)
	}
	if s.Kind() == CircularPhaseArray {
		d := s.Spacing()
		if d > 2*s.CurveRadius {
			return invalid("CurveRadius", s.CurveRadius)
		}
		// elements must not wrap onto each other around the circle
		if float64(s.N-1)*arcStep(d, s.CurveRadius) >= 2*math.Pi {
			return invalid("CurveRadius", s.CurveRadius)
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Array is an array unit built from a SettingArray: element locations and steering phases.
// An Array is immutable once created and safe for concurrent use.
type Array struct {
	Setting SettingArray

	lamda     float64
	k         float64
	elements  []Element
	locations vlib.VectorC
	phases    vlib.VectorF
}

// NewArray validates s and derives element locations and steering phases.
func NewArray(s SettingArray) (*Array, error) {
	elements, err := ElementPositions(s)
	if err != nil {
		return nil, err
	}
	phases, err := PhaseOffsets(elements, s.SteeringAngle, s.Rotation, s.Lamda(), s.Centre)
	if err != nil {
		return nil, err
	}
	a := &Array{
		Setting:   s,
		lamda:     s.Lamda(),
		elements:  elements,
		locations: Locations(elements),
		phases:    phases,
	}
	a.k = 2 * math.Pi / a.lamda

	log.WithFields(log.Fields{
		"type":     s.Kind(),
		"N":        s.N,
		"freqHz":   s.FreqHz,
		"steering": s.SteeringAngle,
	}).Debug("antenna: array created")
	return a, nil
}

func (a *Array) Lamda() float64 {
	return a.lamda
}

// Elements returns a copy of the element list
func (a *Array) Elements() []Element {
	result := make([]Element, len(a.elements))
	copy(result, a.elements)
	return result
}

// Phases returns a copy of the per-element steering phases in radian
func (a *Array) Phases() vlib.VectorF {
	result := vlib.NewVectorF(len(a.phases))
	copy(result, a.phases)
	return result
}

// Weights returns the complex excitation exp(j*phase) of each element
func (a *Array) Weights() vlib.VectorC {
	return FindWeights(a.phases)
}

// FieldAtPoint evaluates the coherent field of the array at a 2D location
func (a *Array) FieldAtPoint(point vlib.Location3D) complex128 {
	return fieldAtPoint(a.locations, a.phases, a.k, point.Cmplx())
}

// FieldAtAngle evaluates the far-field array factor towards bearing (degree)
func (a *Array) FieldAtAngle(bearing float64) complex128 {
	return fieldAtAngle(a.locations, a.phases, a.k, Direction(bearing))
}

// SteeringInfo summarises the steering parameters of the array
func (a *Array) SteeringInfo() SteeringInfo {
	d := a.Setting.Spacing()
	return SteeringInfo{
		SteeringAngle:    a.Setting.SteeringAngle,
		ProgressivePhase: ProgressivePhase(d, a.lamda, a.Setting.SteeringAngle),
		ElementPhases:    a.Phases(),
		ElementSpacing:   d,
		FreqHz:           a.Setting.FreqHz,
		Lamda:            a.lamda,
	}
}

// Gain returns |AF|^2 / N^2 towards bearing, 1.0 in the steered direction
func (a *Array) Gain(bearing float64) float64 {
	af := cmplx.Abs(a.FieldAtAngle(bearing)) / float64(len(a.elements))
	return af * af
}
