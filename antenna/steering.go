package antenna

import (
	"math"
	"math/cmplx"

	"github.com/wiless/vlib"
)

// SteeringInfo is what the application displays about the beam steering of one array
type SteeringInfo struct {
	SteeringAngle    float64      // degree
	ProgressivePhase float64      // radian between neighbouring elements of a linear array
	ElementPhases    vlib.VectorF // radian
	ElementSpacing   float64      // metres
	FreqHz           float64
	Lamda            float64 // metres
}

// PhaseOffsets returns the steering phase of each element (radian, same order as elements)
//
//	phi_i = -(2*pi/lamda) * (p_i - ref) . u(steering + rotation)
//
// steering is measured from the broadside of the array, rotation is the array rotation, so
// the sum is the bearing of the beam. The phases only depend on element locations and are
// used unchanged for linear and curved arrays.
func PhaseOffsets(elements []Element, steering, rotation, lamda float64, ref vlib.Location3D) (vlib.VectorF, error) {
	if err := CheckSteeringAngle(steering); err != nil {
		return nil, err
	}
	if !(lamda > 0) || math.IsInf(lamda, 1) {
		return nil, invalid("Lamda", lamda)
	}
	k := 2 * math.Pi / lamda
	u := Direction(steering + rotation)
	origin := ref.Cmplx()
	phases := vlib.NewVectorF(len(elements))
	for i, e := range elements {
		phases[i] = -k * dot(e.Cmplx()-origin, u)
	}
	return phases, nil
}

// FindWeights converts steering phases into unit complex weights exp(j*phase)
func FindWeights(phases vlib.VectorF) vlib.VectorC {
	weights := vlib.NewVectorC(len(phases))
	for i, p := range phases {
		weights[i] = cmplx.Exp(complex(0, p))
	}
	return weights
}

// ProgressivePhase is the phase step between neighbours of a linear array with spacing d
// steered to steering degree from broadside.
func ProgressivePhase(d, lamda, steering float64) float64 {
	return -2 * math.Pi / lamda * d * math.Sin(Radian(steering))
}
