package antenna

import (
	"math"
	"math/cmplx"

	"github.com/wiless/vlib"
)

// FieldAtPoint returns the coherent sum of the element contributions at point
//
//	sum_i 1/r_i * exp(-j*k*r_i + j*phi_i)
//
// The propagation phase is -k*r (exp(+jwt) time convention), matching the far-field array
// factor. The amplitude distance is floored at lamda/2pi, the phase uses the exact r.
// phases must hold one entry per element, the result is NaN when it holds fewer.
func FieldAtPoint(elements []Element, phases vlib.VectorF, freqHz float64, point vlib.Location3D) complex128 {
	if len(phases) < len(elements) {
		return cmplx.NaN()
	}
	k := 2 * math.Pi / GetLamda(freqHz)
	return fieldAtPoint(Locations(elements), phases, k, point.Cmplx())
}

// FieldAtAngle returns the far-field array factor towards bearing (degree)
//
//	sum_i exp(j*(k * p_i.u(bearing) + phi_i))
//
// with unit amplitudes and no distance falloff. As for FieldAtPoint, a short phases vector
// gives NaN.
func FieldAtAngle(elements []Element, phases vlib.VectorF, freqHz float64, bearing float64) complex128 {
	if len(phases) < len(elements) {
		return cmplx.NaN()
	}
	k := 2 * math.Pi / GetLamda(freqHz)
	return fieldAtAngle(Locations(elements), phases, k, Direction(bearing))
}

func fieldAtPoint(locations vlib.VectorC, phases vlib.VectorF, k float64, point complex128) complex128 {
	rmin := 1.0 / k
	var sum complex128
	for i, pos := range locations {
		r := cmplx.Abs(point - pos)
		amp := 1.0 / math.Max(r, rmin)
		sum += cmplx.Rect(amp, phases[i]-k*r)
	}
	return sum
}

func fieldAtAngle(locations vlib.VectorC, phases vlib.VectorF, k float64, u complex128) complex128 {
	var sum complex128
	for i, pos := range locations {
		sum += cmplx.Exp(complex(0, k*dot(pos, u)+phases[i]))
	}
	return sum
}
