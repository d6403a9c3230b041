package antenna

import (
	"math"
	"math/cmplx"
)

// Wrap180To180 wraps the input angle to -180 to 180
func Wrap180To180(degree float64) float64 {
	if degree >= -180 && degree <= 180 {
		return degree
	}
	return math.Remainder(degree, 360)
}

// Wrap0To360 wraps the input angle to [0,360)
func Wrap0To360(degree float64) float64 {
	degree = math.Mod(degree, 360)
	if degree < 0 {
		degree += 360
	}
	return degree
}

func Radian(degree float64) float64 {
	return degree * math.Pi / 180.0
}

func Degree(radian float64) float64 {
	return radian * 180.0 / math.Pi
}

// GetEJtheta returns exp(-j*degree), i.e. a clockwise rotation by degree when multiplied
// with a 2D location expressed as complex number.
func GetEJtheta(degree float64) complex128 {
	return cmplx.Exp(complex(0.0, -Radian(degree)))
}

// Direction returns the unit vector (as x+jy) for a bearing in degree.
// Bearings are measured from +y, positive towards +x (clockwise).
func Direction(bearing float64) complex128 {
	r := Radian(bearing)
	return complex(math.Sin(r), math.Cos(r))
}

// Bearing is the inverse of Direction for a non-zero vector
func Bearing(v complex128) float64 {
	return Degree(math.Atan2(real(v), imag(v)))
}

// CheckSteeringAngle rejects steering angles outside [-180,180]. Out of range values are
// never wrapped.
func CheckSteeringAngle(degree float64) error {
	if math.IsNaN(degree) || degree < -180 || degree > 180 {
		return &ConfigError{Field: "SteeringAngle", Value: degree, Err: ErrInvalidSteeringAngle}
	}
	return nil
}

func dot(a, b complex128) float64 {
	return real(a)*real(b) + imag(a)*imag(b)
}
