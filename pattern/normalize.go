package pattern

import (
	"math"
	"math/cmplx"

	"github.com/wiless/vlib"
	"gonum.org/v1/gonum/floats"
)

// Intensity returns |z|^2 of every sample
func Intensity(field []complex128) vlib.VectorF {
	result := vlib.NewVectorF(len(field))
	for i, z := range field {
		a := cmplx.Abs(z)
		result[i] = a * a
	}
	return result
}

// IntensityGrid returns |z|^2 of every grid sample
func IntensityGrid(field [][]complex128) vlib.MatrixF {
	cols := 0
	if len(field) > 0 {
		cols = len(field[0])
	}
	result := vlib.NewMatrixF(len(field), cols)
	for j, row := range field {
		for i, z := range row {
			a := cmplx.Abs(z)
			result[j][i] = a * a
		}
	}
	return result
}

// Normalize returns a copy of v scaled to a peak of 1.0 and the original peak.
// A vector without positive values is returned as zeros.
func Normalize(v vlib.VectorF) (vlib.VectorF, float64) {
	result := vlib.NewVectorF(len(v))
	if len(v) == 0 {
		return result, 0
	}
	peak := floats.Max(v)
	if !(peak > 0) {
		return result, 0
	}
	copy(result, v)
	floats.Scale(1/peak, result)
	return result, peak
}

// NormalizeGrid scales a copy of m by its global maximum, see Normalize
func NormalizeGrid(m vlib.MatrixF) (vlib.MatrixF, float64) {
	cols := 0
	if len(m) > 0 {
		cols = len(m[0])
	}
	result := vlib.NewMatrixF(len(m), cols)
	peak := 0.0
	for _, row := range m {
		if len(row) > 0 {
			peak = math.Max(peak, floats.Max(row))
		}
	}
	if !(peak > 0) {
		return result, 0
	}
	for j, row := range m {
		for i, v := range row {
			result[j][i] = v / peak
		}
	}
	return result, peak
}

// ToDb converts linear power values to dB, values below floorDb are set to floorDb
func ToDb(v vlib.VectorF, floorDb float64) vlib.VectorF {
	result := vlib.NewVectorF(len(v))
	for i, x := range v {
		db := floorDb
		if x > 0 {
			db = math.Max(vlib.Db(x), floorDb)
		}
		result[i] = db
	}
	return result
}

// LogScale compresses an intensity map with log(1+x) and rescales it to a peak of 1.0,
// the display scaling of the interference map.
func LogScale(m vlib.MatrixF) vlib.MatrixF {
	cols := 0
	if len(m) > 0 {
		cols = len(m[0])
	}
	result := vlib.NewMatrixF(len(m), cols)
	for j, row := range m {
		for i, v := range row {
			result[j][i] = math.Log1p(v)
		}
	}
	scaled, _ := NormalizeGrid(result)
	return scaled
}

// Values returns the intensities of a polar pattern
func Values(samples []Sample) vlib.VectorF {
	result := vlib.NewVectorF(len(samples))
	for i, s := range samples {
		result[i] = s.Intensity
	}
	return result
}

// Angles returns the bearings of a polar pattern
func Angles(samples []Sample) vlib.VectorF {
	result := vlib.NewVectorF(len(samples))
	for i, s := range samples {
		result[i] = s.Angle
	}
	return result
}
