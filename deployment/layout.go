// Package deployment generates the centres of multi-array layouts and places array settings on them.
//
// Angles follow package antenna: bearings are clockwise from +y and a rotation by degree is a
// multiplication with antenna.GetEJtheta(degree).
package deployment

import (
	"math"

	log "github.com/sirupsen/logrus"
	"github.com/wiless/beamforming/antenna"
	"github.com/wiless/vlib"
)

// LinePoints returns N points spaced by spacing (metres) along the x-axis rotated by rotation
// degree, centred at centre
func LinePoints(centre complex128, spacing, rotation float64, N int) vlib.VectorC {
	if N <= 0 {
		return vlib.NewVectorC(0)
	}
	result := vlib.NewVectorC(N)
	pos := 0.0
	for i := 0; i < N; i++ {
		result[i] = complex(pos, 0)
		pos += spacing
	}
	result = result.ScaleC(antenna.GetEJtheta(rotation))

	mean := -vlib.MeanC(result) + centre
	return result.AddC(mean)
}

// CircularPoints returns N points equally spaced on a ring of radius around centre, the first
// one at bearing offset degree
func CircularPoints(centre complex128, radius, offset float64, N int) vlib.VectorC {
	if N <= 0 {
		return vlib.NewVectorC(0)
	}
	result := vlib.NewVectorC(N)
	step := 360.0 / float64(N)
	for i := 0; i < N; i++ {
		result[i] = complex(radius, 0)*antenna.Direction(offset+step*float64(i)) + centre
	}
	return result
}

// HexGrid returns the centres of N hexagonal cells with centre-to-centre distance isd, filled
// ring by ring around center. The grid is rotated by RDEGREE.
func HexGrid(N int, center vlib.Location3D, isd float64, RDEGREE float64) []vlib.Location3D {
	if N <= 0 {
		return nil
	}
	directions := []vlib.Location3D{{X: 1, Y: -1, Z: 0}, {X: 1, Y: 0, Z: -1}, {X: 0, Y: 1, Z: -1},
		{X: -1, Y: 1, Z: 0}, {X: -1, Y: 0, Z: 1}, {X: 0, Y: -1, Z: 1}}
	cubes := []vlib.Location3D{{}}
	for r := 1; len(cubes) < N; r++ {
		cube := directions[4].Scale3D(float64(r))
		for i := 0; i < 6 && len(cubes) < N; i++ {
			for j := 0; j < r && len(cubes) < N; j++ {
				cubes = append(cubes, cube)
				cube = directions[i].Shift3D(cube)
			}
		}
	}

	rotate := antenna.GetEJtheta(RDEGREE)
	result := make([]vlib.Location3D, N)
	for i, cube := range cubes {
		result[i] = vlib.FromCmplx(cube2XY(cube, isd)*rotate + center.Cmplx())
	}
	return result
}

// cube2XY maps cube coordinates of a hex grid with centre distance isd to x+jy
func cube2XY(cube vlib.Location3D, isd float64) complex128 {
	x := isd * (cube.X + cube.Z*0.5)
	y := isd * math.Sqrt(3) / 2 * cube.Z
	return complex(x, y)
}

// Locations3D converts x+jy points to locations on the z=0 plane
func Locations3D(points vlib.VectorC) []vlib.Location3D {
	result := make([]vlib.Location3D, len(points))
	for i, p := range points {
		result[i] = vlib.FromCmplx(p)
	}
	return result
}

// Place returns one copy of cfg centred at each point
func Place(cfg antenna.SettingArray, points []vlib.Location3D) []antenna.SettingArray {
	result := make([]antenna.SettingArray, len(points))
	for i, p := range points {
		result[i] = cfg
		result[i].Centre = vlib.Location3D{X: p.X, Y: p.Y}
	}
	log.Debugf("deployment: placed %d arrays of %d elements", len(result), cfg.N)
	return result
}

// PlaceFacing is Place with every array rotated so that its broadside points at target.
// An array placed on target keeps the rotation of cfg.
func PlaceFacing(cfg antenna.SettingArray, points []vlib.Location3D, target vlib.Location3D) []antenna.SettingArray {
	result := Place(cfg, points)
	for i := range result {
		v := target.Cmplx() - result[i].Centre.Cmplx()
		if v == 0 {
			continue
		}
		result[i].Rotation = antenna.Bearing(v)
	}
	return result
}
