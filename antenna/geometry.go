package antenna

import (
	"math"

	"github.com/wiless/vlib"
)

// Element is one radiator of an array, Index is its 0-based position in the array.
type Element struct {
	Index    int
	Location vlib.Location3D
}

func (e Element) Cmplx() complex128 {
	return e.Location.Cmplx()
}

// ElementPositions places the N elements of s in the global frame, index 0 at the local -x
// end of the array (start of the arc).
func ElementPositions(s SettingArray) ([]Element, error) {
	if err := s.validateGeometry(); err != nil {
		return nil, err
	}

	d := s.Spacing()
	var local vlib.VectorC
	switch s.Kind() {
	case CircularPhaseArray:
		local = dropArcNodes(s.N, d, s.CurveRadius)
	default:
		local = dropLinearNodes(s.N, d)
	}

	rotate := GetEJtheta(s.Rotation)
	centre := s.Centre.Cmplx()
	result := make([]Element, s.N)
	for i, pos := range local {
		result[i].Index = i
		result[i].Location = vlib.FromCmplx(pos*rotate + centre)
	}
	return result, nil
}

// Locations returns the element locations as x+jy
func Locations(elements []Element) vlib.VectorC {
	result := vlib.NewVectorC(len(elements))
	for i, e := range elements {
		result[i] = e.Cmplx()
	}
	return result
}

// Drops N nodes along the local x-axis spaced by d, centred at 0,0
func dropLinearNodes(N int, d float64) vlib.VectorC {
	result := vlib.NewVectorC(N)
	mid := float64(N-1) / 2.0
	for i := 0; i < N; i++ {
		result[i] = complex((float64(i)-mid)*d, 0)
	}
	return result
}

// Drops N nodes on an arc of given radius with straight-line distance d between neighbours.
// The chord joining the end nodes is centred at 0,0 and the arc bulges towards -y.
func dropArcNodes(N int, d, radius float64) vlib.VectorC {
	result := vlib.NewVectorC(N)
	step := arcStep(d, radius)
	mid := float64(N-1) / 2.0
	cosmax := math.Cos(mid * step)
	for i := 0; i < N; i++ {
		alpha := (float64(i) - mid) * step
		result[i] = complex(radius*math.Sin(alpha), radius*(cosmax-math.Cos(alpha)))
	}
	return result
}

// arcStep is the angle subtended by a chord d on a circle of the given radius
func arcStep(d, radius float64) float64 {
	return 2 * math.Asin(d/(2*radius))
}
