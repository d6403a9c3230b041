package pattern

import (
	"errors"
	"fmt"
	"math"

	"github.com/wiless/vlib"
	"gonum.org/v1/gonum/floats"
)

// ErrInvalidGrid is returned for observation grids with no samples or bad extents
var ErrInvalidGrid = errors.New("invalid observation grid")

// Grid is a rectangular sampling grid, end points included. Extents are in metres.
type Grid struct {
	XMin, XMax float64
	NX         int
	YMin, YMax float64
	NY         int
}

// CentredGrid returns an n x n grid of half width halfWidth around centre
func CentredGrid(centre vlib.Location3D, halfWidth float64, n int) Grid {
	return Grid{
		XMin: centre.X - halfWidth, XMax: centre.X + halfWidth, NX: n,
		YMin: centre.Y - halfWidth, YMax: centre.Y + halfWidth, NY: n,
	}
}

func (g Grid) Validate() error {
	if g.NX < 1 || g.NY < 1 {
		return fmt.Errorf("%w: %dx%d samples", ErrInvalidGrid, g.NX, g.NY)
	}
	for _, v := range []float64{g.XMin, g.XMax, g.YMin, g.YMax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite extent %v", ErrInvalidGrid, v)
		}
	}
	if g.XMin > g.XMax || g.YMin > g.YMax {
		return fmt.Errorf("%w: extents [%v,%v]x[%v,%v]", ErrInvalidGrid, g.XMin, g.XMax, g.YMin, g.YMax)
	}
	return nil
}

// Xs returns the NX x-coordinates of the grid columns
func (g Grid) Xs() vlib.VectorF {
	return span(g.XMin, g.XMax, g.NX)
}

// Ys returns the NY y-coordinates of the grid rows
func (g Grid) Ys() vlib.VectorF {
	return span(g.YMin, g.YMax, g.NY)
}

// UniformAngles returns n bearings from start to stop (degree), both included
func UniformAngles(start, stop float64, n int) vlib.VectorF {
	return span(start, stop, n)
}

// FullCircle returns n bearings spanning -180..180 degree
func FullCircle(n int) vlib.VectorF {
	return UniformAngles(-180, 180, n)
}

func span(lo, hi float64, n int) vlib.VectorF {
	if n <= 0 {
		return vlib.NewVectorF(0)
	}
	result := vlib.NewVectorF(n)
	if n == 1 {
		result[0] = lo
		return result
	}
	floats.Span(result, lo, hi)
	return result
}
