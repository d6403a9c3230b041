package export

import (
	"math"
	"testing"

	"github.com/wiless/beamforming/pattern"
	"github.com/wiless/vlib"
)

func TestMapGridIsLogScaled(t *testing.T) {
	m := &pattern.IntensityMap{
		X:      vlib.VectorF{-1, 0, 1},
		Y:      vlib.VectorF{-2, 2},
		Values: vlib.MatrixF{{0, 0.25, 0.5}, {1, 0.75, 0}},
	}
	g := newMapGrid(m)
	if c, r := g.Dims(); c != 3 || r != 2 {
		t.Fatalf("Dims = %d, %d", c, r)
	}
	if g.X(2) != 1 || g.Y(0) != -2 {
		t.Errorf("X(2) = %v, Y(0) = %v", g.X(2), g.Y(0))
	}
	for r, row := range m.Values {
		for c, v := range row {
			want := math.Log1p(v) / math.Log1p(1)
			if got := g.Z(c, r); math.Abs(got-want) > 1e-12 {
				t.Errorf("Z(%d,%d) = %v, want %v", c, r, got, want)
			}
		}
	}
	if m.Values[0][1] != 0.25 {
		t.Error("newMapGrid changed the map")
	}
}
