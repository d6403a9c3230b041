package deployment

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/wiless/beamforming/antenna"
	"github.com/wiless/vlib"
)

func TestLinePoints(t *testing.T) {
	centre := complex(1, 2)
	pts := LinePoints(centre, 0.5, 0, 5)
	if len(pts) != 5 {
		t.Fatalf("got %d points", len(pts))
	}
	if cmplx.Abs(vlib.MeanC(pts)-centre) > 1e-12 {
		t.Errorf("mean %v, want %v", vlib.MeanC(pts), centre)
	}
	for i := 1; i < len(pts); i++ {
		if d := pts[i] - pts[i-1]; cmplx.Abs(d-0.5) > 1e-12 {
			t.Errorf("step %d = %v", i, d)
		}
	}
	// a clockwise quarter turn maps +x to -y
	rot := LinePoints(0, 1, 90, 2)
	if d := rot[1] - rot[0]; cmplx.Abs(d-complex(0, -1)) > 1e-12 {
		t.Errorf("rotated step = %v", d)
	}
	if len(LinePoints(0, 1, 0, 0)) != 0 {
		t.Error("expected no points")
	}
}

func TestCircularPoints(t *testing.T) {
	centre := complex(-3, 4)
	pts := CircularPoints(centre, 2, 0, 6)
	for i, p := range pts {
		if math.Abs(cmplx.Abs(p-centre)-2) > 1e-12 {
			t.Errorf("point %d at distance %v", i, cmplx.Abs(p-centre))
		}
	}
	if cmplx.Abs(pts[0]-(centre+2i)) > 1e-12 {
		t.Errorf("first point %v, want bearing 0", pts[0])
	}
	if cmplx.Abs(vlib.MeanC(pts)-centre) > 1e-12 {
		t.Errorf("ring not centred: %v", vlib.MeanC(pts))
	}
}

func TestHexGrid(t *testing.T) {
	centre := vlib.Location3D{X: 10, Y: -5}
	for _, N := range []int{1, 7, 19} {
		pts := HexGrid(N, centre, 100, 30)
		if len(pts) != N {
			t.Fatalf("HexGrid(%d) returned %d points", N, len(pts))
		}
		if pts[0] != centre {
			t.Errorf("first cell at %v, want %v", pts[0], centre)
		}
		minDist := math.Inf(1)
		for i := range pts {
			for j := i + 1; j < len(pts); j++ {
				minDist = math.Min(minDist, cmplx.Abs(pts[i].Cmplx()-pts[j].Cmplx()))
			}
		}
		if N > 1 && math.Abs(minDist-100) > 1e-9 {
			t.Errorf("N=%d: closest cells %v apart, want 100", N, minDist)
		}
	}
	for i, p := range HexGrid(7, centre, 100, 0)[1:] {
		if d := cmplx.Abs(p.Cmplx() - centre.Cmplx()); math.Abs(d-100) > 1e-9 {
			t.Errorf("first ring cell %d at %v", i, d)
		}
	}
}

func TestPlaceFacing(t *testing.T) {
	cfg := *antenna.NewSettingArray()
	cfg.Rotation = 12
	pts := Locations3D(CircularPoints(0, 5, 0, 4))
	pts = append(pts, vlib.Location3D{})
	arrays := PlaceFacing(cfg, pts, vlib.Location3D{})
	if len(arrays) != 5 {
		t.Fatalf("placed %d arrays", len(arrays))
	}
	for i, a := range arrays[:4] {
		if a.Centre.Cmplx() != pts[i].Cmplx() || a.N != cfg.N {
			t.Errorf("array %d: %+v", i, a)
		}
		towards := -a.Centre.Cmplx() / complex(cmplx.Abs(a.Centre.Cmplx()), 0)
		if cmplx.Abs(antenna.Direction(a.Rotation)-towards) > 1e-12 {
			t.Errorf("array %d broadside %v, want %v", i, antenna.Direction(a.Rotation), towards)
		}
	}
	if arrays[4].Rotation != 12 {
		t.Errorf("array on the target rotated to %v", arrays[4].Rotation)
	}
}
