package export

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/wiless/beamforming/antenna"
	"github.com/wiless/beamforming/pattern"
	"github.com/wiless/vlib"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// PlotSize is the width and height of the saved images
var PlotSize = 6 * vg.Inch

// polarXYs places every sample at its bearing with the intensity as radius
func polarXYs(samples []pattern.Sample) plotter.XYs {
	pts := make(plotter.XYs, len(samples))
	for i, s := range samples {
		u := antenna.Direction(s.Angle)
		pts[i].X = s.Intensity * real(u)
		pts[i].Y = s.Intensity * imag(u)
	}
	return pts
}

// SavePolarPNG plots the pattern in polar form, 0 degree pointing up
func SavePolarPNG(fname, title string, samples []pattern.Sample) error {
	if len(samples) == 0 {
		return fmt.Errorf("export: no samples to plot in %s", fname)
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(polarXYs(samples))
	if err != nil {
		return err
	}
	p.Add(line)
	p.X.Min, p.X.Max = -1, 1
	p.Y.Min, p.Y.Max = -1, 1

	if err := p.Save(PlotSize, PlotSize, fname); err != nil {
		return err
	}
	log.Infof("Saved polar pattern to %s", fname)
	return nil
}

// mapGrid adapts an intensity map to plotter.GridXYZ, columns are x and rows are y
type mapGrid struct {
	x, y vlib.VectorF
	z    vlib.MatrixF
}

// newMapGrid holds the map values compressed by pattern.LogScale
func newMapGrid(m *pattern.IntensityMap) mapGrid {
	return mapGrid{x: m.X, y: m.Y, z: pattern.LogScale(m.Values)}
}

func (g mapGrid) Dims() (c, r int)   { return len(g.x), len(g.y) }
func (g mapGrid) Z(c, r int) float64 { return g.z[r][c] }
func (g mapGrid) X(c int) float64    { return g.x[c] }
func (g mapGrid) Y(r int) float64    { return g.y[r] }

// SaveHeatMapPNG plots the interference map on a log(1+x) scale
func SaveHeatMapPNG(fname, title string, m *pattern.IntensityMap) error {
	if m == nil || len(m.X) < 2 || len(m.Y) < 2 {
		return fmt.Errorf("export: interference map for %s needs at least 2x2 samples", fname)
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (m)"

	hm := plotter.NewHeatMap(newMapGrid(m), palette.Heat(64, 1))
	hm.Min, hm.Max = 0, 1
	p.Add(hm)

	if err := p.Save(PlotSize, PlotSize, fname); err != nil {
		return err
	}
	log.Infof("Saved interference map to %s", fname)
	return nil
}

// SaveGeometryPNG scatters the element locations, one series per array
func SaveGeometryPNG(fname, title string, elements [][]antenna.Element) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (m)"
	p.Add(plotter.NewGrid())

	var series []interface{}
	for i, arr := range elements {
		pts := make(plotter.XYs, len(arr))
		for j, e := range arr {
			pts[j].X, pts[j].Y = e.Location.X, e.Location.Y
		}
		series = append(series, fmt.Sprintf("array %d", i), pts)
	}
	if err := plotutil.AddScatters(p, series...); err != nil {
		return err
	}

	if err := p.Save(PlotSize, PlotSize, fname); err != nil {
		return err
	}
	log.Infof("Saved array geometry to %s", fname)
	return nil
}
