// Package pattern combines the fields of several arrays coherently into a polar far-field
// pattern and a 2D interference map.
//
// Intensity is |E|^2 (power) of the complex sum over all arrays. Polar patterns are normalized
// to a peak of 1.0 over the sampled bearings, interference maps by their global maximum.
package pattern

import (
	"runtime"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/wiless/beamforming/antenna"
	"github.com/wiless/vlib"
)

// Sample is one point of a polar pattern, Angle is a bearing in degree
type Sample struct {
	Angle     float64
	Intensity float64
}

// IntensityMap is a normalized interference map. Values[j][i] belongs to (X[i], Y[j]).
type IntensityMap struct {
	Grid   Grid
	X, Y   vlib.VectorF
	Values vlib.MatrixF
	Peak   float64 // raw |E|^2 maximum used for the normalization
}

// Evaluator evaluates samples on a pool of Workers goroutines. Samples are independent and
// every sample is computed by the same code path, so results do not depend on Workers.
type Evaluator struct {
	Workers int
}

// DefaultEvaluator uses one worker per available CPU
var DefaultEvaluator = Evaluator{Workers: runtime.GOMAXPROCS(0)}

func buildArrays(configs []antenna.SettingArray) ([]*antenna.Array, error) {
	arrays := make([]*antenna.Array, len(configs))
	for i, cfg := range configs {
		arr, err := antenna.NewArray(cfg)
		if err != nil {
			log.WithError(err).Debugf("pattern: array %d rejected", i)
			return nil, err
		}
		arrays[i] = arr
	}
	return arrays, nil
}

// FieldPolar returns the coherent far-field sum over all arrays for every bearing
func (e Evaluator) FieldPolar(configs []antenna.SettingArray, angles vlib.VectorF) ([]complex128, error) {
	arrays, err := buildArrays(configs)
	if err != nil {
		return nil, err
	}
	field := make([]complex128, len(angles))
	e.run(len(angles), func(i int) {
		var sum complex128
		for _, arr := range arrays {
			sum += arr.FieldAtAngle(angles[i])
		}
		field[i] = sum
	})
	return field, nil
}

// FieldMap returns the coherent sum over all arrays at every grid point, indexed [y][x]
func (e Evaluator) FieldMap(configs []antenna.SettingArray, grid Grid) ([][]complex128, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	arrays, err := buildArrays(configs)
	if err != nil {
		return nil, err
	}
	xs, ys := grid.Xs(), grid.Ys()
	field := make([][]complex128, len(ys))
	e.run(len(ys), func(j int) {
		row := make([]complex128, len(xs))
		for i, x := range xs {
			p := vlib.Location3D{X: x, Y: ys[j]}
			var sum complex128
			for _, arr := range arrays {
				sum += arr.FieldAtPoint(p)
			}
			row[i] = sum
		}
		field[j] = row
	})
	return field, nil
}

// CombinePolar returns the (angle, intensity) pairs of the combined pattern, peak = 1.0.
// No configs gives an all-zero pattern.
func (e Evaluator) CombinePolar(configs []antenna.SettingArray, angles vlib.VectorF) ([]Sample, error) {
	field, err := e.FieldPolar(configs, angles)
	if err != nil {
		return nil, err
	}
	values, _ := Normalize(Intensity(field))
	samples := make([]Sample, len(angles))
	for i, a := range angles {
		samples[i] = Sample{Angle: a, Intensity: values[i]}
	}
	return samples, nil
}

// CombineArrays returns the interference map of all arrays normalized by its global maximum.
// No configs gives an all-zero map.
func (e Evaluator) CombineArrays(configs []antenna.SettingArray, grid Grid) (*IntensityMap, error) {
	field, err := e.FieldMap(configs, grid)
	if err != nil {
		return nil, err
	}
	values, peak := NormalizeGrid(IntensityGrid(field))
	return &IntensityMap{
		Grid:   grid,
		X:      grid.Xs(),
		Y:      grid.Ys(),
		Values: values,
		Peak:   peak,
	}, nil
}

// run calls fn(i) for i in [0,n), on e.Workers goroutines when Workers > 1
func (e Evaluator) run(n int, fn func(i int)) {
	workers := e.Workers
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	jobs := make(chan int, workers*2)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				fn(i)
			}
		}()
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
}

func FieldPolar(configs []antenna.SettingArray, angles vlib.VectorF) ([]complex128, error) {
	return DefaultEvaluator.FieldPolar(configs, angles)
}

func FieldMap(configs []antenna.SettingArray, grid Grid) ([][]complex128, error) {
	return DefaultEvaluator.FieldMap(configs, grid)
}

func CombinePolar(configs []antenna.SettingArray, angles vlib.VectorF) ([]Sample, error) {
	return DefaultEvaluator.CombinePolar(configs, angles)
}

func CombineArrays(configs []antenna.SettingArray, grid Grid) (*IntensityMap, error) {
	return DefaultEvaluator.CombineArrays(configs, grid)
}
