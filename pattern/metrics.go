package pattern

import (
	"math"

	"github.com/wiless/beamforming/antenna"
	"github.com/wiless/vlib"
)

// Lobes describes the main lobe of a sampled pattern
type Lobes struct {
	Peak         Sample
	Index        int     // index of Peak in the samples, -1 when empty
	SidelobeDb   float64 // highest remaining lobe relative to the peak, -Inf if none
	BeamwidthDeg float64 // half power width of the main lobe
	HasBeamwidth bool    // false when a side of the main lobe never drops below half power
}

// series walks a pattern by unbounded index k. Bearings that cover the full circle wrap
// around, with the angle unwrapped by 360 degree per turn. A repeated end point (-180 and
// 180) is dropped.
type series struct {
	s      []Sample
	m      int
	circle bool
}

func newSeries(samples []Sample) series {
	n := len(samples)
	r := series{s: samples, m: n}
	if n < 3 {
		return r
	}
	span := samples[n-1].Angle - samples[0].Angle
	step := span / float64(n-1)
	if !(step > 0) {
		return r
	}
	switch {
	case math.Abs(span-360) < 1e-6*step:
		r.m, r.circle = n-1, true
	case math.Abs(span+step-360) < 1e-6*step:
		r.circle = true
	}
	return r
}

func (r series) index(k int) int {
	if !r.circle {
		return k
	}
	return ((k % r.m) + r.m) % r.m
}

func (r series) at(k int) Sample {
	i := r.index(k)
	s := r.s[i]
	if r.circle {
		s.Angle += 360 * float64((k-i)/r.m)
	}
	return s
}

// bounds limits a walk starting at p to one turn
func (r series) bounds(p int) (lo, hi int) {
	if !r.circle {
		return 0, r.m - 1
	}
	return p - r.m + 1, p + r.m - 1
}

// lobe returns the range of k around p bounded by the first local minimum on each side
func (r series) lobe(p int) (left, right int) {
	lo, hi := r.bounds(p)
	left, right = p, p
	for left > lo && r.at(left-1).Intensity <= r.at(left).Intensity {
		left--
	}
	for right < hi && r.at(right+1).Intensity <= r.at(right).Intensity {
		right++
	}
	return left, right
}

func (r series) covers(left, right, i int) bool {
	if !r.circle {
		return i >= left && i <= right
	}
	if right-left+1 >= r.m {
		return true
	}
	return r.index(i-left) <= right-left
}

// climb moves from k to the nearest local maximum
func (r series) climb(k int) int {
	lo, hi := r.bounds(k)
	for {
		switch {
		case k > lo && r.at(k-1).Intensity > r.at(k).Intensity:
			k--
		case k < hi && r.at(k+1).Intensity > r.at(k).Intensity:
			k++
		default:
			return r.index(k)
		}
	}
}

// nearest returns the sample index whose bearing is closest to bearing
func (r series) nearest(bearing float64) int {
	best, dist := 0, math.Inf(1)
	for i := 0; i < r.m; i++ {
		if d := angleDistance(r.s[i].Angle, bearing); d < dist {
			best, dist = i, d
		}
	}
	return best
}

func angleDistance(a, b float64) float64 {
	return math.Abs(antenna.Wrap180To180(a - b))
}

// peakNear returns the index of the strongest sample. Samples within a relative 1e-9 of the
// maximum are ties and the one closest to bearing wins.
func (r series) peakNear(bearing float64) int {
	max := 0.0
	for i := 0; i < r.m; i++ {
		max = math.Max(max, r.s[i].Intensity)
	}
	tol := max * 1e-9
	best, dist := -1, math.Inf(1)
	for i := 0; i < r.m; i++ {
		if r.s[i].Intensity < max-tol {
			continue
		}
		if d := angleDistance(r.s[i].Angle, bearing); d < dist {
			best, dist = i, d
		}
	}
	return best
}

// MainLobe analyses the lobe of samples closest to bearing (normally the steering bearing).
// The lobes around the mirrors bearings are left out of the sidelobe search, e.g. the mirror
// image of the main beam behind a linear array. Bearings covering the full circle wrap around.
func MainLobe(samples []Sample, bearing float64, mirrors ...float64) Lobes {
	result := Lobes{Index: -1, SidelobeDb: math.Inf(-1)}
	if len(samples) == 0 {
		return result
	}
	r := newSeries(samples)
	p := r.peakNear(bearing)
	result.Index, result.Peak = p, samples[p]
	if !(result.Peak.Intensity > 0) {
		return result
	}

	type span struct{ left, right int }
	excluded := []span{}
	left, right := r.lobe(p)
	excluded = append(excluded, span{left, right})
	for _, b := range mirrors {
		q := r.climb(r.nearest(b))
		l, h := r.lobe(q)
		excluded = append(excluded, span{l, h})
	}

	side := 0.0
	for i := 0; i < r.m; i++ {
		skip := false
		for _, e := range excluded {
			if r.covers(e.left, e.right, i) {
				skip = true
				break
			}
		}
		if !skip {
			side = math.Max(side, samples[i].Intensity)
		}
	}
	if side > 0 {
		result.SidelobeDb = vlib.Db(side / result.Peak.Intensity)
	}

	result.BeamwidthDeg, result.HasBeamwidth = r.halfPower(p)
	return result
}

func (r series) halfPower(p int) (float64, bool) {
	peak := r.at(p)
	half := peak.Intensity / 2
	lo, hi := r.bounds(p)

	var left, right float64
	found := false
	for k := p; k > lo; k-- {
		if r.at(k-1).Intensity < half {
			left = crossing(r.at(k-1), r.at(k), half)
			found = true
			break
		}
	}
	if !found {
		return 0, false
	}
	found = false
	for k := p; k < hi; k++ {
		if r.at(k+1).Intensity < half {
			right = crossing(r.at(k), r.at(k+1), half)
			found = true
			break
		}
	}
	if !found {
		return 0, false
	}
	return right - left, true
}

// Peak returns the first sample with the largest intensity and its index, -1 if empty
func Peak(samples []Sample) (Sample, int) {
	if len(samples) == 0 {
		return Sample{}, -1
	}
	best := 0
	for i, s := range samples {
		if s.Intensity > samples[best].Intensity {
			best = i
		}
	}
	return samples[best], best
}

// SidelobeLevelDb returns the highest lobe outside the main lobe of the first peak relative to
// that peak in dB. -Inf when the sampled range holds no sidelobe.
func SidelobeLevelDb(samples []Sample) float64 {
	peak, _ := Peak(samples)
	return MainLobe(samples, peak.Angle).SidelobeDb
}

// HalfPowerBeamwidth returns the width in degree of the main lobe of the first peak at half
// the peak power, interpolating linearly between samples. ok is false when a side never drops
// below half.
func HalfPowerBeamwidth(samples []Sample) (width float64, ok bool) {
	peak, _ := Peak(samples)
	l := MainLobe(samples, peak.Angle)
	return l.BeamwidthDeg, l.HasBeamwidth
}

func crossing(a, b Sample, level float64) float64 {
	if a.Intensity == b.Intensity {
		return a.Angle
	}
	t := (level - a.Intensity) / (b.Intensity - a.Intensity)
	return a.Angle + t*(b.Angle-a.Angle)
}
