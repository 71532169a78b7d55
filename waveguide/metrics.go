package waveguide

import (
	"github.com/cfinazzi/optopath"
)

// scanOverhead is the fixed per-pass overhead of the stage, in seconds:
// shutter actuation plus settling at the pass boundaries.
const scanOverhead = 0.5

// dedupedPoints returns the trajectory with consecutive duplicate points
// collapsed. Duplicates are legitimate in the instruction record (shutter
// toggles happen on stationary points) but poison finite differences.
func (w *Waveguide) dedupedPoints() []optopath.Point {
	pts := make([]optopath.Point, 0, len(w.x))
	for i := range w.x {
		p := optopath.Point{X: w.x[i], Y: w.y[i], Z: w.z[i]}
		if len(pts) > 0 && pts[len(pts)-1].Equal(p) {
			continue
		}
		pts = append(pts, p)
	}
	return pts
}

// CurvatureRadius estimates the local curvature radius along the
// trajectory by central differences on the deduplicated point record,
//
//	R = |r′|³ / |r′ × r″| ,
//
// one value per interior point. Straight stretches are capped rather than
// reported as infinite.
func (w *Waveguide) CurvatureRadius() []float64 {
	const rMax = 1e12
	pts := w.dedupedPoints()
	if len(pts) < 3 {
		return nil
	}
	out := make([]float64, 0, len(pts)-2)
	for i := 1; i < len(pts)-1; i++ {
		d1 := pts[i+1].Minus(pts[i-1]).Scaled(0.5)
		d2 := pts[i+1].Minus(pts[i].Scaled(2)).Plus(pts[i-1])
		num := d1.Norm()
		denom := d1.Cross(d2).Norm()
		if denom <= 1e-12 {
			out = append(out, rMax)
			continue
		}
		r := num * num * num / denom
		if r > rMax {
			r = rMax
		}
		out = append(out, r)
	}
	return out
}

// CmdRate is the instruction rate implied by each segment of the record:
// feed over segment length, in commands per second. Stationary segments
// are skipped.
func (w *Waveguide) CmdRate() []float64 {
	out := make([]float64, 0, w.Len())
	for i := 1; i < w.Len(); i++ {
		d := segmentLength(w, i)
		if optopath.Is0(d) {
			continue
		}
		out = append(out, w.f[i]/d)
	}
	return out
}

// Length is the open-shutter path length of the trajectory, the length of
// waveguide actually written in one pass.
func (w *Waveguide) Length() float64 {
	total := 0.0
	for i := 1; i < w.Len(); i++ {
		if w.s[i] == ShutterOpen {
			total += segmentLength(w, i)
		}
	}
	return total
}

// WTime estimates the fabrication time of the device in seconds: traversal
// time of the whole record at its per-segment feeds, plus a fixed overhead,
// times the number of passes.
func (w *Waveguide) WTime() float64 {
	t := scanOverhead
	for i := 1; i < w.Len(); i++ {
		t += segmentLength(w, i) / w.f[i]
	}
	return float64(w.param.Scan) * t
}

func segmentLength(w *Waveguide, i int) float64 {
	a := optopath.Point{X: w.x[i-1], Y: w.y[i-1], Z: w.z[i-1]}
	b := optopath.Point{X: w.x[i], Y: w.y[i], Z: w.z[i]}
	return a.Dist(b)
}
