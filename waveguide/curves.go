package waveguide

import (
	"fmt"
	"math"

	"github.com/cfinazzi/optopath"
)

// subdivisions bounds the point density of a curve: enough samples that at
// feed f the stage never has to consume instructions faster than the
// command rate limit, and never fewer than two.
func (w *Waveguide) subdivisions(length, feed float64) int {
	n := int(math.Ceil(math.Abs(length) * float64(w.param.CmdRateMax) / feed))
	if n < 2 {
		n = 2
	}
	return n
}

// linspace returns n evenly spaced samples from a to b, inclusive.
func linspace(a, b float64, n int) []float64 {
	if n < 2 {
		return []float64{a}
	}
	out := make([]float64, n)
	step := (b - a) / float64(n-1)
	for i := range out {
		out[i] = a + float64(i)*step
	}
	out[n-1] = b
	return out
}

// Linear appends a straight segment described by a displacement from the
// current pose. A straight move needs no densification, so exactly one
// point is appended.
func (w *Waveguide) Linear(delta optopath.Point, options ...Option) *Waveguide {
	if !w.requireOpen() {
		return w
	}
	last, _ := w.LastPoint()
	return w.LinearTo(last.Plus(delta), options...)
}

// LinearTo appends a straight segment to an absolute pose.
func (w *Waveguide) LinearTo(pos optopath.Point, options ...Option) *Waveguide {
	if !w.requireOpen() {
		return w
	}
	o := makeOpts(options)
	f, err := w.feedRate(o)
	if err != nil {
		return w.fail(err)
	}
	w.appendPoint(pos.X, pos.Y, pos.Z, f, o.bit())
	return w
}

// Circ appends a circular arc in the writing plane, from angle aStart to
// aEnd (radians, counter-clockwise positive) on a circle of the resolved
// bend radius. The arc is anchored at the current pose: the pose sits at
// angle aStart on the circle, and elevation is held constant.
func (w *Waveguide) Circ(aStart, aEnd float64, options ...Option) *Waveguide {
	if !w.requireOpen() {
		return w
	}
	o := makeOpts(options)
	f, err := w.feedRate(o)
	if err != nil {
		return w.fail(err)
	}
	r, err := w.bendRadius(o)
	if err != nil {
		return w.fail(err)
	}
	last, _ := w.LastPoint()
	arcLen := math.Abs(aEnd-aStart) * r
	n := w.subdivisions(arcLen, f)
	bit := o.bit()
	for _, t := range linspace(aStart, aEnd, n) {
		x := last.X + r*(math.Cos(t)-math.Cos(aStart))
		y := last.Y + r*(math.Sin(t)-math.Sin(aStart))
		w.appendPoint(x, y, last.Z, f, bit)
	}
	return w
}

// ArcBend appends a circular S-bend with lateral throw dy: two tangent
// arcs, entering and leaving parallel to the writing axis.
func (w *Waveguide) ArcBend(dy optopath.Scalar, options ...Option) *Waveguide {
	if !w.requireOpen() {
		return w
	}
	o := makeOpts(options)
	f, err := w.feedRate(o)
	if err != nil {
		return w.fail(err)
	}
	r, err := w.bendRadius(o)
	if err != nil {
		return w.fail(err)
	}
	theta, _, err := SBendParams(dy, optopath.Of(r))
	if err != nil {
		return w.fail(err)
	}
	dyv, _ := dy.Float()
	sub := carryOver(o, r, f)
	if dyv >= 0 {
		return w.
			Circ(1.5*math.Pi, 1.5*math.Pi+theta, sub...).
			Circ(0.5*math.Pi+theta, 0.5*math.Pi, sub...)
	}
	return w.
		Circ(0.5*math.Pi, 0.5*math.Pi-theta, sub...).
		Circ(1.5*math.Pi-theta, 1.5*math.Pi, sub...)
}

// sinStep samples one raised-cosine excursion over an axial run dx. Each
// transverse coordinate completes omega half periods: with omega = 1 it
// lands displaced by its throw, with omega = 2 it peaks mid-run and
// returns.
func (w *Waveguide) sinStep(dyv, dzv, omegaY, omegaZ, dx, f float64, bit uint8) {
	if optopath.Is0(dx) {
		tracer().Debugf("sinusoidal bend over zero axial run, nothing to append")
		return
	}
	last, _ := w.LastPoint()
	chord := math.Sqrt(dx*dx + dyv*dyv + dzv*dzv)
	n := w.subdivisions(chord, f)
	for _, u := range linspace(0, dx, n) {
		x := last.X + u
		y := last.Y + 0.5*dyv*(1-math.Cos(omegaY*math.Pi*u/dx))
		z := last.Z + 0.5*dzv*(1-math.Cos(omegaZ*math.Pi*u/dx))
		w.appendPoint(x, y, z, f, bit)
	}
}

// sinAxialRun resolves the axial extent of a sinusoidal bend: an explicit
// override, or the extent of the equivalent circular S-bend.
func (w *Waveguide) sinAxialRun(o opts, throw float64) (float64, error) {
	if dx, ok := o.dispX.Float(); ok {
		return dx, nil
	}
	r, err := w.bendRadius(o)
	if err != nil {
		return 0, err
	}
	_, dx, err := SBendParams(optopath.Of(throw), optopath.Of(r))
	return dx, err
}

// SinBend appends a raised-cosine S-bend with lateral throw dy.
func (w *Waveguide) SinBend(dy optopath.Scalar, options ...Option) *Waveguide {
	return w.sinBend(dy, 1, options...)
}

// SinComp appends a compensated sinusoidal bend: the trajectory swings out
// to dy mid-bend and returns to its incoming lateral position.
func (w *Waveguide) SinComp(dy optopath.Scalar, options ...Option) *Waveguide {
	return w.sinBend(dy, 2, options...)
}

func (w *Waveguide) sinBend(dy optopath.Scalar, omegaY float64, options ...Option) *Waveguide {
	if !w.requireOpen() {
		return w
	}
	o := makeOpts(options)
	f, err := w.feedRate(o)
	if err != nil {
		return w.fail(err)
	}
	dyv, ok := dy.Float()
	if !ok {
		return w.fail(fmt.Errorf("%w: lateral displacement", ErrConfiguration))
	}
	dx, err := w.sinAxialRun(o, dyv)
	if err != nil {
		return w.fail(err)
	}
	w.sinStep(dyv, 0, omegaY, 1, dx, f, o.bit())
	return w
}

// SinBridge appends a sinusoidal bridge: a lateral S-bend combined with a
// vertical detour of height dz that returns to the incoming elevation. An
// unknown dz falls back to the configured bridge height.
func (w *Waveguide) SinBridge(dy, dz optopath.Scalar, options ...Option) *Waveguide {
	if !w.requireOpen() {
		return w
	}
	o := makeOpts(options)
	f, err := w.feedRate(o)
	if err != nil {
		return w.fail(err)
	}
	dyv, ok := dy.Float()
	if !ok {
		return w.fail(fmt.Errorf("%w: lateral displacement", ErrConfiguration))
	}
	dzv, ok := dz.Or(w.param.DzBridge).Float()
	if !ok {
		return w.fail(fmt.Errorf("%w: bridge height", ErrConfiguration))
	}
	dx, err := w.sinAxialRun(o, dyv)
	if err != nil {
		return w.fail(err)
	}
	w.sinStep(dyv, dzv, 1, 2, dx, f, o.bit())
	return w
}
