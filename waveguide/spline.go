package waveguide

import (
	"fmt"
	"math"

	"github.com/cfinazzi/optopath"
	"github.com/cfinazzi/optopath/polyn"
)

// splineSegment appends one quintic-Hermite bend over an axial run dx with
// lateral throw dyv and vertical throw dzv, matching the supplied boundary
// slopes and curvatures. The second-derivative boundary of the polynomial
// is half the supplied curvature.
func (w *Waveguide) splineSegment(dx, dyv, dzv, f float64, yd, zd Derivatives, bit uint8) {
	if optopath.Is0(dx) {
		tracer().Debugf("spline bend over zero axial run, nothing to append")
		return
	}
	last, _ := w.LastPoint()
	py, err := polyn.QuinticHermite(dx, 0, dyv,
		yd.StartSlope, yd.EndSlope,
		yd.StartCurvature/2, yd.EndCurvature/2)
	if err != nil {
		w.fail(fmt.Errorf("%w: %v", ErrGeometry, err))
		return
	}
	pz, err := polyn.QuinticHermite(dx, 0, dzv,
		zd.StartSlope, zd.EndSlope,
		zd.StartCurvature/2, zd.EndCurvature/2)
	if err != nil {
		w.fail(fmt.Errorf("%w: %v", ErrGeometry, err))
		return
	}
	chord := math.Sqrt(dx*dx + dyv*dyv + dzv*dzv)
	n := w.subdivisions(chord, f)
	for _, u := range linspace(0, dx, n) {
		w.appendPoint(last.X+u, last.Y+py.Eval(u), last.Z+pz.Eval(u), f, bit)
	}
}

// axialRun resolves the axial extent of a spline bend: an explicit
// override, or the extent of a circular S-bend spanning the combined
// transverse throw.
func (w *Waveguide) axialRun(o opts, dyv, dzv float64) (float64, error) {
	if dx, ok := o.dispX.Float(); ok {
		return dx, nil
	}
	r, err := w.bendRadius(o)
	if err != nil {
		return 0, err
	}
	_, dx, err := SBendParams(optopath.Of(math.Hypot(dyv, dzv)), optopath.Of(r))
	return dx, err
}

// Spline appends a quintic-Hermite bend with lateral throw dy and vertical
// throw dz. Both throws must be known; boundary slopes and curvatures
// default to zero and are set per axis with WithYDerivatives and
// WithZDerivatives.
func (w *Waveguide) Spline(dy, dz optopath.Scalar, options ...Option) *Waveguide {
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
	dzv, ok := dz.Float()
	if !ok {
		return w.fail(fmt.Errorf("%w: vertical displacement", ErrConfiguration))
	}
	dx, err := w.axialRun(o, dyv, dzv)
	if err != nil {
		return w.fail(err)
	}
	w.splineSegment(dx, dyv, dzv, f, o.yDeriv, o.zDeriv, o.bit())
	return w
}

// SplineBridge appends a smooth bridge built from two quintic bends: the
// trajectory climbs by dz over the first half while covering half the
// lateral throw, then descends back to the incoming elevation over the
// second half. Slope and curvature vanish at both outer ends and at the
// apex, so bridges concatenate without kinks.
func (w *Waveguide) SplineBridge(dy, dz optopath.Scalar, options ...Option) *Waveguide {
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
	dzv, ok := dz.Float()
	if !ok {
		return w.fail(fmt.Errorf("%w: vertical displacement", ErrConfiguration))
	}
	dx, err := w.axialRun(o, dyv, dzv)
	if err != nil {
		return w.fail(err)
	}
	bit := o.bit()
	w.splineSegment(dx, dyv/2, dzv, f, Derivatives{}, Derivatives{}, bit)
	if w.err != nil {
		return w
	}
	w.splineSegment(dx, dyv/2, -dzv, f, Derivatives{}, Derivatives{}, bit)
	return w
}
