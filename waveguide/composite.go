package waveguide

import (
	"fmt"
	"math"

	"github.com/cfinazzi/optopath"
)

// bendFunc is one of the S-bend primitives, with radius and feed resolved.
type bendFunc func(dy optopath.Scalar, options ...Option) *Waveguide

// coupler is the shared shape of a directional coupler: bend in, straight
// interaction region, bend out.
func (w *Waveguide) coupler(dy optopath.Scalar, bend bendFunc, options ...Option) *Waveguide {
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
	if _, _, err := SBendParams(dy, optopath.Of(r)); err != nil {
		return w.fail(err)
	}
	il, ok := o.intLength.Or(w.param.IntLength).Float()
	if !ok {
		return w.fail(fmt.Errorf("%w: interaction length", ErrConfiguration))
	}
	dyv, _ := dy.Float()
	sub := carryOver(o, r, f)
	bend(optopath.Of(dyv), sub...)
	w.Linear(optopath.P(math.Abs(il), 0, 0), sub...)
	bend(optopath.Of(-dyv), sub...)
	return w
}

// mzi is the shared shape of a Mach-Zehnder interferometer: two couplers
// joined by a straight arm.
func (w *Waveguide) mzi(dy optopath.Scalar, coupler bendFunc, options ...Option) *Waveguide {
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
	if _, _, err := SBendParams(dy, optopath.Of(r)); err != nil {
		return w.fail(err)
	}
	il, ok := o.intLength.Or(w.param.IntLength).Float()
	if !ok {
		return w.fail(fmt.Errorf("%w: interaction length", ErrConfiguration))
	}
	al, ok := o.armLength.Or(w.param.ArmLength).Float()
	if !ok {
		return w.fail(fmt.Errorf("%w: arm length", ErrConfiguration))
	}
	sub := append(carryOver(o, r, f), WithIntLength(il))
	coupler(dy, sub...)
	w.Linear(optopath.P(math.Abs(al), 0, 0), carryOver(o, r, f)...)
	coupler(dy, sub...)
	return w
}

// SinCoupler appends a directional coupler built from raised-cosine bends:
// a bend of throw dy, the interaction region, and the mirror bend back.
func (w *Waveguide) SinCoupler(dy optopath.Scalar, options ...Option) *Waveguide {
	return w.coupler(dy, w.SinBend, options...)
}

// ArcCoupler appends a directional coupler built from circular S-bends.
func (w *Waveguide) ArcCoupler(dy optopath.Scalar, options ...Option) *Waveguide {
	return w.coupler(dy, w.ArcBend, options...)
}

// SinMZI appends a Mach-Zehnder interferometer built from raised-cosine
// couplers.
func (w *Waveguide) SinMZI(dy optopath.Scalar, options ...Option) *Waveguide {
	return w.mzi(dy, w.SinCoupler, options...)
}

// ArcMZI appends a Mach-Zehnder interferometer built from circular
// couplers.
func (w *Waveguide) ArcMZI(dy optopath.Scalar, options ...Option) *Waveguide {
	return w.mzi(dy, w.ArcCoupler, options...)
}
