package waveguide

import (
	"fmt"

	"github.com/cfinazzi/optopath"
)

// Derivatives are boundary conditions for a derivative-matched bend: slope
// and curvature at its two ends.
type Derivatives struct {
	StartSlope     float64
	EndSlope       float64
	StartCurvature float64
	EndCurvature   float64
}

type opts struct {
	radius    optopath.Scalar
	speed     optopath.Scalar
	dispX     optopath.Scalar
	intLength optopath.Scalar
	armLength optopath.Scalar
	closed    bool
	yDeriv    Derivatives
	zDeriv    Derivatives
}

// Option customizes a single curve operation. Omitted options fall back to
// the waveguide's parameters.
type Option func(*opts)

// WithRadius overrides the bend radius for one operation.
func WithRadius(r float64) Option {
	return func(o *opts) { o.radius = optopath.Of(r) }
}

// WithSpeed overrides the feed rate for one operation.
func WithSpeed(f float64) Option {
	return func(o *opts) { o.speed = optopath.Of(f) }
}

// WithShutterClosed marks the operation as a travel move: the shutter stays
// closed and the closed-shutter speed applies unless overridden.
func WithShutterClosed() Option {
	return func(o *opts) { o.closed = true }
}

// WithDispX fixes the axial extent of a bend instead of deriving it from
// the bend radius.
func WithDispX(dx float64) Option {
	return func(o *opts) { o.dispX = optopath.Of(dx) }
}

// WithIntLength overrides the interaction length of a coupler.
func WithIntLength(il float64) Option {
	return func(o *opts) { o.intLength = optopath.Of(il) }
}

// WithArmLength overrides the arm length of an interferometer.
func WithArmLength(al float64) Option {
	return func(o *opts) { o.armLength = optopath.Of(al) }
}

// WithYDerivatives sets lateral boundary conditions for a spline bend.
func WithYDerivatives(d Derivatives) Option {
	return func(o *opts) { o.yDeriv = d }
}

// WithZDerivatives sets vertical boundary conditions for a spline bend.
func WithZDerivatives(d Derivatives) Option {
	return func(o *opts) { o.zDeriv = d }
}

func makeOpts(options []Option) opts {
	var o opts
	for _, opt := range options {
		opt(&o)
	}
	return o
}

func (o opts) bit() uint8 {
	if o.closed {
		return ShutterClosed
	}
	return ShutterOpen
}

// feedRate resolves the feed for one operation: per-call override first,
// then the parameter matching the shutter state.
func (w *Waveguide) feedRate(o opts) (float64, error) {
	fallback := w.param.Speed
	if o.closed {
		fallback = w.param.SpeedClosed
	}
	f, ok := o.speed.Or(fallback).Float()
	if !ok {
		return 0, fmt.Errorf("%w: feed rate", ErrConfiguration)
	}
	if f <= 0 {
		return 0, fmt.Errorf("%w: feed rate must be positive, got %g", ErrGeometry, f)
	}
	return f, nil
}

// bendRadius resolves the curvature radius for one operation.
func (w *Waveguide) bendRadius(o opts) (float64, error) {
	r, ok := o.radius.Or(w.param.Radius).Float()
	if !ok {
		return 0, fmt.Errorf("%w: curvature radius", ErrConfiguration)
	}
	if r <= 0 {
		return 0, fmt.Errorf("%w: curvature radius must be positive, got %g", ErrGeometry, r)
	}
	return r, nil
}

// carryOver builds the option list for the sub-operations of a composite
// curve, pinning the already resolved radius and feed.
func carryOver(o opts, r, f float64) []Option {
	sub := []Option{WithRadius(r), WithSpeed(f)}
	if o.closed {
		sub = append(sub, WithShutterClosed())
	}
	return sub
}
