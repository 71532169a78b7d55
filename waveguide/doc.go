// Package waveguide plans femtosecond-laser written optical waveguides as
// dense, kinematically valid point sequences for a motion-controlled
// fabrication stage.
/*

A waveguide is built with a fluent, validating builder: a trajectory is
started at a pose, grown by curve operations, and closed. Every operation
appends points with a feed rate and a shutter flag; the sampler bounds the
point density so that no segment implies an instruction rate above the
stage's command rate limit.

	p := waveguide.Default()
	p.Speed = optopath.Of(20)
	p.Radius = optopath.Of(25)
	p.Pitch = optopath.Of(0.127)
	p.IntDist = optopath.Of(0.005)

	wg := waveguide.MustNew(p)
	dy, _ := p.DyBend()
	wg.StartAt(optopath.P(-2, 0, 0.035)).
		Linear(optopath.P(p.LSafe, 0, 0)).
		SinMZI(optopath.Of(dy)).
		Linear(optopath.P(p.LSafe, 0, 0))
	if err := wg.End(); err != nil {
		// a failing operation never appends partial points; the trajectory
		// is left in its last valid state
	}

Curve primitives cover straight segments, circular arcs, sinusoidal and
spline bends, vertical bridges, directional couplers and Mach-Zehnder
interferometers. The adjacent-scan variant (MultiScan) replicates one
center-line into several laterally offset passes, fabricated from the
center outward.

Parameters left unset propagate as "unknown"; each operation validates the
parameters it actually consumes at call time and records the first error,
which End() and Err() surface.

BSD License

Copyright (c) Carlo Finazzi

All rights reserved.

Please refer to the license file for more information.
*/
package waveguide

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'waveguide'
func tracer() tracing.Trace {
	return tracing.Select("waveguide")
}
