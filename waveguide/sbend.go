package waveguide

import (
	"fmt"
	"math"

	"github.com/cfinazzi/optopath"
)

// SBendParams solves the geometry of a circular S-bend with lateral throw
// dy and curvature radius r: two tangent arcs of half-angle theta each,
// with
//
//	theta = arccos(1 - |dy| / (2r))
//	dx    = 2 r sin(theta)
//
// It returns the arc half-angle and the axial extent of the bend. Both
// inputs must be known; the radius must be positive and large enough to
// reach dy with real arcs.
func SBendParams(dy, radius optopath.Scalar) (theta, dx float64, err error) {
	dyv, ok := dy.Float()
	if !ok {
		return 0, 0, fmt.Errorf("%w: lateral displacement", ErrConfiguration)
	}
	r, ok := radius.Float()
	if !ok {
		return 0, 0, fmt.Errorf("%w: curvature radius", ErrConfiguration)
	}
	if r <= 0 {
		return 0, 0, fmt.Errorf("%w: curvature radius must be positive, got %g", ErrGeometry, r)
	}
	a := math.Abs(dyv) / (2 * r)
	if a > 1 {
		return 0, 0, fmt.Errorf("%w: radius %g too small for displacement %g", ErrGeometry, r, dyv)
	}
	theta = math.Acos(1 - a)
	dx = 2 * r * math.Sin(theta)
	return theta, dx, nil
}
