package waveguide

import (
	"fmt"

	"github.com/cfinazzi/optopath"
)

// Coupler fabricates both arms of a directional coupler from one parameter
// set: two waveguides one pitch apart, bending towards each other into the
// configured coupling gap, centered on the chip. It returns the arms with
// their trajectories already closed.
func Coupler(p Parameters) (arm1, arm2 *Waveguide, err error) {
	p.YInit = p.YInit.Or(optopath.Of(0))
	w1, err := New(p)
	if err != nil {
		return nil, nil, err
	}
	w2, err := New(secondArm(p))
	if err != nil {
		return nil, nil, err
	}
	dy, err := p.DyBend()
	if err != nil {
		return nil, nil, err
	}
	if err := buildCouplerArm(w1, dy); err != nil {
		return nil, nil, err
	}
	if err := buildCouplerArm(w2, -dy); err != nil {
		return nil, nil, err
	}
	return w1, w2, nil
}

// CouplerMulti is Coupler with adjacent-scan arms.
func CouplerMulti(p Parameters, adjScan int, shift optopath.Point) (arm1, arm2 *MultiScan, err error) {
	p.YInit = p.YInit.Or(optopath.Of(0))
	m1, err := NewMultiScan(p, adjScan, shift)
	if err != nil {
		return nil, nil, err
	}
	m2, err := NewMultiScan(secondArm(p), adjScan, shift)
	if err != nil {
		return nil, nil, err
	}
	dy, err := p.DyBend()
	if err != nil {
		return nil, nil, err
	}
	if err := buildCouplerArm(m1.Waveguide, dy); err != nil {
		return nil, nil, err
	}
	if err := buildCouplerArm(m2.Waveguide, -dy); err != nil {
		return nil, nil, err
	}
	return m1, m2, nil
}

// secondArm offsets the start of the upper arm by one pitch.
func secondArm(p Parameters) Parameters {
	y0, _ := p.YInit.Float()
	pitch, _ := p.Pitch.Float()
	p.YInit = optopath.Of(y0 + pitch)
	return p
}

// buildCouplerArm writes one arm: a straight lead to center the coupler on
// the chip, the coupler itself, and the straight lead out.
func buildCouplerArm(w *Waveguide, dy float64) error {
	dxc, err := w.param.DxCoupler()
	if err != nil {
		return err
	}
	x0, ok := w.param.XInit.Float()
	if !ok {
		return fmt.Errorf("%w: starting pose", ErrConfiguration)
	}
	lead := (w.param.SampleSize[0]-dxc)/2 - x0
	w.Start().
		Linear(optopath.P(lead, 0, 0)).
		SinCoupler(optopath.Of(dy)).
		Linear(optopath.P(lead, 0, 0))
	return w.End()
}
