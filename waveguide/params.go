package waveguide

import (
	"fmt"

	"github.com/cfinazzi/optopath"
)

// Parameters is the configuration of one waveguide device. All lengths are
// in mm, speeds in mm/s. Optional fields are Scalars: an unknown value
// disables every operation that needs it, and each operation validates its
// own requirements at call time.
type Parameters struct {
	Scan        int             // number of passes over the same trajectory
	Speed       optopath.Scalar // feed rate with the shutter open
	SpeedClosed optopath.Scalar // travel feed rate with the shutter closed
	SpeedPos    optopath.Scalar // positioning feed rate for the seed move
	CmdRateMax  int             // stage command rate bound [1/s]
	AccMax      float64         // stage acceleration bound [mm/s²]
	XInit       optopath.Scalar // starting pose; unset = continue from record
	YInit       optopath.Scalar
	ZInit       optopath.Scalar // unset = write at Depth
	LSafe       float64         // safety travel length at the chip edges
	SampleSize  [2]float64      // chip footprint, width × height
	Depth       float64         // writing depth below the sample surface
	Radius      optopath.Scalar // default bend radius
	Pitch       optopath.Scalar // mode spacing
	PitchFA     optopath.Scalar // fiber array pitch
	IntDist     optopath.Scalar // coupling gap of a directional coupler
	IntLength   optopath.Scalar // straight interaction length
	ArmLength   optopath.Scalar // interferometer arm length
	LTrench     float64         // trench length beside a waveguide
	DzBridge    optopath.Scalar // default vertical bridge excursion
}

// Default returns the house parameter set. ZInit is left unknown here and
// resolved to Depth when a waveguide is created.
func Default() Parameters {
	return Parameters{
		Scan:        1,
		Speed:       optopath.Of(1.0),
		SpeedClosed: optopath.Of(5.0),
		SpeedPos:    optopath.Of(0.5),
		CmdRateMax:  1200,
		AccMax:      500,
		XInit:       optopath.Of(-2.0),
		YInit:       optopath.Of(0.0),
		LSafe:       2.0,
		SampleSize:  [2]float64{100, 50},
		Depth:       0.035,
		Radius:      optopath.Of(15),
		Pitch:       optopath.Of(0.080),
		PitchFA:     optopath.Of(0.127),
		IntLength:   optopath.Of(0.0),
		ArmLength:   optopath.Of(0.0),
		LTrench:     0.0,
		DzBridge:    optopath.Of(0.007),
	}
}

// normalized resolves dependent defaults: an unset writing elevation falls
// back to the nominal depth.
func (p Parameters) normalized() Parameters {
	p.ZInit = p.ZInit.Or(optopath.Of(p.Depth))
	return p
}

func (p Parameters) validate() error {
	if p.Scan < 1 {
		return fmt.Errorf("%w: scan count must be a whole number >= 1, got %d", ErrConfiguration, p.Scan)
	}
	if p.CmdRateMax <= 0 {
		return fmt.Errorf("%w: command rate bound must be positive, got %d", ErrConfiguration, p.CmdRateMax)
	}
	if p.AccMax < 0 {
		return fmt.Errorf("%w: acceleration bound must not be negative, got %g", ErrConfiguration, p.AccMax)
	}
	return nil
}

// DyBend is the default lateral throw of a single coupler S-bend: half the
// distance from the mode pitch down to the coupling gap.
func (p Parameters) DyBend() (float64, error) {
	pitch, ok := p.Pitch.Float()
	if !ok {
		return 0, fmt.Errorf("%w: mode pitch", ErrConfiguration)
	}
	gap, ok := p.IntDist.Float()
	if !ok {
		return 0, fmt.Errorf("%w: interaction distance", ErrConfiguration)
	}
	return 0.5 * (pitch - gap), nil
}

// DxBend is the axial length of the default S-bend.
func (p Parameters) DxBend() (float64, error) {
	dy, err := p.DyBend()
	if err != nil {
		return 0, err
	}
	_, dx, err := SBendParams(optopath.Of(dy), p.Radius)
	return dx, err
}

// DxCoupler is the axial length of a directional coupler built from the
// default bend and interaction length.
func (p Parameters) DxCoupler() (float64, error) {
	dx, err := p.DxBend()
	if err != nil {
		return 0, err
	}
	il, ok := p.IntLength.Float()
	if !ok {
		return 0, fmt.Errorf("%w: interaction length", ErrConfiguration)
	}
	return 2*dx + il, nil
}

// DxMZI is the axial length of a Mach-Zehnder interferometer built from the
// default bend, interaction length and arm length.
func (p Parameters) DxMZI() (float64, error) {
	dx, err := p.DxBend()
	if err != nil {
		return 0, err
	}
	il, ok := p.IntLength.Float()
	if !ok {
		return 0, fmt.Errorf("%w: interaction length", ErrConfiguration)
	}
	al, ok := p.ArmLength.Float()
	if !ok {
		return 0, fmt.Errorf("%w: arm length", ErrConfiguration)
	}
	return 4*dx + 2*il + al, nil
}
