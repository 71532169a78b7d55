package waveguide

import (
	"fmt"
	"os"

	"github.com/cfinazzi/optopath"
	"github.com/pelletier/go-toml/v2"
)

// fileParameters is the on-disk schema of a parameter file. Pointer fields
// distinguish "absent" from "zero": absent keys keep their defaults, and
// absent optional keys stay unknown only where the default is unknown too.
type fileParameters struct {
	Scan        *int       `toml:"scan"`
	Speed       *float64   `toml:"speed"`
	SpeedClosed *float64   `toml:"speed_closed"`
	SpeedPos    *float64   `toml:"speed_pos"`
	CmdRateMax  *int       `toml:"cmd_rate_max"`
	AccMax      *float64   `toml:"acc_max"`
	XInit       *float64   `toml:"x_init"`
	YInit       *float64   `toml:"y_init"`
	ZInit       *float64   `toml:"z_init"`
	LSafe       *float64   `toml:"lsafe"`
	SampleSize  *[]float64 `toml:"samplesize"`
	Depth       *float64   `toml:"depth"`
	Radius      *float64   `toml:"radius"`
	Pitch       *float64   `toml:"pitch"`
	PitchFA     *float64   `toml:"pitch_fa"`
	IntDist     *float64   `toml:"int_dist"`
	IntLength   *float64   `toml:"int_length"`
	ArmLength   *float64   `toml:"arm_length"`
	LTrench     *float64   `toml:"ltrench"`
	DzBridge    *float64   `toml:"dz_bridge"`
}

// LoadParameters reads a TOML parameter file and overlays it onto the
// default parameter set. The result is validated.
func LoadParameters(path string) (Parameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Parameters{}, fmt.Errorf("%w: cannot read parameter file: %v", ErrConfiguration, err)
	}
	var fp fileParameters
	if err := toml.Unmarshal(data, &fp); err != nil {
		return Parameters{}, fmt.Errorf("%w: cannot parse parameter file: %v", ErrConfiguration, err)
	}
	p := Default()
	if fp.Scan != nil {
		p.Scan = *fp.Scan
	}
	if fp.CmdRateMax != nil {
		p.CmdRateMax = *fp.CmdRateMax
	}
	if fp.AccMax != nil {
		p.AccMax = *fp.AccMax
	}
	if fp.LSafe != nil {
		p.LSafe = *fp.LSafe
	}
	if fp.Depth != nil {
		p.Depth = *fp.Depth
	}
	if fp.LTrench != nil {
		p.LTrench = *fp.LTrench
	}
	if fp.SampleSize != nil {
		if len(*fp.SampleSize) != 2 {
			return Parameters{}, fmt.Errorf("%w: samplesize needs exactly two entries, got %d",
				ErrConfiguration, len(*fp.SampleSize))
		}
		p.SampleSize = [2]float64{(*fp.SampleSize)[0], (*fp.SampleSize)[1]}
	}
	overlay(&p.Speed, fp.Speed)
	overlay(&p.SpeedClosed, fp.SpeedClosed)
	overlay(&p.SpeedPos, fp.SpeedPos)
	overlay(&p.XInit, fp.XInit)
	overlay(&p.YInit, fp.YInit)
	overlay(&p.ZInit, fp.ZInit)
	overlay(&p.Radius, fp.Radius)
	overlay(&p.Pitch, fp.Pitch)
	overlay(&p.PitchFA, fp.PitchFA)
	overlay(&p.IntDist, fp.IntDist)
	overlay(&p.IntLength, fp.IntLength)
	overlay(&p.ArmLength, fp.ArmLength)
	overlay(&p.DzBridge, fp.DzBridge)
	if err := p.validate(); err != nil {
		return Parameters{}, err
	}
	tracer().Infof("parameters loaded from %s", path)
	return p, nil
}

func overlay(dst *optopath.Scalar, src *float64) {
	if src != nil {
		*dst = optopath.Of(*src)
	}
}
