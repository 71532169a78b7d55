package waveguide

import (
	"fmt"

	"github.com/cfinazzi/optopath"
)

// DefaultAdjScanShift is the house lateral offset between adjacent scans,
// 0.4 µm along y.
var DefaultAdjScanShift = optopath.P(0, 0.0004, 0)

// DefaultAdjScan is the house number of adjacent scans.
const DefaultAdjScan = 5

// MultiScan widens a waveguide by replicating its center-line into several
// laterally shifted passes. The replicas are fabricated from the center
// outward, alternating sides, which keeps the thermal load symmetric.
type MultiScan struct {
	*Waveguide
	adjScan int
	shift   optopath.Point
}

// NewMultiScan creates an adjacent-scan waveguide with adjScan replicas
// offset by shift. A zero shift selects the default offset.
func NewMultiScan(p Parameters, adjScan int, shift optopath.Point) (*MultiScan, error) {
	if adjScan < 1 {
		return nil, fmt.Errorf("%w: adjacent scan count must be a whole number >= 1, got %d",
			ErrConfiguration, adjScan)
	}
	w, err := New(p)
	if err != nil {
		return nil, err
	}
	if shift.IsOrigin() {
		shift = DefaultAdjScanShift
	}
	return &MultiScan{Waveguide: w, adjScan: adjScan, shift: shift}, nil
}

// AdjScan is the number of adjacent replicas.
func (m *MultiScan) AdjScan() int {
	return m.adjScan
}

// AdjScanShift is the offset between neighboring replicas.
func (m *MultiScan) AdjScanShift() optopath.Point {
	return m.shift
}

// AdjScanOrder lists the shift multipliers in fabrication order, center
// first and alternating outward. An odd count walks 0, +1, -1, +2, -2, …;
// an even count straddles the center-line with half-integer offsets.
func (m *MultiScan) AdjScanOrder() []float64 {
	order := make([]float64, 0, m.adjScan)
	if m.adjScan%2 == 1 {
		order = append(order, 0)
		for k := 1; len(order) < m.adjScan; k++ {
			order = append(order, float64(k), -float64(k))
		}
	} else {
		for k := 0; len(order) < m.adjScan; k++ {
			v := float64(k) + 0.5
			order = append(order, v, -v)
		}
	}
	return order
}

// Tracks returns one track per replica, the center-line shifted by the
// ordered multiples of the scan shift.
func (m *MultiScan) Tracks() []Track {
	base := m.Waveguide.Tracks()[0]
	out := make([]Track, 0, m.adjScan)
	for _, idx := range m.AdjScanOrder() {
		t := Track{
			X: copyFloats(base.X),
			Y: copyFloats(base.Y),
			Z: copyFloats(base.Z),
			F: copyFloats(base.F),
			S: append([]uint8(nil), base.S...),
		}
		for i := range t.X {
			t.X[i] += idx * m.shift.X
			t.Y[i] += idx * m.shift.Y
			t.Z[i] += idx * m.shift.Z
		}
		out = append(out, t)
	}
	return out
}

// WTime scales the single-pass estimate by the number of replicas.
func (m *MultiScan) WTime() float64 {
	return float64(m.adjScan) * m.Waveguide.WTime()
}
