package waveguide

import (
	"github.com/cfinazzi/optopath"
)

// Marker is a surface ablation pattern: crosses and rulers written at the
// sample surface for alignment and inspection. A marker reuses the
// trajectory machinery of a waveguide with the elevation pinned to zero.
type Marker struct {
	*Waveguide
}

// NewMarker creates a marker device from p, forcing surface writing.
func NewMarker(p Parameters) (*Marker, error) {
	p.Depth = 0
	p.ZInit = optopath.Of(0)
	w, err := New(p)
	if err != nil {
		return nil, err
	}
	return &Marker{Waveguide: w}, nil
}

// Cross writes an alignment cross centered at c: a horizontal stroke of
// length lx and a vertical stroke of length ly, joined by a closed-shutter
// repositioning move.
func (m *Marker) Cross(c optopath.Point, lx, ly float64) *Marker {
	c.Z = 0
	m.StartAt(optopath.P(c.X-lx/2, c.Y, 0)).
		Linear(optopath.P(lx, 0, 0)).
		LinearTo(optopath.P(c.X, c.Y-ly/2, 0), WithShutterClosed()).
		Linear(optopath.P(0, ly, 0))
	return m
}

// Ruler writes a comb of horizontal ticks at the given y positions, each of
// length lx, starting at origin. Moves between ticks run with the shutter
// closed.
func (m *Marker) Ruler(ticks []float64, lx float64, origin optopath.Point) *Marker {
	if len(ticks) == 0 {
		return m
	}
	m.StartAt(optopath.P(origin.X, origin.Y+ticks[0], 0)).
		Linear(optopath.P(lx, 0, 0))
	for _, tick := range ticks[1:] {
		m.LinearTo(optopath.P(origin.X, origin.Y+tick, 0), WithShutterClosed()).
			Linear(optopath.P(lx, 0, 0))
	}
	return m
}
