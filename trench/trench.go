// Package trench computes isolation trench geometry beside laser-written
// waveguides: rectangular columns spanning the chip, with safety corridors
// around every waveguide crossing them carved out by 2D boolean clipping.
/*
BSD License

Copyright (c) Carlo Finazzi

All rights reserved.

Please refer to the license file for more information.
*/
package trench

import (
	"errors"
	"fmt"

	"github.com/akavel/polyclip-go"
	"github.com/npillmayer/schuko/tracing"

	"github.com/cfinazzi/optopath"
	"github.com/cfinazzi/optopath/waveguide"
)

// tracer writes to trace with key 'trench'
func tracer() tracing.Trace {
	return tracing.Select("trench")
}

// ErrDig indicates trench geometry could not be derived from the given
// column and tracks.
var ErrDig = errors.New("cannot dig trench column")

// Trench is one block to be ablated: a closed outline in the stage plane.
type Trench struct {
	Block polyclip.Contour
}

// Perimeter is the length of the block outline.
func (t Trench) Perimeter() float64 {
	n := len(t.Block)
	if n < 2 {
		return 0
	}
	total := 0.0
	for i := 0; i < n; i++ {
		a := t.Block[i]
		b := t.Block[(i+1)%n]
		total += optopath.P(a.X, a.Y, 0).Dist(optopath.P(b.X, b.Y, 0))
	}
	return total
}

// Outline returns the closed block outline as stage points at elevation z,
// first vertex repeated at the end.
func (t Trench) Outline(z float64) []optopath.Point {
	pts := make([]optopath.Point, 0, len(t.Block)+1)
	for _, v := range t.Block {
		pts = append(pts, optopath.P(v.X, v.Y, z))
	}
	if len(pts) > 0 {
		pts = append(pts, pts[0])
	}
	return pts
}

// Column is a vertical strip of trenches at a fixed x position. The strip
// spans [YMin, YMax] with axial extent Length; digging it against a set of
// waveguide tracks removes a safety corridor around every track crossing
// the strip and leaves the trench blocks in between.
type Column struct {
	XCenter float64
	YMin    float64
	YMax    float64
	Length  float64

	HBox        float64 // total trench depth
	NBoxZ       int     // number of ablation layers over the depth
	ZOff        float64 // elevation of the topmost layer
	DeltaFloorZ float64 // extra floor clearance below the last layer
	Speed       float64 // open-shutter perimeter feed
	SpeedClosed float64 // travel feed between blocks and layers

	trenches []Trench
}

// NewColumn creates a column with the house ablation defaults.
func NewColumn(xCenter, yMin, yMax, length float64) *Column {
	return &Column{
		XCenter:     xCenter,
		YMin:        yMin,
		YMax:        yMax,
		Length:      length,
		HBox:        0.075,
		NBoxZ:       4,
		ZOff:        -0.02,
		DeltaFloorZ: 0.001,
		Speed:       4,
		SpeedClosed: 5,
	}
}

// Trenches returns the blocks computed by the last Dig.
func (c *Column) Trenches() []Trench {
	return c.trenches
}

func rect(xMin, yMin, xMax, yMax float64) polyclip.Polygon {
	return polyclip.Polygon{{
		{X: xMin, Y: yMin},
		{X: xMax, Y: yMin},
		{X: xMax, Y: yMax},
		{X: xMin, Y: yMax},
	}}
}

// Dig computes the trench blocks of the column: the column box minus a
// corridor of the given margin around every open-shutter track crossing
// it. Tracks that never enter the column are ignored.
func (c *Column) Dig(tracks []waveguide.Track, margin float64) error {
	if c.Length <= 0 || c.YMax <= c.YMin {
		return fmt.Errorf("%w: degenerate column box", ErrDig)
	}
	if margin <= 0 {
		return fmt.Errorf("%w: corridor margin must be positive, got %g", ErrDig, margin)
	}
	xMin := c.XCenter - c.Length/2
	xMax := c.XCenter + c.Length/2
	box := rect(xMin, c.YMin, xMax, c.YMax)

	crossing := 0
	block := box
	for _, t := range tracks {
		yLo, yHi, ok := trackSpan(t, xMin, xMax)
		if !ok {
			continue
		}
		crossing++
		// overhang in x keeps the clipper away from coincident edges
		corridor := rect(xMin-margin, yLo-margin, xMax+margin, yHi+margin)
		block = block.Construct(polyclip.DIFFERENCE, corridor)
	}
	if crossing == 0 {
		return fmt.Errorf("%w: no track crosses the column at x = %g", ErrDig, c.XCenter)
	}
	c.trenches = c.trenches[:0]
	for _, contour := range block {
		c.trenches = append(c.trenches, Trench{Block: contour})
	}
	tracer().Infof("column at x = %g: %d tracks crossing, %d trench blocks",
		c.XCenter, crossing, len(c.trenches))
	return nil
}

// trackSpan is the y extent of a track's open-shutter path within the
// column's x range. Segments are clipped to the range, so a single long
// straight move through the column still registers.
func trackSpan(t waveguide.Track, xMin, xMax float64) (yLo, yHi float64, ok bool) {
	grow := func(y float64) {
		if !ok {
			yLo, yHi, ok = y, y, true
			return
		}
		if y < yLo {
			yLo = y
		}
		if y > yHi {
			yHi = y
		}
	}
	for i := 1; i < t.Len(); i++ {
		if t.S[i] != waveguide.ShutterOpen {
			continue
		}
		x0, x1 := t.X[i-1], t.X[i]
		y0, y1 := t.Y[i-1], t.Y[i]
		lo, hi := x0, x1
		if lo > hi {
			lo, hi = hi, lo
		}
		if hi < xMin || lo > xMax {
			continue
		}
		if optopath.Is0(x1 - x0) {
			grow(y0)
			grow(y1)
			continue
		}
		yAt := func(x float64) float64 {
			return y0 + (y1-y0)*(x-x0)/(x1-x0)
		}
		a, b := clamp(lo, xMin, xMax), clamp(hi, xMin, xMax)
		grow(yAt(a))
		grow(yAt(b))
	}
	return yLo, yHi, ok
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// layers lists the ablation elevations, top layer first.
func (c *Column) layers() []float64 {
	n := c.NBoxZ
	if n < 1 {
		n = 1
	}
	dz := c.HBox / float64(n)
	zs := make([]float64, n)
	for i := range zs {
		zs[i] = c.ZOff - float64(i)*dz
	}
	if len(zs) > 0 {
		zs[len(zs)-1] -= c.DeltaFloorZ
	}
	return zs
}

// Tracks renders the dug blocks as fabrication tracks: for each block and
// each depth layer, a closed-shutter approach to the first vertex followed
// by an open-shutter perimeter walk.
func (c *Column) Tracks() []waveguide.Track {
	out := make([]waveguide.Track, 0, len(c.trenches)*c.NBoxZ)
	for _, tr := range c.trenches {
		for _, z := range c.layers() {
			outline := tr.Outline(z)
			if len(outline) == 0 {
				continue
			}
			t := waveguide.Track{}
			appendMove(&t, outline[0], c.SpeedClosed, waveguide.ShutterClosed)
			for _, p := range outline {
				appendMove(&t, p, c.Speed, waveguide.ShutterOpen)
			}
			appendMove(&t, outline[0], c.SpeedClosed, waveguide.ShutterClosed)
			out = append(out, t)
		}
	}
	return out
}

func appendMove(t *waveguide.Track, p optopath.Point, f float64, s uint8) {
	t.X = append(t.X, p.X)
	t.Y = append(t.Y, p.Y)
	t.Z = append(t.Z, p.Z)
	t.F = append(t.F, f)
	t.S = append(t.S, s)
}

// ScanCount is 1: trench layers are explicit tracks, not repeated passes.
func (c *Column) ScanCount() int {
	return 1
}

// WTime estimates the ablation time of the column in seconds: every block
// perimeter at writing speed, once per depth layer.
func (c *Column) WTime() float64 {
	total := 0.0
	n := c.NBoxZ
	if n < 1 {
		n = 1
	}
	for _, tr := range c.trenches {
		total += float64(n) * tr.Perimeter() / c.Speed
	}
	return total
}
