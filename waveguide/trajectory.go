package waveguide

import (
	"fmt"

	"github.com/cfinazzi/optopath"
)

type state int8

const (
	stateUnstarted state = iota
	stateOpen
	stateClosed
)

// ShutterOpen and ShutterClosed are the two states of the writing shutter,
// recorded per point.
const (
	ShutterClosed uint8 = 0
	ShutterOpen   uint8 = 1
)

// Track is one immutable, fully sampled pass over the stage: coordinates,
// feed rates and shutter states, column-wise, one entry per stage
// instruction.
type Track struct {
	X, Y, Z []float64
	F       []float64
	S       []uint8
}

// Len is the number of instructions in the track.
func (t Track) Len() int {
	return len(t.X)
}

// Device is anything that yields fabrication tracks: a single waveguide, an
// adjacent-scan bundle, a surface marker, a trench column.
type Device interface {
	Tracks() []Track
	ScanCount() int
	WTime() float64
}

// Waveguide is a fluent trajectory builder. Operations append sampled points
// and return the receiver; the first failing operation records its error,
// leaves the buffers untouched, and turns every later operation into a
// no-op. End() and Err() surface the recorded error.
type Waveguide struct {
	param Parameters

	x, y, z []float64
	f       []float64
	s       []uint8

	st  state
	err error
}

// New creates an empty waveguide from p. The parameter set is validated and
// dependent defaults are resolved up front.
func New(p Parameters) (*Waveguide, error) {
	p = p.normalized()
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &Waveguide{param: p}, nil
}

// MustNew is New for known-good parameters; it panics on a validation error.
func MustNew(p Parameters) *Waveguide {
	w, err := New(p)
	if err != nil {
		panic(err)
	}
	return w
}

// Param returns the (resolved) parameter set of the waveguide.
func (w *Waveguide) Param() Parameters {
	return w.param
}

// Err returns the first error recorded by any operation, or nil.
func (w *Waveguide) Err() error {
	return w.err
}

// Len is the current number of sampled points.
func (w *Waveguide) Len() int {
	return len(w.x)
}

// ScanCount is the number of passes over the trajectory.
func (w *Waveguide) ScanCount() int {
	return w.param.Scan
}

// X returns a copy of the x coordinate buffer.
func (w *Waveguide) X() []float64 { return copyFloats(w.x) }

// Y returns a copy of the y coordinate buffer.
func (w *Waveguide) Y() []float64 { return copyFloats(w.y) }

// Z returns a copy of the z coordinate buffer.
func (w *Waveguide) Z() []float64 { return copyFloats(w.z) }

// Feed returns a copy of the feed rate buffer.
func (w *Waveguide) Feed() []float64 { return copyFloats(w.f) }

// Shutter returns a copy of the shutter state buffer.
func (w *Waveguide) Shutter() []uint8 {
	s := make([]uint8, len(w.s))
	copy(s, w.s)
	return s
}

// Points returns the sampled trajectory as stage points.
func (w *Waveguide) Points() []optopath.Point {
	pts := make([]optopath.Point, len(w.x))
	for i := range w.x {
		pts[i] = optopath.Point{X: w.x[i], Y: w.y[i], Z: w.z[i]}
	}
	return pts
}

// Path3D returns copies of the three coordinate buffers.
func (w *Waveguide) Path3D() (x, y, z []float64) {
	return w.X(), w.Y(), w.Z()
}

// Tracks returns the trajectory as a single track.
func (w *Waveguide) Tracks() []Track {
	return []Track{{X: w.X(), Y: w.Y(), Z: w.Z(), F: w.Feed(), S: w.Shutter()}}
}

// LastPoint returns the current pose, with ok = false on an empty
// trajectory.
func (w *Waveguide) LastPoint() (optopath.Point, bool) {
	n := len(w.x)
	if n == 0 {
		return optopath.Point{}, false
	}
	return optopath.Point{X: w.x[n-1], Y: w.y[n-1], Z: w.z[n-1]}, true
}

func copyFloats(src []float64) []float64 {
	dst := make([]float64, len(src))
	copy(dst, src)
	return dst
}

// fail records the first error and traces it. Later calls keep the first.
func (w *Waveguide) fail(err error) *Waveguide {
	if w.err == nil {
		w.err = err
		tracer().Errorf("waveguide operation failed: %v", err)
	}
	return w
}

// requireOpen guards every curve operation: the trajectory must have been
// started and not yet ended.
func (w *Waveguide) requireOpen() bool {
	if w.err != nil {
		return false
	}
	switch w.st {
	case stateUnstarted:
		w.fail(fmt.Errorf("%w: trajectory not started", ErrState))
		return false
	case stateClosed:
		w.fail(fmt.Errorf("%w: trajectory already ended", ErrState))
		return false
	}
	return true
}

// seed places the starting pose. The pose is recorded twice, first with the
// shutter closed and then open, both at positioning speed, so that the
// shutter command has a stationary point to act on.
func (w *Waveguide) seed(pos optopath.Point) *Waveguide {
	fpos, ok := w.param.SpeedPos.Float()
	if !ok {
		return w.fail(fmt.Errorf("%w: positioning speed", ErrConfiguration))
	}
	w.appendPoint(pos.X, pos.Y, pos.Z, fpos, ShutterClosed)
	w.appendPoint(pos.X, pos.Y, pos.Z, fpos, ShutterOpen)
	w.st = stateOpen
	tracer().Debugf("trajectory started at %s", pos)
	return w
}

// Start opens the trajectory at the configured initial pose. Starting an
// already open trajectory is a no-op, which lets factory helpers compose.
func (w *Waveguide) Start() *Waveguide {
	if w.err != nil {
		return w
	}
	switch w.st {
	case stateOpen:
		return w
	case stateClosed:
		return w.fail(fmt.Errorf("%w: trajectory already ended", ErrState))
	}
	x0, okx := w.param.XInit.Float()
	y0, oky := w.param.YInit.Float()
	z0, okz := w.param.ZInit.Float()
	if !okx || !oky || !okz {
		return w.fail(fmt.Errorf("%w: no starting pose", ErrConfiguration))
	}
	return w.seed(optopath.P(x0, y0, z0))
}

// StartAt opens the trajectory at an explicit pose.
func (w *Waveguide) StartAt(pos optopath.Point) *Waveguide {
	if w.err != nil {
		return w
	}
	switch w.st {
	case stateOpen:
		return w.fail(fmt.Errorf("%w: trajectory already started", ErrState))
	case stateClosed:
		return w.fail(fmt.Errorf("%w: trajectory already ended", ErrState))
	}
	return w.seed(pos)
}

// End closes the trajectory: the shutter closes at the final pose and the
// point record is frozen. End returns the first recorded error, if any.
func (w *Waveguide) End() error {
	if w.err != nil {
		return w.err
	}
	if w.st != stateOpen {
		w.fail(fmt.Errorf("%w: cannot end a trajectory that is not open", ErrState))
		return w.err
	}
	fclosed, ok := w.param.SpeedClosed.Float()
	if !ok {
		w.fail(fmt.Errorf("%w: closed-shutter speed", ErrConfiguration))
		return w.err
	}
	last, _ := w.LastPoint()
	w.appendPoint(last.X, last.Y, last.Z, fclosed, ShutterClosed)
	w.st = stateClosed
	tracer().Debugf("trajectory ended after %d points", len(w.x))
	return nil
}

func (w *Waveguide) appendPoint(x, y, z, f float64, s uint8) {
	w.x = append(w.x, x)
	w.y = append(w.y, y)
	w.z = append(w.z, z)
	w.f = append(w.f, f)
	w.s = append(w.s, s)
}
