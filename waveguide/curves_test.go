package waveguide

import (
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfinazzi/optopath"
)

func startedAtOrigin(t *testing.T, p Parameters) *Waveguide {
	t.Helper()
	w := MustNew(p)
	w.StartAt(optopath.P(0, 0, 0))
	require.NoError(t, w.Err())
	return w
}

func TestLinear(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	w := startedAtOrigin(t, testParam())
	w.Linear(optopath.P(3, 4, 5))
	require.NoError(t, w.Err())
	require.Equal(t, 3, w.Len())
	last, _ := w.LastPoint()
	assert.True(t, last.Equal(optopath.P(3, 4, 5)))
	assert.Equal(t, 20.0, w.Feed()[2])
	assert.Equal(t, ShutterOpen, w.Shutter()[2])
}

func TestLinearTo(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	w := startedAtOrigin(t, testParam())
	w.Linear(optopath.P(1, 0, 0)).LinearTo(optopath.P(5, 5, 0), WithShutterClosed())
	require.NoError(t, w.Err())
	last, _ := w.LastPoint()
	assert.True(t, last.Equal(optopath.P(5, 5, 0)))
	n := w.Len()
	assert.Equal(t, ShutterClosed, w.Shutter()[n-1])
	assert.Equal(t, 75.0, w.Feed()[n-1]) // closed-shutter speed applies
}

func TestLinearSpeedOverride(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	w := startedAtOrigin(t, testParam())
	w.Linear(optopath.P(1, 0, 0), WithSpeed(3))
	require.NoError(t, w.Err())
	assert.Equal(t, 3.0, w.Feed()[w.Len()-1])
}

func TestLinearSpeedErrors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := testParam()
	p.Speed = optopath.Unset()
	w := startedAtOrigin(t, p)
	w.Linear(optopath.P(1, 0, 0))
	assert.ErrorIs(t, w.Err(), ErrConfiguration)

	w = startedAtOrigin(t, testParam())
	w.Linear(optopath.P(1, 0, 0), WithSpeed(-2))
	assert.ErrorIs(t, w.Err(), ErrGeometry)
}

func TestCircLength(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	aI, aF := 0.0, math.Pi/2

	w := startedAtOrigin(t, testParam())
	w.Circ(aI, aF)
	require.NoError(t, w.Err())
	lc := (aF - aI) * 25
	// plus the two points from the seed
	assert.Equal(t, int(math.Ceil(lc*1200/20))+2, w.Len())

	w = startedAtOrigin(t, testParam())
	w.Circ(aI, aF, WithRadius(5))
	lc = (aF - aI) * 5
	assert.Equal(t, int(math.Ceil(lc*1200/20))+2, w.Len())

	w = startedAtOrigin(t, testParam())
	w.Circ(aI, aF, WithSpeed(5))
	lc = (aF - aI) * 25
	assert.Equal(t, int(math.Ceil(lc*1200/5))+2, w.Len())
}

func TestCircCoordinates(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	w := startedAtOrigin(t, testParam())
	w.Circ(1.5*math.Pi, 0)
	require.NoError(t, w.Err())
	last, _ := w.LastPoint()
	assert.InDelta(t, 25.0, last.X, 1e-9)
	assert.InDelta(t, 25.0, last.Y, 1e-9)
	assert.Equal(t, 0.0, last.Z)
	require.NoError(t, w.End())

	w = startedAtOrigin(t, testParam())
	w.Circ(1.5*math.Pi, 1.75*math.Pi)
	last, _ = w.LastPoint()
	assert.InDelta(t, 25.0/math.Sqrt2, last.X, 1e-9)
	assert.InDelta(t, 25.0*(1-1/math.Sqrt2), last.Y, 1e-9)
	require.NoError(t, w.End())
}

func TestCircNegativeRadius(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := testParam()
	p.Radius = optopath.Of(-60)
	w := startedAtOrigin(t, p)
	w.Circ(1.5*math.Pi, 0)
	assert.ErrorIs(t, w.Err(), ErrGeometry)
}

func TestArcBend(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	const dy = 0.09
	w := startedAtOrigin(t, testParam())
	w.ArcBend(optopath.Of(dy))
	require.NoError(t, w.Err())
	require.NoError(t, w.End())

	y := w.Y()
	z := w.Z()
	assert.InDelta(t, dy, maxOf(y)-minOf(y), 1e-9)
	assert.InDelta(t, 0.0, maxOf(z)-minOf(z), 1e-12)

	last, _ := w.LastPoint()
	_, dx, err := SBendParams(optopath.Of(dy), optopath.Of(25))
	require.NoError(t, err)
	assert.InDelta(t, dx, last.X, 1e-9)
	assert.InDelta(t, dy, last.Y, 1e-9)
}

func TestArcBendNegative(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	const dy = -0.08
	w := startedAtOrigin(t, testParam())
	w.ArcBend(optopath.Of(dy))
	require.NoError(t, w.Err())
	last, _ := w.LastPoint()
	assert.InDelta(t, dy, last.Y, 1e-9)
	assert.True(t, minOf(w.Y()) >= dy-1e-9)
}

func TestSinBend(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	const dy = 0.08
	w := startedAtOrigin(t, testParam())
	w.SinBend(optopath.Of(dy))
	require.NoError(t, w.Err())
	last, _ := w.LastPoint()
	_, dx, err := SBendParams(optopath.Of(dy), optopath.Of(25))
	require.NoError(t, err)
	assert.InDelta(t, dx, last.X, 1e-9)
	assert.InDelta(t, dy, last.Y, 1e-9)
	assert.Equal(t, 0.0, last.Z)
}

func TestSinBendDispX(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	const dy, dx = 0.08, 5.0
	w := startedAtOrigin(t, testParam())
	w.SinBend(optopath.Of(dy), WithDispX(dx))
	require.NoError(t, w.Err())
	last, _ := w.LastPoint()
	assert.InDelta(t, dx, last.X, 1e-9)
	assert.InDelta(t, dy, last.Y, 1e-9)
}

func TestSinBendUnknownThrow(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	w := startedAtOrigin(t, testParam())
	w.SinBend(optopath.Unset())
	assert.ErrorIs(t, w.Err(), ErrConfiguration)
}

func TestSinComp(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	const dy = 0.06
	w := startedAtOrigin(t, testParam())
	w.SinComp(optopath.Of(dy))
	require.NoError(t, w.Err())
	last, _ := w.LastPoint()
	// swings out to dy and returns
	assert.InDelta(t, 0.0, last.Y, 1e-9)
	assert.InDelta(t, dy, maxOf(w.Y()), 1e-4)
}

func TestSinBridge(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	const dy, dz = 0.08, 0.015
	w := startedAtOrigin(t, testParam())
	w.SinBridge(optopath.Of(dy), optopath.Of(dz))
	require.NoError(t, w.Err())
	last, _ := w.LastPoint()
	assert.InDelta(t, dy, last.Y, 1e-9)
	// the vertical excursion peaks at dz and returns
	assert.InDelta(t, 0.0, last.Z, 1e-9)
	assert.InDelta(t, dz, maxOf(w.Z()), 1e-4)
}

func TestSinBridgeDefaultHeight(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	w := startedAtOrigin(t, testParam())
	w.SinBridge(optopath.Of(0.08), optopath.Unset())
	require.NoError(t, w.Err())
	assert.InDelta(t, 0.006, maxOf(w.Z()), 1e-4)
}

func maxOf(v []float64) float64 {
	m := math.Inf(-1)
	for _, x := range v {
		if x > m {
			m = x
		}
	}
	return m
}

func minOf(v []float64) float64 {
	m := math.Inf(1)
	for _, x := range v {
		if x < m {
			m = x
		}
	}
	return m
}
