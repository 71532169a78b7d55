package optopath

import (
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestNumericBasic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := 0.000000008
	if !Is0(a) {
		t.Errorf("Expected a to be zero, is not")
	}
	if !Is1(1.00000002) {
		t.Errorf("Expected value to count as 1, does not")
	}
	if Zap(a) != 0 {
		t.Errorf("Expected Zap to flatten %g to 0", a)
	}
}

func TestPointBasic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := P(3, 2, 1)
	q := P(-3, -2, -1)
	if !p.Plus(q).IsOrigin() {
		t.Errorf("Expected p + q to be the origin, is %v", p.Plus(q))
	}
	assert.InDelta(t, math.Sqrt(14), p.Norm(), 1e-9)
	assert.InDelta(t, 2*math.Sqrt(14), p.Dist(q), 1e-9)
	assert.Equal(t, 0.0, p.Cross(p).Norm())
	assert.InDelta(t, -14, p.Dot(q), 1e-9)
}

func TestPointNaN(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := P(math.NaN(), 0, 0)
	if !p.IsOrigin() {
		t.Errorf("Expected NaN point to collapse to the origin, is %v", p)
	}
}

func TestScalar(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	var s Scalar
	if s.Known() {
		t.Errorf("Expected zero-value scalar to be unknown")
	}
	v, ok := s.Or(Of(4)).Float()
	assert.True(t, ok)
	assert.Equal(t, 4.0, v)
	v, ok = Of(2).Or(Of(4)).Float()
	assert.True(t, ok)
	assert.Equal(t, 2.0, v)
	assert.Equal(t, "<unknown>", Unset().String())
}

func TestTranslation(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	q := Translation(-1, -1).Transform(P(1, 1, 5))
	if !q.Equal(P(0, 0, 5)) {
		t.Errorf("Expected (1,1) shifted (-1,-1) to be the origin, is %v", q)
	}
}

func TestRotation(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	q := Rotation(180 * Deg2Rad).Transform(P(1, 0, 0)).Zap()
	if !q.Equal(P(-1, 0, 0)) {
		t.Errorf("Expected (1,0) rotated by pi to be (-1,0), is %v", q)
	}
}

func TestCombine(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	// shift first, then rotate by pi/2
	m := Translation(1, 0).Combine(Rotation(90 * Deg2Rad))
	q := m.Transform(P(0, 0, 3)).Zap()
	if !q.Equal(P(0, 1, 3)) {
		t.Errorf("Expected combined transform to yield (0,1,3), is %v", q)
	}
}
