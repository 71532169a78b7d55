package waveguide

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfinazzi/optopath"
)

func TestSBendParams(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	theta, dx, err := SBendParams(optopath.Of(0.08), optopath.Of(30))
	require.NoError(t, err)
	assert.InDelta(t, 0.0516455, theta, 1e-6)
	assert.InDelta(t, 3.097354, dx, 1e-6)
}

func TestSBendParamsZeroThrow(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	theta, dx, err := SBendParams(optopath.Of(0), optopath.Of(30))
	require.NoError(t, err)
	assert.Equal(t, 0.0, theta)
	assert.Equal(t, 0.0, dx)
}

func TestSBendParamsNegativeThrow(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, dxPos, err := SBendParams(optopath.Of(0.08), optopath.Of(30))
	require.NoError(t, err)
	_, dxNeg, err := SBendParams(optopath.Of(-0.08), optopath.Of(30))
	require.NoError(t, err)
	assert.InDelta(t, dxPos, dxNeg, 1e-12)
}

func TestSBendParamsUnknown(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, _, err := SBendParams(optopath.Unset(), optopath.Of(30))
	assert.ErrorIs(t, err, ErrConfiguration)
	_, _, err = SBendParams(optopath.Of(0.08), optopath.Unset())
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestSBendParamsGeometry(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, _, err := SBendParams(optopath.Of(0.08), optopath.Of(-30))
	assert.ErrorIs(t, err, ErrGeometry)
	_, _, err = SBendParams(optopath.Of(0.08), optopath.Of(0))
	assert.ErrorIs(t, err, ErrGeometry)
	// radius too small to span the throw with real arcs
	_, _, err = SBendParams(optopath.Of(10), optopath.Of(1))
	assert.ErrorIs(t, err, ErrGeometry)
}
