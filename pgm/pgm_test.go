package pgm

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfinazzi/optopath"
	"github.com/cfinazzi/optopath/waveguide"
)

func testTrack() waveguide.Track {
	return waveguide.Track{
		X: []float64{0, 0, 1, 2},
		Y: []float64{0, 0, 0, 1},
		Z: []float64{0, 0, 0, 0},
		F: []float64{0.5, 0.5, 20, 20},
		S: []uint8{0, 1, 1, 1},
	}
}

func countLines(text, prefix string) int {
	n := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimLeft(line, "\t"), prefix) {
			n++
		}
	}
	return n
}

func TestHeader(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := NewCompiler(Config{})
	c.Header()
	text := c.Instructions()
	assert.Contains(t, text, "ENABLE X Y Z")
	assert.Contains(t, text, "VELOCITY ON")
	assert.Contains(t, text, "PSOCONTROL X RESET")
}

func TestWriteTrack(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := NewCompiler(Config{})
	c.Write(testTrack())
	text := c.Instructions()
	assert.Equal(t, 4, countLines(text, "LINEAR"))
	assert.Equal(t, 1, countLines(text, "PSOCONTROL X ON"))
	assert.Equal(t, 1, countLines(text, "PSOCONTROL X OFF"))
	assert.Contains(t, text, "LINEAR X2.000000 Y1.000000 Z0.000000 F20.000000")
	// shutter settle pauses are accounted for
	assert.InDelta(t, 0.55, c.TotalDwell(), 1e-9)
}

func TestWriteAppliesTransform(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := NewCompiler(Config{Origin: optopath.P(1, 0, 0), RotationAngle: 90})
	c.Write(testTrack())
	text := c.Instructions()
	// (2,1,0) shifted to (1,1,0), then rotated a quarter turn to (-1,1,0)
	assert.Contains(t, text, "LINEAR X-1.000000 Y1.000000 Z0.000000 F20.000000")
}

func TestRepeat(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := NewCompiler(Config{})
	c.Repeat(3, func() {
		c.Dwell(1)
	})
	text := c.Instructions()
	assert.Contains(t, text, "REPEAT 3")
	assert.Contains(t, text, "ENDREPEAT")
	assert.Contains(t, text, "\tDWELL")
	// the dwell inside the block runs three times on the stage
	assert.InDelta(t, 3.0, c.TotalDwell(), 1e-9)
}

func TestComment(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := NewCompiler(Config{})
	c.Comment("waveguides, chip 01")
	assert.Contains(t, c.Instructions(), "; waveguides, chip 01")
}

func TestHoming(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := NewCompiler(Config{Home: true})
	c.Write(testTrack())
	c.Homing(5)
	text := c.Instructions()
	assert.Contains(t, text, "LINEAR X0.000000 Y0.000000 Z0.000000 F5.000000")
	assert.Contains(t, text, "DISABLE X Y Z")
}

func TestExport(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	dir := t.TempDir()
	c := NewCompiler(Config{Filename: "test_WG.pgm", ExportDir: filepath.Join(dir, "export")})
	c.Header()
	c.Write(testTrack())
	require.NoError(t, c.Export())

	data, err := os.ReadFile(filepath.Join(dir, "export", "test_WG.pgm"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "LINEAR")
}

func TestExportWithoutFilename(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := NewCompiler(Config{})
	assert.ErrorIs(t, c.Export(), ErrExport)
}

func TestReset(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	c := NewCompiler(Config{})
	c.Header()
	c.Dwell(2)
	c.Reset()
	assert.Empty(t, c.Instructions())
	assert.Equal(t, 0.0, c.TotalDwell())
}
