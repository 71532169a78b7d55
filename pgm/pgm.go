// Package pgm emits Aerotech-style PGM motion programs from finished
// fabrication tracks.
/*

A Compiler holds a growing instruction buffer. Device tracks are appended
with Write, which interleaves shutter control commands with LINEAR moves
and applies the program's coordinate transform (origin shift plus rotation
about the vertical axis). Structural instructions (header, dwells, repeat
blocks, homing) are emitted explicitly, so a caller controls the exact
program shape:

	c := pgm.NewCompiler(pgm.Config{
		Filename:  "chip01_WG.pgm",
		ExportDir: "export",
	})
	c.Header()
	c.Repeat(6, func() {
		for _, t := range device.Tracks() {
			c.Write(t)
		}
	})
	c.GoOrigin()
	err := c.Export()

BSD License

Copyright (c) Carlo Finazzi

All rights reserved.

Please refer to the license file for more information.
*/
package pgm

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/schuko/tracing"

	"github.com/cfinazzi/optopath"
	"github.com/cfinazzi/optopath/waveguide"
)

// tracer writes to trace with key 'pgm'
func tracer() tracing.Trace {
	return tracing.Select("pgm")
}

// ErrExport indicates the program could not be written out.
var ErrExport = errors.New("cannot export motion program")

// Config parameterizes one motion program.
type Config struct {
	Filename      string         // output file name, conventionally *.pgm
	ExportDir     string         // output directory, created on demand
	Origin        optopath.Point // new program origin, in stage coordinates
	RotationAngle float64        // rotation about the origin, in degrees
	LongPause     float64        // dwell after opening the shutter [s]
	ShortPause    float64        // dwell after closing the shutter [s]
	OutputDigits  int            // decimal digits of emitted coordinates
	Home          bool           // return to the starting pose after writing
}

// Compiler accumulates motion program instructions for one output file.
type Compiler struct {
	cfg    Config
	xform  optopath.AT
	buf    bytes.Buffer
	indent int
	dwell  float64 // accumulated dwell time [s]
	open   bool    // current shutter state
}

// NewCompiler creates a compiler for cfg. Pauses default to 0.5 s and
// 0.05 s, coordinate output to 6 digits.
func NewCompiler(cfg Config) *Compiler {
	if cfg.LongPause <= 0 {
		cfg.LongPause = 0.5
	}
	if cfg.ShortPause <= 0 {
		cfg.ShortPause = 0.05
	}
	if cfg.OutputDigits <= 0 {
		cfg.OutputDigits = 6
	}
	xform := optopath.Translation(-cfg.Origin.X, -cfg.Origin.Y)
	if !optopath.Is0(cfg.RotationAngle) {
		xform = xform.Combine(optopath.Rotation(cfg.RotationAngle * optopath.Deg2Rad))
	}
	return &Compiler{cfg: cfg, xform: xform}
}

// TotalDwell is the dwell time accumulated so far, in seconds.
func (c *Compiler) TotalDwell() float64 {
	return c.dwell
}

// Instructions returns the program text emitted so far.
func (c *Compiler) Instructions() string {
	return c.buf.String()
}

// Reset discards the instruction buffer and dwell accounting.
func (c *Compiler) Reset() {
	c.buf.Reset()
	c.dwell = 0
	c.indent = 0
	c.open = false
}

func (c *Compiler) emit(format string, args ...interface{}) {
	c.buf.WriteString(strings.Repeat("\t", c.indent))
	fmt.Fprintf(&c.buf, format, args...)
	c.buf.WriteByte('\n')
}

// Header emits the program preamble: units, velocity profiling, and the
// shutter output armed but closed.
func (c *Compiler) Header() {
	c.emit("ENABLE X Y Z")
	c.emit("METRIC")
	c.emit("SECONDS")
	c.emit("G359")
	c.emit("VELOCITY ON")
	c.emit("PSOCONTROL X RESET")
	c.emit("ABSOLUTE")
	c.emit("")
}

// Comment emits a single program comment.
func (c *Compiler) Comment(text string) {
	if text == "" {
		c.emit("")
		return
	}
	c.emit("; %s", text)
}

// Dwell emits a pause of t seconds and accounts for it.
func (c *Compiler) Dwell(t float64) {
	if t <= 0 {
		return
	}
	c.emit("DWELL %.6f", t)
	c.dwell += t
}

// Repeat emits a repeat block: the instructions produced by body run n
// times on the stage. Dwell accounting inside the block scales with n.
func (c *Compiler) Repeat(n int, body func()) {
	if n < 1 {
		tracer().Errorf("repeat block with count %d skipped", n)
		return
	}
	before := c.dwell
	c.emit("REPEAT %d", n)
	c.indent++
	body()
	c.indent--
	c.emit("ENDREPEAT")
	c.dwell += float64(n-1) * (c.dwell - before)
}

// shutter emits the transition to the wanted state, with the configured
// settle dwell. Redundant transitions are suppressed.
func (c *Compiler) shutter(open bool) {
	if open == c.open {
		return
	}
	if open {
		c.emit("PSOCONTROL X ON")
		c.Dwell(c.cfg.LongPause)
	} else {
		c.emit("PSOCONTROL X OFF")
		c.Dwell(c.cfg.ShortPause)
	}
	c.open = open
}

// Write appends one fabrication track: every point becomes a LINEAR move
// in the transformed frame, with shutter commands interleaved where the
// track's shutter state changes.
func (c *Compiler) Write(t waveguide.Track) {
	d := c.cfg.OutputDigits
	for i := 0; i < t.Len(); i++ {
		c.shutter(t.S[i] == waveguide.ShutterOpen)
		p := c.xform.Transform(optopath.P(t.X[i], t.Y[i], t.Z[i]))
		c.emit("LINEAR X%.*f Y%.*f Z%.*f F%.*f", d, p.X, d, p.Y, d, p.Z, d, t.F[i])
	}
	c.shutter(false)
}

// GoOrigin closes the shutter and moves back to the program origin.
func (c *Compiler) GoOrigin(feed float64) {
	c.shutter(false)
	d := c.cfg.OutputDigits
	c.emit("LINEAR X%.*f Y%.*f Z%.*f F%.*f", d, 0.0, d, 0.0, d, 0.0, d, feed)
}

// Homing emits the program epilogue: shutter off, axes disabled, and, when
// configured, a return to the origin first.
func (c *Compiler) Homing(feed float64) {
	if c.cfg.Home {
		c.GoOrigin(feed)
	}
	c.shutter(false)
	c.emit("")
	c.emit("DISABLE X Y Z")
}

// Export writes the program to its configured file, creating the export
// directory as needed.
func (c *Compiler) Export() error {
	if c.cfg.Filename == "" {
		return fmt.Errorf("%w: no filename configured", ErrExport)
	}
	dir := c.cfg.ExportDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrExport, err)
	}
	path := filepath.Join(dir, c.cfg.Filename)
	if err := os.WriteFile(path, c.buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrExport, err)
	}
	tracer().Infof("motion program exported to %s", path)
	return nil
}
