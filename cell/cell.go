// Package cell aggregates fabricated devices into one chip cell and drives
// the motion-program emitter: all waveguides of a cell end up in one
// program, markers in another, and every trench column in a program of its
// own.
/*
BSD License

Copyright (c) Carlo Finazzi

All rights reserved.

Please refer to the license file for more information.
*/
package cell

import (
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"

	"github.com/cfinazzi/optopath"
	"github.com/cfinazzi/optopath/pgm"
	"github.com/cfinazzi/optopath/trench"
	"github.com/cfinazzi/optopath/waveguide"
)

// tracer writes to trace with key 'cell'
func tracer() tracing.Trace {
	return tracing.Select("cell")
}

// ErrEmpty indicates a program was requested for a cell with no devices of
// the wanted class.
var ErrEmpty = errors.New("cell holds no devices")

// Cell is one chip cell: a named collection of waveguides, markers and
// trench columns, plus the program-level frame they share.
type Cell struct {
	Name          string
	ExportDir     string
	Origin        optopath.Point
	RotationAngle float64 // degrees

	waveguides []waveguide.Device
	markers    []waveguide.Device
	columns    []*trench.Column
}

// New creates an empty cell named name.
func New(name string) *Cell {
	return &Cell{Name: name, ExportDir: "export"}
}

// AddWaveguide appends waveguide devices to the cell.
func (c *Cell) AddWaveguide(devices ...waveguide.Device) *Cell {
	c.waveguides = append(c.waveguides, devices...)
	return c
}

// AddMarker appends marker devices to the cell.
func (c *Cell) AddMarker(devices ...waveguide.Device) *Cell {
	c.markers = append(c.markers, devices...)
	return c
}

// AddColumn appends trench columns to the cell.
func (c *Cell) AddColumn(columns ...*trench.Column) *Cell {
	c.columns = append(c.columns, columns...)
	return c
}

// Waveguides returns the collected waveguide devices.
func (c *Cell) Waveguides() []waveguide.Device {
	return c.waveguides
}

// Markers returns the collected marker devices.
func (c *Cell) Markers() []waveguide.Device {
	return c.markers
}

// Columns returns the collected trench columns.
func (c *Cell) Columns() []*trench.Column {
	return c.columns
}

// FabTime is the estimated fabrication time of the whole cell in seconds.
func (c *Cell) FabTime() float64 {
	total := 0.0
	for _, d := range c.waveguides {
		total += d.WTime()
	}
	for _, d := range c.markers {
		total += d.WTime()
	}
	for _, col := range c.columns {
		total += col.WTime()
	}
	return total
}

func (c *Cell) compiler(filename string) *pgm.Compiler {
	return pgm.NewCompiler(pgm.Config{
		Filename:      filename,
		ExportDir:     c.ExportDir,
		Origin:        c.Origin,
		RotationAngle: c.RotationAngle,
	})
}

// writeDevices emits one program for a device class: header, then one
// repeat block per device covering its scan count, then the epilogue.
func (c *Cell) writeDevices(filename string, devices []waveguide.Device) error {
	comp := c.compiler(filename)
	comp.Header()
	for _, d := range devices {
		tracks := d.Tracks()
		comp.Repeat(d.ScanCount(), func() {
			for _, t := range tracks {
				comp.Write(t)
			}
		})
	}
	comp.Homing(5)
	return comp.Export()
}

// PGM emits the cell's motion programs: <name>_WG.pgm with every
// waveguide, <name>_MK.pgm with every marker, and <name>_TRnn.pgm per
// trench column. Classes with no devices are skipped.
func (c *Cell) PGM() error {
	if len(c.waveguides) == 0 && len(c.markers) == 0 && len(c.columns) == 0 {
		return fmt.Errorf("%w: nothing to compile for cell %q", ErrEmpty, c.Name)
	}
	if len(c.waveguides) > 0 {
		if err := c.writeDevices(c.Name+"_WG.pgm", c.waveguides); err != nil {
			return err
		}
	}
	if len(c.markers) > 0 {
		if err := c.writeDevices(c.Name+"_MK.pgm", c.markers); err != nil {
			return err
		}
	}
	for i, col := range c.columns {
		comp := c.compiler(fmt.Sprintf("%s_TR%02d.pgm", c.Name, i+1))
		comp.Header()
		for _, t := range col.Tracks() {
			comp.Write(t)
		}
		comp.Homing(col.SpeedClosed)
		if err := comp.Export(); err != nil {
			return err
		}
	}
	tracer().Infof("cell %q compiled, estimated fabrication time %s",
		c.Name, duration(c.FabTime()))
	return nil
}

// duration renders seconds as H:MM:SS for tracing.
func duration(seconds float64) string {
	s := int(seconds + 0.5)
	return fmt.Sprintf("%d:%02d:%02d", s/3600, (s%3600)/60, s%60)
}
