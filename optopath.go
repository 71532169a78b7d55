/*
Package optopath provides the numeric groundwork for planning laser-written
photonic circuits on a motion-controlled fabrication stage: tolerance
helpers, 3D stage points, optional scalars, and affine transformations for
the program-level coordinate frame.

# BSD License

# Copyright (c) Carlo Finazzi

All rights reserved.

Please refer to the license file for more information.
*/
package optopath

import (
	"fmt"
	"math"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'optopath'
func tracer() tracing.Trace {
	return tracing.Select("optopath")
}

// === Numeric Data Type =====================================================

// Deg2Rad is a constant for converting from DEG to RAD or vice versa
var Deg2Rad float64 = 0.01745329251

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// Is1 is a predicate: is n = 1.0 ?
func Is1(n float64) bool {
	return math.Abs(1-n) <= Epsilon
}

// Zap makes n = 0 if n "means" to be zero
func Zap(n float64) float64 {
	if Is0(n) {
		n = 0
	}
	return n
}

// Round to ε.
func Round(n float64) float64 {
	return math.Round(n/Epsilon) * Epsilon
}

// === Point Data Type =======================================================

// Point is a 3D stage coordinate, in mm.
type Point struct {
	X, Y, Z float64
}

// Origin represents the frequently used constant (0,0,0).
var Origin = P(0, 0, 0)

// P is a quick notation for constructing a point from floats.
func P(x, y, z float64) Point {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsNaN(z) {
		tracer().Errorf("created point from NaN coordinate")
		return Point{}
	}
	return Point{X: x, Y: y, Z: z}
}

// Pretty Stringer for points.
func (p Point) String() string {
	return fmt.Sprintf("(%g,%g,%g)", p.X, p.Y, p.Z)
}

// F is a quick notation for getting float values from a point.
func (p Point) F() (float64, float64, float64) {
	return p.X, p.Y, p.Z
}

// Zap rounds all coordinates to Epsilon.
func (p Point) Zap() Point {
	return Point{X: Zap(p.X), Y: Zap(p.Y), Z: Zap(p.Z)}
}

// IsOrigin is a predicate: is this point the origin?
func (p Point) IsOrigin() bool {
	return p.Equal(Origin)
}

// Equal compares two points.
func (p Point) Equal(q Point) bool {
	return Is0(p.X-q.X) && Is0(p.Y-q.Y) && Is0(p.Z-q.Z)
}

// Plus returns a new point translated by q.
func (p Point) Plus(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y, Z: p.Z + q.Z}
}

// Minus returns the difference vector p - q.
func (p Point) Minus(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y, Z: p.Z - q.Z}
}

// Scaled returns a new point scaled by factor a.
func (p Point) Scaled(a float64) Point {
	return Point{X: p.X * a, Y: p.Y * a, Z: p.Z * a}
}

// Norm is the Euclidean length of p, read as a vector.
func (p Point) Norm() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

// Dist is the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return p.Minus(q).Norm()
}

// Dot is the scalar product of p and q, read as vectors.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y + p.Z*q.Z
}

// Cross is the vector product of p and q.
func (p Point) Cross(q Point) Point {
	return Point{
		X: p.Y*q.Z - p.Z*q.Y,
		Y: p.Z*q.X - p.X*q.Z,
		Z: p.X*q.Y - p.Y*q.X,
	}
}

// === Affine Transformations ================================================

// AT is an affine transform, a matrix type used for transforming points
// within the stage plane. The transform acts on the X/Y coordinates of a
// point and leaves Z untouched, which matches how a fabrication program is
// re-framed on the sample (origin shift plus rotation about the vertical).
type AT []float64 // a 3x3 matrix, flattened by rows

// Internal constructor. Clients implicitely use this as a starting point for
// transform combinations.
func newAT() AT {
	m := make([]float64, 9)
	return m
}

func (m AT) get(row, col int) float64 {
	return m[row*3+col]
}

func (m AT) set(row, col int, value float64) {
	m[row*3+col] = value
}

func (m AT) row(row int) []float64 {
	return m[row*3 : (row+1)*3]
}

func (m AT) col(col int) []float64 {
	c := make([]float64, 3)
	c[0] = m[col]
	c[1] = m[3+col]
	c[2] = m[6+col]
	return c
}

// Identity transform. Will transform a point onto itself.
func Identity() AT {
	m := newAT()
	m.set(0, 0, 1.0)
	m.set(1, 1, 1.0)
	m.set(2, 2, 1.0)
	return m
}

// Translation transform. Translate a point by (dx,dy) within the stage plane.
func Translation(dx, dy float64) AT {
	m := Identity()
	m.set(0, 2, dx)
	m.set(1, 2, dy)
	return m
}

// Rotation transform. Rotate a point counter-clockwise around the origin.
// Argument is in radians.
func Rotation(theta float64) AT {
	m := newAT()
	sin := math.Sin(theta)
	cos := math.Cos(theta)
	m.set(0, 0, cos)
	m.set(0, 1, -sin)
	m.set(1, 0, sin)
	m.set(1, 1, cos)
	m.set(2, 2, 1.0)
	return m
}

// Debug Stringer for an affine transform.
func (m AT) String() string {
	s := fmt.Sprintf("[%g,%g,%g|%g,%g,%g|%g,%g,%g]",
		m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8])
	return s
}

// v1 × v2, v.n = [a,b,c]
func dotProd(vec1, vec2 []float64) float64 {
	p1 := vec1[0] * vec2[0]
	p2 := vec1[1] * vec2[1]
	p3 := vec1[2] * vec2[2]
	return p1 + p2 + p3
}

// Combine 2 affine transformation to a new one. Returns a new transformation
// without changing the argument(s).
func (m AT) Combine(n AT) AT {
	o := newAT()
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			o.set(row, col, dotProd(n.row(row), m.col(col)))
		}
	}
	return o
}

func (m *AT) multiplyVector(v []float64) []float64 {
	c := make([]float64, 3)
	c[0] = dotProd(m.row(0), v)
	c[1] = dotProd(m.row(1), v)
	c[2] = dotProd(m.row(2), v)
	return c
}

// Transform a point within the stage plane. The argument is unchanged and a
// new point is returned; the Z coordinate passes through untouched.
func (m AT) Transform(p Point) Point {
	c := make([]float64, 3)
	c[0] = p.X
	c[1] = p.Y
	c[2] = 1.0
	c = m.multiplyVector(c)
	return Point{X: c[0], Y: c[1], Z: p.Z}
}
