// Package polyn implements arithmetic with dense univariate polynomials,
// together with the Hermite-style constructors used for derivative-matched
// waveguide bends.
/*
BSD License

Copyright (c) Carlo Finazzi

All rights reserved.

Please refer to the license file for more information.
*/
package polyn

import (
	"bytes"
	"fmt"
	"math"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'polyn'
func tracer() tracing.Trace {
	return tracing.Select("polyn")
}

// P is a dense univariate polynomial
//
//	p(x) = c.0 + c.1 x + c.2 x² + … + c.n xⁿ ,
//
// stored as its coefficient slice, index i holding the coefficient of xⁱ.
// The zero value is the zero polynomial.
type P []float64

// New creates a polynomial from its coefficients, constant term first.
//
// Use it as
//
//	polyn.New(8, 5, 2.0/3.0)
//
// to get
//
//	p(x) = 8 + 5x + 2/3 x²
func New(coeffs ...float64) P {
	p := make(P, len(coeffs))
	copy(p, coeffs)
	return p.trim()
}

// Constant creates a polynomial consisting of just a constant term.
func Constant(c float64) P {
	return P{c}
}

// trim drops trailing coefficients that mean to be zero.
func (p P) trim() P {
	n := len(p)
	for n > 0 && math.Abs(p[n-1]) <= 1e-12 {
		n--
	}
	return p[:n]
}

// Degree of the polynomial. The zero polynomial has degree 0.
func (p P) Degree() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// Eval evaluates p at x using Horner's scheme.
func (p P) Eval(x float64) float64 {
	v := 0.0
	for i := len(p) - 1; i >= 0; i-- {
		v = v*x + p[i]
	}
	return v
}

// Derivative returns p′ as a new polynomial.
func (p P) Derivative() P {
	if len(p) < 2 {
		return P{}
	}
	d := make(P, len(p)-1)
	for i := 1; i < len(p); i++ {
		d[i-1] = float64(i) * p[i]
	}
	return d.trim()
}

// Scaled returns a·p as a new polynomial.
func (p P) Scaled(a float64) P {
	q := make(P, len(p))
	for i, c := range p {
		q[i] = a * c
	}
	return q.trim()
}

// Plus returns p + q as a new polynomial.
func (p P) Plus(q P) P {
	n := len(p)
	if len(q) > n {
		n = len(q)
	}
	r := make(P, n)
	for i := range r {
		if i < len(p) {
			r[i] += p[i]
		}
		if i < len(q) {
			r[i] += q[i]
		}
	}
	return r.trim()
}

// Stringer for polynomials, mainly for tracing.
func (p P) String() string {
	if len(p) == 0 {
		return "0"
	}
	var buf bytes.Buffer
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] == 0 && len(p) > 1 {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString(" + ")
		}
		switch i {
		case 0:
			fmt.Fprintf(&buf, "%g", p[i])
		case 1:
			fmt.Fprintf(&buf, "%g x", p[i])
		default:
			fmt.Fprintf(&buf, "%g x^%d", p[i], i)
		}
	}
	return buf.String()
}

// QuinticHermite constructs the degree-5 polynomial p on [0,L] with
//
//	p(0) = v0    p(L) = v1
//	p′(0) = s0   p′(L) = s1
//	p″(0) = c0   p″(L) = c1
//
// Six conditions fix the six coefficients. The construction works on the
// normalized parameter t = x/L and rescales derivatives accordingly, which
// keeps the basis well conditioned for the short, shallow excursions typical
// of waveguide bends. L must be positive.
func QuinticHermite(L, v0, v1, s0, s1, c0, c1 float64) (P, error) {
	if L <= 0 || math.IsNaN(L) {
		return nil, fmt.Errorf("quintic Hermite needs a positive interval, got %g", L)
	}
	// Normalized boundary data.
	a0 := v0
	a1 := s0 * L
	a2 := c0 * L * L / 2
	// Quintic Hermite basis on [0,1], expressed through the remaining three
	// coefficients b3, b4, b5 of t³, t⁴, t⁵.
	d1 := v1 - a0 - a1 - a2
	d2 := s1*L - a1 - 2*a2
	d3 := c1*L*L/2 - a2
	b3 := 10*d1 - 4*d2 + d3
	b4 := -15*d1 + 7*d2 - 2*d3
	b5 := 6*d1 - 3*d2 + d3
	q := P{a0, a1, a2, b3, b4, b5}
	// Rescale from t back to x: coefficient of xⁱ is b.i / Lⁱ.
	scale := 1.0
	for i := 1; i < len(q); i++ {
		scale /= L
		q[i] *= scale
	}
	tracer().Debugf("quintic on [0,%g] = %s", L, q)
	return q.trim(), nil
}
