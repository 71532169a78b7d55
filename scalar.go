package optopath

import "fmt"

// Scalar is an optional float64. A fabrication parameter may be "unknown":
// left unset in the configuration, or explicitly cleared by a caller. The
// zero value of Scalar is unknown; Of(v) makes a known value. Operations
// that need a parameter resolve it with Or and fail when the result is
// still unknown.
type Scalar struct {
	val   float64
	known bool
}

// Of makes a known scalar from a float.
func Of(v float64) Scalar {
	return Scalar{val: v, known: true}
}

// Unset returns the unknown scalar. Equivalent to the zero value; spelled
// out for call sites that clear a parameter on purpose.
func Unset() Scalar {
	return Scalar{}
}

// Known is a predicate: does s carry a value?
func (s Scalar) Known() bool {
	return s.known
}

// Float returns the carried value, with ok reporting whether there is one.
func (s Scalar) Float() (float64, bool) {
	return s.val, s.known
}

// Or returns s if it is known, and the fallback t otherwise.
func (s Scalar) Or(t Scalar) Scalar {
	if s.known {
		return s
	}
	return t
}

// Pretty Stringer for optional scalars.
func (s Scalar) String() string {
	if !s.known {
		return "<unknown>"
	}
	return fmt.Sprintf("%g", s.val)
}
