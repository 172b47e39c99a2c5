// Package cost defines Cost, the extended integer used for operator costs,
// goal distances and saturated cost values.
//
// A Cost is one of three variants:
//
//	Finite(n) – an ordinary integer n (may be negative for saturated costs).
//	Inf       – infinitely costly / unreachable / operator cannot help.
//	NegInf    – no constraint; the cost is fully absorbable.
//
// The variants are ordered NegInf < Finite(n) < Inf, and the arithmetic
// helpers below spell out how the sentinels propagate:
//
//	Add(a, b)     – NegInf absorbs everything, then Inf absorbs finite values.
//	Diff(a, b)    – a - b for a distance a and a finite distance b.
//	LeftSub(a, b) – max(0, a - b) for a remaining cost a ≥ 0; Inf stays Inf,
//	                subtracting Inf leaves 0, subtracting NegInf panics.
//
// Cost is a comparable value type: it can be used as a map key and compared
// with ==, which is the same as Equal.
package cost

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrSyntax indicates that a textual cost literal could not be parsed.
var ErrSyntax = errors.New("cost: invalid cost literal")

// kind discriminates the three variants of Cost.
type kind uint8

const (
	finite kind = iota // the zero value is Finite(0)
	posInf
	negInf
)

// Cost is a closed sum type over Finite(int), Inf and NegInf.
// The zero value is Finite(0).
type Cost struct {
	k kind
	v int
}

var (
	// Zero is Finite(0).
	Zero = Cost{}

	// Inf is positive infinity.
	Inf = Cost{k: posInf}

	// NegInf is negative infinity.
	NegInf = Cost{k: negInf}
)

// Finite returns the finite cost v.
func Finite(v int) Cost {
	return Cost{v: v}
}

// IsFinite reports whether c is neither Inf nor NegInf.
func (c Cost) IsFinite() bool { return c.k == finite }

// IsInf reports whether c is positive infinity.
func (c Cost) IsInf() bool { return c.k == posInf }

// IsNegInf reports whether c is negative infinity.
func (c Cost) IsNegInf() bool { return c.k == negInf }

// IsZero reports whether c is Finite(0).
func (c Cost) IsZero() bool { return c.k == finite && c.v == 0 }

// IsNonNegative reports whether c is Inf or a finite value ≥ 0.
func (c Cost) IsNonNegative() bool {
	return c.k == posInf || (c.k == finite && c.v >= 0)
}

// Int returns the integer value of a finite cost. It panics on Inf and NegInf:
// callers must branch on the sentinels before doing plain arithmetic.
func (c Cost) Int() int {
	if c.k != finite {
		panic(fmt.Sprintf("cost: Int called on %s", c))
	}
	return c.v
}

// Equal reports whether c and d denote the same cost.
func (c Cost) Equal(d Cost) bool { return c == d }

// Cmp returns -1, 0 or +1 depending on whether c is less than, equal to
// or greater than d under the order NegInf < Finite(n) < Inf.
func (c Cost) Cmp(d Cost) int {
	if c.k != d.k {
		return rank(c.k) - rank(d.k)
	}
	if c.k != finite || c.v == d.v {
		return 0
	}
	if c.v < d.v {
		return -1
	}
	return 1
}

// rank maps a kind onto its position in the total order.
func rank(k kind) int {
	switch k {
	case negInf:
		return -1
	case posInf:
		return 1
	default:
		return 0
	}
}

// Less reports whether c < d.
func (c Cost) Less(d Cost) bool { return c.Cmp(d) < 0 }

// Max returns the larger of a and b.
func Max(a, b Cost) Cost {
	if a.Less(b) {
		return b
	}
	return a
}

// Min returns the smaller of a and b.
func Min(a, b Cost) Cost {
	if b.Less(a) {
		return b
	}
	return a
}

// Add returns a + b. NegInf absorbs every operand; otherwise Inf absorbs
// finite operands.
func Add(a, b Cost) Cost {
	switch {
	case a.k == negInf || b.k == negInf:
		return NegInf
	case a.k == posInf || b.k == posInf:
		return Inf
	default:
		return Finite(a.v + b.v)
	}
}

// Diff returns a - b where b must be finite. An infinite a stays infinite.
// Used for h-value differences along a transition.
func Diff(a, b Cost) Cost {
	if b.k != finite {
		panic(fmt.Sprintf("cost: Diff with non-finite subtrahend %s", b))
	}
	if a.k != finite {
		return a
	}
	return Finite(a.v - b.v)
}

// LeftSub returns max(0, a - b), the remaining cost after saturating b out of a.
//
// Rules:
//   - a must be Inf or finite and ≥ 0 (remaining costs are never negative).
//   - a == Inf yields Inf: an unusable operator stays unusable.
//   - b == Inf yields 0.
//   - b == NegInf panics: absorbing saturations are handled by the caller.
func LeftSub(a, b Cost) Cost {
	if !a.IsNonNegative() {
		panic(fmt.Sprintf("cost: LeftSub on negative remaining cost %s", a))
	}
	if b.k == negInf {
		panic("cost: LeftSub with -inf subtrahend")
	}
	if a.k == posInf {
		return Inf
	}
	if b.k == posInf {
		return Zero
	}
	if d := a.v - b.v; d > 0 {
		return Finite(d)
	}
	return Zero
}

// Finites converts plain integers to finite costs.
func Finites(values ...int) []Cost {
	out := make([]Cost, len(values))
	for i, v := range values {
		out[i] = Finite(v)
	}
	return out
}

// String renders c as "inf", "-inf" or a decimal integer.
func (c Cost) String() string {
	switch c.k {
	case posInf:
		return "inf"
	case negInf:
		return "-inf"
	default:
		return strconv.Itoa(c.v)
	}
}

// Parse reads a cost literal: a decimal integer, or one of "inf", "infinity",
// ".inf" (optionally signed) for the infinite variants.
func Parse(s string) (Cost, error) {
	t := strings.ToLower(strings.TrimSpace(s))
	switch t {
	case "inf", "+inf", "infinity", "+infinity", ".inf", "+.inf":
		return Inf, nil
	case "-inf", "-infinity", "-.inf":
		return NegInf, nil
	}
	v, err := strconv.Atoi(t)
	if err != nil {
		return Zero, fmt.Errorf("%w: %q", ErrSyntax, s)
	}
	return Finite(v), nil
}

// MarshalText implements encoding.TextMarshaler.
func (c Cost) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Cost) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
