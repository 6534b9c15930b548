package curve

import (
	"fmt"
	"strings"

	"github.com/cronokirby/saferith"
)

// Group is the capability needed to do arithmetic on secp256k1 points.
//
// Implementations differ in how the group law is computed, but must agree on
// every result. Protocols should only depend on this interface.
type Group interface {
	// Name identifies the implementation.
	Name() string

	// Generator returns the canonical base point G.
	Generator() Point

	// IsOnCurve returns true if y² = x³ + 7 (mod P) with both coordinates reduced mod P.
	// The point at infinity is the group identity and is always accepted.
	IsOnCurve(p Point) bool

	// Validate builds a point from untrusted coordinates, returning ErrPointNotOnCurve
	// if they do not describe a point on the curve.
	Validate(x, y *saferith.Nat) (Point, error)

	// Add returns p + q, for points on the curve.
	Add(p, q Point) Point

	// Multiply returns k⋅p, for a point on the curve.
	Multiply(k Scalar, p Point) Point

	// MultiplyBase returns k⋅G.
	MultiplyBase(k Scalar) Point
}

// FromName returns the Group implementation registered under name.
func FromName(name string) (Group, error) {
	switch strings.ToLower(name) {
	case Secp256k1{}.Name():
		return Secp256k1{}, nil
	case Decred{}.Name():
		return Decred{}, nil
	default:
		return nil, fmt.Errorf("curve: unsupported group implementation %q", name)
	}
}

// SupportedGroups lists the names understood by FromName.
func SupportedGroups() []string {
	return []string{Secp256k1{}.Name(), Decred{}.Name()}
}

// isOnCurve evaluates the curve equation directly in ℤₚ.
func isOnCurve(p Point) bool {
	if p.IsIdentity() {
		return true
	}
	if !fp.IsReduced(p.x) || !fp.IsReduced(p.y) {
		return false
	}
	x, y := fp.Reduce(p.x), fp.Reduce(p.y)
	// y² = x³ + a⋅x + b, with a = 0
	lhs := fp.Square(y)
	rhs := fp.Add(fp.Mul(fp.Square(x), x), coeffB)
	return fp.Equal(lhs, rhs)
}

// validate is shared by the Group implementations.
func validate(x, y *saferith.Nat) (Point, error) {
	if x == nil || y == nil {
		return Point{}, makeError(ErrPointNotOnCurve, "curve: missing coordinate")
	}
	p := Point{x: new(saferith.Nat).SetNat(x), y: new(saferith.Nat).SetNat(y)}
	if !isOnCurve(p) {
		return Point{}, makeError(ErrPointNotOnCurve,
			fmt.Sprintf("curve: (%x, %x) is not on secp256k1", x.Bytes(), y.Bytes()))
	}
	return Point{x: fp.Reduce(x), y: fp.Reduce(y)}, nil
}
