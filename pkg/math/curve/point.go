package curve

import (
	"math/big"

	"github.com/cronokirby/saferith"
)

// Point is an affine point (x, y), or the point at infinity.
//
// A Point is plain data: constructing one with NewPoint does not check that it lies
// on the curve. Points received from outside must go through Group.Validate
// (or Group.IsOnCurve) before being used.
//
// The zero value is the point at infinity.
type Point struct {
	x, y *saferith.Nat
}

// NewPoint returns the point with the given coordinates, without any validation.
func NewPoint(x, y *saferith.Nat) Point {
	return Point{
		x: new(saferith.Nat).SetNat(x),
		y: new(saferith.Nat).SetNat(y),
	}
}

// NewPointBig is NewPoint for big.Int coordinates, which must be non-negative.
func NewPointBig(x, y *big.Int) Point {
	return Point{
		x: new(saferith.Nat).SetBig(x, x.BitLen()),
		y: new(saferith.Nat).SetBig(y, y.BitLen()),
	}
}

// Identity returns the point at infinity.
func Identity() Point {
	return Point{}
}

// Generator returns the canonical base point G of secp256k1.
func Generator() Point {
	return generator
}

// IsIdentity returns true if p is the point at infinity.
func (p Point) IsIdentity() bool {
	return p.x == nil || p.y == nil
}

// X returns a copy of the x coordinate, or nil for the point at infinity.
func (p Point) X() *saferith.Nat {
	if p.IsIdentity() {
		return nil
	}
	return new(saferith.Nat).SetNat(p.x)
}

// Y returns a copy of the y coordinate, or nil for the point at infinity.
func (p Point) Y() *saferith.Nat {
	if p.IsIdentity() {
		return nil
	}
	return new(saferith.Nat).SetNat(p.y)
}

// XScalar returns the x coordinate reduced mod N.
//
// The point at infinity maps to 0.
func (p Point) XScalar() Scalar {
	if p.IsIdentity() {
		return Scalar{}
	}
	return NewScalar(p.x)
}

// Equal returns true if p and q are the same affine point.
func (p Point) Equal(q Point) bool {
	if p.IsIdentity() || q.IsIdentity() {
		return p.IsIdentity() == q.IsIdentity()
	}
	return p.x.Eq(q.x) == 1 && p.y.Eq(q.y) == 1
}

// Negate returns -p = (x, -y).
func (p Point) Negate() Point {
	if p.IsIdentity() {
		return p
	}
	return Point{x: p.x, y: fp.Negate(fp.Reduce(p.y))}
}

// hasOddY reports the parity of the y coordinate, assumed reduced.
func (p Point) hasOddY() bool {
	b := fp.Bytes(p.y)
	return b[len(b)-1]&1 == 1
}
