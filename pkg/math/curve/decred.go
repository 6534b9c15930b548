package curve

import (
	"github.com/cronokirby/saferith"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Decred implements Group by delegating to the optimized secp256k1 package from dcrd.
//
// It uses the NonConst variants of the group operations.
type Decred struct{}

// Name implements Group.
func (Decred) Name() string {
	return "decred"
}

// Generator implements Group.
func (Decred) Generator() Point {
	return generator
}

// IsOnCurve implements Group.
func (Decred) IsOnCurve(p Point) bool {
	if p.IsIdentity() {
		return true
	}
	if !fp.IsReduced(p.x) || !fp.IsReduced(p.y) {
		return false
	}
	var x, y secp256k1.FieldVal
	if x.SetByteSlice(fp.Bytes(p.x)) || y.SetByteSlice(fp.Bytes(p.y)) {
		return false
	}
	// y² = x³ + 7
	var lhs, rhs secp256k1.FieldVal
	lhs.SquareVal(&y).Normalize()
	rhs.SquareVal(&x).Mul(&x).AddInt(CoefficientB).Normalize()
	return lhs.Equals(&rhs)
}

// Validate implements Group.
func (d Decred) Validate(x, y *saferith.Nat) (Point, error) {
	return validate(x, y)
}

// Add implements Group.
func (Decred) Add(p, q Point) Point {
	var jp, jq, result secp256k1.JacobianPoint
	toDecred(p, &jp)
	toDecred(q, &jq)
	secp256k1.AddNonConst(&jp, &jq, &result)
	return fromDecred(&result)
}

// Multiply implements Group.
func (Decred) Multiply(k Scalar, p Point) Point {
	if k.IsZero() || p.IsIdentity() {
		return Identity()
	}
	var jp, result secp256k1.JacobianPoint
	toDecred(p, &jp)
	var s secp256k1.ModNScalar
	s.SetByteSlice(k.Bytes())
	secp256k1.ScalarMultNonConst(&s, &jp, &result)
	return fromDecred(&result)
}

// MultiplyBase implements Group.
func (Decred) MultiplyBase(k Scalar) Point {
	if k.IsZero() {
		return Identity()
	}
	var result secp256k1.JacobianPoint
	var s secp256k1.ModNScalar
	s.SetByteSlice(k.Bytes())
	secp256k1.ScalarBaseMultNonConst(&s, &result)
	return fromDecred(&result)
}

// toDecred writes p to out, using (0, 0, 0) for the point at infinity.
func toDecred(p Point, out *secp256k1.JacobianPoint) {
	if p.IsIdentity() {
		out.X.SetInt(0)
		out.Y.SetInt(0)
		out.Z.SetInt(0)
		return
	}
	out.X.SetByteSlice(fp.Bytes(p.x))
	out.Y.SetByteSlice(fp.Bytes(p.y))
	out.Z.SetInt(1)
}

// fromDecred maps p to affine coordinates. Like AddNonConst, it treats both a zero Z
// and X = Y = 0 as the point at infinity: ScalarBaseMultNonConst leaves Z = 1 for k = 0.
func fromDecred(p *secp256k1.JacobianPoint) Point {
	p.X.Normalize()
	p.Y.Normalize()
	p.Z.Normalize()
	if p.Z.IsZero() || (p.X.IsZero() && p.Y.IsZero()) {
		return Identity()
	}
	p.ToAffine()
	x, y := p.X.Bytes(), p.Y.Bytes()
	return Point{x: fp.FromBytes(x[:]), y: fp.FromBytes(y[:])}
}
