package curve

import (
	"github.com/cronokirby/saferith"
)

// Secp256k1 implements Group with arithmetic over field.Prime.
//
// Points are lifted to Jacobian coordinates (X, Y, Z), representing the affine
// point (X/Z², Y/Z³), so that a whole computation needs a single inversion.
//
// None of the operations run in constant time.
type Secp256k1 struct{}

// Name implements Group.
func (Secp256k1) Name() string {
	return "secp256k1"
}

// Generator implements Group.
func (Secp256k1) Generator() Point {
	return generator
}

// IsOnCurve implements Group.
func (Secp256k1) IsOnCurve(p Point) bool {
	return isOnCurve(p)
}

// Validate implements Group.
func (Secp256k1) Validate(x, y *saferith.Nat) (Point, error) {
	return validate(x, y)
}

// Add implements Group.
func (Secp256k1) Add(p, q Point) Point {
	if p.IsIdentity() {
		return q
	}
	if q.IsIdentity() {
		return p
	}
	jp, jq := toJacobian(p), toJacobian(q)
	if p.Equal(q) {
		return jp.double().toAffine()
	}
	return jp.add(jq).toAffine()
}

// Multiply implements Group.
//
// The bits of k are processed from most to least significant: the accumulator
// is doubled, and p is added when the bit is set.
func (Secp256k1) Multiply(k Scalar, p Point) Point {
	if p.IsIdentity() || k.IsZero() {
		return Identity()
	}
	base := toJacobian(p)
	acc := jacobianIdentity()
	for _, bit := range k.bits() {
		acc = acc.double()
		if bit {
			acc = acc.add(base)
		}
	}
	return acc.toAffine()
}

// MultiplyBase implements Group.
func (g Secp256k1) MultiplyBase(k Scalar) Point {
	return g.Multiply(k, generator)
}

// jacobianPoint is (X, Y, Z) with all coordinates reduced mod P.
// Z = 0 represents the point at infinity.
type jacobianPoint struct {
	x, y, z *saferith.Nat
}

func jacobianIdentity() jacobianPoint {
	zero := fp.FromUint64(0)
	return jacobianPoint{x: zero, y: zero, z: zero}
}

func toJacobian(p Point) jacobianPoint {
	if p.IsIdentity() {
		return jacobianIdentity()
	}
	return jacobianPoint{x: fp.Reduce(p.x), y: fp.Reduce(p.y), z: fp.FromUint64(1)}
}

func (p jacobianPoint) isIdentity() bool {
	return fp.IsZero(p.z)
}

// toAffine reverses the Jacobian transform: (X/Z², Y/Z³).
func (p jacobianPoint) toAffine() Point {
	if p.isIdentity() {
		return Identity()
	}
	zInv, err := fp.Inverse(p.z)
	if err != nil {
		// z ≠ 0 and P is prime
		panic("curve: Jacobian z coordinate has no inverse")
	}
	zInv2 := fp.Square(zInv)
	zInv3 := fp.Mul(zInv2, zInv)
	return Point{x: fp.Mul(p.x, zInv2), y: fp.Mul(p.y, zInv3)}
}

// double returns 2⋅p.
//
// See https://hyperelliptic.org/EFD/g1p/auto-shortw-jacobian-0.html#doubling-dbl-2009-l
func (p jacobianPoint) double() jacobianPoint {
	if p.isIdentity() || fp.IsZero(p.y) {
		return jacobianIdentity()
	}
	two := fp.FromUint64(2)
	// A = X1²
	a := fp.Square(p.x)
	// B = Y1²
	b := fp.Square(p.y)
	// C = B²
	c := fp.Square(b)
	// (X1+B)²
	d := fp.Square(fp.Add(p.x, b))
	// D = 2⋅((X1+B)²-A-C)
	d = fp.Mul(two, fp.Sub(fp.Sub(d, a), c))
	// E = 3⋅A
	e := fp.Mul(fp.FromUint64(3), a)
	// F = E²
	f := fp.Square(e)

	// X3 = F-2⋅D
	x3 := fp.Sub(f, fp.Mul(two, d))
	// Y3 = E⋅(D-X3)-8⋅C
	y3 := fp.Sub(fp.Mul(e, fp.Sub(d, x3)), fp.Mul(fp.FromUint64(8), c))
	// Z3 = 2⋅Y1⋅Z1
	z3 := fp.Mul(two, fp.Mul(p.y, p.z))
	return jacobianPoint{x: x3, y: y3, z: z3}
}

// add returns p + q, falling back to doubling when p = q.
//
// See https://hyperelliptic.org/EFD/g1p/auto-shortw-jacobian-0.html#addition-add-2007-bl
func (p jacobianPoint) add(q jacobianPoint) jacobianPoint {
	if p.isIdentity() {
		return q
	}
	if q.isIdentity() {
		return p
	}
	two := fp.FromUint64(2)
	z1z1 := fp.Square(p.z)
	z2z2 := fp.Square(q.z)
	u1 := fp.Mul(p.x, z2z2)
	u2 := fp.Mul(q.x, z1z1)
	s1 := fp.Mul(p.y, fp.Mul(q.z, z2z2))
	s2 := fp.Mul(q.y, fp.Mul(p.z, z1z1))

	h := fp.Sub(u2, u1)
	// r = 2⋅(S2-S1)
	r := fp.Mul(two, fp.Sub(s2, s1))
	if fp.IsZero(h) {
		if fp.IsZero(r) {
			// same x and same y
			return p.double()
		}
		// q = -p
		return jacobianIdentity()
	}

	// I = (2⋅H)²
	i := fp.Square(fp.Mul(two, h))
	// J = H⋅I
	j := fp.Mul(h, i)
	// V = U1⋅I
	v := fp.Mul(u1, i)

	// X3 = r²-J-2⋅V
	x3 := fp.Sub(fp.Sub(fp.Square(r), j), fp.Mul(two, v))
	// Y3 = r⋅(V-X3)-2⋅S1⋅J
	y3 := fp.Sub(fp.Mul(r, fp.Sub(v, x3)), fp.Mul(two, fp.Mul(s1, j)))
	// (Z1+Z2)²-Z1Z1-Z2Z2
	z3 := fp.Sub(fp.Sub(fp.Square(fp.Add(p.z, q.z)), z1z1), z2z2)
	// Z3 = (...)⋅H
	z3 = fp.Mul(z3, h)
	return jacobianPoint{x: x3, y: y3, z: z3}
}
