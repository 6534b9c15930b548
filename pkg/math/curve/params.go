package curve

import (
	"encoding/hex"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/blind-sig/pkg/math/field"
)

// Domain parameters of secp256k1.
//
// See SEC 2: Recommended Elliptic Curve Domain Parameters, §2.4.1.
// https://www.secg.org/sec2-v2.pdf
const (
	// PHex is the field prime P.
	PHex = "fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f"
	// NHex is the order N of the base point.
	NHex = "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141"
	// GxHex and GyHex are the affine coordinates of the base point G.
	GxHex = "79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
	GyHex = "483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"

	// The curve equation is y² = x³ + a⋅x + b.
	CoefficientA = 0
	CoefficientB = 7
)

var (
	// fp is the base field ℤₚ in which coordinates live.
	fp = field.NewPrime(PHex)
	// fn is the scalar field ℤₙ.
	fn = field.NewPrime(NHex)

	coeffB    = fp.FromUint64(CoefficientB)
	generator = Point{x: mustHex(GxHex), y: mustHex(GyHex)}
)

func mustHex(s string) *saferith.Nat {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return fp.FromBytes(b)
}

// BaseField returns ℤₚ, the field of point coordinates.
func BaseField() *field.Prime {
	return fp
}

// ScalarField returns ℤₙ, with N the order of the group.
func ScalarField() *field.Prime {
	return fn
}

// Order returns the group order N.
func Order() *saferith.Modulus {
	return fn.Modulus()
}
