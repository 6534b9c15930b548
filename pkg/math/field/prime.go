// Package field implements modular arithmetic over a prime modulus.
//
// Elements are represented as *saferith.Nat values, and every operation
// returns a freshly allocated element reduced into [0, p).
// Apart from Reduce and the constructors, operations expect their inputs to
// already be reduced: saferith truncates operands to the size of the modulus.
package field

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"

	"github.com/cronokirby/saferith"
)

// ErrNoInverse is returned by Prime.Inverse when the element shares a factor
// with the modulus. For a prime modulus this only happens for zero.
var ErrNoInverse = errors.New("field: element has no inverse")

// ErrNoSquareRoot is returned by Prime.Sqrt when the element is not a quadratic residue.
var ErrNoSquareRoot = errors.New("field: element is not a square")

// Prime represents ℤₚ for a prime p.
type Prime struct {
	m    *saferith.Modulus
	big  *big.Int
	size int
	// sqrtExp = (p+1)/4, only set when p = 3 mod 4
	sqrtExp *saferith.Nat
}

// NewPrime creates the field ℤₚ from the big-endian hexadecimal encoding of p.
//
// It panics if the string is not valid hex, since moduli are compile-time constants.
func NewPrime(hexModulus string) *Prime {
	b, err := hex.DecodeString(hexModulus)
	if err != nil {
		panic(fmt.Sprintf("field: invalid modulus %q: %v", hexModulus, err))
	}
	p := new(big.Int).SetBytes(b)
	if p.Sign() <= 0 || p.Bit(0) == 0 {
		panic(fmt.Sprintf("field: modulus must be an odd prime, got %x", p))
	}
	out := &Prime{
		m:    saferith.ModulusFromBytes(b),
		big:  p,
		size: (p.BitLen() + 7) / 8,
	}
	// p = 3 mod 4
	if p.Bit(1) == 1 {
		e := new(big.Int).Add(p, big.NewInt(1))
		e.Rsh(e, 2)
		out.sqrtExp = new(saferith.Nat).SetBig(e, p.BitLen())
	}
	return out
}

// Modulus returns the underlying saferith modulus.
func (p *Prime) Modulus() *saferith.Modulus {
	return p.m
}

// Big returns a copy of p as a big.Int.
func (p *Prime) Big() *big.Int {
	return new(big.Int).Set(p.big)
}

// BitLen returns the number of bits in p.
func (p *Prime) BitLen() int {
	return p.big.BitLen()
}

// ByteLen returns the number of bytes needed to encode an element.
func (p *Prime) ByteLen() int {
	return p.size
}

// Reduce returns x mod p, for x of any size.
func (p *Prime) Reduce(x *saferith.Nat) *saferith.Nat {
	return new(saferith.Nat).Mod(x, p.m)
}

// FromBytes interprets b as a big-endian integer and reduces it mod p.
func (p *Prime) FromBytes(b []byte) *saferith.Nat {
	return p.Reduce(new(saferith.Nat).SetBytes(b))
}

// FromUint64 returns x mod p.
func (p *Prime) FromUint64(x uint64) *saferith.Nat {
	return p.Reduce(new(saferith.Nat).SetUint64(x))
}

// IsReduced returns true if x ∈ [0, p).
func (p *Prime) IsReduced(x *saferith.Nat) bool {
	_, _, lt := x.CmpMod(p.m)
	return lt == 1
}

// Add returns x + y mod p.
func (p *Prime) Add(x, y *saferith.Nat) *saferith.Nat {
	return new(saferith.Nat).ModAdd(x, y, p.m)
}

// Sub returns x - y mod p.
func (p *Prime) Sub(x, y *saferith.Nat) *saferith.Nat {
	return new(saferith.Nat).ModSub(x, y, p.m)
}

// Mul returns x • y mod p.
func (p *Prime) Mul(x, y *saferith.Nat) *saferith.Nat {
	return new(saferith.Nat).ModMul(x, y, p.m)
}

// Square returns x² mod p.
func (p *Prime) Square(x *saferith.Nat) *saferith.Nat {
	return new(saferith.Nat).ModMul(x, x, p.m)
}

// Negate returns -x mod p.
func (p *Prime) Negate(x *saferith.Nat) *saferith.Nat {
	return new(saferith.Nat).ModNeg(x, p.m)
}

// Inverse returns x⁻¹ mod p.
//
// An error is returned if x has no inverse, which for a prime p means x = 0.
func (p *Prime) Inverse(x *saferith.Nat) (*saferith.Nat, error) {
	if p.IsZero(x) || x.IsUnit(p.m) != 1 {
		return nil, ErrNoInverse
	}
	return new(saferith.Nat).ModInverse(x, p.m), nil
}

// Sqrt returns a square root y of x, such that y² = x mod p.
//
// Only primes p = 3 mod 4 are supported, where y = x^((p+1)/4).
// Which of the two roots is returned is unspecified.
func (p *Prime) Sqrt(x *saferith.Nat) (*saferith.Nat, error) {
	if p.sqrtExp == nil {
		return nil, fmt.Errorf("field: sqrt not supported for modulus %x", p.big)
	}
	y := new(saferith.Nat).Exp(x, p.sqrtExp, p.m)
	if !p.Equal(p.Square(y), x) {
		return nil, ErrNoSquareRoot
	}
	return y, nil
}

// Equal returns true if x = y mod p.
func (p *Prime) Equal(x, y *saferith.Nat) bool {
	return p.Reduce(x).Eq(p.Reduce(y)) == 1
}

// IsZero returns true if x = 0 mod p.
func (p *Prime) IsZero(x *saferith.Nat) bool {
	return p.Reduce(x).EqZero() == 1
}

// Bytes returns the fixed-size big-endian encoding of x mod p.
func (p *Prime) Bytes(x *saferith.Nat) []byte {
	out := make([]byte, p.size)
	return p.Reduce(x).FillBytes(out)
}
