package curve

import (
	"fmt"
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/blind-sig/internal/params"
)

// Scalar is an integer mod N, the order of secp256k1.
//
// Scalars are immutable: every operation returns a new value.
// The zero value represents 0.
type Scalar struct {
	s *saferith.Nat
}

// NewScalar returns x mod N.
func NewScalar(x *saferith.Nat) Scalar {
	return Scalar{s: fn.Reduce(x)}
}

// NewScalarUint64 returns x mod N.
func NewScalarUint64(x uint64) Scalar {
	return Scalar{s: fn.FromUint64(x)}
}

// NewScalarBig returns x mod N. Negative values are mapped to their residue.
func NewScalarBig(x *big.Int) Scalar {
	r := new(big.Int).Mod(x, fn.Big())
	return Scalar{s: fn.FromBytes(r.Bytes())}
}

// ScalarFromBytes parses a 32 byte big-endian scalar.
//
// Unlike NewScalar, values >= N are rejected rather than reduced.
func ScalarFromBytes(data []byte) (Scalar, error) {
	if len(data) != params.BytesScalar {
		return Scalar{}, makeError(ErrInvalidEncoding,
			fmt.Sprintf("curve.Scalar: invalid length %d, expected %d", len(data), params.BytesScalar))
	}
	n := new(saferith.Nat).SetBytes(data)
	if !fn.IsReduced(n) {
		return Scalar{}, makeError(ErrScalarOutOfRange, "curve.Scalar: value is >= N")
	}
	return Scalar{s: fn.Reduce(n)}, nil
}

// ScalarFromHash interprets a digest as an unsigned big-endian integer and
// reduces it mod N.
//
// Digests of 64 bytes or more make the bias of the reduction negligible.
func ScalarFromHash(digest []byte) Scalar {
	return Scalar{s: fn.FromBytes(digest)}
}

func (s Scalar) nat() *saferith.Nat {
	if s.s == nil {
		return fn.FromUint64(0)
	}
	return s.s
}

// Add returns s + t mod N.
func (s Scalar) Add(t Scalar) Scalar {
	return Scalar{s: fn.Add(s.nat(), t.nat())}
}

// Sub returns s - t mod N.
func (s Scalar) Sub(t Scalar) Scalar {
	return Scalar{s: fn.Sub(s.nat(), t.nat())}
}

// Mul returns s • t mod N.
func (s Scalar) Mul(t Scalar) Scalar {
	return Scalar{s: fn.Mul(s.nat(), t.nat())}
}

// Negate returns -s mod N.
func (s Scalar) Negate() Scalar {
	return Scalar{s: fn.Negate(s.nat())}
}

// Invert returns s⁻¹ mod N, or field.ErrNoInverse if s = 0.
func (s Scalar) Invert() (Scalar, error) {
	inv, err := fn.Inverse(s.nat())
	if err != nil {
		return Scalar{}, fmt.Errorf("curve.Scalar: %w", err)
	}
	return Scalar{s: inv}, nil
}

// IsZero returns true if s = 0.
func (s Scalar) IsZero() bool {
	return fn.IsZero(s.nat())
}

// Equal returns true if s = t.
func (s Scalar) Equal(t Scalar) bool {
	return fn.Equal(s.nat(), t.nat())
}

// Nat returns a copy of the underlying integer, in [0, N).
func (s Scalar) Nat() *saferith.Nat {
	return fn.Reduce(s.nat())
}

// Big returns the scalar as a big.Int.
func (s Scalar) Big() *big.Int {
	return s.nat().Big()
}

// Bytes returns the 32 byte big-endian encoding of s.
func (s Scalar) Bytes() []byte {
	return fn.Bytes(s.nat())
}

// bits returns the bits of s, most significant first, without leading zeros.
func (s Scalar) bits() []bool {
	data := s.Bytes()
	out := make([]bool, 0, 8*len(data))
	started := false
	for _, b := range data {
		for i := 7; i >= 0; i-- {
			bit := (b>>uint(i))&1 == 1
			if bit {
				started = true
			}
			if started {
				out = append(out, bit)
			}
		}
	}
	return out
}
