// Package hash maps messages to scalars of secp256k1.
package hash

import (
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/taurusgroup/blind-sig/internal/params"
	"github.com/taurusgroup/blind-sig/pkg/math/curve"
	"github.com/zeebo/blake3"
	"golang.org/x/crypto/sha3"
)

// Function reduces arbitrary bytes to a scalar in [0, N).
//
// Signers and verifiers must agree on the Function, otherwise no signature verifies.
type Function interface {
	// Name identifies the function, and is used by FromName.
	Name() string

	// HashToScalar returns the digest of data, interpreted as a big-endian
	// integer and reduced mod N.
	HashToScalar(data []byte) curve.Scalar
}

// Keccak256 is the legacy Keccak-256 hash, as used by Ethereum.
//
// The 32 byte digest is read as a two's complement signed integer, so digests with
// the top bit set stand for digest - 2²⁵⁶, and the result is reduced mod N.
// This matches signers which build the integer with a signed big-endian decoder.
type Keccak256 struct{}

// Name implements Function.
func (Keccak256) Name() string {
	return "keccak256"
}

// HashToScalar implements Function.
func (Keccak256) HashToScalar(data []byte) curve.Scalar {
	h := sha3.NewLegacyKeccak256()
	// the underlying hash function never returns an error
	_, _ = h.Write(data)
	return signedToScalar(h.Sum(nil))
}

// signedToScalar interprets digest as a two's complement big-endian integer.
func signedToScalar(digest []byte) curve.Scalar {
	v := new(big.Int).SetBytes(digest)
	if len(digest) > 0 && digest[0]&0x80 != 0 {
		v.Sub(v, new(big.Int).Lsh(big.NewInt(1), uint(8*len(digest))))
	}
	// NewScalarBig maps negative values to their residue
	return curve.NewScalarBig(v)
}

// DefaultDomain is the domain separator used by Blake3 when none is set.
const DefaultDomain = "blind-sig/hash-to-scalar"

// Blake3 hashes with BLAKE3, prefixed by a domain separator.
//
// It reads params.BytesWideHash bytes from the extendable output before reducing mod N.
type Blake3 struct {
	Domain string
}

// Name implements Function.
func (Blake3) Name() string {
	return "blake3"
}

// HashToScalar implements Function.
func (b Blake3) HashToScalar(data []byte) curve.Scalar {
	domain := b.Domain
	if domain == "" {
		domain = DefaultDomain
	}
	h := blake3.New()
	_, _ = h.Write([]byte(domain))
	_, _ = h.Write(data)
	out := make([]byte, params.BytesWideHash)
	if _, err := io.ReadFull(h.Digest(), out); err != nil {
		panic(fmt.Sprintf("hash.Blake3: internal hash failure: %v", err))
	}
	return curve.ScalarFromHash(out)
}

// FromName returns the Function registered under name.
func FromName(name string) (Function, error) {
	switch strings.ToLower(name) {
	case "", Keccak256{}.Name():
		return Keccak256{}, nil
	case Blake3{}.Name():
		return Blake3{}, nil
	default:
		return nil, fmt.Errorf("hash: unsupported function %q", name)
	}
}
