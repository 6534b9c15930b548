// Package blind implements a blind signature scheme over secp256k1.
//
// A signer holding a key pair (d, d⋅G) signs a message it never sees:
//
//	signer                                requester(m)
//	k, R' = k⋅G            ── R' ──▶
//	                                       a, b random
//	                                       R = a⋅R' + b⋅G
//	                       ◀── R, m' ──    m' = a⁻¹⋅(R.x mod N)⋅H(m)
//	s' = d⋅m' + k          ── s' ──▶
//	                                       s = a⋅s' + b
//
// The signature (s, R) on m verifies when s⋅G = R + ((R.x mod N)⋅H(m))⋅(d⋅G).
//
// None of the arithmetic runs in constant time.
package blind

import (
	"crypto/rand"
	"io"

	"github.com/taurusgroup/blind-sig/pkg/hash"
	"github.com/taurusgroup/blind-sig/pkg/math/curve"
)

// Config selects the collaborators of a Scheme. Zero fields take their default.
type Config struct {
	// Group performs the curve arithmetic. Defaults to curve.Secp256k1{}.
	Group curve.Group
	// Hash maps messages to scalars. Defaults to hash.Keccak256{}.
	Hash hash.Function
	// Rand is the source of nonces, keys and blinding factors. Defaults to crypto/rand.Reader.
	//
	// It must be safe for concurrent use if the Scheme is shared between goroutines,
	// see pool.LockedReader.
	Rand io.Reader
}

// Scheme runs the operations of both roles.
//
// A Scheme holds no mutable state besides its random source.
type Scheme struct {
	group curve.Group
	hash  hash.Function
	rand  io.Reader
}

// NewScheme returns a Scheme using the collaborators in cfg.
func NewScheme(cfg Config) *Scheme {
	s := &Scheme{
		group: cfg.Group,
		hash:  cfg.Hash,
		rand:  cfg.Rand,
	}
	if s.group == nil {
		s.group = curve.Secp256k1{}
	}
	if s.hash == nil {
		s.hash = hash.Keccak256{}
	}
	if s.rand == nil {
		s.rand = rand.Reader
	}
	return s
}

// Group returns the curve backend of the Scheme.
func (s *Scheme) Group() curve.Group {
	return s.group
}

// Hash returns the hash function of the Scheme.
func (s *Scheme) Hash() hash.Function {
	return s.hash
}
