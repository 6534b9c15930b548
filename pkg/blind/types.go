package blind

import (
	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/blind-sig/pkg/math/curve"
)

// KeyPair is the long-term key of a signer.
type KeyPair struct {
	PublicKey  curve.Point
	PrivateKey curve.Scalar
}

// Commitment is a single-use signer nonce k along with R' = k⋅G.
//
// Only Point is sent to the requester. Nonce must be used for one BlindSign call
// and then discarded: signing two messages with the same nonce reveals the private key.
type Commitment struct {
	Nonce curve.Scalar
	Point curve.Point
}

// BlindingFactors are kept by the requester between Blind and Unblind.
type BlindingFactors struct {
	A, B curve.Scalar
}

// BlindedRequest is produced by the requester.
//
// R stays with the requester to form the final signature, BlindM is sent to the signer.
// BlindM is a raw integer rather than a curve.Scalar so that a signer can
// reject values >= N instead of silently reducing them.
type BlindedRequest struct {
	R      curve.Point
	BlindM *saferith.Nat
}

// Signature is an unblinded signature (s, R).
type Signature struct {
	S curve.Scalar
	R curve.Point
}
