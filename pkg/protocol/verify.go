package protocol

import (
	"github.com/taurusgroup/blind-sig/pkg/blind"
	"github.com/taurusgroup/blind-sig/pkg/math/curve"
)

// Verify checks a finalized signature on behalf of a third party.
//
// It returns StateVerified or StateRejected. An error is returned along with
// StateRejected when sig.R or publicKey is not a valid point.
func Verify(scheme *blind.Scheme, sig blind.Signature, message []byte, publicKey curve.Point) (State, error) {
	valid, err := scheme.Verify(sig, message, publicKey)
	if err != nil {
		return StateRejected, err
	}
	if !valid {
		return StateRejected, nil
	}
	return StateVerified, nil
}
