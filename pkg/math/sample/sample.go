package sample

import (
	"fmt"
	"io"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/blind-sig/internal/params"
	"github.com/taurusgroup/blind-sig/pkg/math/curve"
)

// ErrMaxIterations is returned when no candidate was accepted after
// params.MaxSampleIterations draws.
var ErrMaxIterations = fmt.Errorf("sample: failed to generate after %d iterations", params.MaxSampleIterations)

// Scalar samples a scalar uniformly in [1, N-1].
//
// Candidates that are 0 or >= N are rejected and redrawn. For secp256k1 the
// probability of a single rejection is below 2⁻¹²⁷, so hitting the iteration bound
// means the reader is broken.
func Scalar(rand io.Reader) (curve.Scalar, error) {
	n := curve.Order()
	buf := make([]byte, params.BytesScalar)
	candidate := new(saferith.Nat)
	for i := 0; i < params.MaxSampleIterations; i++ {
		if _, err := io.ReadFull(rand, buf); err != nil {
			return curve.Scalar{}, fmt.Errorf("sample: read randomness: %w", err)
		}
		candidate.SetBytes(buf)
		if _, _, lt := candidate.CmpMod(n); lt != 1 {
			continue
		}
		if candidate.EqZero() == 1 {
			continue
		}
		return curve.NewScalar(candidate), nil
	}
	return curve.Scalar{}, ErrMaxIterations
}

// ScalarPointPair samples a scalar k in [1, N-1] and returns it along with k⋅G.
func ScalarPointPair(rand io.Reader, group curve.Group) (curve.Scalar, curve.Point, error) {
	k, err := Scalar(rand)
	if err != nil {
		return curve.Scalar{}, curve.Point{}, err
	}
	return k, group.MultiplyBase(k), nil
}
