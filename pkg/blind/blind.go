package blind

import (
	"fmt"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/blind-sig/pkg/math/curve"
	"github.com/taurusgroup/blind-sig/pkg/math/sample"
)

// GenerateKeyPair samples a private key d in [1, N-1] and returns it with d⋅G.
func (s *Scheme) GenerateKeyPair() (KeyPair, error) {
	d, D, err := sample.ScalarPointPair(s.rand, s.group)
	if err != nil {
		return KeyPair{}, fmt.Errorf("blind.GenerateKeyPair: %w", err)
	}
	return KeyPair{PublicKey: D, PrivateKey: d}, nil
}

// GenerateNonceCommitment samples a fresh nonce k in [1, N-1] and returns it with R' = k⋅G.
//
// Every call draws new randomness, so each session gets its own nonce.
func (s *Scheme) GenerateNonceCommitment() (Commitment, error) {
	k, K, err := sample.ScalarPointPair(s.rand, s.group)
	if err != nil {
		return Commitment{}, fmt.Errorf("blind.GenerateNonceCommitment: %w", err)
	}
	return Commitment{Nonce: k, Point: K}, nil
}

// Blind hides message from the signer who committed to rPrime.
//
// It returns the request to send, and the factors needed later by Unblind.
// ErrZeroBlindedMessage and ErrDegenerateBlinding can be recovered from by calling Blind again.
func (s *Scheme) Blind(rPrime curve.Point, message []byte) (BlindedRequest, BlindingFactors, error) {
	if rPrime.IsIdentity() || !s.group.IsOnCurve(rPrime) {
		return BlindedRequest{}, BlindingFactors{}, makeError(ErrInvalidCommitment,
			fmt.Sprintf("blind.Blind: commitment %v is not a valid point", rPrime))
	}

	a, err := sample.Scalar(s.rand)
	if err != nil {
		return BlindedRequest{}, BlindingFactors{}, fmt.Errorf("blind.Blind: sample a: %w", err)
	}
	b, err := sample.Scalar(s.rand)
	if err != nil {
		return BlindedRequest{}, BlindingFactors{}, fmt.Errorf("blind.Blind: sample b: %w", err)
	}

	// R = a⋅R' + b⋅G
	R := s.group.Add(s.group.Multiply(a, rPrime), s.group.MultiplyBase(b))
	if !s.group.IsOnCurve(R) {
		panic("blind.Blind: a⋅R' + b⋅G is not on the curve")
	}
	if R.IsIdentity() {
		return BlindedRequest{}, BlindingFactors{}, makeError(ErrDegenerateBlinding,
			"blind.Blind: a⋅R' + b⋅G is the identity")
	}

	aInv, err := a.Invert()
	if err != nil {
		// a is sampled non zero
		panic(fmt.Sprintf("blind.Blind: %v", err))
	}
	h := s.hash.HashToScalar(message)
	// m' = a⁻¹⋅(R.x mod N)⋅h
	blindM := aInv.Mul(R.XScalar()).Mul(h)
	if blindM.IsZero() {
		return BlindedRequest{}, BlindingFactors{}, makeError(ErrZeroBlindedMessage,
			"blind.Blind: blinded message is 0")
	}

	return BlindedRequest{R: R, BlindM: blindM.Nat()}, BlindingFactors{A: a, B: b}, nil
}

// BlindSign returns s' = d⋅m' + k mod N, with d the private key, k the nonce of the
// commitment sent earlier in this session, and m' the blinded message.
//
// m' is rejected if it is >= N or 0.
func (s *Scheme) BlindSign(privateKey, nonce curve.Scalar, blindM *saferith.Nat) (curve.Scalar, error) {
	if blindM == nil {
		return curve.Scalar{}, makeError(ErrZeroBlindedMessage, "blind.BlindSign: missing blinded message")
	}
	if _, _, lt := blindM.CmpMod(curve.Order()); lt != 1 {
		return curve.Scalar{}, makeError(ErrBlindedMessageOutOfRange,
			fmt.Sprintf("blind.BlindSign: blinded message %x is >= N", blindM.Bytes()))
	}
	if blindM.EqZero() == 1 {
		return curve.Scalar{}, makeError(ErrZeroBlindedMessage, "blind.BlindSign: blinded message is 0")
	}
	if privateKey.IsZero() || nonce.IsZero() {
		return curve.Scalar{}, makeError(ErrInvalidScalar, "blind.BlindSign: private key and nonce must be non zero")
	}
	m := curve.NewScalar(blindM)
	return privateKey.Mul(m).Add(nonce), nil
}

// Unblind returns s = a⋅s' + b mod N.
func Unblind(a, b, sPrime curve.Scalar) curve.Scalar {
	return a.Mul(sPrime).Add(b)
}

// Unblind turns the signer's answer into the final signature, using the R of req.
func (f BlindingFactors) Unblind(req BlindedRequest, sPrime curve.Scalar) Signature {
	return Signature{S: Unblind(f.A, f.B, sPrime), R: req.R}
}

// Verify checks sig on message under publicKey.
//
// A signature that does not match returns false with a nil error. An error wrapping
// ErrInvalidPoint is returned when sig.R or publicKey is not a valid point.
func (s *Scheme) Verify(sig Signature, message []byte, publicKey curve.Point) (bool, error) {
	if sig.R.IsIdentity() || !s.group.IsOnCurve(sig.R) {
		return false, makeError(ErrInvalidPoint, "blind.Verify: signature R is not a valid point")
	}
	if publicKey.IsIdentity() || !s.group.IsOnCurve(publicKey) {
		return false, makeError(ErrInvalidPoint, "blind.Verify: public key is not a valid point")
	}
	h := s.hash.HashToScalar(message)
	// e = (R.x mod N)⋅h
	e := sig.R.XScalar().Mul(h)
	left := s.group.MultiplyBase(sig.S)
	right := s.group.Add(sig.R, s.group.Multiply(e, publicKey))
	return left.Equal(right), nil
}
