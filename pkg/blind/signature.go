package blind

import (
	"fmt"

	"github.com/taurusgroup/blind-sig/internal/params"
)

// MarshalBinary implements encoding.BinaryMarshaler.
//
// The encoding is the compressed point R followed by the 32 byte scalar s.
func (sig Signature) MarshalBinary() ([]byte, error) {
	r, err := sig.R.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("blind.Signature: %w", err)
	}
	out := make([]byte, 0, params.BytesSignature)
	out = append(out, r...)
	out = append(out, sig.S.Bytes()...)
	return out, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
//
// R is checked to be on the curve, and s must be < N.
func (sig *Signature) UnmarshalBinary(data []byte) error {
	if len(data) != params.BytesSignature {
		return fmt.Errorf("blind.Signature: invalid length %d, expected %d", len(data), params.BytesSignature)
	}
	var out Signature
	if err := out.R.UnmarshalBinary(data[:params.BytesPoint]); err != nil {
		return fmt.Errorf("blind.Signature: R: %w", err)
	}
	if err := out.S.UnmarshalBinary(data[params.BytesPoint:]); err != nil {
		return fmt.Errorf("blind.Signature: s: %w", err)
	}
	*sig = out
	return nil
}
