package curve

import (
	"fmt"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/blind-sig/internal/params"
)

// SEC1 format bytes.
const (
	formatCompressedEven byte = 0x02
	formatCompressedOdd  byte = 0x03
	formatUncompressed   byte = 0x04
)

// MarshalBinary implements encoding.BinaryMarshaler.
//
// The point is written in compressed form: 0x02 or 0x03 ∥ 32-byte x coordinate.
// The point must be on the curve; the identity cannot be serialized.
func (p Point) MarshalBinary() ([]byte, error) {
	if p.IsIdentity() {
		return nil, makeError(ErrIdentity, "curve.Point.MarshalBinary: tries to marshal identity")
	}
	data := make([]byte, 0, params.BytesPoint)
	// Choose the format byte depending on the oddness of the Y coordinate.
	format := formatCompressedEven
	if p.hasOddY() {
		format = formatCompressedOdd
	}
	data = append(data, format)
	data = append(data, fp.Bytes(p.x)...)
	return data, nil
}

// MarshalUncompressed returns 0x04 ∥ x ∥ y.
func (p Point) MarshalUncompressed() ([]byte, error) {
	if p.IsIdentity() {
		return nil, makeError(ErrIdentity, "curve.Point.MarshalUncompressed: tries to marshal identity")
	}
	data := make([]byte, 0, params.BytesPointUncompressed)
	data = append(data, formatUncompressed)
	data = append(data, fp.Bytes(p.x)...)
	data = append(data, fp.Bytes(p.y)...)
	return data, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
//
// Both compressed and uncompressed SEC1 encodings are accepted.
// The resulting point is always on the curve.
func (p *Point) UnmarshalBinary(data []byte) error {
	if len(data) == 0 {
		return makeError(ErrInvalidEncoding, "curve.Point.Unmarshal: empty data")
	}
	switch format := data[0]; {
	case len(data) == params.BytesPoint && (format == formatCompressedEven || format == formatCompressedOdd):
		x := new(saferith.Nat).SetBytes(data[1:])
		if !fp.IsReduced(x) {
			return makeError(ErrPointNotOnCurve, "curve.Point.Unmarshal: invalid point: x >= field prime")
		}
		x = fp.Reduce(x)
		// Attempt to calculate the y coordinate for the given x coordinate such
		// that the result pair is a point on the secp256k1 curve and the
		// solution with desired oddness is chosen.
		y2 := fp.Add(fp.Mul(fp.Square(x), x), coeffB)
		y, err := fp.Sqrt(y2)
		if err != nil {
			return makeError(ErrPointNotOnCurve,
				fmt.Sprintf("curve.Point.Unmarshal: invalid point: x coordinate %x is not on the secp256k1 curve", data[1:]))
		}
		decoded := Point{x: x, y: y}
		if decoded.hasOddY() != (format == formatCompressedOdd) {
			decoded = decoded.Negate()
		}
		*p = decoded
		return nil
	case len(data) == params.BytesPointUncompressed && format == formatUncompressed:
		x := new(saferith.Nat).SetBytes(data[1 : 1+params.BytesField])
		y := new(saferith.Nat).SetBytes(data[1+params.BytesField:])
		decoded, err := validate(x, y)
		if err != nil {
			return err
		}
		*p = decoded
		return nil
	default:
		return makeError(ErrInvalidEncoding,
			fmt.Sprintf("curve.Point.Unmarshal: invalid encoding (length %d, format %#x)", len(data), format))
	}
}

// String implements fmt.Stringer.
func (p Point) String() string {
	if p.IsIdentity() {
		return "Point{Identity}"
	}
	return fmt.Sprintf("Point{X: %x, Y: %x}", p.x.Bytes(), p.y.Bytes())
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (s Scalar) MarshalBinary() ([]byte, error) {
	return s.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
//
// The data must be exactly 32 bytes encoding a value < N.
func (s *Scalar) UnmarshalBinary(data []byte) error {
	out, err := ScalarFromBytes(data)
	if err != nil {
		return err
	}
	*s = out
	return nil
}

// String implements fmt.Stringer.
func (s Scalar) String() string {
	return fmt.Sprintf("%x", s.Bytes())
}
