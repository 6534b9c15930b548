package params

const (
	SecParam = 256
	SecBytes = SecParam / 8

	// BytesField is the size of a serialized secp256k1 field element.
	BytesField = SecBytes
	// BytesScalar is the size of a serialized scalar mod N.
	BytesScalar = SecBytes
	// BytesPoint is the size of a compressed SEC1 point: 0x02/0x03 ∥ x.
	BytesPoint = 1 + BytesField
	// BytesPointUncompressed is the size of an uncompressed SEC1 point: 0x04 ∥ x ∥ y.
	BytesPointUncompressed = 1 + 2*BytesField
	// BytesSignature is the size of a serialized blind signature: R ∥ s.
	BytesSignature = BytesPoint + BytesScalar

	// BytesWideHash is the output length requested from XOF-style hashes before
	// reduction mod N, so that the bias of the reduction is negligible.
	BytesWideHash = 2 * SecBytes

	// MaxSampleIterations bounds rejection sampling loops.
	//
	// For secp256k1 the probability of rejecting a 256-bit candidate is about 2⁻¹²⁸,
	// so this bound is never reached with a working source of randomness.
	MaxSampleIterations = 255
)
