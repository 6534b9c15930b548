package blind

import "errors"

// ErrorKind identifies a kind of error. It has full support for errors.Is and
// errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

const (
	// ErrInvalidPoint is returned by Verify when the signature nonce or the public
	// key is not a point on the curve, or is the identity.
	ErrInvalidPoint = ErrorKind("ErrInvalidPoint")

	// ErrInvalidCommitment is returned by Blind when the signer's commitment R'
	// is not a point on the curve, or is the identity.
	ErrInvalidCommitment = ErrorKind("ErrInvalidCommitment")

	// ErrZeroBlindedMessage is returned when the blinded message is 0.
	// The requester can recover by blinding again with fresh factors.
	ErrZeroBlindedMessage = ErrorKind("ErrZeroBlindedMessage")

	// ErrBlindedMessageOutOfRange is returned by BlindSign when the blinded
	// message is >= N.
	ErrBlindedMessageOutOfRange = ErrorKind("ErrBlindedMessageOutOfRange")

	// ErrDegenerateBlinding is returned by Blind when a⋅R' + b⋅G is the identity,
	// which has no x coordinate. The requester can recover by blinding again.
	ErrDegenerateBlinding = ErrorKind("ErrDegenerateBlinding")

	// ErrInvalidScalar is returned by BlindSign when the private key or nonce is 0.
	ErrInvalidScalar = ErrorKind("ErrInvalidScalar")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error raised while running the blind signature scheme.
// It wraps an ErrorKind, which errors.Is can match.
type Error struct {
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

func makeError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}

// IsRecoverable returns true for errors that go away when the requester blinds
// again with fresh blinding factors.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrZeroBlindedMessage) || errors.Is(err, ErrDegenerateBlinding)
}
