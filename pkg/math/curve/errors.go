package curve

// ErrorKind identifies a kind of error. It has full support for errors.Is and
// errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrPointNotOnCurve is returned when a pair of coordinates does not satisfy
	// the curve equation, or when a coordinate is not reduced mod P.
	ErrPointNotOnCurve = ErrorKind("ErrPointNotOnCurve")

	// ErrInvalidEncoding is returned when a serialized point or scalar has
	// the wrong length or format byte.
	ErrInvalidEncoding = ErrorKind("ErrInvalidEncoding")

	// ErrScalarOutOfRange is returned when a serialized scalar is >= N.
	ErrScalarOutOfRange = ErrorKind("ErrScalarOutOfRange")

	// ErrIdentity is returned when attempting to serialize the point at infinity.
	ErrIdentity = ErrorKind("ErrIdentity")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to curve points and scalars. It has full
// support for errors.Is and errors.As, so the caller can ascertain the
// specific reason for the error by checking the underlying error.
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

// makeError creates an Error given a set of arguments.
func makeError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
