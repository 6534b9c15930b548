package protocol

import "errors"

var (
	// ErrUnknownSession is returned by the signer for a session it has no pending nonce for,
	// either because it never issued it or because the nonce was already used.
	ErrUnknownSession = errors.New("protocol: unknown or already signed session")
	// ErrInvalidState is returned when an operation is called out of order.
	ErrInvalidState = errors.New("protocol: operation not allowed in current state")
	// ErrInvalidSignature is returned when the unblinded signature does not verify.
	ErrInvalidSignature = errors.New("protocol: signature does not verify")
	// ErrHashMismatch is returned when the signer and requester use different hash functions.
	ErrHashMismatch = errors.New("protocol: hash function mismatch")
	// ErrMalformedMessage is returned when a message field cannot be decoded.
	ErrMalformedMessage = errors.New("protocol: malformed message")
)
