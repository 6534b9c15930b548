package protocol

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
)

// CommitmentMessage is sent by the signer to open a session.
type CommitmentMessage struct {
	SessionID uuid.UUID `cbor:"1,keyasint"`
	// Hash is the name of the hash.Function the signer's scheme uses.
	Hash string `cbor:"2,keyasint"`
	// Point is R' = k⋅G in compressed SEC1 form.
	Point []byte `cbor:"3,keyasint"`
}

// BlindedRequestMessage is sent by the requester in answer to a CommitmentMessage.
type BlindedRequestMessage struct {
	SessionID uuid.UUID `cbor:"1,keyasint"`
	// BlindM is the big-endian blinded message m'.
	BlindM []byte `cbor:"2,keyasint"`
}

// BlindSignatureMessage is the signer's answer to a BlindedRequestMessage.
type BlindSignatureMessage struct {
	SessionID uuid.UUID `cbor:"1,keyasint"`
	// S is the 32 byte blind signature s'.
	S []byte `cbor:"2,keyasint"`
}

// Encode returns the CBOR encoding of one of the session messages.
func Encode(msg interface{}) ([]byte, error) {
	switch msg.(type) {
	case *CommitmentMessage, *BlindedRequestMessage, *BlindSignatureMessage:
	default:
		return nil, fmt.Errorf("protocol: cannot encode %T", msg)
	}
	data, err := cbor.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("protocol: encode %T: %w", msg, err)
	}
	return data, nil
}

// Decode parses data into msg, which must be a pointer to one of the session messages.
func Decode(data []byte, msg interface{}) error {
	switch msg.(type) {
	case *CommitmentMessage, *BlindedRequestMessage, *BlindSignatureMessage:
	default:
		return fmt.Errorf("protocol: cannot decode into %T", msg)
	}
	if err := cbor.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("%w: %T: %v", ErrMalformedMessage, msg, err)
	}
	return nil
}
