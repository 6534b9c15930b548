package protocol

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/taurusgroup/blind-sig/pkg/blind"
	"github.com/taurusgroup/blind-sig/pkg/math/curve"
)

// maxBlindAttempts bounds how many times Blind redraws the blinding factors
// after a recoverable failure.
const maxBlindAttempts = 8

// Requester obtains a signature on a message the signer never sees.
//
// A Requester serves exactly one session and is not safe for concurrent use.
type Requester struct {
	scheme     *blind.Scheme
	publicKey  curve.Point
	sessionID  uuid.UUID
	commitment curve.Point
	message    []byte

	state     State
	request   blind.BlindedRequest
	factors   blind.BlindingFactors
	signature blind.Signature

	Log zerolog.Logger
}

// NewRequester starts a session from the signer's commitment, in StateInitiated.
//
// publicKey is the signer's key, obtained out of band.
func NewRequester(scheme *blind.Scheme, publicKey curve.Point, msg *CommitmentMessage, message []byte) (*Requester, error) {
	if msg == nil {
		return nil, fmt.Errorf("protocol.Requester: nil commitment: %w", ErrMalformedMessage)
	}
	if msg.Hash != scheme.Hash().Name() {
		return nil, fmt.Errorf("protocol.Requester: signer uses %q, we use %q: %w",
			msg.Hash, scheme.Hash().Name(), ErrHashMismatch)
	}
	var commitment curve.Point
	if err := commitment.UnmarshalBinary(msg.Point); err != nil {
		return nil, fmt.Errorf("protocol.Requester: %w: %v", blind.ErrInvalidCommitment, err)
	}
	return &Requester{
		scheme:     scheme,
		publicKey:  publicKey,
		sessionID:  msg.SessionID,
		commitment: commitment,
		message:    append([]byte(nil), message...),
		state:      StateInitiated,
		Log:        zerolog.Nop(),
	}, nil
}

// SessionID identifies the session on the signer's side.
func (r *Requester) SessionID() uuid.UUID {
	return r.sessionID
}

// State returns the current state of the session.
func (r *Requester) State() State {
	return r.state
}

// Signature returns the final signature, once in StateFinalized.
func (r *Requester) Signature() (blind.Signature, error) {
	if r.state != StateFinalized {
		return blind.Signature{}, r.stateError("Signature")
	}
	return r.signature, nil
}

// Blind computes the request to send to the signer and moves to StateBlinded.
//
// Recoverable failures are retried with fresh blinding factors. Any other failure
// moves the session to StateRejected.
func (r *Requester) Blind() (*BlindedRequestMessage, error) {
	if r.state != StateInitiated {
		return nil, r.stateError("Blind")
	}
	var (
		req     blind.BlindedRequest
		factors blind.BlindingFactors
		err     error
	)
	for attempt := 0; attempt < maxBlindAttempts; attempt++ {
		req, factors, err = r.scheme.Blind(r.commitment, r.message)
		if err == nil || !blind.IsRecoverable(err) {
			break
		}
		r.logger().Debug().Err(err).Int("attempt", attempt).Msg("redrawing blinding factors")
	}
	if err != nil {
		return nil, r.reject(fmt.Errorf("protocol.Requester: %w", err))
	}
	r.request, r.factors = req, factors
	r.transition(StateBlinded)
	return &BlindedRequestMessage{
		SessionID: r.sessionID,
		BlindM:    req.BlindM.Bytes(),
	}, nil
}

// Finalize unblinds the signer's answer and checks the resulting signature.
//
// On success the session is in StateFinalized. If the signature does not verify,
// the session moves to StateRejected and ErrInvalidSignature is returned.
func (r *Requester) Finalize(msg *BlindSignatureMessage) (blind.Signature, error) {
	if r.state != StateBlinded {
		return blind.Signature{}, r.stateError("Finalize")
	}
	if msg == nil {
		return blind.Signature{}, fmt.Errorf("protocol.Requester: nil answer: %w", ErrMalformedMessage)
	}
	if msg.SessionID != r.sessionID {
		return blind.Signature{}, fmt.Errorf("protocol.Requester: got answer for session %s: %w",
			msg.SessionID, ErrUnknownSession)
	}
	sPrime, err := curve.ScalarFromBytes(msg.S)
	if err != nil {
		return blind.Signature{}, r.reject(fmt.Errorf("protocol.Requester: %w: s': %v", ErrMalformedMessage, err))
	}
	r.transition(StatePartiallySigned)

	sig := r.factors.Unblind(r.request, sPrime)
	valid, err := r.scheme.Verify(sig, r.message, r.publicKey)
	if err != nil {
		return blind.Signature{}, r.reject(fmt.Errorf("protocol.Requester: %w", err))
	}
	if !valid {
		return blind.Signature{}, r.reject(fmt.Errorf("protocol.Requester: %w", ErrInvalidSignature))
	}
	r.signature = sig
	// the blinding factors link the request to the signature
	r.factors = blind.BlindingFactors{}
	r.transition(StateFinalized)
	return sig, nil
}

func (r *Requester) logger() *zerolog.Logger {
	l := r.Log.With().Stringer("session", r.sessionID).Logger()
	return &l
}

func (r *Requester) transition(to State) {
	r.logger().Debug().Stringer("from", r.state).Stringer("to", to).Msg("transition")
	r.state = to
}

func (r *Requester) reject(err error) error {
	r.logger().Warn().Err(err).Stringer("from", r.state).Msg("session rejected")
	r.state = StateRejected
	return err
}

func (r *Requester) stateError(op string) error {
	return fmt.Errorf("protocol.Requester: %s in state %s: %w", op, r.state, ErrInvalidState)
}
