// Package protocol runs blind signing sessions between a Signer and Requesters,
// exchanging CBOR encoded messages.
package protocol

import (
	"fmt"
	"sync"

	"github.com/cronokirby/saferith"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/taurusgroup/blind-sig/internal/params"
	"github.com/taurusgroup/blind-sig/pkg/blind"
	"github.com/taurusgroup/blind-sig/pkg/math/curve"
)

// Signer holds a long-term key and the nonces of its open sessions.
//
// Each nonce is handed out once by Commit and consumed by the first Sign call for
// its session, whether that call succeeds or not. A Signer may be used from
// several goroutines, provided the random source of its Scheme is safe for
// concurrent use.
type Signer struct {
	scheme *blind.Scheme
	key    blind.KeyPair

	mtx     sync.Mutex
	pending map[uuid.UUID]curve.Scalar

	Log zerolog.Logger
}

// NewSigner returns a Signer for key, with no open session.
func NewSigner(scheme *blind.Scheme, key blind.KeyPair) *Signer {
	return &Signer{
		scheme:  scheme,
		key:     key,
		pending: make(map[uuid.UUID]curve.Scalar),
		Log:     zerolog.Nop(),
	}
}

// PublicKey returns the key signatures verify under.
func (s *Signer) PublicKey() curve.Point {
	return s.key.PublicKey
}

// Commit opens a new session with a fresh nonce.
func (s *Signer) Commit() (*CommitmentMessage, error) {
	commitment, err := s.scheme.GenerateNonceCommitment()
	if err != nil {
		return nil, fmt.Errorf("protocol.Signer: %w", err)
	}
	point, err := commitment.Point.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("protocol.Signer: %w", err)
	}
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("protocol.Signer: session id: %w", err)
	}

	s.mtx.Lock()
	s.pending[id] = commitment.Nonce
	s.mtx.Unlock()

	s.Log.Debug().Stringer("session", id).Stringer("state", StateInitiated).Msg("commitment issued")
	return &CommitmentMessage{
		SessionID: id,
		Hash:      s.scheme.Hash().Name(),
		Point:     point,
	}, nil
}

// Sign answers a blinded request, using and then forgetting the session's nonce.
func (s *Signer) Sign(msg *BlindedRequestMessage) (*BlindSignatureMessage, error) {
	if msg == nil {
		return nil, fmt.Errorf("protocol.Signer: nil request: %w", ErrMalformedMessage)
	}
	nonce, ok := s.take(msg.SessionID)
	if !ok {
		s.Log.Warn().Stringer("session", msg.SessionID).Msg("sign request for unknown session")
		return nil, fmt.Errorf("protocol.Signer: session %s: %w", msg.SessionID, ErrUnknownSession)
	}
	log := s.Log.With().Stringer("session", msg.SessionID).Logger()

	// anything longer cannot be < N
	if len(msg.BlindM) > params.BytesScalar {
		log.Warn().Int("length", len(msg.BlindM)).Stringer("state", StateRejected).Msg("blinded message too long")
		return nil, fmt.Errorf("protocol.Signer: session %s: %w", msg.SessionID, blind.ErrBlindedMessageOutOfRange)
	}
	blindM := new(saferith.Nat).SetBytes(msg.BlindM)
	sPrime, err := s.scheme.BlindSign(s.key.PrivateKey, nonce, blindM)
	if err != nil {
		log.Warn().Err(err).Stringer("state", StateRejected).Msg("failed to sign")
		return nil, fmt.Errorf("protocol.Signer: session %s: %w", msg.SessionID, err)
	}

	log.Debug().Stringer("state", StatePartiallySigned).Msg("blind signature issued")
	return &BlindSignatureMessage{
		SessionID: msg.SessionID,
		S:         sPrime.Bytes(),
	}, nil
}

// Abort forgets the nonce of a session without signing.
// It returns false if the session was not pending.
func (s *Signer) Abort(id uuid.UUID) bool {
	_, ok := s.take(id)
	if ok {
		s.Log.Debug().Stringer("session", id).Msg("session aborted")
	}
	return ok
}

// Pending returns the number of sessions waiting for a blinded request.
func (s *Signer) Pending() int {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return len(s.pending)
}

func (s *Signer) take(id uuid.UUID) (curve.Scalar, bool) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	nonce, ok := s.pending[id]
	if ok {
		delete(s.pending, id)
	}
	return nonce, ok
}
