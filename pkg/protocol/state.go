package protocol

// State is the position of a session in the blind signing flow.
//
//	Initiated → Blinded → PartiallySigned → Finalized
//
// A third party checking a signature ends in Verified or Rejected.
// A requester whose final signature does not verify also ends in Rejected.
// There are no transitions backwards: a failed session is abandoned, and the
// requester asks for a new commitment.
type State uint8

const (
	// StateInitiated means the signer issued a commitment.
	StateInitiated State = iota + 1
	// StateBlinded means the requester computed the blinded request.
	StateBlinded
	// StatePartiallySigned means the signer returned its blind signature.
	StatePartiallySigned
	// StateFinalized means the requester unblinded the signature.
	StateFinalized
	// StateVerified means the signature was checked and is valid.
	StateVerified
	// StateRejected means the session failed, or the signature is invalid.
	StateRejected
)

func (s State) String() string {
	switch s {
	case StateInitiated:
		return "initiated"
	case StateBlinded:
		return "blinded"
	case StatePartiallySigned:
		return "partially-signed"
	case StateFinalized:
		return "finalized"
	case StateVerified:
		return "verified"
	case StateRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// IsTerminal returns true if no further transition is possible from s.
func (s State) IsTerminal() bool {
	return s == StateFinalized || s == StateVerified || s == StateRejected
}
