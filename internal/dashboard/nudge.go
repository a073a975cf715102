package dashboard

import (
	"errors"
	"sync"
)

// NudgeState tracks a manager check-in request through its lifecycle.
type NudgeState int

const (
	// NudgeNone means no request was detected for this user.
	NudgeNone NudgeState = iota
	// NudgePending means the request awaits a decision.
	NudgePending
	// NudgeAccepted and NudgeDeclined are terminal.
	NudgeAccepted
	NudgeDeclined
)

func (s NudgeState) String() string {
	switch s {
	case NudgeNone:
		return "none"
	case NudgePending:
		return "pending"
	case NudgeAccepted:
		return "accepted"
	case NudgeDeclined:
		return "declined"
	default:
		return "none"
	}
}

// ErrNudgeDecided means Accept or Decline was called after the request
// already left the pending state.
var ErrNudgeDecided = errors.New("dashboard: nudge request already decided")

// NudgeRequest is the shared decision state behind both the header panel
// and the dashboard banner. Both surfaces hold the same instance, so a
// decision made on either disappears from both at once.
type NudgeRequest struct {
	mu      sync.Mutex
	state   NudgeState
	message string
}

// NewNudgeRequest starts pending when a request was detected, otherwise
// none.
func NewNudgeRequest(detected bool, message string) *NudgeRequest {
	state := NudgeNone
	if detected {
		state = NudgePending
	}
	return &NudgeRequest{state: state, message: message}
}

// State returns the current lifecycle state.
func (n *NudgeRequest) State() NudgeState {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// Message returns the request text.
func (n *NudgeRequest) Message() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.message
}

// Pending reports whether the request still awaits a decision.
func (n *NudgeRequest) Pending() bool {
	return n.State() == NudgePending
}

// PendingCount feeds the header badge: one while pending, zero otherwise.
func (n *NudgeRequest) PendingCount() int {
	if n.Pending() {
		return 1
	}
	return 0
}

// Accept resolves a pending request. Terminal states never transition
// again.
func (n *NudgeRequest) Accept() error {
	return n.decide(NudgeAccepted)
}

// Decline resolves a pending request.
func (n *NudgeRequest) Decline() error {
	return n.decide(NudgeDeclined)
}

func (n *NudgeRequest) decide(target NudgeState) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.state != NudgePending {
		return ErrNudgeDecided
	}
	n.state = target
	return nil
}
