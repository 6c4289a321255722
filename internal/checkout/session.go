package checkout

import (
	"errors"
	"time"
)

// State is the local, explicit position of a checkout session. The gateway
// tracks its own copy; this one is authoritative for which operations the
// service will still accept.
type State string

const (
	StateCreated  State = "created"
	StateApproved State = "approved"
	StateExecuted State = "executed"
	StateFailed   State = "failed"
)

var (
	ErrSessionNotFound   = errors.New("checkout session not found")
	ErrIllegalTransition = errors.New("illegal checkout state transition")
)

// IsTerminal reports whether no further transitions are permitted.
func (s State) IsTerminal() bool {
	return s == StateExecuted || s == StateFailed
}

func (s State) String() string {
	return string(s)
}

// CanTransitionTo enumerates the legal transitions. Terminal states reject
// everything locally so a stale approval callback never reaches the gateway.
func CanTransitionTo(from, to State) bool {
	switch from {
	case StateCreated:
		return to == StateApproved || to == StateFailed
	case StateApproved:
		return to == StateExecuted || to == StateFailed
	default:
		return false
	}
}

// Session is one checkout attempt. The ID is assigned by the gateway on
// creation; PayerID only after the buyer approves.
type Session struct {
	ID             string    `json:"id"`
	State          State     `json:"state"`
	Total          string    `json:"total"`
	Currency       string    `json:"currency"`
	ReturnURL      string    `json:"return_url"`
	CancelURL      string    `json:"cancel_url"`
	ApprovalURL    string    `json:"approval_url,omitempty"`
	PayerID        string    `json:"payer_id,omitempty"`
	IdempotencyKey string    `json:"idempotency_key"`
	FailureReason  string    `json:"failure_reason,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
