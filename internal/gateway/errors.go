package gateway

import (
	"errors"
	"fmt"
)

// Reason codes carried by Error. The calling layer maps these to user
// messaging; nothing in this package retries on any of them.
const (
	ReasonAuthFailed      = "auth_failed"
	ReasonRejected        = "gateway_rejected"
	ReasonUnavailable     = "gateway_unavailable"
	ReasonAlreadyExecuted = "already_executed"
)

var ErrInvalidBaseURL = errors.New("redirect base URL must be a well-formed absolute URL")

// Error wraps every gateway-facing failure with a machine-readable reason
// code. Detail carries the gateway's own error name when one was returned.
type Error struct {
	Reason string
	Detail string
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Detail != "":
		return fmt.Sprintf("payment gateway: %s (%s)", e.Reason, e.Detail)
	case e.Err != nil:
		return fmt.Sprintf("payment gateway: %s: %v", e.Reason, e.Err)
	}
	return "payment gateway: " + e.Reason
}

func (e *Error) Unwrap() error { return e.Err }

func newError(reason, detail string, err error) *Error {
	return &Error{Reason: reason, Detail: detail, Err: err}
}

// IsAlreadyExecuted reports whether err is the gateway telling us the session
// was settled by an earlier execute call. Callers treat this as success.
func IsAlreadyExecuted(err error) bool {
	var gwErr *Error
	return errors.As(err, &gwErr) && gwErr.Reason == ReasonAlreadyExecuted
}

// ReasonOf extracts the reason code from a gateway error, or "" for any other
// error.
func ReasonOf(err error) string {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr.Reason
	}
	return ""
}
