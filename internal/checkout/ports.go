package checkout

import (
	"context"

	"github.com/sdf-photoplatform/photoplatform-payments-service/internal/gateway"
)

// Gateway is the two-operation payment protocol the orchestrator drives.
type Gateway interface {
	CreatePayment(ctx context.Context, request *gateway.PaymentRequest, bearerToken, idempotencyKey string) (*gateway.Session, error)
	ExecutePayment(ctx context.Context, sessionID, payerID, bearerToken string) (*gateway.Session, error)
}

// TokenSource hands out a currently valid gateway bearer token.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// SessionStore persists checkout sessions. GetByID returns (nil, nil) for an
// unknown id.
type SessionStore interface {
	Create(ctx context.Context, session *Session) error
	GetByID(ctx context.Context, id string) (*Session, error)
	Update(ctx context.Context, session *Session) error
}

// SessionCache is a best-effort read-through cache in front of the store.
// Get returns (nil, nil) on a miss.
type SessionCache interface {
	Get(ctx context.Context, id string) (*Session, error)
	Set(ctx context.Context, session *Session) error
	Delete(ctx context.Context, id string) error
}

// EventPublisher fans checkout lifecycle events out to the rest of the
// platform.
type EventPublisher interface {
	PublishCheckoutStarted(ctx context.Context, session *Session) error
	PublishCheckoutExecuted(ctx context.Context, session *Session) error
	PublishCheckoutFailed(ctx context.Context, session *Session, reason string) error
}
