package repository

import (
	"github.com/sdf-photoplatform/photoplatform-payments-service/internal/checkout"
)

// Ensure the implementations satisfy the checkout ports.
var (
	_ checkout.SessionStore = (*PostgresSessionRepository)(nil)
	_ checkout.SessionCache = (*RedisSessionCache)(nil)
)

// Schema is the checkout session table. Applied out-of-band by the
// deployment's migration step.
const Schema = `
CREATE TABLE IF NOT EXISTS checkout_sessions (
    id              TEXT PRIMARY KEY,
    state           TEXT        NOT NULL,
    total           TEXT        NOT NULL,
    currency        TEXT        NOT NULL,
    return_url      TEXT        NOT NULL,
    cancel_url      TEXT        NOT NULL,
    approval_url    TEXT        NOT NULL DEFAULT '',
    payer_id        TEXT        NOT NULL DEFAULT '',
    idempotency_key TEXT        NOT NULL,
    failure_reason  TEXT        NOT NULL DEFAULT '',
    created_at      TIMESTAMPTZ NOT NULL,
    updated_at      TIMESTAMPTZ NOT NULL
);
`
