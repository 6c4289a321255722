package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/sdf-photoplatform/photoplatform-payments-service/internal/checkout"
)

// PostgresSessionRepository persists checkout sessions. Every attempt is
// recorded, including failed ones - the table doubles as the payment audit
// trail.
type PostgresSessionRepository struct {
	db     *sql.DB
	logger *logrus.Entry
}

func NewPostgresSessionRepository(db *sql.DB, logger *logrus.Entry) *PostgresSessionRepository {
	return &PostgresSessionRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a freshly created session.
func (r *PostgresSessionRepository) Create(ctx context.Context, session *checkout.Session) error {
	query := `
		INSERT INTO checkout_sessions (
			id, state, total, currency, return_url, cancel_url,
			approval_url, payer_id, idempotency_key, failure_reason,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.ExecContext(ctx, query,
		session.ID,
		session.State,
		session.Total,
		session.Currency,
		session.ReturnURL,
		session.CancelURL,
		session.ApprovalURL,
		session.PayerID,
		session.IdempotencyKey,
		session.FailureReason,
		session.CreatedAt,
		session.UpdatedAt,
	)
	if err != nil {
		r.logger.WithFields(logrus.Fields{
			"session_id": session.ID,
			"error":      err.Error(),
		}).Error("Failed to insert checkout session")
		return err
	}

	r.logger.WithFields(logrus.Fields{
		"session_id": session.ID,
		"state":      session.State,
	}).Debug("Checkout session inserted")
	return nil
}

// GetByID returns (nil, nil) when the session does not exist.
func (r *PostgresSessionRepository) GetByID(ctx context.Context, id string) (*checkout.Session, error) {
	query := `
		SELECT id, state, total, currency, return_url, cancel_url,
		       approval_url, payer_id, idempotency_key, failure_reason,
		       created_at, updated_at
		FROM checkout_sessions
		WHERE id = $1
	`

	var session checkout.Session
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&session.ID,
		&session.State,
		&session.Total,
		&session.Currency,
		&session.ReturnURL,
		&session.CancelURL,
		&session.ApprovalURL,
		&session.PayerID,
		&session.IdempotencyKey,
		&session.FailureReason,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.WithFields(logrus.Fields{
			"session_id": id,
			"error":      err.Error(),
		}).Error("Failed to fetch checkout session")
		return nil, err
	}

	return &session, nil
}

// Update writes the mutable session fields: state, payer, failure reason.
func (r *PostgresSessionRepository) Update(ctx context.Context, session *checkout.Session) error {
	query := `
		UPDATE checkout_sessions
		SET state = $2, payer_id = $3, failure_reason = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		session.ID,
		session.State,
		session.PayerID,
		session.FailureReason,
		session.UpdatedAt,
	)
	if err != nil {
		r.logger.WithFields(logrus.Fields{
			"session_id": session.ID,
			"error":      err.Error(),
		}).Error("Failed to update checkout session")
		return err
	}

	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return checkout.ErrSessionNotFound
	}

	r.logger.WithFields(logrus.Fields{
		"session_id": session.ID,
		"state":      session.State,
	}).Debug("Checkout session updated")
	return nil
}
