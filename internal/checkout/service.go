package checkout

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sdf-photoplatform/photoplatform-payments-service/internal/cart"
	"github.com/sdf-photoplatform/photoplatform-payments-service/internal/config"
	"github.com/sdf-photoplatform/photoplatform-payments-service/internal/gateway"
	"github.com/sdf-photoplatform/photoplatform-payments-service/internal/messages"
	"github.com/sdf-photoplatform/photoplatform-payments-service/internal/metrics"
	"github.com/sdf-photoplatform/photoplatform-payments-service/internal/money"
)

const reasonBuyerCancelled = "buyer_cancelled"

// Result pairs the local session with the gateway's session payload. The
// gateway JSON goes back to the web layer largely unmodified.
type Result struct {
	Session *Session        `json:"session"`
	Gateway json.RawMessage `json:"gateway,omitempty"`
}

// Service drives the checkout state machine. It reacts to explicit calls
// only: no background timers, no gateway polling, no automatic retries.
type Service struct {
	gateway Gateway
	tokens  TokenSource
	store   SessionStore
	cache   SessionCache
	events  EventPublisher
	catalog *messages.Catalog
	config  *config.Config
	logger  *logrus.Entry

	now func() time.Time
}

func NewService(
	gw Gateway,
	tokens TokenSource,
	store SessionStore,
	cache SessionCache,
	events EventPublisher,
	catalog *messages.Catalog,
	cfg *config.Config,
	logger *logrus.Entry,
) *Service {
	return &Service{
		gateway: gw,
		tokens:  tokens,
		store:   store,
		cache:   cache,
		events:  events,
		catalog: catalog,
		config:  cfg,
		logger:  logger,
		now:     time.Now,
	}
}

// StartCheckout aggregates the cart, creates the payment at the gateway and
// records the resulting session. All local validation (empty cart, malformed
// base URL, bad prices) happens before any network call.
func (s *Service) StartCheckout(ctx context.Context, items []cart.Item, baseURL string) (*Result, error) {
	lineItems, total, err := cart.Aggregate(items)
	if err != nil {
		return nil, err
	}

	description := s.catalog.GetMessage(messages.KeyTransactionDescription)
	request, err := gateway.BuildPaymentRequest(lineItems, total, description, baseURL)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"item_count": len(items),
		"total":      total,
	}).Info("Starting checkout")

	token, err := s.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	idempotencyKey := uuid.NewString()
	gwSession, err := s.gateway.CreatePayment(ctx, request, token, idempotencyKey)
	if err != nil {
		metrics.CheckoutSessions.WithLabelValues("failed").Inc()
		s.logger.WithFields(logrus.Fields{
			"reason": gateway.ReasonOf(err),
			"error":  err.Error(),
		}).Error("Gateway payment creation failed")
		return nil, err
	}

	now := s.now().UTC()
	session := &Session{
		ID:             gwSession.ID,
		State:          StateCreated,
		Total:          total,
		Currency:       money.Currency,
		ReturnURL:      request.RedirectURLs.ReturnURL,
		CancelURL:      request.RedirectURLs.CancelURL,
		ApprovalURL:    gwSession.ApprovalURL,
		IdempotencyKey: idempotencyKey,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.store.Create(ctx, session); err != nil {
		s.logger.WithFields(logrus.Fields{
			"session_id": session.ID,
			"error":      err.Error(),
		}).Error("Failed to persist checkout session")
		return nil, err
	}

	s.cacheSession(ctx, session)

	if s.config.Features.EnableCheckoutEvents {
		if err := s.events.PublishCheckoutStarted(ctx, session); err != nil {
			// Log but don't fail
			s.logger.WithFields(logrus.Fields{
				"session_id": session.ID,
				"error":      err.Error(),
			}).Error("Failed to publish checkout started event")
		}
	}

	metrics.CheckoutSessions.WithLabelValues("started").Inc()

	return &Result{Session: session, Gateway: gwSession.Raw}, nil
}

// ConfirmApproval finalizes a session after the buyer returned from the
// gateway's approval page. A replayed confirmation of an already executed
// session is success, not an error; a gateway-side already-settled answer
// collapses to success the same way.
func (s *Service) ConfirmApproval(ctx context.Context, sessionID, payerID string) (*Result, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.State == StateExecuted {
		return &Result{Session: session}, nil
	}
	if session.State != StateCreated && session.State != StateApproved {
		return nil, ErrIllegalTransition
	}

	session.State = StateApproved
	session.PayerID = payerID
	session.UpdatedAt = s.now().UTC()
	if err := s.store.Update(ctx, session); err != nil {
		return nil, err
	}
	s.cacheSession(ctx, session)

	token, err := s.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	gwSession, err := s.gateway.ExecutePayment(ctx, session.ID, payerID, token)
	if err != nil && !gateway.IsAlreadyExecuted(err) {
		s.markFailed(ctx, session, gateway.ReasonOf(err))
		s.logger.WithFields(logrus.Fields{
			"session_id": session.ID,
			"reason":     gateway.ReasonOf(err),
			"error":      err.Error(),
		}).Error("Gateway payment execution failed")
		return nil, err
	}

	session.State = StateExecuted
	session.FailureReason = ""
	session.UpdatedAt = s.now().UTC()
	if err := s.store.Update(ctx, session); err != nil {
		return nil, err
	}
	s.cacheSession(ctx, session)

	if s.config.Features.EnableCheckoutEvents {
		if err := s.events.PublishCheckoutExecuted(ctx, session); err != nil {
			// Log but don't fail
			s.logger.WithFields(logrus.Fields{
				"session_id": session.ID,
				"error":      err.Error(),
			}).Error("Failed to publish checkout executed event")
		}
	}

	metrics.CheckoutSessions.WithLabelValues("executed").Inc()

	s.logger.WithFields(logrus.Fields{
		"session_id": session.ID,
		"payer_id":   payerID,
	}).Info("Checkout executed")

	result := &Result{Session: session}
	if gwSession != nil {
		result.Gateway = gwSession.Raw
	}
	return result, nil
}

// CancelCheckout marks a session the buyer abandoned via the cancel redirect.
// Cancelling an already failed session is a no-op; cancelling an executed one
// is rejected.
func (s *Service) CancelCheckout(ctx context.Context, sessionID string) (*Session, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.State == StateFailed {
		return session, nil
	}
	if !CanTransitionTo(session.State, StateFailed) {
		return nil, ErrIllegalTransition
	}

	s.markFailed(ctx, session, reasonBuyerCancelled)

	s.logger.WithFields(logrus.Fields{
		"session_id": session.ID,
	}).Info("Checkout cancelled by buyer")

	return session, nil
}

// GetSession returns the locally recorded session, read through the cache.
func (s *Service) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	return s.loadSession(ctx, sessionID)
}

func (s *Service) loadSession(ctx context.Context, sessionID string) (*Session, error) {
	if s.config.Features.EnableSessionCache {
		session, err := s.cache.Get(ctx, sessionID)
		if err != nil {
			// Log but don't fail
			s.logger.WithFields(logrus.Fields{
				"session_id": sessionID,
				"error":      err.Error(),
			}).Error("Session cache read failed")
		}
		if session != nil {
			return session, nil
		}
	}

	session, err := s.store.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	s.cacheSession(ctx, session)
	return session, nil
}

func (s *Service) cacheSession(ctx context.Context, session *Session) {
	if !s.config.Features.EnableSessionCache {
		return
	}
	if err := s.cache.Set(ctx, session); err != nil {
		// Log but don't fail
		s.logger.WithFields(logrus.Fields{
			"session_id": session.ID,
			"error":      err.Error(),
		}).Error("Failed to cache checkout session")
	}
}

func (s *Service) markFailed(ctx context.Context, session *Session, reason string) {
	session.State = StateFailed
	session.FailureReason = reason
	session.UpdatedAt = s.now().UTC()

	if err := s.store.Update(ctx, session); err != nil {
		s.logger.WithFields(logrus.Fields{
			"session_id": session.ID,
			"error":      err.Error(),
		}).Error("Failed to record failed checkout session")
	}
	s.cacheSession(ctx, session)

	if s.config.Features.EnableCheckoutEvents {
		if err := s.events.PublishCheckoutFailed(ctx, session, reason); err != nil {
			// Log but don't fail
			s.logger.WithFields(logrus.Fields{
				"session_id": session.ID,
				"error":      err.Error(),
			}).Error("Failed to publish checkout failed event")
		}
	}

	metrics.CheckoutSessions.WithLabelValues("failed").Inc()
}
