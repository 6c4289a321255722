package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sdf-photoplatform/photoplatform-payments-service/internal/config"
	"github.com/sdf-photoplatform/photoplatform-payments-service/internal/metrics"
	"github.com/sdf-photoplatform/photoplatform-payments-service/internal/middleware"
)

// alreadyDoneName is the gateway's error name for an execute call against a
// payment it has already settled.
const alreadyDoneName = "PAYMENT_ALREADY_DONE"

// Session is the gateway's record of one checkout attempt. Raw holds the
// gateway's session JSON untouched; the web layer receives it as-is.
type Session struct {
	ID          string
	State       string
	PayerID     string
	ApprovalURL string
	Raw         json.RawMessage
}

// Client performs the two network operations of the checkout protocol:
// create and execute. Neither is ever retried here - a duplicated create
// risks double-charging the buyer, so retries are the caller's explicit,
// idempotency-key-guarded decision.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Entry
}

func NewClient(cfg config.GatewayConfig, logger *logrus.Entry) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// CreatePayment submits the assembled transaction and returns the created
// session together with the buyer's approval redirect URL. The idempotency
// key travels as PayPal-Request-Id so a retried submission is recognized as
// a duplicate by the gateway instead of charging twice.
func (c *Client) CreatePayment(ctx context.Context, request *PaymentRequest, bearerToken, idempotencyKey string) (*Session, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}

	c.logger.WithFields(logrus.Fields{
		"total":           request.Transactions[0].Amount.Total,
		"currency":        request.Transactions[0].Amount.Currency,
		"item_count":      len(request.Transactions[0].ItemList.Items),
		"idempotency_key": idempotencyKey,
	}).Debug("Creating gateway payment")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/payments/payment", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	c.setHeaders(ctx, req, bearerToken)
	req.Header.Set("PayPal-Request-Id", idempotencyKey)

	session, err := c.do(req, "create_payment")
	if err != nil {
		return nil, err
	}

	c.logger.WithFields(logrus.Fields{
		"session_id": session.ID,
		"state":      session.State,
	}).Info("Gateway payment created")

	return session, nil
}

// ExecutePayment finalizes a previously approved session. An execute against
// an already-settled session comes back as a distinguishable already-executed
// error so the caller can treat it as success.
func (c *Client) ExecutePayment(ctx context.Context, sessionID, payerID, bearerToken string) (*Session, error) {
	body, err := json.Marshal(map[string]string{"payer_id": payerID})
	if err != nil {
		return nil, err
	}

	c.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"payer_id":   payerID,
	}).Debug("Executing gateway payment")

	endpoint := c.baseURL + "/v1/payments/payment/" + sessionID + "/execute"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	c.setHeaders(ctx, req, bearerToken)

	session, err := c.do(req, "execute_payment")
	if err != nil {
		return nil, err
	}

	c.logger.WithFields(logrus.Fields{
		"session_id": session.ID,
		"state":      session.State,
	}).Info("Gateway payment executed")

	return session, nil
}

func (c *Client) do(req *http.Request, operation string) (*Session, error) {
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveGateway(operation, "unavailable", start)
		c.logger.WithFields(logrus.Fields{
			"operation": operation,
			"error":     err.Error(),
		}).Error("Gateway request failed")
		return nil, newError(ReasonUnavailable, "", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ObserveGateway(operation, "unavailable", start)
		return nil, newError(ReasonUnavailable, "", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		metrics.ObserveGateway(operation, "ok", start)
		return parseSession(payload)
	case resp.StatusCode == http.StatusUnauthorized:
		metrics.ObserveGateway(operation, "auth_failed", start)
		return nil, newError(ReasonAuthFailed, "gateway returned status "+resp.Status, nil)
	case resp.StatusCode >= http.StatusInternalServerError:
		metrics.ObserveGateway(operation, "unavailable", start)
		return nil, newError(ReasonUnavailable, "gateway returned status "+resp.Status, nil)
	default:
		reason, detail := parseRejection(payload, resp.Status)
		metrics.ObserveGateway(operation, reason, start)
		c.logger.WithFields(logrus.Fields{
			"operation":   operation,
			"status_code": resp.StatusCode,
			"detail":      detail,
		}).Error("Gateway rejected request")
		return nil, newError(reason, detail, nil)
	}
}

// paymentResource mirrors the fields of the gateway's session payload this
// service reads; everything else stays opaque in Session.Raw.
type paymentResource struct {
	ID    string `json:"id"`
	State string `json:"state"`
	Payer struct {
		PayerInfo struct {
			PayerID string `json:"payer_id"`
		} `json:"payer_info"`
	} `json:"payer"`
	Links []struct {
		Href string `json:"href"`
		Rel  string `json:"rel"`
	} `json:"links"`
}

func parseSession(payload []byte) (*Session, error) {
	var resource paymentResource
	if err := json.Unmarshal(payload, &resource); err != nil {
		return nil, newError(ReasonUnavailable, "malformed gateway response", err)
	}

	session := &Session{
		ID:      resource.ID,
		State:   resource.State,
		PayerID: resource.Payer.PayerInfo.PayerID,
		Raw:     json.RawMessage(payload),
	}
	for _, link := range resource.Links {
		if strings.EqualFold(link.Rel, "approval_url") {
			session.ApprovalURL = link.Href
			break
		}
	}
	return session, nil
}

type gatewayErrorBody struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

func parseRejection(payload []byte, status string) (reason, detail string) {
	var body gatewayErrorBody
	if err := json.Unmarshal(payload, &body); err != nil || body.Name == "" {
		return ReasonRejected, "gateway returned status " + status
	}
	if body.Name == alreadyDoneName {
		return ReasonAlreadyExecuted, body.Message
	}
	if body.Message != "" {
		return ReasonRejected, body.Name + ": " + body.Message
	}
	return ReasonRejected, body.Name
}

func (c *Client) setHeaders(ctx context.Context, req *http.Request, bearerToken string) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+bearerToken)

	if requestID := middleware.RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set(middleware.HeaderRequestID, requestID)
	}
}
