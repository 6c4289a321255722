package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sdf-photoplatform/photoplatform-payments-service/internal/config"
)

type token struct {
	accessToken string
	expiresAt   time.Time
}

// TokenManager owns the bearer token authenticating gateway calls. The held
// token is replaced wholesale on refresh, never mutated, so concurrent
// readers always observe a complete credential. Racing refreshes are
// tolerated: a redundant exchange costs one round-trip and nothing else.
type TokenManager struct {
	baseURL      string
	clientID     string
	clientSecret string
	refreshSkew  time.Duration
	httpClient   *http.Client
	current      atomic.Pointer[token]
	logger       *logrus.Entry

	now func() time.Time
}

func NewTokenManager(cfg config.GatewayConfig, logger *logrus.Entry) *TokenManager {
	return &TokenManager{
		baseURL:      strings.TrimSuffix(cfg.BaseURL, "/"),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		refreshSkew:  cfg.TokenRefreshSkew,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
		now:    time.Now,
	}
}

// Token returns a bearer token that is valid for at least the configured
// refresh skew. It exchanges credentials lazily on first use and again once
// the held token's remaining lifetime runs out. Exchange failures propagate
// to the caller; they are never retried here.
func (m *TokenManager) Token(ctx context.Context) (string, error) {
	if t := m.current.Load(); t != nil && m.now().Add(m.refreshSkew).Before(t.expiresAt) {
		return t.accessToken, nil
	}

	t, err := m.exchangeCredentials(ctx)
	if err != nil {
		return "", err
	}
	m.current.Store(t)

	m.logger.WithFields(logrus.Fields{
		"expires_at": t.expiresAt.Format(time.RFC3339),
	}).Debug("Gateway token refreshed")

	return t.accessToken, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (m *TokenManager) exchangeCredentials(ctx context.Context) (*token, error) {
	form := url.Values{"grant_type": {"client_credentials"}}

	endpoint := m.baseURL + "/v1/oauth2/token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, newError(ReasonAuthFailed, "", err)
	}
	req.SetBasicAuth(m.clientID, m.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		m.logger.WithFields(logrus.Fields{"error": err.Error()}).Error("Token exchange transport failure")
		return nil, newError(ReasonUnavailable, "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		m.logger.WithFields(logrus.Fields{"status_code": resp.StatusCode}).Error("Token exchange rejected")
		return nil, newError(ReasonAuthFailed, "credential exchange returned status "+resp.Status, nil)
	}

	var body tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, newError(ReasonAuthFailed, "malformed token response", err)
	}
	if body.AccessToken == "" {
		return nil, newError(ReasonAuthFailed, "token response carried no access token", nil)
	}

	return &token{
		accessToken: body.AccessToken,
		expiresAt:   m.now().Add(time.Duration(body.ExpiresIn) * time.Second),
	}, nil
}
