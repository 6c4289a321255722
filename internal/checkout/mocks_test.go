package checkout

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/sdf-photoplatform/photoplatform-payments-service/internal/config"
	"github.com/sdf-photoplatform/photoplatform-payments-service/internal/gateway"
	"github.com/sdf-photoplatform/photoplatform-payments-service/internal/messages"
)

// MockGateway implements Gateway for testing.
type MockGateway struct {
	CreateCalls    int
	CreatedRequest *gateway.PaymentRequest
	CreatedIdemKey string
	CreateSession  *gateway.Session
	CreateErr      error

	ExecuteCalls   int
	ExecutedID     string
	ExecutedPayer  string
	ExecuteSession *gateway.Session
	ExecuteErr     error
}

func (m *MockGateway) CreatePayment(_ context.Context, request *gateway.PaymentRequest, _, idempotencyKey string) (*gateway.Session, error) {
	m.CreateCalls++
	m.CreatedRequest = request
	m.CreatedIdemKey = idempotencyKey
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	return m.CreateSession, nil
}

func (m *MockGateway) ExecutePayment(_ context.Context, sessionID, payerID, _ string) (*gateway.Session, error) {
	m.ExecuteCalls++
	m.ExecutedID = sessionID
	m.ExecutedPayer = payerID
	if m.ExecuteErr != nil {
		return nil, m.ExecuteErr
	}
	return m.ExecuteSession, nil
}

// MockTokenSource implements TokenSource for testing.
type MockTokenSource struct {
	Calls int
	Value string
	Err   error
}

func (m *MockTokenSource) Token(_ context.Context) (string, error) {
	m.Calls++
	if m.Err != nil {
		return "", m.Err
	}
	return m.Value, nil
}

// MockStore implements SessionStore with an in-memory map.
type MockStore struct {
	Sessions  map[string]*Session
	CreateErr error
	UpdateErr error
}

func NewMockStore() *MockStore {
	return &MockStore{Sessions: make(map[string]*Session)}
}

func (m *MockStore) Create(_ context.Context, session *Session) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	cp := *session
	m.Sessions[session.ID] = &cp
	return nil
}

func (m *MockStore) GetByID(_ context.Context, id string) (*Session, error) {
	session, ok := m.Sessions[id]
	if !ok {
		return nil, nil
	}
	cp := *session
	return &cp, nil
}

func (m *MockStore) Update(_ context.Context, session *Session) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	cp := *session
	m.Sessions[session.ID] = &cp
	return nil
}

// MockCache implements SessionCache with an in-memory map.
type MockCache struct {
	Sessions map[string]*Session
	GetErr   error
	SetCalls int
}

func NewMockCache() *MockCache {
	return &MockCache{Sessions: make(map[string]*Session)}
}

func (m *MockCache) Get(_ context.Context, id string) (*Session, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	session, ok := m.Sessions[id]
	if !ok {
		return nil, nil
	}
	cp := *session
	return &cp, nil
}

func (m *MockCache) Set(_ context.Context, session *Session) error {
	m.SetCalls++
	cp := *session
	m.Sessions[session.ID] = &cp
	return nil
}

func (m *MockCache) Delete(_ context.Context, id string) error {
	delete(m.Sessions, id)
	return nil
}

// MockPublisher implements EventPublisher, recording what was published.
type MockPublisher struct {
	Started  []string
	Executed []string
	Failed   []string
	Reasons  []string
}

func (m *MockPublisher) PublishCheckoutStarted(_ context.Context, session *Session) error {
	m.Started = append(m.Started, session.ID)
	return nil
}

func (m *MockPublisher) PublishCheckoutExecuted(_ context.Context, session *Session) error {
	m.Executed = append(m.Executed, session.ID)
	return nil
}

func (m *MockPublisher) PublishCheckoutFailed(_ context.Context, session *Session, reason string) error {
	m.Failed = append(m.Failed, session.ID)
	m.Reasons = append(m.Reasons, reason)
	return nil
}

type testDeps struct {
	gateway *MockGateway
	tokens  *MockTokenSource
	store   *MockStore
	cache   *MockCache
	events  *MockPublisher
}

func newTestService(deps *testDeps) *Service {
	cfg := &config.Config{}
	cfg.Features.EnableSessionCache = true
	cfg.Features.EnableCheckoutEvents = true

	log := logrus.New()
	log.SetOutput(io.Discard)

	return NewService(
		deps.gateway,
		deps.tokens,
		deps.store,
		deps.cache,
		deps.events,
		messages.NewCatalog("en"),
		cfg,
		logrus.NewEntry(log),
	)
}

func newTestDeps() *testDeps {
	return &testDeps{
		gateway: &MockGateway{},
		tokens:  &MockTokenSource{Value: "tok-1"},
		store:   NewMockStore(),
		cache:   NewMockCache(),
		events:  &MockPublisher{},
	}
}
