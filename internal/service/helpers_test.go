package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/case-service/internal/config"
	"github.com/spec-kit/case-service/internal/domain"
	"github.com/spec-kit/case-service/internal/events"
	"github.com/spec-kit/case-service/internal/repository"
	"github.com/spec-kit/case-service/internal/service"
	apperrors "github.com/spec-kit/case-service/pkg/util/errorutil"
)

var testAuthConfig = config.AuthConfig{JWTSecret: "test-secret", TokenTTLMinutes: 60, BcryptCost: bcrypt.MinCost}

type fixture struct {
	store    *repository.MemoryStore
	accounts *service.AccountService
	cases    *service.CaseService
	recorder *eventRecorder
	clock    *fakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := repository.NewMemoryStore()
	dispatcher := events.NewInMemoryDispatcher()
	recorder := &eventRecorder{}
	for _, typ := range []events.EventType{
		events.EventCaseCreated,
		events.EventCaseReported,
		events.EventCaseStatusChanged,
		events.EventCaseAssigned,
		events.EventOfficerApproved,
	} {
		dispatcher.Subscribe(typ, recorder.handle)
	}
	clock := &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}

	return &fixture{
		store: store,
		accounts: service.NewAccountService(testAuthConfig, service.AccountDependencies{
			UserRepo:   store.Users(),
			Dispatcher: dispatcher,
			Logger:     zap.NewNop(),
		}),
		cases: service.NewCaseService(service.CaseDependencies{
			CaseRepo:   store.Cases(),
			UserRepo:   store.Users(),
			Dispatcher: dispatcher,
			Logger:     zap.NewNop(),
			Clock:      clock.Now,
		}),
		recorder: recorder,
		clock:    clock,
	}
}

func (f *fixture) register(t *testing.T, email, tenantID string) *domain.User {
	t.Helper()
	user, err := f.accounts.Register(context.Background(), service.SignUpInput{Email: email, Password: "pw1", TenantID: tenantID})
	require.NoError(t, err)
	return user
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type eventRecorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *eventRecorder) handle(_ context.Context, event events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *eventRecorder) types() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]events.EventType, 0, len(r.events))
	for _, event := range r.events {
		types = append(types, event.Type)
	}
	return types
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, code, apperrors.CodeOf(err), err.Error())
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
