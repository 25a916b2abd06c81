package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/you/portfoliosvc/domain"
	"github.com/you/portfoliosvc/internal/mocks"
)

// fakeClock is a manually advanced clock
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// newMemoryCredentialStore returns a mock store backed by a map that enforces
// user name uniqueness the way the database does.
func newMemoryCredentialStore(t *testing.T) (*mocks.MockCredentialStore, map[string]*domain.UserAccount) {
	t.Helper()

	var mu sync.Mutex
	accounts := make(map[string]*domain.UserAccount)
	store := mocks.NewMockCredentialStore()

	store.CreateFunc = func(ctx context.Context, account *domain.UserAccount) error {
		mu.Lock()
		defer mu.Unlock()
		if _, exists := accounts[account.UserName]; exists {
			return domain.ErrDuplicateIdentifier
		}
		stored := *account
		stored.ID = uint(len(accounts) + 1)
		accounts[account.UserName] = &stored
		return nil
	}
	store.FindByUserNameFunc = func(ctx context.Context, userName string) (*domain.UserAccount, error) {
		mu.Lock()
		defer mu.Unlock()
		account, ok := accounts[userName]
		if !ok {
			return nil, domain.ErrUserNotFound
		}
		found := *account
		found.LoginHistory = append([]domain.LoginEvent(nil), account.LoginHistory...)
		return &found, nil
	}
	store.UpdateLoginHistoryFunc = func(ctx context.Context, userName string, history []domain.LoginEvent) error {
		mu.Lock()
		defer mu.Unlock()
		account, ok := accounts[userName]
		if !ok {
			return domain.ErrUserNotFound
		}
		account.LoginHistory = append([]domain.LoginEvent(nil), history...)
		return nil
	}
	return store, accounts
}

// newMemorySessionRepository returns a mock repository whose entries expire
// according to clock.
func newMemorySessionRepository(t *testing.T, clock *fakeClock) (*mocks.MockSessionRepository, map[string]*domain.Session) {
	t.Helper()

	type entry struct {
		session  domain.Session
		deadline time.Time
	}
	var mu sync.Mutex
	entries := make(map[string]entry)
	snapshot := make(map[string]*domain.Session)
	repo := mocks.NewMockSessionRepository()

	repo.SaveFunc = func(ctx context.Context, session *domain.Session, ttl time.Duration) error {
		if ttl <= 0 {
			return domain.ErrSessionExpired
		}
		mu.Lock()
		defer mu.Unlock()
		entries[session.ID] = entry{session: *session, deadline: clock.Now().Add(ttl)}
		snapshot[session.ID] = session
		return nil
	}
	repo.FindByIDFunc = func(ctx context.Context, sessionID string) (*domain.Session, error) {
		mu.Lock()
		defer mu.Unlock()
		e, ok := entries[sessionID]
		if !ok || !clock.Now().Before(e.deadline) {
			return nil, domain.ErrSessionNotFound
		}
		s := e.session
		return &s, nil
	}
	repo.DeleteFunc = func(ctx context.Context, sessionID string) error {
		mu.Lock()
		defer mu.Unlock()
		delete(entries, sessionID)
		delete(snapshot, sessionID)
		return nil
	}
	return repo, snapshot
}

// createTestContext creates a context for testing with timeout
func createTestContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func createTestProfile(t *testing.T) *domain.UserProfile {
	t.Helper()

	return &domain.UserProfile{
		UserName:     "alice",
		Email:        "a@x.com",
		LoginHistory: []domain.LoginEvent{},
	}
}
