package mocks

import (
	"context"
	"time"

	"github.com/you/portfoliosvc/domain"
)

// MockSessionService implements domain.SessionService interface for testing
type MockSessionService struct {
	LoginFunc  func(ctx context.Context, user *domain.UserProfile) (*domain.Session, string, error)
	GuardFunc  func(ctx context.Context, token string) (*domain.Session, string, bool)
	LogoutFunc func(ctx context.Context, token string) error
}

// NewMockSessionService creates a new MockSessionService with default behaviors
func NewMockSessionService() *MockSessionService {
	return &MockSessionService{}
}

// Login issues a session for user
func (m *MockSessionService) Login(ctx context.Context, user *domain.UserProfile) (*domain.Session, string, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, user)
	}
	// Default behavior: a two minute session
	now := time.Now()
	session := &domain.Session{
		ID:        "mock_session_id",
		User:      user,
		IssuedAt:  now,
		ExpiresAt: now.Add(2 * time.Minute),
	}
	return session, "token_mock_session_id", nil
}

// Guard validates a token
func (m *MockSessionService) Guard(ctx context.Context, token string) (*domain.Session, string, bool) {
	if m.GuardFunc != nil {
		return m.GuardFunc(ctx, token)
	}
	// Default behavior: no session is valid
	return nil, "", false
}

// Logout revokes the session carried by token
func (m *MockSessionService) Logout(ctx context.Context, token string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, token)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.SessionService = (*MockSessionService)(nil)
