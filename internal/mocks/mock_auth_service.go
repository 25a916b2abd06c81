package mocks

import (
	"context"

	"github.com/you/portfoliosvc/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	RegisterFunc     func(ctx context.Context, req domain.RegisterRequest) error
	AuthenticateFunc func(ctx context.Context, req domain.AuthRequest) (*domain.UserProfile, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// Register registers a new user
func (m *MockAuthService) Register(ctx context.Context, req domain.RegisterRequest) error {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	// Default behavior: success
	return nil
}

// Authenticate authenticates a user
func (m *MockAuthService) Authenticate(ctx context.Context, req domain.AuthRequest) (*domain.UserProfile, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, req)
	}
	// Default behavior: return a profile for the requested user
	return &domain.UserProfile{
		UserName:     req.UserName,
		Email:        req.UserName + "@example.com",
		LoginHistory: []domain.LoginEvent{},
	}, nil
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
