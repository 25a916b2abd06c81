package mocks

import (
	"context"

	"github.com/you/portfoliosvc/domain"
)

// MockCredentialStore implements domain.CredentialStore interface for testing
type MockCredentialStore struct {
	CreateFunc             func(ctx context.Context, account *domain.UserAccount) error
	FindByUserNameFunc     func(ctx context.Context, userName string) (*domain.UserAccount, error)
	UpdateLoginHistoryFunc func(ctx context.Context, userName string, history []domain.LoginEvent) error
}

// NewMockCredentialStore creates a new MockCredentialStore with default behaviors
func NewMockCredentialStore() *MockCredentialStore {
	return &MockCredentialStore{}
}

// Create creates a new account
func (m *MockCredentialStore) Create(ctx context.Context, account *domain.UserAccount) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	// Default behavior: success
	return nil
}

// FindByUserName finds an account by user name
func (m *MockCredentialStore) FindByUserName(ctx context.Context, userName string) (*domain.UserAccount, error) {
	if m.FindByUserNameFunc != nil {
		return m.FindByUserNameFunc(ctx, userName)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// UpdateLoginHistory replaces the login history of an account
func (m *MockCredentialStore) UpdateLoginHistory(ctx context.Context, userName string, history []domain.LoginEvent) error {
	if m.UpdateLoginHistoryFunc != nil {
		return m.UpdateLoginHistoryFunc(ctx, userName, history)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.CredentialStore = (*MockCredentialStore)(nil)
