package mocks

import (
	"strings"

	"github.com/you/portfoliosvc/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	SignFunc  func(session *domain.Session) (string, error)
	ParseFunc func(token string) (*domain.TokenClaims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// Sign signs a session into a token
func (m *MockTokenService) Sign(session *domain.Session) (string, error) {
	if m.SignFunc != nil {
		return m.SignFunc(session)
	}
	// Default behavior: token is the session ID with a prefix
	return "token_" + session.ID, nil
}

// Parse parses a token into claims
func (m *MockTokenService) Parse(token string) (*domain.TokenClaims, error) {
	if m.ParseFunc != nil {
		return m.ParseFunc(token)
	}
	// Default behavior: accept tokens produced by the default Sign
	if !strings.HasPrefix(token, "token_") || len(token) == len("token_") {
		return nil, domain.ErrTokenInvalid
	}
	return &domain.TokenClaims{SessionID: strings.TrimPrefix(token, "token_")}, nil
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
