package mocks

import (
	"strings"

	"github.com/you/portfoliosvc/domain"
)

// MockPolicyService implements domain.PolicyService interface for testing
type MockPolicyService struct {
	CheckPermissionFunc func(subject, route, method string) (bool, error)
	GetPoliciesFunc     func() [][]string
}

// NewMockPolicyService creates a new MockPolicyService with default behaviors
func NewMockPolicyService() *MockPolicyService {
	return &MockPolicyService{}
}

// CheckPermission checks if a subject may call method on route
func (m *MockPolicyService) CheckPermission(subject, route, method string) (bool, error) {
	if m.CheckPermissionFunc != nil {
		return m.CheckPermissionFunc(subject, route, method)
	}
	// Default behavior: users may do anything, anonymous callers are kept out
	// of the history page and project administration
	if subject == "user" {
		return true, nil
	}
	if route == "/userHistory" {
		return false, nil
	}
	if strings.HasPrefix(route, "/solutions/") && !strings.HasPrefix(route, "/solutions/projects") {
		return false, nil
	}
	return true, nil
}

// GetPolicies returns all current policies
func (m *MockPolicyService) GetPolicies() [][]string {
	if m.GetPoliciesFunc != nil {
		return m.GetPoliciesFunc()
	}
	return [][]string{
		{"anonymous", "/", "GET"},
		{"user", "/userHistory", "GET"},
	}
}

// Compile-time interface compliance verification
var _ domain.PolicyService = (*MockPolicyService)(nil)
