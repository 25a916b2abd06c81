package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/you/portfoliosvc/domain"
	"github.com/you/portfoliosvc/internal/infrastructure/auth"
	"github.com/you/portfoliosvc/internal/mocks"
)

// createPolicyServiceForTest creates a PolicyService with mock Casbin enforcer
func createPolicyServiceForTest(t *testing.T) (domain.PolicyService, *mocks.MockCasbinEnforcer) {
	t.Helper()

	enforcer := mocks.NewMockCasbinEnforcer()
	return NewPolicyServiceWithEnforcer(enforcer), enforcer
}

func TestPolicyServiceImpl_GetPolicies(t *testing.T) {
	svc, enforcer := createPolicyServiceForTest(t)
	assert.Empty(t, svc.GetPolicies())

	enforcer.SetPolicies([][]string{
		{"anonymous", "/", "GET"},
		{"user", "/userHistory", "GET"},
	})
	assert.Equal(t, [][]string{
		{"anonymous", "/", "GET"},
		{"user", "/userHistory", "GET"},
	}, svc.GetPolicies())
}

func TestPolicyServiceImpl_CheckPermission(t *testing.T) {
	svc, enforcer := createPolicyServiceForTest(t)
	_, err := auth.SeedDefaultPolicies(enforcer)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{auth.SubjectUser, auth.SubjectAnonymous}}, enforcer.Groupings())

	tests := []struct {
		subject string
		route   string
		method  string
		allowed bool
	}{
		{auth.SubjectAnonymous, "/", "GET", true},
		{auth.SubjectAnonymous, "/userHistory", "GET", false},
		{auth.SubjectUser, "/userHistory", "GET", true},
		{auth.SubjectUser, "/", "GET", true},
		{auth.SubjectUser, "/solutions/editProject", "POST", true},
		{auth.SubjectAnonymous, "/solutions/editProject", "POST", false},
	}

	for _, tt := range tests {
		t.Run(tt.subject+" "+tt.method+" "+tt.route, func(t *testing.T) {
			allowed, err := svc.CheckPermission(tt.subject, tt.route, tt.method)
			require.NoError(t, err)
			assert.Equal(t, tt.allowed, allowed)
		})
	}
}

func TestPolicyServiceImpl_GetPoliciesSwallowsErrors(t *testing.T) {
	svc, enforcer := createPolicyServiceForTest(t)
	enforcer.GetPolicyFunc = func() ([][]string, error) {
		return nil, errors.New("boom")
	}
	assert.Empty(t, svc.GetPolicies())
}

func TestPolicyServiceImpl_WithRealEnforcer(t *testing.T) {
	e, err := auth.NewMemoryEnforcer()
	require.NoError(t, err)
	svc := NewPolicyService(e)

	allowed, err := svc.CheckPermission(auth.SubjectUser, "/solutions/projects/:id", "GET")
	require.NoError(t, err)
	assert.True(t, allowed)

	assert.Len(t, svc.GetPolicies(), len(auth.DefaultPolicies))

	_, err = e.AddPolicy(auth.SubjectAnonymous, "/contact", "GET")
	require.NoError(t, err)
	allowed, err = svc.CheckPermission(auth.SubjectAnonymous, "/contact", "GET")
	require.NoError(t, err)
	assert.True(t, allowed, "rules added to the enforcer apply immediately")
}
