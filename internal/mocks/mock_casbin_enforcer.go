package mocks

import "github.com/you/portfoliosvc/domain"

// MockCasbinEnforcer implements the CasbinEnforcer interface for testing
type MockCasbinEnforcer struct {
	AddPolicyFunc         func(params ...interface{}) (bool, error)
	AddGroupingPolicyFunc func(params ...interface{}) (bool, error)
	EnforceFunc           func(rvals ...interface{}) (bool, error)
	GetPolicyFunc         func() ([][]string, error)
	policies              [][]string
	groupings             [][]string
}

// Compile-time interface compliance verification
var _ domain.CasbinEnforcer = (*MockCasbinEnforcer)(nil)

// NewMockCasbinEnforcer creates a new MockCasbinEnforcer with no policies
func NewMockCasbinEnforcer() *MockCasbinEnforcer {
	return &MockCasbinEnforcer{}
}

// AddPolicy adds a new policy rule
func (m *MockCasbinEnforcer) AddPolicy(params ...interface{}) (bool, error) {
	if m.AddPolicyFunc != nil {
		return m.AddPolicyFunc(params...)
	}

	// Default behavior: add to internal policies list unless present
	policy := toStrings(params)
	if len(policy) < 3 || indexOf(m.policies, policy) >= 0 {
		return false, nil
	}
	m.policies = append(m.policies, policy)
	return true, nil
}

// AddGroupingPolicy adds a role inheritance rule
func (m *MockCasbinEnforcer) AddGroupingPolicy(params ...interface{}) (bool, error) {
	if m.AddGroupingPolicyFunc != nil {
		return m.AddGroupingPolicyFunc(params...)
	}

	rule := toStrings(params)
	if len(rule) != 2 || indexOf(m.groupings, rule) >= 0 {
		return false, nil
	}
	m.groupings = append(m.groupings, rule)
	return true, nil
}

// Enforce checks exact matches against stored policies, following groupings
func (m *MockCasbinEnforcer) Enforce(rvals ...interface{}) (bool, error) {
	if m.EnforceFunc != nil {
		return m.EnforceFunc(rvals...)
	}

	req := toStrings(rvals)
	if len(req) != 3 {
		return false, nil
	}
	subjects := []string{req[0]}
	for _, g := range m.groupings {
		if g[0] == req[0] {
			subjects = append(subjects, g[1])
		}
	}
	for _, sub := range subjects {
		if indexOf(m.policies, []string{sub, req[1], req[2]}) >= 0 {
			return true, nil
		}
	}
	return false, nil
}

// GetPolicy returns all policies
func (m *MockCasbinEnforcer) GetPolicy() ([][]string, error) {
	if m.GetPolicyFunc != nil {
		return m.GetPolicyFunc()
	}
	return copyRules(m.policies), nil
}

// Groupings returns the grouping rules added so far (test helper)
func (m *MockCasbinEnforcer) Groupings() [][]string {
	return copyRules(m.groupings)
}

// SetPolicies sets the internal policies (test helper)
func (m *MockCasbinEnforcer) SetPolicies(policies [][]string) {
	m.policies = copyRules(policies)
}

func toStrings(params []interface{}) []string {
	out := make([]string, 0, len(params))
	for _, p := range params {
		s, ok := p.(string)
		if !ok {
			return nil
		}
		out = append(out, s)
	}
	return out
}

func indexOf(rules [][]string, target []string) int {
	for i, rule := range rules {
		if len(rule) != len(target) {
			continue
		}
		match := true
		for j := range rule {
			if rule[j] != target[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

func copyRules(rules [][]string) [][]string {
	result := make([][]string, len(rules))
	for i, rule := range rules {
		result[i] = make([]string, len(rule))
		copy(result[i], rule)
	}
	return result
}
