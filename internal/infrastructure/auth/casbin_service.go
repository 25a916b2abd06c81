package auth

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/casbin/gorm-adapter/v3"
	"github.com/you/portfoliosvc/domain"
	"gorm.io/gorm"
)

// Route subjects used by the access policy.
const (
	SubjectAnonymous = "anonymous"
	SubjectUser      = "user"
)

// RouteModel matches gin route patterns with keyMatch2 and methods by regex.
// A user inherits every anonymous permission.
const RouteModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
`

// DefaultPolicies are seeded when the policy table is empty.
var DefaultPolicies = [][]string{
	{SubjectAnonymous, "/", "GET"},
	{SubjectAnonymous, "/about", "GET"},
	{SubjectAnonymous, "/login", "(GET|POST)"},
	{SubjectAnonymous, "/register", "(GET|POST)"},
	{SubjectAnonymous, "/logout", "GET"},
	{SubjectAnonymous, "/static/*", "(GET|HEAD)"},
	{SubjectAnonymous, "/solutions/projects", "GET"},
	{SubjectAnonymous, "/solutions/projects/:id", "GET"},
	{SubjectUser, "/userHistory", "GET"},
	{SubjectUser, "/solutions/addProject", "(GET|POST)"},
	{SubjectUser, "/solutions/editProject/:id", "GET"},
	{SubjectUser, "/solutions/editProject", "POST"},
	{SubjectUser, "/solutions/deleteProject/:id", "GET"},
}

type CasbinService struct{ E *casbin.Enforcer }

// NewCasbinService builds an enforcer whose policies live in the casbin_rule table.
func NewCasbinService(db *gorm.DB) (*CasbinService, error) {
	adp, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}
	m, err := model.NewModelFromString(RouteModel)
	if err != nil {
		return nil, err
	}
	E, err := casbin.NewEnforcer(m, adp)
	if err != nil {
		return nil, err
	}
	if err := E.LoadPolicy(); err != nil {
		return nil, err
	}
	return &CasbinService{E}, nil
}

// NewMemoryEnforcer builds an enforcer without persistence, seeded with DefaultPolicies.
func NewMemoryEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(RouteModel)
	if err != nil {
		return nil, err
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}
	if _, err := SeedDefaultPolicies(e); err != nil {
		return nil, err
	}
	return e, nil
}

// SeedDefaultPolicies installs DefaultPolicies and the user->anonymous grouping
// when no policy exists yet. It reports whether anything was written. The
// adapter, when present, persists each rule as it is added.
func SeedDefaultPolicies(e domain.CasbinEnforcer) (bool, error) {
	policies, err := e.GetPolicy()
	if err != nil {
		return false, err
	}
	if len(policies) > 0 {
		return false, nil
	}
	for _, p := range DefaultPolicies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return false, fmt.Errorf("add policy %v: %w", p, err)
		}
	}
	if _, err := e.AddGroupingPolicy(SubjectUser, SubjectAnonymous); err != nil {
		return false, fmt.Errorf("add grouping policy: %w", err)
	}
	return true, nil
}
