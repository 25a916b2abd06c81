package domain

import (
	"context"
	"time"
)

// CredentialStore defines user account persistence
type CredentialStore interface {
	// Create fails with ErrDuplicateIdentifier when the user name is taken.
	Create(ctx context.Context, account *UserAccount) error
	FindByUserName(ctx context.Context, userName string) (*UserAccount, error)
	UpdateLoginHistory(ctx context.Context, userName string, history []LoginEvent) error
}

// SessionRepository defines server-side session persistence
type SessionRepository interface {
	Save(ctx context.Context, session *Session, ttl time.Duration) error
	FindByID(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// ProjectRepository defines project and sector data access
type ProjectRepository interface {
	FindAll(ctx context.Context) ([]Project, error)
	FindBySector(ctx context.Context, sector string) ([]Project, error)
	FindByID(ctx context.Context, id uint) (*Project, error)
	Create(ctx context.Context, project *Project) error
	Update(ctx context.Context, id uint, project *Project) error
	Delete(ctx context.Context, id uint) error
	FindAllSectors(ctx context.Context) ([]Sector, error)
}

// AuthService defines registration and authentication
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) error
	Authenticate(ctx context.Context, req AuthRequest) (*UserProfile, error)
}

// SessionService issues, validates and revokes sessions
type SessionService interface {
	Login(ctx context.Context, user *UserProfile) (*Session, string, error)
	// Guard returns the session carried by token and a renewed token when the
	// expiry slid. Missing, invalid and expired sessions all yield ok == false.
	Guard(ctx context.Context, token string) (session *Session, renewed string, ok bool)
	Logout(ctx context.Context, token string) error
}

// ProjectService defines project browsing and administration
type ProjectService interface {
	ListProjects(ctx context.Context) ([]Project, error)
	ListProjectsBySector(ctx context.Context, sector string) ([]Project, error)
	GetProject(ctx context.Context, id uint) (*Project, error)
	CreateProject(ctx context.Context, project *Project) error
	UpdateProject(ctx context.Context, id uint, project *Project) error
	DeleteProject(ctx context.Context, id uint) error
	ListSectors(ctx context.Context) ([]Sector, error)
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService signs and parses session cookies
type TokenService interface {
	Sign(session *Session) (string, error)
	Parse(token string) (*TokenClaims, error)
}

// PolicyService defines route access policy operations
type PolicyService interface {
	CheckPermission(subject, route, method string) (bool, error)
	GetPolicies() [][]string
}

// TokenClaims represents the verified contents of a session cookie
type TokenClaims struct {
	SessionID string `json:"sid"`
	UserName  string `json:"user_name"`
	Email     string `json:"email"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// CasbinEnforcer interface defines the methods we need from Casbin enforcer
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	AddGroupingPolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
}
