package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/you/portfoliosvc/domain"
	"github.com/you/portfoliosvc/internal/config"
	httpx "github.com/you/portfoliosvc/internal/http"
	"github.com/you/portfoliosvc/internal/http/handlers"
	"github.com/you/portfoliosvc/internal/http/middleware"
	"github.com/you/portfoliosvc/internal/infrastructure/audit"
	"github.com/you/portfoliosvc/internal/infrastructure/auth"
	"github.com/you/portfoliosvc/internal/infrastructure/database"
	"github.com/you/portfoliosvc/internal/infrastructure/repositories"
	"github.com/you/portfoliosvc/internal/services"
)

const sessionIssuer = "portfoliosvc"

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config
	Logger *zap.Logger
	Now    func() time.Time

	// Infrastructure
	ProjectsDB *gorm.DB
	AccountsDB *gorm.DB
	Redis      *database.RedisClient
	Enforcer   *casbin.Enforcer

	// Repositories
	CredentialStore domain.CredentialStore
	SessionRepo     domain.SessionRepository
	ProjectRepo     domain.ProjectRepository

	// Services
	PasswordSvc domain.PasswordService
	TokenSvc    domain.TokenService
	AuthSvc     domain.AuthService
	SessionSvc  domain.SessionService
	ProjectSvc  domain.ProjectService
	PolicySvc   domain.PolicyService
	AuditLogger domain.AuditLogger
}

// NewContainer connects every store and builds the services. Stores are
// initialized in order (projects, accounts, redis, access policy) and the
// first failure aborts startup with everything opened so far closed again.
func NewContainer(ctx context.Context, cfg *config.Config, logger *zap.Logger, now func() time.Time) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	c := &Container{Config: cfg, Logger: logger, Now: now}

	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"project store", c.initProjectStore},
		{"credential store", c.initCredentialStore},
		{"session store", c.initRedis},
		{"access policy", c.initPolicy},
	}
	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("%s: %w", step.name, err)
		}
		logger.Info("initialized", zap.String("component", step.name))
	}

	c.initRepositories()
	c.initServices()
	return c, nil
}

func (c *Container) initProjectStore(ctx context.Context) error {
	db, err := database.Open(c.Config.DSN)
	if err != nil {
		return err
	}
	c.ProjectsDB = db
	if err := database.Ping(db); err != nil {
		return err
	}
	return database.MigrateProjects(db)
}

func (c *Container) initCredentialStore(ctx context.Context) error {
	if c.Config.AccountsDSN == c.Config.DSN {
		c.AccountsDB = c.ProjectsDB
	} else {
		db, err := database.Open(c.Config.AccountsDSN)
		if err != nil {
			return err
		}
		c.AccountsDB = db
		if err := database.Ping(db); err != nil {
			return err
		}
	}
	return database.MigrateAccounts(c.AccountsDB)
}

func (c *Container) initRedis(ctx context.Context) error {
	c.Redis = database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return c.Redis.Ping(pingCtx)
}

func (c *Container) initPolicy(ctx context.Context) error {
	cas, err := auth.NewCasbinService(c.AccountsDB)
	if err != nil {
		return err
	}
	c.Enforcer = cas.E
	seeded, err := auth.SeedDefaultPolicies(services.NewCasbinEnforcerWrapper(cas.E))
	if err != nil {
		return err
	}
	if seeded {
		c.Logger.Info("casbin: seeded default policies", zap.Int("count", len(auth.DefaultPolicies)))
	}
	return nil
}

func (c *Container) initRepositories() {
	c.CredentialStore = repositories.NewUserRepository(c.AccountsDB)
	c.SessionRepo = repositories.NewSessionRepository(c.Redis.Client)
	c.ProjectRepo = repositories.NewProjectRepository(c.ProjectsDB)
}

func (c *Container) initServices() {
	c.PasswordSvc = auth.NewPasswordService(c.Config.PasswordCost)
	c.TokenSvc = auth.NewSessionTokenService(c.Config.SessionSecret, sessionIssuer, c.Now)
	c.AuthSvc = services.NewAuthService(c.CredentialStore, c.PasswordSvc, c.Now)
	c.SessionSvc = services.NewSessionService(
		c.SessionRepo,
		c.TokenSvc,
		c.Config.SessionDuration,
		c.Config.SessionActiveDuration,
		c.Now,
		c.Logger,
	)
	c.ProjectSvc = services.NewProjectService(c.ProjectRepo)
	c.PolicySvc = services.NewPolicyService(c.Enforcer)
	c.AuditLogger = audit.NewZapAuditLogger(c.Logger)
}

// Router builds the HTTP handler tree
func (c *Container) Router() (*gin.Engine, error) {
	cookie := middleware.CookieConfig{Name: c.Config.SessionCookie, Secure: c.Config.SessionSecure, Now: c.Now}
	return httpx.BuildRouter(httpx.Deps{
		Pages:     &handlers.PageHandlers{},
		Auth:      handlers.NewAuthHandlers(c.AuthSvc, c.SessionSvc, c.AuditLogger, cookie, c.Logger),
		Projects:  handlers.NewProjectHandlers(c.ProjectSvc, c.Logger),
		Session:   middleware.NewAuthMW(c.SessionSvc, cookie),
		Policy:    middleware.NewCasbinMW(c.PolicySvc, c.AuditLogger, c.Logger),
		Logger:    c.Logger,
		StaticDir: c.Config.StaticDir,
	})
}

// Close closes all connections
func (c *Container) Close() error {
	var errs []error
	if c.Redis != nil {
		errs = append(errs, c.Redis.Close())
	}
	if c.AccountsDB != nil && c.AccountsDB != c.ProjectsDB {
		errs = append(errs, database.Close(c.AccountsDB))
	}
	if c.ProjectsDB != nil {
		errs = append(errs, database.Close(c.ProjectsDB))
	}
	return errors.Join(errs...)
}
