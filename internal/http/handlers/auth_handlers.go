package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/you/portfoliosvc/domain"
	"github.com/you/portfoliosvc/internal/http/middleware"
	"go.uber.org/zap"
)

// AuthHandlers handles the login, registration and history pages
type AuthHandlers struct {
	authSvc    domain.AuthService
	sessionSvc domain.SessionService
	audit      domain.AuditLogger
	cookie     middleware.CookieConfig
	logger     *zap.Logger
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(
	authSvc domain.AuthService,
	sessionSvc domain.SessionService,
	audit domain.AuditLogger,
	cookie middleware.CookieConfig,
	logger *zap.Logger,
) *AuthHandlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandlers{
		authSvc:    authSvc,
		sessionSvc: sessionSvc,
		audit:      audit,
		cookie:     cookie,
		logger:     logger,
	}
}

// RegisterForm represents the registration form
type RegisterForm struct {
	UserName  string `form:"userName"`
	Email     string `form:"email"`
	Password  string `form:"password"`
	Password2 string `form:"password2"`
}

// LoginForm represents the login form
type LoginForm struct {
	UserName string `form:"userName"`
	Password string `form:"password"`
}

const loginFailedMessage = "Incorrect user name or password"

// RegisterPage renders the empty registration form
func (h *AuthHandlers) RegisterPage(c *gin.Context) {
	render(c, http.StatusOK, "register", gin.H{"title": "Register"})
}

// Register handles user registration
func (h *AuthHandlers) Register(c *gin.Context) {
	var form RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "register", gin.H{"title": "Register", "errorMessage": "Invalid form submission"})
		return
	}

	err := h.authSvc.Register(c.Request.Context(), domain.RegisterRequest{
		UserName:        form.UserName,
		Password:        form.Password,
		PasswordConfirm: form.Password2,
		Email:           form.Email,
	})
	if err != nil {
		h.logAudit(c, domain.NewAuditEvent(domain.UserRegisterFailEvent, form.UserName).WithError(err))

		status, message := registerFailure(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("registration failed", zap.String("user_name", form.UserName), zap.Error(err))
		}
		render(c, status, "register", gin.H{
			"title":        "Register",
			"errorMessage": message,
			"userName":     form.UserName,
			"email":        form.Email,
		})
		return
	}

	h.logAudit(c, domain.NewAuditEvent(domain.UserRegistrationEvent, form.UserName))
	render(c, http.StatusOK, "register", gin.H{"title": "Register", "successMessage": "User created"})
}

func registerFailure(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrMissingField):
		return http.StatusBadRequest, "User name and password are required"
	case errors.Is(err, domain.ErrPasswordMismatch):
		return http.StatusBadRequest, "Passwords do not match"
	case errors.Is(err, domain.ErrDuplicateIdentifier):
		return http.StatusConflict, "User Name already taken"
	case errors.Is(err, domain.ErrHashingFailed):
		return http.StatusInternalServerError, "There was an error encrypting the password"
	default:
		return http.StatusInternalServerError, "There was an error creating the user"
	}
}

// LoginPage renders the empty login form
func (h *AuthHandlers) LoginPage(c *gin.Context) {
	render(c, http.StatusOK, "login", gin.H{"title": "Log in"})
}

// Login handles user login. Unknown users and wrong passwords get the same
// message; the entered user name is kept, the password is not.
func (h *AuthHandlers) Login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "login", gin.H{"title": "Log in", "errorMessage": loginFailedMessage})
		return
	}

	profile, err := h.authSvc.Authenticate(c.Request.Context(), domain.AuthRequest{
		UserName:  form.UserName,
		Password:  form.Password,
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		h.logAudit(c, domain.NewAuditEvent(domain.UserLoginFailureEvent, form.UserName).WithError(err))

		status, message := http.StatusUnauthorized, loginFailedMessage
		if !errors.Is(err, domain.ErrUserNotFound) && !errors.Is(err, domain.ErrInvalidCredentials) {
			h.logger.Error("authentication failed", zap.String("user_name", form.UserName), zap.Error(err))
			status, message = http.StatusInternalServerError, "Unable to log in right now"
		}
		render(c, status, "login", gin.H{"title": "Log in", "errorMessage": message, "userName": form.UserName})
		return
	}

	session, token, err := h.sessionSvc.Login(c.Request.Context(), profile)
	if err != nil {
		h.logger.Error("session creation failed", zap.String("user_name", form.UserName), zap.Error(err))
		render(c, http.StatusInternalServerError, "login", gin.H{
			"title":        "Log in",
			"errorMessage": "Unable to log in right now",
			"userName":     form.UserName,
		})
		return
	}

	h.cookie.Set(c, token, session.ExpiresAt)
	cc := middleware.ClientContext(c)
	cc.SessionID = session.ID
	h.logAudit(c, domain.NewAuditEvent(domain.UserLoginEvent, profile.UserName).
		WithClientContext(cc).
		WithMetadata("history_len", len(profile.LoginHistory)))

	c.Redirect(http.StatusFound, "/solutions/projects")
}

// Logout revokes the session and clears the cookie
func (h *AuthHandlers) Logout(c *gin.Context) {
	session := middleware.CurrentSession(c)
	if token := h.cookie.Token(c); token != "" {
		if err := h.sessionSvc.Logout(c.Request.Context(), token); err != nil {
			h.logger.Warn("logout failed", zap.Error(err))
		}
	}
	h.cookie.Clear(c)

	if session != nil && session.User != nil {
		h.logAudit(c, domain.NewAuditEvent(domain.UserLogoutEvent, session.User.UserName))
	}
	c.Redirect(http.StatusFound, "/")
}

// UserHistory renders the login history captured in the session
func (h *AuthHandlers) UserHistory(c *gin.Context) {
	if middleware.CurrentSession(c) == nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	render(c, http.StatusOK, "userHistory", gin.H{"title": "Login history"})
}

func (h *AuthHandlers) logAudit(c *gin.Context, event *domain.AuditEvent) {
	if h.audit == nil {
		return
	}
	if event.IPAddress == "" {
		event.WithClientContext(middleware.ClientContext(c))
	}
	if err := h.audit.LogEvent(c.Request.Context(), event); err != nil {
		h.logger.Warn("audit log failed", zap.String("event_type", string(event.EventType)), zap.Error(err))
	}
}
