package middleware

import (
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/you/portfoliosvc/domain"
)

// SessionKey is the gin context key holding the current *domain.Session.
const SessionKey = "session"

// CookieConfig describes the session cookie
type CookieConfig struct {
	Name   string
	Secure bool
	// Now is the clock sessions are issued with; nil means time.Now.
	Now func() time.Time
}

// Set writes token as the session cookie, expiring with the session.
func (cc CookieConfig) Set(c *gin.Context, token string, expiresAt time.Time) {
	now := time.Now
	if cc.Now != nil {
		now = cc.Now
	}
	maxAge := int(math.Ceil(expiresAt.Sub(now()).Seconds()))
	if maxAge < 1 {
		maxAge = 1
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cc.Name, token, maxAge, "/", "", cc.Secure, true)
}

// Clear removes the session cookie.
func (cc CookieConfig) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cc.Name, "", -1, "/", "", cc.Secure, true)
}

// Token returns the session cookie value, or "" when absent.
func (cc CookieConfig) Token(c *gin.Context) string {
	token, err := c.Cookie(cc.Name)
	if err != nil {
		return ""
	}
	return token
}

// AuthMW wraps the session gate for middleware
type AuthMW struct {
	sessionSvc domain.SessionService
	cookie     CookieConfig
}

// NewAuthMW creates new auth middleware wrapper
func NewAuthMW(sessionSvc domain.SessionService, cookie CookieConfig) *AuthMW {
	return &AuthMW{sessionSvc: sessionSvc, cookie: cookie}
}

// LoadSession resolves the session cookie on every request. It never aborts:
// a missing, invalid or expired session leaves the request anonymous and
// drops the stale cookie. A renewed session gets a fresh cookie.
func (mw *AuthMW) LoadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := mw.cookie.Token(c)
		if token == "" {
			c.Next()
			return
		}

		session, renewed, ok := mw.sessionSvc.Guard(c.Request.Context(), token)
		if !ok {
			mw.cookie.Clear(c)
			c.Next()
			return
		}

		if renewed != "" {
			mw.cookie.Set(c, renewed, session.ExpiresAt)
		}
		c.Set(SessionKey, session)
		c.Next()
	}
}

// CurrentSession returns the session loaded for this request, or nil.
func CurrentSession(c *gin.Context) *domain.Session {
	v, ok := c.Get(SessionKey)
	if !ok {
		return nil
	}
	session, _ := v.(*domain.Session)
	return session
}

// ClientContext extracts audit information from the request
func ClientContext(c *gin.Context) *domain.ClientContext {
	cc := &domain.ClientContext{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	if s := CurrentSession(c); s != nil {
		cc.SessionID = s.ID
	}
	return cc
}
