package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/you/portfoliosvc/domain"
	"github.com/you/portfoliosvc/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// CasbinMW gates routes with the access policy. The subject is "user" when
// LoadSession found a valid session and "anonymous" otherwise.
type CasbinMW struct {
	policySvc domain.PolicyService
	audit     domain.AuditLogger
	logger    *zap.Logger
}

// NewCasbinMW creates new casbin middleware wrapper
func NewCasbinMW(policySvc domain.PolicyService, audit domain.AuditLogger, logger *zap.Logger) *CasbinMW {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CasbinMW{policySvc: policySvc, audit: audit, logger: logger}
}

// Enforce returns the casbin authorization middleware. Requests that match no
// route fall through so the not-found handler can answer them.
func (mw *CasbinMW) Enforce() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			c.Next()
			return
		}

		session := CurrentSession(c)
		subject := auth.SubjectAnonymous
		if session != nil {
			subject = auth.SubjectUser
		}

		allowed, err := mw.policySvc.CheckPermission(subject, route, c.Request.Method)
		if err != nil {
			mw.logger.Error("policy check failed", zap.String("route", route), zap.Error(err))
			c.HTML(http.StatusInternalServerError, "500", gin.H{
				"session": session,
				"message": "Authorization check failed",
			})
			c.Abort()
			return
		}
		if allowed {
			c.Next()
			return
		}

		userName := ""
		if session != nil && session.User != nil {
			userName = session.User.UserName
		}
		if mw.audit != nil {
			event := domain.NewAuditEvent(domain.AccessDeniedEvent, userName).
				WithClientContext(ClientContext(c)).
				WithMetadata("route", route).
				WithMetadata("method", c.Request.Method)
			event.Success = false
			_ = mw.audit.LogEvent(c.Request.Context(), event)
		}

		if session == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.HTML(http.StatusNotFound, "404", gin.H{"session": session})
		c.Abort()
	}
}
