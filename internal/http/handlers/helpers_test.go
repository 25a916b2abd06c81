package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/you/portfoliosvc/domain"
	"github.com/you/portfoliosvc/internal/http/middleware"
	"github.com/you/portfoliosvc/internal/http/views"
)

var testCookie = middleware.CookieConfig{Name: "session"}

// newTestEngine builds a gin engine with the real templates. A non-nil
// session is placed in the context the way LoadSession would.
func newTestEngine(t *testing.T, session *domain.Session) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tmpl, err := views.Load()
	require.NoError(t, err)

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	if session != nil {
		r.Use(func(c *gin.Context) {
			c.Set(middleware.SessionKey, session)
			c.Next()
		})
	}
	return r
}

func testSession() *domain.Session {
	now := time.Now()
	return &domain.Session{
		ID: "sess-1",
		User: &domain.UserProfile{
			UserName: "alice",
			Email:    "a@x.com",
			LoginHistory: []domain.LoginEvent{
				{LoggedInAt: now, UserAgent: "Firefox/126.0"},
				{LoggedInAt: now.Add(-time.Hour), UserAgent: "curl/8.0"},
			},
		},
		IssuedAt:  now,
		ExpiresAt: now.Add(2 * time.Minute),
	}
}

func postForm(r http.Handler, path string, values url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", "test-agent/1.0")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r http.Handler, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
