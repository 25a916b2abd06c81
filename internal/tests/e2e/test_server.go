package e2e

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"

	"github.com/you/portfoliosvc/internal/app"
	"github.com/you/portfoliosvc/internal/config"
)

const sessionCookie = "session"

var dbSeq int64

// TestClock is the clock every service of a TestServer reads
type TestClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewTestClock starts at a fixed instant
func NewTestClock() *TestClock {
	return &TestClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *TestClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *TestClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// TestServer runs the full application against an in-memory SQLite
// database and miniredis.
type TestServer struct {
	Server    *httptest.Server
	Container *app.Container
	Config    *config.Config
	Redis     *miniredis.Miniredis
	Clock     *TestClock
}

// NewTestServer boots the container the same way the binary does
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	clock := NewTestClock()
	dsn := fmt.Sprintf("sqlite:file:e2e_%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	cfg := &config.Config{
		Port:                  "0",
		GinMode:               gin.TestMode,
		DSN:                   dsn,
		AccountsDSN:           dsn,
		RedisAddr:             mr.Addr(),
		SessionCookie:         sessionCookie,
		SessionSecret:         "e2e-secret",
		SessionDuration:       2 * time.Minute,
		SessionActiveDuration: time.Minute,
		PasswordCost:          bcrypt.MinCost,
		LogLevel:              "debug",
	}

	c, err := app.NewContainer(context.Background(), cfg, zaptest.NewLogger(t), clock.Now)
	require.NoError(t, err, "container should start")
	t.Cleanup(func() { _ = c.Close() })

	router, err := c.Router()
	require.NoError(t, err)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &TestServer{Server: srv, Container: c, Config: cfg, Redis: mr, Clock: clock}
}

// URL returns the full URL for a given path
func (ts *TestServer) URL(path string) string {
	return ts.Server.URL + path
}

// Browser keeps the session cookie between requests and never follows
// redirects, so tests can assert on them.
type Browser struct {
	t         *testing.T
	ts        *TestServer
	client    *http.Client
	UserAgent string
	cookie    string
}

// Response is a fully read HTTP response
type Response struct {
	Status   int
	Location string
	Body     string
}

func (ts *TestServer) NewBrowser(t *testing.T, userAgent string) *Browser {
	t.Helper()
	return &Browser{
		t:  t,
		ts: ts,
		client: &http.Client{
			Timeout: 10 * time.Second,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		UserAgent: userAgent,
	}
}

// HasSession reports whether the server left a session cookie
func (b *Browser) HasSession() bool {
	return b.cookie != ""
}

func (b *Browser) Get(path string) *Response {
	b.t.Helper()
	req, err := http.NewRequest(http.MethodGet, b.ts.URL(path), nil)
	require.NoError(b.t, err)
	return b.do(req)
}

func (b *Browser) PostForm(path string, values url.Values) *Response {
	b.t.Helper()
	req, err := http.NewRequest(http.MethodPost, b.ts.URL(path), strings.NewReader(values.Encode()))
	require.NoError(b.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func (b *Browser) Register(userName, email, password string) *Response {
	b.t.Helper()
	return b.PostForm("/register", url.Values{
		"userName":  {userName},
		"email":     {email},
		"password":  {password},
		"password2": {password},
	})
}

func (b *Browser) Login(userName, password string) *Response {
	b.t.Helper()
	return b.PostForm("/login", url.Values{"userName": {userName}, "password": {password}})
}

func (b *Browser) do(req *http.Request) *Response {
	b.t.Helper()
	req.Header.Set("User-Agent", b.UserAgent)
	if b.cookie != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: b.cookie})
	}

	resp, err := b.client.Do(req)
	require.NoError(b.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(b.t, err)

	for _, c := range resp.Cookies() {
		if c.Name != sessionCookie {
			continue
		}
		if c.MaxAge < 0 || c.Value == "" {
			b.cookie = ""
		} else {
			b.cookie = c.Value
		}
	}

	return &Response{
		Status:   resp.StatusCode,
		Location: resp.Header.Get("Location"),
		Body:     string(body),
	}
}
