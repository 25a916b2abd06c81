package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/you/portfoliosvc/domain"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func testSession(t0 time.Time) *domain.Session {
	return &domain.Session{
		ID:        "sess-1",
		User:      &domain.UserProfile{UserName: "alice", Email: "a@x.com"},
		IssuedAt:  t0,
		ExpiresAt: t0.Add(2 * time.Minute),
	}
}

func TestSessionTokenService_SignAndParse(t *testing.T) {
	t0 := time.Date(2025, 8, 9, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: t0}
	svc := NewSessionTokenService("secret", "portfoliosvc", clock.Now)

	token, err := svc.Sign(testSession(t0))
	require.NoError(t, err)

	clock.t = t0.Add(119 * time.Second)
	claims, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", claims.SessionID)
	assert.Equal(t, "alice", claims.UserName)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, t0.Unix(), claims.IssuedAt)
	assert.Equal(t, t0.Add(2*time.Minute).Unix(), claims.ExpiresAt)
}

func TestSessionTokenService_Expired(t *testing.T) {
	t0 := time.Date(2025, 8, 9, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: t0}
	svc := NewSessionTokenService("secret", "portfoliosvc", clock.Now)

	token, err := svc.Sign(testSession(t0))
	require.NoError(t, err)

	clock.t = t0.Add(121 * time.Second)
	_, err = svc.Parse(token)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}

func TestSessionTokenService_SubSecondExpiry(t *testing.T) {
	t0 := time.Date(2025, 8, 9, 12, 0, 0, 900*int(time.Millisecond), time.UTC)
	clock := &fakeClock{t: t0}
	svc := NewSessionTokenService("secret", "portfoliosvc", clock.Now)

	session := testSession(t0)
	token, err := svc.Sign(session)
	require.NoError(t, err)

	// 0.5s before the stored expiry, past the whole second it falls in
	clock.t = session.ExpiresAt.Add(-500 * time.Millisecond)
	require.Equal(t, session.ExpiresAt.Unix(), clock.t.Unix())
	claims, err := svc.Parse(token)
	require.NoError(t, err, "token must outlive the stored session")
	assert.Equal(t, session.ExpiresAt.Unix()+1, claims.ExpiresAt)

	clock.t = session.ExpiresAt.Add(time.Second)
	_, err = svc.Parse(token)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}

func TestSessionTokenService_Rejects(t *testing.T) {
	t0 := time.Now()
	svc := NewSessionTokenService("secret", "portfoliosvc", nil)
	other := NewSessionTokenService("other-secret", "portfoliosvc", nil)
	otherIssuer := NewSessionTokenService("secret", "someone-else", nil)

	forged, err := other.Sign(testSession(t0))
	require.NoError(t, err)
	wrongIssuer, err := otherIssuer.Sign(testSession(t0))
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sid": "sess-1",
		"iss": "portfoliosvc",
		"exp": t0.Add(time.Minute).Unix(),
	})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noSID := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss": "portfoliosvc",
		"iat": t0.Unix(),
		"exp": t0.Add(time.Minute).Unix(),
	})
	missingSID, err := noSID.SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not.a.token"},
		{name: "wrong secret", token: forged},
		{name: "wrong issuer", token: wrongIssuer},
		{name: "none algorithm", token: unsigned},
		{name: "missing session id", token: missingSID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Parse(tt.token)
			assert.ErrorIs(t, err, domain.ErrTokenInvalid)
		})
	}
}
