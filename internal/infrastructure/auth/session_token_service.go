package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/you/portfoliosvc/domain"
)

// SessionTokenServiceImpl implements domain.TokenService with HS256 signed JWTs
type SessionTokenServiceImpl struct {
	secretKey []byte
	issuer    string
	now       func() time.Time
}

// NewSessionTokenService creates a new session cookie signer
func NewSessionTokenService(secretKey string, issuer string, now func() time.Time) domain.TokenService {
	if now == nil {
		now = time.Now
	}
	return &SessionTokenServiceImpl{
		secretKey: []byte(secretKey),
		issuer:    issuer,
		now:       now,
	}
}

// Sign implements domain.TokenService
func (s *SessionTokenServiceImpl) Sign(session *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"sid": session.ID,
		"iss": s.issuer,
		"iat": session.IssuedAt.Unix(),
		"exp": expiryClaim(session.ExpiresAt),
	}
	if session.User != nil {
		claims["user_name"] = session.User.UserName
		claims["email"] = session.User.Email
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// expiryClaim rounds up to whole seconds so the token never expires before
// the stored session does.
func expiryClaim(t time.Time) int64 {
	exp := t.Unix()
	if t.Nanosecond() > 0 {
		exp++
	}
	return exp
}

// Parse implements domain.TokenService
func (s *SessionTokenServiceImpl) Parse(tokenString string) (*domain.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenInvalid
		}
		return s.secretKey, nil
	},
		jwt.WithTimeFunc(s.now),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrSessionExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return nil, domain.ErrTokenInvalid
	}
	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	tokenClaims := &domain.TokenClaims{
		SessionID: sid,
		IssuedAt:  int64(iat),
		ExpiresAt: int64(exp),
	}
	if userName, ok := claims["user_name"].(string); ok {
		tokenClaims.UserName = userName
	}
	if email, ok := claims["email"].(string); ok {
		tokenClaims.Email = email
	}
	return tokenClaims, nil
}
