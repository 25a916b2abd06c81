package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/you/portfoliosvc/domain"
	"go.uber.org/zap"
)

// SessionServiceImpl implements domain.SessionService.
//
// A session lives for duration after login. When a request arrives with less
// than activeDuration remaining, the expiry moves to now+activeDuration and a
// fresh token is issued. There is no hard cap on the total lifetime.
type SessionServiceImpl struct {
	sessionRepo    domain.SessionRepository
	tokenSvc       domain.TokenService
	duration       time.Duration
	activeDuration time.Duration
	now            func() time.Time
	logger         *zap.Logger
}

// NewSessionService creates a new session gate
func NewSessionService(
	sessionRepo domain.SessionRepository,
	tokenSvc domain.TokenService,
	duration, activeDuration time.Duration,
	now func() time.Time,
	logger *zap.Logger,
) domain.SessionService {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionServiceImpl{
		sessionRepo:    sessionRepo,
		tokenSvc:       tokenSvc,
		duration:       duration,
		activeDuration: activeDuration,
		now:            now,
		logger:         logger,
	}
}

// Login implements domain.SessionService
func (s *SessionServiceImpl) Login(ctx context.Context, user *domain.UserProfile) (*domain.Session, string, error) {
	if user == nil {
		return nil, "", errors.New("login requires a user")
	}

	now := s.now()
	session := &domain.Session{
		ID:        uuid.NewString(),
		User:      user,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.duration),
	}

	if err := s.sessionRepo.Save(ctx, session, s.duration); err != nil {
		return nil, "", fmt.Errorf("failed to create session: %w", err)
	}

	token, err := s.tokenSvc.Sign(session)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign session: %w", err)
	}
	return session, token, nil
}

// Guard implements domain.SessionService
func (s *SessionServiceImpl) Guard(ctx context.Context, token string) (*domain.Session, string, bool) {
	if token == "" {
		return nil, "", false
	}

	claims, err := s.tokenSvc.Parse(token)
	if err != nil {
		return nil, "", false
	}

	session, err := s.sessionRepo.FindByID(ctx, claims.SessionID)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			s.logger.Warn("session lookup failed", zap.String("session_id", claims.SessionID), zap.Error(err))
		}
		return nil, "", false
	}

	now := s.now()
	if !session.Active(now) {
		return nil, "", false
	}

	if session.ExpiresAt.Sub(now) >= s.activeDuration {
		return session, "", true
	}

	session.ExpiresAt = now.Add(s.activeDuration)
	if err := s.sessionRepo.Save(ctx, session, s.activeDuration); err != nil {
		s.logger.Warn("session renewal failed", zap.String("session_id", session.ID), zap.Error(err))
		return session, "", true
	}
	renewed, err := s.tokenSvc.Sign(session)
	if err != nil {
		s.logger.Warn("session re-sign failed", zap.String("session_id", session.ID), zap.Error(err))
		return session, "", true
	}
	return session, renewed, true
}

// Logout implements domain.SessionService. Unknown or malformed tokens are
// treated as already logged out.
func (s *SessionServiceImpl) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := s.tokenSvc.Parse(token)
	if err != nil {
		return nil
	}
	if err := s.sessionRepo.Delete(ctx, claims.SessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
