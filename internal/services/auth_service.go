package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/you/portfoliosvc/domain"
)

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	store       domain.CredentialStore
	passwordSvc domain.PasswordService
	now         func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(
	store domain.CredentialStore,
	passwordSvc domain.PasswordService,
	now func() time.Time,
) domain.AuthService {
	if now == nil {
		now = time.Now
	}
	return &AuthServiceImpl{
		store:       store,
		passwordSvc: passwordSvc,
		now:         now,
	}
}

// Register implements domain.AuthService. The password check runs before any
// hashing or store access.
func (s *AuthServiceImpl) Register(ctx context.Context, req domain.RegisterRequest) error {
	if strings.TrimSpace(req.UserName) == "" || req.Password == "" {
		return domain.ErrMissingField
	}
	if req.Password != req.PasswordConfirm {
		return domain.ErrPasswordMismatch
	}

	hashedPassword, err := s.passwordSvc.Hash(req.Password)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrHashingFailed, err)
	}

	now := s.now()
	account := &domain.UserAccount{
		UserName:     req.UserName,
		PasswordHash: hashedPassword,
		Email:        req.Email,
		LoginHistory: []domain.LoginEvent{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.Create(ctx, account); err != nil {
		if errors.Is(err, domain.ErrDuplicateIdentifier) {
			return domain.ErrDuplicateIdentifier
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Authenticate implements domain.AuthService
func (s *AuthServiceImpl) Authenticate(ctx context.Context, req domain.AuthRequest) (*domain.UserProfile, error) {
	account, err := s.store.FindByUserName(ctx, req.UserName)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.passwordSvc.Verify(account.PasswordHash, req.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	account.RecordLogin(s.now(), req.UserAgent)
	if err := s.store.UpdateLoginHistory(ctx, account.UserName, account.LoginHistory); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	return account.Profile(), nil
}
