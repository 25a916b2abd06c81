package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/you/portfoliosvc/domain"
	"gorm.io/gorm"
)

func TestUserRepositoryImpl_Create(t *testing.T) {
	tests := []struct {
		name          string
		setupData     func(t *testing.T, repo domain.CredentialStore)
		account       *domain.UserAccount
		expectedError error
		validateData  func(t *testing.T, db *gorm.DB)
	}{
		{
			name: "successful create",
			setupData: func(t *testing.T, repo domain.CredentialStore) {
				// No data setup
			},
			account: &domain.UserAccount{
				UserName:     "alice",
				PasswordHash: "$2a$10$hash",
				Email:        "a@x.com",
			},
			expectedError: nil,
			validateData: func(t *testing.T, db *gorm.DB) {
				var user DBUser
				if err := db.Where("user_name = ?", "alice").First(&user).Error; err != nil {
					t.Fatalf("failed to find user: %v", err)
				}
				if user.PasswordHash != "$2a$10$hash" {
					t.Errorf("expected stored hash, got %s", user.PasswordHash)
				}
				if user.LoginHistory != "[]" {
					t.Errorf("expected empty history document, got %q", user.LoginHistory)
				}
			},
		},
		{
			name: "duplicate user name",
			setupData: func(t *testing.T, repo domain.CredentialStore) {
				err := repo.Create(context.Background(), &domain.UserAccount{
					UserName:     "alice",
					PasswordHash: "original_hash",
					Email:        "first@x.com",
				})
				if err != nil {
					t.Fatalf("setup create failed: %v", err)
				}
			},
			account: &domain.UserAccount{
				UserName:     "alice",
				PasswordHash: "second_hash",
				Email:        "second@x.com",
			},
			expectedError: domain.ErrDuplicateIdentifier,
			validateData: func(t *testing.T, db *gorm.DB) {
				var users []DBUser
				db.Where("user_name = ?", "alice").Find(&users)
				if len(users) != 1 {
					t.Fatalf("expected exactly one alice, got %d", len(users))
				}
				if users[0].PasswordHash != "original_hash" || users[0].Email != "first@x.com" {
					t.Error("original record should be untouched")
				}
			},
		},
		{
			name: "user names are case sensitive",
			setupData: func(t *testing.T, repo domain.CredentialStore) {
				if err := repo.Create(context.Background(), &domain.UserAccount{UserName: "Alice", PasswordHash: "h"}); err != nil {
					t.Fatalf("setup create failed: %v", err)
				}
			},
			account:       &domain.UserAccount{UserName: "alice", PasswordHash: "h"},
			expectedError: nil,
			validateData: func(t *testing.T, db *gorm.DB) {
				var count int64
				db.Model(&DBUser{}).Count(&count)
				if count != 2 {
					t.Errorf("expected 2 users, got %d", count)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup test database
			db := setupTestDB(t)
			repo := NewUserRepository(db)
			tt.setupData(t, repo)

			// Execute test
			err := repo.Create(context.Background(), tt.account)

			// Assert error
			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Errorf("expected error %v, got %v", tt.expectedError, err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			} else if tt.account.ID == 0 {
				t.Error("expected ID to be assigned")
			}

			tt.validateData(t, db)
		})
	}
}

func TestUserRepositoryImpl_FindByUserName(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	loggedIn := time.Date(2025, 8, 9, 12, 0, 0, 0, time.UTC)
	err := repo.Create(ctx, &domain.UserAccount{
		UserName:     "alice",
		PasswordHash: "hashed_password",
		Email:        "a@x.com",
		LoginHistory: []domain.LoginEvent{{LoggedInAt: loggedIn, UserAgent: "curl/8.0"}},
	})
	if err != nil {
		t.Fatalf("setup create failed: %v", err)
	}

	t.Run("found", func(t *testing.T) {
		user, err := repo.FindByUserName(ctx, "alice")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.Email != "a@x.com" || user.PasswordHash != "hashed_password" {
			t.Errorf("unexpected user %+v", user)
		}
		if len(user.LoginHistory) != 1 {
			t.Fatalf("expected 1 history entry, got %d", len(user.LoginHistory))
		}
		if !user.LoginHistory[0].LoggedInAt.Equal(loggedIn) || user.LoginHistory[0].UserAgent != "curl/8.0" {
			t.Errorf("unexpected history entry %+v", user.LoginHistory[0])
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.FindByUserName(ctx, "bob")
		if !errors.Is(err, domain.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("different case is a different user", func(t *testing.T) {
		_, err := repo.FindByUserName(ctx, "ALICE")
		if !errors.Is(err, domain.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestUserRepositoryImpl_UpdateLoginHistory(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, &domain.UserAccount{UserName: "alice", PasswordHash: "h"}); err != nil {
		t.Fatalf("setup create failed: %v", err)
	}

	base := time.Date(2025, 8, 9, 12, 0, 0, 0, time.UTC)
	history := []domain.LoginEvent{
		{LoggedInAt: base.Add(time.Minute), UserAgent: "second"},
		{LoggedInAt: base, UserAgent: "first"},
	}

	if err := repo.UpdateLoginHistory(ctx, "alice", history); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user, err := repo.FindByUserName(ctx, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(user.LoginHistory) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(user.LoginHistory))
	}
	if user.LoginHistory[0].UserAgent != "second" || user.LoginHistory[1].UserAgent != "first" {
		t.Errorf("order not preserved: %+v", user.LoginHistory)
	}

	err = repo.UpdateLoginHistory(ctx, "nobody", history)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound for unknown user, got %v", err)
	}
}

func TestUserRepositoryImpl_StoreErrors(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.Close()

	_, err = repo.FindByUserName(context.Background(), "alice")
	if !errors.Is(err, domain.ErrStore) {
		t.Fatalf("expected StoreError, got %v", err)
	}
	if errors.Is(err, domain.ErrUserNotFound) {
		t.Error("closed database must not look like a missing user")
	}

	err = repo.Create(context.Background(), &domain.UserAccount{UserName: "alice", PasswordHash: "h"})
	if !errors.Is(err, domain.ErrStore) {
		t.Errorf("expected StoreError, got %v", err)
	}
}
