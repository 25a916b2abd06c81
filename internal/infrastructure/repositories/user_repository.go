package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/you/portfoliosvc/domain"
	"gorm.io/gorm"
)

// UserRepositoryImpl implements domain.CredentialStore using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for UserAccount. The login history is
// kept inline as a JSON document.
type DBUser struct {
	ID           uint      `gorm:"primaryKey"`
	UserName     string    `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `gorm:"column:password;not null"`
	Email        string    `gorm:"size:255"`
	LoginHistory string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"index"`
	UpdatedAt    time.Time
}

// DBLoginEvent is the stored shape of one login history entry
type DBLoginEvent struct {
	DateTime  time.Time `json:"dateTime"`
	UserAgent string    `json:"userAgent"`
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.CredentialStore {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.CredentialStore
func (r *UserRepositoryImpl) Create(ctx context.Context, account *domain.UserAccount) error {
	dbUser, err := r.domainToDB(account)
	if err != nil {
		return domain.NewStoreError("users.create", domain.StoreValidation, err)
	}
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		if isDuplicateKey(err) {
			return domain.ErrDuplicateIdentifier
		}
		return classifyStoreError("users.create", err)
	}
	account.ID = dbUser.ID
	account.CreatedAt = dbUser.CreatedAt
	account.UpdatedAt = dbUser.UpdatedAt
	return nil
}

// FindByUserName implements domain.CredentialStore
func (r *UserRepositoryImpl) FindByUserName(ctx context.Context, userName string) (*domain.UserAccount, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("user_name = ?", userName).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, classifyStoreError("users.find", err)
	}
	return r.dbToDomain(&dbUser)
}

// UpdateLoginHistory implements domain.CredentialStore. The history is
// replaced wholesale; concurrent logins for one user are last-writer-wins.
func (r *UserRepositoryImpl) UpdateLoginHistory(ctx context.Context, userName string, history []domain.LoginEvent) error {
	encoded, err := encodeHistory(history)
	if err != nil {
		return domain.NewStoreError("users.update_login_history", domain.StoreValidation, err)
	}
	result := r.db.WithContext(ctx).Model(&DBUser{}).
		Where("user_name = ?", userName).
		Update("login_history", encoded)
	if result.Error != nil {
		return classifyStoreError("users.update_login_history", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func encodeHistory(history []domain.LoginEvent) (string, error) {
	events := make([]DBLoginEvent, 0, len(history))
	for _, e := range history {
		events = append(events, DBLoginEvent{DateTime: e.LoggedInAt, UserAgent: e.UserAgent})
	}
	data, err := json.Marshal(events)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeHistory(raw string) ([]domain.LoginEvent, error) {
	if raw == "" {
		return []domain.LoginEvent{}, nil
	}
	var events []DBLoginEvent
	if err := json.Unmarshal([]byte(raw), &events); err != nil {
		return nil, err
	}
	history := make([]domain.LoginEvent, 0, len(events))
	for _, e := range events {
		history = append(history, domain.LoginEvent{LoggedInAt: e.DateTime, UserAgent: e.UserAgent})
	}
	return history, nil
}

// domainToDB converts domain account to database user
func (r *UserRepositoryImpl) domainToDB(account *domain.UserAccount) (*DBUser, error) {
	history, err := encodeHistory(account.LoginHistory)
	if err != nil {
		return nil, err
	}
	return &DBUser{
		ID:           account.ID,
		UserName:     account.UserName,
		PasswordHash: account.PasswordHash,
		Email:        account.Email,
		LoginHistory: history,
	}, nil
}

// dbToDomain converts database user to domain account
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) (*domain.UserAccount, error) {
	history, err := decodeHistory(dbUser.LoginHistory)
	if err != nil {
		return nil, domain.NewStoreError("users.decode", domain.StoreValidation, err)
	}
	return &domain.UserAccount{
		ID:           dbUser.ID,
		UserName:     dbUser.UserName,
		PasswordHash: dbUser.PasswordHash,
		Email:        dbUser.Email,
		LoginHistory: history,
		CreatedAt:    dbUser.CreatedAt,
		UpdatedAt:    dbUser.UpdatedAt,
	}, nil
}
