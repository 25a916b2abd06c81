package domain

import "time"

// MaxLoginHistory bounds UserAccount.LoginHistory.
const MaxLoginHistory = 8

// LoginEvent records one successful authentication
type LoginEvent struct {
	LoggedInAt time.Time `json:"logged_in_at"`
	UserAgent  string    `json:"user_agent"`
}

// UserAccount represents a registered user in the credential store
type UserAccount struct {
	ID           uint
	UserName     string
	PasswordHash string
	Email        string
	LoginHistory []LoginEvent
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile returns the account without its password hash.
func (u *UserAccount) Profile() *UserProfile {
	history := make([]LoginEvent, len(u.LoginHistory))
	copy(history, u.LoginHistory)
	return &UserProfile{
		UserName:     u.UserName,
		Email:        u.Email,
		LoginHistory: history,
	}
}

// RecordLogin prepends a login event and drops the oldest entries beyond MaxLoginHistory.
func (u *UserAccount) RecordLogin(at time.Time, userAgent string) {
	history := make([]LoginEvent, 0, len(u.LoginHistory)+1)
	history = append(history, LoginEvent{LoggedInAt: at, UserAgent: userAgent})
	history = append(history, u.LoginHistory...)
	if len(history) > MaxLoginHistory {
		history = history[:MaxLoginHistory]
	}
	u.LoginHistory = history
}

// UserProfile is the public view of an account, also carried by sessions
type UserProfile struct {
	UserName     string       `json:"user_name"`
	Email        string       `json:"email"`
	LoginHistory []LoginEvent `json:"login_history"`
}

// RegisterRequest represents a registration attempt
type RegisterRequest struct {
	UserName        string
	Password        string
	PasswordConfirm string
	Email           string
}

// AuthRequest represents authentication credentials
type AuthRequest struct {
	UserName  string
	Password  string
	UserAgent string
}

// Session represents an authenticated browser session
type Session struct {
	ID        string       `json:"id"`
	User      *UserProfile `json:"user"`
	IssuedAt  time.Time    `json:"issued_at"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// Active reports whether the session is still valid at now.
func (s *Session) Active(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}

// Sector groups projects
type Sector struct {
	ID         uint
	SectorName string
}

// Project is a portfolio entry
type Project struct {
	ID                uint
	Title             string
	FeatureImgURL     string
	SummaryShort      string
	IntroShort        string
	Impact            string
	OriginalSourceURL string
	SectorID          uint
	Sector            *Sector
}
