package domain

import (
	"errors"
	"fmt"
)

// Registration errors
var (
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrDuplicateIdentifier = errors.New("user name already taken")
	ErrHashingFailed       = errors.New("password hashing failed")
	ErrMissingField        = errors.New("user name and password are required")
)

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session has expired")
	ErrTokenInvalid    = errors.New("invalid session token")
)

// Project errors
var (
	ErrNoProjects      = errors.New("no projects available")
	ErrProjectNotFound = errors.New("unable to find requested project")
)

// ErrStore matches every StoreError through errors.Is.
var ErrStore = errors.New("store error")

// StoreErrorKind classifies persistence failures
type StoreErrorKind string

const (
	StoreConnection StoreErrorKind = "connection"
	StoreConstraint StoreErrorKind = "constraint"
	StoreValidation StoreErrorKind = "validation"
	StoreUnknown    StoreErrorKind = "unknown"
)

// StoreError wraps a driver failure with the operation that caused it
type StoreError struct {
	Op   string
	Kind StoreErrorKind
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %s error: %v", e.Op, e.Kind, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrStore) match any StoreError.
func (e *StoreError) Is(target error) bool {
	return target == ErrStore
}

// NewStoreError builds a StoreError.
func NewStoreError(op string, kind StoreErrorKind, err error) *StoreError {
	return &StoreError{Op: op, Kind: kind, Err: err}
}
