package repositories

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/you/portfoliosvc/domain"
	"gorm.io/gorm"
)

// isDuplicateKey reports a uniqueness violation. TranslateError covers the
// supported drivers; the message check catches connections opened without it.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "SQLSTATE 23505")
}

// classifyStoreError maps a driver failure to exactly one StoreError kind.
func classifyStoreError(op string, err error) error {
	var netErr net.Error
	switch {
	case isDuplicateKey(err), errors.Is(err, gorm.ErrForeignKeyViolated):
		return domain.NewStoreError(op, domain.StoreConstraint, err)
	case errors.Is(err, gorm.ErrInvalidData),
		errors.Is(err, gorm.ErrInvalidField),
		errors.Is(err, gorm.ErrInvalidValue),
		errors.Is(err, gorm.ErrInvalidValueOfLength),
		errors.Is(err, gorm.ErrMissingWhereClause),
		errors.Is(err, gorm.ErrPrimaryKeyRequired):
		return domain.NewStoreError(op, domain.StoreValidation, err)
	case errors.Is(err, driver.ErrBadConn),
		errors.Is(err, sql.ErrConnDone),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled),
		errors.As(err, &netErr):
		return domain.NewStoreError(op, domain.StoreConnection, err)
	default:
		return domain.NewStoreError(op, domain.StoreUnknown, err)
	}
}
