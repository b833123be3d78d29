package postgres

import (
	"context"
	"net"
	"strings"

	domainerrors "bento/internal/domain/errors"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Helper functions for PostgreSQL error checking
func isUniqueConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func isForeignKeyConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated)
}

func isNotNullConstraintViolation(err error) bool {
	// GORM has no sentinel for not-null violations, match the message.
	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "null value") ||
		strings.Contains(errMsg, "not null") ||
		strings.Contains(errMsg, "23502") // PostgreSQL not_null_violation error code
}

func isCheckConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrCheckConstraintViolated)
}

// isTransientError reports whether an error is a connectivity or timeout
// failure rather than a statement the database rejected. These are the
// failures a caller may retry.
func isTransientError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "broken pipe") ||
		strings.Contains(errMsg, "i/o timeout") ||
		strings.Contains(errMsg, "bad connection") ||
		strings.Contains(errMsg, "sqlstate 08") || // PostgreSQL connection_exception class
		strings.Contains(errMsg, "57014") // PostgreSQL query_canceled error code
}

// translateExecuteError maps a failed statement onto the domain taxonomy:
// transient connectivity failures surface as the retryable store-unavailable
// error, anything else as a database execution error.
func translateExecuteError(err error, message string) error {
	if isTransientError(err) {
		return errors.Wrap(domainerrors.ErrStoreUnavailable.WithDetails(err.Error()), message)
	}

	return domainerrors.NewDatabaseExecuteError(err, message)
}
