package postgres

import (
	"context"
	"net/http"
	"testing"

	domainerrors "bento/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestIsTransientError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "deadline exceeded", err: context.DeadlineExceeded, want: true},
		{name: "wrapped deadline exceeded", err: errors.Wrap(context.DeadlineExceeded, "commit"), want: true},
		{name: "context canceled", err: context.Canceled, want: true},
		{name: "connection refused", err: errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"), want: true},
		{name: "connection reset", err: errors.New("read tcp 10.0.0.1:5432: connection reset by peer"), want: true},
		{name: "broken pipe", err: errors.New("write tcp 10.0.0.1:5432: write: broken pipe"), want: true},
		{name: "io timeout", err: errors.New("read tcp 10.0.0.1:5432: i/o timeout"), want: true},
		{name: "driver bad connection", err: errors.New("driver: bad connection"), want: true},
		{name: "connection exception", err: errors.New("FATAL: terminating connection due to administrator command (SQLSTATE 08006)"), want: true},
		{name: "query canceled", err: errors.New("ERROR: canceling statement due to statement timeout (SQLSTATE 57014)"), want: true},
		{name: "duplicate key", err: gorm.ErrDuplicatedKey, want: false},
		{name: "record not found", err: gorm.ErrRecordNotFound, want: false},
		{name: "deadlock", err: errors.New("ERROR: deadlock detected (SQLSTATE 40P01)"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isTransientError(tt.err))
		})
	}
}

func TestTranslateExecuteError_TransientBecomesStoreUnavailable(t *testing.T) {
	err := translateExecuteError(errors.Wrap(context.DeadlineExceeded, "exec"), "failed to create order")

	assert.True(t, errors.Is(err, domainerrors.ErrStoreUnavailable))

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusServiceUnavailable, appErr.HTTPCode())
	assert.Equal(t, "STORE_UNAVAILABLE", appErr.ErrorCode())
}

func TestTranslateExecuteError_RejectedStatementIsNotRetryable(t *testing.T) {
	err := translateExecuteError(errors.New("ERROR: value too long for type (SQLSTATE 22001)"), "failed to create order")

	assert.False(t, errors.Is(err, domainerrors.ErrStoreUnavailable))

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPCode())
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", appErr.ErrorCode())
}

func TestTranslateTxError(t *testing.T) {
	transient := translateTxError(errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"), "failed to begin transaction")
	assert.True(t, errors.Is(transient, domainerrors.ErrStoreUnavailable))

	hard := translateTxError(errors.New("ERROR: could not serialize access (SQLSTATE 40001)"), "failed to commit transaction")
	assert.True(t, errors.Is(hard, domainerrors.ErrTransactionFailed))
	assert.False(t, errors.Is(hard, domainerrors.ErrStoreUnavailable))
}
