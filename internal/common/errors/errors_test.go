package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructorsSetCodeAndRetryability(t *testing.T) {
	cases := []struct {
		err       *StandardError
		code      ErrorCode
		retryable bool
	}{
		{NewSubmissionValidationFailedError("missing cpf"), ErrCodeSubmissionValidationFailed, false},
		{NewDuplicateEnrollmentError("12345678901"), ErrCodeDuplicateEnrollment, false},
		{NewDatabaseConnectionFailedError(errors.New("refused")), ErrCodeDatabaseConnectionFailed, true},
		{NewSchemaEnsureFailedError(errors.New("denied")), ErrCodeSchemaEnsureFailed, true},
		{NewDatabaseInsertFailedError(errors.New("timeout")), ErrCodeDatabaseInsertFailed, true},
		{NewDocumentWriteFailedError("rg", errors.New("disk full")), ErrCodeDocumentWriteFailed, true},
		{NewIndexWriteFailedError(errors.New("503")), ErrCodeIndexWriteFailed, true},
		{NewProtocolCacheFailedError(errors.New("conn reset")), ErrCodeProtocolCacheFailed, true},
		{NewNotificationSendFailedError("email", errors.New("throttled")), ErrCodeNotificationFailed, true},
		{NewCatalogInvariantError("role in two tiers"), ErrCodeCatalogInvariant, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.code, tc.err.Code)
		assert.Equal(t, tc.retryable, tc.err.Retryable)
		assert.NotZero(t, tc.err.Timestamp)
		assert.Contains(t, tc.err.Error(), string(tc.code))
	}
}

func TestGetRetryCount(t *testing.T) {
	assert.Equal(t, 3, GetRetryCount(ErrCodeDatabaseInsertFailed))
	assert.Equal(t, 3, GetRetryCount(ErrCodeDocumentWriteFailed))
	assert.Equal(t, 0, GetRetryCount(ErrCodeSubmissionValidationFailed))
	assert.Equal(t, 0, GetRetryCount(ErrCodeDuplicateEnrollment))
	assert.Equal(t, 0, GetRetryCount(ErrCodeCatalogInvariant))
}

func TestIsRetryableErrorCode(t *testing.T) {
	assert.True(t, IsRetryableErrorCode(ErrCodeIndexWriteFailed))
	assert.False(t, IsRetryableErrorCode(ErrCodeDuplicateEnrollment))
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "SUBMISSION", GetErrorCategory(ErrCodeSubmissionValidationFailed))
	assert.Equal(t, "SUBMISSION", GetErrorCategory(ErrCodeDuplicateEnrollment))
	assert.Equal(t, "DATABASE", GetErrorCategory(ErrCodeSchemaEnsureFailed))
	assert.Equal(t, "STORAGE", GetErrorCategory(ErrCodeDocumentWriteFailed))
	assert.Equal(t, "STORAGE", GetErrorCategory(ErrCodeProtocolCacheFailed))
	assert.Equal(t, "NOTIFICATION", GetErrorCategory(ErrCodeNotificationFailed))
	assert.Equal(t, "CONFIGURATION", GetErrorCategory(ErrCodeCatalogInvariant))
}
