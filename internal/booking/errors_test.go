package booking

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	cause := errors.New("connection lost")
	err := fmt.Errorf("wrapped: %w", NewError(ErrorStatusStorageFailure, cause))

	assert.True(t, ErrorHasStatus(err, ErrorStatusStorageFailure))
	assert.False(t, ErrorHasStatus(err, ErrorStatusInvalidRequest))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "storage_failure")
	assert.Contains(t, err.Error(), "connection lost")

	assert.False(t, ErrorHasStatus(cause, ErrorStatusStorageFailure))
	assert.False(t, ErrorHasStatus(nil, ErrorStatusStorageFailure))
}
