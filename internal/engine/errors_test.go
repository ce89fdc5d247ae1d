package engine

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCycleError_Error(t *testing.T) {
	err := NewTransactionError("cycle-7", errors.New("disk full"))
	assert.Equal(t, "TRANSACTION_FAILED: cycle cycle-7: disk full", err.Error())

	noID := &CycleError{Code: ErrCodeStoreUnavailable, Err: errors.New("read-only file system")}
	assert.Equal(t, "STORE_UNAVAILABLE: read-only file system", noID.Error())
}

func TestIsCycleError_Wrapped(t *testing.T) {
	inner := errors.New("locked")
	err := fmt.Errorf("tick: %w", NewTransactionError("c", inner))

	assert.True(t, IsCycleError(err))
	assert.ErrorIs(t, err, inner)
	assert.False(t, IsCycleError(inner))
	assert.False(t, IsCycleError(nil))
}
