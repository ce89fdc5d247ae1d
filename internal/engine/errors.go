package engine

import (
	"errors"
	"fmt"
)

// CycleError reports a refresh cycle that did not commit.
type CycleError struct {
	// Code identifies the error category.
	Code CycleErrorCode

	// CycleID correlates the error with the cycle's log lines.
	CycleID string

	// Err is the underlying store error.
	Err error
}

// CycleErrorCode categorizes cycle failures.
type CycleErrorCode string

const (
	// ErrCodeTransactionFailed indicates the refresh transaction was rolled back.
	ErrCodeTransactionFailed CycleErrorCode = "TRANSACTION_FAILED"

	// ErrCodeStoreUnavailable indicates the store never initialized.
	ErrCodeStoreUnavailable CycleErrorCode = "STORE_UNAVAILABLE"
)

// Error implements the error interface.
func (e *CycleError) Error() string {
	if e.CycleID != "" {
		return fmt.Sprintf("%s: cycle %s: %v", e.Code, e.CycleID, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e *CycleError) Unwrap() error {
	return e.Err
}

// IsCycleError returns true if err is a failed cycle.
// Uses errors.As to handle wrapped errors.
func IsCycleError(err error) bool {
	var ce *CycleError
	return errors.As(err, &ce)
}

// NewTransactionError creates a CycleError for a rolled-back refresh.
func NewTransactionError(cycleID string, err error) *CycleError {
	return &CycleError{
		Code:    ErrCodeTransactionFailed,
		CycleID: cycleID,
		Err:     err,
	}
}
