package store

import (
	"errors"
	"fmt"
)

// Kind categorizes store failures.
type Kind string

const (
	// KindInitialization means the database file, connection or schema
	// could not be set up. The snapshot feature cannot run without it.
	KindInitialization Kind = "INITIALIZATION"

	// KindTransaction means a refresh failed and was rolled back.
	// The next cycle may simply retry.
	KindTransaction Kind = "TRANSACTION"
)

// Error is the tagged error returned by every store operation.
type Error struct {
	Kind Kind
	// Op names the failed operation, e.g. "insert entities".
	Op  string
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func initError(op string, err error) *Error {
	return &Error{Kind: KindInitialization, Op: op, Err: err}
}

func txError(op string, err error) *Error {
	return &Error{Kind: KindTransaction, Op: op, Err: err}
}

// IsInitialization reports whether err is (or wraps) an initialization failure.
func IsInitialization(err error) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind == KindInitialization
	}
	return false
}

// IsTransaction reports whether err is (or wraps) a failed refresh.
func IsTransaction(err error) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind == KindTransaction
	}
	return false
}
