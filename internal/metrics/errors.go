package metrics

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

// StoreErrorKind classifies a failed store operation.
type StoreErrorKind string

const (
	ErrNotFound         StoreErrorKind = "not_found"
	ErrPermissionDenied StoreErrorKind = "permission_denied"
	ErrFull             StoreErrorKind = "disk_full"
	ErrOther            StoreErrorKind = "io_error"
)

// StoreError wraps an OS-level failure with a coarse kind. Callers log it;
// they never block the user's primary action on it.
type StoreError struct {
	Kind  StoreErrorKind
	Cause error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("metrics store (%s): %v", e.Kind, e.Cause)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}

// storeErr maps an OS error onto the store taxonomy.
func storeErr(err error) *StoreError {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &StoreError{Kind: ErrNotFound, Cause: err}
	case errors.Is(err, fs.ErrPermission):
		return &StoreError{Kind: ErrPermissionDenied, Cause: err}
	case errors.Is(err, syscall.ENOSPC):
		return &StoreError{Kind: ErrFull, Cause: err}
	}
	return &StoreError{Kind: ErrOther, Cause: err}
}
