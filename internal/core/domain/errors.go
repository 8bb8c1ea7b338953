// internal/core/domain/errors.go
package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrConcurrentUpdate is returned when a conditional write finds the row at a different version
var ErrConcurrentUpdate = errors.New("inventory item was modified by another request")

// InputError is a client error detected before any store access
type InputError struct {
	Message string
}

func NewInputError(msg string) *InputError {
	return &InputError{Message: msg}
}

func (e *InputError) Error() string {
	return e.Message
}

// NotFoundError means the requested id(s) resolve to no row
type NotFoundError struct {
	Message string
	IDs     []uuid.UUID
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// TransitionError is a business-rule rejection of a status transition
type TransitionError struct {
	Reason string
	From   StatusPair
	To     StatusPair
}

func (e *TransitionError) Error() string {
	return e.Reason
}

// BulkValidationError carries every per-item rejection of a bulk request
type BulkValidationError struct {
	Errors      []ValidationError
	ValidItems  int
	TotalItems  int
	NotFoundIDs []uuid.UUID
}

func (e *BulkValidationError) Error() string {
	return fmt.Sprintf("%s: %d of %d items rejected", MsgBulkValidationFailed, len(e.Errors), e.TotalItems)
}

// StoreError wraps a failure from the inventory data store
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Details returns the store's raw message for diagnostics
func (e *StoreError) Details() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}
