package booking

import (
	"errors"
	"fmt"
)

// ErrorStatus classifies why a booking failed.
type ErrorStatus string

const (
	ErrorStatusInvalidRequest       ErrorStatus = "invalid_request"
	ErrorStatusInsufficientCapacity ErrorStatus = "insufficient_capacity"
	ErrorStatusNoFeasibleAllocation ErrorStatus = "no_feasible_allocation"
	ErrorStatusStorageFailure       ErrorStatus = "storage_failure"
)

// Error is returned by Coordinator.Book. The wrapped error is the cause and
// stays reachable through errors.Is and errors.As.
type Error struct {
	Status ErrorStatus
	err    error
}

func NewError(status ErrorStatus, err error) *Error {
	return &Error{Status: status, err: err}
}

func (e *Error) Error() string {
	return fmt.Sprintf("booking error(status: %s): %v", e.Status, e.err)
}

func (e *Error) Unwrap() error {
	return e.err
}

// ErrorHasStatus reports whether err is a booking error with the given status.
func ErrorHasStatus(target error, status ErrorStatus) bool {
	var e *Error
	if errors.As(target, &e) {
		return e.Status == status
	}
	return false
}
