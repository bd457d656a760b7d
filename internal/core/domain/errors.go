package domain

import (
	"errors"
	"fmt"
)

var (
	ErrFetchUsers      = errors.New("failed to fetch users")
	ErrUserNotFound    = errors.New("user not found")
	ErrUpdateUser      = errors.New("failed to update user")
	ErrDeleteUser      = errors.New("failed to delete user")
	ErrLogin           = errors.New("failed to login")
	ErrLoginInFlight   = errors.New("login already in progress")
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("not authenticated")
	ErrInvalidUserID   = errors.New("invalid user id")
)

// FailureKind tells a transport failure (no response) apart from a response
// with a non-success status.
type FailureKind string

const (
	KindNetwork FailureKind = "network"
	KindHTTP    FailureKind = "http"
)

// RemoteError describes a failed call to the remote user service.
// errors.Is matches the operation sentinel held in Err.
type RemoteError struct {
	Op     string
	Kind   FailureKind
	Status int
	// Reason is the message reported by the server, if any.
	Reason string
	Err    error
	Cause  error
}

func (e *RemoteError) Error() string {
	switch {
	case e.Kind == KindNetwork && e.Cause != nil:
		return fmt.Sprintf("%s: %v: %v", e.Op, e.Err, e.Cause)
	case e.Reason != "":
		return fmt.Sprintf("%s: %v (status %d): %s", e.Op, e.Err, e.Status, e.Reason)
	default:
		return fmt.Sprintf("%s: %v (status %d)", e.Op, e.Err, e.Status)
	}
}

func (e *RemoteError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// ReasonOf returns the server-reported reason carried by err, or "".
func ReasonOf(err error) string {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Reason
	}
	return ""
}

// StatusOf returns the HTTP status of the remote response behind err, or 0
// when no response arrived.
func StatusOf(err error) int {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Status
	}
	return 0
}
