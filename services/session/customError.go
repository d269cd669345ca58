package session

import (
	"errors"
	"fmt"

	"civicportal/models"
)

// ErrInvalidCredentials signals a wrong email or password.
var ErrInvalidCredentials = errors.New("session: invalid email or password")

// RoleMismatchError signals that the role the user claimed at login differs
// from the role the backend returned. No session is established.
type RoleMismatchError struct {
	Claimed models.Role
	Actual  models.Role
}

func (e RoleMismatchError) Error() string {
	return fmt.Sprintf("session: role mismatch: claimed %s but account is %s", e.Claimed, e.Actual)
}

// ApprovalPendingError signals an institution account that an admin has not
// approved yet. It is a distinct condition, not invalid credentials.
type ApprovalPendingError struct {
	Email string
}

func (e ApprovalPendingError) Error() string {
	return "session: institution account awaiting admin approval"
}

// ValidationError reports a missing or malformed registration field. It is
// handled at the form, never bubbled further.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("session: invalid %s: %s", e.Field, e.Reason)
}
