// Package storage is the durable client-side store for authentication state
// and UI preferences, the portal's counterpart to browser local storage.
package storage

import (
	"errors"

	"civicportal/models"
)

// Storage keys, kept identical to the browser client so a backend session
// dump reads the same either way.
const (
	KeyToken      = "token"
	KeyUser       = "user"
	KeyRole       = "role"
	KeyIsApproved = "isApproved"
	KeyLanguage   = "language"
)

// ErrNotFound is returned when no auth record has been persisted.
var ErrNotFound = errors.New("storage: not found")

// AuthRecord is the persisted session snapshot. Token and User travel
// together: a record missing either is treated as absent.
type AuthRecord struct {
	Token      string       `json:"token"`
	User       *models.User `json:"user"`
	Role       models.Role  `json:"role"`
	IsApproved bool         `json:"isApproved"`
}

// Complete reports whether the record satisfies the token/user pairing
// invariant required to count as an authenticated session.
func (r *AuthRecord) Complete() bool {
	return r != nil && r.Token != "" && r.User != nil
}

// Store persists auth state and preferences across process restarts.
// SaveAuth and ClearAuth operate on the whole record as a matched set;
// implementations must never leave a token without its user or vice versa.
type Store interface {
	SaveAuth(rec AuthRecord) error
	LoadAuth() (*AuthRecord, error)
	ClearAuth() error

	SaveLanguage(lang string) error
	Language() (string, error)
}
