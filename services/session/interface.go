package session

import (
	"context"
	"sync"

	"civicportal/client"
	"civicportal/models"
	"civicportal/storage"
)

// State is the coarse session phase the authorization gate keys on.
type State int

const (
	// StateChecking means RestoreSession has not finished; the gate must
	// render a neutral loading view and make no redirect decision.
	StateChecking State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateChecking:
		return "checking"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// RegisterInput is the registration payload. Location and the institution
// fields are role dependent.
type RegisterInput struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`

	Phone      string              `json:"phone,omitempty"`
	NationalID string              `json:"nationalId,omitempty"`
	Address    string              `json:"address,omitempty"`
	Location   models.UserLocation `json:"location"`

	// Institution-only.
	Department      string `json:"department,omitempty"`
	InstitutionType string `json:"institutionType,omitempty"`
}

// RegisterResult reports the outcome of a registration attempt.
type RegisterResult struct {
	User *models.User
	// PendingApproval is set for institution accounts: a session exists but
	// the caller must branch to a pending-approval view, not the dashboard.
	PendingApproval bool
}

// ProfileUpdate carries the fields a user may edit on their own account.
type ProfileUpdate struct {
	Name    string `json:"name,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`

	Department      string `json:"department,omitempty"`
	InstitutionType string `json:"institutionType,omitempty"`
}

// Service is the single source of truth for "who is logged in". It owns the
// only process-wide mutable authentication state; every other component
// reads it and none mutates it.
type Service interface {
	// RestoreSession loads persisted auth on startup. A stored token+user
	// pair is trusted without a network call; a token alone is verified
	// against /api/auth/me and cleared on any failure.
	RestoreSession(ctx context.Context) error

	// Login authenticates with a claimed role. It returns (false, nil) for
	// invalid credentials, a RoleMismatchError when the backend's role
	// disagrees with the claim (nothing is persisted), and transport errors
	// as-is.
	Login(ctx context.Context, email, password string, claimedRole models.Role) (bool, error)

	// Register creates an account. Citizens get a usable session at once;
	// institutions come back PendingApproval.
	Register(ctx context.Context, input RegisterInput) (*RegisterResult, error)

	// Logout clears all persisted and in-memory auth state. Purely local,
	// no network effect.
	Logout() error

	// UpdateProfile replaces the user record, leaving the token untouched.
	UpdateProfile(ctx context.Context, patch ProfileUpdate) (*models.User, error)

	// ChangePassword submits an authenticated password change.
	ChangePassword(ctx context.Context, current, updated string) error

	State() State
	Current() *models.User
	IsAuthenticated() bool
}

// DefaultService is the production implementation.
type DefaultService struct {
	Store storage.Store
	API   *client.Client

	mu      sync.RWMutex
	state   State
	token   string
	current *models.User
}
