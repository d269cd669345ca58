package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt"
	"go.uber.org/zap"

	"civicportal/client"
	"civicportal/models"
	"civicportal/storage"
	"civicportal/utils"
)

var (
	// Rwanda phone format: +250xxxxxxxxx or 07xxxxxxxx.
	phonePattern = regexp.MustCompile(`^(\+?250|0)?7[2389]\d{7}$`)
	// Rwandan national ID: 16 digits.
	nationalIDPattern = regexp.MustCompile(`^\d{16}$`)
)

// authResponse is the backend's shape for login and register answers.
type authResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
}

// meResponse is the backend's shape for /api/auth/me.
type meResponse struct {
	User *models.User `json:"user"`
}

// TokenProvider returns a provider that reads the bearer token from durable
// storage on every call, so a token written by another operation is picked
// up immediately.
func (s *DefaultService) TokenProvider() client.TokenProvider {
	return func() string {
		rec, err := s.Store.LoadAuth()
		if err != nil {
			return ""
		}
		return rec.Token
	}
}

// RestoreSession implements the dual restore path: a complete stored record
// is trusted synchronously, a bare token is verified over the network, and
// anything stale is cleared so storage never keeps a half session.
func (s *DefaultService) RestoreSession(ctx context.Context) error {
	logger := utils.GetLogger()

	rec, err := s.Store.LoadAuth()
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("Failed to read stored session", zap.Error(err))
		}
		s.setAnonymous()
		return nil
	}

	if rec.Token != "" && tokenExpired(rec.Token) {
		logger.Debug("Stored token expired, clearing session")
		s.clearAll()
		return nil
	}

	if rec.Complete() {
		// Usual case: a normalized local copy from a previous run. Trust it
		// without a round trip.
		s.setAuthenticated(rec.Token, rec.User)
		return nil
	}

	if rec.Token == "" {
		s.clearAll()
		return nil
	}

	// Token without a user snapshot: ask the backend who this is.
	var me meResponse
	if err := s.API.Get(ctx, "/api/auth/me", nil, &me); err != nil || me.User == nil {
		logger.Warn("Failed to fetch user for stored token", zap.Error(err))
		s.clearAll()
		return nil
	}

	if err := s.persist(rec.Token, me.User); err != nil {
		s.clearAll()
		return fmt.Errorf("session: persist restored session: %w", err)
	}
	s.setAuthenticated(rec.Token, me.User)
	return nil
}

// Login authenticates against the backend with a claimed role. The backend
// is the source of truth for the real role: a mismatch fails the login with
// nothing persisted.
func (s *DefaultService) Login(ctx context.Context, email, password string, claimedRole models.Role) (bool, error) {
	if !claimedRole.Valid() {
		return false, ValidationError{Field: "role", Reason: "unknown role"}
	}

	payload := map[string]string{
		"email":    email,
		"password": password,
		"role":     string(claimedRole),
	}

	var resp authResponse
	if err := s.API.Post(ctx, "/api/auth/login", payload, &resp); err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			switch apiErr.Status {
			case http.StatusUnauthorized, http.StatusBadRequest, http.StatusNotFound:
				return false, nil
			case http.StatusForbidden:
				return false, ApprovalPendingError{Email: email}
			}
		}
		return false, err
	}

	if !resp.Success || resp.Token == "" || resp.User == nil {
		return false, nil
	}

	if resp.User.Role != claimedRole {
		return false, RoleMismatchError{Claimed: claimedRole, Actual: resp.User.Role}
	}

	if resp.User.Role == models.RoleInstitution && !resp.User.IsApproved {
		return false, ApprovalPendingError{Email: email}
	}

	if err := s.persist(resp.Token, resp.User); err != nil {
		return false, fmt.Errorf("session: persist login: %w", err)
	}
	s.setAuthenticated(resp.Token, resp.User)

	utils.GetLogger().Info("User logged in",
		zap.String("userId", resp.User.ID), zap.String("role", string(resp.User.Role)))
	return true, nil
}

// Register creates an account. Citizen sessions are usable immediately;
// institution sessions are established but flagged PendingApproval so the
// caller branches to a pending view instead of the dashboard.
func (s *DefaultService) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	if err := validateRegistration(input); err != nil {
		return nil, err
	}

	var resp authResponse
	if err := s.API.Post(ctx, "/api/auth/register", input, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Token == "" || resp.User == nil {
		if resp.Message != "" {
			return nil, fmt.Errorf("session: registration failed: %s", resp.Message)
		}
		return nil, errors.New("session: registration failed")
	}

	if err := s.persist(resp.Token, resp.User); err != nil {
		return nil, fmt.Errorf("session: persist registration: %w", err)
	}
	s.setAuthenticated(resp.Token, resp.User)

	pending := resp.User.Role == models.RoleInstitution && !resp.User.IsApproved
	utils.GetLogger().Info("User registered",
		zap.String("userId", resp.User.ID),
		zap.String("role", string(resp.User.Role)),
		zap.Bool("pendingApproval", pending))

	return &RegisterResult{User: resp.User, PendingApproval: pending}, nil
}

// Logout clears every persisted auth field and resets the in-memory
// session. It never touches the network.
func (s *DefaultService) Logout() error {
	s.clearAll()
	return nil
}

// ForceLogout is the 401 policy entry point: identical to Logout but named
// for the transport-layer hook that invokes it.
func (s *DefaultService) ForceLogout() {
	utils.GetLogger().Info("Session terminated by authentication rejection")
	s.clearAll()
}

// UpdateProfile replaces only the user record; the token survives in both
// memory and durable storage.
func (s *DefaultService) UpdateProfile(ctx context.Context, patch ProfileUpdate) (*models.User, error) {
	var resp authResponse
	if err := s.API.Put(ctx, "/api/users/update-profile", patch, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.User == nil {
		return nil, errors.New("session: profile update failed")
	}

	s.mu.Lock()
	token := s.token
	s.current = resp.User
	s.mu.Unlock()

	if err := s.persist(token, resp.User); err != nil {
		return nil, fmt.Errorf("session: persist profile update: %w", err)
	}
	return resp.User, nil
}

// ChangePassword submits an authenticated password change. The session and
// token are unchanged on success.
func (s *DefaultService) ChangePassword(ctx context.Context, current, updated string) error {
	if updated == "" {
		return ValidationError{Field: "newPassword", Reason: "required"}
	}
	payload := map[string]string{
		"currentPassword": current,
		"newPassword":     updated,
	}
	return s.API.Put(ctx, "/api/users/change-password", payload, nil)
}

func (s *DefaultService) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *DefaultService) Current() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// IsAuthenticated holds iff both a token and a user record exist.
func (s *DefaultService) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == StateAuthenticated && s.token != "" && s.current != nil
}

func (s *DefaultService) setAuthenticated(token string, user *models.User) {
	s.mu.Lock()
	s.state = StateAuthenticated
	s.token = token
	s.current = user
	s.mu.Unlock()
}

func (s *DefaultService) setAnonymous() {
	s.mu.Lock()
	s.state = StateAnonymous
	s.token = ""
	s.current = nil
	s.mu.Unlock()
}

func (s *DefaultService) clearAll() {
	if err := s.Store.ClearAuth(); err != nil {
		utils.GetLogger().Warn("Failed to clear stored session", zap.Error(err))
	}
	s.setAnonymous()
}

// persist writes token, user, role and approval flag as one matched set.
func (s *DefaultService) persist(token string, user *models.User) error {
	return s.Store.SaveAuth(storage.AuthRecord{
		Token:      token,
		User:       user,
		Role:       user.Role,
		IsApproved: user.IsApproved,
	})
}

// tokenExpired decodes the token's exp claim without verifying the
// signature; the client holds no signing key, it only wants to skip a
// doomed round trip for a token the backend will reject anyway.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return false
	}
	return time.Now().After(time.Unix(int64(exp), 0))
}

func validateRegistration(input RegisterInput) error {
	if input.Name == "" {
		return ValidationError{Field: "name", Reason: "required"}
	}
	if input.Email == "" {
		return ValidationError{Field: "email", Reason: "required"}
	}
	if input.Password == "" {
		return ValidationError{Field: "password", Reason: "required"}
	}
	if !input.Role.Valid() {
		return ValidationError{Field: "role", Reason: "unknown role"}
	}
	if input.Phone != "" && !phonePattern.MatchString(input.Phone) {
		return ValidationError{Field: "phone", Reason: "not a valid Rwandan phone number"}
	}
	if input.Role == models.RoleCitizen && input.NationalID != "" && !nationalIDPattern.MatchString(input.NationalID) {
		return ValidationError{Field: "nationalId", Reason: "must be 16 digits"}
	}
	if input.Role == models.RoleInstitution {
		if input.Department == "" {
			return ValidationError{Field: "department", Reason: "required for institutions"}
		}
		if input.InstitutionType == "" {
			return ValidationError{Field: "institutionType", Reason: "required for institutions"}
		}
	}
	return nil
}
