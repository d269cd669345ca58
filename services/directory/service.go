// Package directory wraps the admin and moderation endpoints: user
// management, category maintenance, and the dashboard aggregates.
package directory

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	"civicportal/client"
	"civicportal/models"
)

// ErrNotFound signals an absent user or category.
var ErrNotFound = errors.New("directory: not found")

// UserFilter narrows and pages the user listing.
type UserFilter struct {
	Page           int
	Limit          int
	Role           models.Role
	ApprovalStatus models.ApprovalStatus
	Search         string
}

func (f UserFilter) query() url.Values {
	q := url.Values{}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Role != "" {
		q.Set("role", string(f.Role))
	}
	if f.ApprovalStatus != "" {
		q.Set("approvalStatus", string(f.ApprovalStatus))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	return q
}

// UserPage is one page of users plus its pagination envelope.
type UserPage struct {
	Users      []models.User     `json:"users"`
	Pagination models.Pagination `json:"pagination"`
}

// CategoryInput carries the writable category fields, translations
// included.
type CategoryInput struct {
	Name            string `json:"name"`
	NameKinyarwanda string `json:"nameKinyarwanda,omitempty"`
	NameFrench      string `json:"nameFrench,omitempty"`
	Description     string `json:"description,omitempty"`
	Institution     string `json:"institution,omitempty"`
}

// InstitutionProfileInput carries the fields the institution profile page
// saves through PUT /api/users/profile. The session store's own
// UpdateProfile talks to /api/users/update-profile; the backend keeps both.
type InstitutionProfileInput struct {
	Name            string `json:"name,omitempty"`
	Phone           string `json:"phone,omitempty"`
	Address         string `json:"address,omitempty"`
	Department      string `json:"department,omitempty"`
	InstitutionType string `json:"institutionType,omitempty"`
}

// Service exposes the moderation surface of the portal.
type Service interface {
	ListUsers(ctx context.Context, filter UserFilter) (*UserPage, error)
	PendingApprovals(ctx context.Context) ([]models.User, error)
	SetApproval(ctx context.Context, userID string, status models.ApprovalStatus, reason string) error
	DeleteUser(ctx context.Context, userID string) error

	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, input CategoryInput) (*models.Category, error)
	UpdateCategory(ctx context.Context, id string, input CategoryInput) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	SaveInstitutionProfile(ctx context.Context, input InstitutionProfileInput) error

	AdminDashboard(ctx context.Context) (*models.AdminDashboard, error)
	InstitutionDashboard(ctx context.Context) (*models.InstitutionDashboard, error)
}

// DefaultService is the production implementation.
type DefaultService struct {
	API *client.Client
}

func (s *DefaultService) ListUsers(ctx context.Context, filter UserFilter) (*UserPage, error) {
	var page UserPage
	if err := s.API.Get(ctx, "/api/users", filter.query(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *DefaultService) PendingApprovals(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.API.Get(ctx, "/api/users/pending-approvals", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SetApproval approves or rejects an institution account. reason is only
// meaningful for rejections and travels with the notification the backend
// sends the institution.
func (s *DefaultService) SetApproval(ctx context.Context, userID string, status models.ApprovalStatus, reason string) error {
	payload := map[string]string{
		"approvalStatus": string(status),
	}
	if reason != "" {
		payload["rejectionReason"] = reason
	}
	return s.API.Put(ctx, "/api/users/"+userID+"/approval", payload, nil)
}

func (s *DefaultService) DeleteUser(ctx context.Context, userID string) error {
	err := s.API.Delete(ctx, "/api/users/"+userID, nil)
	if client.IsNotFound(err) {
		return ErrNotFound
	}
	return err
}

func (s *DefaultService) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.API.Get(ctx, "/api/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *DefaultService) CreateCategory(ctx context.Context, input CategoryInput) (*models.Category, error) {
	var created models.Category
	if err := s.API.Post(ctx, "/api/categories", input, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *DefaultService) UpdateCategory(ctx context.Context, id string, input CategoryInput) (*models.Category, error) {
	var updated models.Category
	if err := s.API.Put(ctx, "/api/categories/"+id, input, &updated); err != nil {
		if client.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (s *DefaultService) DeleteCategory(ctx context.Context, id string) error {
	err := s.API.Delete(ctx, "/api/categories/"+id, nil)
	if client.IsNotFound(err) {
		return ErrNotFound
	}
	return err
}

func (s *DefaultService) SaveInstitutionProfile(ctx context.Context, input InstitutionProfileInput) error {
	return s.API.Put(ctx, "/api/users/profile", input, nil)
}

func (s *DefaultService) AdminDashboard(ctx context.Context) (*models.AdminDashboard, error) {
	var dash models.AdminDashboard
	if err := s.API.Get(ctx, "/api/dashboard/admin", nil, &dash); err != nil {
		return nil, err
	}
	return &dash, nil
}

func (s *DefaultService) InstitutionDashboard(ctx context.Context) (*models.InstitutionDashboard, error) {
	var dash models.InstitutionDashboard
	if err := s.API.Get(ctx, "/api/dashboard/institution", nil, &dash); err != nil {
		return nil, err
	}
	return &dash, nil
}
