// Package complaint wraps the complaint endpoints the citizen and admin
// pages consume.
package complaint

import (
	"context"
	"io"
	"net/url"
	"strconv"
	"strings"

	"civicportal/client"
	"civicportal/models"
)

// ListFilter narrows and pages complaint listings.
type ListFilter struct {
	Page        int
	Limit       int
	Status      models.ComplaintStatus
	Category    string
	Institution string
	Search      string
}

func (f ListFilter) query() url.Values {
	q := url.Values{}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Institution != "" {
		q.Set("institution", f.Institution)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	return q
}

// SubmitInput is the multipart payload for a new complaint. Image is
// optional; everything else up to sector is required.
type SubmitInput struct {
	Title       string
	Description string
	Category    string
	Priority    string

	Province string
	District string
	Sector   string
	Cell     string
	Village  string

	NationalID string
	Phone      string

	ImageName string
	Image     io.Reader
}

func (in SubmitInput) validate() error {
	required := []struct {
		field string
		value string
	}{
		{"title", strings.TrimSpace(in.Title)},
		{"description", strings.TrimSpace(in.Description)},
		{"category", in.Category},
		{"province", in.Province},
		{"district", in.District},
		{"sector", in.Sector},
	}
	for _, r := range required {
		if r.value == "" {
			return ValidationError{Field: r.field}
		}
	}
	return nil
}

// Service exposes the complaint operations the pages need.
type Service interface {
	List(ctx context.Context, filter ListFilter) (*models.ComplaintPage, error)
	Get(ctx context.Context, id string) (*models.Complaint, error)
	Mine(ctx context.Context, filter ListFilter) (*models.ComplaintPage, error)
	Stats(ctx context.Context) (*models.ComplaintStats, error)
	Recent(ctx context.Context) ([]models.Complaint, error)
	Submit(ctx context.Context, input SubmitInput) (*models.Complaint, error)
}

// DefaultService is the production implementation.
type DefaultService struct {
	API *client.Client
}

func (s *DefaultService) List(ctx context.Context, filter ListFilter) (*models.ComplaintPage, error) {
	var page models.ComplaintPage
	if err := s.API.Get(ctx, "/api/complaints", filter.query(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *DefaultService) Get(ctx context.Context, id string) (*models.Complaint, error) {
	var c models.Complaint
	if err := s.API.Get(ctx, "/api/complaints/"+id, nil, &c); err != nil {
		if client.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (s *DefaultService) Mine(ctx context.Context, filter ListFilter) (*models.ComplaintPage, error) {
	var page models.ComplaintPage
	if err := s.API.Get(ctx, "/api/complaints/my-complaints", filter.query(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *DefaultService) Stats(ctx context.Context) (*models.ComplaintStats, error) {
	var stats models.ComplaintStats
	if err := s.API.Get(ctx, "/api/complaints/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *DefaultService) Recent(ctx context.Context) ([]models.Complaint, error) {
	var recent []models.Complaint
	if err := s.API.Get(ctx, "/api/complaints/recent", nil, &recent); err != nil {
		return nil, err
	}
	return recent, nil
}

// Submit validates required fields locally, then posts the multipart form.
// A failed submission always surfaces as an error; it is never dropped
// silently.
func (s *DefaultService) Submit(ctx context.Context, input SubmitInput) (*models.Complaint, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	priority := input.Priority
	if priority == "" {
		priority = "medium"
	}

	fields := map[string]string{
		"title":       strings.TrimSpace(input.Title),
		"description": strings.TrimSpace(input.Description),
		"category":    input.Category,
		"priority":    priority,
		"province":    input.Province,
		"district":    input.District,
		"sector":      input.Sector,
		"cell":        input.Cell,
		"village":     input.Village,
		"nationalId":  input.NationalID,
		"phone":       input.Phone,
	}

	var attachment *client.FileAttachment
	if input.Image != nil {
		attachment = &client.FileAttachment{
			Field:    "image",
			Filename: input.ImageName,
			Reader:   input.Image,
		}
	}

	var created models.Complaint
	if err := s.API.PostMultipart(ctx, "/api/complaints", fields, attachment, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
