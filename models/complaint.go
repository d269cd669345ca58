// models/complaint.go
package models

import "time"

// ComplaintStatus tracks a complaint through its lifecycle on the backend.
type ComplaintStatus string

const (
	StatusPending    ComplaintStatus = "pending"
	StatusInProgress ComplaintStatus = "in-progress"
	StatusResolved   ComplaintStatus = "resolved"
	StatusRejected   ComplaintStatus = "rejected"
)

// Complaint is a citizen-submitted issue record.
type Complaint struct {
	ID          string          `json:"_id"`
	ComplaintID int             `json:"complaintId,omitempty"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    *Category       `json:"category,omitempty"`
	Priority    string          `json:"priority,omitempty"`
	Status      ComplaintStatus `json:"status"`
	Citizen     *User           `json:"citizen,omitempty"`
	Institution *User           `json:"institution,omitempty"`

	Province string `json:"province,omitempty"`
	District string `json:"district,omitempty"`
	Sector   string `json:"sector,omitempty"`
	Cell     string `json:"cell,omitempty"`
	Village  string `json:"village,omitempty"`

	NationalID string `json:"nationalId,omitempty"`
	Phone      string `json:"phone,omitempty"`
	ImageURL   string `json:"imageUrl,omitempty"`

	Responses []ComplaintResponse `json:"responses,omitempty"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt,omitempty"`
}

// ComplaintResponse is one institution reply on a complaint's history.
type ComplaintResponse struct {
	ID        string    `json:"_id,omitempty"`
	Message   string    `json:"message"`
	Responder *User     `json:"responder,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Pagination is the page envelope the backend attaches to list responses.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// TotalPages derives the page count from Total and Limit.
func (p Pagination) TotalPages() int {
	if p.Limit <= 0 {
		return 0
	}
	return (p.Total + p.Limit - 1) / p.Limit
}

// ComplaintPage is one page of complaints plus its pagination envelope.
type ComplaintPage struct {
	Complaints []Complaint `json:"complaints"`
	Pagination Pagination  `json:"pagination"`
}

// ComplaintStats is the aggregate returned by /api/complaints/stats.
type ComplaintStats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Resolved   int `json:"resolved"`
	Rejected   int `json:"rejected"`
}
