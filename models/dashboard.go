// models/dashboard.go
package models

// AdminDashboard is the aggregate behind /api/dashboard/admin.
type AdminDashboard struct {
	TotalUsers           int             `json:"totalUsers"`
	TotalCitizens        int             `json:"totalCitizens"`
	TotalInstitutions    int             `json:"totalInstitutions"`
	PendingApprovals     int             `json:"pendingApprovals"`
	Complaints           ComplaintStats  `json:"complaints"`
	ComplaintsByCategory []CategoryCount `json:"complaintsByCategory,omitempty"`
}

// CategoryCount is one slice of the per-category complaint breakdown.
type CategoryCount struct {
	Category Category `json:"category"`
	Count    int      `json:"count"`
}

// InstitutionDashboard is the aggregate behind /api/dashboard/institution.
type InstitutionDashboard struct {
	Complaints ComplaintStats `json:"complaints"`
	Recent     []Complaint    `json:"recent,omitempty"`
}
