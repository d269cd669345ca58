// models/user.go
package models

import "time"

// Role is the closed set of account roles the portal knows about.
type Role string

const (
	RoleCitizen     Role = "citizen"
	RoleInstitution Role = "institution"
	RoleAdmin       Role = "admin"
)

// dashboardPaths maps each role to its dashboard root. Every piece of
// role-based navigation goes through this table rather than switching on
// role strings at the call site.
var dashboardPaths = map[Role]string{
	RoleCitizen:     "/citizen/dashboard",
	RoleInstitution: "/institution/dashboard",
	RoleAdmin:       "/admin/dashboard",
}

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	_, ok := dashboardPaths[r]
	return ok
}

// DashboardPath returns the dashboard root for the role. Unknown roles land
// on the citizen dashboard, the least privileged surface.
func (r Role) DashboardPath() string {
	if p, ok := dashboardPaths[r]; ok {
		return p
	}
	return dashboardPaths[RoleCitizen]
}

// ApprovalStatus gates institution accounts until an admin acts on them.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// User represents a portal account as the backend returns it.
type User struct {
	ID              string         `json:"_id"`
	Name            string         `json:"name"`
	Email           string         `json:"email"`
	Role            Role           `json:"role"`
	Phone           string         `json:"phone,omitempty"`
	NationalID      string         `json:"nationalId,omitempty"`
	Address         string         `json:"address,omitempty"`
	Location        *UserLocation  `json:"location,omitempty"`
	IsApproved      bool           `json:"isApproved"`
	ApprovalStatus  ApprovalStatus `json:"approvalStatus,omitempty"`
	RejectionReason string         `json:"rejectionReason,omitempty"`

	// Institution-only fields.
	Department      string `json:"department,omitempty"`
	InstitutionType string `json:"institutionType,omitempty"`

	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// UserLocation is the administrative division recorded at registration.
type UserLocation struct {
	Province string `json:"province"`
	District string `json:"district"`
	Sector   string `json:"sector"`
	Cell     string `json:"cell,omitempty"`
	Village  string `json:"village,omitempty"`
}
