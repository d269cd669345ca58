package navigation

import "civicportal/models"

// Well-known unprotected destinations the gate redirects to.
const (
	LoginPath           = "/login"
	PendingApprovalPath = "/pending-approval"
)

// Routes is the registry of protected pages and their allowed-role sets.
var Routes = []Route{
	{Path: "/citizen/dashboard", AllowedRoles: []models.Role{models.RoleCitizen}},
	{Path: "/citizen/submit-complaint", AllowedRoles: []models.Role{models.RoleCitizen}},
	{Path: "/citizen/my-complaints", AllowedRoles: []models.Role{models.RoleCitizen}},
	{Path: "/citizen/complaint/:id", AllowedRoles: []models.Role{models.RoleCitizen}},

	{Path: "/institution/dashboard", AllowedRoles: []models.Role{models.RoleInstitution}, RequireApproved: true},
	{Path: "/institution/complaints", AllowedRoles: []models.Role{models.RoleInstitution}, RequireApproved: true},
	{Path: "/institution/profile", AllowedRoles: []models.Role{models.RoleInstitution}},

	{Path: "/admin/dashboard", AllowedRoles: []models.Role{models.RoleAdmin}},
	{Path: "/admin/users", AllowedRoles: []models.Role{models.RoleAdmin}},
	{Path: "/admin/categories", AllowedRoles: []models.Role{models.RoleAdmin}},
	{Path: "/admin/complaints", AllowedRoles: []models.Role{models.RoleAdmin}},
	{Path: "/admin/analytics", AllowedRoles: []models.Role{models.RoleAdmin}},
}

// Lookup finds a registered route by path.
func Lookup(path string) (Route, bool) {
	for _, r := range Routes {
		if r.Path == path {
			return r, true
		}
	}
	return Route{}, false
}

// Navigator abstracts "move the user to this path"; the app shell supplies
// the real implementation.
type Navigator interface {
	To(path string)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(path string)

func (f NavigatorFunc) To(path string) { f(path) }
