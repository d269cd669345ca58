// Package navigation decides, per protected route, whether the requested
// page renders or the user is redirected somewhere usable. The decision is
// a pure function over session state, re-evaluated on every navigation and
// never memoized across route changes.
package navigation

import (
	"go.uber.org/zap"

	"civicportal/models"
	"civicportal/services/session"
	"civicportal/utils"
)

// Action is the outcome class of a gate decision.
type Action int

const (
	// ActionWait means session restore has not finished: render a neutral
	// loading view and do not redirect. Deciding early would flash a login
	// redirect at users whose session is about to be restored.
	ActionWait Action = iota
	ActionRender
	ActionRedirect
)

func (a Action) String() string {
	switch a {
	case ActionWait:
		return "wait"
	case ActionRender:
		return "render"
	case ActionRedirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Decision is the terminal outcome of one gate evaluation.
type Decision struct {
	Action Action
	// Target is the redirect destination when Action is ActionRedirect.
	Target string
	// From records the originally requested path on a login redirect so the
	// login page can return the user there afterwards.
	From string
}

// Route describes one protected page and the roles allowed to see it.
// An empty AllowedRoles set means any authenticated user.
type Route struct {
	Path         string
	AllowedRoles []models.Role
	// RequireApproved marks routes that an unapproved institution account
	// must not reach; they land on the pending-approval view instead.
	RequireApproved bool
}

func (r Route) allows(role models.Role) bool {
	if len(r.AllowedRoles) == 0 {
		return true
	}
	for _, allowed := range r.AllowedRoles {
		if allowed == role {
			return true
		}
	}
	return false
}

// Gate evaluates route authorization against the session store.
type Gate struct {
	Sessions session.Service
}

// Decide runs the per-navigation state machine for one route.
func (g *Gate) Decide(route Route) Decision {
	switch g.Sessions.State() {
	case session.StateChecking:
		return Decision{Action: ActionWait}
	case session.StateAnonymous:
		return Decision{Action: ActionRedirect, Target: LoginPath, From: route.Path}
	}

	user := g.Sessions.Current()
	if !g.Sessions.IsAuthenticated() || user == nil {
		return Decision{Action: ActionRedirect, Target: LoginPath, From: route.Path}
	}

	if !route.allows(user.Role) {
		// A misrouted authenticated user always lands on their own
		// dashboard, never on a generic error page.
		utils.GetLogger().Debug("Role not allowed for route",
			zap.String("path", route.Path), zap.String("role", string(user.Role)))
		return Decision{Action: ActionRedirect, Target: user.Role.DashboardPath()}
	}

	if route.RequireApproved && user.Role == models.RoleInstitution && !user.IsApproved {
		return Decision{Action: ActionRedirect, Target: PendingApprovalPath}
	}

	return Decision{Action: ActionRender}
}
