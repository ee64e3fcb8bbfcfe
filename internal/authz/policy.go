package authz

import (
	"strings"

	"github.com/thangamari27/zenmart/internal/models"
)

// Well-known route paths.
const (
	LoginPath          = "/login"
	DashboardPath      = "/dashboard"
	AdminDashboardPath = "/admin/dashboard"
	AdminPrefix        = "/admin"
)

// Decision is the outcome of a route authorization check: either allow, or
// redirect to another path. A redirect to the login page carries the
// originally requested path so login can return the user afterward.
type Decision struct {
	Allowed    bool
	RedirectTo string
	From       string
}

// Allow is the decision that lets the request through.
var Allow = Decision{Allowed: true}

// RedirectTo builds a redirect decision.
func RedirectTo(path string) Decision {
	return Decision{RedirectTo: path}
}

// Authorize decides whether session may visit path. Rules are evaluated in
// order; the first match wins:
//
//  1. no session: redirect to login, carrying the origin
//  2. route requires admin, session is not admin: customer dashboard
//  3. admin visiting the customer dashboard: admin dashboard
//  4. non-admin under the admin prefix: customer dashboard
//  5. otherwise allowed
func Authorize(session *models.Session, path string, requiresAdmin bool) Decision {
	if session == nil {
		return Decision{RedirectTo: LoginPath, From: path}
	}
	if requiresAdmin && !session.IsAdmin {
		return RedirectTo(DashboardPath)
	}
	if path == DashboardPath && session.IsAdmin {
		return RedirectTo(AdminDashboardPath)
	}
	if strings.HasPrefix(path, AdminPrefix) && !session.IsAdmin {
		return RedirectTo(DashboardPath)
	}
	return Allow
}

// PostLoginRedirect resolves where a freshly authenticated session should
// land, given the path it originally tried to visit. An origin of the login
// page or the root goes to the role-appropriate dashboard rather than
// replaying the literal origin, and a role-inappropriate origin is replaced
// by the matching dashboard.
func PostLoginRedirect(session *models.Session, from string) string {
	roleDashboard := DashboardPath
	if session.IsAdmin {
		roleDashboard = AdminDashboardPath
	}

	if from == "" || from == "/" || from == LoginPath {
		return roleDashboard
	}
	if session.IsAdmin && strings.HasPrefix(from, DashboardPath) {
		return AdminDashboardPath
	}
	if !session.IsAdmin && strings.HasPrefix(from, AdminPrefix) {
		return DashboardPath
	}
	return from
}
