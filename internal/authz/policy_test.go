package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thangamari27/zenmart/internal/authz"
	"github.com/thangamari27/zenmart/internal/models"
)

var (
	customer = &models.Session{UID: "u1", Email: "demo@example.com", IsAdmin: false}
	admin    = &models.Session{UID: "u2", Email: "admin@example.com", IsAdmin: true}
)

func TestAuthorize_AnonymousRedirectsToLogin(t *testing.T) {
	decision := authz.Authorize(nil, "/dashboard", false)

	assert.False(t, decision.Allowed)
	assert.Equal(t, "/login", decision.RedirectTo)
	// The origin is carried so login can return the user afterward.
	assert.Equal(t, "/dashboard", decision.From)
}

func TestAuthorize_AdminRouteBlocksCustomer(t *testing.T) {
	decision := authz.Authorize(customer, "/admin/products", true)

	assert.False(t, decision.Allowed)
	assert.Equal(t, "/dashboard", decision.RedirectTo)
}

func TestAuthorize_AdminNeverSeesCustomerDashboard(t *testing.T) {
	decision := authz.Authorize(admin, "/dashboard", false)

	assert.False(t, decision.Allowed)
	assert.Equal(t, "/admin/dashboard", decision.RedirectTo)
}

func TestAuthorize_CustomerBlockedUnderAdminPrefix(t *testing.T) {
	// Rule 4 catches admin-prefixed paths even when the route itself did
	// not declare the admin requirement.
	decision := authz.Authorize(customer, "/admin/orders", false)

	assert.False(t, decision.Allowed)
	assert.Equal(t, "/dashboard", decision.RedirectTo)
}

func TestAuthorize_Allowed(t *testing.T) {
	assert.True(t, authz.Authorize(admin, "/admin/orders", true).Allowed)
	assert.True(t, authz.Authorize(customer, "/dashboard", false).Allowed)
	assert.True(t, authz.Authorize(customer, "/products", false).Allowed)
	assert.True(t, authz.Authorize(admin, "/products", false).Allowed)
}

func TestPostLoginRedirect_RoleDashboardFromNeutralOrigins(t *testing.T) {
	for _, from := range []string{"", "/", "/login"} {
		assert.Equal(t, "/dashboard", authz.PostLoginRedirect(customer, from))
		assert.Equal(t, "/admin/dashboard", authz.PostLoginRedirect(admin, from))
	}
}

func TestPostLoginRedirect_RoleInappropriateOrigin(t *testing.T) {
	// An admin who originally aimed at a customer-only path lands on the
	// admin dashboard instead, and vice versa.
	assert.Equal(t, "/admin/dashboard", authz.PostLoginRedirect(admin, "/dashboard/orders"))
	assert.Equal(t, "/dashboard", authz.PostLoginRedirect(customer, "/admin/products"))
}

func TestPostLoginRedirect_ReplaysValidOrigin(t *testing.T) {
	assert.Equal(t, "/products/p1", authz.PostLoginRedirect(customer, "/products/p1"))
	assert.Equal(t, "/admin/orders", authz.PostLoginRedirect(admin, "/admin/orders"))
}
