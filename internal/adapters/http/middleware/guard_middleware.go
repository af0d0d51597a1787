package middleware

import (
	"strings"

	"freshfold-web/internal/core/domain"
	"freshfold-web/internal/pkg/response"
	"freshfold-web/internal/pkg/token"

	"github.com/gofiber/fiber/v2"
)

// Where browsers are sent when the guard denies access.
const (
	loginPath         = "/login"
	notAuthorizedPath = "/not-authorized"
)

// RequireRoles gates a route to viewers holding a session token for one of
// the allowed roles. Token cookies are re-read and re-decoded on every
// request; no session state is cached server-side.
//
// Browsers are redirected (no session → login, wrong role → not-authorized);
// JSON clients get the 401/403 envelope instead.
func RequireRoles(allowed ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokens := token.FromCookies(c)

		// No session at all
		if tokens == nil {
			if wantsJSON(c) {
				return response.Unauthorized(c, "Sign in required")
			}
			return c.Redirect(loginPath, fiber.StatusFound)
		}

		// Session exists but no allowed role
		if !token.Permitted(tokens, allowed...) {
			if wantsJSON(c) {
				return response.Forbidden(c, "You don't have permission to access this resource")
			}
			return c.Redirect(notAuthorizedPath, fiber.StatusFound)
		}

		// Set viewer info in context for handlers downstream
		claims := token.First(tokens, allowed...)
		c.Locals("claims", claims)
		c.Locals("userID", claims.UserID)
		c.Locals("branchID", claims.BranchID)
		c.Locals("role", claims.Role)

		return c.Next()
	}
}

// CustomerOnly gates the order flow. Admins may walk through it too.
func CustomerOnly() fiber.Handler {
	return RequireRoles(domain.RoleCustomer, domain.RoleAdmin)
}

// SupplierOnly gates the supplier dashboard shell.
func SupplierOnly() fiber.Handler {
	return RequireRoles(domain.RoleSupplier, domain.RoleAdmin)
}

// EmployeeOrManager gates the employee dashboard and item requests.
func EmployeeOrManager() fiber.Handler {
	return RequireRoles(domain.RoleEmployee, domain.RoleManager, domain.RoleAdmin)
}

// wantsJSON reports whether the denial should be an API envelope rather
// than a page redirect.
func wantsJSON(c *fiber.Ctx) bool {
	if strings.HasPrefix(c.Path(), "/api/") {
		return true
	}
	return strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMEApplicationJSON)
}
