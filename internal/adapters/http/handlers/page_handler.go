package handlers

import (
	"path/filepath"

	"github.com/gofiber/fiber/v2"
)

// PageHandler serves the static page shells that are not plain public
// files: the guarded dashboards, the order wizard page, and the guard's
// redirect targets. Page content itself is presentation-only.
type PageHandler struct {
	root string
}

// NewPageHandler creates a page handler serving shells from root.
func NewPageHandler(root string) *PageHandler {
	return &PageHandler{root: root}
}

func (h *PageHandler) serve(c *fiber.Ctx, name string) error {
	return c.SendFile(filepath.Join(h.root, name))
}

// Login is the authentication entry point the guard redirects to.
func (h *PageHandler) Login(c *fiber.Ctx) error {
	return h.serve(c, "login.html")
}

// NotAuthorized is shown when a session holds no allowed role.
func (h *PageHandler) NotAuthorized(c *fiber.Ctx) error {
	return h.serve(c, "not-authorized.html")
}

// Order serves the three-step order wizard page.
func (h *PageHandler) Order(c *fiber.Ctx) error {
	return h.serve(c, "order.html")
}

// Profile is the confirmation view shown after an order becomes final.
func (h *PageHandler) Profile(c *fiber.Ctx) error {
	return h.serve(c, "profile.html")
}

// SupplierDashboard serves the supplier dashboard shell.
func (h *PageHandler) SupplierDashboard(c *fiber.Ctx) error {
	return h.serve(c, filepath.Join("dashboard", "supplier.html"))
}

// EmployeeDashboard serves the employee dashboard shell.
func (h *PageHandler) EmployeeDashboard(c *fiber.Ctx) error {
	return h.serve(c, filepath.Join("dashboard", "employee.html"))
}
