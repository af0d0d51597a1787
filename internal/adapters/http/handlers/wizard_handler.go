package handlers

import (
	"errors"
	"time"

	"freshfold-web/internal/config"
	"freshfold-web/internal/core/domain"
	"freshfold-web/internal/core/services"
	"freshfold-web/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// WizardCookie names the cookie carrying the visitor's wizard session id.
const WizardCookie = "wizard_session"

// WizardHandler handles the three-step order wizard endpoints
type WizardHandler struct {
	wizard *services.WizardService
	cfg    *config.Config
}

// NewWizardHandler creates a new wizard handler
func NewWizardHandler(wizard *services.WizardService, cfg *config.Config) *WizardHandler {
	return &WizardHandler{
		wizard: wizard,
		cfg:    cfg,
	}
}

// ensureSession returns the visitor's live wizard session id, starting a
// fresh session (and setting the cookie) when there is none or the old one
// expired. Unknown ids behave exactly like no session at all.
func (h *WizardHandler) ensureSession(c *fiber.Ctx) string {
	id := c.Cookies(WizardCookie)
	if id != "" {
		if _, err := h.wizard.Snapshot(id); err == nil {
			return id
		}
	}

	id = h.wizard.Begin()
	c.Cookie(&fiber.Cookie{
		Name:     WizardCookie,
		Value:    id,
		Path:     "/",
		Domain:   h.cfg.Cookie.Domain,
		MaxAge:   int(h.cfg.Wizard.SessionTTL / time.Second),
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
	})
	return id
}

// GetWizard returns the current wizard state
// @Summary Current wizard state
// @Description Returns the current step, the draft order, and the running total
// @Tags Wizard
// @Produce json
// @Success 200 {object} response.Response
// @Router /order/wizard [get]
func (h *WizardHandler) GetWizard(c *fiber.Ctx) error {
	snapshot, err := h.wizard.Snapshot(h.ensureSession(c))
	if err != nil {
		return response.NotFound(c, "No order in progress")
	}
	return response.Success(c, "Wizard state retrieved", snapshot)
}

// ToggleItem flips an item's selection
// @Summary Toggle a catalog item
// @Description Selects (quantity 1) or deselects (quantity 0) a catalog item
// @Tags Wizard
// @Produce json
// @Param id path string true "Catalog item ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /order/items/{id}/toggle [post]
func (h *WizardHandler) ToggleItem(c *fiber.Ctx) error {
	snapshot, err := h.wizard.ToggleItem(h.ensureSession(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrUnknownItem) {
			return response.NotFound(c, "Unknown catalog item")
		}
		return response.NotFound(c, "No order in progress")
	}
	return response.Success(c, "Item toggled", snapshot)
}

// quantityRequest is the body for quantity updates
type quantityRequest struct {
	Quantity int `json:"quantity"`
}

// SetQuantity updates an item's quantity
// @Summary Set item quantity
// @Description Sets the quantity of a catalog item; 0 deselects, out-of-range values are ignored
// @Tags Wizard
// @Accept json
// @Produce json
// @Param id path string true "Catalog item ID"
// @Param body body quantityRequest true "Quantity"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /order/items/{id}/quantity [put]
func (h *WizardHandler) SetQuantity(c *fiber.Ctx) error {
	var req quantityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	snapshot, err := h.wizard.SetQuantity(h.ensureSession(c), c.Params("id"), req.Quantity)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownItem) {
			return response.NotFound(c, "Unknown catalog item")
		}
		return response.NotFound(c, "No order in progress")
	}
	return response.Success(c, "Quantity updated", snapshot)
}

// SetDelivery records delivery details
// @Summary Set delivery details
// @Description Records delivery mode, schedule and address for the draft order
// @Tags Wizard
// @Accept json
// @Produce json
// @Param body body services.SetDeliveryInput true "Delivery details"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /order/delivery [put]
func (h *WizardHandler) SetDelivery(c *fiber.Ctx) error {
	var input services.SetDeliveryInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	snapshot, err := h.wizard.SetDelivery(h.ensureSession(c), input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDelivery) {
			return response.BadRequest(c, "Invalid delivery mode")
		}
		return response.NotFound(c, "No order in progress")
	}
	return response.Success(c, "Delivery details saved", snapshot)
}

// paymentRequest is the body for payment choice updates
type paymentRequest struct {
	PaymentType domain.PaymentMethod `json:"paymentType"`
	OrderNotes  string               `json:"orderNotes"`
}

// SetPayment records the payment choice
// @Summary Set payment choice
// @Description Records the payment method and order notes for the draft order
// @Tags Wizard
// @Accept json
// @Produce json
// @Param body body paymentRequest true "Payment choice"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /order/payment [put]
func (h *WizardHandler) SetPayment(c *fiber.Ctx) error {
	var req paymentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	snapshot, err := h.wizard.SetPayment(h.ensureSession(c), req.PaymentType, req.OrderNotes)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPayment) {
			return response.BadRequest(c, "Invalid payment type")
		}
		return response.NotFound(c, "No order in progress")
	}
	return response.Success(c, "Payment choice saved", snapshot)
}

// Advance moves the wizard to the next step
// @Summary Advance the wizard
// @Description Moves to the next step; leaving item selection requires a positive total
// @Tags Wizard
// @Produce json
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /order/next [post]
func (h *WizardHandler) Advance(c *fiber.Ctx) error {
	snapshot, err := h.wizard.Advance(h.ensureSession(c))
	if err != nil {
		if errors.Is(err, domain.ErrEmptyOrder) {
			return response.BadRequest(c, "Select at least one service first")
		}
		return response.NotFound(c, "No order in progress")
	}
	return response.Success(c, "Step advanced", snapshot)
}

// Back moves the wizard to the previous step
// @Summary Go back one step
// @Description Moves to the previous step, preserving all collected data
// @Tags Wizard
// @Produce json
// @Success 200 {object} response.Response
// @Router /order/back [post]
func (h *WizardHandler) Back(c *fiber.Ctx) error {
	snapshot, err := h.wizard.Back(h.ensureSession(c))
	if err != nil {
		return response.NotFound(c, "No order in progress")
	}
	return response.Success(c, "Step reverted", snapshot)
}
