package handlers

import (
	"errors"

	"freshfold-web/internal/core/domain"
	"freshfold-web/internal/core/services"
	"freshfold-web/internal/pkg/response"
	"freshfold-web/internal/pkg/token"

	"github.com/gofiber/fiber/v2"
)

// profilePath is where the page navigates after an order becomes final.
const profilePath = "/profile"

// OrderHandler handles order submission and payment confirmation
type OrderHandler struct {
	wizard   *services.WizardService
	orders   *services.OrderService
	payments *services.PaymentService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(wizard *services.WizardService, orders *services.OrderService, payments *services.PaymentService) *OrderHandler {
	return &OrderHandler{
		wizard:   wizard,
		orders:   orders,
		payments: payments,
	}
}

// Submit posts the assembled draft order to the order API
// @Summary Submit the draft order
// @Description Submits the draft; cash and wallet orders finalize immediately, card orders return a client secret for payment confirmation
// @Tags Orders
// @Produce json
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /order/submit [post]
func (h *OrderHandler) Submit(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*token.Claims)
	if !ok {
		return response.Unauthorized(c, "Sign in required")
	}

	sessionID := c.Cookies(WizardCookie)
	draft, err := h.wizard.Draft(sessionID)
	if err != nil {
		return response.BadRequest(c, "No order in progress")
	}
	if draft.Total() <= 0 {
		return response.BadRequest(c, "Select at least one service first")
	}

	confirmation, err := h.orders.Submit(draft, claims)
	if err != nil {
		// Wizard state stays intact; the user is the retry mechanism.
		var subErr *services.SubmissionError
		if errors.As(err, &subErr) {
			return response.BadGateway(c, subErr.Message)
		}
		return response.BadRequest(c, err.Error())
	}

	if confirmation.RequiresPayment {
		// Not final yet: the page hands the client secret to the payment
		// widget and calls confirm-payment. The draft survives until then.
		return response.Success(c, "Order created, awaiting payment", confirmation)
	}

	// Cash/wallet orders are final right away. The order already exists
	// upstream, so a session that expired in the meantime counts as
	// already reset.
	if err := h.wizard.Reset(sessionID); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return response.InternalServerError(c, "Failed to reset order")
	}
	return response.Success(c, "Order placed", fiber.Map{
		"paid":     confirmation.Paid,
		"redirect": profilePath,
	})
}

// confirmPaymentRequest is the body for payment confirmation
type confirmPaymentRequest struct {
	ClientSecret  string `json:"clientSecret"`
	PaymentMethod string `json:"paymentMethod"`
	BillingName   string `json:"billingName"`
}

// ConfirmPayment confirms a card payment with the payment processor
// @Summary Confirm a card payment
// @Description Confirms the payment intent issued for a card order; on success the order is final
// @Tags Orders
// @Accept json
// @Produce json
// @Param body body confirmPaymentRequest true "Confirmation data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 402 {object} response.Response
// @Router /order/confirm-payment [post]
func (h *OrderHandler) ConfirmPayment(c *fiber.Ctx) error {
	var req confirmPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.ClientSecret == "" {
		return response.BadRequest(c, "clientSecret is required")
	}
	if req.PaymentMethod == "" {
		return response.BadRequest(c, "paymentMethod is required")
	}

	confirmation, err := h.payments.ConfirmPayment(req.ClientSecret, req.PaymentMethod, req.BillingName)
	if err != nil {
		// Card errors carry their own message; the generic submission
		// notification is never raised on top of them.
		var payErr *services.PaymentError
		if errors.As(err, &payErr) {
			return response.Error(c, fiber.StatusPaymentRequired, payErr.Message)
		}
		return response.BadRequest(c, err.Error())
	}

	// The charge is final regardless of what happened to the wizard
	// session while the payment widget was open; a vanished session
	// counts as already reset.
	if err := h.wizard.Reset(c.Cookies(WizardCookie)); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return response.InternalServerError(c, "Failed to reset order")
	}
	return response.Success(c, "Payment confirmed", fiber.Map{
		"status":   confirmation.Status,
		"redirect": profilePath,
	})
}

// RequestItems forwards an employee inventory request
// @Summary Request inventory items for an order
// @Description Forwards an employee's item request to the order API
// @Tags Orders
// @Accept json
// @Produce json
// @Param body body services.ItemRequestInput true "Item request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 502 {object} response.Response
// @Router /employee-requests [post]
func (h *OrderHandler) RequestItems(c *fiber.Ctx) error {
	var input services.ItemRequestInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.OrderID == "" {
		return response.BadRequest(c, "orderId is required")
	}
	if len(input.Items) == 0 {
		return response.BadRequest(c, "items are required")
	}

	if err := h.orders.RequestItems(input); err != nil {
		var subErr *services.SubmissionError
		if errors.As(err, &subErr) {
			return response.BadGateway(c, subErr.Message)
		}
		return response.BadRequest(c, err.Error())
	}
	return response.Created(c, "Item request submitted", nil)
}
