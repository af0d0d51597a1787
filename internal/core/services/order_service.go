package services

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"freshfold-web/internal/core/domain"
	"freshfold-web/internal/pkg/token"
)

// ============================================================
// Order submission: POST the assembled draft to the external
// order-management API
// ============================================================

// statusNotStarted is the initial status every new order is created with.
const statusNotStarted = "not started"

// genericSubmitMessage is shown when the order API fails without a message
// of its own (network fault, malformed reply).
const genericSubmitMessage = "Failed to place your order. Please try again."

// SubmissionError carries the user-facing message for a failed submission.
// The wizard state is left untouched so the user can retry.
type SubmissionError struct {
	Message string
}

func (e *SubmissionError) Error() string {
	return e.Message
}

// OrderConfirmation is the outcome of a successful create call. For card
// payments the order is not final until the client secret is confirmed with
// the payment processor.
type OrderConfirmation struct {
	PaymentType     domain.PaymentMethod `json:"paymentType"`
	Paid            bool                 `json:"paid"`
	RequiresPayment bool                 `json:"requiresPayment"`
	ClientSecret    string               `json:"clientSecret,omitempty"`
}

// OrderService submits assembled orders to the external order API.
type OrderService struct {
	baseURL string
	client  *http.Client
}

// NewOrderService creates an order service for the given API base URL.
func NewOrderService(baseURL string) *OrderService {
	return &OrderService{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type orderLine struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

// createOrderRequest is the wire payload for the order-creation endpoint.
type createOrderRequest struct {
	BranchID        uint        `json:"branchId"`
	UserID          uint        `json:"userId"`
	Items           []orderLine `json:"items"`
	TotalPrice      int64       `json:"totalPrice"`
	PaymentType     string      `json:"paymentType"`
	Paid            bool        `json:"paid"`
	PickupAt        string      `json:"pickupAt,omitempty"`
	DeliveryAt      string      `json:"deliveryAt,omitempty"`
	Address         string      `json:"address,omitempty"`
	SpecialRequests string      `json:"specialRequests"`
	OrderNotes      string      `json:"orderNotes"`
	Status          string      `json:"status"`
	AssignedTo      *uint       `json:"assignedTo"`
}

// createOrderResponse mirrors the order API's reply shape.
type createOrderResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	ClientSecret string `json:"clientSecret"`
}

// Submit posts the draft order. The caller must not invoke it with a zero
// total; the wizard disables the affordance, and the check here backs that
// up. Failures come back as *SubmissionError with the server's message or
// the generic fallback; no automatic retry is attempted.
func (s *OrderService) Submit(draft domain.DraftOrder, user *token.Claims) (*OrderConfirmation, error) {
	total := draft.Total()
	if total <= 0 {
		return nil, domain.ErrEmptyOrder
	}

	payload := createOrderRequest{
		BranchID:        user.BranchID,
		UserID:          user.UserID,
		TotalPrice:      total,
		PaymentType:     string(draft.PaymentMethod),
		Paid:            draft.PaymentMethod != domain.PaymentCash,
		SpecialRequests: draft.SpecialRequests,
		OrderNotes:      draft.OrderNotes,
		Status:          statusNotStarted,
		AssignedTo:      nil,
	}
	for _, item := range draft.SelectedItems() {
		payload.Items = append(payload.Items, orderLine{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}
	// Delivery fields travel only for pickup-and-delivery orders.
	if draft.DeliveryMode == domain.DeliveryPickup {
		payload.PickupAt = draft.PickupAt
		payload.DeliveryAt = draft.DeliveryAt
		payload.Address = draft.Address
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &SubmissionError{Message: genericSubmitMessage}
	}

	req, err := http.NewRequest("POST", s.baseURL+"/laundry/api/order/create", bytes.NewBuffer(body))
	if err != nil {
		return nil, &SubmissionError{Message: genericSubmitMessage}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Idempotency-Key", draft.IdempotencyKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &SubmissionError{Message: genericSubmitMessage}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &SubmissionError{Message: genericSubmitMessage}
	}

	var result createOrderResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, &SubmissionError{Message: genericSubmitMessage}
	}
	if !result.Success {
		message := result.Message
		if message == "" {
			message = genericSubmitMessage
		}
		return nil, &SubmissionError{Message: message}
	}

	confirmation := &OrderConfirmation{
		PaymentType: draft.PaymentMethod,
		Paid:        payload.Paid,
	}
	if draft.PaymentMethod == domain.PaymentCard {
		// Card orders are only final after payment confirmation.
		if result.ClientSecret == "" {
			return nil, &SubmissionError{Message: genericSubmitMessage}
		}
		confirmation.RequiresPayment = true
		confirmation.ClientSecret = result.ClientSecret
	}
	return confirmation, nil
}

// InventoryLine is one requested stock item for an order.
type InventoryLine struct {
	InventoryItem string `json:"inventoryItem"`
	Quantity      int    `json:"quantity"`
}

// ItemRequestInput is the employee item-request payload.
type ItemRequestInput struct {
	OrderID string          `json:"orderId"`
	Items   []InventoryLine `json:"items"`
}

// RequestItems forwards an employee's inventory request for an order. Same
// fire-and-forget error shape as order creation.
func (s *OrderService) RequestItems(input ItemRequestInput) error {
	body, err := json.Marshal(input)
	if err != nil {
		return &SubmissionError{Message: genericSubmitMessage}
	}

	resp, err := s.client.Post(s.baseURL+"/api/employee-requests", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return &SubmissionError{Message: genericSubmitMessage}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &SubmissionError{Message: genericSubmitMessage}
	}

	var result createOrderResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return &SubmissionError{Message: genericSubmitMessage}
	}
	if !result.Success {
		message := result.Message
		if message == "" {
			message = genericSubmitMessage
		}
		return &SubmissionError{Message: message}
	}
	return nil
}
