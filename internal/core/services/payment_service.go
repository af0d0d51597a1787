package services

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ============================================================
// Payment confirmation against the payment processor
// ============================================================

// genericPaymentMessage is the fallback when the processor fails without a
// recognizable error of its own.
const genericPaymentMessage = "Payment could not be completed. Please try again."

// defaultBillingName is used when the customer gave no billing name.
const defaultBillingName = "Customer"

// cardErrorMessages maps the processor's card error codes to the messages
// shown to the customer. Unmapped codes fall back to the processor's own
// message.
var cardErrorMessages = map[string]string{
	"incomplete_number": "Your card number is incomplete",
	"incomplete_cvc":    "Your card's security code is incomplete",
	"incomplete_expiry": "Your card's expiration date is incomplete",
	"invalid_number":    "Your card number is invalid",
	"invalid_expiry":    "Your card's expiration date is invalid",
	"invalid_cvc":       "The CVC code is invalid",
}

// PaymentError is a card-specific failure. Callers report it on its own and
// must not also raise the generic submission notification.
type PaymentError struct {
	Code    string
	Message string
}

func (e *PaymentError) Error() string {
	return e.Message
}

// PaymentConfirmation is a successfully confirmed payment.
type PaymentConfirmation struct {
	IntentID string `json:"intentId"`
	Status   string `json:"status"`
}

// PaymentService confirms payment intents with the payment processor. Card
// data itself never passes through here: the page's embedded widget
// tokenizes the card and this service only forwards the resulting payment
// method reference together with the server-issued client secret.
type PaymentService struct {
	baseURL   string
	secretKey string
	client    *http.Client
}

// NewPaymentService creates a payment service for the given processor.
func NewPaymentService(baseURL, secretKey string) *PaymentService {
	return &PaymentService{
		baseURL:   strings.TrimRight(baseURL, "/"),
		secretKey: secretKey,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// confirmResponse mirrors the processor's reply: either an intent with a
// status, or an error object.
type confirmResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Error  *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// intentIDFromSecret extracts the payment intent id from a client secret of
// the form "<intent>_secret_<nonce>".
func intentIDFromSecret(clientSecret string) string {
	idx := strings.Index(clientSecret, "_secret")
	if idx <= 0 {
		return ""
	}
	return clientSecret[:idx]
}

// ConfirmPayment confirms the intent behind clientSecret with the widget's
// payment method reference. On status "succeeded" the order is final; any
// failure comes back as *PaymentError with a user-facing message.
func (s *PaymentService) ConfirmPayment(clientSecret, paymentMethod, billingName string) (*PaymentConfirmation, error) {
	intentID := intentIDFromSecret(clientSecret)
	if intentID == "" {
		return nil, &PaymentError{Code: "invalid_client_secret", Message: genericPaymentMessage}
	}
	if billingName == "" {
		billingName = defaultBillingName
	}

	data := url.Values{}
	data.Set("client_secret", clientSecret)
	data.Set("payment_method", paymentMethod)
	data.Set("billing_details[name]", billingName)

	req, err := http.NewRequest("POST", s.baseURL+"/v1/payment_intents/"+intentID+"/confirm", strings.NewReader(data.Encode()))
	if err != nil {
		return nil, &PaymentError{Message: genericPaymentMessage}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+s.secretKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &PaymentError{Message: genericPaymentMessage}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &PaymentError{Message: genericPaymentMessage}
	}

	var result confirmResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &PaymentError{Message: genericPaymentMessage}
	}

	if result.Error != nil {
		message := cardErrorMessages[result.Error.Code]
		if message == "" {
			message = result.Error.Message
		}
		if message == "" {
			message = genericPaymentMessage
		}
		return nil, &PaymentError{Code: result.Error.Code, Message: message}
	}

	if result.Status != "succeeded" {
		return nil, &PaymentError{Code: result.Status, Message: genericPaymentMessage}
	}

	return &PaymentConfirmation{IntentID: result.ID, Status: result.Status}, nil
}
