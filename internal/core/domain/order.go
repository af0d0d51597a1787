package domain

// DeliveryMode says how garments move between the customer and the branch.
type DeliveryMode string

const (
	DeliveryPickup  DeliveryMode = "pickup-and-delivery"
	DeliveryDropOff DeliveryMode = "drop-off"
)

// PaymentMethod is how the customer pays for the order.
type PaymentMethod string

const (
	PaymentCard   PaymentMethod = "card"
	PaymentWallet PaymentMethod = "wallet"
	PaymentCash   PaymentMethod = "cash"
)

// WizardStep is the current screen of the three-step order flow.
type WizardStep string

const (
	StepSelectingItems   WizardStep = "selecting-items"
	StepEnteringDelivery WizardStep = "entering-delivery"
	StepSelectingPayment WizardStep = "selecting-payment"
)

// DraftOrder is the in-progress order a visitor builds across the wizard
// steps. It is owned by the wizard session and handed to order submission
// by value; nothing downstream mutates it back.
type DraftOrder struct {
	Items           []ServiceItem `json:"items"`
	DeliveryMode    DeliveryMode  `json:"deliveryMode"`
	PickupAt        string        `json:"pickupAt"`
	DeliveryAt      string        `json:"deliveryAt"`
	Address         string        `json:"address"`
	SpecialRequests string        `json:"specialRequests"`
	PaymentMethod   PaymentMethod `json:"paymentType"`
	OrderNotes      string        `json:"orderNotes"`

	// IdempotencyKey is minted once per draft so a double submit can be
	// deduplicated server-side. Reminted whenever the draft resets.
	IdempotencyKey string `json:"-"`
}

// SelectedItems returns the items the visitor has chosen, in catalog order.
func (d *DraftOrder) SelectedItems() []ServiceItem {
	var picked []ServiceItem
	for _, item := range d.Items {
		if item.Selected {
			picked = append(picked, item)
		}
	}
	return picked
}

// Total is the sum of price × quantity over selected items. Recomputed on
// every call; never cached.
func (d *DraftOrder) Total() int64 {
	var total int64
	for _, item := range d.Items {
		if item.Selected {
			total += item.Price * int64(item.Quantity)
		}
	}
	return total
}
