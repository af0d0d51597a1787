package services

import (
	"sync"
	"time"

	"freshfold-web/internal/core/domain"

	"github.com/google/uuid"
)

// ============================================================
// Order wizard: three-step state machine per visitor
// SelectingItems → EnteringDelivery → SelectingPayment
// ============================================================

// maxItemQuantity caps a single line item. Keeps totals far away from
// int64 overflow and the snapshot free of nonsense numbers.
const maxItemQuantity = 999

// WizardSnapshot is what handlers return to the page: the current step, the
// draft, and the running total.
type WizardSnapshot struct {
	Step  domain.WizardStep `json:"step"`
	Draft domain.DraftOrder `json:"draft"`
	Total int64             `json:"total"`
}

type wizardSession struct {
	step      domain.WizardStep
	draft     domain.DraftOrder
	updatedAt time.Time
}

// WizardService owns every in-progress draft order. Drafts live only in
// memory: abandoning the wizard loses them, matching the lifecycle of the
// flow (there is deliberately no persistence behind this).
type WizardService struct {
	mu       sync.RWMutex
	sessions map[string]*wizardSession
	ttl      time.Duration
}

// NewWizardService creates a wizard service whose sessions expire after ttl
// of inactivity.
func NewWizardService(ttl time.Duration) *WizardService {
	return &WizardService{
		sessions: make(map[string]*wizardSession),
		ttl:      ttl,
	}
}

// newDraft builds a fresh draft with the static catalog and a new
// idempotency key.
func newDraft() domain.DraftOrder {
	return domain.DraftOrder{
		Items:          domain.DefaultCatalog(),
		DeliveryMode:   domain.DeliveryDropOff,
		PaymentMethod:  domain.PaymentCash,
		IdempotencyKey: uuid.NewString(),
	}
}

// Begin creates a new wizard session and returns its id.
func (s *WizardService) Begin() string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = &wizardSession{
		step:      domain.StepSelectingItems,
		draft:     newDraft(),
		updatedAt: time.Now(),
	}
	return id
}

// get returns the live session or ErrSessionNotFound. Callers must hold s.mu.
func (s *WizardService) get(id string) (*wizardSession, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if s.ttl > 0 && time.Since(sess.updatedAt) > s.ttl {
		delete(s.sessions, id)
		return nil, domain.ErrSessionNotFound
	}
	sess.updatedAt = time.Now()
	return sess, nil
}

// Snapshot returns the current step, draft copy, and total for a session.
func (s *WizardService) Snapshot(id string) (*WizardSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}
	return snapshotOf(sess), nil
}

func snapshotOf(sess *wizardSession) *WizardSnapshot {
	draft := sess.draft
	draft.Items = append([]domain.ServiceItem(nil), sess.draft.Items...)
	return &WizardSnapshot{
		Step:  sess.step,
		Draft: draft,
		Total: draft.Total(),
	}
}

// ToggleItem flips an item's selection. Becoming selected sets quantity to 1,
// becoming deselected sets it to 0, so quantity > 0 ⇔ selected holds.
func (s *WizardService) ToggleItem(id, itemID string) (*WizardSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}
	for i := range sess.draft.Items {
		item := &sess.draft.Items[i]
		if item.ID != itemID {
			continue
		}
		item.Selected = !item.Selected
		if item.Selected {
			item.Quantity = 1
		} else {
			item.Quantity = 0
		}
		return snapshotOf(sess), nil
	}
	return nil, domain.ErrUnknownItem
}

// SetQuantity sets an item's quantity. Values outside [0, maxItemQuantity]
// are a no-op. Quantity 0 deselects the item and any positive quantity
// selects it, so the selection flag can never disagree with the quantity.
func (s *WizardService) SetQuantity(id, itemID string, quantity int) (*WizardSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}
	for i := range sess.draft.Items {
		item := &sess.draft.Items[i]
		if item.ID != itemID {
			continue
		}
		if quantity >= 0 && quantity <= maxItemQuantity {
			item.Quantity = quantity
			item.Selected = quantity > 0
		}
		return snapshotOf(sess), nil
	}
	return nil, domain.ErrUnknownItem
}

// SetDeliveryInput carries step-2 fields.
type SetDeliveryInput struct {
	Mode            domain.DeliveryMode `json:"mode"`
	PickupAt        string              `json:"pickupAt"`
	DeliveryAt      string              `json:"deliveryAt"`
	Address         string              `json:"address"`
	SpecialRequests string              `json:"specialRequests"`
}

// SetDelivery records the delivery choice. Date and address fields only
// matter for pickup-and-delivery; for drop-off they are cleared.
func (s *WizardService) SetDelivery(id string, input SetDeliveryInput) (*WizardSnapshot, error) {
	if input.Mode != domain.DeliveryPickup && input.Mode != domain.DeliveryDropOff {
		return nil, domain.ErrInvalidDelivery
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}
	sess.draft.DeliveryMode = input.Mode
	sess.draft.SpecialRequests = input.SpecialRequests
	if input.Mode == domain.DeliveryPickup {
		sess.draft.PickupAt = input.PickupAt
		sess.draft.DeliveryAt = input.DeliveryAt
		sess.draft.Address = input.Address
	} else {
		sess.draft.PickupAt = ""
		sess.draft.DeliveryAt = ""
		sess.draft.Address = ""
	}
	return snapshotOf(sess), nil
}

// SetPayment records the payment choice and order notes.
func (s *WizardService) SetPayment(id string, method domain.PaymentMethod, orderNotes string) (*WizardSnapshot, error) {
	switch method {
	case domain.PaymentCard, domain.PaymentWallet, domain.PaymentCash:
	default:
		return nil, domain.ErrInvalidPayment
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}
	sess.draft.PaymentMethod = method
	sess.draft.OrderNotes = orderNotes
	return snapshotOf(sess), nil
}

// Advance moves to the next step. Leaving item selection requires a positive
// total; attempting it with an empty order is rejected and the step stays put.
// Advancing past the last step is a no-op.
func (s *WizardService) Advance(id string) (*WizardSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}
	switch sess.step {
	case domain.StepSelectingItems:
		if sess.draft.Total() <= 0 {
			return nil, domain.ErrEmptyOrder
		}
		sess.step = domain.StepEnteringDelivery
	case domain.StepEnteringDelivery:
		sess.step = domain.StepSelectingPayment
	}
	return snapshotOf(sess), nil
}

// Back moves to the previous step, preserving everything collected so far.
// Already at the first step is a no-op.
func (s *WizardService) Back(id string) (*WizardSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.get(id)
	if err != nil {
		return nil, err
	}
	switch sess.step {
	case domain.StepSelectingPayment:
		sess.step = domain.StepEnteringDelivery
	case domain.StepEnteringDelivery:
		sess.step = domain.StepSelectingItems
	}
	return snapshotOf(sess), nil
}

// Draft returns a copy of the session's draft order for submission. The
// wizard keeps ownership; submission never mutates the draft back.
func (s *WizardService) Draft(id string) (domain.DraftOrder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.get(id)
	if err != nil {
		return domain.DraftOrder{}, err
	}
	draft := sess.draft
	draft.Items = append([]domain.ServiceItem(nil), sess.draft.Items...)
	return draft, nil
}

// Reset returns a session to its initial state after a successful
// submission: step 1, nothing selected, defaults restored, and a fresh
// idempotency key for the next draft.
func (s *WizardService) Reset(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.get(id)
	if err != nil {
		return err
	}
	sess.step = domain.StepSelectingItems
	sess.draft = newDraft()
	return nil
}

// SweepExpired drops sessions idle longer than the TTL and returns how many
// were removed. Called from the cron service.
func (s *WizardService) SweepExpired() int {
	if s.ttl <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-s.ttl)
	removed := 0
	for id, sess := range s.sessions {
		if sess.updatedAt.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
