package services

import (
	"math"
	"testing"
	"time"

	"freshfold-web/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWizard(t *testing.T) (*WizardService, string) {
	t.Helper()
	svc := NewWizardService(time.Hour)
	return svc, svc.Begin()
}

func itemByID(t *testing.T, snapshot *WizardSnapshot, itemID string) domain.ServiceItem {
	t.Helper()
	for _, item := range snapshot.Draft.Items {
		if item.ID == itemID {
			return item
		}
	}
	t.Fatalf("item %s not in snapshot", itemID)
	return domain.ServiceItem{}
}

func TestBeginStartsAtItemSelection(t *testing.T) {
	svc, id := newTestWizard(t)

	snapshot, err := svc.Snapshot(id)
	require.NoError(t, err)
	assert.Equal(t, domain.StepSelectingItems, snapshot.Step)
	assert.Zero(t, snapshot.Total)
	assert.NotEmpty(t, snapshot.Draft.IdempotencyKey)
	for _, item := range snapshot.Draft.Items {
		assert.False(t, item.Selected)
		assert.Zero(t, item.Quantity)
	}
}

func TestUnknownSessionNotFound(t *testing.T) {
	svc := NewWizardService(time.Hour)

	_, err := svc.Snapshot("nope")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestToggleItemKeepsQuantityAndSelectionInStep(t *testing.T) {
	svc, id := newTestWizard(t)

	snapshot, err := svc.ToggleItem(id, "press-shirt")
	require.NoError(t, err)
	item := itemByID(t, snapshot, "press-shirt")
	assert.True(t, item.Selected)
	assert.Equal(t, 1, item.Quantity)

	snapshot, err = svc.ToggleItem(id, "press-shirt")
	require.NoError(t, err)
	item = itemByID(t, snapshot, "press-shirt")
	assert.False(t, item.Selected)
	assert.Zero(t, item.Quantity)
}

func TestToggleUnknownItem(t *testing.T) {
	svc, id := newTestWizard(t)

	_, err := svc.ToggleItem(id, "ironing-board")
	assert.ErrorIs(t, err, domain.ErrUnknownItem)
}

// quantity > 0 ⇔ selected must hold after any sequence of mutations.
func TestQuantitySelectionInvariant(t *testing.T) {
	svc, id := newTestWizard(t)

	ops := []func() (*WizardSnapshot, error){
		func() (*WizardSnapshot, error) { return svc.ToggleItem(id, "press-shirt") },
		func() (*WizardSnapshot, error) { return svc.SetQuantity(id, "press-shirt", 4) },
		func() (*WizardSnapshot, error) { return svc.SetQuantity(id, "press-shirt", -3) },
		func() (*WizardSnapshot, error) { return svc.SetQuantity(id, "press-shirt", 0) },
		func() (*WizardSnapshot, error) { return svc.SetQuantity(id, "wash-fold-bag", 2) },
		func() (*WizardSnapshot, error) { return svc.ToggleItem(id, "wash-fold-bag") },
		func() (*WizardSnapshot, error) { return svc.ToggleItem(id, "dry-clean-suit") },
	}

	for _, op := range ops {
		snapshot, err := op()
		require.NoError(t, err)
		for _, item := range snapshot.Draft.Items {
			assert.Equal(t, item.Quantity > 0, item.Selected,
				"item %s: quantity=%d selected=%v", item.ID, item.Quantity, item.Selected)
		}
	}
}

func TestSetQuantityNegativeIsNoOp(t *testing.T) {
	svc, id := newTestWizard(t)

	_, err := svc.SetQuantity(id, "press-shirt", 3)
	require.NoError(t, err)

	snapshot, err := svc.SetQuantity(id, "press-shirt", -1)
	require.NoError(t, err)
	item := itemByID(t, snapshot, "press-shirt")
	assert.Equal(t, 3, item.Quantity)
	assert.True(t, item.Selected)
}

func TestSetQuantityAboveCapIsNoOp(t *testing.T) {
	svc, id := newTestWizard(t)

	_, err := svc.SetQuantity(id, "dry-clean-coat", 3)
	require.NoError(t, err)

	// A quantity big enough to overflow the total is ignored outright.
	snapshot, err := svc.SetQuantity(id, "dry-clean-coat", math.MaxInt)
	require.NoError(t, err)
	item := itemByID(t, snapshot, "dry-clean-coat")
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, int64(6000), snapshot.Total)

	// The cap itself is still accepted
	snapshot, err = svc.SetQuantity(id, "dry-clean-coat", maxItemQuantity)
	require.NoError(t, err)
	assert.Equal(t, maxItemQuantity, itemByID(t, snapshot, "dry-clean-coat").Quantity)
	assert.Greater(t, snapshot.Total, int64(0))
}

func TestSetQuantityZeroDeselects(t *testing.T) {
	svc, id := newTestWizard(t)

	_, err := svc.SetQuantity(id, "press-shirt", 3)
	require.NoError(t, err)

	snapshot, err := svc.SetQuantity(id, "press-shirt", 0)
	require.NoError(t, err)
	item := itemByID(t, snapshot, "press-shirt")
	assert.False(t, item.Selected)
	assert.Zero(t, item.Quantity)
}

func TestTotalIsSumOverSelectedItems(t *testing.T) {
	svc, id := newTestWizard(t)

	// 2 × 1000 + 1 × 1500 = 3500
	_, err := svc.SetQuantity(id, "wash-fold-bag", 2)
	require.NoError(t, err)
	snapshot, err := svc.SetQuantity(id, "wash-fold-bedding", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3500), snapshot.Total)

	// Deselected items contribute nothing even after they had a quantity
	snapshot, err = svc.ToggleItem(id, "wash-fold-bag")
	require.NoError(t, err)
	assert.Equal(t, int64(1500), snapshot.Total)
}

func TestAdvanceRequiresPositiveTotal(t *testing.T) {
	svc, id := newTestWizard(t)

	_, err := svc.Advance(id)
	assert.ErrorIs(t, err, domain.ErrEmptyOrder)

	snapshot, err := svc.Snapshot(id)
	require.NoError(t, err)
	assert.Equal(t, domain.StepSelectingItems, snapshot.Step)

	_, err = svc.ToggleItem(id, "press-shirt")
	require.NoError(t, err)

	snapshot, err = svc.Advance(id)
	require.NoError(t, err)
	assert.Equal(t, domain.StepEnteringDelivery, snapshot.Step)
}

func TestAdvanceStopsAtLastStep(t *testing.T) {
	svc, id := newTestWizard(t)

	_, err := svc.ToggleItem(id, "press-shirt")
	require.NoError(t, err)
	_, err = svc.Advance(id)
	require.NoError(t, err)
	_, err = svc.Advance(id)
	require.NoError(t, err)

	snapshot, err := svc.Advance(id)
	require.NoError(t, err)
	assert.Equal(t, domain.StepSelectingPayment, snapshot.Step)
}

func TestBackPreservesCollectedData(t *testing.T) {
	svc, id := newTestWizard(t)

	_, err := svc.SetQuantity(id, "dry-clean-suit", 2)
	require.NoError(t, err)
	_, err = svc.Advance(id)
	require.NoError(t, err)

	_, err = svc.SetDelivery(id, SetDeliveryInput{
		Mode:       domain.DeliveryPickup,
		PickupAt:   "2026-09-01T09:00",
		DeliveryAt: "2026-09-03T17:00",
		Address:    "12 Baker Street",
	})
	require.NoError(t, err)
	_, err = svc.Advance(id)
	require.NoError(t, err)

	snapshot, err := svc.Back(id)
	require.NoError(t, err)
	assert.Equal(t, domain.StepEnteringDelivery, snapshot.Step)
	assert.Equal(t, "12 Baker Street", snapshot.Draft.Address)

	snapshot, err = svc.Back(id)
	require.NoError(t, err)
	assert.Equal(t, domain.StepSelectingItems, snapshot.Step)
	assert.Equal(t, 2, itemByID(t, snapshot, "dry-clean-suit").Quantity)

	// Backing out of the first step stays put
	snapshot, err = svc.Back(id)
	require.NoError(t, err)
	assert.Equal(t, domain.StepSelectingItems, snapshot.Step)
}

func TestDropOffClearsScheduleFields(t *testing.T) {
	svc, id := newTestWizard(t)

	_, err := svc.SetDelivery(id, SetDeliveryInput{
		Mode:     domain.DeliveryPickup,
		PickupAt: "2026-09-01T09:00",
		Address:  "12 Baker Street",
	})
	require.NoError(t, err)

	snapshot, err := svc.SetDelivery(id, SetDeliveryInput{Mode: domain.DeliveryDropOff})
	require.NoError(t, err)
	assert.Empty(t, snapshot.Draft.PickupAt)
	assert.Empty(t, snapshot.Draft.DeliveryAt)
	assert.Empty(t, snapshot.Draft.Address)
}

func TestSetDeliveryRejectsUnknownMode(t *testing.T) {
	svc, id := newTestWizard(t)

	_, err := svc.SetDelivery(id, SetDeliveryInput{Mode: "courier-pigeon"})
	assert.ErrorIs(t, err, domain.ErrInvalidDelivery)
}

func TestSetPaymentRejectsUnknownMethod(t *testing.T) {
	svc, id := newTestWizard(t)

	_, err := svc.SetPayment(id, "barter", "")
	assert.ErrorIs(t, err, domain.ErrInvalidPayment)

	snapshot, err := svc.SetPayment(id, domain.PaymentCard, "ring twice")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCard, snapshot.Draft.PaymentMethod)
	assert.Equal(t, "ring twice", snapshot.Draft.OrderNotes)
}

func TestResetRestoresDefaultsAndRemintsKey(t *testing.T) {
	svc, id := newTestWizard(t)

	before, err := svc.Snapshot(id)
	require.NoError(t, err)

	_, err = svc.SetQuantity(id, "wash-fold-bag", 3)
	require.NoError(t, err)
	_, err = svc.Advance(id)
	require.NoError(t, err)

	require.NoError(t, svc.Reset(id))

	after, err := svc.Snapshot(id)
	require.NoError(t, err)
	assert.Equal(t, domain.StepSelectingItems, after.Step)
	assert.Zero(t, after.Total)
	for _, item := range after.Draft.Items {
		assert.False(t, item.Selected)
		assert.Zero(t, item.Quantity)
	}
	assert.NotEqual(t, before.Draft.IdempotencyKey, after.Draft.IdempotencyKey)
}

func TestSnapshotCopyDoesNotAliasDraft(t *testing.T) {
	svc, id := newTestWizard(t)

	snapshot, err := svc.Snapshot(id)
	require.NoError(t, err)
	snapshot.Draft.Items[0].Quantity = 99

	fresh, err := svc.Snapshot(id)
	require.NoError(t, err)
	assert.Zero(t, fresh.Draft.Items[0].Quantity)
}

func TestSweepExpiredRemovesOnlyIdleSessions(t *testing.T) {
	svc := NewWizardService(50 * time.Millisecond)
	stale := svc.Begin()
	time.Sleep(80 * time.Millisecond)
	live := svc.Begin()

	removed := svc.SweepExpired()
	assert.Equal(t, 1, removed)

	_, err := svc.Snapshot(stale)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = svc.Snapshot(live)
	assert.NoError(t, err)
}
