package domain

// ServiceCategory groups catalog items by the kind of laundry work.
type ServiceCategory string

const (
	CategoryWashFold ServiceCategory = "wash-fold"
	CategoryDryClean ServiceCategory = "dry-clean"
	CategoryPressing ServiceCategory = "pressing"
)

// ServiceItem is one purchasable line in the service catalog.
// Price is a plain integer amount (no minor currency units).
// Invariant: Quantity > 0 ⇔ Selected.
type ServiceItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    int64           `json:"price"`
	Category ServiceCategory `json:"category"`
	Selected bool            `json:"selected"`
	Quantity int             `json:"quantity"`
}

// DefaultCatalog returns a fresh copy of the static service catalog with
// nothing selected. Every wizard session starts from this.
func DefaultCatalog() []ServiceItem {
	return []ServiceItem{
		{ID: "wash-fold-bag", Name: "Wash & Fold (per bag)", Price: 1000, Category: CategoryWashFold},
		{ID: "wash-fold-bedding", Name: "Bedding Wash & Fold", Price: 1500, Category: CategoryWashFold},
		{ID: "dry-clean-suit", Name: "Suit Dry Cleaning", Price: 1800, Category: CategoryDryClean},
		{ID: "dry-clean-dress", Name: "Dress Dry Cleaning", Price: 1200, Category: CategoryDryClean},
		{ID: "dry-clean-coat", Name: "Coat Dry Cleaning", Price: 2000, Category: CategoryDryClean},
		{ID: "press-shirt", Name: "Shirt Pressing", Price: 500, Category: CategoryPressing},
		{ID: "press-trousers", Name: "Trouser Pressing", Price: 600, Category: CategoryPressing},
	}
}
