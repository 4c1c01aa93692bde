package dataset

import (
	"slices"
	"time"

	"olist-dashboard/internal/models"
)

// Dataset is the loaded order table, sorted by purchase timestamp. It is
// never modified after construction.
type Dataset struct {
	orders   []models.Order
	source   string
	loadedAt time.Time
}

// New builds a Dataset from orders, stably sorted by purchase timestamp.
// The input slice is copied.
func New(source string, orders []models.Order) *Dataset {
	sorted := slices.Clone(orders)
	slices.SortStableFunc(sorted, func(a, b models.Order) int {
		return a.PurchasedAt.Compare(b.PurchasedAt)
	})
	return &Dataset{
		orders:   sorted,
		source:   source,
		loadedAt: time.Now(),
	}
}

func (d *Dataset) Len() int { return len(d.orders) }

func (d *Dataset) Source() string { return d.source }

func (d *Dataset) LoadedAt() time.Time { return d.loadedAt }

// Orders returns a copy of all rows in timestamp order.
func (d *Dataset) Orders() []models.Order {
	return slices.Clone(d.orders)
}

// Bounds returns the first and last observed purchase dates. ok is false
// for an empty dataset.
func (d *Dataset) Bounds() (r models.DateRange, ok bool) {
	if len(d.orders) == 0 {
		return models.DateRange{}, false
	}
	return models.DateRange{
		Start: models.Day(d.orders[0].PurchasedAt),
		End:   models.Day(d.orders[len(d.orders)-1].PurchasedAt),
	}, true
}

// MaxPurchase returns the latest purchase timestamp, or the zero time.
func (d *Dataset) MaxPurchase() time.Time {
	if len(d.orders) == 0 {
		return time.Time{}
	}
	return d.orders[len(d.orders)-1].PurchasedAt
}

// Filter returns the rows inside r, keeping timestamp order.
func (d *Dataset) Filter(r models.DateRange) []models.Order {
	return Filter(d.orders, r)
}

// Filter returns a new slice holding the orders whose purchase timestamp
// falls in the inclusive calendar range r.
func Filter(orders []models.Order, r models.DateRange) []models.Order {
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if r.Contains(o.PurchasedAt) {
			out = append(out, o)
		}
	}
	return out
}
