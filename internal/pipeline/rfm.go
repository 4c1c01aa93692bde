package pipeline

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"olist-dashboard/internal/models"
)

// RFM builds one record per distinct customer unique id. Customers are
// numbered from 1 in ascending unique-id order. Recency is the number of
// whole days between the customer's latest purchase date and reference.
// Rows without a customer id are skipped and empty order ids are not
// counted towards frequency.
func RFM(orders []models.Order, reference time.Time) []models.RFMRecord {
	type agg struct {
		latest   time.Time
		orders   map[string]struct{}
		monetary decimal.Decimal
	}
	customers := map[string]*agg{}
	for _, o := range orders {
		if o.CustomerUniqueID == "" {
			continue
		}
		a, ok := customers[o.CustomerUniqueID]
		if !ok {
			a = &agg{latest: o.PurchasedAt, orders: map[string]struct{}{}}
			customers[o.CustomerUniqueID] = a
		}
		if o.PurchasedAt.After(a.latest) {
			a.latest = o.PurchasedAt
		}
		if o.OrderID != "" {
			a.orders[o.OrderID] = struct{}{}
		}
		a.monetary = a.monetary.Add(o.PaymentValue)
	}

	ids := make([]string, 0, len(customers))
	for id := range customers {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, strings.Compare)

	out := make([]models.RFMRecord, 0, len(ids))
	for i, id := range ids {
		a := customers[id]
		out = append(out, models.RFMRecord{
			CustomerID: i + 1,
			Recency:    daysBetween(a.latest, reference),
			Frequency:  len(a.orders),
			Monetary:   a.monetary,
		})
	}
	return out
}

// daysBetween counts calendar days from the date of from to the date of to.
func daysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
