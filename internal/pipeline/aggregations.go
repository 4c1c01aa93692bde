package pipeline

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"olist-dashboard/internal/models"
)

// MonthlyOrders rolls orders up by calendar month. Each bucket is labelled
// with the month's last day and holds the distinct order count and summed
// payment value. Empty order ids add revenue but are not counted. Months between the first and last observed month that
// have no rows are included with zero values.
func MonthlyOrders(orders []models.Order) []models.MonthlyOrders {
	out := make([]models.MonthlyOrders, 0)
	if len(orders) == 0 {
		return out
	}

	type bucket struct {
		orders  map[string]struct{}
		revenue decimal.Decimal
	}
	buckets := map[monthKey]*bucket{}
	first := keyOf(orders[0].PurchasedAt)
	last := first
	for _, o := range orders {
		k := keyOf(o.PurchasedAt)
		b, ok := buckets[k]
		if !ok {
			b = &bucket{orders: map[string]struct{}{}}
			buckets[k] = b
		}
		if o.OrderID != "" {
			b.orders[o.OrderID] = struct{}{}
		}
		b.revenue = b.revenue.Add(o.PaymentValue)
		if k.before(first) {
			first = k
		}
		if last.before(k) {
			last = k
		}
	}

	loc := orders[0].PurchasedAt.Location()
	for k := first; !last.before(k); k = k.next() {
		row := models.MonthlyOrders{Month: k.end(loc), Revenue: decimal.Zero}
		if b, ok := buckets[k]; ok {
			row.OrderCount = len(b.orders)
			row.Revenue = b.revenue
		}
		out = append(out, row)
	}
	return out
}

// OrderTimestamps projects each order to its id and purchase timestamp,
// dropping repeated pairs.
func OrderTimestamps(orders []models.Order) []models.OrderTimestamp {
	type key struct {
		id string
		ns int64
	}
	seen := map[key]struct{}{}
	out := make([]models.OrderTimestamp, 0, len(orders))
	for _, o := range orders {
		k := key{o.OrderID, o.PurchasedAt.UnixNano()}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, models.OrderTimestamp{OrderID: o.OrderID, PurchasedAt: o.PurchasedAt})
	}
	return out
}

// OrderCategories projects each order to its product category, dropping
// repeated pairs.
func OrderCategories(orders []models.Order) []models.OrderCategory {
	seen := map[models.OrderCategory]struct{}{}
	out := make([]models.OrderCategory, 0, len(orders))
	for _, o := range orders {
		p := models.OrderCategory{OrderID: o.OrderID, Category: o.ProductCategory}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// OrderPayments projects each order to its payment type, dropping
// repeated pairs.
func OrderPayments(orders []models.Order) []models.OrderPayment {
	seen := map[models.OrderPayment]struct{}{}
	out := make([]models.OrderPayment, 0, len(orders))
	for _, o := range orders {
		p := models.OrderPayment{OrderID: o.OrderID, PaymentType: o.PaymentType}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// MonthlyProducts counts rows (product lines) per month-end label for the
// months that have rows, in month order.
func MonthlyProducts(orders []models.Order) []models.MonthlyProducts {
	counts := map[monthKey]int{}
	months := make([]monthKey, 0)
	for _, o := range orders {
		k := keyOf(o.PurchasedAt)
		if _, ok := counts[k]; !ok {
			months = append(months, k)
		}
		counts[k]++
	}
	slices.SortFunc(months, func(a, b monthKey) int {
		switch {
		case a.before(b):
			return -1
		case b.before(a):
			return 1
		}
		return 0
	})

	out := make([]models.MonthlyProducts, 0, len(months))
	for _, k := range months {
		out = append(out, models.MonthlyProducts{
			Month:        k.end(orders[0].PurchasedAt.Location()),
			ProductCount: counts[k],
		})
	}
	return out
}

// DayOfMonthPartitions counts rows per day-of-month partition.
func DayOfMonthPartitions(orders []models.Order) []models.PartitionCount {
	return countLabels(orders, func(o models.Order) string {
		return DayOfMonthPartition(o.PurchasedAt.Day())
	})
}

// CustomersByState counts distinct customers per state, ordered by state.
func CustomersByState(orders []models.Order) []models.LocationCustomers {
	return customersBy(orders, func(o models.Order) string { return o.CustomerState })
}

// CustomersByCity counts distinct customers per city, ordered by city.
func CustomersByCity(orders []models.Order) []models.LocationCustomers {
	return customersBy(orders, func(o models.Order) string { return o.CustomerCity })
}

func customersBy(orders []models.Order, key func(models.Order) string) []models.LocationCustomers {
	groups := map[string]map[string]struct{}{}
	for _, o := range orders {
		k := key(o)
		if k == "" {
			continue
		}
		g, ok := groups[k]
		if !ok {
			g = map[string]struct{}{}
			groups[k] = g
		}
		g[o.CustomerUniqueID] = struct{}{}
	}

	out := make([]models.LocationCustomers, 0, len(groups))
	for loc, customers := range groups {
		out = append(out, models.LocationCustomers{Location: loc, CustomerCount: len(customers)})
	}
	slices.SortFunc(out, func(a, b models.LocationCustomers) int {
		return strings.Compare(a.Location, b.Location)
	})
	return out
}
