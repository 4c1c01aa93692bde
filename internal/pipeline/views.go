package pipeline

import (
	"math"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"olist-dashboard/internal/models"
)

const (
	topCategories = 5
	topLocations  = 10
	topCustomers  = 5
)

// Views are the figures the dashboard shows, derived from a Report.
type Views struct {
	Range         models.DateRange `json:"range"`
	ReferenceDate time.Time        `json:"reference_date"`

	TotalOrders  int             `json:"total_orders"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`

	AvgOrdersPerDay   float64 `json:"avg_orders_per_day"`
	AvgOrdersPerWeek  float64 `json:"avg_orders_per_week"`
	AvgOrdersPerMonth float64 `json:"avg_orders_per_month"`

	MonthlyOrders   []models.MonthlyOrders   `json:"monthly_orders"`
	DayOfMonth      []models.PartitionShare  `json:"day_of_month"`
	Weekdays        []models.PartitionCount  `json:"weekdays"`
	TimesOfDay      []models.PartitionCount  `json:"times_of_day"`
	MonthlyProducts []models.MonthlyProducts `json:"monthly_products"`

	TopStates []models.LocationCustomers `json:"top_states"`
	TopCities []models.LocationCustomers `json:"top_cities"`

	PaymentMix []models.PaymentShare `json:"payment_mix"`

	BestCategories  []models.PartitionCount `json:"best_categories"`
	WorstCategories []models.PartitionCount `json:"worst_categories"`

	AvgRecency     float64            `json:"avg_recency"`
	AvgFrequency   float64            `json:"avg_frequency"`
	AvgMonetary    decimal.Decimal    `json:"avg_monetary"`
	TopByRecency   []models.RFMRecord `json:"top_by_recency"`
	TopByFrequency []models.RFMRecord `json:"top_by_frequency"`
	TopByMonetary  []models.RFMRecord `json:"top_by_monetary"`
}

// BuildViews derives the dashboard figures from r without modifying it.
func BuildViews(r *Report) *Views {
	v := &Views{
		Range:           r.Range,
		ReferenceDate:   r.ReferenceDate,
		TotalRevenue:    decimal.Zero,
		MonthlyOrders:   slices.Clone(r.MonthlyOrders),
		MonthlyProducts: slices.Clone(r.MonthlyProducts),
	}

	for _, m := range r.MonthlyOrders {
		v.TotalOrders += m.OrderCount
		v.TotalRevenue = v.TotalRevenue.Add(m.Revenue)
	}

	v.AvgOrdersPerDay = meanCount(r.OrderTimestamps, func(t time.Time) string { return t.Format(time.DateOnly) })
	v.AvgOrdersPerWeek = meanCount(r.OrderTimestamps, weekKey)
	v.AvgOrdersPerMonth = meanCount(r.OrderTimestamps, func(t time.Time) string { return t.Format("2006-01") })

	v.DayOfMonth = shares(r.DayOfMonth)
	v.Weekdays = countLabels(r.OrderTimestamps, func(o models.OrderTimestamp) string {
		return o.PurchasedAt.Weekday().String()
	})
	v.TimesOfDay = countLabels(r.OrderTimestamps, func(o models.OrderTimestamp) string {
		return TimeOfDay(o.PurchasedAt.Hour())
	})

	v.TopStates = topLocationsBy(r.CustomersByState)
	v.TopCities = topLocationsBy(r.CustomersByCity)

	v.PaymentMix = paymentMix(r.OrderPayments)

	categories := countLabels(r.OrderCategories, func(o models.OrderCategory) string { return o.Category })
	v.BestCategories = head(categories, topCategories)
	ascending := slices.Clone(categories)
	slices.SortStableFunc(ascending, func(a, b models.PartitionCount) int { return a.Count - b.Count })
	v.WorstCategories = head(ascending, topCategories)

	v.AvgMonetary = decimal.Zero
	if n := len(r.RFM); n > 0 {
		var recency, frequency int
		monetary := decimal.Zero
		for _, c := range r.RFM {
			recency += c.Recency
			frequency += c.Frequency
			monetary = monetary.Add(c.Monetary)
		}
		v.AvgRecency = round(float64(recency)/float64(n), 1)
		v.AvgFrequency = round(float64(frequency)/float64(n), 2)
		v.AvgMonetary = monetary.Div(decimal.NewFromInt(int64(n))).Round(2)
	}
	v.TopByRecency = topRFM(r.RFM, func(a, b models.RFMRecord) int { return a.Recency - b.Recency })
	v.TopByFrequency = topRFM(r.RFM, func(a, b models.RFMRecord) int { return b.Frequency - a.Frequency })
	v.TopByMonetary = topRFM(r.RFM, func(a, b models.RFMRecord) int { return b.Monetary.Cmp(a.Monetary) })

	return v
}

// meanCount groups timestamps by key and returns the mean group size,
// rounded to 2 decimals. Periods with no orders are not counted.
func meanCount(rows []models.OrderTimestamp, key func(time.Time) string) float64 {
	if len(rows) == 0 {
		return 0
	}
	groups := map[string]struct{}{}
	for _, r := range rows {
		groups[key(r.PurchasedAt)] = struct{}{}
	}
	return round(float64(len(rows))/float64(len(groups)), 2)
}

func shares(counts []models.PartitionCount) []models.PartitionShare {
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	out := make([]models.PartitionShare, 0, len(counts))
	for _, c := range counts {
		out = append(out, models.PartitionShare{
			Label:   c.Label,
			Count:   c.Count,
			Percent: round(float64(c.Count)/float64(total)*100, 1),
		})
	}
	return out
}

// paymentMix counts payment types; the percentage is taken over every
// projected row, including rows with no payment type.
func paymentMix(payments []models.OrderPayment) []models.PaymentShare {
	counts := countLabels(payments, func(p models.OrderPayment) string { return p.PaymentType })
	out := make([]models.PaymentShare, 0, len(counts))
	for _, c := range counts {
		out = append(out, models.PaymentShare{
			PaymentType: c.Label,
			Count:       c.Count,
			Percent:     round(float64(c.Count)/float64(len(payments))*100, 2),
		})
	}
	return out
}

func topLocationsBy(locations []models.LocationCustomers) []models.LocationCustomers {
	sorted := slices.Clone(locations)
	slices.SortStableFunc(sorted, func(a, b models.LocationCustomers) int {
		return b.CustomerCount - a.CustomerCount
	})
	return head(sorted, topLocations)
}

func topRFM(records []models.RFMRecord, cmp func(a, b models.RFMRecord) int) []models.RFMRecord {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, cmp)
	return head(sorted, topCustomers)
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
