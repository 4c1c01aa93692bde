package pipeline

import (
	"strconv"
	"time"

	"olist-dashboard/internal/models"
)

// Table names, in the order Report.Tables returns them.
const (
	TableMonthlyOrders    = "monthly_orders"
	TableOrderTimestamps  = "order_timestamps"
	TableOrderCategories  = "order_categories"
	TableOrderPayments    = "order_payments"
	TableMonthlyProducts  = "monthly_products"
	TableDayOfMonth       = "day_of_month"
	TableCustomersByState = "customers_by_state"
	TableCustomersByCity  = "customers_by_city"
	TableRFM              = "rfm"
)

var TableNames = []string{
	TableMonthlyOrders,
	TableOrderTimestamps,
	TableOrderCategories,
	TableOrderPayments,
	TableMonthlyProducts,
	TableDayOfMonth,
	TableCustomersByState,
	TableCustomersByCity,
	TableRFM,
}

// Source is anything that can restrict its rows to a date range.
type Source interface {
	Filter(r models.DateRange) []models.Order
	MaxPurchase() time.Time
}

type Options struct {
	// ReferenceDate is the "today" recency is measured from. When zero, Run
	// uses the latest purchase in the whole source and Compute the latest
	// purchase in the rows it is given.
	ReferenceDate time.Time
}

// Pipeline runs the aggregation functions over a filtered source. It holds
// no state between runs.
type Pipeline struct {
	opts Options
}

func New(opts Options) *Pipeline {
	return &Pipeline{opts: opts}
}

// Run filters src to r and computes every result table.
func (p *Pipeline) Run(src Source, r models.DateRange) *Report {
	opts := p.opts
	if opts.ReferenceDate.IsZero() {
		opts.ReferenceDate = src.MaxPurchase()
	}
	report := Compute(src.Filter(r), opts)
	report.Range = r
	return report
}

// Report holds the result tables of one pipeline run.
type Report struct {
	Range         models.DateRange
	ReferenceDate time.Time
	RowCount      int

	MonthlyOrders    []models.MonthlyOrders
	OrderTimestamps  []models.OrderTimestamp
	OrderCategories  []models.OrderCategory
	OrderPayments    []models.OrderPayment
	MonthlyProducts  []models.MonthlyProducts
	DayOfMonth       []models.PartitionCount
	CustomersByState []models.LocationCustomers
	CustomersByCity  []models.LocationCustomers
	RFM              []models.RFMRecord
}

// Compute runs the aggregation functions over already filtered orders.
// An empty input gives a report whose tables are all empty.
func Compute(orders []models.Order, opts Options) *Report {
	ref := opts.ReferenceDate
	if ref.IsZero() {
		for _, o := range orders {
			if o.PurchasedAt.After(ref) {
				ref = o.PurchasedAt
			}
		}
	}
	ref = models.Day(ref)

	return &Report{
		ReferenceDate:    ref,
		RowCount:         len(orders),
		MonthlyOrders:    MonthlyOrders(orders),
		OrderTimestamps:  OrderTimestamps(orders),
		OrderCategories:  OrderCategories(orders),
		OrderPayments:    OrderPayments(orders),
		MonthlyProducts:  MonthlyProducts(orders),
		DayOfMonth:       DayOfMonthPartitions(orders),
		CustomersByState: CustomersByState(orders),
		CustomersByCity:  CustomersByCity(orders),
		RFM:              RFM(orders, ref),
	}
}

// Table is a rendered result table: column names and cell text.
type Table struct {
	Name    string     `json:"name"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Tables returns the report's result tables in pipeline order.
func (r *Report) Tables() []Table {
	tables := make([]Table, 0, len(TableNames))
	for _, name := range TableNames {
		t, _ := r.Table(name)
		tables = append(tables, t)
	}
	return tables
}

// Table renders the named result table. ok is false for unknown names.
func (r *Report) Table(name string) (t Table, ok bool) {
	t.Name = name
	t.Rows = [][]string{}
	switch name {
	case TableMonthlyOrders:
		t.Columns = []string{"order_purchase_timestamp", "order_count", "revenue"}
		for _, m := range r.MonthlyOrders {
			t.Rows = append(t.Rows, []string{formatDate(m.Month), strconv.Itoa(m.OrderCount), m.Revenue.StringFixed(2)})
		}
	case TableOrderTimestamps:
		t.Columns = []string{"order_id", "order_purchase_timestamp"}
		for _, o := range r.OrderTimestamps {
			t.Rows = append(t.Rows, []string{o.OrderID, o.PurchasedAt.Format(time.DateTime)})
		}
	case TableOrderCategories:
		t.Columns = []string{"order_id", "product_category_name"}
		for _, o := range r.OrderCategories {
			t.Rows = append(t.Rows, []string{o.OrderID, o.Category})
		}
	case TableOrderPayments:
		t.Columns = []string{"order_id", "payment_type"}
		for _, o := range r.OrderPayments {
			t.Rows = append(t.Rows, []string{o.OrderID, o.PaymentType})
		}
	case TableMonthlyProducts:
		t.Columns = []string{"month", "product_count"}
		for _, m := range r.MonthlyProducts {
			t.Rows = append(t.Rows, []string{formatDate(m.Month), strconv.Itoa(m.ProductCount)})
		}
	case TableDayOfMonth:
		t.Columns = []string{"day_partition", "count"}
		for _, p := range r.DayOfMonth {
			t.Rows = append(t.Rows, []string{p.Label, strconv.Itoa(p.Count)})
		}
	case TableCustomersByState:
		t.Columns = []string{"customer_state", "customer_count"}
		for _, l := range r.CustomersByState {
			t.Rows = append(t.Rows, []string{l.Location, strconv.Itoa(l.CustomerCount)})
		}
	case TableCustomersByCity:
		t.Columns = []string{"customer_city", "customer_count"}
		for _, l := range r.CustomersByCity {
			t.Rows = append(t.Rows, []string{l.Location, strconv.Itoa(l.CustomerCount)})
		}
	case TableRFM:
		t.Columns = []string{"customer_id", "recency", "frequency", "monetary"}
		for _, c := range r.RFM {
			t.Rows = append(t.Rows, []string{
				strconv.Itoa(c.CustomerID),
				strconv.Itoa(c.Recency),
				strconv.Itoa(c.Frequency),
				c.Monetary.StringFixed(2),
			})
		}
	default:
		return Table{}, false
	}
	return t, true
}

func formatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}
