package presentation

import (
	"fmt"
	"strconv"
	"time"

	"olist-dashboard/internal/models"
	"olist-dashboard/internal/pipeline"
)

type ChartKind string

const (
	ChartLine ChartKind = "line"
	ChartBar  ChartKind = "bar"
	ChartHBar ChartKind = "hbar"
	ChartPie  ChartKind = "pie"
)

// ChartSpec is a plotting-library neutral description of one chart.
type ChartSpec struct {
	ID          string    `json:"id"`
	Section     string    `json:"section"`
	Kind        ChartKind `json:"kind"`
	Title       string    `json:"title"`
	XLabel      string    `json:"x_label,omitempty"`
	YLabel      string    `json:"y_label,omitempty"`
	Labels      []string  `json:"labels"`
	Values      []float64 `json:"values"`
	Colors      []string  `json:"colors"`
	Annotations []string  `json:"annotations,omitempty"`
	Reversed    bool      `json:"reversed,omitempty"`
}

type MetricCard struct {
	Section string `json:"section"`
	Label   string `json:"label"`
	Value   string `json:"value"`
}

const (
	SectionOrders    = "Number of Orders"
	SectionTime      = "Number of Orders Based On Time"
	SectionProducts  = "Number of Products"
	SectionCustomers = "Customer Demographic"
	SectionPayments  = "Payment Method"
	SectionPerform   = "Best & Worst Performing Product"
	SectionRFM       = "Best Customer Based on RFM Parameters"
)

// Renderer turns Views into metric cards and chart specs.
type Renderer struct {
	cfg    Config
	format *Formatter
}

func NewRenderer(cfg Config) (*Renderer, error) {
	f, err := NewFormatter(cfg)
	if err != nil {
		return nil, err
	}
	return &Renderer{cfg: cfg, format: f}, nil
}

func (r *Renderer) Formatter() *Formatter { return r.format }

func (r *Renderer) Metrics(v *pipeline.Views) []MetricCard {
	return []MetricCard{
		{Section: SectionOrders, Label: "Total orders", Value: r.format.Integer(v.TotalOrders)},
		{Section: SectionOrders, Label: "Total Revenue", Value: r.format.Currency(v.TotalRevenue)},
		{Section: SectionTime, Label: "Average Orders Per Day", Value: r.format.Number(v.AvgOrdersPerDay, 2)},
		{Section: SectionTime, Label: "Average Orders Per Week", Value: r.format.Number(v.AvgOrdersPerWeek, 2)},
		{Section: SectionTime, Label: "Average Orders Per Month", Value: r.format.Number(v.AvgOrdersPerMonth, 2)},
		{Section: SectionRFM, Label: "Average Recency (days)", Value: r.format.Number(v.AvgRecency, 1)},
		{Section: SectionRFM, Label: "Average Frequency", Value: r.format.Number(v.AvgFrequency, 2)},
		{Section: SectionRFM, Label: "Average Monetary", Value: r.format.Currency(v.AvgMonetary)},
	}
}

// Charts returns the dashboard's charts in display order.
func (r *Renderer) Charts(v *pipeline.Views) []ChartSpec {
	charts := []ChartSpec{
		r.monthlyLine("orders", "Number of Orders", v.MonthlyOrders, func(m models.MonthlyOrders) float64 {
			return float64(m.OrderCount)
		}),
		r.monthlyLine("revenue", "Revenue", v.MonthlyOrders, func(m models.MonthlyOrders) float64 {
			return m.Revenue.InexactFloat64()
		}),
		r.dayOfMonthPie(v.DayOfMonth),
		r.countBar("weekdays", SectionTime, "Numbers of Orders Across Days of Week", "Day of Week", v.Weekdays),
		r.countBar("times-of-day", SectionTime, "Numbers of Orders Across Part of Day", "Part of Day", v.TimesOfDay),
		r.productsLine(v.MonthlyProducts),
		r.locationBar("states", "Number of Customer by States", v.TopStates),
		r.locationBar("cities", "Number of Customer by City", v.TopCities),
		r.paymentBar(v.PaymentMix),
		r.categoryBar("best-products", "Best Performing Product", v.BestCategories, false),
		r.categoryBar("worst-products", "Worst Performing Product", v.WorstCategories, true),
		r.rfmBar("rfm-recency", "By Recency (days)", v.TopByRecency, func(c models.RFMRecord) float64 { return float64(c.Recency) }),
		r.rfmBar("rfm-frequency", "By Frequency", v.TopByFrequency, func(c models.RFMRecord) float64 { return float64(c.Frequency) }),
		r.rfmBar("rfm-monetary", "By Monetary", v.TopByMonetary, func(c models.RFMRecord) float64 { return c.Monetary.InexactFloat64() }),
	}
	return charts
}

// highlight colours the first bar and uses the base colour for the rest.
func (r *Renderer) highlight(n int) []string {
	colors := make([]string, n)
	for i := range colors {
		colors[i] = r.cfg.BaseColor
	}
	if n > 0 {
		colors[0] = r.cfg.HighlightColor
	}
	return colors
}

func (r *Renderer) flat(n int, color string) []string {
	colors := make([]string, n)
	for i := range colors {
		colors[i] = color
	}
	return colors
}

func (r *Renderer) monthlyLine(id, title string, rows []models.MonthlyOrders, value func(models.MonthlyOrders) float64) ChartSpec {
	c := ChartSpec{ID: id, Section: SectionOrders, Kind: ChartLine, Title: title}
	for _, m := range rows {
		c.Labels = append(c.Labels, m.Month.Format(time.DateOnly))
		c.Values = append(c.Values, value(m))
	}
	c.Colors = []string{r.cfg.HighlightColor}
	return normalize(c)
}

func (r *Renderer) productsLine(rows []models.MonthlyProducts) ChartSpec {
	c := ChartSpec{ID: "products", Section: SectionProducts, Kind: ChartLine, Title: "Number of Products"}
	for _, m := range rows {
		c.Labels = append(c.Labels, m.Month.Format(time.DateOnly))
		c.Values = append(c.Values, float64(m.ProductCount))
	}
	c.Colors = []string{r.cfg.HighlightColor}
	return normalize(c)
}

func (r *Renderer) dayOfMonthPie(shares []models.PartitionShare) ChartSpec {
	c := ChartSpec{ID: "day-of-month", Section: SectionTime, Kind: ChartPie, Title: "Distribution Number of Orders in One Month"}
	for _, s := range shares {
		c.Labels = append(c.Labels, s.Label)
		c.Values = append(c.Values, float64(s.Count))
		c.Annotations = append(c.Annotations, fmt.Sprintf("%.1f%% (%d Order)", s.Percent, s.Count))
	}
	c.Colors = r.highlight(len(shares))
	return normalize(c)
}

func (r *Renderer) countBar(id, section, title, xLabel string, counts []models.PartitionCount) ChartSpec {
	c := ChartSpec{ID: id, Section: section, Kind: ChartBar, Title: title, XLabel: xLabel, YLabel: "Orders"}
	for _, p := range counts {
		c.Labels = append(c.Labels, p.Label)
		c.Values = append(c.Values, float64(p.Count))
	}
	c.Colors = r.highlight(len(counts))
	return normalize(c)
}

func (r *Renderer) locationBar(id, title string, rows []models.LocationCustomers) ChartSpec {
	c := ChartSpec{ID: id, Section: SectionCustomers, Kind: ChartHBar, Title: title}
	for _, l := range rows {
		c.Labels = append(c.Labels, l.Location)
		c.Values = append(c.Values, float64(l.CustomerCount))
	}
	c.Colors = r.highlight(len(rows))
	return normalize(c)
}

func (r *Renderer) paymentBar(mix []models.PaymentShare) ChartSpec {
	c := ChartSpec{ID: "payments", Section: SectionPayments, Kind: ChartBar, Title: "Numbers of Orders Across Payment Methods", XLabel: "Payment Method", YLabel: "Orders"}
	for _, p := range mix {
		c.Labels = append(c.Labels, p.PaymentType)
		c.Values = append(c.Values, float64(p.Count))
		c.Annotations = append(c.Annotations, fmt.Sprintf("%.2f%%", p.Percent))
	}
	c.Colors = r.highlight(len(mix))
	return normalize(c)
}

func (r *Renderer) categoryBar(id, title string, counts []models.PartitionCount, reversed bool) ChartSpec {
	c := ChartSpec{ID: id, Section: SectionPerform, Kind: ChartHBar, Title: title, XLabel: "Number of Sales", Reversed: reversed}
	for _, p := range counts {
		c.Labels = append(c.Labels, p.Label)
		c.Values = append(c.Values, float64(p.Count))
	}
	c.Colors = r.highlight(len(counts))
	return normalize(c)
}

func (r *Renderer) rfmBar(id, title string, rows []models.RFMRecord, value func(models.RFMRecord) float64) ChartSpec {
	c := ChartSpec{ID: id, Section: SectionRFM, Kind: ChartBar, Title: title, XLabel: "customer_id"}
	for _, rec := range rows {
		c.Labels = append(c.Labels, strconv.Itoa(rec.CustomerID))
		c.Values = append(c.Values, value(rec))
	}
	c.Colors = r.flat(len(rows), r.cfg.BaseColor)
	return normalize(c)
}

// normalize replaces nil slices so specs always encode as arrays.
func normalize(c ChartSpec) ChartSpec {
	if c.Labels == nil {
		c.Labels = []string{}
	}
	if c.Values == nil {
		c.Values = []float64{}
	}
	if c.Colors == nil {
		c.Colors = []string{}
	}
	return c
}
