package presentation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"olist-dashboard/internal/models"
	"olist-dashboard/internal/pipeline"
)

func testRenderer(t *testing.T) *Renderer {
	t.Helper()
	cfg := DefaultConfig()
	cfg.CurrencyLocale = "en-US"
	r, err := NewRenderer(cfg)
	require.NoError(t, err)
	return r
}

func sampleViews() *pipeline.Views {
	orders := []models.Order{
		{OrderID: "o1", CustomerUniqueID: "a", PurchasedAt: time.Date(2018, 1, 3, 9, 0, 0, 0, time.UTC), PaymentValue: decimal.RequireFromString("1000"), PaymentType: "credit_card", ProductCategory: "toys", CustomerCity: "sao paulo", CustomerState: "SP"},
		{OrderID: "o2", CustomerUniqueID: "b", PurchasedAt: time.Date(2018, 1, 25, 21, 0, 0, 0, time.UTC), PaymentValue: decimal.RequireFromString("234.5"), PaymentType: "boleto", ProductCategory: "garden_tools", CustomerCity: "curitiba", CustomerState: "PR"},
	}
	return pipeline.BuildViews(pipeline.Compute(orders, pipeline.Options{}))
}

func TestRenderer_Metrics(t *testing.T) {
	cards := testRenderer(t).Metrics(sampleViews())

	byLabel := map[string]string{}
	for _, c := range cards {
		byLabel[c.Label] = c.Value
	}
	assert.Equal(t, "2", byLabel["Total orders"])
	assert.Equal(t, "R$ 1,234.50", byLabel["Total Revenue"])
	assert.Equal(t, "R$ 617.25", byLabel["Average Monetary"])
}

func TestRenderer_ChartsHighlightFirstBar(t *testing.T) {
	r := testRenderer(t)
	charts := r.Charts(sampleViews())
	require.Len(t, charts, 14)

	ids := map[string]ChartSpec{}
	for _, c := range charts {
		ids[c.ID] = c
		assert.Len(t, c.Values, len(c.Labels), c.ID)
	}

	payments := ids["payments"]
	assert.Equal(t, ChartBar, payments.Kind)
	assert.Equal(t, []string{"credit_card", "boleto"}, payments.Labels)
	assert.Equal(t, []string{"50.00%", "50.00%"}, payments.Annotations)
	assert.Equal(t, []string{DefaultConfig().HighlightColor, DefaultConfig().BaseColor}, payments.Colors)

	rfm := ids["rfm-monetary"]
	for _, c := range rfm.Colors {
		assert.Equal(t, DefaultConfig().BaseColor, c)
	}
	assert.Equal(t, "1", rfm.Labels[0])

	assert.True(t, ids["worst-products"].Reversed)
	assert.Equal(t, ChartPie, ids["day-of-month"].Kind)
}

func TestRenderer_EmptyViewsEncodeArrays(t *testing.T) {
	v := pipeline.BuildViews(pipeline.Compute(nil, pipeline.Options{}))
	for _, c := range testRenderer(t).Charts(v) {
		assert.NotNil(t, c.Labels, c.ID)
		assert.NotNil(t, c.Values, c.ID)
		assert.NotNil(t, c.Colors, c.ID)
	}
}
