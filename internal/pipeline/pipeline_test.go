package pipeline

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"olist-dashboard/internal/dataset"
	"olist-dashboard/internal/models"
)

func ts(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleOrders() []models.Order {
	return []models.Order{
		{OrderID: "o1", CustomerUniqueID: "cust-b", PurchasedAt: ts(2018, 1, 3, 9), PaymentValue: money("100.00"), PaymentType: "credit_card", ProductCategory: "toys", CustomerCity: "sao paulo", CustomerState: "SP"},
		{OrderID: "o1", CustomerUniqueID: "cust-b", PurchasedAt: ts(2018, 1, 3, 9), PaymentValue: money("20.00"), PaymentType: "voucher", ProductCategory: "toys", CustomerCity: "sao paulo", CustomerState: "SP"},
		{OrderID: "o2", CustomerUniqueID: "cust-a", PurchasedAt: ts(2018, 1, 15, 13), PaymentValue: money("50.50"), PaymentType: "boleto", ProductCategory: "health_beauty", CustomerCity: "rio de janeiro", CustomerState: "RJ"},
		{OrderID: "o3", CustomerUniqueID: "cust-b", PurchasedAt: ts(2018, 2, 25, 18), PaymentValue: money("10.25"), PaymentType: "credit_card", ProductCategory: "toys", CustomerCity: "sao paulo", CustomerState: "SP"},
		{OrderID: "o4", CustomerUniqueID: "cust-c", PurchasedAt: ts(2018, 2, 28, 22), PaymentValue: money("5.00"), PaymentType: "credit_card", ProductCategory: "garden_tools", CustomerCity: "campinas", CustomerState: "SP"},
	}
}

func TestMonthlyOrders_TwoMonths(t *testing.T) {
	got := MonthlyOrders(sampleOrders())

	require.Len(t, got, 2)
	assert.Equal(t, time.Date(2018, 1, 31, 0, 0, 0, 0, time.UTC), got[0].Month)
	assert.Equal(t, 2, got[0].OrderCount)
	assert.Equal(t, "170.50", got[0].Revenue.StringFixed(2))
	assert.Equal(t, time.Date(2018, 2, 28, 0, 0, 0, 0, time.UTC), got[1].Month)
	assert.Equal(t, 2, got[1].OrderCount)
	assert.Equal(t, "15.25", got[1].Revenue.StringFixed(2))
}

func TestMonthlyOrders_FillsGapMonths(t *testing.T) {
	orders := []models.Order{
		{OrderID: "a", PurchasedAt: ts(2017, 11, 5, 10), PaymentValue: money("1")},
		{OrderID: "b", PurchasedAt: ts(2018, 2, 5, 10), PaymentValue: money("2")},
	}
	got := MonthlyOrders(orders)

	require.Len(t, got, 4)
	months := []time.Time{
		time.Date(2017, 11, 30, 0, 0, 0, 0, time.UTC),
		time.Date(2017, 12, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2018, 1, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2018, 2, 28, 0, 0, 0, 0, time.UTC),
	}
	for i, m := range months {
		assert.Equal(t, m, got[i].Month)
	}
	assert.Equal(t, 0, got[1].OrderCount)
	assert.True(t, got[2].Revenue.IsZero())
}

func TestProjections_DropRepeatedPairs(t *testing.T) {
	orders := sampleOrders()

	stamps := OrderTimestamps(orders)
	assert.Len(t, stamps, 4)
	assert.Equal(t, "o1", stamps[0].OrderID)

	cats := OrderCategories(orders)
	assert.Len(t, cats, 4)

	pays := OrderPayments(orders)
	require.Len(t, pays, 5)
	assert.Equal(t, "voucher", pays[1].PaymentType)
}

func TestMonthlyProducts(t *testing.T) {
	got := MonthlyProducts(sampleOrders())
	require.Len(t, got, 2)
	assert.Equal(t, 3, got[0].ProductCount)
	assert.Equal(t, 2, got[1].ProductCount)
}

func TestCustomersByLocation(t *testing.T) {
	states := CustomersByState(sampleOrders())
	assert.Equal(t, []models.LocationCustomers{
		{Location: "RJ", CustomerCount: 1},
		{Location: "SP", CustomerCount: 2},
	}, states)

	cities := CustomersByCity(sampleOrders())
	assert.Equal(t, []models.LocationCustomers{
		{Location: "campinas", CustomerCount: 1},
		{Location: "rio de janeiro", CustomerCount: 1},
		{Location: "sao paulo", CustomerCount: 1},
	}, cities)
}

func TestRFM_SingleCustomerTwoOrders(t *testing.T) {
	orders := []models.Order{
		{OrderID: "x1", CustomerUniqueID: "solo", PurchasedAt: ts(2018, 8, 1, 23), PaymentValue: money("30.10")},
		{OrderID: "x2", CustomerUniqueID: "solo", PurchasedAt: ts(2018, 8, 20, 7), PaymentValue: money("12.40")},
	}
	ref := time.Date(2018, 9, 1, 0, 0, 0, 0, time.UTC)

	got := RFM(orders, ref)

	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].CustomerID)
	assert.Equal(t, 2, got[0].Frequency)
	assert.Equal(t, "42.50", got[0].Monetary.StringFixed(2))
	assert.Equal(t, 12, got[0].Recency)
}

func TestRFM_OneRowPerCustomerInIDOrder(t *testing.T) {
	got := RFM(sampleOrders(), time.Date(2018, 3, 1, 0, 0, 0, 0, time.UTC))

	require.Len(t, got, 3)
	// cust-a, cust-b, cust-c
	assert.Equal(t, []int{1, 2, 3}, []int{got[0].CustomerID, got[1].CustomerID, got[2].CustomerID})
	assert.Equal(t, 1, got[0].Frequency)
	assert.Equal(t, 2, got[1].Frequency)
	assert.Equal(t, "130.25", got[1].Monetary.StringFixed(2))
	assert.Equal(t, 4, got[1].Recency)
	assert.Equal(t, 1, got[2].Recency)
}

func TestRFM_SkipsMissingCustomerID(t *testing.T) {
	orders := []models.Order{
		{OrderID: "x1", CustomerUniqueID: "known", PurchasedAt: ts(2018, 8, 1, 10), PaymentValue: money("10")},
		{OrderID: "x2", CustomerUniqueID: "", PurchasedAt: ts(2018, 8, 2, 10), PaymentValue: money("99")},
		{OrderID: "", CustomerUniqueID: "known", PurchasedAt: ts(2018, 8, 3, 10), PaymentValue: money("5")},
	}

	got := RFM(orders, time.Date(2018, 9, 1, 0, 0, 0, 0, time.UTC))

	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Frequency)
	assert.Equal(t, "15.00", got[0].Monetary.StringFixed(2))
	assert.Equal(t, 29, got[0].Recency)
}

func TestMonthlyOrders_EmptyOrderIDNotCounted(t *testing.T) {
	orders := []models.Order{
		{OrderID: "a", PurchasedAt: ts(2018, 1, 5, 10), PaymentValue: money("1")},
		{OrderID: "", PurchasedAt: ts(2018, 1, 6, 10), PaymentValue: money("2")},
	}

	got := MonthlyOrders(orders)

	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].OrderCount)
	assert.Equal(t, "3.00", got[0].Revenue.StringFixed(2))
}

func TestCompute_DefaultReferenceIsLatestPurchaseDate(t *testing.T) {
	r := Compute(sampleOrders(), Options{})
	assert.Equal(t, time.Date(2018, 2, 28, 0, 0, 0, 0, time.UTC), r.ReferenceDate)
	assert.Equal(t, 0, r.RFM[2].Recency)
}

func TestRun_DefaultReferenceIsSourceLatestPurchase(t *testing.T) {
	ds := dataset.New("mem", sampleOrders())
	january := models.DateRange{Start: time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2018, 1, 31, 0, 0, 0, 0, time.UTC)}

	report := New(Options{}).Run(ds, january)

	assert.Equal(t, time.Date(2018, 2, 28, 0, 0, 0, 0, time.UTC), report.ReferenceDate)
	require.Len(t, report.RFM, 2)
	// cust-a last bought on 2018-01-15
	assert.Equal(t, 44, report.RFM[0].Recency)
}

func TestPipeline_Idempotent(t *testing.T) {
	ds := dataset.New("mem", sampleOrders())
	p := New(Options{ReferenceDate: time.Date(2018, 9, 1, 0, 0, 0, 0, time.UTC)})
	r := models.DateRange{Start: time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2018, 2, 28, 0, 0, 0, 0, time.UTC)}

	render := func() []byte {
		report := p.Run(ds, r)
		var buf bytes.Buffer
		require.NoError(t, json.NewEncoder(&buf).Encode(report.Tables()))
		require.NoError(t, json.NewEncoder(&buf).Encode(BuildViews(report)))
		return buf.Bytes()
	}

	first := render()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, render())
	}
}

func TestPipeline_EmptyRangeGivesEmptyReport(t *testing.T) {
	ds := dataset.New("mem", sampleOrders())
	r := models.DateRange{Start: time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2019, 1, 31, 0, 0, 0, 0, time.UTC)}

	report := New(Options{}).Run(ds, r)

	assert.Equal(t, 0, report.RowCount)
	tables := report.Tables()
	require.Len(t, tables, len(TableNames))
	for i, tbl := range tables {
		assert.Equal(t, TableNames[i], tbl.Name)
		assert.NotEmpty(t, tbl.Columns)
		assert.Empty(t, tbl.Rows, tbl.Name)
	}

	v := BuildViews(report)
	assert.Equal(t, 0, v.TotalOrders)
	assert.True(t, v.TotalRevenue.IsZero())
	assert.Zero(t, v.AvgOrdersPerDay)
	assert.Zero(t, v.AvgRecency)
	assert.Empty(t, v.TopByMonetary)
	assert.NotNil(t, v.PaymentMix)
}

func TestReport_TableUnknownName(t *testing.T) {
	_, ok := Compute(nil, Options{}).Table("nope")
	assert.False(t, ok)
}

func TestReport_TablesRenderCells(t *testing.T) {
	report := Compute(sampleOrders(), Options{ReferenceDate: time.Date(2018, 3, 1, 0, 0, 0, 0, time.UTC)})

	monthly, ok := report.Table(TableMonthlyOrders)
	require.True(t, ok)
	assert.Equal(t, []string{"2018-01-31", "2", "170.50"}, monthly.Rows[0])

	rfm, ok := report.Table(TableRFM)
	require.True(t, ok)
	assert.Equal(t, []string{"2", "4", "2", "130.25"}, rfm.Rows[1])
}
