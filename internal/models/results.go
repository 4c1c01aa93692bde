package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type MonthlyOrders struct {
	Month      time.Time       `json:"month"`
	OrderCount int             `json:"order_count"`
	Revenue    decimal.Decimal `json:"revenue"`
}

type OrderTimestamp struct {
	OrderID     string    `json:"order_id"`
	PurchasedAt time.Time `json:"order_purchase_timestamp"`
}

type OrderCategory struct {
	OrderID  string `json:"order_id"`
	Category string `json:"product_category_name"`
}

type OrderPayment struct {
	OrderID     string `json:"order_id"`
	PaymentType string `json:"payment_type"`
}

type MonthlyProducts struct {
	Month        time.Time `json:"month"`
	ProductCount int       `json:"product_count"`
}

// PartitionCount is a labelled frequency, used for day-of-month,
// time-of-day, weekday, category and payment-type counts.
type PartitionCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type LocationCustomers struct {
	Location      string `json:"location"`
	CustomerCount int    `json:"customer_count"`
}

// RFMRecord holds one customer's Recency/Frequency/Monetary values. The
// CustomerID is a sequential id assigned in customer-unique-id order.
type RFMRecord struct {
	CustomerID int             `json:"customer_id"`
	Recency    int             `json:"recency"`
	Frequency  int             `json:"frequency"`
	Monetary   decimal.Decimal `json:"monetary"`
}

type PaymentShare struct {
	PaymentType string  `json:"payment_type"`
	Count       int     `json:"count"`
	Percent     float64 `json:"percent"`
}

type PartitionShare struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}
