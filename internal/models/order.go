package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is one row of the pre-joined order dataset. A single order id can
// appear on several rows (one per item and payment).
type Order struct {
	OrderID          string
	CustomerUniqueID string
	PurchasedAt      time.Time
	PaymentValue     decimal.Decimal
	PaymentType      string
	ProductCategory  string
	CustomerCity     string
	CustomerState    string
}

// DateRange is an inclusive range of calendar dates.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Contains reports whether t falls on or between the range's calendar
// days, evaluated in t's location.
func (r DateRange) Contains(t time.Time) bool {
	loc := t.Location()
	sy, sm, sd := r.Start.Date()
	ey, em, ed := r.End.Date()
	start := time.Date(sy, sm, sd, 0, 0, 0, 0, loc)
	end := time.Date(ey, em, ed+1, 0, 0, 0, 0, loc)
	return !t.Before(start) && t.Before(end)
}

func (r DateRange) String() string {
	return r.Start.Format(time.DateOnly) + ".." + r.End.Format(time.DateOnly)
}
