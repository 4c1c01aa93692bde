package templates

import "encoding/json"

// DashboardView is the data the dashboard page is rendered with. Dates are
// YYYY-MM-DD strings as the date inputs expect.
type DashboardView struct {
	Title   string
	Source  string
	Rows    int
	MinDate string
	MaxDate string
}

// Signals returns the initial Datastar signals of the page.
func (v DashboardView) Signals() string {
	b, _ := json.Marshal(map[string]any{
		"startDate": v.MinDate,
		"endDate":   v.MaxDate,
		"rowCount":  v.Rows,
	})
	return string(b)
}
