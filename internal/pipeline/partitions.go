package pipeline

import (
	"fmt"
	"slices"
	"time"

	"olist-dashboard/internal/models"
)

const (
	BeginningOfMonth = "Beginning of the Month"
	MiddleOfMonth    = "Middle of the Month"
	EndOfMonth       = "End of the Month"
)

const (
	Morning   = "morning"
	Afternoon = "afternoon"
	Evening   = "evening"
	Night     = "night"
)

// DayOfMonthPartition buckets a day of the month: 1-10 beginning, 11-20
// middle, 21 onwards end.
func DayOfMonthPartition(day int) string {
	switch {
	case day <= 10:
		return BeginningOfMonth
	case day <= 20:
		return MiddleOfMonth
	default:
		return EndOfMonth
	}
}

// TimeOfDay buckets an hour: [5,12) morning, [12,17) afternoon,
// [17,20) evening, anything else night.
func TimeOfDay(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return Morning
	case hour >= 12 && hour < 17:
		return Afternoon
	case hour >= 17 && hour < 20:
		return Evening
	default:
		return Night
	}
}

// monthKey identifies a calendar month independently of time zone pointers.
type monthKey struct {
	year  int
	month time.Month
}

func keyOf(t time.Time) monthKey {
	return monthKey{year: t.Year(), month: t.Month()}
}

func (k monthKey) before(o monthKey) bool {
	return k.year < o.year || (k.year == o.year && k.month < o.month)
}

func (k monthKey) next() monthKey {
	if k.month == time.December {
		return monthKey{year: k.year + 1, month: time.January}
	}
	return monthKey{year: k.year, month: k.month + 1}
}

// end returns the month's last calendar day at midnight in loc.
func (k monthKey) end(loc *time.Location) time.Time {
	return time.Date(k.year, k.month+1, 0, 0, 0, 0, 0, loc)
}

// weekKey mirrors strftime("%Y-%U"): weeks start on Sunday and days before
// the year's first Sunday fall in week 00.
func weekKey(t time.Time) string {
	week := (t.YearDay() - 1 + 7 - int(t.Weekday())) / 7
	return fmt.Sprintf("%04d-%02d", t.Year(), week)
}

// countLabels counts occurrences of each label, skipping empty ones, and
// returns them by count descending. Ties keep first-appearance order.
func countLabels[T any](items []T, label func(T) string) []models.PartitionCount {
	index := map[string]int{}
	counts := make([]models.PartitionCount, 0)
	for _, it := range items {
		l := label(it)
		if l == "" {
			continue
		}
		i, ok := index[l]
		if !ok {
			i = len(counts)
			index[l] = i
			counts = append(counts, models.PartitionCount{Label: l})
		}
		counts[i].Count++
	}
	slices.SortStableFunc(counts, func(a, b models.PartitionCount) int {
		return b.Count - a.Count
	})
	return counts
}

func head[T any](s []T, n int) []T {
	out := make([]T, 0, min(len(s), n))
	return append(out, s[:min(len(s), n)]...)
}
