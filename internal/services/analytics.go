package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"olist-dashboard/internal/dataset"
	"olist-dashboard/internal/models"
	"olist-dashboard/internal/observability"
	"olist-dashboard/internal/pipeline"
)

var (
	ErrNoDataset    = errors.New("no dataset loaded")
	ErrInvalidRange = errors.New("start date is after end date")
)

type Option func(*Analytics)

func WithLogger(logger *slog.Logger) Option {
	return func(a *Analytics) { a.logger = logger }
}

// WithReferenceDate fixes the date RFM recency is measured from. Without it
// the latest purchase date in the loaded dataset is used.
func WithReferenceDate(ref time.Time) Option {
	return func(a *Analytics) { a.referenceDate = ref }
}

// Analytics owns the loaded dataset and runs the pipeline per request.
type Analytics struct {
	mu            sync.RWMutex
	dataset       *dataset.Dataset
	pipeline      *pipeline.Pipeline
	generation    uint64
	referenceDate time.Time

	group       singleflight.Group
	reportsRun  atomic.Int64
	reportsHits atomic.Int64
	logger      *slog.Logger
}

func NewAnalytics(opts ...Option) *Analytics {
	a := &Analytics{logger: slog.Default()}
	for _, opt := range opts {
		opt(a)
	}
	a.setDataset(dataset.New("", nil))
	return a
}

// LoadFromFile replaces the current dataset with the contents of path.
func (a *Analytics) LoadFromFile(ctx context.Context, path string) error {
	ctx, span := observability.StartSpan(ctx, "analytics.load")
	defer span.Finish()
	span.SetTag("path", path)

	start := time.Now()
	ds, err := dataset.NewLoader(a.logger).Load(ctx, path)
	if err != nil {
		span.SetError(err)
		return fmt.Errorf("load dataset: %w", err)
	}
	a.setDataset(ds)

	bounds, _ := ds.Bounds()
	a.logger.Info("analytics ready",
		"source", path,
		"rows", ds.Len(),
		"range", bounds.String(),
		"reference_date", a.ReferenceDate().Format(time.DateOnly),
		"duration", time.Since(start),
	)
	return nil
}

// SetOrders installs an in-memory dataset.
func (a *Analytics) SetOrders(source string, orders []models.Order) {
	a.setDataset(dataset.New(source, orders))
}

func (a *Analytics) setDataset(ds *dataset.Dataset) {
	ref := a.referenceDate
	if ref.IsZero() {
		ref = ds.MaxPurchase()
	}

	a.mu.Lock()
	a.dataset = ds
	a.pipeline = pipeline.New(pipeline.Options{ReferenceDate: ref})
	a.generation++
	a.mu.Unlock()
}

func (a *Analytics) current() (*dataset.Dataset, *pipeline.Pipeline) {
	ds, p, _ := a.snapshot()
	return ds, p
}

func (a *Analytics) snapshot() (*dataset.Dataset, *pipeline.Pipeline, uint64) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.dataset, a.pipeline, a.generation
}

// ReferenceDate is the date RFM recency is currently measured from.
func (a *Analytics) ReferenceDate() time.Time {
	if !a.referenceDate.IsZero() {
		return models.Day(a.referenceDate)
	}
	ds, _ := a.current()
	return models.Day(ds.MaxPurchase())
}

func (a *Analytics) Source() string {
	ds, _ := a.current()
	return ds.Source()
}

// Rows is the number of rows in the loaded dataset.
func (a *Analytics) Rows() int {
	ds, _ := a.current()
	return ds.Len()
}

// Bounds returns the first and last purchase dates of the dataset.
func (a *Analytics) Bounds() (models.DateRange, bool) {
	ds, _ := a.current()
	return ds.Bounds()
}

// ResolveRange fills missing ends from the dataset span and clamps the range
// to it. A range that does not overlap the span is returned unchanged so it
// yields an empty report.
func (a *Analytics) ResolveRange(start, end time.Time) (models.DateRange, error) {
	bounds, ok := a.Bounds()
	if !ok {
		return models.DateRange{}, ErrNoDataset
	}
	if start.IsZero() {
		start = bounds.Start
	}
	if end.IsZero() {
		end = bounds.End
	}
	start, end = models.Day(start), models.Day(end)
	if start.After(end) {
		return models.DateRange{}, fmt.Errorf("%w: %s > %s", ErrInvalidRange, start.Format(time.DateOnly), end.Format(time.DateOnly))
	}

	r := models.DateRange{Start: start, End: end}
	if start.After(bounds.End) || end.Before(bounds.Start) {
		return r, nil
	}
	if start.Before(bounds.Start) {
		r.Start = bounds.Start
	}
	if end.After(bounds.End) {
		r.End = bounds.End
	}
	return r, nil
}

// Report runs the pipeline over r. Concurrent calls for the same range share
// one computation.
func (a *Analytics) Report(ctx context.Context, r models.DateRange) (*pipeline.Report, error) {
	ctx, span := observability.StartSpan(ctx, "analytics.report")
	defer span.Finish()
	span.SetTag("range", r.String())

	ds, p, gen := a.snapshot()
	if ds.Len() == 0 {
		span.SetError(ErrNoDataset)
		return nil, ErrNoDataset
	}

	// the generation keeps results of a replaced dataset from being shared
	key := fmt.Sprintf("%d/%s", gen, r)
	ch := a.group.DoChan(key, func() (any, error) {
		a.reportsRun.Add(1)
		start := time.Now()
		report := p.Run(ds, r)
		a.logger.Debug("report computed",
			"range", r.String(),
			"rows", report.RowCount,
			"duration", time.Since(start),
			"request_id", observability.GetRequestID(ctx),
		)
		return report, nil
	})

	select {
	case <-ctx.Done():
		span.SetError(ctx.Err())
		return nil, ctx.Err()
	case res := <-ch:
		if res.Shared {
			a.reportsHits.Add(1)
		}
		return res.Val.(*pipeline.Report), nil
	}
}

// Views runs the pipeline over r and derives the dashboard figures.
func (a *Analytics) Views(ctx context.Context, r models.DateRange) (*pipeline.Views, error) {
	report, err := a.Report(ctx, r)
	if err != nil {
		return nil, err
	}
	return pipeline.BuildViews(report), nil
}

// Utility method for monitoring
func (a *Analytics) Stats() map[string]any {
	ds, _ := a.current()
	stats := map[string]any{
		"source":         ds.Source(),
		"record_count":   ds.Len(),
		"loaded_at":      ds.LoadedAt(),
		"reports_run":    a.reportsRun.Load(),
		"reports_shared": a.reportsHits.Load(),
	}
	if bounds, ok := ds.Bounds(); ok {
		stats["first_purchase"] = bounds.Start.Format(time.DateOnly)
		stats["last_purchase"] = bounds.End.Format(time.DateOnly)
		stats["reference_date"] = a.ReferenceDate().Format(time.DateOnly)
	}
	return stats
}
