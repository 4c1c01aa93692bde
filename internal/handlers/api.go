package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"olist-dashboard/internal/errors"
	"olist-dashboard/internal/pipeline"
	"olist-dashboard/internal/services"
)

const (
	cacheMaxAge   = "public, max-age=300"
	reportTimeout = 30 * time.Second
)

type APIHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
}

func NewAPIHandlers(analytics *services.Analytics, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		analytics: analytics,
		logger:    logger,
	}
}

func queryRange(r *http.Request) rangeQuery {
	q := r.URL.Query()
	return rangeQuery{Start: q.Get("startDate"), End: q.Get("endDate")}
}

func (h *APIHandlers) report(r *http.Request) (*pipeline.Report, error) {
	rng, err := queryRange(r).resolve(h.analytics)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(r.Context(), reportTimeout)
	defer cancel()

	report, err := h.analytics.Report(ctx, rng)
	if err != nil {
		return nil, appError(err)
	}
	return report, nil
}

// HandleReport returns the dashboard figures for ?startDate=&endDate=.
func (h *APIHandlers) HandleReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.report(r)
	if err != nil {
		errors.WriteError(w, r, h.logger, err)
		return
	}

	errors.WriteSuccessWithHeaders(w, pipeline.BuildViews(report), map[string]string{
		"Cache-Control": cacheMaxAge,
	})
}

// HandleTables returns every result table for ?startDate=&endDate= in
// pipeline order.
func (h *APIHandlers) HandleTables(w http.ResponseWriter, r *http.Request) {
	report, err := h.report(r)
	if err != nil {
		errors.WriteError(w, r, h.logger, err)
		return
	}

	errors.WriteSuccessWithHeaders(w, report.Tables(), map[string]string{
		"Cache-Control": cacheMaxAge,
	})
}

// HandleTable returns the result table named by the {name} path segment.
func (h *APIHandlers) HandleTable(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	report, err := h.report(r)
	if err != nil {
		errors.WriteError(w, r, h.logger, err)
		return
	}

	table, ok := report.Table(name)
	if !ok {
		errors.WriteError(w, r, h.logger, errors.NotFound("unknown table "+name))
		return
	}

	errors.WriteSuccessWithHeaders(w, table, map[string]string{
		"Cache-Control": cacheMaxAge,
	})
}

func (h *APIHandlers) HandleBounds(w http.ResponseWriter, r *http.Request) {
	bounds, ok := h.analytics.Bounds()
	if !ok {
		errors.WriteError(w, r, h.logger, errors.ServiceUnavailable("no dataset loaded"))
		return
	}

	errors.WriteSuccess(w, map[string]string{
		"start":          bounds.Start.Format(time.DateOnly),
		"end":            bounds.End.Format(time.DateOnly),
		"reference_date": h.analytics.ReferenceDate().Format(time.DateOnly),
	})
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	healthData := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
	}

	errors.WriteSuccess(w, healthData)
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats := h.analytics.Stats()

	errors.WriteSuccess(w, stats)
}
