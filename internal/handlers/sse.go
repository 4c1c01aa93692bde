package handlers

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/starfederation/datastar-go/datastar"

	"olist-dashboard/internal/errors"
	"olist-dashboard/internal/models"
	"olist-dashboard/internal/pipeline"
	"olist-dashboard/internal/presentation"
	"olist-dashboard/internal/services"
)

var metricsTemplate = template.Must(template.New("metrics").Parse(`
<div id="metrics-content">
<p class="range-label">{{.Range}} &middot; {{.Rows}} rows</p>
<div class="metric-grid">
{{range .Cards}}<div class="metric-card">
<span class="metric-section">{{.Section}}</span>
<span class="metric-label">{{.Label}}</span>
<strong class="metric-value">{{.Value}}</strong>
</div>
{{end}}</div>
</div>`))

var errorTemplate = template.Must(template.New("error").Parse(
	`<div id="dashboard-error" class="error-banner">{{.}}</div>`))

type SSEHandlers struct {
	analytics *services.Analytics
	renderer  *presentation.Renderer
	logger    *slog.Logger
}

func NewSSEHandlers(analytics *services.Analytics, renderer *presentation.Renderer, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		analytics: analytics,
		renderer:  renderer,
		logger:    logger,
	}
}

type metricsData struct {
	Range string
	Rows  string
	Cards []presentation.MetricCard
}

func (h *SSEHandlers) renderMetrics(rng models.DateRange, rows int, cards []presentation.MetricCard) (string, error) {
	var buf strings.Builder
	err := metricsTemplate.Execute(&buf, metricsData{
		Range: rng.Start.Format(time.DateOnly) + " to " + rng.End.Format(time.DateOnly),
		Rows:  h.renderer.Formatter().Integer(rows),
		Cards: cards,
	})
	return buf.String(), err
}

func renderError(msg string) string {
	var buf strings.Builder
	if err := errorTemplate.Execute(&buf, msg); err != nil {
		return `<div id="dashboard-error" class="error-banner">error</div>`
	}
	return buf.String()
}

// HandleRefreshAll recomputes the dashboard for the startDate and endDate
// signals and patches the metric cards, the date signals and the charts.
func (h *SSEHandlers) HandleRefreshAll(w http.ResponseWriter, r *http.Request) {
	var signals rangeQuery
	if err := datastar.ReadSignals(r, &signals); err != nil {
		errors.WriteError(w, r, h.logger, errors.BadRequestWrap(err, "invalid signals"))
		return
	}

	sse := datastar.NewSSE(w, r)

	rng, err := signals.resolve(h.analytics)
	if err != nil {
		h.patchError(sse, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), reportTimeout)
	defer cancel()

	report, err := h.analytics.Report(ctx, rng)
	if err != nil {
		h.patchError(sse, appError(err))
		return
	}
	views := pipeline.BuildViews(report)

	html, err := h.renderMetrics(rng, report.RowCount, h.renderer.Metrics(views))
	if err != nil {
		h.logger.Error("render metrics", "error", err)
		return
	}
	sse.PatchElements(html)
	sse.PatchElements(`<div id="dashboard-error"></div>`)

	if err := sse.MarshalAndPatchSignals(map[string]any{
		"startDate": rng.Start.Format(time.DateOnly),
		"endDate":   rng.End.Format(time.DateOnly),
		"rowCount":  report.RowCount,
	}); err != nil {
		h.logger.Error("patch range signals", "error", err)
		return
	}

	charts, err := json.Marshal(h.renderer.Charts(views))
	if err != nil {
		h.logger.Error("marshal chart specs", "error", err)
		return
	}
	sse.ExecuteScript(fmt.Sprintf("window.renderCharts(%s)", charts))

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func (h *SSEHandlers) patchError(sse *datastar.ServerSentEventGenerator, err error) {
	msg := err.Error()
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		msg = appErr.Message
		if appErr.Details != "" {
			msg += ": " + appErr.Details
		}
	}
	h.logger.Warn("dashboard refresh failed", "error", err)
	sse.PatchElements(renderError(msg))
}
