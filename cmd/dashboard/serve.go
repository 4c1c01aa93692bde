package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"olist-dashboard/internal/config"
	"olist-dashboard/internal/middleware"
	"olist-dashboard/internal/observability"
	"olist-dashboard/internal/presentation"
	"olist-dashboard/internal/server"
	"olist-dashboard/internal/services"
	"olist-dashboard/internal/ui/templates"
)

const (
	renderTimeout  = 10 * time.Second
	cacheMaxAge    = "public, max-age=300"
	dashboardTitle = "Olist E-Commerce Dashboard"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard over HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("host", "", "listen host (env SERVER_HOST)")
	serveCmd.Flags().Int("port", 0, "listen port (env SERVER_PORT)")
	_ = v.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	_ = v.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
}

func handleDashboard(analytics *services.Analytics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), renderTimeout)
		defer cancel()

		view := templates.DashboardView{
			Title:  dashboardTitle,
			Source: analytics.Source(),
			Rows:   analytics.Rows(),
		}
		if bounds, ok := analytics.Bounds(); ok {
			view.MinDate = bounds.Start.Format(time.DateOnly)
			view.MaxDate = bounds.End.Format(time.DateOnly)
		}

		w.Header().Set("Cache-Control", cacheMaxAge)
		if err := templates.Dashboard(view).Render(ctx, w); err != nil {
			http.Error(w, "render error", http.StatusInternalServerError)
		}
	}
}

func newRenderer(cfg config.PresentationConfig) (*presentation.Renderer, error) {
	return presentation.NewRenderer(presentation.Config{
		CurrencySymbol: cfg.CurrencySymbol,
		CurrencyLocale: cfg.CurrencyLocale,
		HighlightColor: cfg.HighlightColor,
		BaseColor:      cfg.BaseColor,
	})
}

// loadAnalytics builds the analytics service and loads the configured
// dataset into it.
func loadAnalytics(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*services.Analytics, error) {
	analytics := services.NewAnalytics(
		services.WithLogger(logger),
		services.WithReferenceDate(cfg.Dataset.Reference()),
	)

	ctx, cancel := context.WithTimeout(ctx, cfg.Dataset.LoadTimeout)
	defer cancel()

	start := time.Now()
	if err := analytics.LoadFromFile(ctx, cfg.Dataset.File); err != nil {
		return nil, err
	}
	logger.Info("dataset loaded successfully", "duration", time.Since(start))
	return analytics, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFrom(v)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := observability.NewLogger(cfg.Logger)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"version", version,
		"config", cfg,
	)

	renderer, err := newRenderer(cfg.Presentation)
	if err != nil {
		logger.Error("invalid presentation settings", "error", err)
		return err
	}

	analytics, err := loadAnalytics(cmd.Context(), cfg, logger)
	if err != nil {
		logger.Error("failed to load dataset", "error", err)
		return err
	}

	templateHandlers := &server.TemplateHandlers{
		Dashboard: handleDashboard(analytics),
	}

	srv := server.NewServer(analytics, renderer, logger, templateHandlers)

	rateLimiter := middleware.NewRateLimiter(cfg.Security)

	middlewareChain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Tracing(logger),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.Security),
		middleware.TrustedProxy(cfg.Security),
		middleware.RateLimit(rateLimiter, logger),
	)

	handler := middlewareChain(srv)

	httpServer := &http.Server{
		Addr:         cfg.Address(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	gracefulServer := server.NewGracefulServer(httpServer, logger, cfg.Server)

	gracefulServer.RegisterShutdownHook("analytics", func(ctx context.Context) error {
		logger.Info("shutting down analytics service", "stats", analytics.Stats())
		return nil
	})

	logger.Info("starting graceful server")
	if err := gracefulServer.Run(cmd.Context()); err != nil {
		logger.Error("server failed", "error", err)
		return err
	}

	logger.Info("application stopped gracefully")
	return nil
}
