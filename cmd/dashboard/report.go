package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"olist-dashboard/internal/config"
	"olist-dashboard/internal/export"
	"olist-dashboard/internal/observability"
)

var reportFlags struct {
	start  string
	end    string
	format string
	output string
}

const reportExample = `  dashboard report --file all_data.csv --start 2017-01-01 --end 2017-12-31
  dashboard report -f all_data.csv --format xlsx --output tables.xlsx`

var reportCmd = &cobra.Command{
	Use:     "report",
	Short:   "Compute the result tables for a date range and write them out",
	Example: reportExample,
	Args:    cobra.NoArgs,
	RunE:    runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportFlags.start, "start", "", "first day, YYYY-MM-DD (defaults to the first purchase)")
	reportCmd.Flags().StringVar(&reportFlags.end, "end", "", "last day, YYYY-MM-DD (defaults to the last purchase)")
	reportCmd.Flags().StringVar(&reportFlags.format, "format", "text", "text, json or xlsx")
	reportCmd.Flags().StringVarP(&reportFlags.output, "output", "o", "-", "output file, - for stdout")
}

func parseDay(flag, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s must be YYYY-MM-DD: %w", flag, err)
	}
	return t, nil
}

func runReport(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(reportFlags.format)
	if err != nil {
		return err
	}
	start, err := parseDay("start", reportFlags.start)
	if err != nil {
		return err
	}
	end, err := parseDay("end", reportFlags.end)
	if err != nil {
		return err
	}

	cfg, err := config.LoadFrom(v)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := observability.NewLoggerTo(cmd.ErrOrStderr(), cfg.Logger)

	analytics, err := loadAnalytics(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}

	rng, err := analytics.ResolveRange(start, end)
	if err != nil {
		return err
	}
	report, err := analytics.Report(cmd.Context(), rng)
	if err != nil {
		return err
	}

	var out io.Writer = cmd.OutOrStdout()
	if reportFlags.output != "-" {
		f, err := os.Create(reportFlags.output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := export.Write(out, report, format); err != nil {
		return fmt.Errorf("write %s report: %w", format, err)
	}
	logger.Info("report written", "range", rng.String(), "format", format, "output", reportFlags.output)
	return nil
}
