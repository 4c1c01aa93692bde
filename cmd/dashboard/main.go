package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const version = "1.0.0"

// settings shared by every command; flags are bound to the same keys as
// the environment variables.
var v = viper.New()

var rootCmd = &cobra.Command{
	Use:          "dashboard",
	Short:        "Olist e-commerce order dashboard",
	Long:         "Loads the pre-joined Olist order dataset and serves the order dashboard or writes its result tables.",
	Version:      version,
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringP("file", "f", "", "dataset file, .csv or .xlsx (env DATASET_FILE)")
	flags.String("reference-date", "", "date RFM recency is measured from, YYYY-MM-DD (env RFM_REFERENCE_DATE)")
	flags.String("log-level", "", "debug, info, warn or error (env LOG_LEVEL)")

	_ = v.BindPFlag("dataset.file", flags.Lookup("file"))
	_ = v.BindPFlag("dataset.reference_date", flags.Lookup("reference-date"))
	_ = v.BindPFlag("logger.level", flags.Lookup("log-level"))

	rootCmd.AddCommand(serveCmd, reportCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
