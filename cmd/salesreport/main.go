// Command salesreport runs the dashboard pipeline against a local sales file
// and exports the aggregate views and enriched table as CSV. It prints the
// detected column mapping and the headline summary, making it useful for
// checking how a dataset will resolve before uploading it.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"salesdash/internal/config"
	"salesdash/internal/exporter"
	"salesdash/internal/infrastructure"
	"salesdash/internal/services"
	"salesdash/internal/validation"
	"salesdash/pkg/contracts"
	"salesdash/pkg/contracts/domain"
)

func main() {
	in := flag.String("in", "", "input sales file (.xlsx or .csv)")
	out := flag.String("out", "reports", "output directory for exported CSV files")
	location := flag.String("location", "", "filter by store location (empty = all)")
	category := flag.String("category", "", "filter by product category (empty = all)")
	hour := flag.Int("hour", domain.DefaultHour, "hour of day for the daily revenue view")
	verbose := flag.Bool("v", false, "enable debug logging")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	level := "info"
	if *verbose {
		level = "debug"
	}
	logger := infrastructure.MustInitializeLogger(config.LoggingConfig{
		Level:  level,
		Output: "stdout",
	})

	if err := run(logger, *in, *out, domain.FilterState{
		Location: *location,
		Category: *category,
		Hour:     *hour,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, in, out string, filters domain.FilterState) error {
	ctx := context.Background()

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateDatasetFile(in); err != nil {
		return err
	}
	if err := validator.ValidateOutputDirectory(out); err != nil {
		return err
	}

	file, err := os.Open(in)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	service := services.NewDashboardService(logger)
	result, err := service.Upload(ctx, filepath.Base(in), file)
	if err != nil {
		return err
	}

	fmt.Printf("Detected columns:\n")
	fmt.Printf("  Date:     %s\n", result.Roles.Date)
	fmt.Printf("  Time:     %s\n", result.Roles.Time)
	fmt.Printf("  Location: %s\n", result.Roles.Location)
	fmt.Printf("  Category: %s\n", result.Roles.Category)
	fmt.Printf("  Amount:   %s\n", result.Roles.Amount)
	for _, warning := range result.Warnings {
		fmt.Printf("Warning: %s\n", warning)
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Transactions:  %d\n", result.Summary.TransactionCount)
	fmt.Printf("  Total revenue: %.2f\n", result.Summary.TotalRevenue)
	fmt.Printf("  Mean value:    %.2f\n", result.Summary.MeanTransaction)
	if result.Summary.MinDate != nil && result.Summary.MaxDate != nil {
		fmt.Printf("  Date range:    %s to %s\n",
			result.Summary.MinDate.Format("2006-01-02"),
			result.Summary.MaxDate.Format("2006-01-02"))
	}

	views, err := service.Views(ctx, filters)
	if err != nil {
		return err
	}

	ds, err := service.Current()
	if err != nil {
		return err
	}

	writer := exporter.NewCSVWriter(out)
	if err := writer.WriteViews(views); err != nil {
		return err
	}
	if err := writer.WriteEnrichedTable(ds.Table); err != nil {
		return err
	}

	fmt.Printf("\nExported views to %s\n", out)
	return nil
}
