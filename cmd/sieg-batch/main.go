package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/frzanini/downloadSiegHub/internal/archive"
	"github.com/frzanini/downloadSiegHub/internal/common"
	"github.com/frzanini/downloadSiegHub/internal/dfe"
	"github.com/frzanini/downloadSiegHub/internal/export"
	"github.com/frzanini/downloadSiegHub/internal/pipeline"
	"github.com/frzanini/downloadSiegHub/internal/sieg"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	// Parse CLI flags
	var (
		fromStr = flag.String("from", "", "first emission day YYYY-MM-DD (required)")
		toStr   = flag.String("to", "", "last emission day YYYY-MM-DD (defaults to --from)")
		root    = flag.String("root", "", "archive root directory (overrides ARCHIVE_ROOT)")
		out     = flag.String("out", "", "output XLSX file path (optional, defaults to <root>/documents.xlsx)")
	)
	flag.Parse()

	if *fromStr == "" {
		printError("Error: --from is required\n")
		os.Exit(1)
	}
	from, err := time.Parse("2006-01-02", *fromStr)
	if err != nil {
		printError("Error: invalid --from date format, use YYYY-MM-DD: %v\n", err)
		os.Exit(1)
	}
	to := from
	if *toStr != "" {
		if to, err = time.Parse("2006-01-02", *toStr); err != nil {
			printError("Error: invalid --to date format, use YYYY-MM-DD: %v\n", err)
			os.Exit(1)
		}
	}
	if to.Before(from) {
		printError("Error: --to is before --from\n")
		os.Exit(1)
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	// Load configuration
	cfg := common.LoadConfig()
	if *root != "" {
		cfg.Archive.Root = *root
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if *out == "" {
		*out = filepath.Join(cfg.Archive.Root, "documents.xlsx")
	}

	// Wire the pipeline
	client := sieg.NewClient(cfg.Sieg, logger)
	parser := dfe.NewParser(logger)
	writer := archive.NewWriter(cfg.Archive.Root, logger)
	processor := pipeline.NewProcessor(logger, parser, writer)
	exportService := export.NewService(logger)

	var rows []export.Row
	var total pipeline.Stats

	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		logger.Info("processing day", "day", day.Format("2006-01-02"))

		err := client.DownloadDay(ctx, day, func(t sieg.XmlType, blobs []string) error {
			items, stats := processor.ProcessBatch(ctx, day, t, blobs)
			for _, item := range items {
				rows = append(rows, export.Row{Record: item.Record, ArchivePath: item.ArchivePath})
			}
			total.Received += stats.Received
			total.Decoded += stats.Decoded
			total.Parsed += stats.Parsed
			total.Failed += stats.Failed
			total.Archived += stats.Archived
			return nil
		})
		if err != nil {
			logger.Error("failed to download day", "day", day.Format("2006-01-02"), "error", err)
			os.Exit(1)
		}
	}

	// Export to XLSX
	logger.Info("exporting to XLSX", "output", *out)
	xlsxBytes, err := exportService.ExportRecordsXLSX(rows)
	if err != nil {
		logger.Error("failed to export records", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, xlsxBytes, 0o644); err != nil {
		logger.Error("failed to write output file", "error", err)
		os.Exit(1)
	}

	// Log summary
	logger.Info("batch download complete",
		"documents_received", total.Received,
		"parsed", total.Parsed,
		"failed", total.Failed,
		"archived", total.Archived,
		"output_file", *out)

	fmt.Printf("Batch download complete!\n")
	fmt.Printf("- Documents received: %d\n", total.Received)
	fmt.Printf("- Parsed: %d\n", total.Parsed)
	fmt.Printf("- Failures: %d\n", total.Failed)
	fmt.Printf("- Output: %s\n", *out)
}
