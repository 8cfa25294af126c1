package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/frzanini/downloadSiegHub/constants"
	"github.com/frzanini/downloadSiegHub/internal/dfe"
	"github.com/frzanini/downloadSiegHub/internal/export"
)

// dfe-parse re-extracts canonical records from an already-archived XML tree
// and writes them to an XLSX workbook, without touching the network.
func main() {
	var (
		dir = flag.String("dir", "", "directory of fiscal XML files to parse (required)")
		out = flag.String("out", "", "output XLSX file path (optional, defaults to <dir>/../documents.xlsx)")
	)
	flag.Parse()

	if *dir == "" {
		fmt.Fprintln(os.Stderr, "Error: --dir is required")
		os.Exit(1)
	}
	if *out == "" {
		*out = filepath.Join(filepath.Dir(*dir), "documents.xlsx")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	parser := dfe.NewParser(logger)

	var rows []export.Row
	scanned, parsed, failed := 0, 0, 0

	err := filepath.WalkDir(*dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			logger.Warn("walk error", "path", path, "error", walkErr)
			return nil
		}
		if d.IsDir() {
			if constants.IsHidden(d.Name()) && path != *dir {
				return filepath.SkipDir
			}
			return nil
		}
		if constants.IsHidden(d.Name()) || !constants.AllowedExt(filepath.Ext(path)) {
			return nil
		}

		scanned++
		raw, err := os.ReadFile(path)
		if err != nil {
			logger.Error("read failed", "path", path, "error", err)
			failed++
			rows = append(rows, export.Row{Record: dfe.Record{Error: err.Error()}, ArchivePath: path})
			return nil
		}

		rec := parser.Process(string(raw))
		if rec.OK() {
			parsed++
		} else {
			failed++
		}
		rows = append(rows, export.Row{Record: rec, ArchivePath: path})
		return nil
	})
	if err != nil {
		logger.Error("failed to walk directory", "dir", *dir, "error", err)
		os.Exit(1)
	}

	exportService := export.NewService(logger)
	xlsxBytes, err := exportService.ExportRecordsXLSX(rows)
	if err != nil {
		logger.Error("failed to export records", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, xlsxBytes, 0o644); err != nil {
		logger.Error("failed to write output file", "error", err)
		os.Exit(1)
	}

	logger.Info("parse complete", "scanned", scanned, "parsed", parsed, "failed", failed, "output_file", *out)

	fmt.Printf("Parse complete!\n")
	fmt.Printf("- Files scanned: %d\n", scanned)
	fmt.Printf("- Parsed: %d\n", parsed)
	fmt.Printf("- Failures: %d\n", failed)
	fmt.Printf("- Output: %s\n", *out)
}
