package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/frzanini/downloadSiegHub/internal/dfe"
)

// Row is one exported line: the canonical record plus where its XML landed.
type Row struct {
	Record      dfe.Record
	ArchivePath string
}

// Service produces XLSX bytes from canonical records.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// ExportRecordsXLSX returns an XLSX workbook (as bytes) with one row per
// processed document, failures included.
func (s *Service) ExportRecordsXLSX(rows []Row) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Documents"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	// Drop the default sheet excelize creates alongside ours.
	if index, _ := f.GetSheetIndex("Sheet1"); index != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	headers := []string{
		"Document Type",
		"Access Key",
		"Issuer",
		"Recipient",
		"Emission Date",
		"Protocol",
		"Event Type",
		"Event Sequence",
		"Event Date",
		"Status",
		"Status Reason",
		"Error",
		"Archive Path",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	rowIdx := 2
	for _, r := range rows {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, rowIdx)
			_ = f.SetCellValue(sheet, cell, v)
		}

		rec := r.Record
		write(1, rec.DocumentKind)
		write(2, rec.AccessKey)
		write(3, rec.IssuerID)
		write(4, rec.RecipientID)
		write(5, rec.EmissionDate)
		write(6, rec.Protocol)
		write(7, rec.EventType)
		write(8, rec.EventSequence)
		write(9, rec.EventDate)
		write(10, rec.StatusCode)
		write(11, rec.StatusReason)
		write(12, truncate(rec.Error, 140))
		write(13, r.ArchivePath)

		rowIdx++
	}

	// Widen the columns that carry long values
	_ = f.SetColWidth(sheet, "B", "B", 48) // access key
	_ = f.SetColWidth(sheet, "C", "D", 18) // tax ids
	_ = f.SetColWidth(sheet, "E", "E", 20) // date
	_ = f.SetColWidth(sheet, "K", "L", 40) // reason / error
	_ = f.SetColWidth(sheet, "M", "M", 60) // path

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(rows),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
