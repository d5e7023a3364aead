package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/invoice-extractor/constants"
	"github.com/joseph-ayodele/invoice-extractor/internal/common"
	"github.com/joseph-ayodele/invoice-extractor/internal/entity"
)

const defaultSheet = "Dati"

// Service renders batch rows as an XLSX workbook or a JSON document.
type Service struct {
	sheet  string
	logger *slog.Logger
}

func NewService(sheet string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if sheet == "" {
		sheet = defaultSheet
	}
	return &Service{sheet: sheet, logger: logger}
}

// RowsXLSX returns a single-sheet workbook: one header row, then the rows in
// order.
func (s *Service) RowsXLSX(ctx context.Context, rows []entity.OutputRow) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), s.sheet); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}
	sheet := s.sheet

	for i, h := range constants.Headers() {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for r, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for c, v := range row.Cells() {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("set %s: %w", cell, err)
			}
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 22) // document number
	_ = f.SetColWidth(sheet, "B", "B", 14) // document date
	_ = f.SetColWidth(sheet, "C", "C", 16) // PO
	_ = f.SetColWidth(sheet, "D", "E", 14) // DDT number, date
	_ = f.SetColWidth(sheet, "F", "F", 20) // subtotal
	_ = f.SetColWidth(sheet, "G", "G", 10) // quantity

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"sheet", sheet,
		"rows", len(rows),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// WriteXLSX writes the workbook to path.
func (s *Service) WriteXLSX(ctx context.Context, path string, rows []entity.OutputRow) error {
	b, err := s.RowsXLSX(ctx, rows)
	if err != nil {
		return common.NewAppError("EXPORT_ERROR", "build workbook", fmt.Errorf("%w: %w", common.ErrExport, err))
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return common.NewAppError("EXPORT_ERROR", "write "+path, fmt.Errorf("%w: %w", common.ErrExport, err))
	}
	return nil
}
