// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/transinfo/paperextractor/internal/batch"
	"github.com/transinfo/paperextractor/pkg/types"
)

const (
	defaultSheetName      = "Paper Metadata"
	defaultMaxColumnWidth = 50
)

// Export loads the result document at jsonPath, flattens every successful
// entry into one row, and writes a single-sheet workbook to xlsxPath with
// columns auto-sized to the longest value (capped). It returns the number
// of rows written.
func Export(jsonPath, xlsxPath string, cfg types.ExportConfig) (int, error) {
	doc, err := batch.ReadResultDocument(jsonPath)
	if err != nil {
		return 0, err
	}

	sheet := cfg.SheetName
	if sheet == "" {
		sheet = defaultSheetName
	}
	maxWidth := cfg.MaxColumnWidth
	if maxWidth <= 0 {
		maxWidth = defaultMaxColumnWidth
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return 0, fmt.Errorf("naming sheet: %w", err)
	}

	widths := make([]float64, len(Columns))
	header := make([]any, len(Columns))
	for i, col := range Columns {
		header[i] = col
		widths[i] = float64(utf8.RuneCountInString(col))
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return 0, fmt.Errorf("writing header row: %w", err)
	}

	rows := 0
	for _, entry := range doc.Papers {
		if entry.Status != types.StatusSuccess || entry.Paper == nil {
			continue
		}
		row := FlattenPaper(entry.Paper)
		cell, err := excelize.CoordinatesToCellName(1, rows+2)
		if err != nil {
			return 0, fmt.Errorf("computing cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return 0, fmt.Errorf("writing row %d: %w", rows+2, err)
		}
		for i, v := range row {
			if w := float64(utf8.RuneCountInString(fmt.Sprint(v))); w > widths[i] {
				widths[i] = w
			}
		}
		rows++
	}

	for i := range Columns {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return 0, fmt.Errorf("computing column name: %w", err)
		}
		width := widths[i] + 2
		if width > maxWidth {
			width = maxWidth
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return 0, fmt.Errorf("setting width of column %s: %w", col, err)
		}
	}

	if err := f.SaveAs(xlsxPath); err != nil {
		return 0, fmt.Errorf("saving workbook %s: %w", xlsxPath, err)
	}
	return rows, nil
}
