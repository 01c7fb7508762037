package views

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ExportSheet names the worksheet of an XLSX grid export
const ExportSheet = "alleles"

// WriteGridXLSX writes the grid as a one-sheet workbook with numeric count and length cells
func WriteGridXLSX(w io.Writer, grid Grid) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExportSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(grid.Columns))
	for i, col := range grid.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(ExportSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range grid.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{r.Sample, r.Count, r.Length, r.Allele, r.Sex}
		if err := f.SetSheetRow(ExportSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	return f.Write(w)
}

// WriteGridTSV writes the grid as tab-separated text with a header line
func WriteGridTSV(w io.Writer, grid Grid) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if err := cw.Write(grid.Columns); err != nil {
		return err
	}
	for _, r := range grid.Rows {
		if err := cw.Write(r.Cells()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
