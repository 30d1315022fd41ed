// Package spreadsheet decodes xlsx workbooks into raw rows.
package spreadsheet

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/xiaot623/gogo/venueboard/internal/domain"
)

// Decode reads sheet from the workbook in r. An empty sheet name selects the
// first sheet. The first row holds the column headers. Cells stored as numbers
// or dates become float64; text cells stay strings even when they look
// numeric. Empty cells are omitted and blank rows are skipped.
func Decode(r io.Reader, sheet string) ([]domain.RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	grid := make([][]any, len(raw))
	for r, cells := range raw {
		grid[r] = make([]any, len(cells))
		for c, cell := range cells {
			if cell == "" || r == 0 {
				grid[r][c] = cell
				continue
			}
			name, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, fmt.Errorf("cell at row %d column %d: %w", r+1, c+1, err)
			}
			typ, err := f.GetCellType(sheet, name)
			if err != nil {
				return nil, fmt.Errorf("cell %s: %w", name, err)
			}
			grid[r][c] = cellValue(typ, cell)
		}
	}
	return FromGrid(grid), nil
}

// FromGrid converts a header row plus data rows into raw rows. Header cells
// are formatted and trimmed; data values are kept as given, except that nil
// and empty strings are dropped.
func FromGrid(grid [][]any) []domain.RawRow {
	if len(grid) == 0 {
		return []domain.RawRow{}
	}
	headers := make([]string, len(grid[0]))
	for i, h := range grid[0] {
		if h != nil {
			headers[i] = strings.TrimSpace(fmt.Sprint(h))
		}
	}

	rows := make([]domain.RawRow, 0, len(grid)-1)
	for _, cells := range grid[1:] {
		row := make(domain.RawRow)
		for i, cell := range cells {
			if i >= len(headers) || headers[i] == "" || cell == nil || cell == "" {
				continue
			}
			row[headers[i]] = cell
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows
}

// cellValue converts numeric and date cells to float64. Shared, inline and
// formula strings, booleans and errors keep their text.
func cellValue(typ excelize.CellType, cell string) any {
	switch typ {
	case excelize.CellTypeUnset, excelize.CellTypeNumber, excelize.CellTypeDate:
		if f, err := strconv.ParseFloat(cell, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f
		}
	}
	return cell
}
