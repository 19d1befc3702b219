package parser

import (
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Grid is an in-memory snapshot of a sheet's cell display values.
type Grid struct {
	// Rows holds display values; rows and columns are 0-based and ragged.
	Rows [][]string
	// MaxRow is the reported last row: the larger of the stored dimension
	// and the last row holding a value.
	MaxRow int
	// MaxCol is the reported last column, computed like MaxRow.
	MaxCol int
}

// Value returns the display value at the 1-based coordinate and whether the
// cell holds anything. Cells outside the loaded rows are empty.
func (g *Grid) Value(row, col int) (string, bool) {
	if row < 1 || col < 1 || row > len(g.Rows) {
		return "", false
	}
	r := g.Rows[row-1]
	if col > len(r) {
		return "", false
	}
	v := r[col-1]
	return v, v != ""
}

// Extent returns the number of loaded rows and the widest loaded row. It
// counts formula cells without a cached value, which Value reports as empty.
func (g *Grid) Extent() (rows, cols int) {
	for _, r := range g.Rows {
		cols = max(cols, len(r))
	}
	return len(g.Rows), cols
}

// ReadGrid loads every row of a sheet and derives its reported bounds.
func ReadGrid(f *excelize.File, sheetName string) (*Grid, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	g := &Grid{Rows: rows}
	if area, ok := DataBounds(rows); ok {
		g.MaxRow, g.MaxCol = area.R2, area.C2
	}

	dim, err := f.GetSheetDimension(sheetName)
	if err != nil {
		return nil, err
	}
	if r, c, ok := dimensionEnd(dim); ok {
		if r > g.MaxRow {
			g.MaxRow = r
		}
		if c > g.MaxCol {
			g.MaxCol = c
		}
	}
	return g, nil
}

// dimensionEnd returns the bottom-right coordinate of a dimension reference
// such as "A1:D10" or "B2".
func dimensionEnd(ref string) (row, col int, ok bool) {
	ref = strings.ReplaceAll(strings.TrimSpace(ref), "$", "")
	if ref == "" {
		return 0, 0, false
	}
	if idx := strings.LastIndex(ref, ":"); idx >= 0 {
		ref = ref[idx+1:]
	}
	col, row, err := excelize.CellNameToCoordinates(ref)
	if err != nil {
		return 0, 0, false
	}
	return row, col, true
}

// ParseValue converts a raw numeric cell value to int64 when it is integral
// and float64 otherwise. TRUE and FALSE become booleans; anything else is
// returned unchanged.
func ParseValue(s string) interface{} {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if x, err := strconv.ParseFloat(s, 64); err == nil {
		return x
	}
	if b, ok := map[string]bool{"TRUE": true, "FALSE": false}[s]; ok {
		return b
	}
	return s
}

// TypedCellValue reads a cell's raw value and converts it to the Go type
// matching the stored cell type, so values survive a copy unchanged.
func TypedCellValue(f *excelize.File, sheetName, cell string) (interface{}, error) {
	raw, err := f.GetCellValue(sheetName, cell, excelize.Options{RawCellValue: true})
	if err != nil || raw == "" {
		return nil, err
	}
	typ, err := f.GetCellType(sheetName, cell)
	if err != nil {
		return nil, err
	}
	switch typ {
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		return ParseValue(raw), nil
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "TRUE"), nil
	default:
		return raw, nil
	}
}
