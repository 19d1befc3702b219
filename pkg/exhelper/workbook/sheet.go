package workbook

import (
	"github.com/ukaji3/exhelper-go/pkg/exhelper/parser"
	"github.com/xuri/excelize/v2"
)

// Sheet is a snapshot of one worksheet's values taken when it was requested.
// It satisfies locator.Sheet.
type Sheet struct {
	name string
	grid *parser.Grid
}

func loadSheet(f *excelize.File, name string) (*Sheet, error) {
	grid, err := parser.ReadGrid(f, name)
	if err != nil {
		return nil, err
	}
	return &Sheet{name: name, grid: grid}, nil
}

// Name returns the sheet name.
func (s *Sheet) Name() string { return s.name }

// MaxRow is the larger of the stored dimension and the last row with a value.
func (s *Sheet) MaxRow() int { return s.grid.MaxRow }

// MaxColumn is the larger of the stored dimension and the last column with
// a value.
func (s *Sheet) MaxColumn() int { return s.grid.MaxCol }

// Value returns the display value at a 1-based coordinate.
func (s *Sheet) Value(row, col int) (string, bool) {
	return s.grid.Value(row, col)
}

// Grid exposes the loaded values.
func (s *Sheet) Grid() *parser.Grid { return s.grid }
