// Package locator finds the last populated row or column of a sheet, either
// sheet-wide or along a contiguous run starting at an anchor cell.
package locator

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ErrInvalidArgument reports a row/column combination that cannot be
// answered, such as a column without a row for a column extent.
var ErrInvalidArgument = errors.New("invalid argument")

const (
	// EmptyAnchor is returned when the anchor cell itself holds no value.
	EmptyAnchor = 0
	// NoData is returned when the sheet reports no populated rows or columns.
	NoData = 1
)

// Sheet is the read-only view of a loaded worksheet the locator scans.
type Sheet interface {
	// Name identifies the sheet in log output.
	Name() string
	// MaxRow is the reported last populated row. It may overstate.
	MaxRow() int
	// MaxColumn is the reported last populated column. It may overstate.
	MaxColumn() int
	// Value returns the cell's display value and whether it is non-empty.
	Value(row, col int) (string, bool)
}

// Query selects the scan. Row 0 and the zero Column mean "not given".
type Query struct {
	Row    int
	Column Column
}

// FindLastColumn returns the last populated column.
//
// With both row and column it walks right from the anchor and returns the
// column before the first empty cell, the bound when none is empty, or
// EmptyAnchor when the anchor is empty. With only a row it walks left from the
// bound and returns the first populated column, or EmptyAnchor for an empty
// row. Without arguments it returns the bound. A column without a row is an
// ErrInvalidArgument. A sheet reporting no columns yields NoData.
func FindLastColumn(sheet Sheet, q Query) (int, error) {
	bound := sheet.MaxColumn()
	log := logrus.WithField("sheet", sheet.Name())
	log.WithField("bound", bound).Debug("Last column in the sheet")

	if bound <= 0 {
		log.Warn("No columns found in the sheet")
		return NoData, nil
	}

	if !q.Column.IsZero() && q.Row == 0 {
		return 0, fmt.Errorf("%w: row required when column is specified", ErrInvalidArgument)
	}
	if q.Row < 0 {
		return 0, fmt.Errorf("%w: row %d out of range", ErrInvalidArgument, q.Row)
	}

	if q.Row > 0 && !q.Column.IsZero() {
		col, err := q.Column.Number()
		if err != nil {
			return 0, err
		}
		log = log.WithFields(logrus.Fields{"row": q.Row, "column": col})
		if _, ok := sheet.Value(q.Row, col); !ok {
			log.Info("Anchor cell is empty")
			return EmptyAnchor, nil
		}
		last := scanForward(bound, col, func(c int) bool {
			_, ok := sheet.Value(q.Row, c)
			return ok
		})
		log.WithField("result", last).Info("Last column with data from anchor cell")
		return last, nil
	}

	if q.Row > 0 {
		log = log.WithField("row", q.Row)
		last := scanBackward(bound, func(c int) bool {
			_, ok := sheet.Value(q.Row, c)
			return ok
		})
		log.WithField("result", last).Info("Last column with data in row")
		return last, nil
	}

	log.WithField("result", bound).Info("Last column in the sheet")
	return bound, nil
}

// FindLastRow is the row-wise mirror of FindLastColumn: a row without a
// column is an ErrInvalidArgument, an anchored scan walks down, and a
// column-only scan walks up from the bound.
func FindLastRow(sheet Sheet, q Query) (int, error) {
	bound := sheet.MaxRow()
	log := logrus.WithField("sheet", sheet.Name())
	log.WithField("bound", bound).Debug("Last row in the sheet")

	if bound <= 0 {
		log.Warn("No rows found in the sheet")
		return NoData, nil
	}

	if q.Row != 0 && q.Column.IsZero() {
		return 0, fmt.Errorf("%w: column required when row is specified", ErrInvalidArgument)
	}
	if q.Row < 0 {
		return 0, fmt.Errorf("%w: row %d out of range", ErrInvalidArgument, q.Row)
	}

	if q.Column.IsZero() {
		log.WithField("result", bound).Info("Last row in the sheet")
		return bound, nil
	}

	col, err := q.Column.Number()
	if err != nil {
		return 0, err
	}
	log = log.WithField("column", col)

	if q.Row > 0 {
		log = log.WithField("row", q.Row)
		if _, ok := sheet.Value(q.Row, col); !ok {
			log.Info("Anchor cell is empty")
			return EmptyAnchor, nil
		}
		last := scanForward(bound, q.Row, func(r int) bool {
			_, ok := sheet.Value(r, col)
			return ok
		})
		log.WithField("result", last).Info("Last row with data from anchor cell")
		return last, nil
	}

	last := scanBackward(bound, func(r int) bool {
		_, ok := sheet.Value(r, col)
		return ok
	})
	log.WithField("result", last).Info("Last row with data in column")
	return last, nil
}

// scanForward walks from start to bound and returns the index before the
// first unpopulated one, or bound when every index is populated or start
// already lies past bound.
func scanForward(bound, start int, populated func(int) bool) int {
	for i := start; i <= bound; i++ {
		if !populated(i) {
			return i - 1
		}
	}
	return bound
}

// scanBackward walks from bound down to 1 and returns the first populated
// index, or EmptyAnchor when there is none.
func scanBackward(bound int, populated func(int) bool) int {
	for i := bound; i >= 1; i-- {
		if populated(i) {
			return i
		}
	}
	return EmptyAnchor
}
