package style

import (
	"fmt"
	"math"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/locator"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/workbook"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/width"
)

const (
	defaultFontSize = 11.0
	// lineHeightRatio turns a font size into a row height: 11pt text sits in
	// a 15pt row.
	lineHeightRatio = 15.0 / 11.0
	// cellPadding is the width Excel adds around text, in character units.
	cellPadding  = 1.0
	maxColWidth  = 255.0
	maxRowHeight = 409.0
)

// AutoFitColumn sets a column's width to fit its longest line of text and
// returns the new width in character units. A column without text keeps its
// width.
func AutoFitColumn(wb *workbook.Workbook, sheetName string, column locator.Column) (float64, error) {
	col, err := column.Number()
	if err != nil {
		return 0, err
	}
	sheet, err := wb.Sheet(sheetName)
	if err != nil {
		return 0, err
	}
	f := wb.File()
	colName, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return 0, err
	}

	widest := 0.0
	for r := 1; r <= sheet.MaxRow(); r++ {
		value, ok := sheet.Value(r, col)
		if !ok {
			continue
		}
		size, err := fontSize(f, sheet.Name(), col, r)
		if err != nil {
			return 0, err
		}
		for _, line := range strings.Split(value, "\n") {
			widest = math.Max(widest, TextWidth(line)*size/defaultFontSize)
		}
	}

	log := logrus.WithFields(logrus.Fields{"sheet": sheet.Name(), "column": colName})
	if widest == 0 {
		current, err := f.GetColWidth(sheet.Name(), colName)
		if err != nil {
			return 0, err
		}
		log.Warn("Column has no text to fit")
		return current, nil
	}
	w := math.Min(math.Ceil((widest+cellPadding)*100)/100, maxColWidth)
	if err := f.SetColWidth(sheet.Name(), colName, colName, w); err != nil {
		return 0, err
	}
	wb.Touch()
	log.WithField("width", w).Info("Column width fitted")
	return w, nil
}

// AutoFitRow sets a row's height to fit its tallest cell and returns the new
// height in points.
func AutoFitRow(wb *workbook.Workbook, sheetName string, row int) (float64, error) {
	if row < 1 || row > excelize.TotalRows {
		return 0, fmt.Errorf("%w: row %d out of range", workbook.ErrInvalidArgument, row)
	}
	sheet, err := wb.Sheet(sheetName)
	if err != nil {
		return 0, err
	}
	f := wb.File()

	tallest := defaultFontSize * lineHeightRatio
	for c := 1; c <= sheet.MaxColumn(); c++ {
		value, ok := sheet.Value(row, c)
		if !ok {
			continue
		}
		size, err := fontSize(f, sheet.Name(), c, row)
		if err != nil {
			return 0, err
		}
		lines := float64(strings.Count(value, "\n") + 1)
		tallest = math.Max(tallest, lines*size*lineHeightRatio)
	}

	h := math.Min(math.Round(tallest*100)/100, maxRowHeight)
	if err := f.SetRowHeight(sheet.Name(), row, h); err != nil {
		return 0, err
	}
	wb.Touch()
	logrus.WithFields(logrus.Fields{"sheet": sheet.Name(), "row": row, "height": h}).Info("Row height fitted")
	return h, nil
}

// TextWidth measures text in character units, counting East Asian wide and
// fullwidth characters as two.
func TextWidth(s string) float64 {
	n := 0.0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

func fontSize(f *excelize.File, sheet string, col, row int) (float64, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return 0, err
	}
	id, err := f.GetCellStyle(sheet, cell)
	if err != nil {
		return 0, err
	}
	s, err := f.GetStyle(id)
	if err != nil || s.Font == nil || s.Font.Size == 0 {
		return defaultFontSize, nil
	}
	return s.Font.Size, nil
}
