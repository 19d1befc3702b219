// Package search finds cells by their displayed text or by their formulas.
package search

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/models"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/parser"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/workbook"
	"github.com/xuri/excelize/v2"
)

// Options narrows a search.
type Options struct {
	// ExactMatch requires the whole cell text to equal the search text.
	// Otherwise a substring match is enough.
	ExactMatch bool
	// Filter keeps only formulas containing this text. Formula search only.
	Filter string
	// Range limits the search to an A1 range. Empty means the sheet bounds.
	Range string
}

// FindCellsWithText returns the cells whose display text matches text, in
// row-major order. Empty cells never match.
func FindCellsWithText(wb *workbook.Workbook, sheetName, text string, opts Options) ([]models.CellMatch, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: search text is required", workbook.ErrInvalidArgument)
	}
	sheet, err := wb.Sheet(sheetName)
	if err != nil {
		return nil, err
	}
	area, ok, err := searchArea(sheet, opts.Range)
	if err != nil || !ok {
		return nil, err
	}

	log := logrus.WithFields(logrus.Fields{"sheet": sheet.Name(), "text": text, "exact": opts.ExactMatch})
	var matches []models.CellMatch
	for r := area.R1; r <= area.R2; r++ {
		for c := area.C1; c <= area.C2; c++ {
			value, ok := sheet.Value(r, c)
			if !ok || !textMatches(value, text, opts.ExactMatch) {
				continue
			}
			m := newMatch(r, c, value)
			log.WithField("cell", m.Cell).Debug("Found matching cell")
			matches = append(matches, m)
		}
	}
	if len(matches) == 0 {
		log.Warn("No cells found with the given text")
	} else {
		log.WithField("count", len(matches)).Info("Cells with text found")
	}
	return matches, nil
}

// FindFormulaCells returns the cells holding a formula, in row-major order.
// With opts.Filter set, only formulas containing the filter text are kept.
func FindFormulaCells(wb *workbook.Workbook, sheetName string, opts Options) ([]models.CellMatch, error) {
	sheet, err := wb.Sheet(sheetName)
	if err != nil {
		return nil, err
	}
	area, ok, err := searchArea(sheet, opts.Range)
	if err != nil || !ok {
		return nil, err
	}

	f := wb.File()
	log := logrus.WithFields(logrus.Fields{"sheet": sheet.Name(), "filter": opts.Filter})
	var matches []models.CellMatch
	for r := area.R1; r <= area.R2; r++ {
		for c := area.C1; c <= area.C2; c++ {
			cell, err := excelize.CoordinatesToCellName(c, r)
			if err != nil {
				return nil, err
			}
			formula, err := f.GetCellFormula(sheet.Name(), cell)
			if err != nil {
				return nil, err
			}
			if formula == "" || (opts.Filter != "" && !strings.Contains(formula, opts.Filter)) {
				continue
			}
			log.WithFields(logrus.Fields{"cell": cell, "formula": formula}).Debug("Found formula cell")
			matches = append(matches, newMatch(r, c, formula))
		}
	}
	log.WithField("count", len(matches)).Info("Formula cells found")
	return matches, nil
}

// searchArea resolves the range to scan. ok is false when the sheet has
// nothing to scan.
func searchArea(sheet *workbook.Sheet, ref string) (models.Area, bool, error) {
	if strings.TrimSpace(ref) != "" {
		area, err := parser.ParseRange(ref)
		if err != nil {
			if errors.Is(err, parser.ErrInvalidRange) {
				return models.Area{}, false, fmt.Errorf("%w: %v", workbook.ErrInvalidArgument, err)
			}
			return models.Area{}, false, err
		}
		return area, true, nil
	}
	rows, cols := sheet.Grid().Extent()
	rows, cols = max(rows, sheet.MaxRow()), max(cols, sheet.MaxColumn())
	if rows == 0 || cols == 0 {
		return models.Area{}, false, nil
	}
	return models.Area{R1: 1, C1: 1, R2: rows, C2: cols}, true, nil
}

func textMatches(value, text string, exact bool) bool {
	if exact {
		return value == text
	}
	return strings.Contains(value, text)
}

func newMatch(row, col int, value string) models.CellMatch {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	return models.CellMatch{
		CellRef: models.CellRef{R: row, C: col},
		Cell:    cell,
		Value:   value,
	}
}
