// Package transfer copies cell values between sheets and workbooks.
package transfer

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/models"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/parser"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/workbook"
	"github.com/xuri/excelize/v2"
)

// AllCells selects the used range of the source sheet.
const AllCells = "all"

// Source is the range to read.
type Source struct {
	Path  string
	Sheet string // empty means the active sheet
	Range string // A1 range, or AllCells
}

// Target is where the copied values land.
type Target struct {
	Path   string
	Sheet  string // created when missing; empty means the active sheet
	Anchor string // top-left cell, "A1" when empty
}

// CopyRange copies the values of a source range to the target anchor and
// saves the target workbook, creating it when needed. Numbers and booleans
// keep their type; formulas are copied as their cached values. Returns the
// area written in the target sheet.
func CopyRange(src Source, dst Target) (models.Area, error) {
	srcWB, dstWB, err := openPair(src.Path, dst.Path)
	if err != nil {
		return models.Area{}, err
	}
	defer srcWB.Close()
	if dstWB != srcWB {
		defer dstWB.Close()
	}

	srcSheet, err := srcWB.SheetName(src.Sheet)
	if err != nil {
		return models.Area{}, err
	}
	area, err := sourceArea(srcWB.File(), srcSheet, src.Range)
	if err != nil {
		return models.Area{}, err
	}
	anchor := dst.Anchor
	if anchor == "" {
		anchor = "A1"
	}
	col, row, err := excelize.CellNameToCoordinates(strings.ReplaceAll(anchor, "$", ""))
	if err != nil {
		return models.Area{}, fmt.Errorf("%w: anchor %q: %v", workbook.ErrInvalidArgument, anchor, err)
	}
	written := models.Area{R1: row, C1: col, R2: row + area.Rows() - 1, C2: col + area.Cols() - 1}
	if written.R2 > excelize.TotalRows || written.C2 > excelize.MaxColumns {
		return models.Area{}, fmt.Errorf("%w: %d x %d cells do not fit at %s", workbook.ErrInvalidArgument, area.Rows(), area.Cols(), anchor)
	}

	values, err := readValues(srcWB.File(), srcSheet, area)
	if err != nil {
		return models.Area{}, err
	}
	dstSheet, err := targetSheet(dstWB, dst.Sheet)
	if err != nil {
		return models.Area{}, err
	}
	if err := writeValues(dstWB.File(), dstSheet, written, values); err != nil {
		return models.Area{}, err
	}
	dstWB.Touch()
	if err := dstWB.Save(); err != nil {
		return models.Area{}, err
	}

	logrus.WithFields(logrus.Fields{
		"source": fmt.Sprintf("%s!%s", srcSheet, area),
		"target": fmt.Sprintf("%s!%s", dstSheet, written),
		"path":   dstWB.Path(),
	}).Info("Range copied")
	return written, nil
}

// openPair opens the source read-only and the target writable. When both
// paths name the same file a single writable workbook serves both.
func openPair(srcPath, dstPath string) (*workbook.Workbook, *workbook.Workbook, error) {
	if dstPath == "" || sameFile(srcPath, dstPath) {
		wb, err := workbook.Open(srcPath, workbook.OpenOptions{})
		return wb, wb, err
	}
	src, err := workbook.Open(srcPath, workbook.OpenOptions{ReadOnly: true})
	if err != nil {
		return nil, nil, err
	}
	dst, err := workbook.OpenOrCreate(dstPath)
	if err != nil {
		src.Close()
		return nil, nil, err
	}
	return src, dst, nil
}

func sourceArea(f *excelize.File, sheet, ref string) (models.Area, error) {
	if ref == "" || strings.EqualFold(ref, AllCells) {
		area, ok, err := parser.UsedArea(f, sheet)
		if err != nil {
			return models.Area{}, err
		}
		if !ok {
			return models.Area{}, fmt.Errorf("%w: sheet %q has no values to copy", workbook.ErrInvalidArgument, sheet)
		}
		// Keep the sheet's own origin so relative positions survive.
		area.R1, area.C1 = 1, 1
		return area, nil
	}
	area, err := parser.ParseRange(ref)
	if err != nil {
		return models.Area{}, fmt.Errorf("%w: %v", workbook.ErrInvalidArgument, err)
	}
	return area, nil
}

// targetSheet returns the sheet to write into, creating it when missing. A
// freshly created workbook has its default sheet renamed instead so it does
// not keep an empty "Sheet1".
func targetSheet(wb *workbook.Workbook, name string) (string, error) {
	if name == "" || wb.HasSheet(name) {
		return wb.SheetName(name)
	}
	if wb.IsNew() {
		defaultName := wb.File().GetSheetList()[0]
		if err := wb.RenameSheet(workbook.ByName(defaultName), name); err != nil {
			return "", err
		}
		return name, nil
	}
	info, err := wb.CreateSheet(name)
	if err != nil {
		return "", err
	}
	return info.Name, nil
}

func readValues(f *excelize.File, sheet string, area models.Area) ([][]interface{}, error) {
	values := make([][]interface{}, 0, area.Rows())
	for r := area.R1; r <= area.R2; r++ {
		row := make([]interface{}, 0, area.Cols())
		for c := area.C1; c <= area.C2; c++ {
			cell, err := excelize.CoordinatesToCellName(c, r)
			if err != nil {
				return nil, err
			}
			v, err := parser.TypedCellValue(f, sheet, cell)
			if err != nil {
				return nil, err
			}
			row = append(row, v)
		}
		values = append(values, row)
	}
	return values, nil
}

func writeValues(f *excelize.File, sheet string, area models.Area, values [][]interface{}) error {
	for i, row := range values {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(area.C1+j, area.R1+i)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
