package parser

import (
	"github.com/ukaji3/exhelper-go/pkg/exhelper/models"
	"github.com/xuri/excelize/v2"
)

// UsedArea returns the bounding box of the non-empty cells of a sheet.
// ok is false when the sheet holds no values.
func UsedArea(f *excelize.File, sheetName string) (area models.Area, ok bool, err error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return models.Area{}, false, err
	}
	area, ok = DataBounds(rows)
	return area, ok, nil
}

// DataBounds finds the 1-based bounding box of non-empty cells.
func DataBounds(rows [][]string) (models.Area, bool) {
	minRow, maxRow := -1, -1
	minCol, maxCol := -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell != "" {
				if minRow < 0 || rowIdx < minRow {
					minRow = rowIdx
				}
				if maxRow < 0 || rowIdx > maxRow {
					maxRow = rowIdx
				}
				if minCol < 0 || colIdx < minCol {
					minCol = colIdx
				}
				if maxCol < 0 || colIdx > maxCol {
					maxCol = colIdx
				}
			}
		}
	}

	if minRow < 0 {
		return models.Area{}, false
	}
	return models.Area{R1: minRow + 1, C1: minCol + 1, R2: maxRow + 1, C2: maxCol + 1}, true
}
