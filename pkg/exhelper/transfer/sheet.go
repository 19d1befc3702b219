package transfer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/models"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/parser"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/workbook"
	"github.com/xuri/excelize/v2"
)

// CopySheet copies the values, column widths and row heights of a sheet into
// another workbook, which is created when missing. position is the 1-based
// place of the copy among the destination sheets; 0 appends it. A name
// already taken in the destination gets a " (2)" style suffix.
func CopySheet(srcPath, dstPath string, ref workbook.SheetRef, position int) (models.SheetInfo, error) {
	if sameFile(srcPath, dstPath) {
		return models.SheetInfo{}, fmt.Errorf("%w: source and destination are the same workbook", workbook.ErrInvalidArgument)
	}
	src, err := workbook.Open(srcPath, workbook.OpenOptions{ReadOnly: true})
	if err != nil {
		return models.SheetInfo{}, err
	}
	defer src.Close()

	srcInfo, err := src.Lookup(ref)
	if err != nil {
		return models.SheetInfo{}, err
	}

	dst, err := workbook.OpenOrCreate(dstPath)
	if err != nil {
		return models.SheetInfo{}, err
	}
	defer dst.Close()

	fresh := dst.IsNew()
	count := len(dst.File().GetSheetList())
	if fresh {
		count = 0
	}
	if position < 0 || position > count+1 {
		return models.SheetInfo{}, fmt.Errorf("%w: position %d outside 1..%d", workbook.ErrInvalidArgument, position, count+1)
	}

	name := dst.UniqueSheetName(srcInfo.Name)
	if fresh {
		if err := dst.RenameSheet(workbook.ByIndex(1), name); err != nil {
			return models.SheetInfo{}, err
		}
	} else if _, err := dst.CreateSheet(name); err != nil {
		return models.SheetInfo{}, err
	}

	if err := copyContents(src.File(), srcInfo.Name, dst.File(), name); err != nil {
		return models.SheetInfo{}, err
	}
	if position > 0 && position <= count {
		before := dst.File().GetSheetName(position - 1)
		if err := dst.MoveSheet(workbook.ByName(name), workbook.ByName(before)); err != nil {
			return models.SheetInfo{}, err
		}
	}
	if !srcInfo.Visible {
		if count == 0 {
			logrus.WithField("sheet", name).Warn("Copied sheet kept visible as the only sheet of the workbook")
		} else if err := dst.HideSheet(workbook.ByName(name)); err != nil {
			return models.SheetInfo{}, err
		}
	}
	dst.Touch()
	if err := dst.Save(); err != nil {
		return models.SheetInfo{}, err
	}

	info, err := dst.Lookup(workbook.ByName(name))
	if err != nil {
		return models.SheetInfo{}, err
	}
	logrus.WithFields(logrus.Fields{
		"source":   srcInfo.Name,
		"target":   info.Name,
		"position": info.Index,
		"path":     dstPath,
	}).Info("Sheet copied between workbooks")
	return info, nil
}

func copyContents(src *excelize.File, srcSheet string, dst *excelize.File, dstSheet string) error {
	area, ok, err := parser.UsedArea(src, srcSheet)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	area.R1, area.C1 = 1, 1

	values, err := readValues(src, srcSheet, area)
	if err != nil {
		return err
	}
	if err := writeValues(dst, dstSheet, area, values); err != nil {
		return err
	}

	for c := area.C1; c <= area.C2; c++ {
		col, err := excelize.ColumnNumberToName(c)
		if err != nil {
			return err
		}
		width, err := src.GetColWidth(srcSheet, col)
		if err != nil {
			return err
		}
		if err := dst.SetColWidth(dstSheet, col, col, width); err != nil {
			return err
		}
	}
	for r := area.R1; r <= area.R2; r++ {
		height, err := src.GetRowHeight(srcSheet, r)
		if err != nil {
			return err
		}
		if err := dst.SetRowHeight(dstSheet, r, height); err != nil {
			return err
		}
	}
	return nil
}

func sameFile(a, b string) bool {
	if a == b {
		return true
	}
	infoA, errA := os.Stat(a)
	infoB, errB := os.Stat(b)
	if errA == nil && errB == nil {
		return os.SameFile(infoA, infoB)
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
