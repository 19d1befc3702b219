package exhelper

import (
	"github.com/ukaji3/exhelper-go/pkg/exhelper/locator"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/workbook"
)

// LastColumn opens the workbook at path and returns the last populated
// column for q. See locator.FindLastColumn for the result conventions.
//
// The workbook is loaded on every call and closed before returning.
func LastColumn(path string, opts Options, q locator.Query) (int, error) {
	return withSheet(path, opts, "last_column", func(s *workbook.Sheet) (int, error) {
		return locator.FindLastColumn(s, q)
	})
}

// LastRow opens the workbook at path and returns the last populated row for
// q. See locator.FindLastRow for the result conventions.
func LastRow(path string, opts Options, q locator.Query) (int, error) {
	return withSheet(path, opts, "last_row", func(s *workbook.Sheet) (int, error) {
		return locator.FindLastRow(s, q)
	})
}

func withSheet(path string, opts Options, operation string, fn func(*workbook.Sheet) (int, error)) (int, error) {
	wb, err := workbook.Open(path, workbook.OpenOptions{
		ReadOnly: opts.ShouldOpenReadOnly(),
		Password: opts.Password,
	})
	if err != nil {
		return 0, NewOperationError(path, opts.SheetName, operation, err)
	}
	defer wb.Close()

	sheet, err := wb.Sheet(opts.SheetName)
	if err != nil {
		return 0, NewOperationError(path, opts.SheetName, operation, err)
	}
	result, err := fn(sheet)
	if err != nil {
		return 0, NewOperationError(path, sheet.Name(), operation, err)
	}
	return result, nil
}
