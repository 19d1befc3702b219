package exhelper

import (
	"fmt"

	"github.com/ukaji3/exhelper-go/pkg/exhelper/locator"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/workbook"
)

// Errors callers can match with errors.Is.
var (
	ErrInvalidArgument  = locator.ErrInvalidArgument
	ErrFileNotFound     = workbook.ErrFileNotFound
	ErrCorruptFile      = workbook.ErrCorruptFile
	ErrPasswordRequired = workbook.ErrPasswordRequired
	ErrLegacyFormat     = workbook.ErrLegacyFormat
	ErrSheetNotFound    = workbook.ErrSheetNotFound
)

// OperationError represents a failure of one helper on one workbook.
type OperationError struct {
	Path      string
	SheetName string
	Operation string // "last_column", "last_row", "copy_range", ...
	Err       error
}

func (e *OperationError) Error() string {
	if e.SheetName == "" {
		return fmt.Sprintf("%s failed for %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("%s failed for %s (sheet %q): %v", e.Operation, e.Path, e.SheetName, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// NewOperationError creates a new OperationError.
func NewOperationError(path, sheetName, operation string, err error) *OperationError {
	return &OperationError{
		Path:      path,
		SheetName: sheetName,
		Operation: operation,
		Err:       err,
	}
}
