package workbook

import (
	"errors"

	"github.com/ukaji3/exhelper-go/pkg/exhelper/locator"
)

var (
	// ErrFileNotFound indicates the workbook path does not exist.
	ErrFileNotFound = errors.New("file not found")
	// ErrCorruptFile indicates the file exists but cannot be read as a workbook.
	ErrCorruptFile = errors.New("corrupt or unreadable workbook")
	// ErrPasswordRequired indicates an encrypted workbook opened without the
	// right password.
	ErrPasswordRequired = errors.New("workbook is password protected")
	// ErrLegacyFormat indicates a binary .xls workbook, which has to be
	// converted through the spreadsheet application first.
	ErrLegacyFormat = errors.New("legacy binary workbook format")
	// ErrSheetNotFound indicates an unknown sheet name or an out-of-range index.
	ErrSheetNotFound = errors.New("sheet not found")
	// ErrReadOnly indicates a write to a workbook opened read-only.
	ErrReadOnly = errors.New("workbook is opened read-only")
	// ErrInvalidArgument is shared with the locator so callers test one value.
	ErrInvalidArgument = locator.ErrInvalidArgument
)
