// Package app drives a running spreadsheet application through COM
// automation. It covers the operations the xlsx file format alone cannot
// express: PDF export, legacy format conversion and named shape editing.
package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ukaji3/exhelper-go/pkg/exhelper/models"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/workbook"
)

var (
	// ErrUnavailable is returned when no spreadsheet application can be
	// reached, for example on platforms without COM.
	ErrUnavailable = errors.New("spreadsheet application unavailable")

	// ErrShapeNotFound is returned when a named shape does not exist on a sheet.
	ErrShapeNotFound = errors.New("shape not found")
	// ErrNoActiveWorkbook is returned when the application has no workbook open.
	ErrNoActiveWorkbook = errors.New("no active workbook")
)

// FileFormat is the application's file format number used by SaveAs.
type FileFormat int

const (
	// FormatXLSX is the Open XML workbook format (xlOpenXMLWorkbook).
	FormatXLSX FileFormat = 51
	// FormatXLSM is the macro-enabled Open XML format (xlOpenXMLWorkbookMacroEnabled).
	FormatXLSM FileFormat = 52
	// FormatXLS is the legacy binary format (xlExcel8).
	FormatXLS FileFormat = 56
)

var fileFormats = map[string]FileFormat{
	"xlsx": FormatXLSX,
	"xlsm": FormatXLSM,
	"xls":  FormatXLS,
}

// ParseFileFormat parses a format name such as "xlsx". An empty name gives
// the zero FileFormat, which lets SaveActive pick the format from the path.
func ParseFileFormat(s string) (FileFormat, error) {
	s = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
	if s == "" {
		return 0, nil
	}
	f, ok := fileFormats[s]
	if !ok {
		return 0, fmt.Errorf("%w: file format %q", workbook.ErrInvalidArgument, s)
	}
	return f, nil
}

// formatForPath picks the format matching a file extension, xlsx otherwise.
func formatForPath(path string) FileFormat {
	if f, ok := fileFormats[strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))]; ok {
		return f
	}
	return FormatXLSX
}

// Options configures the application instance.
type Options struct {
	// Visible shows the application window.
	Visible bool
	// DisplayAlerts lets the application show modal prompts.
	DisplayAlerts bool
	// Attach reuses a running instance instead of starting a new one.
	Attach bool
}

// OpenOptions configures how a workbook is opened.
type OpenOptions struct {
	ReadOnly bool
	Password string
}

// Position places a shape either at the top-left corner of a cell or at an
// absolute offset in points. Cell wins when both are set.
type Position struct {
	Cell string
	Top  float64
	Left float64
}

// Application is a running spreadsheet application.
type Application interface {
	OpenWorkbook(path string, opts OpenOptions) (Workbook, error)
	// ActiveWorkbook returns the workbook that has the focus, or
	// ErrNoActiveWorkbook when none is open.
	ActiveWorkbook() (Workbook, error)
	// Workbooks lists the workbooks currently open in the application.
	Workbooks() ([]models.WorkbookInfo, error)
	// QuitIfIdle quits the application when no workbooks remain open and
	// reports whether it did.
	QuitIfIdle() (bool, error)
	Quit() error
	// Release frees the COM references held by the handle. It does not
	// quit the application.
	Release()
}

// Workbook is a workbook open in the application.
type Workbook interface {
	Name() string
	Save() error
	SaveAs(path string, format FileFormat) error
	ExportPDF(path string) error
	Close(save bool) error
	Sheet(name string) (Sheet, error)
}

// Sheet is a worksheet of an open workbook.
type Sheet interface {
	Name() string
	AddTextBox(spec TextBoxSpec) error
	// CopyShape copies the named shape onto dst at pos and returns the name
	// of the pasted shape.
	CopyShape(name string, dst Sheet, pos Position) (string, error)
	// EditShapeText replaces a shape's text and keeps its position.
	EditShapeText(name, text string) error
	DeleteShape(name string) error
	AutoFitColumn(column string) error
	AutoFitRow(row int) error
}
