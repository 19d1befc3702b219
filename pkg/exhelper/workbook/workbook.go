// Package workbook opens, saves and restructures xlsx workbooks and exposes
// their sheets to the extent locator.
package workbook

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/models"
	"github.com/xuri/excelize/v2"
)

// OpenOptions configures Open.
type OpenOptions struct {
	// ReadOnly refuses Save and SaveAs onto the opened path.
	ReadOnly bool
	// Password decrypts a protected workbook.
	Password string
}

// Workbook is an open xlsx document.
type Workbook struct {
	f        *excelize.File
	path     string
	readOnly bool
	saved    bool
	created  bool
}

// Open loads the workbook at path.
func Open(path string, opts OpenOptions) (*Workbook, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptFile, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrCorruptFile, path)
	}

	kind, err := sniffContainer(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptFile, path, err)
	}
	switch kind {
	case containerLegacy:
		return nil, fmt.Errorf("%w: %s", ErrLegacyFormat, path)
	case containerEncrypted:
		if opts.Password == "" {
			return nil, fmt.Errorf("%w: %s", ErrPasswordRequired, path)
		}
	}

	f, err := excelize.OpenFile(path, excelize.Options{Password: opts.Password})
	if err != nil {
		if kind == containerEncrypted || errors.Is(err, excelize.ErrWorkbookPassword) {
			return nil, fmt.Errorf("%w: %s: %v", ErrPasswordRequired, path, err)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptFile, path, err)
	}

	logrus.WithFields(logrus.Fields{
		"path":      path,
		"read_only": opts.ReadOnly,
	}).Debug("Workbook opened")
	return &Workbook{f: f, path: path, readOnly: opts.ReadOnly, saved: true}, nil
}

// Create returns a new, unsaved workbook that will be written to path. The
// new workbook has the single default sheet "Sheet1".
func Create(path string) *Workbook {
	logrus.WithField("path", path).Debug("Workbook created")
	return &Workbook{f: excelize.NewFile(), path: path, created: true}
}

// OpenOrCreate opens the workbook at path, or creates it when the file does
// not exist yet.
func OpenOrCreate(path string) (*Workbook, error) {
	wb, err := Open(path, OpenOptions{})
	if errors.Is(err, ErrFileNotFound) {
		return Create(path), nil
	}
	return wb, err
}

// IsNew reports whether the workbook was created in memory and has not been
// saved yet.
func (w *Workbook) IsNew() bool {
	return w.created && !w.saved
}

// File exposes the underlying excelize document.
func (w *Workbook) File() *excelize.File {
	return w.f
}

// Path returns the path the workbook was opened from or will be saved to.
func (w *Workbook) Path() string {
	return w.path
}

// Info describes the workbook for listings.
func (w *Workbook) Info() models.WorkbookInfo {
	full, err := filepath.Abs(w.path)
	if err != nil {
		full = w.path
	}
	return models.WorkbookInfo{
		Name:     filepath.Base(w.path),
		FullPath: full,
		Saved:    w.saved,
	}
}

// Touch marks the workbook as modified. Helpers that write through File call
// it so Info reports unsaved changes.
func (w *Workbook) Touch() {
	w.saved = false
}

// Save writes the workbook back to its path.
func (w *Workbook) Save() error {
	if w.readOnly {
		return fmt.Errorf("%w: %s", ErrReadOnly, w.path)
	}
	return w.SaveAs(w.path)
}

// SaveAs writes the workbook to path and makes it the workbook's path. The
// extension decides the package content type, so it must be an Office Open
// XML one (.xlsx, .xlsm, .xltx, .xltm, .xlam).
func (w *Workbook) SaveAs(path string) error {
	if w.readOnly && sameFile(path, w.path) {
		return fmt.Errorf("%w: %s", ErrReadOnly, w.path)
	}
	if dir := filepath.Dir(path); dir != "" {
		if _, err := os.Stat(dir); err != nil {
			return fmt.Errorf("%w: output directory %s: %v", ErrInvalidArgument, dir, err)
		}
	}
	if err := w.f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	w.path = path
	w.saved = true
	logrus.WithField("path", path).Info("Workbook saved")
	return nil
}

// Close releases the workbook. Unsaved changes are discarded.
func (w *Workbook) Close() error {
	return w.f.Close()
}

// Sheet returns a read snapshot of the named sheet, or of the active sheet
// when name is empty.
func (w *Workbook) Sheet(name string) (*Sheet, error) {
	resolved, err := w.SheetName(name)
	if err != nil {
		return nil, err
	}
	return loadSheet(w.f, resolved)
}

// SheetName resolves name to the workbook's spelling of it, or to the active
// sheet when name is empty.
func (w *Workbook) SheetName(name string) (string, error) {
	if name == "" {
		active := w.f.GetSheetName(w.f.GetActiveSheetIndex())
		if active == "" {
			return "", fmt.Errorf("%w: no active sheet", ErrSheetNotFound)
		}
		return active, nil
	}
	idx, err := w.f.GetSheetIndex(name)
	if err != nil || idx < 0 {
		return "", fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}
	return w.f.GetSheetName(idx), nil
}

// ColumnName converts a 1-based column index to its letter label.
func ColumnName(index int) (string, error) {
	name, err := excelize.ColumnNumberToName(index)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return name, nil
}

// ColumnIndex converts a column letter label to its 1-based index.
func ColumnIndex(name string) (int, error) {
	n, err := excelize.ColumnNameToNumber(strings.TrimSpace(name))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return n, nil
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}
