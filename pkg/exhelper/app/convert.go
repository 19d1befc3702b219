package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/workbook"
)

// ConvertToPDF exports every sheet of a workbook to PDF and returns the
// output path. An empty pdfPath writes next to the source with a .pdf
// extension.
func ConvertToPDF(a Application, srcPath, pdfPath string) (string, error) {
	if err := requireFile(srcPath); err != nil {
		return "", err
	}
	if pdfPath == "" {
		pdfPath = replaceExt(srcPath, ".pdf")
	}
	if err := requireDir(pdfPath); err != nil {
		return "", err
	}

	wb, err := a.OpenWorkbook(srcPath, OpenOptions{ReadOnly: true})
	if err != nil {
		return "", err
	}
	if err := wb.ExportPDF(pdfPath); err != nil {
		return "", errors.Join(err, CloseWorkbook(a, wb, false))
	}
	if err := CloseWorkbook(a, wb, false); err != nil {
		return "", err
	}
	logrus.WithFields(logrus.Fields{"source": srcPath, "pdf": pdfPath}).Info("Converted workbook to PDF")
	return pdfPath, nil
}

// ConvertToXLSX saves a workbook in the Open XML format and returns the
// output path. An empty xlsxPath writes next to the source with a .xlsx
// extension. removeSource deletes the original after a successful save.
func ConvertToXLSX(a Application, srcPath, xlsxPath string, removeSource bool) (string, error) {
	if err := requireFile(srcPath); err != nil {
		return "", err
	}
	if xlsxPath == "" {
		xlsxPath = replaceExt(srcPath, ".xlsx")
	}
	if err := requireDir(xlsxPath); err != nil {
		return "", err
	}

	wb, err := a.OpenWorkbook(srcPath, OpenOptions{})
	if err != nil {
		return "", err
	}
	if err := wb.SaveAs(xlsxPath, FormatXLSX); err != nil {
		return "", errors.Join(err, CloseWorkbook(a, wb, false))
	}
	if err := CloseWorkbook(a, wb, false); err != nil {
		return "", err
	}
	log := logrus.WithFields(logrus.Fields{"source": srcPath, "xlsx": xlsxPath})
	log.Info("Converted workbook to xlsx")

	if removeSource {
		if err := os.Remove(srcPath); err != nil {
			return xlsxPath, err
		}
		log.Info("Removed source workbook")
	}
	return xlsxPath, nil
}

// SaveActive saves the application's active workbook to path and closes it,
// quitting the application once no workbooks remain. A zero format is taken
// from the path's extension. Returns the absolute output path.
func SaveActive(a Application, path string, format FileFormat) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("%w: output path required", workbook.ErrInvalidArgument)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if err := requireDir(abs); err != nil {
		return "", err
	}
	if format == 0 {
		format = formatForPath(abs)
	}

	wb, err := a.ActiveWorkbook()
	if err != nil {
		return "", err
	}
	if err := wb.SaveAs(abs, format); err != nil {
		return "", fmt.Errorf("save %s: %w", wb.Name(), err)
	}
	if err := CloseWorkbook(a, wb, false); err != nil {
		return "", err
	}
	logrus.WithFields(logrus.Fields{"workbook": wb.Name(), "path": abs, "format": int(format)}).Info("Active workbook saved")
	return abs, nil
}

// CloseWorkbook closes wb, saving it first when save is set, and quits the
// application once no workbooks remain. The application is checked even
// when saving or closing fails.
func CloseWorkbook(a Application, wb Workbook, save bool) error {
	log := logrus.WithFields(logrus.Fields{"workbook": wb.Name(), "save": save})
	log.Debug("Closing workbook")

	var errs []error
	if save {
		if err := wb.Save(); err != nil {
			errs = append(errs, fmt.Errorf("save %s: %w", wb.Name(), err))
		}
	}
	if len(errs) == 0 {
		if err := wb.Close(false); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", wb.Name(), err))
		}
	}
	quit, err := a.QuitIfIdle()
	if err != nil {
		errs = append(errs, err)
	}
	log.WithField("quit", quit).Debug("Workbook closed")
	return errors.Join(errs...)
}

func requireFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s", workbook.ErrFileNotFound, path)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", workbook.ErrInvalidArgument, path)
	}
	return nil
}

func requireDir(path string) error {
	dir := filepath.Dir(path)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("%w: output directory %s does not exist", workbook.ErrInvalidArgument, dir)
	}
	return nil
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
