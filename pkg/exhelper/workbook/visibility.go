package workbook

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/models"
)

// Visibility filters sheet listings.
type Visibility string

const (
	VisibilityAll     Visibility = "all"
	VisibilityHidden  Visibility = "hidden"
	VisibilityVisible Visibility = "visible"
)

// ParseVisibility accepts "all", "hidden" or "visible"; empty means all.
func ParseVisibility(s string) (Visibility, error) {
	switch v := Visibility(s); v {
	case "":
		return VisibilityAll, nil
	case VisibilityAll, VisibilityHidden, VisibilityVisible:
		return v, nil
	default:
		return "", fmt.Errorf("%w: visibility %q", ErrInvalidArgument, s)
	}
}

func (v Visibility) matches(visible bool) bool {
	switch v {
	case VisibilityHidden:
		return !visible
	case VisibilityVisible:
		return visible
	default:
		return true
	}
}

// ListSheets returns the sheets matching v in workbook order.
func (w *Workbook) ListSheets(v Visibility) ([]models.SheetInfo, error) {
	var sheets []models.SheetInfo
	for idx, name := range w.f.GetSheetList() {
		visible, err := w.f.GetSheetVisible(name)
		if err != nil {
			return nil, err
		}
		if v.matches(visible) {
			sheets = append(sheets, models.SheetInfo{Index: idx + 1, Name: name, Visible: visible})
		}
	}
	return sheets, nil
}

// CountSheets counts the sheets matching v.
func (w *Workbook) CountSheets(v Visibility) (int, error) {
	sheets, err := w.ListSheets(v)
	if err != nil {
		return 0, err
	}
	logrus.WithFields(logrus.Fields{"visibility": string(v), "count": len(sheets)}).Info("Sheets counted")
	return len(sheets), nil
}

// DeleteHiddenSheets removes every hidden sheet and returns how many went.
func (w *Workbook) DeleteHiddenSheets() (int, error) {
	hidden, err := w.ListSheets(VisibilityHidden)
	if err != nil {
		return 0, err
	}
	for i, s := range hidden {
		if err := w.DeleteSheet(ByName(s.Name)); err != nil {
			return i, fmt.Errorf("delete hidden sheet %q: %w", s.Name, err)
		}
	}
	if len(hidden) == 0 {
		logrus.Info("No hidden sheets to delete")
	} else {
		logrus.WithField("count", len(hidden)).Info("Hidden sheets deleted")
	}
	return len(hidden), nil
}
