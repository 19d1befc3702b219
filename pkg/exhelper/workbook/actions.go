package workbook

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/models"
	"github.com/xuri/excelize/v2"
)

// CreateSheet appends a new empty sheet.
func (w *Workbook) CreateSheet(name string) (models.SheetInfo, error) {
	if name == "" {
		return models.SheetInfo{}, fmt.Errorf("%w: sheet name is required", ErrInvalidArgument)
	}
	if w.HasSheet(name) {
		return models.SheetInfo{}, fmt.Errorf("%w: sheet %q already exists", ErrInvalidArgument, name)
	}
	idx, err := w.f.NewSheet(name)
	if err != nil {
		return models.SheetInfo{}, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	w.Touch()
	logrus.WithField("sheet", name).Info("Sheet created")
	return w.info(idx)
}

// RenameSheet gives the referenced sheet a new name.
func (w *Workbook) RenameSheet(ref SheetRef, newName string) error {
	if newName == "" {
		return fmt.Errorf("%w: new sheet name is required", ErrInvalidArgument)
	}
	name, _, err := w.resolve(ref)
	if err != nil {
		return err
	}
	if !strings.EqualFold(name, newName) && w.HasSheet(newName) {
		return fmt.Errorf("%w: sheet %q already exists", ErrInvalidArgument, newName)
	}
	if err := w.f.SetSheetName(name, newName); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	w.Touch()
	logrus.WithFields(logrus.Fields{"sheet": name, "new_name": newName}).Info("Sheet renamed")
	return nil
}

// MoveSheet places the referenced sheet before another one, or last when
// before is the zero SheetRef.
func (w *Workbook) MoveSheet(ref, before SheetRef) error {
	name, _, err := w.resolve(ref)
	if err != nil {
		return err
	}
	if before.IsZero() {
		list := w.f.GetSheetList()
		last := list[len(list)-1]
		if last != name {
			// Put the sheet in front of the last one, then swap them.
			if err := w.f.MoveSheet(name, last); err != nil {
				return err
			}
			if err := w.f.MoveSheet(last, name); err != nil {
				return err
			}
		}
	} else {
		target, _, err := w.resolve(before)
		if err != nil {
			return err
		}
		if err := w.f.MoveSheet(name, target); err != nil {
			return err
		}
	}
	w.Touch()
	logrus.WithFields(logrus.Fields{"sheet": name, "before": before.String()}).Info("Sheet moved")
	return nil
}

// DeleteSheet removes the referenced sheet. The last sheet of a workbook
// cannot be deleted.
func (w *Workbook) DeleteSheet(ref SheetRef) error {
	name, _, err := w.resolve(ref)
	if err != nil {
		return err
	}
	if len(w.f.GetSheetList()) == 1 {
		return fmt.Errorf("%w: cannot delete the only sheet %q", ErrInvalidArgument, name)
	}
	if err := w.ensureOtherVisible(name); err != nil {
		return err
	}
	if err := w.f.DeleteSheet(name); err != nil {
		return err
	}
	w.Touch()
	logrus.WithField("sheet", name).Info("Sheet deleted")
	return nil
}

// CopySheet duplicates the referenced sheet at the end of the workbook. An
// empty newName derives one from the source name ("Data (2)").
func (w *Workbook) CopySheet(ref SheetRef, newName string) (models.SheetInfo, error) {
	name, from, err := w.resolve(ref)
	if err != nil {
		return models.SheetInfo{}, err
	}
	if newName == "" {
		newName = w.UniqueSheetName(name)
	} else if w.HasSheet(newName) {
		return models.SheetInfo{}, fmt.Errorf("%w: sheet %q already exists", ErrInvalidArgument, newName)
	}
	to, err := w.f.NewSheet(newName)
	if err != nil {
		return models.SheetInfo{}, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	if err := w.f.CopySheet(from, to); err != nil {
		return models.SheetInfo{}, err
	}
	w.Touch()
	logrus.WithFields(logrus.Fields{"sheet": name, "copy": newName}).Info("Sheet copied")
	return w.info(to)
}

// HideSheet hides the referenced sheet. At least one sheet must stay visible.
func (w *Workbook) HideSheet(ref SheetRef) error {
	name, _, err := w.resolve(ref)
	if err != nil {
		return err
	}
	if visible, _ := w.f.GetSheetVisible(name); !visible {
		return nil
	}
	if err := w.ensureOtherVisible(name); err != nil {
		return err
	}
	if err := w.f.SetSheetVisible(name, false); err != nil {
		return err
	}
	if visible, _ := w.f.GetSheetVisible(name); visible {
		return fmt.Errorf("sheet %q could not be hidden", name)
	}
	w.Touch()
	logrus.WithField("sheet", name).Info("Sheet hidden")
	return nil
}

// UnhideSheet makes the referenced sheet visible.
func (w *Workbook) UnhideSheet(ref SheetRef) error {
	name, _, err := w.resolve(ref)
	if err != nil {
		return err
	}
	if err := w.f.SetSheetVisible(name, true); err != nil {
		return err
	}
	w.Touch()
	logrus.WithField("sheet", name).Info("Sheet unhidden")
	return nil
}

// HasSheet reports whether a sheet with the name exists, ignoring case.
func (w *Workbook) HasSheet(name string) bool {
	idx, err := w.f.GetSheetIndex(name)
	return err == nil && idx >= 0
}

// UniqueSheetName returns name when it is free, otherwise the first free
// "name (n)" starting at n = 2, shortened to fit the sheet name limit.
func (w *Workbook) UniqueSheetName(name string) string {
	if !w.HasSheet(name) {
		return name
	}
	for n := 2; ; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		base := name
		for utf8.RuneCountInString(base)+len(suffix) > excelize.MaxSheetNameLength {
			runes := []rune(base)
			base = string(runes[:len(runes)-1])
		}
		if candidate := base + suffix; !w.HasSheet(candidate) {
			return candidate
		}
	}
}

// ensureOtherVisible moves the active tab away from name, since hiding or
// deleting the active sheet is not allowed. It fails when name is the only
// visible sheet.
func (w *Workbook) ensureOtherVisible(name string) error {
	other := -1
	for idx, candidate := range w.f.GetSheetList() {
		if strings.EqualFold(candidate, name) {
			continue
		}
		if visible, _ := w.f.GetSheetVisible(candidate); visible {
			other = idx
			break
		}
	}
	if other < 0 {
		return fmt.Errorf("%w: %q is the only visible sheet", ErrInvalidArgument, name)
	}
	if strings.EqualFold(w.f.GetSheetName(w.f.GetActiveSheetIndex()), name) {
		w.f.SetActiveSheet(other)
	}
	return nil
}

func (w *Workbook) info(idx int) (models.SheetInfo, error) {
	name := w.f.GetSheetName(idx)
	if name == "" {
		return models.SheetInfo{}, fmt.Errorf("%w: index %d", ErrSheetNotFound, idx+1)
	}
	visible, err := w.f.GetSheetVisible(name)
	if err != nil {
		return models.SheetInfo{}, err
	}
	return models.SheetInfo{Index: idx + 1, Name: name, Visible: visible}, nil
}
