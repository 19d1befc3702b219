package workbook

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ukaji3/exhelper-go/pkg/exhelper/models"
)

// SheetRef addresses a sheet by 1-based position or by name.
type SheetRef struct {
	index int
	name  string
}

// ByIndex references the sheet at a 1-based position.
func ByIndex(index int) SheetRef {
	return SheetRef{index: index}
}

// ByName references a sheet by name.
func ByName(name string) SheetRef {
	return SheetRef{name: name}
}

// ParseSheetRef treats an all-digit string as a position and anything else
// as a name.
func ParseSheetRef(s string) SheetRef {
	trimmed := strings.TrimSpace(s)
	if n, err := strconv.Atoi(trimmed); err == nil {
		return ByIndex(n)
	}
	return ByName(s)
}

// IsZero reports whether the reference is empty.
func (r SheetRef) IsZero() bool {
	return r.index == 0 && r.name == ""
}

func (r SheetRef) String() string {
	if r.name != "" {
		return r.name
	}
	return "#" + strconv.Itoa(r.index)
}

// Lookup describes the referenced sheet.
func (w *Workbook) Lookup(ref SheetRef) (models.SheetInfo, error) {
	_, idx, err := w.resolve(ref)
	if err != nil {
		return models.SheetInfo{}, err
	}
	return w.info(idx)
}

// resolve returns the referenced sheet's name and 0-based position.
func (w *Workbook) resolve(ref SheetRef) (string, int, error) {
	if ref.IsZero() {
		return "", 0, fmt.Errorf("%w: sheet index or name is required", ErrInvalidArgument)
	}
	if ref.name != "" {
		idx, err := w.f.GetSheetIndex(ref.name)
		if err != nil || idx < 0 {
			return "", 0, fmt.Errorf("%w: %q", ErrSheetNotFound, ref.name)
		}
		return w.f.GetSheetName(idx), idx, nil
	}
	list := w.f.GetSheetList()
	if ref.index < 1 || ref.index > len(list) {
		return "", 0, fmt.Errorf("%w: index %d (workbook has %d sheets)", ErrSheetNotFound, ref.index, len(list))
	}
	return list[ref.index-1], ref.index - 1, nil
}
