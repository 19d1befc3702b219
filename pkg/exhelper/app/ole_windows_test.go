//go:build windows

package app

import (
	"testing"

	"github.com/go-ole/go-ole/oleutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newScratchWorkbook adds an unsaved two-sheet workbook with the second sheet
// active. The test is skipped when Excel is not installed.
func newScratchWorkbook(t *testing.T) (Application, *oleWorkbook, string) {
	t.Helper()
	a, err := Connect(Options{})
	if err != nil {
		t.Skipf("Excel not available: %v", err)
	}
	t.Cleanup(func() {
		_ = a.Quit()
		a.Release()
	})
	books, err := dispatch(a.(*oleApplication).app, "Workbooks")
	require.NoError(t, err)
	defer books.Release()
	wb, err := callDispatch(books, "Add")
	require.NoError(t, err)
	name, err := stringProperty(wb, "Name")
	require.NoError(t, err)
	w := &oleWorkbook{wb: wb, name: name}
	t.Cleanup(func() { _ = w.Close(false) })

	sheets, err := dispatch(wb, "Worksheets")
	require.NoError(t, err)
	defer sheets.Release()
	added, err := callDispatch(sheets, "Add")
	require.NoError(t, err)
	added.Release()
	second, err := dispatch(sheets, "Item", 2)
	require.NoError(t, err)
	defer second.Release()
	_, err = oleutil.CallMethod(second, "Activate")
	require.NoError(t, err)
	activeName, err := stringProperty(second, "Name")
	require.NoError(t, err)
	return a, w, activeName
}

func TestSheetDefaultsToActiveSheet(t *testing.T) {
	a, wb, activeName := newScratchWorkbook(t)

	s, err := wb.Sheet("")
	require.NoError(t, err)
	assert.Equal(t, activeName, s.Name())

	active, err := a.ActiveWorkbook()
	require.NoError(t, err)
	assert.Equal(t, wb.Name(), active.Name())
}
