package transfer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/models"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/workbook"
	"github.com/xuri/excelize/v2"
)

// writeSource saves a workbook whose "Data" sheet holds a 3x3 block at A1
// with mixed value types, plus a hidden "Archive" sheet.
func writeSource(t *testing.T, dir string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "Data"))
	rows := [][]interface{}{
		{"item", "qty", "ok"},
		{"bolt", 10, true},
		{"nut", 2.5, false},
	}
	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Data", cell, &row))
	}
	require.NoError(t, f.SetColWidth("Data", "A", "A", 24))
	require.NoError(t, f.SetRowHeight("Data", 2, 30))

	_, err := f.NewSheet("Archive")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Archive", "B2", "old"))
	require.NoError(t, f.SetSheetVisible("Archive", false))

	path := filepath.Join(dir, "source.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestCopyRangeToNewWorkbook(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir)
	dst := filepath.Join(dir, "target.xlsx")

	area, err := CopyRange(
		Source{Path: src, Sheet: "Data", Range: "A2:C3"},
		Target{Path: dst, Sheet: "Copy", Anchor: "B5"},
	)
	require.NoError(t, err)
	assert.Equal(t, models.Area{R1: 5, C1: 2, R2: 6, C2: 4}, area)

	f, err := excelize.OpenFile(dst)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Copy"}, f.GetSheetList())
	v, err := f.GetCellValue("Copy", "B5")
	require.NoError(t, err)
	assert.Equal(t, "bolt", v)

	// Numbers are stored untyped, never as shared strings.
	typ, err := f.GetCellType("Copy", "C5")
	require.NoError(t, err)
	assert.Contains(t, []excelize.CellType{excelize.CellTypeUnset, excelize.CellTypeNumber}, typ)

	typ, err = f.GetCellType("Copy", "D6")
	require.NoError(t, err)
	assert.Equal(t, excelize.CellTypeBool, typ)
	v, err = f.GetCellValue("Copy", "D6")
	require.NoError(t, err)
	assert.Equal(t, "FALSE", v)
}

func TestCopyRangeAllIntoExistingWorkbook(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir)

	dst := filepath.Join(dir, "existing.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "keep"))
	require.NoError(t, f.SaveAs(dst))
	require.NoError(t, f.Close())

	area, err := CopyRange(
		Source{Path: src, Sheet: "Data", Range: AllCells},
		Target{Path: dst, Sheet: "Imported"},
	)
	require.NoError(t, err)
	assert.Equal(t, models.Area{R1: 1, C1: 1, R2: 3, C2: 3}, area)

	out, err := excelize.OpenFile(dst)
	require.NoError(t, err)
	defer out.Close()
	assert.Equal(t, []string{"Sheet1", "Imported"}, out.GetSheetList())
	v, err := out.GetCellValue("Sheet1", "A1")
	require.NoError(t, err)
	assert.Equal(t, "keep", v)
	v, err = out.GetCellValue("Imported", "B3")
	require.NoError(t, err)
	assert.Equal(t, "2.5", v)
}

func TestCopyRangeWithinWorkbook(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir)

	_, err := CopyRange(
		Source{Path: src, Sheet: "Data", Range: "A1:A3"},
		Target{Path: src, Sheet: "Data", Anchor: "E1"},
	)
	require.NoError(t, err)

	f, err := excelize.OpenFile(src)
	require.NoError(t, err)
	defer f.Close()
	for cell, want := range map[string]string{"E1": "item", "E2": "bolt", "E3": "nut", "A2": "bolt"} {
		v, err := f.GetCellValue("Data", cell)
		require.NoError(t, err)
		assert.Equal(t, want, v, cell)
	}
}

func TestCopyRangeErrors(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir)
	dst := filepath.Join(dir, "out.xlsx")

	_, err := CopyRange(Source{Path: src, Range: "A1:"}, Target{Path: dst})
	assert.ErrorIs(t, err, workbook.ErrInvalidArgument)

	_, err = CopyRange(Source{Path: src, Range: "A1"}, Target{Path: dst, Anchor: "1A"})
	assert.ErrorIs(t, err, workbook.ErrInvalidArgument)

	_, err = CopyRange(Source{Path: src, Sheet: "Nope", Range: "A1"}, Target{Path: dst})
	assert.ErrorIs(t, err, workbook.ErrSheetNotFound)

	_, err = CopyRange(Source{Path: filepath.Join(dir, "missing.xlsx"), Range: "A1"}, Target{Path: dst})
	assert.ErrorIs(t, err, workbook.ErrFileNotFound)
}

func TestCopySheet(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir)

	dst := filepath.Join(dir, "dest.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Data"))
	_, err := f.NewSheet("Summary")
	require.NoError(t, err)
	require.NoError(t, f.SaveAs(dst))
	require.NoError(t, f.Close())

	info, err := CopySheet(src, dst, workbook.ByName("Data"), 1)
	require.NoError(t, err)
	assert.Equal(t, models.SheetInfo{Index: 1, Name: "Data (2)", Visible: true}, info)

	info, err = CopySheet(src, dst, workbook.ByIndex(2), 0)
	require.NoError(t, err)
	assert.Equal(t, models.SheetInfo{Index: 4, Name: "Archive", Visible: false}, info)

	out, err := excelize.OpenFile(dst)
	require.NoError(t, err)
	defer out.Close()
	assert.Equal(t, []string{"Data (2)", "Data", "Summary", "Archive"}, out.GetSheetList())

	v, err := out.GetCellValue("Data (2)", "A3")
	require.NoError(t, err)
	assert.Equal(t, "nut", v)
	width, err := out.GetColWidth("Data (2)", "A")
	require.NoError(t, err)
	assert.InDelta(t, 24, width, 0.01)
	height, err := out.GetRowHeight("Data (2)", 2)
	require.NoError(t, err)
	assert.InDelta(t, 30, height, 0.01)
}

func TestCopySheetToNewWorkbook(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir)
	dst := filepath.Join(dir, "fresh.xlsx")

	info, err := CopySheet(src, dst, workbook.ByName("Data"), 0)
	require.NoError(t, err)
	assert.Equal(t, "Data", info.Name)
	assert.Equal(t, 1, info.Index)

	_, err = CopySheet(src, dst, workbook.ByName("Data"), 5)
	assert.ErrorIs(t, err, workbook.ErrInvalidArgument)

	_, err = CopySheet(src, src, workbook.ByName("Data"), 0)
	assert.ErrorIs(t, err, workbook.ErrInvalidArgument)

	_, err = CopySheet(src, dst, workbook.ByIndex(9), 0)
	assert.ErrorIs(t, err, workbook.ErrSheetNotFound)
}
