package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/models"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/workbook"
)

type fakeApp struct {
	open   []*fakeWorkbook
	opened []OpenOptions
	quit   bool
}

func (a *fakeApp) OpenWorkbook(path string, opts OpenOptions) (Workbook, error) {
	wb := &fakeWorkbook{app: a, name: filepath.Base(path)}
	a.open = append(a.open, wb)
	a.opened = append(a.opened, opts)
	return wb, nil
}

func (a *fakeApp) ActiveWorkbook() (Workbook, error) {
	if len(a.open) == 0 {
		return nil, ErrNoActiveWorkbook
	}
	return a.open[len(a.open)-1], nil
}

func (a *fakeApp) Workbooks() ([]models.WorkbookInfo, error) {
	var infos []models.WorkbookInfo
	for _, wb := range a.open {
		infos = append(infos, models.WorkbookInfo{Name: wb.name})
	}
	return infos, nil
}

func (a *fakeApp) QuitIfIdle() (bool, error) {
	if len(a.open) > 0 {
		return false, nil
	}
	return true, a.Quit()
}

func (a *fakeApp) Quit() error {
	a.quit = true
	return nil
}

func (a *fakeApp) Release() {}

type fakeWorkbook struct {
	app     *fakeApp
	name    string
	saved   bool
	saveErr error
	pdf     string
	saveAs  string
	format  FileFormat
}

func (w *fakeWorkbook) Name() string { return w.name }

func (w *fakeWorkbook) Save() error {
	if w.saveErr != nil {
		return w.saveErr
	}
	w.saved = true
	return nil
}

func (w *fakeWorkbook) SaveAs(path string, format FileFormat) error {
	w.saveAs, w.format = path, format
	return os.WriteFile(path, []byte("xlsx"), 0o644)
}

func (w *fakeWorkbook) ExportPDF(path string) error {
	w.pdf = path
	return nil
}

func (w *fakeWorkbook) Close(save bool) error {
	for i, wb := range w.app.open {
		if wb == w {
			w.app.open = append(w.app.open[:i], w.app.open[i+1:]...)
			break
		}
	}
	return nil
}

func (w *fakeWorkbook) Sheet(name string) (Sheet, error) {
	return nil, workbook.ErrSheetNotFound
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))
}

func TestConvertToPDF(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "report.xlsx")
	writeFile(t, src)

	a := &fakeApp{}
	got, err := ConvertToPDF(a, src, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "report.pdf"), got)
	assert.True(t, a.opened[0].ReadOnly)
	assert.Empty(t, a.open)
	assert.True(t, a.quit)

	explicit := filepath.Join(dir, "out.pdf")
	got, err = ConvertToPDF(&fakeApp{}, src, explicit)
	require.NoError(t, err)
	assert.Equal(t, explicit, got)
}

func TestConvertToPDFErrors(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "report.xlsx")
	writeFile(t, src)

	_, err := ConvertToPDF(&fakeApp{}, filepath.Join(dir, "missing.xlsx"), "")
	assert.ErrorIs(t, err, workbook.ErrFileNotFound)

	a := &fakeApp{}
	_, err = ConvertToPDF(a, src, filepath.Join(dir, "nope", "out.pdf"))
	assert.ErrorIs(t, err, workbook.ErrInvalidArgument)
	assert.Empty(t, a.opened)
}

func TestConvertToXLSX(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "legacy.xls")
	writeFile(t, src)

	a := &fakeApp{}
	got, err := ConvertToXLSX(a, src, "", true)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "legacy.xlsx"), got)
	assert.FileExists(t, got)
	assert.NoFileExists(t, src)
	assert.True(t, a.quit)

	src2 := filepath.Join(dir, "keep.xls")
	writeFile(t, src2)
	_, err = ConvertToXLSX(&fakeApp{}, src2, filepath.Join(dir, "kept.xlsx"), false)
	require.NoError(t, err)
	assert.FileExists(t, src2)
}

func TestCloseWorkbook(t *testing.T) {
	a := &fakeApp{}
	first, err := a.OpenWorkbook("a.xlsx", OpenOptions{})
	require.NoError(t, err)
	second, err := a.OpenWorkbook("b.xlsx", OpenOptions{})
	require.NoError(t, err)

	require.NoError(t, CloseWorkbook(a, first, true))
	assert.True(t, first.(*fakeWorkbook).saved)
	assert.False(t, a.quit, "application quit with a workbook still open")

	require.NoError(t, CloseWorkbook(a, second, false))
	assert.False(t, second.(*fakeWorkbook).saved)
	assert.True(t, a.quit)
}

func TestCloseWorkbookSaveFailure(t *testing.T) {
	a := &fakeApp{}
	wb, err := a.OpenWorkbook("a.xlsx", OpenOptions{})
	require.NoError(t, err)
	boom := errors.New("disk full")
	wb.(*fakeWorkbook).saveErr = boom

	err = CloseWorkbook(a, wb, true)
	assert.ErrorIs(t, err, boom)
	assert.Len(t, a.open, 1)
	assert.False(t, a.quit)
}

func TestSaveActive(t *testing.T) {
	dir := t.TempDir()
	a := &fakeApp{}
	_, err := a.OpenWorkbook("first.xlsx", OpenOptions{})
	require.NoError(t, err)
	active, err := a.OpenWorkbook("Book2", OpenOptions{})
	require.NoError(t, err)

	out := filepath.Join(dir, "saved.xlsm")
	got, err := SaveActive(a, out, 0)
	require.NoError(t, err)
	assert.Equal(t, out, got)
	assert.Equal(t, out, active.(*fakeWorkbook).saveAs)
	assert.Equal(t, FormatXLSM, active.(*fakeWorkbook).format)
	assert.FileExists(t, out)
	require.Len(t, a.open, 1)
	assert.Equal(t, "first.xlsx", a.open[0].name)
	assert.False(t, a.quit)

	got, err = SaveActive(a, filepath.Join(dir, "last.bin"), FormatXLS)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "last.bin"), got)
	assert.Empty(t, a.open)
	assert.True(t, a.quit)
}

func TestSaveActiveErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := SaveActive(&fakeApp{}, filepath.Join(dir, "out.xlsx"), 0)
	assert.ErrorIs(t, err, ErrNoActiveWorkbook)

	a := &fakeApp{}
	_, err = a.OpenWorkbook("Book1", OpenOptions{})
	require.NoError(t, err)
	_, err = SaveActive(a, "", 0)
	assert.ErrorIs(t, err, workbook.ErrInvalidArgument)
	_, err = SaveActive(a, filepath.Join(dir, "missing", "out.xlsx"), 0)
	assert.ErrorIs(t, err, workbook.ErrInvalidArgument)
	assert.Len(t, a.open, 1)
}

func TestParseFileFormat(t *testing.T) {
	tests := []struct {
		in   string
		want FileFormat
	}{
		{"", 0},
		{"xlsx", FormatXLSX},
		{".XLSM", FormatXLSM},
		{"xls", FormatXLS},
	}
	for _, tt := range tests {
		got, err := ParseFileFormat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
	_, err := ParseFileFormat("csv")
	assert.ErrorIs(t, err, workbook.ErrInvalidArgument)
}

func TestColorValue(t *testing.T) {
	tests := []struct {
		in   string
		want int32
	}{
		{"FF0000", 0x0000FF},
		{"00FF00", 0x00FF00},
		{"#0000ff", 0xFF0000},
		{"123456", 0x563412},
	}
	for _, tt := range tests {
		got, err := ColorValue(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
	for _, bad := range []string{"", "FFF", "GGGGGG"} {
		_, err := ColorValue(bad)
		assert.ErrorIs(t, err, workbook.ErrInvalidArgument, bad)
	}
}

func TestTextBoxSpecResolve(t *testing.T) {
	spec := DefaultTextBox("Note", "hello")
	spec.Alignment = "Center"
	spec.FillColor = "FFFF00"
	spec.SendToBack = true

	tf, err := spec.resolve()
	require.NoError(t, err)
	assert.Equal(t, xlHAlignCenter, tf.alignment)
	assert.Equal(t, msoSendToBack, tf.zOrder)
	require.NotNil(t, tf.fillColor)
	assert.Equal(t, int32(0x00FFFF), *tf.fillColor)
	require.NotNil(t, tf.lineColor)
	assert.Equal(t, int32(0), *tf.lineColor)
	assert.Nil(t, tf.textColor)
	assert.InDelta(t, 5.67, tf.marginL, 1e-9)
	assert.InDelta(t, 2.835, tf.marginT, 1e-9)

	bad := []TextBoxSpec{
		DefaultTextBox("", "x"),
		func() TextBoxSpec { s := DefaultTextBox("a", "x"); s.Width = 0; return s }(),
		func() TextBoxSpec { s := DefaultTextBox("a", "x"); s.Alignment = "justify"; return s }(),
		func() TextBoxSpec { s := DefaultTextBox("a", "x"); s.TextColor = "red"; return s }(),
	}
	for i, s := range bad {
		_, err := s.resolve()
		assert.ErrorIs(t, err, workbook.ErrInvalidArgument, "case %d", i)
	}
}
