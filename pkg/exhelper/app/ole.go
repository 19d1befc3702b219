package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
	"github.com/sirupsen/logrus"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/models"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/workbook"
)

const (
	progID = "Excel.Application"
	// sFalse is returned by CoInitializeEx when COM is already initialised
	// on the thread.
	sFalse = 0x00000001
	// xlTypePDF is the fixed format type for PDF export.
	xlTypePDF = 0
)

type oleApplication struct {
	app *ole.IDispatch
}

type oleWorkbook struct {
	wb   *ole.IDispatch
	name string
}

type oleSheet struct {
	ws   *ole.IDispatch
	name string
}

// Connect starts the spreadsheet application, or attaches to a running one
// when opts.Attach is set. The returned Application is bound to the calling
// goroutine's OS thread until Release.
func Connect(opts Options) (Application, error) {
	runtime.LockOSThread()
	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		var oleErr *ole.OleError
		if !errors.As(err, &oleErr) || oleErr.Code() != sFalse {
			runtime.UnlockOSThread()
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}

	unknown, err := acquire(opts.Attach)
	if err != nil {
		ole.CoUninitialize()
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	disp, err := unknown.QueryInterface(ole.IID_IDispatch)
	unknown.Release()
	if err != nil {
		ole.CoUninitialize()
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	a := &oleApplication{app: disp}
	if _, err := oleutil.PutProperty(disp, "Visible", opts.Visible); err != nil {
		a.Release()
		return nil, err
	}
	if _, err := oleutil.PutProperty(disp, "DisplayAlerts", opts.DisplayAlerts); err != nil {
		a.Release()
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"attach": opts.Attach, "visible": opts.Visible}).Debug("Connected to spreadsheet application")
	return a, nil
}

func acquire(attach bool) (*ole.IUnknown, error) {
	if attach {
		if unknown, err := oleutil.GetActiveObject(progID); err == nil {
			return unknown, nil
		}
	}
	return oleutil.CreateObject(progID)
}

func (a *oleApplication) OpenWorkbook(path string, opts OpenOptions) (Workbook, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	books, err := dispatch(a.app, "Workbooks")
	if err != nil {
		return nil, err
	}
	defer books.Release()

	// FileName, UpdateLinks, ReadOnly, Format, Password, WriteResPassword,
	// IgnoreReadOnlyRecommended.
	v, err := oleutil.CallMethod(books, "Open", abs, 0, opts.ReadOnly, 5, opts.Password, "", true)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "password") {
			return nil, fmt.Errorf("%w: %s", workbook.ErrPasswordRequired, abs)
		}
		return nil, fmt.Errorf("open %s: %w", abs, err)
	}
	wb := v.ToIDispatch()
	name, err := stringProperty(wb, "Name")
	if err != nil {
		wb.Release()
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"path": abs, "read_only": opts.ReadOnly}).Info("Workbook opened")
	return &oleWorkbook{wb: wb, name: name}, nil
}

func (a *oleApplication) ActiveWorkbook() (Workbook, error) {
	wb, err := dispatch(a.app, "ActiveWorkbook")
	if err != nil {
		return nil, err
	}
	if wb == nil {
		return nil, ErrNoActiveWorkbook
	}
	name, err := stringProperty(wb, "Name")
	if err != nil {
		wb.Release()
		return nil, err
	}
	return &oleWorkbook{wb: wb, name: name}, nil
}

func (a *oleApplication) Workbooks() ([]models.WorkbookInfo, error) {
	books, err := dispatch(a.app, "Workbooks")
	if err != nil {
		return nil, err
	}
	defer books.Release()
	count, err := intProperty(books, "Count")
	if err != nil {
		return nil, err
	}
	infos := make([]models.WorkbookInfo, 0, count)
	for i := 1; i <= count; i++ {
		wb, err := dispatch(books, "Item", i)
		if err != nil {
			return nil, err
		}
		info := models.WorkbookInfo{}
		info.Name, err = stringProperty(wb, "Name")
		if err == nil {
			info.FullPath, err = stringProperty(wb, "FullName")
		}
		if err == nil {
			info.Saved, err = boolProperty(wb, "Saved")
		}
		wb.Release()
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func (a *oleApplication) QuitIfIdle() (bool, error) {
	books, err := dispatch(a.app, "Workbooks")
	if err != nil {
		return false, err
	}
	count, err := intProperty(books, "Count")
	books.Release()
	if err != nil {
		return false, err
	}
	if count > 0 {
		logrus.WithField("workbooks", count).Debug("Application still has open workbooks")
		return false, nil
	}
	return true, a.Quit()
}

func (a *oleApplication) Quit() error {
	if _, err := oleutil.CallMethod(a.app, "Quit"); err != nil {
		return err
	}
	logrus.Debug("Application quit")
	return nil
}

func (a *oleApplication) Release() {
	if a.app == nil {
		return
	}
	a.app.Release()
	a.app = nil
	ole.CoUninitialize()
	runtime.UnlockOSThread()
}

func (w *oleWorkbook) Name() string { return w.name }

func (w *oleWorkbook) Save() error {
	_, err := oleutil.CallMethod(w.wb, "Save")
	return err
}

func (w *oleWorkbook) SaveAs(path string, format FileFormat) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	_, err = oleutil.CallMethod(w.wb, "SaveAs", abs, int(format))
	return err
}

func (w *oleWorkbook) ExportPDF(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	_, err = oleutil.CallMethod(w.wb, "ExportAsFixedFormat", xlTypePDF, abs)
	return err
}

func (w *oleWorkbook) Close(save bool) error {
	_, err := oleutil.CallMethod(w.wb, "Close", save)
	w.wb.Release()
	return err
}

func (w *oleWorkbook) Sheet(name string) (Sheet, error) {
	if name == "" {
		return w.activeSheet()
	}
	sheets, err := dispatch(w.wb, "Worksheets")
	if err != nil {
		return nil, err
	}
	defer sheets.Release()
	count, err := intProperty(sheets, "Count")
	if err != nil {
		return nil, err
	}
	for i := 1; i <= count; i++ {
		ws, err := dispatch(sheets, "Item", i)
		if err != nil {
			return nil, err
		}
		wsName, err := stringProperty(ws, "Name")
		if err == nil && strings.EqualFold(wsName, name) {
			return &oleSheet{ws: ws, name: wsName}, nil
		}
		ws.Release()
		if err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: %q", workbook.ErrSheetNotFound, name)
}

func (w *oleWorkbook) activeSheet() (Sheet, error) {
	ws, err := dispatch(w.wb, "ActiveSheet")
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, fmt.Errorf("%w: no active sheet", workbook.ErrSheetNotFound)
	}
	name, err := stringProperty(ws, "Name")
	if err != nil {
		ws.Release()
		return nil, err
	}
	return &oleSheet{ws: ws, name: name}, nil
}

func (s *oleSheet) Name() string { return s.name }

func (s *oleSheet) AddTextBox(spec TextBoxSpec) error {
	tf, err := spec.resolve()
	if err != nil {
		return err
	}
	top, left, err := s.cellOrigin(spec.Cell)
	if err != nil {
		return err
	}
	shapes, err := dispatch(s.ws, "Shapes")
	if err != nil {
		return err
	}
	defer shapes.Release()

	v, err := oleutil.CallMethod(shapes, "AddTextbox", spec.Orientation, left, top, spec.Width, spec.Height)
	if err != nil {
		return err
	}
	shape := v.ToIDispatch()
	defer shape.Release()

	set := &propertySetter{}
	set.put(shape, "Name", spec.Name)
	set.put(shape, "Placement", spec.Placement)
	set.call(shape, "ZOrder", tf.zOrder)
	set.put(shape, "Locked", spec.Locked)
	if set.err != nil {
		return set.err
	}

	frame, err := dispatch(shape, "TextFrame")
	if err != nil {
		return err
	}
	defer frame.Release()
	chars, err := callDispatch(frame, "Characters")
	if err != nil {
		return err
	}
	defer chars.Release()
	set.put(chars, "Text", spec.Text)
	font, err := dispatch(chars, "Font")
	if err != nil {
		return err
	}
	defer font.Release()
	set.put(font, "Name", spec.FontName)
	set.put(font, "Size", spec.FontSize)
	set.put(font, "Bold", spec.Bold)
	set.put(font, "Italic", spec.Italic)
	set.put(font, "Underline", spec.Underline)
	if tf.textColor != nil {
		set.put(font, "Color", *tf.textColor)
	}
	set.put(frame, "HorizontalAlignment", tf.alignment)
	set.put(frame, "AutoSize", spec.AutoSize)
	set.put(frame, "MarginLeft", tf.marginL)
	set.put(frame, "MarginRight", tf.marginR)
	set.put(frame, "MarginTop", tf.marginT)
	set.put(frame, "MarginBottom", tf.marginB)
	set.put(frame, "Orientation", spec.TextOrientation)
	set.put(frame, "WrapText", spec.WrapText)
	if set.err != nil {
		return set.err
	}

	if tf.fillColor != nil {
		set.putPath(shape, []string{"Fill", "ForeColor"}, "RGB", *tf.fillColor)
	}
	if tf.lineColor != nil {
		set.putPath(shape, []string{"Line", "ForeColor"}, "RGB", *tf.lineColor)
	}
	set.putPath(shape, []string{"Line"}, "Weight", spec.LineWeight)
	if spec.Shadow {
		set.putPath(shape, []string{"Shadow"}, "Visible", true)
		if tf.shadowColor != nil {
			set.putPath(shape, []string{"Shadow", "ForeColor"}, "RGB", *tf.shadowColor)
		}
		set.putPath(shape, []string{"Shadow"}, "OffsetX", spec.ShadowOffset)
		set.putPath(shape, []string{"Shadow"}, "OffsetY", spec.ShadowOffset)
	}
	if set.err != nil {
		return set.err
	}
	logrus.WithFields(logrus.Fields{"sheet": s.name, "shape": spec.Name, "cell": spec.Cell}).Info("Textbox added")
	return nil
}

func (s *oleSheet) CopyShape(name string, dst Sheet, pos Position) (string, error) {
	target, ok := dst.(*oleSheet)
	if !ok {
		return "", fmt.Errorf("%w: destination sheet is not from this application", workbook.ErrInvalidArgument)
	}
	shape, err := s.findShape(name)
	if err != nil {
		return "", err
	}
	_, err = oleutil.CallMethod(shape, "Copy")
	shape.Release()
	if err != nil {
		return "", err
	}
	if _, err := oleutil.CallMethod(target.ws, "Paste"); err != nil {
		return "", err
	}

	shapes, err := dispatch(target.ws, "Shapes")
	if err != nil {
		return "", err
	}
	defer shapes.Release()
	count, err := intProperty(shapes, "Count")
	if err != nil {
		return "", err
	}
	pasted, err := dispatch(shapes, "Item", count)
	if err != nil {
		return "", err
	}
	defer pasted.Release()

	top, left := pos.Top, pos.Left
	if pos.Cell != "" {
		if top, left, err = target.cellOrigin(pos.Cell); err != nil {
			return "", err
		}
	}
	set := &propertySetter{}
	set.putPath(pasted, []string{"TextFrame"}, "AutoSize", true)
	set.put(pasted, "Top", top)
	set.put(pasted, "Left", left)
	if set.err != nil {
		return "", set.err
	}
	pastedName, err := stringProperty(pasted, "Name")
	if err != nil {
		return "", err
	}
	logrus.WithFields(logrus.Fields{
		"shape": name,
		"from":  s.name,
		"to":    target.name,
		"top":   top,
		"left":  left,
	}).Info("Shape copied")
	return pastedName, nil
}

func (s *oleSheet) EditShapeText(name, text string) error {
	shape, err := s.findShape(name)
	if err != nil {
		return err
	}
	defer shape.Release()
	top, err := floatProperty(shape, "Top")
	if err != nil {
		return err
	}
	left, err := floatProperty(shape, "Left")
	if err != nil {
		return err
	}

	frame, err := dispatch(shape, "TextFrame")
	if err != nil {
		return err
	}
	defer frame.Release()
	chars, err := callDispatch(frame, "Characters")
	if err != nil {
		return err
	}
	defer chars.Release()

	set := &propertySetter{}
	set.put(chars, "Text", text)
	set.put(frame, "AutoSize", true)
	set.put(shape, "Top", top)
	set.put(shape, "Left", left)
	if set.err != nil {
		return set.err
	}
	logrus.WithFields(logrus.Fields{"sheet": s.name, "shape": name}).Info("Shape text updated")
	return nil
}

func (s *oleSheet) DeleteShape(name string) error {
	shapes, err := dispatch(s.ws, "Shapes")
	if err != nil {
		return err
	}
	defer shapes.Release()
	count, err := intProperty(shapes, "Count")
	if err != nil {
		return err
	}
	deleted := 0
	// Walk backwards so deletions do not shift unvisited items.
	for i := count; i >= 1; i-- {
		shape, err := dispatch(shapes, "Item", i)
		if err != nil {
			return err
		}
		shapeName, err := stringProperty(shape, "Name")
		if err == nil && shapeName == name {
			_, err = oleutil.CallMethod(shape, "Delete")
			deleted++
		}
		shape.Release()
		if err != nil {
			return err
		}
	}
	if deleted == 0 {
		return fmt.Errorf("%w: %q on sheet %q", ErrShapeNotFound, name, s.name)
	}
	logrus.WithFields(logrus.Fields{"sheet": s.name, "shape": name, "count": deleted}).Info("Shape deleted")
	return nil
}

func (s *oleSheet) AutoFitColumn(column string) error {
	cols, err := dispatch(s.ws, "Columns", column)
	if err != nil {
		return err
	}
	defer cols.Release()
	_, err = oleutil.CallMethod(cols, "AutoFit")
	return err
}

func (s *oleSheet) AutoFitRow(row int) error {
	rows, err := dispatch(s.ws, "Rows", row)
	if err != nil {
		return err
	}
	defer rows.Release()
	_, err = oleutil.CallMethod(rows, "AutoFit")
	return err
}

func (s *oleSheet) findShape(name string) (*ole.IDispatch, error) {
	shapes, err := dispatch(s.ws, "Shapes")
	if err != nil {
		return nil, err
	}
	defer shapes.Release()
	count, err := intProperty(shapes, "Count")
	if err != nil {
		return nil, err
	}
	var names []string
	for i := 1; i <= count; i++ {
		shape, err := dispatch(shapes, "Item", i)
		if err != nil {
			return nil, err
		}
		shapeName, err := stringProperty(shape, "Name")
		if err == nil && shapeName == name {
			return shape, nil
		}
		shape.Release()
		if err != nil {
			return nil, err
		}
		names = append(names, shapeName)
	}
	logrus.WithFields(logrus.Fields{"sheet": s.name, "shape": name, "available": names}).Warn("Shape not found")
	return nil, fmt.Errorf("%w: %q on sheet %q", ErrShapeNotFound, name, s.name)
}

// cellOrigin returns the top and left offsets of a cell in points.
func (s *oleSheet) cellOrigin(cell string) (top, left float64, err error) {
	rng, err := dispatch(s.ws, "Range", cell)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: cell %q: %v", workbook.ErrInvalidArgument, cell, err)
	}
	defer rng.Release()
	if top, err = floatProperty(rng, "Top"); err != nil {
		return 0, 0, err
	}
	left, err = floatProperty(rng, "Left")
	return top, left, err
}

// propertySetter writes properties until the first failure.
type propertySetter struct {
	err error
}

func (p *propertySetter) put(d *ole.IDispatch, name string, value interface{}) {
	if p.err != nil {
		return
	}
	if _, err := oleutil.PutProperty(d, name, value); err != nil {
		p.err = fmt.Errorf("set %s: %w", name, err)
	}
}

func (p *propertySetter) call(d *ole.IDispatch, name string, args ...interface{}) {
	if p.err != nil {
		return
	}
	if _, err := oleutil.CallMethod(d, name, args...); err != nil {
		p.err = fmt.Errorf("call %s: %w", name, err)
	}
}

// putPath follows a chain of object properties and sets name on the last one.
func (p *propertySetter) putPath(d *ole.IDispatch, path []string, name string, value interface{}) {
	if p.err != nil {
		return
	}
	cur := d
	for _, step := range path {
		next, err := dispatch(cur, step)
		if cur != d {
			cur.Release()
		}
		if err != nil {
			p.err = err
			return
		}
		cur = next
	}
	p.put(cur, name, value)
	if cur != d {
		cur.Release()
	}
}

func dispatch(d *ole.IDispatch, name string, params ...interface{}) (*ole.IDispatch, error) {
	v, err := oleutil.GetProperty(d, name, params...)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", name, err)
	}
	return v.ToIDispatch(), nil
}

func callDispatch(d *ole.IDispatch, name string, params ...interface{}) (*ole.IDispatch, error) {
	v, err := oleutil.CallMethod(d, name, params...)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", name, err)
	}
	return v.ToIDispatch(), nil
}

func stringProperty(d *ole.IDispatch, name string) (string, error) {
	v, err := oleutil.GetProperty(d, name)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", name, err)
	}
	defer v.Clear()
	return v.ToString(), nil
}

func intProperty(d *ole.IDispatch, name string) (int, error) {
	v, err := oleutil.GetProperty(d, name)
	if err != nil {
		return 0, fmt.Errorf("get %s: %w", name, err)
	}
	return int(v.Val), nil
}

func boolProperty(d *ole.IDispatch, name string) (bool, error) {
	v, err := oleutil.GetProperty(d, name)
	if err != nil {
		return false, fmt.Errorf("get %s: %w", name, err)
	}
	b, _ := v.Value().(bool)
	return b, nil
}

func floatProperty(d *ole.IDispatch, name string) (float64, error) {
	v, err := oleutil.GetProperty(d, name)
	if err != nil {
		return 0, fmt.Errorf("get %s: %w", name, err)
	}
	switch n := v.Value().(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	}
	return 0, fmt.Errorf("get %s: unexpected type %T", name, v.Value())
}
