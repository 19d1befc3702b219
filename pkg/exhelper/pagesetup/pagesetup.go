// Package pagesetup reads, compares and writes worksheet print settings.
package pagesetup

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/models"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/parser"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/workbook"
	"github.com/xuri/excelize/v2"
)

// paperLetter is what the file format assumes when no paper size is stored.
const paperLetter = 1

// Read returns the current print settings of a sheet. Fit-to-page values
// are zero unless fit-to-page printing is enabled.
func Read(wb *workbook.Workbook, sheetName string) (models.PageSetup, error) {
	f := wb.File()
	sheetName, err := wb.SheetName(sheetName)
	if err != nil {
		return models.PageSetup{}, err
	}

	var ps models.PageSetup
	margins, err := f.GetPageMargins(sheetName)
	if err != nil {
		return ps, err
	}
	ps.LeftMargin = deref(margins.Left)
	ps.RightMargin = deref(margins.Right)
	ps.TopMargin = deref(margins.Top)
	ps.BottomMargin = deref(margins.Bottom)
	ps.HeaderMargin = deref(margins.Header)
	ps.FooterMargin = deref(margins.Footer)
	ps.CenterHorizontally = margins.Horizontally != nil && *margins.Horizontally
	ps.CenterVertically = margins.Vertically != nil && *margins.Vertically

	layout, err := f.GetPageLayout(sheetName)
	if err != nil {
		return ps, err
	}
	ps.PaperSize = paperLetter
	if layout.Size != nil && *layout.Size > 0 {
		ps.PaperSize = *layout.Size
	}

	props, err := f.GetSheetProps(sheetName)
	if err != nil {
		return ps, err
	}
	if props.FitToPage != nil && *props.FitToPage {
		ps.FitToPagesWide, ps.FitToPagesTall = 1, 1
		if layout.FitToWidth != nil {
			ps.FitToPagesWide = *layout.FitToWidth
		}
		if layout.FitToHeight != nil {
			ps.FitToPagesTall = *layout.FitToHeight
		}
	}

	hf, err := f.GetHeaderFooter(sheetName)
	if err != nil {
		return ps, err
	}
	if hf != nil {
		header := ParseHeaderFooter(hf.OddHeader)
		footer := ParseHeaderFooter(hf.OddFooter)
		ps.LeftHeader, ps.CenterHeader, ps.RightHeader = header.Left, header.Center, header.Right
		ps.LeftFooter, ps.CenterFooter, ps.RightFooter = footer.Left, footer.Center, footer.Right
	}

	areas, err := parser.ExtractPrintAreas(f)
	if err != nil {
		return ps, err
	}
	if sheetAreas := areas[sheetName]; len(sheetAreas) > 0 {
		if ps.PrintArea, err = parser.FormatRange(sheetAreas[0], false); err != nil {
			return ps, err
		}
	}

	logrus.WithField("sheet", sheetName).Debug("Page setup read")
	return ps, nil
}

// Apply writes print settings to a sheet. An empty PrintArea clears the
// sheet's print area. FitToPagesWide and FitToPagesTall both zero disable
// fit-to-page printing.
func Apply(wb *workbook.Workbook, sheetName string, ps models.PageSetup) error {
	f := wb.File()
	sheetName, err := wb.SheetName(sheetName)
	if err != nil {
		return err
	}
	if err := validate(ps); err != nil {
		return err
	}

	if err := f.SetPageMargins(sheetName, &excelize.PageLayoutMarginsOptions{
		Left:         &ps.LeftMargin,
		Right:        &ps.RightMargin,
		Top:          &ps.TopMargin,
		Bottom:       &ps.BottomMargin,
		Header:       &ps.HeaderMargin,
		Footer:       &ps.FooterMargin,
		Horizontally: &ps.CenterHorizontally,
		Vertically:   &ps.CenterVertically,
	}); err != nil {
		return err
	}

	layout := &excelize.PageLayoutOptions{Size: &ps.PaperSize}
	fitToPage := ps.FitToPagesWide > 0 || ps.FitToPagesTall > 0
	if fitToPage {
		layout.FitToWidth = &ps.FitToPagesWide
		layout.FitToHeight = &ps.FitToPagesTall
	}
	if err := f.SetPageLayout(sheetName, layout); err != nil {
		return err
	}
	if err := f.SetSheetProps(sheetName, &excelize.SheetPropsOptions{FitToPage: &fitToPage}); err != nil {
		return err
	}

	header := Sections{Left: ps.LeftHeader, Center: ps.CenterHeader, Right: ps.RightHeader}.Compose()
	footer := Sections{Left: ps.LeftFooter, Center: ps.CenterFooter, Right: ps.RightFooter}.Compose()
	hf := &excelize.HeaderFooterOptions{OddHeader: header, OddFooter: footer}
	if header == "" && footer == "" {
		hf = nil
	}
	if err := f.SetHeaderFooter(sheetName, hf); err != nil {
		return fmt.Errorf("%w: %v", workbook.ErrInvalidArgument, err)
	}

	if err := setPrintArea(f, sheetName, ps.PrintArea); err != nil {
		return err
	}
	wb.Touch()
	logrus.WithFields(logrus.Fields{
		"sheet":      sheetName,
		"paper_size": ps.PaperSize,
		"print_area": ps.PrintArea,
	}).Info("Page setup applied")
	return nil
}

func validate(ps models.PageSetup) error {
	margins := map[string]float64{
		"left": ps.LeftMargin, "right": ps.RightMargin,
		"top": ps.TopMargin, "bottom": ps.BottomMargin,
		"header": ps.HeaderMargin, "footer": ps.FooterMargin,
	}
	for name, v := range margins {
		if v < 0 {
			return fmt.Errorf("%w: %s margin %v is negative", workbook.ErrInvalidArgument, name, v)
		}
	}
	if ps.PaperSize < 1 {
		return fmt.Errorf("%w: paper size %d", workbook.ErrInvalidArgument, ps.PaperSize)
	}
	if ps.FitToPagesWide < 0 || ps.FitToPagesTall < 0 {
		return fmt.Errorf("%w: fit-to-page counts must not be negative", workbook.ErrInvalidArgument)
	}
	sections := []struct{ name, text string }{
		{"left header", ps.LeftHeader}, {"center header", ps.CenterHeader}, {"right header", ps.RightHeader},
		{"left footer", ps.LeftFooter}, {"center footer", ps.CenterFooter}, {"right footer", ps.RightFooter},
	}
	for _, sec := range sections {
		if hasSectionCode(sec.text) {
			return fmt.Errorf("%w: %s %q contains a section code (&L, &C or &R)", workbook.ErrInvalidArgument, sec.name, sec.text)
		}
	}
	return nil
}

func setPrintArea(f *excelize.File, sheetName, ref string) error {
	err := f.DeleteDefinedName(&excelize.DefinedName{Name: parser.PrintAreaName, Scope: sheetName})
	if err != nil && !errors.Is(err, excelize.ErrDefinedNameScope) {
		return err
	}
	if strings.TrimSpace(ref) == "" {
		return nil
	}
	area, err := parser.ParseRange(ref)
	if err != nil {
		return fmt.Errorf("%w: print area: %v", workbook.ErrInvalidArgument, err)
	}
	refersTo, err := parser.PrintAreaReference(sheetName, area)
	if err != nil {
		return err
	}
	return f.SetDefinedName(&excelize.DefinedName{
		Name:     parser.PrintAreaName,
		RefersTo: refersTo,
		Scope:    sheetName,
	})
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
