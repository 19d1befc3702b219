// Package shapes searches drawing shapes by text and adds textboxes to
// worksheets.
package shapes

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/models"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/parser"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/workbook"
	"github.com/xuri/excelize/v2"
)

// FindShapesWithText returns the names of the shapes on a sheet whose text
// equals text (exact) or contains it. An empty sheet name selects the active
// sheet.
func FindShapesWithText(path, sheetName, text string, exact bool) ([]string, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: search text is required", workbook.ErrInvalidArgument)
	}
	wb, err := workbook.Open(path, workbook.OpenOptions{ReadOnly: true})
	if err != nil {
		return nil, err
	}
	sheetName, err = wb.SheetName(sheetName)
	wb.Close()
	if err != nil {
		return nil, err
	}

	all, err := parser.ExtractShapes(path)
	if err != nil {
		return nil, err
	}

	log := logrus.WithFields(logrus.Fields{"sheet": sheetName, "text": text, "exact": exact})
	names := MatchText(all[sheetName], text, exact)
	if len(names) == 0 {
		log.Warn("No shapes found with the given text")
	} else {
		log.WithField("shapes", names).Info("Shapes with text found")
	}
	return names, nil
}

// MatchText filters shapes by their text and returns their names.
func MatchText(shapes []models.Shape, text string, exact bool) []string {
	var names []string
	for _, s := range shapes {
		if s.Text == "" {
			continue
		}
		if (exact && s.Text == text) || (!exact && strings.Contains(s.Text, text)) {
			names = append(names, s.Name)
		}
	}
	return names
}

// TextBox describes a textbox placed over a worksheet.
type TextBox struct {
	// Cell is the anchor cell of the top-left corner.
	Cell string
	// Text is the content; each line becomes a paragraph.
	Text string
	// Width and Height are in pixels.
	Width, Height uint
	// OffsetX and OffsetY shift the box from the anchor cell, in pixels.
	OffsetX, OffsetY int

	FontName  string
	FontSize  float64
	FontColor string
	Bold      bool
	Italic    bool
	Underline bool

	// FillColor is an RGB hex colour; empty leaves the default fill.
	FillColor string
	// LineColor is an RGB hex colour; empty leaves the default outline.
	LineColor string
	// LineWidth is in points; zero keeps the default.
	LineWidth float64
	// AltText is stored as the drawing's description.
	AltText string
}

// AddTextBox draws a rectangle holding text on a sheet. Shapes added this way
// get generated names; naming and later editing a textbox is done through a
// running spreadsheet application.
func AddTextBox(wb *workbook.Workbook, sheetName string, box TextBox) error {
	if box.Cell == "" {
		return fmt.Errorf("%w: anchor cell is required", workbook.ErrInvalidArgument)
	}
	if _, _, err := excelize.CellNameToCoordinates(box.Cell); err != nil {
		return fmt.Errorf("%w: %v", workbook.ErrInvalidArgument, err)
	}
	sheetName, err := wb.SheetName(sheetName)
	if err != nil {
		return err
	}

	font := &excelize.Font{
		Family: box.FontName,
		Size:   box.FontSize,
		Color:  strings.TrimPrefix(box.FontColor, "#"),
		Bold:   box.Bold,
		Italic: box.Italic,
	}
	if font.Family == "" {
		font.Family = "Calibri"
	}
	if font.Size == 0 {
		font.Size = 11
	}
	if font.Color == "" {
		font.Color = "000000"
	}
	if box.Underline {
		font.Underline = "sng"
	}

	var paragraphs []excelize.RichTextRun
	for _, line := range strings.Split(box.Text, "\n") {
		paragraphs = append(paragraphs, excelize.RichTextRun{Text: line, Font: font})
	}

	shape := &excelize.Shape{
		Cell:      box.Cell,
		Type:      "rect",
		Width:     box.Width,
		Height:    box.Height,
		Paragraph: paragraphs,
		Format: excelize.GraphicOptions{
			AltText: box.AltText,
			OffsetX: box.OffsetX,
			OffsetY: box.OffsetY,
		},
		Line: excelize.ShapeLine{Color: strings.TrimPrefix(box.LineColor, "#")},
	}
	if box.LineWidth > 0 {
		width := box.LineWidth
		shape.Line.Width = &width
	}
	if box.FillColor != "" {
		shape.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{strings.TrimPrefix(box.FillColor, "#")}}
	}

	if err := wb.File().AddShape(sheetName, shape); err != nil {
		return fmt.Errorf("add textbox to %q: %w", sheetName, err)
	}
	wb.Touch()
	logrus.WithFields(logrus.Fields{"sheet": sheetName, "cell": box.Cell}).Info("Textbox added")
	return nil
}
