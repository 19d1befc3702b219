// Package style applies cell formatting to ranges and sizes columns and rows
// to their content.
package style

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/parser"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/workbook"
	"github.com/xuri/excelize/v2"
)

// Border placement.
const (
	// BordersSurround draws only the outline of the range.
	BordersSurround = "surround"
	// BordersAll draws every cell edge inside the range.
	BordersAll = "all"
)

// borderStyles maps border style names to excelize border style indexes.
var borderStyles = map[string]int{
	"none": 0, "thin": 1, "medium": 2, "dashed": 3, "dotted": 4,
	"thick": 5, "double": 6, "hair": 7, "mediumdashed": 8, "dashdot": 9,
	"mediumdashdot": 10, "dashdotdot": 11, "mediumdashdotdot": 12, "slantdashdot": 13,
}

var horizontalAlignments = map[string]string{
	"general": "general", "left": "left", "center": "center", "right": "right",
	"fill": "fill", "justify": "justify", "centercontinuous": "centerContinuous",
	"distributed": "distributed",
}

var verticalAlignments = map[string]string{
	"top": "top", "center": "center", "bottom": "bottom",
	"justify": "justify", "distributed": "distributed",
}

// RangeStyle lists the formatting to apply. Zero values and nil pointers
// leave the existing formatting of each cell alone.
type RangeStyle struct {
	FontName      string  `json:"font_name,omitempty" yaml:"font_name,omitempty"`
	FontSize      float64 `json:"font_size,omitempty" yaml:"font_size,omitempty"`
	FontColor     string  `json:"font_color,omitempty" yaml:"font_color,omitempty"`
	Bold          *bool   `json:"bold,omitempty" yaml:"bold,omitempty"`
	Italic        *bool   `json:"italic,omitempty" yaml:"italic,omitempty"`
	Underline     *bool   `json:"underline,omitempty" yaml:"underline,omitempty"`
	Strikethrough *bool   `json:"strikethrough,omitempty" yaml:"strikethrough,omitempty"`

	// BorderStyle is a line style name such as "thin", "thick" or "dashed".
	BorderStyle string `json:"border_style,omitempty" yaml:"border_style,omitempty"`
	BorderColor string `json:"border_color,omitempty" yaml:"border_color,omitempty"`
	// BorderType is BordersSurround (default) or BordersAll.
	BorderType string `json:"border_type,omitempty" yaml:"border_type,omitempty"`

	FillColor string `json:"fill_color,omitempty" yaml:"fill_color,omitempty"`

	HorizontalAlignment string `json:"horizontal_alignment,omitempty" yaml:"horizontal_alignment,omitempty"`
	VerticalAlignment   string `json:"vertical_alignment,omitempty" yaml:"vertical_alignment,omitempty"`
	WrapText            *bool  `json:"wrap_text,omitempty" yaml:"wrap_text,omitempty"`

	// NumberFormat is a format code such as "#,##0.00" or "yyyy-mm-dd".
	NumberFormat string `json:"number_format,omitempty" yaml:"number_format,omitempty"`
}

// edges selects which cell borders a cell receives.
type edges struct {
	left, right, top, bottom bool
}

type styleKey struct {
	base  int
	edges edges
}

// ApplyRange merges the formatting into every cell of an A1 range. Each
// cell keeps the properties the RangeStyle does not mention.
func ApplyRange(wb *workbook.Workbook, sheetName, rangeRef string, rs RangeStyle) error {
	sheetName, err := wb.SheetName(sheetName)
	if err != nil {
		return err
	}
	area, err := parser.ParseRange(rangeRef)
	if err != nil {
		return fmt.Errorf("%w: %v", workbook.ErrInvalidArgument, err)
	}
	spec, err := compile(rs)
	if err != nil {
		return err
	}

	f := wb.File()
	created := map[styleKey]int{}
	for r := area.R1; r <= area.R2; r++ {
		for c := area.C1; c <= area.C2; c++ {
			cell, err := excelize.CoordinatesToCellName(c, r)
			if err != nil {
				return err
			}
			base, err := f.GetCellStyle(sheetName, cell)
			if err != nil {
				return err
			}
			var e edges
			if spec.hasBorder {
				if spec.allBorders {
					e = edges{true, true, true, true}
				} else {
					e = edges{left: c == area.C1, right: c == area.C2, top: r == area.R1, bottom: r == area.R2}
				}
			}
			key := styleKey{base: base, edges: e}
			id, ok := created[key]
			if !ok {
				current, err := f.GetStyle(base)
				if err != nil {
					return err
				}
				if id, err = f.NewStyle(spec.merge(current, e)); err != nil {
					return fmt.Errorf("%w: %v", workbook.ErrInvalidArgument, err)
				}
				created[key] = id
			}
			if err := f.SetCellStyle(sheetName, cell, cell, id); err != nil {
				return err
			}
		}
	}
	wb.Touch()
	logrus.WithFields(logrus.Fields{
		"sheet": sheetName,
		"range": rangeRef,
		"count": len(created),
	}).Info("Range style applied")
	return nil
}

// compiled is a validated RangeStyle.
type compiled struct {
	rs          RangeStyle
	hasBorder   bool
	allBorders  bool
	borderIndex int
	horizontal  string
	vertical    string
}

func compile(rs RangeStyle) (compiled, error) {
	c := compiled{rs: rs}
	if rs.BorderStyle != "" {
		idx, ok := borderStyles[strings.ToLower(rs.BorderStyle)]
		if !ok {
			return c, fmt.Errorf("%w: border style %q", workbook.ErrInvalidArgument, rs.BorderStyle)
		}
		c.hasBorder, c.borderIndex = true, idx
		switch strings.ToLower(rs.BorderType) {
		case "", BordersSurround:
		case BordersAll:
			c.allBorders = true
		default:
			return c, fmt.Errorf("%w: border type %q", workbook.ErrInvalidArgument, rs.BorderType)
		}
	}
	if rs.HorizontalAlignment != "" {
		h, ok := horizontalAlignments[strings.ToLower(rs.HorizontalAlignment)]
		if !ok {
			return c, fmt.Errorf("%w: horizontal alignment %q", workbook.ErrInvalidArgument, rs.HorizontalAlignment)
		}
		c.horizontal = h
	}
	if rs.VerticalAlignment != "" {
		v, ok := verticalAlignments[strings.ToLower(rs.VerticalAlignment)]
		if !ok {
			return c, fmt.Errorf("%w: vertical alignment %q", workbook.ErrInvalidArgument, rs.VerticalAlignment)
		}
		c.vertical = v
	}
	return c, nil
}

func (c compiled) merge(s *excelize.Style, e edges) *excelize.Style {
	if s == nil {
		s = &excelize.Style{}
	}
	rs := c.rs

	if s.Font == nil {
		s.Font = &excelize.Font{}
	}
	if rs.FontName != "" {
		s.Font.Family = rs.FontName
	}
	if rs.FontSize > 0 {
		s.Font.Size = rs.FontSize
	}
	if rs.FontColor != "" {
		s.Font.Color = hexColor(rs.FontColor)
	}
	if rs.Bold != nil {
		s.Font.Bold = *rs.Bold
	}
	if rs.Italic != nil {
		s.Font.Italic = *rs.Italic
	}
	if rs.Underline != nil {
		s.Font.Underline = ""
		if *rs.Underline {
			s.Font.Underline = "single"
		}
	}
	if rs.Strikethrough != nil {
		s.Font.Strike = *rs.Strikethrough
	}

	if c.hasBorder {
		set := map[string]bool{"left": e.left, "right": e.right, "top": e.top, "bottom": e.bottom}
		var kept []excelize.Border
		for _, b := range s.Border {
			if !set[b.Type] {
				kept = append(kept, b)
			}
		}
		for _, side := range []string{"left", "right", "top", "bottom"} {
			if set[side] {
				kept = append(kept, excelize.Border{Type: side, Style: c.borderIndex, Color: hexColor(rs.BorderColor)})
			}
		}
		s.Border = kept
	}

	if rs.FillColor != "" {
		s.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{hexColor(rs.FillColor)}}
	}

	if c.horizontal != "" || c.vertical != "" || rs.WrapText != nil {
		if s.Alignment == nil {
			s.Alignment = &excelize.Alignment{}
		}
		if c.horizontal != "" {
			s.Alignment.Horizontal = c.horizontal
		}
		if c.vertical != "" {
			s.Alignment.Vertical = c.vertical
		}
		if rs.WrapText != nil {
			s.Alignment.WrapText = *rs.WrapText
		}
	}

	if rs.NumberFormat != "" {
		format := rs.NumberFormat
		s.CustomNumFmt = &format
		s.NumFmt = 0
	}
	return s
}

func hexColor(c string) string {
	return strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(c), "#"))
}
