package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ukaji3/exhelper-go/pkg/exhelper/parser"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/workbook"
)

// Horizontal text alignment values of a shape's text frame.
const (
	xlHAlignLeft   = -4131
	xlHAlignCenter = -4108
	xlHAlignRight  = -4152
)

// Z-order commands.
const (
	msoBringToFront = 0
	msoSendToBack   = 1
)

// TextBoxSpec describes a named textbox. Use DefaultTextBox for the
// defaults and override what differs.
type TextBoxSpec struct {
	Name string `json:"name" yaml:"name"`
	Text string `json:"text" yaml:"text"`
	Cell string `json:"cell" yaml:"cell"`

	// Width and Height are in points.
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`

	// Orientation is the text orientation of the new shape (1 = horizontal).
	Orientation int `json:"orientation" yaml:"orientation"`
	// Placement is how the shape follows its cells (3 = free floating).
	Placement int `json:"placement" yaml:"placement"`

	FontName  string  `json:"font_name" yaml:"font_name"`
	FontSize  float64 `json:"font_size" yaml:"font_size"`
	Bold      bool    `json:"bold" yaml:"bold"`
	Italic    bool    `json:"italic" yaml:"italic"`
	Underline bool    `json:"underline" yaml:"underline"`
	// Colours are hex RGB strings such as "FF0000". Empty leaves the
	// application default.
	TextColor  string  `json:"text_color,omitempty" yaml:"text_color,omitempty"`
	FillColor  string  `json:"fill_color,omitempty" yaml:"fill_color,omitempty"`
	LineColor  string  `json:"line_color" yaml:"line_color"`
	LineWeight float64 `json:"line_weight" yaml:"line_weight"`
	// Alignment is "left", "center" or "right".
	Alignment string `json:"alignment" yaml:"alignment"`

	// Margins are in centimetres.
	MarginLeft   float64 `json:"margin_left" yaml:"margin_left"`
	MarginRight  float64 `json:"margin_right" yaml:"margin_right"`
	MarginTop    float64 `json:"margin_top" yaml:"margin_top"`
	MarginBottom float64 `json:"margin_bottom" yaml:"margin_bottom"`

	AutoSize     bool    `json:"auto_size" yaml:"auto_size"`
	Shadow       bool    `json:"shadow" yaml:"shadow"`
	ShadowColor  string  `json:"shadow_color,omitempty" yaml:"shadow_color,omitempty"`
	ShadowOffset float64 `json:"shadow_offset" yaml:"shadow_offset"`
	// TextOrientation is the text frame orientation applied after creation.
	TextOrientation int  `json:"text_orientation" yaml:"text_orientation"`
	WrapText        bool `json:"wrap_text" yaml:"wrap_text"`
	SendToBack      bool `json:"send_to_back" yaml:"send_to_back"`
	Locked          bool `json:"locked" yaml:"locked"`
}

// DefaultTextBox returns a textbox spec with the usual defaults.
func DefaultTextBox(name, text string) TextBoxSpec {
	return TextBoxSpec{
		Name:         name,
		Text:         text,
		Cell:         "A1",
		Width:        100,
		Height:       20,
		Orientation:  1,
		Placement:    3,
		FontName:     "Verdana",
		FontSize:     10,
		LineColor:    "000000",
		LineWeight:   1,
		Alignment:    "left",
		MarginLeft:   0.2,
		MarginRight:  0.2,
		MarginTop:    0.1,
		MarginBottom: 0.1,
		AutoSize:     true,
		ShadowOffset: 1,
	}
}

// textFrame holds the derived values the backend writes.
type textFrame struct {
	alignment              int
	zOrder                 int
	textColor, fillColor   *int32
	lineColor, shadowColor *int32
	marginL, marginR       float64
	marginT, marginB       float64
}

func (s TextBoxSpec) resolve() (textFrame, error) {
	var tf textFrame
	if strings.TrimSpace(s.Name) == "" {
		return tf, fmt.Errorf("%w: textbox name is required", workbook.ErrInvalidArgument)
	}
	if s.Width <= 0 || s.Height <= 0 {
		return tf, fmt.Errorf("%w: textbox size %gx%g", workbook.ErrInvalidArgument, s.Width, s.Height)
	}
	switch strings.ToLower(s.Alignment) {
	case "", "left":
		tf.alignment = xlHAlignLeft
	case "center":
		tf.alignment = xlHAlignCenter
	case "right":
		tf.alignment = xlHAlignRight
	default:
		return tf, fmt.Errorf("%w: alignment %q", workbook.ErrInvalidArgument, s.Alignment)
	}
	tf.zOrder = msoBringToFront
	if s.SendToBack {
		tf.zOrder = msoSendToBack
	}

	var err error
	for _, c := range []struct {
		hex string
		dst **int32
	}{
		{s.TextColor, &tf.textColor},
		{s.FillColor, &tf.fillColor},
		{s.LineColor, &tf.lineColor},
		{s.ShadowColor, &tf.shadowColor},
	} {
		if c.hex == "" {
			continue
		}
		v, cerr := ColorValue(c.hex)
		if cerr != nil {
			err = cerr
			break
		}
		*c.dst = &v
	}
	if err != nil {
		return tf, err
	}

	tf.marginL = parser.CentimetresToPoints(s.MarginLeft)
	tf.marginR = parser.CentimetresToPoints(s.MarginRight)
	tf.marginT = parser.CentimetresToPoints(s.MarginTop)
	tf.marginB = parser.CentimetresToPoints(s.MarginBottom)
	return tf, nil
}

// ColorValue converts a hex RGB string to the application's colour value,
// which stores red in the low byte.
func ColorValue(hex string) (int32, error) {
	h := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(h) != 6 {
		return 0, fmt.Errorf("%w: colour %q", workbook.ErrInvalidArgument, hex)
	}
	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: colour %q", workbook.ErrInvalidArgument, hex)
	}
	r, g, b := n>>16&0xFF, n>>8&0xFF, n&0xFF
	return int32(r | g<<8 | b<<16), nil
}
