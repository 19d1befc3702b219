package main

import (
	"github.com/spf13/cobra"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/locator"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/shapes"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/style"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/workbook"
)

func newStyleCmd() *cobra.Command {
	var (
		profile string
		rs      style.RangeStyle
		bold    bool
		italic  bool
		under   bool
		strike  bool
		wrap    bool
	)
	cmd := &cobra.Command{
		Use:   "style <workbook> <range>",
		Short: "Apply font, border, fill, alignment and number format to a range",
		Long: `Starts from --profile (a style from the configuration file) and applies
the flags given on top. Properties not mentioned keep each cell's current
formatting.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			applied := style.RangeStyle{}
			if profile != "" {
				p, err := cfg.Style(profile)
				if err != nil {
					return fail("style", err)
				}
				applied = p
			}
			overrideStyle(cmd, &applied, rs)
			for _, b := range []struct {
				flag string
				val  bool
				dst  **bool
			}{
				{"bold", bold, &applied.Bold},
				{"italic", italic, &applied.Italic},
				{"underline", under, &applied.Underline},
				{"strikethrough", strike, &applied.Strikethrough},
				{"wrap-text", wrap, &applied.WrapText},
			} {
				if cmd.Flags().Changed(b.flag) {
					v := b.val
					*b.dst = &v
				}
			}
			err := edit(args[0], func(wb *workbook.Workbook) error {
				return style.ApplyRange(wb, targetSheet(), args[1], applied)
			})
			if err != nil {
				return fail("style", err)
			}
			return emit(cmd, map[string]string{"range": args[1], "status": "styled"})
		},
	}
	f := cmd.Flags()
	f.StringVar(&profile, "profile", "", "Style profile from the configuration file")
	f.StringVar(&rs.FontName, "font-name", "", "Font family")
	f.Float64Var(&rs.FontSize, "font-size", 0, "Font size in points")
	f.StringVar(&rs.FontColor, "font-color", "", "Font colour as hex RGB")
	f.BoolVar(&bold, "bold", false, "Bold text")
	f.BoolVar(&italic, "italic", false, "Italic text")
	f.BoolVar(&under, "underline", false, "Underlined text")
	f.BoolVar(&strike, "strikethrough", false, "Struck-through text")
	f.StringVar(&rs.BorderStyle, "border-style", "", "Border line: thin, medium, thick, dashed, dotted, double, hair, ...")
	f.StringVar(&rs.BorderColor, "border-color", "", "Border colour as hex RGB")
	f.StringVar(&rs.BorderType, "border-type", "", "surround (outline only) or all")
	f.StringVar(&rs.FillColor, "fill-color", "", "Background colour as hex RGB")
	f.StringVar(&rs.HorizontalAlignment, "align", "", "Horizontal alignment: left, center, right, ...")
	f.StringVar(&rs.VerticalAlignment, "valign", "", "Vertical alignment: top, center, bottom, ...")
	f.BoolVar(&wrap, "wrap-text", false, "Wrap text in cells")
	f.StringVar(&rs.NumberFormat, "number-format", "", `Number format code, e.g. "#,##0.00"`)
	return cmd
}

// overrideStyle copies the string and number flags the user set onto dst.
func overrideStyle(cmd *cobra.Command, dst *style.RangeStyle, src style.RangeStyle) {
	changed := cmd.Flags().Changed
	for flag, pair := range map[string][2]*string{
		"font-name":     {&dst.FontName, &src.FontName},
		"font-color":    {&dst.FontColor, &src.FontColor},
		"border-style":  {&dst.BorderStyle, &src.BorderStyle},
		"border-color":  {&dst.BorderColor, &src.BorderColor},
		"border-type":   {&dst.BorderType, &src.BorderType},
		"fill-color":    {&dst.FillColor, &src.FillColor},
		"align":         {&dst.HorizontalAlignment, &src.HorizontalAlignment},
		"valign":        {&dst.VerticalAlignment, &src.VerticalAlignment},
		"number-format": {&dst.NumberFormat, &src.NumberFormat},
	} {
		if changed(flag) {
			*pair[0] = *pair[1]
		}
	}
	if changed("font-size") {
		dst.FontSize = src.FontSize
	}
}

func newAutoFitCmd() *cobra.Command {
	var (
		columns []string
		rows    []int
	)
	cmd := &cobra.Command{
		Use:   "autofit <workbook>",
		Short: "Size columns and rows to their content",
		Long: `Estimates widths and heights from the cell text and font size. Use
"app autofit" to let a running Excel instance measure instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			widths := map[string]float64{}
			heights := map[int]float64{}
			err := edit(args[0], func(wb *workbook.Workbook) error {
				for _, c := range columns {
					w, err := style.AutoFitColumn(wb, targetSheet(), locator.ParseColumn(c))
					if err != nil {
						return err
					}
					widths[c] = w
				}
				for _, r := range rows {
					h, err := style.AutoFitRow(wb, targetSheet(), r)
					if err != nil {
						return err
					}
					heights[r] = h
				}
				return nil
			})
			if err != nil {
				return fail("autofit", err)
			}
			return emit(cmd, map[string]interface{}{"columns": widths, "rows": heights})
		},
	}
	cmd.Flags().StringSliceVar(&columns, "column", nil, "Column to fit, letter or index (repeatable)")
	cmd.Flags().IntSliceVar(&rows, "row", nil, "Row to fit (repeatable)")
	return cmd
}

func newTextBoxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "textbox",
		Short: "Edit textboxes in the workbook file",
	}
	var box shapes.TextBox
	add := &cobra.Command{
		Use:   "add <workbook> <cell> <text>",
		Short: "Add a textbox anchored at a cell",
		Long: `Adds a textbox without a running Excel instance. The shape gets a generated
name; use "app textbox" to create a named textbox.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			box.Cell, box.Text = args[1], args[2]
			err := edit(args[0], func(wb *workbook.Workbook) error {
				return shapes.AddTextBox(wb, targetSheet(), box)
			})
			if err != nil {
				return fail("textbox add", err)
			}
			return emit(cmd, map[string]string{"cell": box.Cell, "status": "added"})
		},
	}
	f := add.Flags()
	f.UintVar(&box.Width, "width", 160, "Width in pixels")
	f.UintVar(&box.Height, "height", 40, "Height in pixels")
	f.IntVar(&box.OffsetX, "offset-x", 0, "Horizontal offset from the cell in pixels")
	f.IntVar(&box.OffsetY, "offset-y", 0, "Vertical offset from the cell in pixels")
	f.StringVar(&box.FontName, "font-name", "", "Font family (default Calibri)")
	f.Float64Var(&box.FontSize, "font-size", 0, "Font size in points (default 11)")
	f.StringVar(&box.FontColor, "font-color", "", "Font colour as hex RGB")
	f.BoolVar(&box.Bold, "bold", false, "Bold text")
	f.BoolVar(&box.Italic, "italic", false, "Italic text")
	f.BoolVar(&box.Underline, "underline", false, "Underlined text")
	f.StringVar(&box.FillColor, "fill-color", "", "Fill colour as hex RGB")
	f.StringVar(&box.LineColor, "line-color", "", "Outline colour as hex RGB")
	f.Float64Var(&box.LineWidth, "line-width", 0, "Outline width in points")
	f.StringVar(&box.AltText, "alt-text", "", "Alternative text")
	cmd.AddCommand(add)
	return cmd
}
