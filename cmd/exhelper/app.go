package main

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/app"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/models"
)

var appOpts app.Options

func newAppCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "app",
		Short: "Operations that need a running Excel instance",
		Long: `These commands automate Excel over COM and only work on Windows with Excel
installed.`,
	}
	cmd.PersistentFlags().BoolVar(&appOpts.Visible, "visible", false, "Show the Excel window")
	cmd.PersistentFlags().BoolVar(&appOpts.DisplayAlerts, "alerts", false, "Let Excel show prompts")
	cmd.PersistentFlags().BoolVar(&appOpts.Attach, "attach", false, "Reuse a running Excel instance")

	cmd.AddCommand(
		newAppListCmd(),
		newAppPDFCmd(),
		newAppConvertCmd(),
		newAppSaveActiveCmd(),
		newAppTextBoxCmd(),
		newAppCopyShapeCmd(),
		newAppEditShapeCmd(),
		newAppDeleteShapeCmd(),
		newAppAutoFitCmd(),
	)
	return cmd
}

// withApp connects to Excel for the duration of fn.
func withApp(fn func(a app.Application) error) error {
	a, err := app.Connect(appOpts)
	if err != nil {
		return err
	}
	defer a.Release()
	return fn(a)
}

// withSheet opens path in Excel, runs fn on the selected sheet and closes the
// workbook, saving it when fn succeeds.
func withSheet(path string, fn func(s app.Sheet) error) error {
	return withApp(func(a app.Application) error {
		wb, err := a.OpenWorkbook(path, app.OpenOptions{Password: password})
		if err != nil {
			return err
		}
		s, err := wb.Sheet(targetSheet())
		if err == nil {
			err = fn(s)
		}
		return errors.Join(err, app.CloseWorkbook(a, wb, err == nil))
	})
}

func newAppListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the workbooks open in the running Excel instance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			appOpts.Attach = true
			var infos []models.WorkbookInfo
			err := withApp(func(a app.Application) error {
				var err error
				infos, err = a.Workbooks()
				return err
			})
			if err != nil {
				return fail("app list", err)
			}
			if infos == nil {
				infos = []models.WorkbookInfo{}
			}
			return emit(cmd, infos)
		},
	}
}

func newAppPDFCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "pdf <workbook>",
		Short: "Export a workbook to PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			err := withApp(func(a app.Application) error {
				var err error
				path, err = app.ConvertToPDF(a, args[0], out)
				return err
			})
			if err != nil {
				return fail("app pdf", err)
			}
			return emit(cmd, map[string]string{"pdf": path})
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "PDF path (default: workbook path with .pdf)")
	return cmd
}

func newAppConvertCmd() *cobra.Command {
	var (
		out    string
		remove bool
	)
	cmd := &cobra.Command{
		Use:   "convert <workbook.xls>",
		Short: "Convert a legacy workbook to xlsx",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			err := withApp(func(a app.Application) error {
				var err error
				path, err = app.ConvertToXLSX(a, args[0], out, remove)
				return err
			})
			if err != nil {
				return fail("app convert", err)
			}
			return emit(cmd, map[string]string{"xlsx": path})
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "xlsx path (default: workbook path with .xlsx)")
	cmd.Flags().BoolVar(&remove, "remove-source", false, "Delete the source file after converting")
	return cmd
}

func newAppSaveActiveCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "save-active <path>",
		Short: "Save the active workbook of the running Excel instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ff, err := app.ParseFileFormat(format)
			if err != nil {
				return fail("app save-active", err)
			}
			appOpts.Attach = true
			var path string
			err = withApp(func(a app.Application) error {
				var err error
				path, err = app.SaveActive(a, args[0], ff)
				return err
			})
			if err != nil {
				return fail("app save-active", err)
			}
			return emit(cmd, map[string]string{"path": path})
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "xlsx, xlsm or xls (default: from the path extension)")
	return cmd
}

func newAppTextBoxCmd() *cobra.Command {
	spec := app.DefaultTextBox("", "")
	cmd := &cobra.Command{
		Use:   "textbox <workbook> <name> <text>",
		Short: "Insert a named textbox",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec.Name, spec.Text = args[1], args[2]
			if err := withSheet(args[0], func(s app.Sheet) error { return s.AddTextBox(spec) }); err != nil {
				return fail("app textbox", err)
			}
			return emit(cmd, map[string]string{"shape": spec.Name, "status": "added"})
		},
	}
	f := cmd.Flags()
	f.StringVar(&spec.Cell, "cell", spec.Cell, "Cell at the top-left corner")
	f.Float64Var(&spec.Width, "width", spec.Width, "Width in points")
	f.Float64Var(&spec.Height, "height", spec.Height, "Height in points")
	f.StringVar(&spec.FontName, "font-name", spec.FontName, "Font family")
	f.Float64Var(&spec.FontSize, "font-size", spec.FontSize, "Font size in points")
	f.BoolVar(&spec.Bold, "bold", false, "Bold text")
	f.BoolVar(&spec.Italic, "italic", false, "Italic text")
	f.BoolVar(&spec.Underline, "underline", false, "Underlined text")
	f.StringVar(&spec.TextColor, "text-color", "", "Text colour as hex RGB")
	f.StringVar(&spec.Alignment, "align", spec.Alignment, "Text alignment: left, center or right")
	f.StringVar(&spec.FillColor, "fill-color", "", "Fill colour as hex RGB")
	f.StringVar(&spec.LineColor, "line-color", spec.LineColor, "Outline colour as hex RGB")
	f.Float64Var(&spec.LineWeight, "line-weight", spec.LineWeight, "Outline weight in points")
	f.Float64Var(&spec.MarginLeft, "margin-left", spec.MarginLeft, "Left inner margin in cm")
	f.Float64Var(&spec.MarginRight, "margin-right", spec.MarginRight, "Right inner margin in cm")
	f.Float64Var(&spec.MarginTop, "margin-top", spec.MarginTop, "Top inner margin in cm")
	f.Float64Var(&spec.MarginBottom, "margin-bottom", spec.MarginBottom, "Bottom inner margin in cm")
	f.BoolVar(&spec.AutoSize, "auto-size", spec.AutoSize, "Grow the box to fit its text")
	f.BoolVar(&spec.Shadow, "shadow", false, "Draw a shadow")
	f.StringVar(&spec.ShadowColor, "shadow-color", "", "Shadow colour as hex RGB")
	f.Float64Var(&spec.ShadowOffset, "shadow-offset", spec.ShadowOffset, "Shadow offset in points")
	f.IntVar(&spec.TextOrientation, "text-orientation", 0, "Text frame orientation")
	f.BoolVar(&spec.WrapText, "wrap-text", false, "Wrap text inside the box")
	f.BoolVar(&spec.SendToBack, "send-to-back", false, "Place the box behind other shapes")
	f.BoolVar(&spec.Locked, "locked", false, "Lock the box")
	return cmd
}

func newAppCopyShapeCmd() *cobra.Command {
	var (
		to  string
		pos app.Position
	)
	cmd := &cobra.Command{
		Use:   "copy-shape <workbook> <shape>",
		Short: "Copy a shape from --sheet to --to",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if pos.Cell == "" && !cmd.Flags().Changed("top") && !cmd.Flags().Changed("left") {
				pos.Cell = "A1"
			}
			var pasted string
			err := withApp(func(a app.Application) error {
				wb, err := a.OpenWorkbook(args[0], app.OpenOptions{Password: password})
				if err != nil {
					return err
				}
				err = func() error {
					src, err := wb.Sheet(targetSheet())
					if err != nil {
						return err
					}
					dst, err := wb.Sheet(to)
					if err != nil {
						return err
					}
					pasted, err = src.CopyShape(args[1], dst, pos)
					return err
				}()
				return errors.Join(err, app.CloseWorkbook(a, wb, err == nil))
			})
			if err != nil {
				return fail("app copy-shape", err)
			}
			return emit(cmd, map[string]string{"shape": pasted, "sheet": to})
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "Destination sheet")
	cmd.Flags().StringVar(&pos.Cell, "cell", "", "Destination cell (default A1 unless --top/--left)")
	cmd.Flags().Float64Var(&pos.Top, "top", 0, "Destination top offset in points")
	cmd.Flags().Float64Var(&pos.Left, "left", 0, "Destination left offset in points")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newAppEditShapeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit-shape <workbook> <shape> <text>",
		Short: "Replace the text of a shape, keeping its position",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := withSheet(args[0], func(s app.Sheet) error { return s.EditShapeText(args[1], args[2]) })
			if err != nil {
				return fail("app edit-shape", err)
			}
			return emit(cmd, map[string]string{"shape": args[1], "status": "updated"})
		},
	}
}

func newAppDeleteShapeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-shape <workbook> <shape>",
		Short: "Delete every shape with the given name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := withSheet(args[0], func(s app.Sheet) error { return s.DeleteShape(args[1]) })
			if err != nil {
				return fail("app delete-shape", err)
			}
			return emit(cmd, map[string]string{"shape": args[1], "status": "deleted"})
		},
	}
}

func newAppAutoFitCmd() *cobra.Command {
	var (
		columns []string
		rows    []int
	)
	cmd := &cobra.Command{
		Use:   "autofit <workbook>",
		Short: "Let Excel fit columns and rows to their content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := withSheet(args[0], func(s app.Sheet) error {
				for _, c := range columns {
					if err := s.AutoFitColumn(c); err != nil {
						return err
					}
				}
				for _, r := range rows {
					if err := s.AutoFitRow(r); err != nil {
						return err
					}
				}
				return nil
			})
			if err != nil {
				return fail("app autofit", err)
			}
			return emit(cmd, map[string]interface{}{"columns": columns, "rows": rows})
		},
	}
	cmd.Flags().StringSliceVar(&columns, "column", nil, "Column letter to fit (repeatable)")
	cmd.Flags().IntSliceVar(&rows, "row", nil, "Row to fit (repeatable)")
	return cmd
}
