package main

import (
	"github.com/spf13/cobra"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/transfer"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/workbook"
)

func newCopyRangeCmd() *cobra.Command {
	var dst transfer.Target
	cmd := &cobra.Command{
		Use:   "copy-range <workbook> <range|all>",
		Short: "Copy cell values to another sheet or workbook",
		Long: `Copies the values of a range (or "all" for the used range) of --sheet to
--target-sheet at --anchor. The destination workbook is created when it does
not exist; without --to the copy stays in the source workbook.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := transfer.Source{Path: args[0], Sheet: targetSheet(), Range: args[1]}
			area, err := transfer.CopyRange(src, dst)
			if err != nil {
				return fail("copy-range", err)
			}
			return emit(cmd, area)
		},
	}
	cmd.Flags().StringVar(&dst.Path, "to", "", "Destination workbook (default: the source workbook)")
	cmd.Flags().StringVar(&dst.Sheet, "target-sheet", "", "Destination sheet, created when missing")
	cmd.Flags().StringVar(&dst.Anchor, "anchor", "A1", "Top-left destination cell")
	return cmd
}

func newCopySheetCmd() *cobra.Command {
	var position int
	cmd := &cobra.Command{
		Use:   "copy-sheet <workbook> <sheet> <destination>",
		Short: "Copy a sheet into another workbook",
		Long: `Copies values, column widths and row heights of a sheet into the
destination workbook, which is created when missing. A clashing name gets a
" (2)" style suffix. Sheets may be given by name or 1-based index.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := transfer.CopySheet(args[0], args[2], workbook.ParseSheetRef(args[1]), position)
			if err != nil {
				return fail("copy-sheet", err)
			}
			return emit(cmd, info)
		},
	}
	cmd.Flags().IntVar(&position, "position", 0, "1-based position in the destination (default: last)")
	return cmd
}
