package main

import (
	"github.com/spf13/cobra"
	"github.com/ukaji3/exhelper-go/pkg/exhelper"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/locator"
)

type extentFlags struct {
	row    int
	column string
}

func (f *extentFlags) bind(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.row, "row", 0, "Anchor row (1-based)")
	cmd.Flags().StringVar(&f.column, "column", "", "Anchor column, as a letter (H) or index (8)")
}

func (f *extentFlags) query() locator.Query {
	return locator.Query{Row: f.row, Column: locator.ParseColumn(f.column)}
}

func extentOptions() exhelper.Options {
	opts := exhelper.DefaultOptions()
	opts.SheetName = targetSheet()
	opts.Password = password
	return opts
}

func newLastColumnCmd() *cobra.Command {
	var flags extentFlags
	cmd := &cobra.Command{
		Use:   "last-column <workbook>",
		Short: "Print the last populated column",
		Long: `Without flags, prints the sheet's last used column. With --row, scans that
row from the right for its last value. With --row and --column, walks right
from the anchor cell to the end of its contiguous run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := exhelper.LastColumn(args[0], extentOptions(), flags.query())
			if err != nil {
				return fail("last-column", err)
			}
			return emit(cmd, map[string]int{"last_column": n})
		},
	}
	flags.bind(cmd)
	return cmd
}

func newLastRowCmd() *cobra.Command {
	var flags extentFlags
	cmd := &cobra.Command{
		Use:   "last-row <workbook>",
		Short: "Print the last populated row",
		Long: `Without flags, prints the sheet's last used row. With --column, scans that
column from the bottom for its last value. With --row and --column, walks
down from the anchor cell to the end of its contiguous run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := exhelper.LastRow(args[0], extentOptions(), flags.query())
			if err != nil {
				return fail("last-row", err)
			}
			return emit(cmd, map[string]int{"last_row": n})
		},
	}
	flags.bind(cmd)
	return cmd
}
