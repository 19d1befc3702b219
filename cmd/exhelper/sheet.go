package main

import (
	"github.com/spf13/cobra"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/models"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/workbook"
)

func newSheetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheet",
		Short: "Create, rename, move, copy, hide or delete a sheet",
		Long:  `Sheet arguments accept a name or a 1-based index.`,
	}
	cmd.AddCommand(
		sheetAction("create <workbook> <name>", "Add an empty sheet", 2,
			func(wb *workbook.Workbook, args []string) (models.SheetInfo, error) {
				return wb.CreateSheet(args[1])
			}),
		sheetAction("rename <workbook> <sheet> <new-name>", "Rename a sheet", 3,
			func(wb *workbook.Workbook, args []string) (models.SheetInfo, error) {
				ref := workbook.ParseSheetRef(args[1])
				if err := wb.RenameSheet(ref, args[2]); err != nil {
					return models.SheetInfo{}, err
				}
				return wb.Lookup(workbook.ByName(args[2]))
			}),
		newSheetMoveCmd(),
		sheetAction("delete <workbook> <sheet>", "Delete a sheet", 2,
			func(wb *workbook.Workbook, args []string) (models.SheetInfo, error) {
				info, err := wb.Lookup(workbook.ParseSheetRef(args[1]))
				if err != nil {
					return info, err
				}
				return info, wb.DeleteSheet(workbook.ByName(info.Name))
			}),
		newSheetCopyCmd(),
		sheetAction("hide <workbook> <sheet>", "Hide a sheet", 2,
			func(wb *workbook.Workbook, args []string) (models.SheetInfo, error) {
				ref := workbook.ParseSheetRef(args[1])
				if err := wb.HideSheet(ref); err != nil {
					return models.SheetInfo{}, err
				}
				return wb.Lookup(ref)
			}),
		sheetAction("unhide <workbook> <sheet>", "Make a hidden sheet visible", 2,
			func(wb *workbook.Workbook, args []string) (models.SheetInfo, error) {
				ref := workbook.ParseSheetRef(args[1])
				if err := wb.UnhideSheet(ref); err != nil {
					return models.SheetInfo{}, err
				}
				return wb.Lookup(ref)
			}),
	)
	return cmd
}

// sheetAction builds a subcommand that edits one workbook and prints the
// affected sheet.
func sheetAction(use, short string, nargs int, fn func(*workbook.Workbook, []string) (models.SheetInfo, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			var info models.SheetInfo
			err := edit(args[0], func(wb *workbook.Workbook) error {
				var err error
				info, err = fn(wb, args)
				return err
			})
			if err != nil {
				return fail("sheet "+cmd.Name(), err)
			}
			return emit(cmd, info)
		},
	}
}

func newSheetMoveCmd() *cobra.Command {
	var before string
	cmd := sheetAction("move <workbook> <sheet>", "Move a sheet before another one", 2,
		func(wb *workbook.Workbook, args []string) (models.SheetInfo, error) {
			info, err := wb.Lookup(workbook.ParseSheetRef(args[1]))
			if err != nil {
				return info, err
			}
			if err := wb.MoveSheet(workbook.ByName(info.Name), workbook.ParseSheetRef(before)); err != nil {
				return info, err
			}
			return wb.Lookup(workbook.ByName(info.Name))
		})
	cmd.Flags().StringVar(&before, "before", "", "Sheet to move in front of (default: move to the end)")
	return cmd
}

func newSheetCopyCmd() *cobra.Command {
	var name string
	cmd := sheetAction("copy <workbook> <sheet>", "Duplicate a sheet within its workbook", 2,
		func(wb *workbook.Workbook, args []string) (models.SheetInfo, error) {
			return wb.CopySheet(workbook.ParseSheetRef(args[1]), name)
		})
	cmd.Flags().StringVar(&name, "name", "", `Name of the copy (default: "<sheet> (2)")`)
	return cmd
}

func newSheetsCmd() *cobra.Command {
	var visibility string
	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Count, list or clean up the sheets of a workbook",
	}
	cmd.PersistentFlags().StringVar(&visibility, "visibility", "all", "Filter: all, visible or hidden")

	count := &cobra.Command{
		Use:   "count <workbook>",
		Short: "Count sheets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := workbook.ParseVisibility(visibility)
			if err != nil {
				return fail("sheets count", err)
			}
			wb, err := openWorkbook(args[0], true)
			if err != nil {
				return fail("sheets count", err)
			}
			defer wb.Close()
			n, err := wb.CountSheets(v)
			if err != nil {
				return fail("sheets count", err)
			}
			return emit(cmd, map[string]int{"count": n})
		},
	}
	list := &cobra.Command{
		Use:   "list <workbook>",
		Short: "List sheets with their position and visibility",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := workbook.ParseVisibility(visibility)
			if err != nil {
				return fail("sheets list", err)
			}
			wb, err := openWorkbook(args[0], true)
			if err != nil {
				return fail("sheets list", err)
			}
			defer wb.Close()
			infos, err := wb.ListSheets(v)
			if err != nil {
				return fail("sheets list", err)
			}
			if infos == nil {
				infos = []models.SheetInfo{}
			}
			return emit(cmd, infos)
		},
	}
	deleteHidden := &cobra.Command{
		Use:   "delete-hidden <workbook>",
		Short: "Delete every hidden sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var n int
			err := edit(args[0], func(wb *workbook.Workbook) error {
				var err error
				n, err = wb.DeleteHiddenSheets()
				return err
			})
			if err != nil {
				return fail("sheets delete-hidden", err)
			}
			return emit(cmd, map[string]int{"deleted": n})
		},
	}
	cmd.AddCommand(count, list, deleteHidden)
	return cmd
}
