package main

import (
	"github.com/spf13/cobra"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/models"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/search"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/shapes"
)

func newFindCellsCmd() *cobra.Command {
	var (
		exact bool
		area  string
	)
	cmd := &cobra.Command{
		Use:   "find-cells <workbook> <text>",
		Short: "List cells whose value contains text",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := openWorkbook(args[0], true)
			if err != nil {
				return fail("find-cells", err)
			}
			defer wb.Close()
			matches, err := search.FindCellsWithText(wb, targetSheet(), args[1], search.Options{
				ExactMatch: exactMatch(cmd, exact),
				Range:      area,
			})
			if err != nil {
				return fail("find-cells", err)
			}
			return emit(cmd, nonNil(matches))
		},
	}
	cmd.Flags().BoolVar(&exact, "exact", false, "Match the whole cell value")
	cmd.Flags().StringVar(&area, "range", "", "Limit the search to an A1 range")
	return cmd
}

func newFindFormulasCmd() *cobra.Command {
	var filter, area string
	cmd := &cobra.Command{
		Use:   "find-formulas <workbook>",
		Short: "List cells holding formulas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := openWorkbook(args[0], true)
			if err != nil {
				return fail("find-formulas", err)
			}
			defer wb.Close()
			matches, err := search.FindFormulaCells(wb, targetSheet(), search.Options{Filter: filter, Range: area})
			if err != nil {
				return fail("find-formulas", err)
			}
			return emit(cmd, nonNil(matches))
		},
	}
	cmd.Flags().StringVar(&filter, "contains", "", "Only formulas containing this text, e.g. VLOOKUP")
	cmd.Flags().StringVar(&area, "range", "", "Limit the search to an A1 range")
	return cmd
}

func newFindShapesCmd() *cobra.Command {
	var exact bool
	cmd := &cobra.Command{
		Use:   "find-shapes <workbook> <text>",
		Short: "List shapes whose text contains text",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := shapes.FindShapesWithText(args[0], targetSheet(), args[1], exactMatch(cmd, exact))
			if err != nil {
				return fail("find-shapes", err)
			}
			if names == nil {
				names = []string{}
			}
			return emit(cmd, names)
		},
	}
	cmd.Flags().BoolVar(&exact, "exact", false, "Match the whole shape text")
	return cmd
}

func nonNil(matches []models.CellMatch) []models.CellMatch {
	if matches == nil {
		return []models.CellMatch{}
	}
	return matches
}
