package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/models"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/pagesetup"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/workbook"
	"gopkg.in/yaml.v3"
)

type printResult struct {
	Sheet      string           `json:"sheet"`
	PageSetup  models.PageSetup `json:"page_setup"`
	Mismatches []string         `json:"mismatches,omitempty"`
}

// expectedPageSetup resolves --profile from the configuration or --file from
// a standalone YAML document, in that order.
func expectedPageSetup(profile, file string) (models.PageSetup, error) {
	switch {
	case profile != "":
		return cfg.PageSetup(profile)
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return models.PageSetup{}, err
		}
		ps := models.DefaultPageSetup()
		if err := yaml.Unmarshal(data, &ps); err != nil {
			return models.PageSetup{}, fmt.Errorf("parse %s: %w", file, err)
		}
		return ps, nil
	}
	return models.DefaultPageSetup(), nil
}

func newPrintCmd() *cobra.Command {
	var profile, file string
	cmd := &cobra.Command{
		Use:   "print",
		Short: "Inspect, check or apply page setup",
	}
	cmd.PersistentFlags().StringVar(&profile, "profile", "", "Page setup profile from the configuration file")
	cmd.PersistentFlags().StringVar(&file, "file", "", "YAML file holding the expected page setup")

	show := &cobra.Command{
		Use:   "show <workbook>",
		Short: "Print the current page setup of a sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wb, err := openWorkbook(args[0], true)
			if err != nil {
				return fail("print show", err)
			}
			defer wb.Close()
			name, err := wb.SheetName(targetSheet())
			if err != nil {
				return fail("print show", err)
			}
			ps, err := pagesetup.Read(wb, name)
			if err != nil {
				return fail("print show", err)
			}
			return emit(cmd, printResult{Sheet: name, PageSetup: ps})
		},
	}

	check := &cobra.Command{
		Use:   "check <workbook>",
		Short: "Compare a sheet's page setup with the expected settings",
		Long: `Lists every property that differs from the expected settings taken from
--profile, --file or the built-in default (no margins, A4, one page).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expected, err := expectedPageSetup(profile, file)
			if err != nil {
				return fail("print check", err)
			}
			wb, err := openWorkbook(args[0], true)
			if err != nil {
				return fail("print check", err)
			}
			defer wb.Close()
			name, err := wb.SheetName(targetSheet())
			if err != nil {
				return fail("print check", err)
			}
			actual, err := pagesetup.Read(wb, name)
			if err != nil {
				return fail("print check", err)
			}
			return emit(cmd, printResult{Sheet: name, PageSetup: actual, Mismatches: pagesetup.Check(actual, expected)})
		},
	}

	set := &cobra.Command{
		Use:   "set <workbook>",
		Short: "Apply the expected page setup to a sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expected, err := expectedPageSetup(profile, file)
			if err != nil {
				return fail("print set", err)
			}
			var result printResult
			err = edit(args[0], func(wb *workbook.Workbook) error {
				name, err := wb.SheetName(targetSheet())
				if err != nil {
					return err
				}
				if err := pagesetup.Apply(wb, name, expected); err != nil {
					return err
				}
				result.Sheet = name
				result.PageSetup, err = pagesetup.Read(wb, name)
				return err
			})
			if err != nil {
				return fail("print set", err)
			}
			return emit(cmd, result)
		},
	}
	cmd.AddCommand(show, check, set)
	return cmd
}
