// Package main provides the CLI entry point for exhelper-go.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/config"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/logging"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/output"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/workbook"
)

var (
	configPath string
	logLevel   string
	logFormat  string
	pretty     bool
	sheetName  string
	password   string

	cfg = config.Default()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "exhelper",
		Short: "Automate common spreadsheet chores",
		Long: `exhelper-go queries and edits Excel workbooks: sheet extents, cell and
shape search, range and sheet copies, sheet management, print settings and
styling. Commands under "app" drive a running Excel instance.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "YAML configuration file")
	flags.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default from config, else info)")
	flags.StringVar(&logFormat, "log-format", "", "Log format: text or json")
	flags.BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	flags.StringVar(&sheetName, "sheet", "", "Sheet name (default: configured sheet, else the active sheet)")
	flags.StringVar(&password, "password", "", "Password of an encrypted workbook")

	rootCmd.AddCommand(
		newLastColumnCmd(),
		newLastRowCmd(),
		newFindCellsCmd(),
		newFindFormulasCmd(),
		newFindShapesCmd(),
		newCopyRangeCmd(),
		newCopySheetCmd(),
		newSheetCmd(),
		newSheetsCmd(),
		newPrintCmd(),
		newStyleCmd(),
		newAutoFitCmd(),
		newTextBoxCmd(),
		newAppCmd(),
	)
	return rootCmd
}

// setup loads the configuration and initialises logging. Flags override
// configuration values.
func setup(cmd *cobra.Command, args []string) error {
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	level, format := cfg.Log.Level, cfg.Log.Format
	if logLevel != "" {
		level = logLevel
	}
	if logFormat != "" {
		format = logFormat
	}
	return logging.Setup(logging.Config{Level: level, Format: format})
}

// targetSheet returns the --sheet flag, falling back to the configured
// default sheet.
func targetSheet() string {
	if sheetName != "" {
		return sheetName
	}
	return cfg.Defaults.Sheet
}

// exactMatch returns the --exact flag when given, else the configured default.
func exactMatch(cmd *cobra.Command, flag bool) bool {
	if cmd.Flags().Changed("exact") {
		return flag
	}
	return cfg.Defaults.ExactMatch
}

func openWorkbook(path string, readOnly bool) (*workbook.Workbook, error) {
	return workbook.Open(path, workbook.OpenOptions{ReadOnly: readOnly, Password: password})
}

// edit opens a workbook for writing, runs fn and saves the result.
func edit(path string, fn func(wb *workbook.Workbook) error) error {
	wb, err := openWorkbook(path, false)
	if err != nil {
		return err
	}
	defer wb.Close()
	if err := fn(wb); err != nil {
		return err
	}
	return wb.Save()
}

func emit(cmd *cobra.Command, v interface{}) error {
	if err := output.Write(cmd.OutOrStdout(), v, pretty); err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	return nil
}

// fail logs err at the CLI boundary and returns it to cobra.
func fail(operation string, err error) error {
	logrus.WithField("operation", operation).WithError(err).Error("Command failed")
	return err
}
