package parser

import (
	"strings"

	"github.com/ukaji3/exhelper-go/pkg/exhelper/models"
	"github.com/xuri/excelize/v2"
)

// PrintAreaName is the reserved defined name holding a sheet's print area.
const PrintAreaName = "_xlnm.Print_Area"

// ExtractPrintAreas returns the print areas of every sheet that defines one,
// keyed by sheet name. References that do not parse are skipped.
func ExtractPrintAreas(f *excelize.File) (map[string][]models.Area, error) {
	result := make(map[string][]models.Area)
	for _, dn := range f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, PrintAreaName) {
			continue
		}
		sheet, areas := parsePrintAreaReference(dn.RefersTo)
		if sheet == "" && dn.Scope != "Workbook" {
			sheet = dn.Scope
		}
		if sheet == "" || len(areas) == 0 {
			continue
		}
		result[sheet] = append(result[sheet], areas...)
	}
	return result, nil
}

// PrintAreaReference builds the defined-name formula for a print area,
// e.g. 'My Sheet'!$A$1:$D$10.
func PrintAreaReference(sheetName string, area models.Area) (string, error) {
	ref, err := FormatRange(area, true)
	if err != nil {
		return "", err
	}
	return quoteSheetName(sheetName) + "!" + ref, nil
}

func quoteSheetName(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// parsePrintAreaReference splits a formula such as
// 'Q1 ''24'!$A$1:$B$2,'Q1 ''24'!$D$4:$E$5 into its sheet name and areas.
// Commas inside a quoted sheet name do not separate areas.
func parsePrintAreaReference(ref string) (sheet string, areas []models.Area) {
	for _, part := range splitUnquoted(ref, ',') {
		bang := strings.LastIndexByte(part, '!')
		if bang < 0 {
			continue
		}
		if sheet == "" {
			sheet = unquoteSheetName(strings.TrimSpace(part[:bang]))
		}
		if area, err := ParseRange(part[bang+1:]); err == nil {
			areas = append(areas, area)
		}
	}
	return sheet, areas
}

func unquoteSheetName(s string) string {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		s = strings.ReplaceAll(s[1:len(s)-1], "''", "'")
	}
	return s
}

func splitUnquoted(s string, sep byte) []string {
	var parts []string
	quoted := false
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\'':
			quoted = !quoted
		case sep:
			if !quoted {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}
