package parser

import (
	"errors"
	"testing"

	"github.com/ukaji3/exhelper-go/pkg/exhelper/models"
	"github.com/xuri/excelize/v2"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		ref      string
		expected models.Area
	}{
		{"A1:C10", models.Area{R1: 1, C1: 1, R2: 10, C2: 3}},
		{"$B$2:$D$4", models.Area{R1: 2, C1: 2, R2: 4, C2: 4}},
		{"C3", models.Area{R1: 3, C1: 3, R2: 3, C2: 3}},
		{"D4:B2", models.Area{R1: 2, C1: 2, R2: 4, C2: 4}},
		{"a1:b2", models.Area{R1: 1, C1: 1, R2: 2, C2: 2}},
	}
	for _, tt := range tests {
		area, err := ParseRange(tt.ref)
		if err != nil {
			t.Errorf("ParseRange(%q) failed: %v", tt.ref, err)
			continue
		}
		if area != tt.expected {
			t.Errorf("ParseRange(%q) = %v, expected %v", tt.ref, area, tt.expected)
		}
	}

	for _, ref := range []string{"", "A", "1:2", "A1:", "A0"} {
		if _, err := ParseRange(ref); !errors.Is(err, ErrInvalidRange) {
			t.Errorf("ParseRange(%q) error = %v, expected ErrInvalidRange", ref, err)
		}
	}
}

func TestFormatRange(t *testing.T) {
	area := models.Area{R1: 1, C1: 1, R2: 10, C2: 4}
	if ref, _ := FormatRange(area, false); ref != "A1:D10" {
		t.Errorf("FormatRange = %q, expected A1:D10", ref)
	}
	if ref, _ := FormatRange(area, true); ref != "$A$1:$D$10" {
		t.Errorf("FormatRange absolute = %q, expected $A$1:$D$10", ref)
	}
}

func TestPrintAreas(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	ref, err := PrintAreaReference("Sheet1", models.Area{R1: 1, C1: 1, R2: 40, C2: 8})
	if err != nil {
		t.Fatalf("PrintAreaReference failed: %v", err)
	}
	if ref != "'Sheet1'!$A$1:$H$40" {
		t.Errorf("PrintAreaReference = %q", ref)
	}
	if err := f.SetDefinedName(&excelize.DefinedName{Name: PrintAreaName, RefersTo: ref, Scope: "Sheet1"}); err != nil {
		t.Fatalf("SetDefinedName failed: %v", err)
	}

	areas, err := ExtractPrintAreas(f)
	if err != nil {
		t.Fatalf("ExtractPrintAreas failed: %v", err)
	}
	expected := models.Area{R1: 1, C1: 1, R2: 40, C2: 8}
	if len(areas["Sheet1"]) != 1 || areas["Sheet1"][0] != expected {
		t.Errorf("ExtractPrintAreas = %v, expected %v", areas, expected)
	}
}

func TestParsePrintAreaReference(t *testing.T) {
	tests := []struct {
		ref   string
		sheet string
		areas int
	}{
		{"'It''s'!$A$1:$B$2,'It''s'!$D$4:$E$5", "It's", 2},
		{"Sheet1!$A$1:$C$3", "Sheet1", 1},
		{"'North, South'!$A$1:$B$2", "North, South", 1},
		{"$A$1:$B$2", "", 0},
	}
	for _, tt := range tests {
		sheet, areas := parsePrintAreaReference(tt.ref)
		if sheet != tt.sheet || len(areas) != tt.areas {
			t.Errorf("parsePrintAreaReference(%q) = (%q, %d areas), expected (%q, %d)",
				tt.ref, sheet, len(areas), tt.sheet, tt.areas)
		}
	}
}
