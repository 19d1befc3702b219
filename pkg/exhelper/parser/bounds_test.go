package parser

import (
	"testing"

	"github.com/ukaji3/exhelper-go/pkg/exhelper/models"
)

func TestDataBounds(t *testing.T) {
	tests := []struct {
		name     string
		rows     [][]string
		expected models.Area
		ok       bool
	}{
		{"empty", nil, models.Area{}, false},
		{"blank cells only", [][]string{{"", ""}, {}}, models.Area{}, false},
		{"single cell", [][]string{{}, {"", "x"}}, models.Area{R1: 2, C1: 2, R2: 2, C2: 2}, true},
		{"ragged", [][]string{{"a"}, {}, {"", "", "c"}}, models.Area{R1: 1, C1: 1, R2: 3, C2: 3}, true},
	}
	for _, tt := range tests {
		area, ok := DataBounds(tt.rows)
		if area != tt.expected || ok != tt.ok {
			t.Errorf("%s: DataBounds = (%v, %v), expected (%v, %v)", tt.name, area, ok, tt.expected, tt.ok)
		}
	}
}
