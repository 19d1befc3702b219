package pagesetup

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/exhelper-go/pkg/exhelper/models"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/parser"
)

// marginTolerance absorbs the rounding of margins stored as decimals.
const marginTolerance = 1e-6

// Check compares actual print settings with the expected ones and returns
// one message per differing property. The print area is compared only when
// expected names one.
func Check(actual, expected models.PageSetup) []string {
	mismatches := []string{}

	margins := []struct {
		label            string
		actual, expected float64
	}{
		{"Left margin", actual.LeftMargin, expected.LeftMargin},
		{"Right margin", actual.RightMargin, expected.RightMargin},
		{"Top margin", actual.TopMargin, expected.TopMargin},
		{"Bottom margin", actual.BottomMargin, expected.BottomMargin},
		{"Header margin", actual.HeaderMargin, expected.HeaderMargin},
		{"Footer margin", actual.FooterMargin, expected.FooterMargin},
	}
	for _, m := range margins {
		if math.Abs(m.actual-m.expected) > marginTolerance {
			mismatches = append(mismatches, mismatch(m.label, formatFloat(m.expected), formatFloat(m.actual)))
		}
	}

	texts := []struct {
		label            string
		actual, expected string
	}{
		{"Left header", actual.LeftHeader, expected.LeftHeader},
		{"Center header", actual.CenterHeader, expected.CenterHeader},
		{"Right header", actual.RightHeader, expected.RightHeader},
		{"Left footer", actual.LeftFooter, expected.LeftFooter},
		{"Center footer", actual.CenterFooter, expected.CenterFooter},
		{"Right footer", actual.RightFooter, expected.RightFooter},
	}
	for _, t := range texts {
		if t.actual != t.expected {
			mismatches = append(mismatches, mismatch(t.label, strconv.Quote(t.expected), strconv.Quote(t.actual)))
		}
	}

	flags := []struct {
		label            string
		actual, expected bool
	}{
		{"Center horizontally", actual.CenterHorizontally, expected.CenterHorizontally},
		{"Center vertically", actual.CenterVertically, expected.CenterVertically},
	}
	for _, f := range flags {
		if f.actual != f.expected {
			mismatches = append(mismatches, mismatch(f.label, strconv.FormatBool(f.expected), strconv.FormatBool(f.actual)))
		}
	}

	counts := []struct {
		label            string
		actual, expected int
	}{
		{"Paper size", actual.PaperSize, expected.PaperSize},
		{"Fit to pages wide", actual.FitToPagesWide, expected.FitToPagesWide},
		{"Fit to pages tall", actual.FitToPagesTall, expected.FitToPagesTall},
	}
	for _, c := range counts {
		if c.actual != c.expected {
			mismatches = append(mismatches, mismatch(c.label, strconv.Itoa(c.expected), strconv.Itoa(c.actual)))
		}
	}

	if expected.PrintArea != "" && !samePrintArea(actual.PrintArea, expected.PrintArea) {
		mismatches = append(mismatches, mismatch("Print area", expected.PrintArea, actual.PrintArea))
	}
	return mismatches
}

func mismatch(label, expected, actual string) string {
	return fmt.Sprintf("%s is not %s (current: %s)", label, expected, actual)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// samePrintArea compares range references ignoring case, $ anchors and
// corner order.
func samePrintArea(a, b string) bool {
	areaA, errA := parser.ParseRange(a)
	areaB, errB := parser.ParseRange(b)
	if errA != nil || errB != nil {
		return strings.EqualFold(a, b)
	}
	return areaA == areaB
}
