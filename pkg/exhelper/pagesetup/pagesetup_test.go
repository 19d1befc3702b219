package pagesetup

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/models"
	"github.com/ukaji3/exhelper-go/pkg/exhelper/workbook"
)

func TestParseHeaderFooter(t *testing.T) {
	tests := []struct {
		in   string
		want Sections
	}{
		{"", Sections{}},
		{"&LDraft&C&P / &N&R&D", Sections{Left: "Draft", Center: "&P / &N", Right: "&D"}},
		{"Plain title", Sections{Center: "Plain title"}},
		{"&RR&&D", Sections{Right: "R&&D"}},
		{`&L&"Arial,Bold"Title`, Sections{Left: `&"Arial,Bold"Title`}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseHeaderFooter(tt.in), "ParseHeaderFooter(%q)", tt.in)
	}
}

func TestComposeRoundTrip(t *testing.T) {
	s := Sections{Left: "Confidential", Right: "Page &P"}
	assert.Equal(t, "&LConfidential&RPage &P", s.Compose())
	assert.Equal(t, s, ParseHeaderFooter(s.Compose()))
	assert.Empty(t, Sections{}.Compose())
}

func TestCheck(t *testing.T) {
	expected := models.DefaultPageSetup()
	expected.LeftMargin = 0.7
	expected.CenterFooter = "&P"
	expected.PrintArea = "A1:H40"

	actual := expected
	assert.Empty(t, Check(actual, expected))

	actual.LeftMargin = 0.5
	actual.CenterFooter = ""
	actual.CenterHorizontally = true
	actual.PaperSize = 1
	actual.PrintArea = "$A$1:$H$40"
	assert.Equal(t, []string{
		"Left margin is not 0.7 (current: 0.5)",
		`Center footer is not "&P" (current: "")`,
		"Center horizontally is not false (current: true)",
		"Paper size is not 9 (current: 1)",
	}, Check(actual, expected))

	actual = expected
	actual.PrintArea = "A1:B2"
	assert.Equal(t, []string{"Print area is not A1:H40 (current: A1:B2)"}, Check(actual, expected))

	// No expected print area means any print area is fine.
	expected.PrintArea = ""
	assert.Empty(t, Check(actual, expected))
}

func TestReadDefaults(t *testing.T) {
	wb := workbook.Create(filepath.Join(t.TempDir(), "defaults.xlsx"))
	defer wb.Close()

	ps, err := Read(wb, "")
	require.NoError(t, err)
	assert.InDelta(t, 0.7, ps.LeftMargin, 1e-9)
	assert.InDelta(t, 0.75, ps.TopMargin, 1e-9)
	assert.Equal(t, 1, ps.PaperSize)
	assert.Zero(t, ps.FitToPagesWide)
	assert.Empty(t, ps.PrintArea)
	assert.Empty(t, ps.CenterHeader)
}

func TestApplyAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "print.xlsx")
	wb := workbook.Create(path)
	_, err := wb.CreateSheet("Report's")
	require.NoError(t, err)

	want := models.PageSetup{
		LeftMargin: 0.25, RightMargin: 0.25, TopMargin: 0.5, BottomMargin: 0.5,
		HeaderMargin: 0.2, FooterMargin: 0.2,
		LeftHeader: "Draft", RightHeader: "&D",
		CenterFooter:       "&P / &N",
		CenterHorizontally: true,
		PaperSize:          models.PaperA4,
		FitToPagesWide:     1,
		FitToPagesTall:     2,
		PrintArea:          "A1:H40",
	}
	require.NoError(t, Apply(wb, "Report's", want))
	require.NoError(t, wb.Save())
	require.NoError(t, wb.Close())

	reopened, err := workbook.Open(path, workbook.OpenOptions{ReadOnly: true})
	require.NoError(t, err)
	defer reopened.Close()

	got, err := Read(reopened, "Report's")
	require.NoError(t, err)
	assert.Empty(t, Check(got, want))
	assert.Equal(t, "A1:H40", got.PrintArea)

	other, err := Read(reopened, "Sheet1")
	require.NoError(t, err)
	assert.Empty(t, other.PrintArea)
}

func TestApplyReplacesAndClears(t *testing.T) {
	wb := workbook.Create(filepath.Join(t.TempDir(), "replace.xlsx"))
	defer wb.Close()

	ps := models.DefaultPageSetup()
	ps.PrintArea = "A1:C3"
	require.NoError(t, Apply(wb, "", ps))

	ps.PrintArea = "B2:D4"
	require.NoError(t, Apply(wb, "", ps))
	got, err := Read(wb, "")
	require.NoError(t, err)
	assert.Equal(t, "B2:D4", got.PrintArea)
	assert.Equal(t, 1, got.FitToPagesWide)

	ps.PrintArea = ""
	ps.FitToPagesWide, ps.FitToPagesTall = 0, 0
	require.NoError(t, Apply(wb, "", ps))
	got, err = Read(wb, "")
	require.NoError(t, err)
	assert.Empty(t, got.PrintArea)
	assert.Zero(t, got.FitToPagesWide)
}

func TestApplyInvalid(t *testing.T) {
	wb := workbook.Create(filepath.Join(t.TempDir(), "invalid.xlsx"))
	defer wb.Close()

	ps := models.DefaultPageSetup()
	ps.LeftMargin = -1
	assert.ErrorIs(t, Apply(wb, "", ps), workbook.ErrInvalidArgument)

	ps = models.DefaultPageSetup()
	ps.PrintArea = "not a range"
	assert.ErrorIs(t, Apply(wb, "", ps), workbook.ErrInvalidArgument)

	ps = models.DefaultPageSetup()
	ps.PaperSize = 0
	assert.ErrorIs(t, Apply(wb, "", ps), workbook.ErrInvalidArgument)

	ps = models.DefaultPageSetup()
	ps.LeftHeader = "a&Lb"
	assert.ErrorIs(t, Apply(wb, "", ps), workbook.ErrInvalidArgument)

	ps = models.DefaultPageSetup()
	ps.RightFooter = "Page &P&R1"
	assert.ErrorIs(t, Apply(wb, "", ps), workbook.ErrInvalidArgument)

	assert.ErrorIs(t, Apply(wb, "Missing", models.DefaultPageSetup()), workbook.ErrSheetNotFound)
}

func TestHasSectionCode(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"", false},
		{"Draft", false},
		{"&P / &N", false},
		{"R&&D", false},
		{"&&L", false},
		{`&"Arial,Bold"Title`, false},
		{"a&Lb", true},
		{"x&c", true},
		{"&R", true},
		{"trailing &", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, hasSectionCode(tt.text), "hasSectionCode(%q)", tt.text)
	}
}
