package models

// PaperA4 is the paper size code for A4.
const PaperA4 = 9

// PageSetup holds the print settings of a worksheet.
type PageSetup struct {
	// Margins are in inches, as stored in the file.
	LeftMargin   float64 `json:"left_margin" yaml:"left_margin"`
	RightMargin  float64 `json:"right_margin" yaml:"right_margin"`
	TopMargin    float64 `json:"top_margin" yaml:"top_margin"`
	BottomMargin float64 `json:"bottom_margin" yaml:"bottom_margin"`
	HeaderMargin float64 `json:"header_margin" yaml:"header_margin"`
	FooterMargin float64 `json:"footer_margin" yaml:"footer_margin"`

	LeftHeader   string `json:"left_header" yaml:"left_header"`
	CenterHeader string `json:"center_header" yaml:"center_header"`
	RightHeader  string `json:"right_header" yaml:"right_header"`
	LeftFooter   string `json:"left_footer" yaml:"left_footer"`
	CenterFooter string `json:"center_footer" yaml:"center_footer"`
	RightFooter  string `json:"right_footer" yaml:"right_footer"`

	CenterHorizontally bool `json:"center_horizontally" yaml:"center_horizontally"`
	CenterVertically   bool `json:"center_vertically" yaml:"center_vertically"`

	// PaperSize is the spreadsheet paper size code (9 = A4).
	PaperSize      int `json:"paper_size" yaml:"paper_size"`
	FitToPagesWide int `json:"fit_to_pages_wide" yaml:"fit_to_pages_wide"`
	FitToPagesTall int `json:"fit_to_pages_tall" yaml:"fit_to_pages_tall"`

	// PrintArea is an optional A1 range reference such as "A1:H40".
	PrintArea string `json:"print_area,omitempty" yaml:"print_area,omitempty"`
}

// DefaultPageSetup returns the settings the helpers assume when nothing
// else is configured: zero margins, A4, fit to one page.
func DefaultPageSetup() PageSetup {
	return PageSetup{
		PaperSize:      PaperA4,
		FitToPagesWide: 1,
		FitToPagesTall: 1,
	}
}
