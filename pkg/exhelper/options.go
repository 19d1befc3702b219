// Package exhelper provides path-based entry points for spreadsheet
// automation helpers.
package exhelper

// Options configures how a workbook is opened for a query.
type Options struct {
	// SheetName selects the sheet. Empty means the active sheet.
	SheetName string
	// Password decrypts a protected workbook.
	Password string
	// ReadOnly opens the workbook read-only.
	// If nil, defaults to true since queries never write.
	ReadOnly *bool
}

// DefaultOptions returns options selecting the active sheet.
func DefaultOptions() Options {
	return Options{}
}

// ShouldOpenReadOnly returns whether to open the workbook read-only.
func (o Options) ShouldOpenReadOnly() bool {
	if o.ReadOnly != nil {
		return *o.ReadOnly
	}
	return true
}
