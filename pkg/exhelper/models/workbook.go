package models

// WorkbookInfo contains information about a workbook open in the
// spreadsheet application.
type WorkbookInfo struct {
	// Name is the workbook file name (no path).
	Name string `json:"name"`
	// FullPath is the absolute path of the workbook.
	FullPath string `json:"full_path"`
	// Saved is false when the workbook has unsaved changes.
	Saved bool `json:"saved"`
}
