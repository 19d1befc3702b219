package models

// SheetInfo describes a sheet's position and visibility in a workbook.
type SheetInfo struct {
	// Index is the 1-based sheet position.
	Index int `json:"index"`
	// Name is the sheet name.
	Name string `json:"name"`
	// Visible is false for hidden and very hidden sheets.
	Visible bool `json:"visible"`
}
