// Package models defines data structures shared by the spreadsheet helpers.
package models

// CellRef is a 1-based (row, column) cell coordinate.
type CellRef struct {
	// R is the row index (1-based).
	R int `json:"r"`
	// C is the column index (1-based).
	C int `json:"c"`
}

// CellMatch is a cell found by a content search.
type CellMatch struct {
	CellRef
	// Cell is the A1-style cell name.
	Cell string `json:"cell"`
	// Value is the display text or formula that matched.
	Value string `json:"value"`
}
