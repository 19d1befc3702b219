package models

import "fmt"

// Area represents inclusive cell coordinate bounds.
type Area struct {
	// R1 is the start row (1-based).
	R1 int `json:"r1"`
	// C1 is the start column (1-based).
	C1 int `json:"c1"`
	// R2 is the end row (1-based, inclusive).
	R2 int `json:"r2"`
	// C2 is the end column (1-based, inclusive).
	C2 int `json:"c2"`
}

// Rows returns the number of rows covered by the area.
func (a Area) Rows() int {
	return a.R2 - a.R1 + 1
}

// Cols returns the number of columns covered by the area.
func (a Area) Cols() int {
	return a.C2 - a.C1 + 1
}

// Contains reports whether the coordinate lies inside the area.
func (a Area) Contains(row, col int) bool {
	return row >= a.R1 && row <= a.R2 && col >= a.C1 && col <= a.C2
}

// String renders the area as R1C1:R2C2 coordinates.
func (a Area) String() string {
	return fmt.Sprintf("R%dC%d:R%dC%d", a.R1, a.C1, a.R2, a.C2)
}
