// Package parser reads cell grids, ranges, print areas and drawing shapes
// out of xlsx workbooks.
package parser

// Length units. Drawing offsets are stored in EMUs; 914400 EMU make an inch,
// which is 96 pixels on screen and 72 points in print.
const (
	EMUPerPixel         = 914400 / 96
	PointsPerCentimetre = 28.35
)

// EMUToPixels converts EMUs to whole screen pixels, truncating.
func EMUToPixels(emu int64) int {
	return int(emu / EMUPerPixel)
}

// CentimetresToPoints converts a length in centimetres to points.
func CentimetresToPoints(cm float64) float64 {
	return cm * PointsPerCentimetre
}
