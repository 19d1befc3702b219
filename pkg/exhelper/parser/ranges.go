package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ukaji3/exhelper-go/pkg/exhelper/models"
	"github.com/xuri/excelize/v2"
)

// ErrInvalidRange is returned for range references that cannot be parsed.
var ErrInvalidRange = errors.New("invalid range reference")

var rangeRegexp = regexp.MustCompile(`^(\$?[A-Za-z]+\$?\d+)(?::(\$?[A-Za-z]+\$?\d+))?$`)

// ParseRange parses an A1-style range such as "A1:C10", "$B$2:$D$4" or a
// single cell "C3". Corners are normalised so that R1<=R2 and C1<=C2.
func ParseRange(ref string) (models.Area, error) {
	matches := rangeRegexp.FindStringSubmatch(strings.TrimSpace(ref))
	if matches == nil {
		return models.Area{}, fmt.Errorf("%w: %q", ErrInvalidRange, ref)
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(strings.ReplaceAll(matches[1], "$", ""))
	if err != nil {
		return models.Area{}, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	endCol, endRow := startCol, startRow
	if matches[2] != "" {
		endCol, endRow, err = excelize.CellNameToCoordinates(strings.ReplaceAll(matches[2], "$", ""))
		if err != nil {
			return models.Area{}, fmt.Errorf("%w: %v", ErrInvalidRange, err)
		}
	}

	if endRow < startRow {
		startRow, endRow = endRow, startRow
	}
	if endCol < startCol {
		startCol, endCol = endCol, startCol
	}
	return models.Area{R1: startRow, C1: startCol, R2: endRow, C2: endCol}, nil
}

// FormatRange renders an area as an A1-style range. absolute adds $ anchors.
func FormatRange(area models.Area, absolute bool) (string, error) {
	start, err := excelize.CoordinatesToCellName(area.C1, area.R1, absolute)
	if err != nil {
		return "", err
	}
	end, err := excelize.CoordinatesToCellName(area.C2, area.R2, absolute)
	if err != nil {
		return "", err
	}
	return start + ":" + end, nil
}
