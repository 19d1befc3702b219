package locator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Column is an optional column reference given either as a 1-based index or
// as a letter label such as "H". The zero value means "not given".
type Column struct {
	index int
	name  string
}

// ColumnIndex references a column by its 1-based index.
func ColumnIndex(index int) Column {
	return Column{index: index}
}

// ColumnName references a column by its letter label.
func ColumnName(name string) Column {
	return Column{name: strings.TrimSpace(name)}
}

// ParseColumn accepts either a decimal index ("8") or a letter label ("H").
// An empty string yields the zero Column.
func ParseColumn(s string) Column {
	s = strings.TrimSpace(s)
	if s == "" {
		return Column{}
	}
	if n, err := strconv.Atoi(s); err == nil {
		return ColumnIndex(n)
	}
	return ColumnName(s)
}

// IsZero reports whether the column was not given.
func (c Column) IsZero() bool {
	return c.index == 0 && c.name == ""
}

// Number normalises the reference to a 1-based column index.
func (c Column) Number() (int, error) {
	if c.name != "" {
		n, err := excelize.ColumnNameToNumber(c.name)
		if err != nil {
			return 0, fmt.Errorf("%w: column %q: %v", ErrInvalidArgument, c.name, err)
		}
		return n, nil
	}
	if c.index < 1 || c.index > excelize.MaxColumns {
		return 0, fmt.Errorf("%w: column %d out of range", ErrInvalidArgument, c.index)
	}
	return c.index, nil
}

// String returns the label as given.
func (c Column) String() string {
	if c.name != "" {
		return c.name
	}
	if c.index == 0 {
		return ""
	}
	return strconv.Itoa(c.index)
}
