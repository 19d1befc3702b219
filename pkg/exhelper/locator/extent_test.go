package locator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gridSheet is an in-memory Sheet. Bounds default to the grid's extent and
// can be overridden to mimic a library that overstates them.
type gridSheet struct {
	cells  map[[2]int]string
	maxRow int
	maxCol int
}

func newGridSheet(rows ...[]string) *gridSheet {
	s := &gridSheet{cells: map[[2]int]string{}}
	for r, row := range rows {
		for c, v := range row {
			if v == "" {
				continue
			}
			s.cells[[2]int{r + 1, c + 1}] = v
			s.maxRow = max(s.maxRow, r+1)
			s.maxCol = max(s.maxCol, c+1)
		}
	}
	return s
}

func (s *gridSheet) Name() string   { return "Grid" }
func (s *gridSheet) MaxRow() int    { return s.maxRow }
func (s *gridSheet) MaxColumn() int { return s.maxCol }

func (s *gridSheet) Value(row, col int) (string, bool) {
	v, ok := s.cells[[2]int{row, col}]
	return v, ok && v != ""
}

func TestFindLastColumnNoData(t *testing.T) {
	empty := newGridSheet()
	queries := []Query{
		{},
		{Row: 3},
		{Row: 3, Column: ColumnIndex(2)},
		{Column: ColumnIndex(5)},
		{Row: 1, Column: ColumnName("not-a-column")},
	}
	for _, q := range queries {
		got, err := FindLastColumn(empty, q)
		require.NoError(t, err, "query %+v", q)
		assert.Equal(t, NoData, got, "query %+v", q)
	}
}

func TestFindLastColumnRequiresRow(t *testing.T) {
	sheet := newGridSheet([]string{"a", "b", "c", "d", "e"})

	_, err := FindLastColumn(sheet, Query{Column: ColumnIndex(5)})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = FindLastColumn(sheet, Query{Column: ColumnName("E")})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestFindLastColumnInvalidColumn(t *testing.T) {
	sheet := newGridSheet([]string{"a", "b"})
	tests := []struct {
		name string
		q    Query
	}{
		{"bad letters", Query{Row: 1, Column: ColumnName("A1")}},
		{"negative index", Query{Row: 1, Column: ColumnIndex(-2)}},
		{"negative row", Query{Row: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FindLastColumn(sheet, tt.q)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestFindLastColumnEmptyAnchor(t *testing.T) {
	sheet := newGridSheet(
		[]string{"x", "x", "x"},
		[]string{"x", "x", "x"},
		[]string{"x", "", "x"},
	)
	got, err := FindLastColumn(sheet, Query{Row: 3, Column: ColumnIndex(2)})
	require.NoError(t, err)
	assert.Equal(t, EmptyAnchor, got)
}

func TestFindLastColumnFromAnchor(t *testing.T) {
	sheet := newGridSheet(
		[]string{"1", "2", "3", "4", "5", "", "7"},
		[]string{"10", "20", "30", "", ""},
	)
	tests := []struct {
		name string
		q    Query
		want int
	}{
		{"stops before first gap", Query{Row: 1, Column: ColumnIndex(1)}, 5},
		{"anchor after gap", Query{Row: 1, Column: ColumnIndex(7)}, 7},
		{"values then blanks", Query{Row: 2, Column: ColumnIndex(1)}, 3},
		{"mid-run anchor", Query{Row: 2, Column: ColumnIndex(2)}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindLastColumn(sheet, tt.q)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindLastColumnRunReachesBound(t *testing.T) {
	sheet := newGridSheet([]string{"a", "b", "c", "d"})
	got, err := FindLastColumn(sheet, Query{Row: 1, Column: ColumnIndex(2)})
	require.NoError(t, err)
	assert.Equal(t, 4, got)
}

func TestAnchorPastUnderstatedBoundStaysWithinBound(t *testing.T) {
	sheet := newGridSheet(
		[]string{"a", "b", "c", "d", "e", "f"},
		[]string{"a"}, []string{"a"}, []string{"a"}, []string{"a"}, []string{"a"},
	)
	sheet.maxCol, sheet.maxRow = 3, 3

	col, err := FindLastColumn(sheet, Query{Row: 1, Column: ColumnIndex(5)})
	require.NoError(t, err)
	assert.Equal(t, 3, col)

	row, err := FindLastRow(sheet, Query{Row: 5, Column: ColumnIndex(1)})
	require.NoError(t, err)
	assert.Equal(t, 3, row)
}

func TestFindLastColumnRowOnly(t *testing.T) {
	sheet := newGridSheet(
		[]string{"a", "", "c", "", ""},
		[]string{"", "", "", "", "e"},
		[]string{},
	)
	sheet.maxRow = 3

	got, err := FindLastColumn(sheet, Query{Row: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, got)

	got, err = FindLastColumn(sheet, Query{Row: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, got)

	// A row with nothing in it has no extent.
	got, err = FindLastColumn(sheet, Query{Row: 3})
	require.NoError(t, err)
	assert.Equal(t, EmptyAnchor, got)
}

func TestFindLastColumnLetterMatchesIndex(t *testing.T) {
	sheet := newGridSheet(
		[]string{},
		[]string{"", "", "", "", "", "", "", "h", "i", "j"},
	)
	byIndex, err := FindLastColumn(sheet, Query{Row: 2, Column: ColumnIndex(8)})
	require.NoError(t, err)
	byName, err := FindLastColumn(sheet, Query{Row: 2, Column: ColumnName("H")})
	require.NoError(t, err)
	lower, err := FindLastColumn(sheet, Query{Row: 2, Column: ColumnName("h")})
	require.NoError(t, err)

	assert.Equal(t, 10, byIndex)
	assert.Equal(t, byIndex, byName)
	assert.Equal(t, byIndex, lower)
}

func TestFindLastColumnWholeSheet(t *testing.T) {
	sheet := newGridSheet([]string{"a"}, []string{"", "", "c"})
	sheet.maxCol = 9

	got, err := FindLastColumn(sheet, Query{})
	require.NoError(t, err)
	assert.Equal(t, 9, got)
}

func TestFindLastColumnNumericRoundTrip(t *testing.T) {
	sheet := newGridSheet([]string{"10", "20", "30", "", ""})
	sheet.maxCol = 5

	got, err := FindLastColumn(sheet, Query{Row: 1, Column: ColumnIndex(1)})
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestFindLastRow(t *testing.T) {
	sheet := newGridSheet(
		[]string{"a", "x"},
		[]string{"b", ""},
		[]string{"c", "y"},
		[]string{"d", ""},
		[]string{"", "z"},
		[]string{"f", ""},
	)
	tests := []struct {
		name string
		q    Query
		want int
	}{
		{"anchored run", Query{Row: 1, Column: ColumnIndex(1)}, 4},
		{"anchored by letter", Query{Row: 1, Column: ColumnName("A")}, 4},
		{"empty anchor", Query{Row: 2, Column: ColumnIndex(2)}, EmptyAnchor},
		{"column only", Query{Column: ColumnIndex(1)}, 6},
		{"column only letter", Query{Column: ColumnName("B")}, 5},
		{"empty column", Query{Column: ColumnIndex(3)}, EmptyAnchor},
		{"whole sheet", Query{}, 6},
		{"run to bound", Query{Row: 6, Column: ColumnIndex(1)}, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindLastRow(sheet, tt.q)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindLastRowRequiresColumn(t *testing.T) {
	sheet := newGridSheet([]string{"a"})
	_, err := FindLastRow(sheet, Query{Row: 1})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestFindLastRowNoData(t *testing.T) {
	got, err := FindLastRow(newGridSheet(), Query{Row: 1})
	require.NoError(t, err)
	assert.Equal(t, NoData, got)
}

func TestParseColumn(t *testing.T) {
	tests := []struct {
		in   string
		want int
		zero bool
	}{
		{"8", 8, false},
		{"H", 8, false},
		{" aa ", 27, false},
		{"", 0, true},
	}
	for _, tt := range tests {
		c := ParseColumn(tt.in)
		if tt.zero {
			assert.True(t, c.IsZero(), "ParseColumn(%q)", tt.in)
			continue
		}
		n, err := c.Number()
		require.NoError(t, err, "ParseColumn(%q)", tt.in)
		assert.Equal(t, tt.want, n, "ParseColumn(%q)", tt.in)
	}
}
