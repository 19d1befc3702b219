package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
log:
  level: debug
defaults:
  sheet: Data
  exact_match: true
page_setups:
  a4:
    left_margin: 0.7
    right_margin: 0.7
    paper_size: 9
    fit_to_pages_wide: 1
    fit_to_pages_tall: 0
    center_footer: "&P / &N"
    print_area: A1:H40
styles:
  header:
    font_name: Arial
    bold: true
    border_style: thin
    border_type: all
    fill_color: DDEBF7
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exhelper.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format, "missing key keeps default")
	assert.Equal(t, "Data", cfg.Defaults.Sheet)
	assert.True(t, cfg.Defaults.ExactMatch)

	ps, err := cfg.PageSetup("a4")
	require.NoError(t, err)
	assert.Equal(t, 0.7, ps.LeftMargin)
	assert.Equal(t, 9, ps.PaperSize)
	assert.Equal(t, "&P / &N", ps.CenterFooter)
	assert.Equal(t, "A1:H40", ps.PrintArea)

	rs, err := cfg.Style("header")
	require.NoError(t, err)
	assert.Equal(t, "Arial", rs.FontName)
	require.NotNil(t, rs.Bold)
	assert.True(t, *rs.Bold)
	assert.Nil(t, rs.Italic)
	assert.Equal(t, "all", rs.BorderType)

	_, err = cfg.PageSetup("letter")
	assert.Error(t, err)
	_, err = cfg.Style("body")
	assert.Error(t, err)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty", "", false},
		{"unknown key", "logging:\n  level: debug\n", true},
		{"bad type", "defaults:\n  exact_match: maybe\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, Default(), cfg)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
