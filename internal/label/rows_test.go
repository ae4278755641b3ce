package label

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tularam-sharma/pdfharvest/internal/template"
)

func sampleRows() []Row {
	return []Row{
		{Section: template.SectionHeader, RegionIndex: 0, RowIndex: 1, Page: 1, Cells: []string{"INV-1042"}},
		{Section: template.SectionItems, RegionIndex: 0, RowIndex: 1, Page: 1, Cells: []string{"Widget", "2", "19.90"}},
		{Section: template.SectionItems, RegionIndex: 0, RowIndex: 2, Page: 1, Cells: []string{"Gadget", "1", "5.00"}},
		{Section: template.SectionSummary, RegionIndex: 0, RowIndex: 1, Page: 2, Cells: []string{"Total", "24.90"}},
	}
}

func TestSerializeParseRoundTrip(t *testing.T) {
	rows := sampleRows()
	text := Serialize(rows)

	parsed, bad := ParseRows(text)
	require.Empty(t, bad)
	require.Len(t, parsed, len(rows))

	for i, row := range rows {
		assert.Equal(t, row.Label(), parsed[i].Label())
		assert.Equal(t, row.Cells, parsed[i].Cells)
	}
}

func TestSerializeFormat(t *testing.T) {
	text := Serialize(sampleRows()[:2])
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "H1_R1_P1|INV-1042", lines[0])
	assert.Equal(t, "I1_R1_P1|Widget|2|19.90", lines[1])
}

func TestParseRowsPadsShortRows(t *testing.T) {
	text := "I1_R1_P1|Widget|2|19.90\nI1_R2_P1|Shipping\n"
	rows, bad := ParseRows(text)
	require.Empty(t, bad)
	require.Len(t, rows, 2)

	// The short row pads to the section's widest row.
	assert.Equal(t, []string{"Shipping", "", ""}, rows[1].Cells)
}

func TestParseRowsPadsPerSection(t *testing.T) {
	text := "I1_R1_P1|a|b|c\nH1_R1_P1|x\n"
	rows, _ := ParseRows(text)
	require.Len(t, rows, 2)

	// Header width is independent of items width.
	assert.Equal(t, []string{"x"}, rows[1].Cells)
}

func TestParseRowsSkipsBadLabels(t *testing.T) {
	text := "I1_R1_P1|ok\ngarbage|nope\nI1_R2_P1|also ok\n"
	rows, bad := ParseRows(text)

	require.Len(t, rows, 2)
	assert.Equal(t, []string{"garbage"}, bad)
}

func TestDisplay(t *testing.T) {
	row := Row{Section: template.SectionItems, RegionIndex: 0, RowIndex: 2, Page: 3, Cells: []string{"a", "b"}}
	assert.Equal(t, "Region: I1_R2_P3  Data: {a, b}", Display(row))
}

func TestValidateConsistency(t *testing.T) {
	good := make([]string, 0, 100)
	for i := 0; i < 100; i++ {
		good = append(good, Make(template.SectionItems, 0, i+1, 1))
	}

	assert.NoError(t, ValidateConsistency(good, DefaultConsistencyThreshold))

	// 5 bad labels out of 100 sits exactly at the threshold.
	atThreshold := append(append([]string{}, good[:95]...), "x", "y", "z", "w", "v")
	assert.NoError(t, ValidateConsistency(atThreshold, DefaultConsistencyThreshold))

	// 6 bad labels drops below it.
	belowThreshold := append(append([]string{}, good[:94]...), "x", "y", "z", "w", "v", "u")
	assert.Error(t, ValidateConsistency(belowThreshold, DefaultConsistencyThreshold))

	assert.NoError(t, ValidateConsistency(nil, DefaultConsistencyThreshold))
}
