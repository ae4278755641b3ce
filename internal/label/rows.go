package label

import (
	"fmt"
	"strings"

	"github.com/tularam-sharma/pdfharvest/internal/template"
)

// DefaultConsistencyThreshold is the fraction of labels that must parse for
// a run to count as consistent.
const DefaultConsistencyThreshold = 0.95

// Row is one extracted table row tagged with its origin. The origin fields
// are the row's bookkeeping; only Cells enter the serialized cell list.
type Row struct {
	Section template.Section
	// RegionIndex is the 0-based region index within the section.
	RegionIndex int
	// RowIndex is the 1-based row number within the region.
	RowIndex int
	// Page is the 1-based document page the row came from.
	Page  int
	Cells []string
}

// Label returns the canonical label for the row.
func (r Row) Label() string {
	return Make(r.Section, r.RegionIndex, r.RowIndex, r.Page)
}

// Serialize renders rows as interchange text, one row per line:
//
//	{label}|{cell_1}|...|{cell_n}
func Serialize(rows []Row) string {
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(row.Label())
		for _, cell := range row.Cells {
			b.WriteByte('|')
			b.WriteString(cell)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Display renders a row for human inspection. The output is not meant to
// round trip.
func Display(r Row) string {
	return fmt.Sprintf("Region: %s  Data: {%s}", r.Label(), strings.Join(r.Cells, ", "))
}

// ParseRows reconstructs rows from interchange text. Rows in each section
// right-pad to that section's maximum observed column count, so short rows
// stay column-aligned with their siblings. Lines whose label fails the
// grammar are skipped and returned for the consistency check; they do not
// abort the parse.
func ParseRows(text string) (rows []Row, badLabels []string) {
	maxCols := make(map[template.Section]int)

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "|")
		l, err := Parse(fields[0])
		if err != nil {
			badLabels = append(badLabels, fields[0])
			continue
		}
		cells := fields[1:]
		if len(cells) > maxCols[l.Section] {
			maxCols[l.Section] = len(cells)
		}
		rows = append(rows, Row{
			Section:     l.Section,
			RegionIndex: l.Region - 1,
			RowIndex:    l.Row,
			Page:        l.Page,
			Cells:       cells,
		})
	}

	for i := range rows {
		for len(rows[i].Cells) < maxCols[rows[i].Section] {
			rows[i].Cells = append(rows[i].Cells, "")
		}
	}
	return rows, badLabels
}

// ConsistencyRatio returns the fraction of labels that parse. An empty slice
// is vacuously consistent.
func ConsistencyRatio(labels []string) float64 {
	if len(labels) == 0 {
		return 1
	}
	ok := 0
	for _, s := range labels {
		if _, err := Parse(s); err == nil {
			ok++
		}
	}
	return float64(ok) / float64(len(labels))
}

// ValidateConsistency fails when fewer than the threshold fraction of labels
// parse, which signals external corruption of the intermediate text.
func ValidateConsistency(labels []string, threshold float64) error {
	ratio := ConsistencyRatio(labels)
	if ratio < threshold {
		return &CodecError{
			Op:  "validate_consistency",
			Err: fmt.Errorf("only %.1f%% of %d labels parse, need %.1f%%", ratio*100, len(labels), threshold*100),
		}
	}
	return nil
}
