package extract

import (
	"sort"
	"strings"

	"github.com/tularam-sharma/pdfharvest/internal/geom"
	"github.com/tularam-sharma/pdfharvest/internal/pdfdoc"
)

// assembleGrid buckets positioned words into one row table. Words inside the
// rectangle cluster into rows by baseline within rowTol, top of page first.
// With dividers, each row splits into len(dividers)+1 cells at the divider x
// positions; in whitespace mode every word becomes its own cell; otherwise a
// row is a single joined cell.
func assembleGrid(words []pdfdoc.Word, rect geom.Rect, dividers []float64, rowTol float64, split string) Table {
	type placed struct {
		text string
		x    float64
		y    float64
	}

	var inside []placed
	for _, w := range words {
		cx := w.X + w.W/2
		if rect.Contains(cx, w.Y) {
			inside = append(inside, placed{text: w.Text, x: cx, y: w.Y})
		}
	}
	if len(inside) == 0 {
		return nil
	}

	// Top of page first, then left to right.
	sort.Slice(inside, func(i, j int) bool {
		if inside[i].y != inside[j].y {
			return inside[i].y > inside[j].y
		}
		return inside[i].x < inside[j].x
	})

	var rows [][]placed
	for _, w := range inside {
		if len(rows) == 0 || rows[len(rows)-1][0].y-w.y > rowTol {
			rows = append(rows, []placed{w})
			continue
		}
		rows[len(rows)-1] = append(rows[len(rows)-1], w)
	}

	divs := append([]float64(nil), dividers...)
	sort.Float64s(divs)

	table := make(Table, 0, len(rows))
	for _, row := range rows {
		sort.Slice(row, func(i, j int) bool { return row[i].x < row[j].x })

		switch {
		case len(divs) > 0:
			cells := make([]string, len(divs)+1)
			for _, w := range row {
				col := sort.SearchFloat64s(divs, w.x)
				if cells[col] != "" {
					cells[col] += " "
				}
				cells[col] += w.text
			}
			table = append(table, cells)
		case split == SplitWhitespace:
			cells := make([]string, 0, len(row))
			for _, w := range row {
				cells = append(cells, w.text)
			}
			table = append(table, cells)
		default:
			parts := make([]string, 0, len(row))
			for _, w := range row {
				parts = append(parts, w.text)
			}
			table = append(table, []string{strings.Join(parts, " ")})
		}
	}
	return table
}
