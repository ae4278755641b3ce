package extract

import (
	"sort"

	"github.com/tularam-sharma/pdfharvest/internal/geom"
)

// DefaultDividerTolerance is the distance, in extraction units, within which
// two column dividers count as the same divider after a merge. Like the row
// tolerance it is a convention, not a derived value, and stays configurable.
const DefaultDividerTolerance = 5.0

// MergeRects collapses several rectangles of one section into their bounding
// box and merges all their column dividers into one sorted set, dropping any
// divider within tol of an already kept one. Merging keeps one coherent
// table instead of disjoint fragments whose rows cannot be row-aligned.
func MergeRects(rects []geom.Rect, dividers [][]float64, tol float64) (geom.Rect, []float64) {
	if len(rects) == 0 {
		return geom.Rect{}, nil
	}

	box := rects[0]
	for _, r := range rects[1:] {
		box = box.Union(r)
	}

	var all []float64
	for _, ds := range dividers {
		all = append(all, ds...)
	}
	sort.Float64s(all)

	var merged []float64
	for _, x := range all {
		if len(merged) > 0 && x-merged[len(merged)-1] <= tol {
			continue
		}
		merged = append(merged, x)
	}
	return box, merged
}
