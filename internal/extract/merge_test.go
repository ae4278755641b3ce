package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tularam-sharma/pdfharvest/internal/geom"
)

func TestMergeRects(t *testing.T) {
	tests := []struct {
		name     string
		rects    []geom.Rect
		dividers [][]float64
		wantBox  geom.Rect
		wantDivs []float64
	}{
		{
			name:     "empty input",
			rects:    nil,
			wantBox:  geom.Rect{},
			wantDivs: nil,
		},
		{
			name:     "single rect passes through",
			rects:    []geom.Rect{{X0: 10, Y0: 20, X1: 110, Y1: 120}},
			dividers: [][]float64{{40, 80}},
			wantBox:  geom.Rect{X0: 10, Y0: 20, X1: 110, Y1: 120},
			wantDivs: []float64{40, 80},
		},
		{
			name: "two rects become bounding box",
			rects: []geom.Rect{
				{X0: 0, Y0: 50, X1: 100, Y1: 100},
				{X0: 20, Y0: 0, X1: 120, Y1: 40},
			},
			wantBox: geom.Rect{X0: 0, Y0: 0, X1: 120, Y1: 100},
		},
		{
			name: "close dividers collapse",
			rects: []geom.Rect{
				{X0: 0, Y0: 0, X1: 50, Y1: 50},
				{X0: 0, Y0: 60, X1: 50, Y1: 110},
			},
			dividers: [][]float64{{5}, {6}},
			wantBox:  geom.Rect{X0: 0, Y0: 0, X1: 50, Y1: 110},
			wantDivs: []float64{5},
		},
		{
			name: "distant dividers both kept",
			rects: []geom.Rect{
				{X0: 0, Y0: 0, X1: 50, Y1: 50},
				{X0: 0, Y0: 60, X1: 50, Y1: 110},
			},
			dividers: [][]float64{{5}, {24}},
			wantBox:  geom.Rect{X0: 0, Y0: 0, X1: 50, Y1: 110},
			wantDivs: []float64{5, 24},
		},
		{
			name:     "unsorted input sorts before dedupe",
			rects:    []geom.Rect{{X0: 0, Y0: 0, X1: 100, Y1: 100}},
			dividers: [][]float64{{80, 20}, {22, 50}},
			wantBox:  geom.Rect{X0: 0, Y0: 0, X1: 100, Y1: 100},
			wantDivs: []float64{20, 50, 80},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box, divs := MergeRects(tt.rects, tt.dividers, DefaultDividerTolerance)
			assert.Equal(t, tt.wantBox, box)
			assert.Equal(t, tt.wantDivs, divs)
		})
	}
}
