package geom

import (
	"math"
	"testing"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name       string
		draw       DrawRect
		scaleX     float64
		scaleY     float64
		pageHeight float64
		want       Rect
	}{
		{
			name:       "unit scale",
			draw:       DrawRect{X: 10, Y: 20, Width: 30, Height: 40},
			scaleX:     1,
			scaleY:     1,
			pageHeight: 100,
			want:       Rect{X0: 10, Y0: 40, X1: 40, Y1: 80},
		},
		{
			name:       "half scale",
			draw:       DrawRect{X: 100, Y: 100, Width: 200, Height: 100},
			scaleX:     0.5,
			scaleY:     0.5,
			pageHeight: 792,
			want:       Rect{X0: 50, Y0: 692, X1: 150, Y1: 742},
		},
		{
			name:       "top-left pixel maps to top of page",
			draw:       DrawRect{X: 0, Y: 0, Width: 10, Height: 10},
			scaleX:     1,
			scaleY:     1,
			pageHeight: 792,
			want:       Rect{X0: 0, Y0: 782, X1: 10, Y1: 792},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Convert(tt.draw, tt.scaleX, tt.scaleY, tt.pageHeight)
			if got != tt.want {
				t.Errorf("Convert() = %+v, want %+v", got, tt.want)
			}
			if !got.IsValid() {
				t.Errorf("Convert() produced invalid rect %+v", got)
			}
		})
	}
}

func TestConvertInvertRoundTrip(t *testing.T) {
	const tolerance = 1e-9

	scales := []float64{0.25, 0.5, 1.0, 1.5, 2.0}
	rects := []DrawRect{
		{X: 0, Y: 0, Width: 1, Height: 1},
		{X: 12.5, Y: 37.25, Width: 100.75, Height: 42},
		{X: 300, Y: 600, Width: 250, Height: 180},
	}

	for _, sx := range scales {
		for _, sy := range scales {
			for _, d := range rects {
				r := Convert(d, sx, sy, 792)
				back := Invert(r, sx, sy, 792)

				if math.Abs(back.X-d.X) > tolerance ||
					math.Abs(back.Y-d.Y) > tolerance ||
					math.Abs(back.Width-d.Width) > tolerance ||
					math.Abs(back.Height-d.Height) > tolerance {
					t.Errorf("round trip sx=%v sy=%v: got %+v, want %+v", sx, sy, back, d)
				}
			}
		}
	}
}

func TestRectUnion(t *testing.T) {
	a := Rect{X0: 0, Y0: 0, X1: 10, Y1: 10}
	b := Rect{X0: 20, Y0: 0, X1: 30, Y1: 10}

	got := a.Union(b)
	want := Rect{X0: 0, Y0: 0, X1: 30, Y1: 10}
	if got != want {
		t.Errorf("Union() = %+v, want %+v", got, want)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X0: 10, Y0: 10, X1: 20, Y1: 20}

	if !r.Contains(15, 15) {
		t.Error("expected interior point to be contained")
	}
	if !r.Contains(10, 20) {
		t.Error("expected border point to be contained")
	}
	if r.Contains(9.99, 15) {
		t.Error("did not expect outside point to be contained")
	}
}

func TestRectIsValid(t *testing.T) {
	if (Rect{X0: 0, Y0: 0, X1: 0, Y1: 10}).IsValid() {
		t.Error("zero-width rect should be invalid")
	}
	if (Rect{X0: 0, Y0: 10, X1: 10, Y1: 0}).IsValid() {
		t.Error("inverted rect should be invalid")
	}
	if !(Rect{X0: 0, Y0: 0, X1: 1, Y1: 1}).IsValid() {
		t.Error("positive rect should be valid")
	}
}
