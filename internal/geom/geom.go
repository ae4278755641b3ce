// Package geom holds the two rectangle representations used throughout the
// engine and the single conversion point between them.
//
// Drawing space is pixel based with the origin at the top-left corner of the
// rendered page, growing downward. Extraction space is point based with the
// origin at the bottom-left corner, growing upward. A region carries both
// rectangles; they are reconciled exactly once, at construction, and never
// re-derived from one another afterwards.
package geom

import "math"

// DrawRect is a rectangle in drawing space.
type DrawRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// IsValid reports whether the rectangle has positive dimensions.
func (d DrawRect) IsValid() bool {
	return d.Width > 0 && d.Height > 0
}

// Rect is a rectangle in extraction space. (X0, Y0) is the lower-left corner
// and (X1, Y1) the upper-right corner.
type Rect struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 {
	return r.Y1 - r.Y0
}

// IsValid reports whether the rectangle has positive dimensions.
func (r Rect) IsValid() bool {
	return r.X1 > r.X0 && r.Y1 > r.Y0
}

// Contains reports whether the point (x, y) lies inside the rectangle,
// borders included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X0 && x <= r.X1 && y >= r.Y0 && y <= r.Y1
}

// Union returns the bounding box of the two rectangles.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		X0: math.Min(r.X0, other.X0),
		Y0: math.Min(r.Y0, other.Y0),
		X1: math.Max(r.X1, other.X1),
		Y1: math.Max(r.Y1, other.Y1),
	}
}

// Convert maps a drawing-space rectangle to extraction space. The vertical
// axis flips because drawing space grows downward while extraction space
// grows upward from the page bottom. pageHeight is the page height in
// extraction units.
func Convert(d DrawRect, scaleX, scaleY, pageHeight float64) Rect {
	return Rect{
		X0: d.X * scaleX,
		X1: (d.X + d.Width) * scaleX,
		Y0: pageHeight - (d.Y+d.Height)*scaleY,
		Y1: pageHeight - d.Y*scaleY,
	}
}

// Invert recovers the drawing-space rectangle from an extraction-space one
// under the same scale factors and page height.
func Invert(r Rect, scaleX, scaleY, pageHeight float64) DrawRect {
	return DrawRect{
		X:      r.X0 / scaleX,
		Y:      (pageHeight - r.Y1) / scaleY,
		Width:  (r.X1 - r.X0) / scaleX,
		Height: (r.Y1 - r.Y0) / scaleY,
	}
}

// ConvertX maps a drawing-space x position (a column divider) to extraction
// space.
func ConvertX(x, scaleX float64) float64 {
	return x * scaleX
}
