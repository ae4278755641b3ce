package template

import (
	"fmt"
	"strings"

	"github.com/tularam-sharma/pdfharvest/internal/geom"
)

// MaxCoordinate is the sanity bound for any region coordinate in either
// space. Values beyond it indicate a corrupt template rather than a page
// geometry any renderer would produce.
const MaxCoordinate = 50000

// Region is a named rectangular area of one section, stored redundantly in
// both coordinate spaces. The two rectangles describe the same physical area;
// they are reconciled at construction and read-only afterwards, so repeated
// reads cannot accumulate floating-point drift.
type Region struct {
	section Section
	name    string
	draw    geom.DrawRect
	rect    geom.Rect
}

// NewRegion validates and builds a Region. Both rectangles must have positive
// dimensions, non-negative origins, coordinates within the sanity bound, and
// the name must not be blank.
func NewRegion(section Section, name string, draw geom.DrawRect, rect geom.Rect) (Region, error) {
	if strings.TrimSpace(name) == "" {
		return Region{}, &DefinitionError{Op: "new_region", Err: fmt.Errorf("region name is empty")}
	}
	if !draw.IsValid() {
		return Region{}, &DefinitionError{
			Op:  "new_region",
			Err: fmt.Errorf("region %q: drawing rect must have positive dimensions, got %+v", name, draw),
		}
	}
	if draw.X < 0 || draw.Y < 0 {
		return Region{}, &DefinitionError{
			Op:  "new_region",
			Err: fmt.Errorf("region %q: drawing origin must be non-negative, got (%v, %v)", name, draw.X, draw.Y),
		}
	}
	if !rect.IsValid() {
		return Region{}, &DefinitionError{
			Op:  "new_region",
			Err: fmt.Errorf("region %q: extraction rect must have positive dimensions, got %+v", name, rect),
		}
	}
	if rect.X0 < 0 || rect.Y0 < 0 {
		return Region{}, &DefinitionError{
			Op:  "new_region",
			Err: fmt.Errorf("region %q: extraction origin must be non-negative, got (%v, %v)", name, rect.X0, rect.Y0),
		}
	}
	for _, v := range []float64{draw.X + draw.Width, draw.Y + draw.Height, rect.X1, rect.Y1} {
		if v > MaxCoordinate {
			return Region{}, &DefinitionError{
				Op:  "new_region",
				Err: fmt.Errorf("region %q: coordinate %v exceeds sanity bound %d", name, v, MaxCoordinate),
			}
		}
	}

	return Region{section: section, name: name, draw: draw, rect: rect}, nil
}

// Section returns the section the region belongs to.
func (r Region) Section() Section { return r.section }

// Name returns the region name, unique within its section and page.
func (r Region) Name() string { return r.name }

// Draw returns the drawing-space rectangle.
func (r Region) Draw() geom.DrawRect { return r.draw }

// Rect returns the extraction-space rectangle.
func (r Region) Rect() geom.Rect { return r.rect }

// ColumnDivider is a vertical split position within one region, stored in
// both coordinate spaces like the region itself.
type ColumnDivider struct {
	regionIndex int
	drawX       float64
	x           float64
}

// NewDivider validates and builds a ColumnDivider. regionIndex addresses a
// region within the same section and page.
func NewDivider(regionIndex int, drawX, x float64) (ColumnDivider, error) {
	if regionIndex < 0 {
		return ColumnDivider{}, &DefinitionError{
			Op:  "new_divider",
			Err: fmt.Errorf("divider region index must be non-negative, got %d", regionIndex),
		}
	}
	if drawX < 0 || x < 0 {
		return ColumnDivider{}, &DefinitionError{
			Op:  "new_divider",
			Err: fmt.Errorf("divider position must be non-negative, got draw=%v extract=%v", drawX, x),
		}
	}
	if drawX > MaxCoordinate || x > MaxCoordinate {
		return ColumnDivider{}, &DefinitionError{
			Op:  "new_divider",
			Err: fmt.Errorf("divider position exceeds sanity bound %d", MaxCoordinate),
		}
	}
	return ColumnDivider{regionIndex: regionIndex, drawX: drawX, x: x}, nil
}

// RegionIndex returns the index of the region the divider splits.
func (d ColumnDivider) RegionIndex() int { return d.regionIndex }

// DrawX returns the drawing-space x position.
func (d ColumnDivider) DrawX() float64 { return d.drawX }

// X returns the extraction-space x position.
func (d ColumnDivider) X() float64 { return d.x }
