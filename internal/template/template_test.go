package template

import (
	"errors"
	"testing"

	"github.com/tularam-sharma/pdfharvest/internal/geom"
)

func validDraw() geom.DrawRect {
	return geom.DrawRect{X: 10, Y: 10, Width: 100, Height: 50}
}

func validRect() geom.Rect {
	return geom.Rect{X0: 7.2, Y0: 748.8, X1: 79.2, Y1: 784.8}
}

func TestNewRegionValidation(t *testing.T) {
	tests := []struct {
		name    string
		region  string
		draw    geom.DrawRect
		rect    geom.Rect
		wantErr bool
	}{
		{
			name:   "valid region",
			region: "invoice_no",
			draw:   validDraw(),
			rect:   validRect(),
		},
		{
			name:    "empty name",
			region:  "",
			draw:    validDraw(),
			rect:    validRect(),
			wantErr: true,
		},
		{
			name:    "whitespace name",
			region:  "   ",
			draw:    validDraw(),
			rect:    validRect(),
			wantErr: true,
		},
		{
			name:    "zero width",
			region:  "r",
			draw:    geom.DrawRect{X: 10, Y: 10, Width: 0, Height: 50},
			rect:    validRect(),
			wantErr: true,
		},
		{
			name:    "negative height",
			region:  "r",
			draw:    geom.DrawRect{X: 10, Y: 10, Width: 100, Height: -5},
			rect:    validRect(),
			wantErr: true,
		},
		{
			name:    "negative drawing origin",
			region:  "r",
			draw:    geom.DrawRect{X: -1, Y: 10, Width: 100, Height: 50},
			rect:    validRect(),
			wantErr: true,
		},
		{
			name:    "inverted extraction rect",
			region:  "r",
			draw:    validDraw(),
			rect:    geom.Rect{X0: 79.2, Y0: 748.8, X1: 7.2, Y1: 784.8},
			wantErr: true,
		},
		{
			name:    "coordinate beyond sanity bound",
			region:  "r",
			draw:    geom.DrawRect{X: 10, Y: 10, Width: 90000, Height: 50},
			rect:    validRect(),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegion(SectionHeader, tt.region, tt.draw, tt.rect)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewRegion() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var defErr *DefinitionError
				if !errors.As(err, &defErr) {
					t.Errorf("expected DefinitionError, got %T", err)
				}
			}
		})
	}
}

func TestNewRegionImmutable(t *testing.T) {
	r, err := NewRegion(SectionItems, "lines", validDraw(), validRect())
	if err != nil {
		t.Fatalf("NewRegion() error = %v", err)
	}

	// Accessors return copies; both rectangles come back exactly as stored.
	if r.Draw() != validDraw() {
		t.Errorf("Draw() = %+v, want %+v", r.Draw(), validDraw())
	}
	if r.Rect() != validRect() {
		t.Errorf("Rect() = %+v, want %+v", r.Rect(), validRect())
	}
	if r.Section() != SectionItems || r.Name() != "lines" {
		t.Errorf("unexpected identity: %v %q", r.Section(), r.Name())
	}
}

func TestNewDividerValidation(t *testing.T) {
	if _, err := NewDivider(0, 12, 8.64); err != nil {
		t.Errorf("NewDivider() unexpected error: %v", err)
	}
	if _, err := NewDivider(-1, 12, 8.64); err == nil {
		t.Error("expected error for negative region index")
	}
	if _, err := NewDivider(0, -3, 8.64); err == nil {
		t.Error("expected error for negative position")
	}
	if _, err := NewDivider(0, 12, 60001); err == nil {
		t.Error("expected error for position beyond sanity bound")
	}
}

func TestNewTemplateDuplicateRegionNames(t *testing.T) {
	a, _ := NewRegion(SectionHeader, "total", validDraw(), validRect())
	b, _ := NewRegion(SectionHeader, "total", validDraw(), validRect())

	pages := []TemplatePage{{
		Regions: map[Section][]Region{SectionHeader: {a, b}},
	}}
	_, err := New(pages, DefaultPageWise(), nil)
	if err == nil {
		t.Fatal("expected error for duplicate region names in one section")
	}

	// The same name in different sections is fine.
	c, _ := NewRegion(SectionSummary, "total", validDraw(), validRect())
	pages = []TemplatePage{{
		Regions: map[Section][]Region{
			SectionHeader:  {a},
			SectionSummary: {c},
		},
	}}
	if _, err := New(pages, DefaultPageWise(), nil); err != nil {
		t.Errorf("New() unexpected error: %v", err)
	}
}

func TestNewTemplateDividerOutOfRange(t *testing.T) {
	r, _ := NewRegion(SectionItems, "lines", validDraw(), validRect())
	d, _ := NewDivider(3, 12, 8.64)

	pages := []TemplatePage{{
		Regions:  map[Section][]Region{SectionItems: {r}},
		Dividers: map[Section][]ColumnDivider{SectionItems: {d}},
	}}
	if _, err := New(pages, DefaultPageWise(), nil); err == nil {
		t.Fatal("expected error for divider addressing a missing region")
	}
}

func TestNewTemplateMappingBounds(t *testing.T) {
	r, _ := NewRegion(SectionHeader, "h", validDraw(), validRect())
	pages := []TemplatePage{{Regions: map[Section][]Region{SectionHeader: {r}}}}

	bad := DefaultPageWise()
	bad.FirstPage = 2
	if _, err := New(pages, bad, nil); err == nil {
		t.Error("expected error for first_page beyond template pages")
	}

	bad = DefaultPageWise()
	bad.LastPage = LastRule{Kind: LastSpecific, Page: 9}
	if _, err := New(pages, bad, nil); err == nil {
		t.Error("expected error for specific last page beyond template pages")
	}
}

func TestParseSection(t *testing.T) {
	for _, s := range Sections {
		got, err := ParseSection(s.String())
		if err != nil || got != s {
			t.Errorf("ParseSection(%q) = %v, %v", s.String(), got, err)
		}
		got, err = ParseSection(string(s.Code()))
		if err != nil || got != s {
			t.Errorf("ParseSection(%q) = %v, %v", string(s.Code()), got, err)
		}
	}
	if _, err := ParseSection("footer"); err == nil {
		t.Error("expected error for unknown section")
	}
}

func TestParseLastRule(t *testing.T) {
	tests := []struct {
		in      string
		want    LastRule
		wantErr bool
	}{
		{in: "last_template_page", want: LastRule{Kind: LastTemplatePage}},
		{in: "same_as_first", want: LastRule{Kind: LastSameAsFirst}},
		{in: "3", want: LastRule{Kind: LastSpecific, Page: 3}},
		{in: "0", wantErr: true},
		{in: "bogus", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseLastRule(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLastRule(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseLastRule(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}
