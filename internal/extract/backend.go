package extract

import (
	"context"
	"strings"

	"github.com/tularam-sharma/pdfharvest/internal/geom"
	"github.com/tularam-sharma/pdfharvest/internal/pdfdoc"
	"github.com/tularam-sharma/pdfharvest/internal/template"
)

// Page is the document page surface backends consume, satisfied by
// *pdfdoc.Page. The narrow interface keeps backends testable against
// synthetic pages.
type Page interface {
	// Number returns the 1-based page number.
	Number() int
	// DocumentPath identifies the owning document, for cache keys.
	DocumentPath() string
	// Words returns the page's positioned text fragments.
	Words() ([]pdfdoc.Word, error)
	// PlainText returns the page text without positioning.
	PlainText() (string, error)
	// Images materializes the page's embedded images into dir.
	Images(dir string) ([]string, error)
}

// Table is one extracted row table: ordered rows of ordered cell values.
type Table [][]string

// HasData reports whether the table holds at least one non-blank cell. An
// empty or all-blank table is "no data", not an error.
func (t Table) HasData() bool {
	for _, row := range t {
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				return true
			}
		}
	}
	return false
}

func anyData(tables []Table) bool {
	for _, t := range tables {
		if t.HasData() {
			return true
		}
	}
	return false
}

// Request carries one dispatch: the resolved extraction-space rectangles of
// one section on one page, with their column dividers and parameter bag.
type Request struct {
	Section template.Section
	Method  Method
	// Rects are the extraction-space rectangles to read.
	Rects []geom.Rect
	// Dividers holds, per rectangle, the extraction-space x positions
	// splitting it into columns. May be shorter than Rects.
	Dividers [][]float64
	Params   Params
	// WorkDir is the document's temporary working area. Backends that
	// materialize intermediate files (page images for OCR) write only here.
	WorkDir string
}

// dividersFor returns the divider set for rectangle i.
func (r Request) dividersFor(i int) []float64 {
	if i < len(r.Dividers) {
		return r.Dividers[i]
	}
	return nil
}

// Backend executes one extraction method against a document page. Backends
// expose their capability through Available so the dispatcher can route
// around absent integrations instead of branching on global flags.
type Backend interface {
	Method() Method
	// Available reports whether the backend can run in this process.
	Available() bool
	Extract(ctx context.Context, page Page, req Request) ([]Table, error)
}
