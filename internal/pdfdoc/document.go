// Package pdfdoc is the engine's handle onto the rendering collaborator. It
// opens a document through pdfcpu for structural facts (page count, page
// dimensions, embedded images) and through ledongthuc/pdf for positioned
// text content. It never renders pages or recognizes content itself; it only
// hands raw material to the extraction backends.
package pdfdoc

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	lpdf "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Default page dimensions in points, used when the page tree carries none.
const (
	defaultPageWidth  = 612.0 // US Letter
	defaultPageHeight = 792.0
)

// Word is one positioned text fragment in extraction space. Y is the
// fragment's baseline; H approximates its height from the font size.
type Word struct {
	Text string
	X    float64
	Y    float64
	W    float64
	H    float64
}

// Document is an open PDF. A document is not safe for concurrent use; the
// batch driver processes one document at a time.
type Document struct {
	path   string
	file   *os.File
	reader *lpdf.Reader
	ctx    *model.Context
	conf   *model.Configuration
	closed bool
}

// Open opens and validates a PDF document.
func Open(path string) (*Document, error) {
	f, reader, err := lpdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	cf, err := os.Open(path)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer cf.Close()

	ctx, err := api.ReadContext(cf, conf)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("read pdf context %s: %w", path, err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		f.Close()
		return nil, fmt.Errorf("page count of %s: %w", path, err)
	}

	return &Document{path: path, file: f, reader: reader, ctx: ctx, conf: conf}, nil
}

// Path returns the file the document was opened from.
func (d *Document) Path() string { return d.path }

// PageCount returns the number of pages.
func (d *Document) PageCount() int { return d.ctx.PageCount }

// Close releases the underlying file.
func (d *Document) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	return d.file.Close()
}

// Page returns the handle for a 1-based page number.
func (d *Document) Page(num int) (*Page, error) {
	if d.closed {
		return nil, fmt.Errorf("document %s is closed", d.path)
	}
	if num < 1 || num > d.ctx.PageCount {
		return nil, fmt.Errorf("invalid page number %d (document has %d pages)", num, d.ctx.PageCount)
	}
	return &Page{doc: d, num: num}, nil
}

// ExtractPageImages writes the page's embedded images into dir and returns
// their paths. Scanned invoices typically carry one full-page image; the OCR
// backends feed these to the recognizer.
func (d *Document) ExtractPageImages(pageNum int, dir string) ([]string, error) {
	if err := api.ExtractImagesFile(d.path, dir, []string{strconv.Itoa(pageNum)}, d.conf); err != nil {
		return nil, fmt.Errorf("extract images of page %d: %w", pageNum, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read image dir: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg", ".tif", ".tiff":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	return paths, nil
}

// Page is one page of an open document.
type Page struct {
	doc *Document
	num int
}

// Number returns the 1-based page number.
func (p *Page) Number() int { return p.num }

// Document returns the owning document.
func (p *Page) Document() *Document { return p.doc }

// DocumentPath returns the path of the owning document.
func (p *Page) DocumentPath() string { return p.doc.path }

// Images materializes the page's embedded images into dir and returns their
// paths.
func (p *Page) Images(dir string) ([]string, error) {
	return p.doc.ExtractPageImages(p.num, dir)
}

// Size returns the page dimensions in points. Pages without usable
// dimensions report US Letter.
func (p *Page) Size() (width, height float64) {
	dims, err := p.doc.ctx.PageDims()
	if err != nil || p.num > len(dims) {
		return defaultPageWidth, defaultPageHeight
	}
	d := dims[p.num-1]
	if d.Width <= 0 || d.Height <= 0 {
		return defaultPageWidth, defaultPageHeight
	}
	return d.Width, d.Height
}

// Words returns the page's positioned text fragments in extraction space.
func (p *Page) Words() ([]Word, error) {
	page := p.doc.reader.Page(p.num)
	if page.V.IsNull() {
		return nil, fmt.Errorf("page %d has no content", p.num)
	}

	content := page.Content()
	words := make([]Word, 0, len(content.Text))
	for _, t := range content.Text {
		if t.S == "" {
			continue
		}
		h := t.FontSize
		if h == 0 {
			h = 12.0
		}
		words = append(words, Word{Text: t.S, X: t.X, Y: t.Y, W: t.W, H: h})
	}
	return words, nil
}

// PlainText returns the page's text without positioning, the direct path the
// layout backend falls back to.
func (p *Page) PlainText() (string, error) {
	page := p.doc.reader.Page(p.num)
	if page.V.IsNull() {
		return "", fmt.Errorf("page %d has no content", p.num)
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("plain text of page %d: %w", p.num, err)
	}
	return text, nil
}
