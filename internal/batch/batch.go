// Package batch drives template application across collections of documents:
// fixed-size batches, one temporary working area per document, and a status
// verdict per section and per document.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tularam-sharma/pdfharvest/internal/extract"
	"github.com/tularam-sharma/pdfharvest/internal/geom"
	"github.com/tularam-sharma/pdfharvest/internal/label"
	"github.com/tularam-sharma/pdfharvest/internal/pagemap"
	"github.com/tularam-sharma/pdfharvest/internal/pdfdoc"
	"github.com/tularam-sharma/pdfharvest/internal/template"
)

// DefaultBatchSize bounds how many documents share one cache generation.
const DefaultBatchSize = 8

// Matcher is the field-matching collaborator. It receives the interchange
// text of one document and returns named field values.
type Matcher interface {
	Match(ctx context.Context, interchange string) (map[string]string, error)
}

// PageSource is the document surface the runner consumes, satisfied by
// *pdfdoc.Document through the default opener.
type PageSource interface {
	PageCount() int
	Page(num int) (extract.Page, error)
	Close() error
}

// Opener opens one document by path.
type Opener func(path string) (PageSource, error)

type pdfSource struct {
	doc *pdfdoc.Document
}

func (s pdfSource) PageCount() int { return s.doc.PageCount() }
func (s pdfSource) Close() error   { return s.doc.Close() }

func (s pdfSource) Page(num int) (extract.Page, error) {
	return s.doc.Page(num)
}

func openPDF(path string) (PageSource, error) {
	doc, err := pdfdoc.Open(path)
	if err != nil {
		return nil, err
	}
	return pdfSource{doc: doc}, nil
}

// DocumentResult is the outcome for one document.
type DocumentResult struct {
	Path     string
	Sections map[template.Section]SectionStatus
	Overall  OverallStatus

	// Rows and Interchange hold the extracted data even when the document
	// only partially succeeded.
	Rows        []label.Row
	Interchange string

	// Fields is the matcher's output, nil when no matcher is configured or
	// matching failed.
	Fields map[string]string

	// Inconsistent marks a run whose interchange text failed the label
	// consistency check.
	Inconsistent bool

	Err error
}

// Options tunes a Runner.
type Options struct {
	// BatchSize is the number of documents per cache generation.
	BatchSize int
	// WorkRoot is where per-document working areas are created. Empty means
	// the system temporary directory.
	WorkRoot string
	// ConsistencyThreshold overrides the label consistency threshold.
	// Zero means the codec default.
	ConsistencyThreshold float64
	// MethodOverride, when set, wins over every section's preferred
	// extraction method.
	MethodOverride string
	// DefaultParams seeds the parameter bag of every dispatch. Section
	// parameters win over these.
	DefaultParams extract.Params
	// Open overrides how documents are opened. Nil means PDF files.
	Open Opener
}

// Runner applies one template to documents in batches.
type Runner struct {
	tmpl    *template.Template
	disp    *extract.Dispatcher
	cache   *extract.ResultCache
	matcher Matcher
	log     *zap.Logger
	open    Opener
	opts    Options
}

// NewRunner assembles a runner. cache and matcher may be nil; the dispatcher
// is required.
func NewRunner(tmpl *template.Template, disp *extract.Dispatcher, cache *extract.ResultCache, matcher Matcher, log *zap.Logger, opts Options) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.ConsistencyThreshold <= 0 {
		opts.ConsistencyThreshold = label.DefaultConsistencyThreshold
	}
	open := opts.Open
	if open == nil {
		open = openPDF
	}
	return &Runner{
		tmpl:    tmpl,
		disp:    disp,
		cache:   cache,
		matcher: matcher,
		log:     log,
		open:    open,
		opts:    opts,
	}
}

// Run processes the documents in order and returns one result per document
// processed. Cancellation is honored between documents, never inside one, so
// a document's result is always complete or absent. The cache is cleared
// between batches.
func (r *Runner) Run(ctx context.Context, docs []string) ([]DocumentResult, error) {
	results := make([]DocumentResult, 0, len(docs))

	for start := 0; start < len(docs); start += r.opts.BatchSize {
		end := min(start+r.opts.BatchSize, len(docs))
		for _, path := range docs[start:end] {
			if err := ctx.Err(); err != nil {
				return results, err
			}
			results = append(results, r.processDocument(ctx, path))
		}
		if r.cache != nil {
			r.cache.Clear()
			r.log.Debug("cache cleared after batch", zap.Int("documents", end))
		}
	}
	return results, nil
}

// task is one section extraction on one document page.
type task struct {
	section template.Section
	docPage int
	tpIndex int
}

func (r *Runner) processDocument(ctx context.Context, path string) DocumentResult {
	res := DocumentResult{
		Path:     path,
		Sections: make(map[template.Section]SectionStatus, len(template.Sections)),
	}
	for _, s := range template.Sections {
		res.Sections[s] = StatusNotProcessed
	}

	fail := func(err error) DocumentResult {
		r.log.Error("document failed", zap.String("path", path), zap.Error(err))
		for _, s := range template.Sections {
			res.Sections[s] = StatusFailed
		}
		res.Overall = OverallFailed
		res.Err = err
		return res
	}

	work, err := r.makeWorkDir()
	if err != nil {
		return fail(err)
	}
	defer os.RemoveAll(work)

	src, err := r.open(path)
	if err != nil {
		return fail(err)
	}
	defer src.Close()

	tasks, sectionErrs, err := r.plan(src.PageCount())
	if err != nil {
		return fail(err)
	}
	for s, serr := range sectionErrs {
		res.Sections[s] = StatusFailed
		r.log.Warn("section page expression invalid",
			zap.String("path", path),
			zap.Stringer("section", s),
			zap.Error(serr))
	}

	attempts := make(map[template.Section]int)
	failures := make(map[template.Section]int)

	for _, t := range tasks {
		rows, err := r.extractSection(ctx, src, t, work)
		if err != nil {
			failures[t.section]++
			attempts[t.section]++
			r.log.Warn("section extraction failed",
				zap.String("path", path),
				zap.Stringer("section", t.section),
				zap.Int("page", t.docPage),
				zap.Error(err))
			continue
		}
		if rows == nil {
			// The template page holds no regions for this section.
			continue
		}
		attempts[t.section]++
		res.Rows = append(res.Rows, rows...)
	}

	for s, n := range attempts {
		switch {
		case failures[s] == 0:
			res.Sections[s] = StatusSuccess
		case failures[s] == n:
			res.Sections[s] = StatusFailed
		default:
			res.Sections[s] = StatusPartial
		}
	}
	res.Overall = Aggregate(res.Sections)

	res.Interchange = label.Serialize(res.Rows)
	labels := make([]string, len(res.Rows))
	for i, row := range res.Rows {
		labels[i] = row.Label()
	}
	if err := label.ValidateConsistency(labels, r.opts.ConsistencyThreshold); err != nil {
		res.Inconsistent = true
		r.log.Warn("interchange text inconsistent", zap.String("path", path), zap.Error(err))
	}

	if r.matcher != nil && len(res.Rows) > 0 {
		fields, err := r.matcher.Match(ctx, res.Interchange)
		if err != nil {
			res.Err = fmt.Errorf("field matching: %w", err)
			r.log.Warn("field matching failed", zap.String("path", path), zap.Error(err))
		} else {
			res.Fields = fields
		}
	}

	r.log.Info("document processed",
		zap.String("path", path),
		zap.Stringer("status", res.Overall),
		zap.Int("rows", len(res.Rows)))
	return res
}

func (r *Runner) makeWorkDir() (string, error) {
	root := r.opts.WorkRoot
	if root == "" {
		root = os.TempDir()
	}
	dir := filepath.Join(root, "pdfharvest-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("working area: %w", err)
	}
	return dir, nil
}

// plan expands the template's mapping policy against the document length
// into the list of section extractions to attempt. A malformed page
// expression is a definition error scoped to its section: it lands in the
// second return value and the remaining sections still plan. Only
// policy-level failures surface as an error.
func (r *Runner) plan(docPages int) ([]task, map[template.Section]error, error) {
	mapping := r.tmpl.Mapping()

	var tasks []task
	switch mapping.Mode {
	case template.MapPageWise:
		asg, err := pagemap.ResolvePageWise(mapping, r.tmpl.PageCount(), docPages)
		if err != nil {
			return nil, nil, err
		}
		for i, tpIndex := range asg {
			for _, s := range template.Sections {
				tasks = append(tasks, task{section: s, docPage: i + 1, tpIndex: tpIndex})
			}
		}
		return tasks, nil, nil
	case template.MapRegionWise:
		bySection, bad, err := pagemap.ResolveRegionWise(mapping, docPages)
		if err != nil {
			return nil, nil, err
		}
		// Region-wise templates describe one layout; regions come from the
		// first template page.
		for _, s := range template.Sections {
			for _, page := range bySection[s] {
				tasks = append(tasks, task{section: s, docPage: page, tpIndex: 0})
			}
		}
		return tasks, bad, nil
	default:
		return nil, nil, &template.DefinitionError{
			Op:  "plan",
			Err: fmt.Errorf("unknown mapping mode %v", mapping.Mode),
		}
	}
}

// extractSection runs one task and converts its tables into labeled rows.
// A nil, nil return means the template page holds nothing for the section.
func (r *Runner) extractSection(ctx context.Context, src PageSource, t task, work string) ([]label.Row, error) {
	tp := r.tmpl.Page(t.tpIndex)
	regions := tp.Regions[t.section]
	if len(regions) == 0 {
		return nil, nil
	}

	rects := make([]geom.Rect, len(regions))
	for i, region := range regions {
		rects[i] = region.Rect()
	}
	dividers := make([][]float64, len(regions))
	for _, d := range tp.Dividers[t.section] {
		dividers[d.RegionIndex()] = append(dividers[d.RegionIndex()], d.X())
	}

	sp := r.tmpl.SectionParams(t.section)
	preferred := sp.Method
	if r.opts.MethodOverride != "" {
		preferred = r.opts.MethodOverride
	}
	method, err := extract.ParseMethod(preferred)
	if err != nil {
		return nil, err
	}
	params := make(extract.Params, len(r.opts.DefaultParams)+len(sp.Extra)+2)
	for k, v := range r.opts.DefaultParams {
		params[k] = v
	}
	for k, v := range sp.Extra {
		params[k] = v
	}
	if sp.RowTolerance > 0 {
		params[extract.ParamRowTolerance] = sp.RowTolerance
	}
	if sp.ColumnSplit != "" {
		params[extract.ParamColumnSplit] = sp.ColumnSplit
	}

	page, err := src.Page(t.docPage)
	if err != nil {
		return nil, err
	}

	tables, err := r.disp.Dispatch(ctx, page, extract.Request{
		Section:  t.section,
		Method:   method,
		Rects:    rects,
		Dividers: dividers,
		Params:   params,
		WorkDir:  work,
	})
	if err != nil {
		return nil, err
	}

	rows := []label.Row{}
	for regionIndex, table := range tables {
		for rowIndex, cells := range table {
			rows = append(rows, label.Row{
				Section:     t.section,
				RegionIndex: regionIndex,
				RowIndex:    rowIndex + 1,
				Page:        t.docPage,
				Cells:       cells,
			})
		}
	}
	return rows, nil
}
