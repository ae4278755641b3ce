package extract

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tularam-sharma/pdfharvest/internal/geom"
	"github.com/tularam-sharma/pdfharvest/internal/template"
)

// pipelineOrder is the stage order of the full-pipeline method: cheapest
// first, OCR last.
var pipelineOrder = []Method{MethodNativeTable, MethodLayoutText, MethodOCRText}

// DispatcherConfig tunes dispatch behavior.
type DispatcherConfig struct {
	// DividerTolerance is the distance within which merged dividers count
	// as duplicates. Zero selects DefaultDividerTolerance.
	DividerTolerance float64
}

// Dispatcher routes extraction requests to backends: it validates the
// method, normalizes parameters, merges items-section rectangles, consults
// the result cache, and walks each method's fallback chain.
type Dispatcher struct {
	log        *zap.Logger
	cache      *ResultCache
	chains     map[Method][]Backend
	dividerTol float64
}

// NewDispatcher builds a dispatcher with the built-in backend chains. cache
// may be nil to disable caching; log may be nil for silence.
func NewDispatcher(cfg DispatcherConfig, log *zap.Logger, cache *ResultCache) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	tol := cfg.DividerTolerance
	if tol <= 0 {
		tol = DefaultDividerTolerance
	}
	return &Dispatcher{
		log:        log,
		cache:      cache,
		dividerTol: tol,
		chains: map[Method][]Backend{
			MethodNativeTable: {nativeBackend{}},
			MethodLayoutText:  {layoutBackend{}, plainTextBackend{}},
			MethodOCRText:     {gosseractBackend{}, tesseractBackend{}},
		},
	}
}

// SetChain replaces the backend chain for a method. The first backend is the
// preferred integration; later ones are fallbacks in order.
func (d *Dispatcher) SetChain(m Method, backends ...Backend) {
	d.chains[m] = backends
}

// Dispatch runs one extraction request against a page and returns its row
// tables, one per requested rectangle. Empty tables are "no data", not an
// error.
func (d *Dispatcher) Dispatch(ctx context.Context, page Page, req Request) ([]Table, error) {
	if !req.Method.Valid() {
		return nil, &MethodError{
			Method: req.Method,
			Op:     "dispatch",
			Err:    fmt.Errorf("unknown extraction method %q", string(req.Method)),
		}
	}
	if len(req.Rects) == 0 {
		return nil, nil
	}

	req.Params = NormalizeParams(req.Method, req.Params)

	// Items regions split across a page must extract as one table, or their
	// rows cannot be aligned afterwards.
	if req.Section == template.SectionItems && len(req.Rects) > 1 {
		box, dividers := MergeRects(req.Rects, req.Dividers, d.dividerTol)
		req.Rects = []geom.Rect{box}
		req.Dividers = [][]float64{dividers}
	}

	key := ResultKey{
		Document:   page.DocumentPath(),
		Page:       page.Number(),
		Section:    req.Section,
		Method:     req.Method,
		ParamsHash: req.Params.Hash(),
	}
	if d.cache != nil {
		if tables, ok := d.cache.Get(key); ok {
			return tables, nil
		}
	}

	tables, err := d.run(ctx, page, req)
	if err != nil {
		return nil, err
	}
	if d.cache != nil {
		d.cache.Put(key, tables)
	}
	return tables, nil
}

func (d *Dispatcher) run(ctx context.Context, page Page, req Request) ([]Table, error) {
	if req.Method != MethodFullPipeline {
		return d.runChain(ctx, page, req)
	}

	var (
		lastErr error
		empty   []Table
		gotAny  bool
	)
	for _, m := range pipelineOrder {
		stage := req
		stage.Method = m
		stage.Params = NormalizeParams(m, req.Params)

		tables, err := d.runChain(ctx, page, stage)
		if err != nil {
			lastErr = err
			d.log.Warn("pipeline stage failed",
				zap.String("method", string(m)),
				zap.Int("page", page.Number()),
				zap.Error(err))
			continue
		}
		if anyData(tables) {
			return tables, nil
		}
		gotAny = true
		empty = tables
	}
	if gotAny {
		return empty, nil
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, &MethodError{Method: MethodFullPipeline, Op: "dispatch", Err: ErrUnavailable}
}

// runChain walks a method's fallback chain: skip unavailable backends, fall
// through on failure or an all-empty result, and keep an empty result only
// when nothing further produces data. A chain with no runnable backend fails
// with ErrUnavailable rather than substituting another method.
func (d *Dispatcher) runChain(ctx context.Context, page Page, req Request) ([]Table, error) {
	var (
		lastErr error
		empty   []Table
		gotAny  bool
	)
	for _, backend := range d.chains[req.Method] {
		if !backend.Available() {
			d.log.Warn("backend unavailable",
				zap.String("method", string(req.Method)),
				zap.Int("page", page.Number()))
			continue
		}

		tables, err := backend.Extract(ctx, page, req)
		if err != nil {
			lastErr = err
			d.log.Warn("extraction attempt failed, trying fallback",
				zap.String("method", string(req.Method)),
				zap.String("section", req.Section.String()),
				zap.Int("page", page.Number()),
				zap.Error(err))
			continue
		}
		if anyData(tables) {
			return tables, nil
		}
		gotAny = true
		empty = tables
	}

	if gotAny {
		return empty, nil
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, &MethodError{Method: req.Method, Op: "dispatch", Err: ErrUnavailable}
}
