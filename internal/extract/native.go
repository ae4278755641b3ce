package extract

import "context"

// nativeBackend parses tables straight from the page's positioned text. It
// needs no external integration and is always available.
type nativeBackend struct{}

func (nativeBackend) Method() Method { return MethodNativeTable }

func (nativeBackend) Available() bool { return true }

func (b nativeBackend) Extract(_ context.Context, page Page, req Request) ([]Table, error) {
	words, err := page.Words()
	if err != nil {
		return nil, &MethodError{Method: MethodNativeTable, Op: "page_words", Err: err}
	}

	rowTol := req.Params.Float(ParamRowTolerance, DefaultRowTolerance)
	split := req.Params.String(ParamColumnSplit, SplitDividers)

	tables := make([]Table, len(req.Rects))
	for i, rect := range req.Rects {
		tables[i] = assembleGrid(words, rect, req.dividersFor(i), rowTol, split)
	}
	return tables, nil
}
