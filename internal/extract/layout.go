package extract

import (
	"context"
	"strings"
)

// layoutBackend is the higher-level layout-text integration: positioned
// words clustered into reading-order rows, split on whitespace.
type layoutBackend struct{}

func (layoutBackend) Method() Method { return MethodLayoutText }

func (layoutBackend) Available() bool { return true }

func (b layoutBackend) Extract(_ context.Context, page Page, req Request) ([]Table, error) {
	words, err := page.Words()
	if err != nil {
		return nil, &MethodError{Method: MethodLayoutText, Op: "page_words", Err: err}
	}

	rowTol := req.Params.Float(ParamRowTolerance, DefaultRowTolerance)
	split := req.Params.String(ParamColumnSplit, SplitWhitespace)

	tables := make([]Table, len(req.Rects))
	for i, rect := range req.Rects {
		tables[i] = assembleGrid(words, rect, req.dividersFor(i), rowTol, split)
	}
	return tables, nil
}

// plainTextBackend is the layout-text direct fallback: the page's plain text
// split into lines, one row per line. Without positions it cannot honor the
// request rectangles, so it reads the whole page into the first rectangle's
// table.
type plainTextBackend struct{}

func (plainTextBackend) Method() Method { return MethodLayoutText }

func (plainTextBackend) Available() bool { return true }

func (b plainTextBackend) Extract(_ context.Context, page Page, req Request) ([]Table, error) {
	text, err := page.PlainText()
	if err != nil {
		return nil, &MethodError{Method: MethodLayoutText, Op: "plain_text", Err: err}
	}

	table := linesToTable(text)
	tables := make([]Table, len(req.Rects))
	if len(tables) > 0 {
		tables[0] = table
	}
	return tables, nil
}

// linesToTable turns raw recognizer output into single-column rows, dropping
// blank lines.
func linesToTable(text string) Table {
	var table Table
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		table = append(table, []string{line})
	}
	return table
}
