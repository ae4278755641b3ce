package pagemap

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/tularam-sharma/pdfharvest/internal/template"
)

var (
	literalToken  = regexp.MustCompile(`^\d+$`)
	rangeToken    = regexp.MustCompile(`^(\d+)-(\d+)$`)
	lastToken     = regexp.MustCompile(`^(?:n|last)$`)
	relativeToken = regexp.MustCompile(`^(?:n|last)-(\d+)$`)
)

// ParsePageExpression expands a page expression against a document of
// docPages pages into a sorted, deduplicated set of 1-based page numbers.
//
// An expression is a comma-separated token list. A token is a literal page
// number, an inclusive range "a-b", the keyword "n" (or "last") for the final
// page, or "n-k" for k pages before the final page. Results clamp to
// [1, docPages]. Any unparseable token, or a range with a > b, invalidates
// the entire expression.
func ParsePageExpression(expr string, docPages int) ([]int, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, &template.DefinitionError{
			Op:  "parse_page_expression",
			Err: fmt.Errorf("empty page expression"),
		}
	}

	set := make(map[int]bool)
	add := func(page int) {
		set[clamp(page, docPages)] = true
	}

	for _, token := range strings.Split(expr, ",") {
		token = strings.ToLower(strings.TrimSpace(token))
		switch {
		case lastToken.MatchString(token):
			add(docPages)
		case relativeToken.MatchString(token):
			k, _ := strconv.Atoi(relativeToken.FindStringSubmatch(token)[1])
			add(docPages - k)
		case rangeToken.MatchString(token):
			m := rangeToken.FindStringSubmatch(token)
			a, _ := strconv.Atoi(m[1])
			b, _ := strconv.Atoi(m[2])
			if a > b {
				return nil, &template.DefinitionError{
					Op:  "parse_page_expression",
					Err: fmt.Errorf("range %q is descending in %q", token, expr),
				}
			}
			// Clamp the endpoints first so a corrupt bound cannot turn the
			// expansion into a billion-step loop.
			for p := clamp(a, docPages); p <= clamp(b, docPages); p++ {
				add(p)
			}
		case literalToken.MatchString(token):
			p, _ := strconv.Atoi(token)
			add(p)
		default:
			return nil, &template.DefinitionError{
				Op:  "parse_page_expression",
				Err: fmt.Errorf("unparseable token %q in %q", token, expr),
			}
		}
	}

	pages := make([]int, 0, len(set))
	for p := range set {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return pages, nil
}

// clamp confines a page number to [1, docPages].
func clamp(page, docPages int) int {
	if page < 1 {
		return 1
	}
	if page > docPages {
		return docPages
	}
	return page
}
