// Package pagemap reconciles a fixed-size template with documents of
// arbitrary length. The page-wise policy assigns each document page to one
// whole template page; the region-wise policy assigns each section
// independently to a set of document pages via a page expression.
package pagemap

import (
	"fmt"

	"github.com/tularam-sharma/pdfharvest/internal/template"
)

// Assignment is the page-wise resolver output: index i holds the 0-based
// template page for document page i+1. An assignment is total over the
// document.
type Assignment []int

// ResolvePageWise assigns every page of a docPages-long document to a
// template page under the policy. templatePages is the template's page
// count. The result covers [1, docPages] with values in
// [0, templatePages).
func ResolvePageWise(policy template.MappingPolicy, templatePages, docPages int) (Assignment, error) {
	if policy.Mode != template.MapPageWise {
		return nil, &template.DefinitionError{
			Op:  "resolve_page_wise",
			Err: fmt.Errorf("policy mode is %s, not page_wise", policy.Mode),
		}
	}
	if templatePages < 1 {
		return nil, &template.DefinitionError{
			Op:  "resolve_page_wise",
			Err: fmt.Errorf("template has %d pages", templatePages),
		}
	}
	if docPages < 1 {
		return nil, &template.DefinitionError{
			Op:  "resolve_page_wise",
			Err: fmt.Errorf("document has %d pages", docPages),
		}
	}

	first := policy.FirstPage
	if first < 1 || first > templatePages {
		return nil, &template.DefinitionError{
			Op:  "resolve_page_wise",
			Err: fmt.Errorf("first_page %d outside template range [1, %d]", first, templatePages),
		}
	}

	last := templatePages
	switch policy.LastPage.Kind {
	case template.LastTemplatePage:
		last = templatePages
	case template.LastSameAsFirst:
		last = first
	case template.LastSpecific:
		last = policy.LastPage.Page
		if last < 1 || last > templatePages {
			return nil, &template.DefinitionError{
				Op:  "resolve_page_wise",
				Err: fmt.Errorf("last_page %d outside template range [1, %d]", last, templatePages),
			}
		}
	}

	asg := make(Assignment, docPages)
	for i := 1; i <= docPages; i++ {
		var page int
		switch {
		case i == 1:
			page = first
		case i == docPages:
			page = last
		default:
			switch policy.MiddlePages {
			case template.MiddleSequential:
				page = min(i, templatePages)
			case template.MiddleRepeatFirst:
				page = first
			case template.MiddleRepeatLast:
				page = templatePages
			default:
				return nil, &template.DefinitionError{
					Op:  "resolve_page_wise",
					Err: fmt.Errorf("unknown middle-pages rule %v", policy.MiddlePages),
				}
			}
		}
		asg[i-1] = page - 1
	}
	return asg, nil
}

// ResolveRegionWise expands the per-section page expressions against the
// document page count. Sections without an expression are absent from the
// result and stay unprocessed. A malformed expression fails only its own
// section: the failure is reported in the second map while every other
// section still resolves.
func ResolveRegionWise(policy template.MappingPolicy, docPages int) (map[template.Section][]int, map[template.Section]error, error) {
	if policy.Mode != template.MapRegionWise {
		return nil, nil, &template.DefinitionError{
			Op:  "resolve_region_wise",
			Err: fmt.Errorf("policy mode is %s, not region_wise", policy.Mode),
		}
	}
	if docPages < 1 {
		return nil, nil, &template.DefinitionError{
			Op:  "resolve_region_wise",
			Err: fmt.Errorf("document has %d pages", docPages),
		}
	}

	out := make(map[template.Section][]int, len(policy.Expressions))
	bad := make(map[template.Section]error)
	for section, expr := range policy.Expressions {
		pages, err := ParsePageExpression(expr, docPages)
		if err != nil {
			bad[section] = err
			continue
		}
		out[section] = pages
	}
	return out, bad, nil
}
