// Package template holds the extraction template model: named regions and
// column dividers per page and section, the page mapping policy, and the
// per-section extraction parameters. Regions are built once through
// constructors and immutable afterwards; nothing in the engine sniffs ad hoc
// rectangle shapes at runtime.
package template

import "fmt"

// MappingMode selects how template pages are assigned to document pages.
type MappingMode int

const (
	// MapPageWise assigns each document page to one whole template page.
	MapPageWise MappingMode = iota
	// MapRegionWise assigns each section independently to a set of document
	// pages via a page expression.
	MapRegionWise
)

func (m MappingMode) String() string {
	switch m {
	case MapPageWise:
		return "page_wise"
	case MapRegionWise:
		return "region_wise"
	default:
		return fmt.Sprintf("mapping_mode(%d)", int(m))
	}
}

// ParseMappingMode resolves a mapping mode by name.
func ParseMappingMode(name string) (MappingMode, error) {
	switch name {
	case "page_wise", "pagewise":
		return MapPageWise, nil
	case "region_wise", "regionwise":
		return MapRegionWise, nil
	default:
		return 0, &DefinitionError{Op: "parse_mapping_mode", Err: fmt.Errorf("unknown mapping mode %q", name)}
	}
}

// MiddleRule selects the template page for document pages that are neither
// first nor last under the page-wise policy.
type MiddleRule int

const (
	MiddleSequential MiddleRule = iota
	MiddleRepeatFirst
	MiddleRepeatLast
)

func (r MiddleRule) String() string {
	switch r {
	case MiddleSequential:
		return "sequential"
	case MiddleRepeatFirst:
		return "repeat_first"
	case MiddleRepeatLast:
		return "repeat_last"
	default:
		return fmt.Sprintf("middle_rule(%d)", int(r))
	}
}

// ParseMiddleRule resolves a middle-pages rule by name.
func ParseMiddleRule(name string) (MiddleRule, error) {
	switch name {
	case "sequential":
		return MiddleSequential, nil
	case "repeat_first":
		return MiddleRepeatFirst, nil
	case "repeat_last":
		return MiddleRepeatLast, nil
	default:
		return 0, &DefinitionError{Op: "parse_middle_rule", Err: fmt.Errorf("unknown middle-pages rule %q", name)}
	}
}

// LastRuleKind selects the template page for the final document page under
// the page-wise policy.
type LastRuleKind int

const (
	LastTemplatePage LastRuleKind = iota
	LastSpecific
	LastSameAsFirst
)

// LastRule is the last-page rule with its optional specific page.
type LastRule struct {
	Kind LastRuleKind
	// Page is the 1-based template page used when Kind is LastSpecific.
	Page int
}

// ParseLastRule resolves a last-page rule. The value is "last_template_page",
// "same_as_first", or a 1-based template page number in decimal.
func ParseLastRule(value string) (LastRule, error) {
	switch value {
	case "last_template_page", "last":
		return LastRule{Kind: LastTemplatePage}, nil
	case "same_as_first", "first":
		return LastRule{Kind: LastSameAsFirst}, nil
	}
	var page int
	if _, err := fmt.Sscanf(value, "%d", &page); err != nil || page < 1 {
		return LastRule{}, &DefinitionError{Op: "parse_last_rule", Err: fmt.Errorf("unknown last-page rule %q", value)}
	}
	return LastRule{Kind: LastSpecific, Page: page}, nil
}

// MappingPolicy is the template's page mapping configuration. FirstPage,
// MiddlePages and LastPage apply in page-wise mode; Expressions applies in
// region-wise mode.
type MappingPolicy struct {
	Mode MappingMode

	// FirstPage is the 1-based template page used for document page 1.
	FirstPage   int
	MiddlePages MiddleRule
	LastPage    LastRule

	// Expressions holds one page expression per section, e.g. "1,3-5,n".
	Expressions map[Section]string
}

// DefaultPageWise returns the page-wise policy applied when a template names
// none: first page 1, sequential middle pages, last template page for the
// final document page.
func DefaultPageWise() MappingPolicy {
	return MappingPolicy{
		Mode:        MapPageWise,
		FirstPage:   1,
		MiddlePages: MiddleSequential,
		LastPage:    LastRule{Kind: LastTemplatePage},
	}
}

// SectionParams carries the per-section extraction parameters. Extra passes
// through to the dispatcher untouched, so backends can receive keys this
// package knows nothing about.
type SectionParams struct {
	// RowTolerance is the vertical distance, in extraction units, within
	// which text fragments belong to the same row.
	RowTolerance float64
	// ColumnSplit selects how a row splits into cells when no dividers
	// apply: "dividers" or "whitespace".
	ColumnSplit string
	// Method is the preferred extraction method identifier.
	Method string
	// Extra is the free-form parameter bag forwarded to the backend.
	Extra map[string]any
}

// TemplatePage is one page of the template: its regions and column dividers,
// grouped by section.
type TemplatePage struct {
	Regions  map[Section][]Region
	Dividers map[Section][]ColumnDivider
}

// Template is an ordered sequence of template pages plus the mapping policy
// and the per-section extraction parameters. A single-page template is the
// degenerate one-page case.
type Template struct {
	pages         []TemplatePage
	mapping       MappingPolicy
	sectionParams map[Section]SectionParams
}

// New validates and assembles a template. Region names must be unique within
// their section and page, and every divider must address an existing region.
func New(pages []TemplatePage, mapping MappingPolicy, params map[Section]SectionParams) (*Template, error) {
	if len(pages) == 0 {
		return nil, &DefinitionError{Op: "new_template", Err: fmt.Errorf("template has no pages")}
	}

	for pi, page := range pages {
		for section, regions := range page.Regions {
			seen := make(map[string]bool, len(regions))
			for _, region := range regions {
				if region.Section() != section {
					return nil, &DefinitionError{
						Op:  "new_template",
						Err: fmt.Errorf("page %d: region %q filed under %s but belongs to %s", pi+1, region.Name(), section, region.Section()),
					}
				}
				if seen[region.Name()] {
					return nil, &DefinitionError{
						Op:  "new_template",
						Err: fmt.Errorf("page %d: duplicate region name %q in section %s", pi+1, region.Name(), section),
					}
				}
				seen[region.Name()] = true
			}
		}
		for section, dividers := range page.Dividers {
			for _, d := range dividers {
				if d.RegionIndex() >= len(page.Regions[section]) {
					return nil, &DefinitionError{
						Op:  "new_template",
						Err: fmt.Errorf("page %d: divider addresses region %d of section %s, which has %d regions", pi+1, d.RegionIndex(), section, len(page.Regions[section])),
					}
				}
			}
		}
	}

	if mapping.Mode == MapPageWise {
		if mapping.FirstPage < 1 || mapping.FirstPage > len(pages) {
			return nil, &DefinitionError{
				Op:  "new_template",
				Err: fmt.Errorf("first_page %d outside template range [1, %d]", mapping.FirstPage, len(pages)),
			}
		}
		if mapping.LastPage.Kind == LastSpecific &&
			(mapping.LastPage.Page < 1 || mapping.LastPage.Page > len(pages)) {
			return nil, &DefinitionError{
				Op:  "new_template",
				Err: fmt.Errorf("last_page %d outside template range [1, %d]", mapping.LastPage.Page, len(pages)),
			}
		}
	}

	if params == nil {
		params = make(map[Section]SectionParams)
	}

	return &Template{pages: pages, mapping: mapping, sectionParams: params}, nil
}

// PageCount returns the number of template pages.
func (t *Template) PageCount() int { return len(t.pages) }

// Page returns the template page at the 0-based index.
func (t *Template) Page(i int) TemplatePage { return t.pages[i] }

// Mapping returns the page mapping policy.
func (t *Template) Mapping() MappingPolicy { return t.mapping }

// SectionParams returns the extraction parameters for a section. Absent
// sections get zero-valued params; the dispatcher fills method defaults.
func (t *Template) SectionParams(s Section) SectionParams { return t.sectionParams[s] }
