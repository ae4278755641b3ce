package template

import "fmt"

// Section identifies a semantic region type on an invoice page.
type Section int

const (
	SectionHeader Section = iota
	SectionItems
	SectionSummary
)

// Sections lists all sections in canonical order.
var Sections = []Section{SectionHeader, SectionItems, SectionSummary}

// String returns the lowercase section name.
func (s Section) String() string {
	switch s {
	case SectionHeader:
		return "header"
	case SectionItems:
		return "items"
	case SectionSummary:
		return "summary"
	default:
		return fmt.Sprintf("section(%d)", int(s))
	}
}

// Code returns the single-letter label prefix for the section.
func (s Section) Code() byte {
	switch s {
	case SectionHeader:
		return 'H'
	case SectionItems:
		return 'I'
	case SectionSummary:
		return 'S'
	default:
		return '?'
	}
}

// ParseSection resolves a section by name or by its single-letter code.
func ParseSection(name string) (Section, error) {
	switch name {
	case "header", "H":
		return SectionHeader, nil
	case "items", "I":
		return SectionItems, nil
	case "summary", "S":
		return SectionSummary, nil
	default:
		return 0, &DefinitionError{Op: "parse_section", Err: fmt.Errorf("unknown section %q", name)}
	}
}
