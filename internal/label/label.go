// Package label assigns canonical labels to extracted rows and serializes
// them to the line-oriented interchange text consumed by the field-matching
// collaborator. A label encodes (section, region number, row number, page
// number) with a strict, losslessly invertible grammar:
//
//	{H|I|S}{region}_R{row}_P{page}
//
// where region, row and page are 1-based decimal numbers.
package label

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/tularam-sharma/pdfharvest/internal/template"
)

// CodecError reports a label grammar violation or a failed round trip. Codec
// errors mark the run inconsistent but never discard the partial data that
// did parse.
type CodecError struct {
	Op  string
	Err error
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("label codec error in %s: %v", e.Op, e.Err)
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

var labelPattern = regexp.MustCompile(`^([HIS])([1-9][0-9]*)_R([1-9][0-9]*)_P([1-9][0-9]*)$`)

// Label is the decoded form of a row label.
type Label struct {
	Section template.Section
	// Region is the 1-based region number within the section.
	Region int
	// Row is the 1-based row number within the region.
	Row int
	// Page is the 1-based document page number.
	Page int
}

// String re-encodes the label.
func (l Label) String() string {
	return Make(l.Section, l.Region-1, l.Row, l.Page)
}

// Make encodes a label from a 0-based region index and 1-based row and page
// numbers.
func Make(section template.Section, regionIndex, row, page int) string {
	return fmt.Sprintf("%c%d_R%d_P%d", section.Code(), regionIndex+1, row, page)
}

// Parse decodes a label, failing unless the string matches the grammar
// exactly.
func Parse(s string) (Label, error) {
	m := labelPattern.FindStringSubmatch(s)
	if m == nil {
		return Label{}, &CodecError{Op: "parse", Err: fmt.Errorf("label %q does not match grammar", s)}
	}

	section, err := template.ParseSection(m[1])
	if err != nil {
		return Label{}, &CodecError{Op: "parse", Err: err}
	}
	region, _ := strconv.Atoi(m[2])
	row, _ := strconv.Atoi(m[3])
	page, _ := strconv.Atoi(m[4])

	return Label{Section: section, Region: region, Row: row, Page: page}, nil
}
