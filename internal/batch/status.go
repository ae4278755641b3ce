package batch

import "github.com/tularam-sharma/pdfharvest/internal/template"

// SectionStatus records how one section of a document fared.
type SectionStatus int

const (
	// StatusNotProcessed means the template addressed no content for the
	// section, or processing never reached it.
	StatusNotProcessed SectionStatus = iota
	// StatusSuccess means every attempted page of the section extracted
	// without error. An empty result still counts as success.
	StatusSuccess
	// StatusPartial means some pages of the section extracted and some
	// failed.
	StatusPartial
	// StatusFailed means every attempted page of the section failed.
	StatusFailed
)

func (s SectionStatus) String() string {
	switch s {
	case StatusNotProcessed:
		return "not_processed"
	case StatusSuccess:
		return "success"
	case StatusPartial:
		return "partial"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// OverallStatus is the per-document verdict derived from the section
// statuses.
type OverallStatus int

const (
	OverallFailed OverallStatus = iota
	OverallPartial
	OverallSuccess
)

func (s OverallStatus) String() string {
	switch s {
	case OverallSuccess:
		return "success"
	case OverallPartial:
		return "partial"
	default:
		return "failed"
	}
}

// Aggregate folds the section statuses into the document verdict. The items
// section carries the document: full success requires items to succeed.
// Anything short of that with at least one section yielding data is partial,
// and a document where nothing came through is failed.
func Aggregate(sections map[template.Section]SectionStatus) OverallStatus {
	items := sections[template.SectionItems]

	anyData := false
	for _, st := range sections {
		if st == StatusSuccess || st == StatusPartial {
			anyData = true
			break
		}
	}

	switch {
	case items == StatusSuccess:
		return OverallSuccess
	case anyData:
		return OverallPartial
	default:
		return OverallFailed
	}
}
