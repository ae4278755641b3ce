// Package extract selects and runs extraction backends against resolved
// page regions: parameter normalization, fallback routing, the items-section
// rectangle merge, and the bounded result cache.
package extract

import "fmt"

// Method identifies an extraction method. The set is closed; dispatching an
// unknown identifier fails instead of defaulting to native-table extraction.
type Method string

const (
	MethodNativeTable  Method = "native-table"
	MethodLayoutText   Method = "layout-text"
	MethodOCRText      Method = "ocr-text"
	MethodFullPipeline Method = "full-pipeline"
)

// Methods lists all known methods.
var Methods = []Method{MethodNativeTable, MethodLayoutText, MethodOCRText, MethodFullPipeline}

// Valid reports whether m is a known method identifier.
func (m Method) Valid() bool {
	switch m {
	case MethodNativeTable, MethodLayoutText, MethodOCRText, MethodFullPipeline:
		return true
	default:
		return false
	}
}

// ParseMethod resolves a method identifier. The empty string resolves to
// native-table, the default preferred method; anything else unknown is an
// error.
func ParseMethod(s string) (Method, error) {
	if s == "" {
		return MethodNativeTable, nil
	}
	m := Method(s)
	if !m.Valid() {
		return "", &MethodError{Method: m, Op: "parse", Err: fmt.Errorf("unknown extraction method %q", s)}
	}
	return m, nil
}
