package extract

import (
	"fmt"
	"hash/fnv"
	"sort"
)

// Parameter keys understood by the built-in backends. Callers may pass keys
// beyond these; unrecognized keys flow through normalization untouched.
const (
	ParamRowTolerance = "row_tolerance"
	ParamColumnSplit  = "column_split"
	ParamLanguage     = "language"
	ParamPageSegMode  = "page_seg_mode"
)

// Column split modes.
const (
	SplitDividers   = "dividers"
	SplitWhitespace = "whitespace"
)

// DefaultRowTolerance is the vertical distance, in extraction units, within
// which text fragments belong to the same row. Fixed by convention, not by a
// documented derivation; templates may override it per section.
const DefaultRowTolerance = 5.0

// Params is the free-form parameter bag handed to a backend.
type Params map[string]any

// methodDefaults returns the baseline parameters for a method.
func methodDefaults(m Method) Params {
	switch m {
	case MethodNativeTable:
		return Params{
			ParamRowTolerance: DefaultRowTolerance,
			ParamColumnSplit:  SplitDividers,
		}
	case MethodLayoutText:
		return Params{
			ParamRowTolerance: DefaultRowTolerance,
			ParamColumnSplit:  SplitWhitespace,
		}
	case MethodOCRText:
		return Params{
			ParamLanguage:    "eng",
			ParamPageSegMode: 6,
		}
	case MethodFullPipeline:
		return Params{
			ParamRowTolerance: DefaultRowTolerance,
			ParamColumnSplit:  SplitDividers,
			ParamLanguage:     "eng",
			ParamPageSegMode:  6,
		}
	default:
		return Params{}
	}
}

// NormalizeParams merges the method's defaults with caller overrides.
// Overrides win; keys the method doesn't know pass through unchanged.
func NormalizeParams(m Method, overrides Params) Params {
	merged := methodDefaults(m)
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}

// Float reads a numeric parameter, tolerating the integer types JSON
// decoding produces.
func (p Params) Float(key string, fallback float64) float64 {
	switch v := p[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return fallback
	}
}

// Int reads an integer parameter.
func (p Params) Int(key string, fallback int) int {
	switch v := p[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return fallback
	}
}

// String reads a string parameter.
func (p Params) String(key, fallback string) string {
	if v, ok := p[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

// Hash returns a stable digest of the bag, used in result cache keys so that
// differing parameters never share an entry.
func (p Params) Hash() string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := fnv.New64a()
	for _, k := range keys {
		fmt.Fprintf(h, "%s=%v;", k, p[k])
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
