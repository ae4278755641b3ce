package template

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/tularam-sharma/pdfharvest/internal/geom"
)

// templateSchema validates template documents before decoding, so shape
// problems surface as schema paths instead of zero-valued structs.
const templateSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["pages"],
  "properties": {
    "pages": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "properties": {
          "regions": {
            "type": "object",
            "additionalProperties": {
              "type": "array",
              "items": {
                "type": "object",
                "required": ["name", "draw", "extract"],
                "properties": {
                  "name": {"type": "string", "minLength": 1},
                  "draw": {
                    "type": "object",
                    "required": ["x", "y", "width", "height"],
                    "properties": {
                      "x": {"type": "number"},
                      "y": {"type": "number"},
                      "width": {"type": "number"},
                      "height": {"type": "number"}
                    }
                  },
                  "extract": {
                    "type": "object",
                    "required": ["x0", "y0", "x1", "y1"],
                    "properties": {
                      "x0": {"type": "number"},
                      "y0": {"type": "number"},
                      "x1": {"type": "number"},
                      "y1": {"type": "number"}
                    }
                  }
                }
              }
            }
          },
          "dividers": {
            "type": "object",
            "additionalProperties": {
              "type": "array",
              "items": {
                "type": "object",
                "required": ["region_index", "draw_x", "x"],
                "properties": {
                  "region_index": {"type": "integer", "minimum": 0},
                  "draw_x": {"type": "number"},
                  "x": {"type": "number"}
                }
              }
            }
          }
        }
      }
    },
    "mapping": {
      "type": "object",
      "properties": {
        "mode": {"type": "string"},
        "first_page": {"type": "integer", "minimum": 1},
        "middle_pages": {"type": "string"},
        "last_page": {"type": "string"},
        "expressions": {
          "type": "object",
          "additionalProperties": {"type": "string"}
        }
      }
    },
    "sections": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "properties": {
          "row_tolerance": {"type": "number", "minimum": 0},
          "column_split": {"type": "string"},
          "method": {"type": "string"},
          "extra": {"type": "object"}
        }
      }
    }
  }
}`

var compiledSchema = jsonschema.MustCompileString("template.schema.json", templateSchema)

// Wire-level shapes. These exist only for decoding; the engine works with the
// constructor-built model exclusively.

type templateDoc struct {
	Pages    []pageDoc                   `json:"pages"`
	Mapping  *mappingDoc                 `json:"mapping"`
	Sections map[string]sectionParamsDoc `json:"sections"`
}

type pageDoc struct {
	Regions  map[string][]regionDoc  `json:"regions"`
	Dividers map[string][]dividerDoc `json:"dividers"`
}

type regionDoc struct {
	Name    string        `json:"name"`
	Draw    geom.DrawRect `json:"draw"`
	Extract geom.Rect     `json:"extract"`
}

type dividerDoc struct {
	RegionIndex int     `json:"region_index"`
	DrawX       float64 `json:"draw_x"`
	X           float64 `json:"x"`
}

type mappingDoc struct {
	Mode        string            `json:"mode"`
	FirstPage   int               `json:"first_page"`
	MiddlePages string            `json:"middle_pages"`
	LastPage    string            `json:"last_page"`
	Expressions map[string]string `json:"expressions"`
}

type sectionParamsDoc struct {
	RowTolerance float64        `json:"row_tolerance"`
	ColumnSplit  string         `json:"column_split"`
	Method       string         `json:"method"`
	Extra        map[string]any `json:"extra"`
}

// Load reads and decodes a template file.
func Load(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", path, err)
	}
	return Decode(data)
}

// Decode validates template JSON against the schema and builds the model
// through the constructors.
func Decode(data []byte) (*Template, error) {
	var raw any
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return nil, &DefinitionError{Op: "decode_template", Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	if err := compiledSchema.Validate(raw); err != nil {
		return nil, &DefinitionError{Op: "decode_template", Err: fmt.Errorf("schema validation: %w", err)}
	}

	var doc templateDoc
	if err := sonic.Unmarshal(data, &doc); err != nil {
		return nil, &DefinitionError{Op: "decode_template", Err: err}
	}

	pages := make([]TemplatePage, 0, len(doc.Pages))
	for _, pd := range doc.Pages {
		page := TemplatePage{
			Regions:  make(map[Section][]Region),
			Dividers: make(map[Section][]ColumnDivider),
		}
		for name, regions := range pd.Regions {
			section, err := ParseSection(name)
			if err != nil {
				return nil, err
			}
			for _, rd := range regions {
				region, err := NewRegion(section, rd.Name, rd.Draw, rd.Extract)
				if err != nil {
					return nil, err
				}
				page.Regions[section] = append(page.Regions[section], region)
			}
		}
		for name, dividers := range pd.Dividers {
			section, err := ParseSection(name)
			if err != nil {
				return nil, err
			}
			for _, dd := range dividers {
				divider, err := NewDivider(dd.RegionIndex, dd.DrawX, dd.X)
				if err != nil {
					return nil, err
				}
				page.Dividers[section] = append(page.Dividers[section], divider)
			}
		}
		pages = append(pages, page)
	}

	mapping, err := decodeMapping(doc.Mapping)
	if err != nil {
		return nil, err
	}

	params := make(map[Section]SectionParams, len(doc.Sections))
	for name, sp := range doc.Sections {
		section, err := ParseSection(name)
		if err != nil {
			return nil, err
		}
		params[section] = SectionParams{
			RowTolerance: sp.RowTolerance,
			ColumnSplit:  sp.ColumnSplit,
			Method:       sp.Method,
			Extra:        sp.Extra,
		}
	}

	return New(pages, mapping, params)
}

func decodeMapping(md *mappingDoc) (MappingPolicy, error) {
	if md == nil {
		return DefaultPageWise(), nil
	}

	policy := DefaultPageWise()
	if md.Mode != "" {
		mode, err := ParseMappingMode(md.Mode)
		if err != nil {
			return MappingPolicy{}, err
		}
		policy.Mode = mode
	}
	if md.FirstPage != 0 {
		policy.FirstPage = md.FirstPage
	}
	if md.MiddlePages != "" {
		rule, err := ParseMiddleRule(md.MiddlePages)
		if err != nil {
			return MappingPolicy{}, err
		}
		policy.MiddlePages = rule
	}
	if md.LastPage != "" {
		rule, err := ParseLastRule(md.LastPage)
		if err != nil {
			return MappingPolicy{}, err
		}
		policy.LastPage = rule
	}
	if len(md.Expressions) > 0 {
		policy.Expressions = make(map[Section]string, len(md.Expressions))
		for name, expr := range md.Expressions {
			section, err := ParseSection(name)
			if err != nil {
				return MappingPolicy{}, err
			}
			policy.Expressions[section] = expr
		}
	}
	return policy, nil
}
