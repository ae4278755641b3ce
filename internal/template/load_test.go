package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTemplate = `{
  "pages": [
    {
      "regions": {
        "header": [
          {
            "name": "invoice_no",
            "draw": {"x": 10, "y": 10, "width": 200, "height": 40},
            "extract": {"x0": 7.2, "y0": 756, "x1": 151.2, "y1": 784.8}
          }
        ],
        "items": [
          {
            "name": "lines",
            "draw": {"x": 10, "y": 120, "width": 560, "height": 400},
            "extract": {"x0": 7.2, "y0": 417.6, "x1": 410.4, "y1": 705.6}
          }
        ]
      },
      "dividers": {
        "items": [
          {"region_index": 0, "draw_x": 180, "x": 129.6},
          {"region_index": 0, "draw_x": 420, "x": 302.4}
        ]
      }
    }
  ],
  "mapping": {
    "mode": "page_wise",
    "first_page": 1,
    "middle_pages": "repeat_last",
    "last_page": "last_template_page"
  },
  "sections": {
    "items": {"row_tolerance": 4.5, "column_split": "dividers", "method": "native-table"}
  }
}`

func TestDecode(t *testing.T) {
	tmpl, err := Decode([]byte(sampleTemplate))
	require.NoError(t, err)

	assert.Equal(t, 1, tmpl.PageCount())

	page := tmpl.Page(0)
	require.Len(t, page.Regions[SectionHeader], 1)
	require.Len(t, page.Regions[SectionItems], 1)
	assert.Equal(t, "invoice_no", page.Regions[SectionHeader][0].Name())
	assert.Equal(t, "lines", page.Regions[SectionItems][0].Name())

	require.Len(t, page.Dividers[SectionItems], 2)
	assert.Equal(t, 129.6, page.Dividers[SectionItems][0].X())

	mapping := tmpl.Mapping()
	assert.Equal(t, MapPageWise, mapping.Mode)
	assert.Equal(t, 1, mapping.FirstPage)
	assert.Equal(t, MiddleRepeatLast, mapping.MiddlePages)
	assert.Equal(t, LastTemplatePage, mapping.LastPage.Kind)

	sp := tmpl.SectionParams(SectionItems)
	assert.Equal(t, 4.5, sp.RowTolerance)
	assert.Equal(t, "native-table", sp.Method)
}

func TestDecodeDefaults(t *testing.T) {
	minimal := `{
	  "pages": [
	    {
	      "regions": {
	        "header": [
	          {
	            "name": "h",
	            "draw": {"x": 0, "y": 0, "width": 10, "height": 10},
	            "extract": {"x0": 0, "y0": 782, "x1": 10, "y1": 792}
	          }
	        ]
	      }
	    }
	  ]
	}`
	tmpl, err := Decode([]byte(minimal))
	require.NoError(t, err)

	assert.Equal(t, DefaultPageWise(), tmpl.Mapping())
	assert.Zero(t, tmpl.SectionParams(SectionItems))
}

func TestDecodeRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not JSON", data: `pages: []`},
		{name: "no pages", data: `{"pages": []}`},
		{
			name: "region without name",
			data: `{"pages": [{"regions": {"header": [
				{"draw": {"x":0,"y":0,"width":10,"height":10},
				 "extract": {"x0":0,"y0":0,"x1":10,"y1":10}}]}}]}`,
		},
		{
			name: "region missing extract rect",
			data: `{"pages": [{"regions": {"header": [
				{"name":"h","draw": {"x":0,"y":0,"width":10,"height":10}}]}}]}`,
		},
		{
			name: "unknown section name",
			data: `{"pages": [{"regions": {"footer": [
				{"name":"f","draw": {"x":0,"y":0,"width":10,"height":10},
				 "extract": {"x0":0,"y0":0,"x1":10,"y1":10}}]}}]}`,
		},
		{
			name: "unknown mapping mode",
			data: `{"pages": [{"regions": {"header": [
				{"name":"h","draw": {"x":0,"y":0,"width":10,"height":10},
				 "extract": {"x0":0,"y0":1,"x1":10,"y1":10}}]}}],
				"mapping": {"mode": "diagonal"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}
