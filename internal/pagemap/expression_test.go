package pagemap

import (
	"errors"
	"testing"

	"github.com/tularam-sharma/pdfharvest/internal/template"
)

func TestParsePageExpression(t *testing.T) {
	tests := []struct {
		name     string
		expr     string
		docPages int
		want     []int
		wantErr  bool
	}{
		{
			name:     "mixed tokens",
			expr:     "1,3-5,n-1,n",
			docPages: 6,
			want:     []int{1, 3, 4, 5, 6},
		},
		{
			name:     "single literal",
			expr:     "2",
			docPages: 6,
			want:     []int{2},
		},
		{
			name:     "last keyword",
			expr:     "last",
			docPages: 4,
			want:     []int{4},
		},
		{
			name:     "relative with last keyword",
			expr:     "last-2",
			docPages: 4,
			want:     []int{2},
		},
		{
			name:     "literal clamped to document length",
			expr:     "9",
			docPages: 4,
			want:     []int{4},
		},
		{
			name:     "relative clamped to first page",
			expr:     "n-10",
			docPages: 4,
			want:     []int{1},
		},
		{
			name:     "range clamped and deduplicated",
			expr:     "3-8,n",
			docPages: 5,
			want:     []int{3, 4, 5},
		},
		{
			name:     "whitespace tolerated",
			expr:     " 1 , 3-4 , n ",
			docPages: 6,
			want:     []int{1, 3, 4, 6},
		},
		{
			name:     "range entirely beyond document collapses to last page",
			expr:     "100-200",
			docPages: 6,
			want:     []int{6},
		},
		{
			name:     "huge range bound expands in document-sized steps",
			expr:     "1-2000000000",
			docPages: 6,
			want:     []int{1, 2, 3, 4, 5, 6},
		},
		{
			name:     "descending range invalidates expression",
			expr:     "1,5-3",
			docPages: 6,
			wantErr:  true,
		},
		{
			name:     "garbage token invalidates expression",
			expr:     "1,two,3",
			docPages: 6,
			wantErr:  true,
		},
		{
			name:     "empty expression",
			expr:     "  ",
			docPages: 6,
			wantErr:  true,
		},
		{
			name:     "empty token",
			expr:     "1,,3",
			docPages: 6,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePageExpression(tt.expr, tt.docPages)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParsePageExpression(%q) = %v, want error", tt.expr, got)
				}
				var defErr *template.DefinitionError
				if !errors.As(err, &defErr) {
					t.Errorf("expected DefinitionError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePageExpression(%q) error = %v", tt.expr, err)
			}
			assertPages(t, got, tt.want)
		})
	}
}
