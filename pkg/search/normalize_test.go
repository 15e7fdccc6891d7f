package search

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		input    ToolResult
		wantKind Kind
		wantText string
	}{
		{
			name:     "Error only",
			input:    ToolResult{Tool: ToolGoogle, Error: "rate limited"},
			wantKind: KindError,
			wantText: "rate limited",
		},
		{
			name:     "Error wins over results",
			input:    ToolResult{Tool: ToolArxiv, Results: json.RawMessage(`"some text"`), Error: "timeout"},
			wantKind: KindError,
			wantText: "timeout",
		},
		{
			name:     "Text keeps line breaks",
			input:    ToolResult{Tool: ToolArxiv, Results: json.RawMessage(`"line one\nline two"`)},
			wantKind: KindText,
			wantText: "line one\nline two",
		},
		{
			name:     "Structured object is indented",
			input:    ToolResult{Tool: ToolWikipedia, Results: json.RawMessage(`{"title":"Qubit","score":1}`)},
			wantKind: KindStructured,
			wantText: "{\n  \"title\": \"Qubit\",\n  \"score\": 1\n}",
		},
		{
			name:     "Structured array",
			input:    ToolResult{Tool: ToolGoogleScholar, Results: json.RawMessage(`[1,2]`)},
			wantKind: KindStructured,
			wantText: "[\n  1,\n  2\n]",
		},
		{
			name:     "Number is structured",
			input:    ToolResult{Tool: "custom", Results: json.RawMessage(`42`)},
			wantKind: KindStructured,
			wantText: "42",
		},
		{
			name:     "Both absent",
			input:    ToolResult{Tool: ToolArxiv},
			wantKind: KindText,
			wantText: NotFoundPlaceholder,
		},
		{
			name:     "Null results",
			input:    ToolResult{Tool: ToolArxiv, Results: json.RawMessage(`null`)},
			wantKind: KindText,
			wantText: NotFoundPlaceholder,
		},
		{
			name:     "Empty string results",
			input:    ToolResult{Tool: ToolArxiv, Results: json.RawMessage(`""`)},
			wantKind: KindText,
			wantText: NotFoundPlaceholder,
		},
		{
			name:     "Invalid raw bytes fall back verbatim",
			input:    ToolResult{Tool: ToolArxiv, Results: json.RawMessage(`{broken`)},
			wantKind: KindStructured,
			wantText: "{broken",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.input)
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantText, got.Text)
		})
	}
}

func TestIconFor(t *testing.T) {
	tests := []struct {
		tool string
		want Icon
	}{
		{ToolArxiv, IconPaper},
		{ToolWikipedia, IconEncyclopedia},
		{ToolGoogleScholar, IconScholar},
		{ToolGoogle, IconWeb},
		{ToolUnknown, IconGeneric},
		{"", IconGeneric},
		{"bing_search", IconGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			assert.Equal(t, tt.want, IconFor(tt.tool))
		})
	}
}
