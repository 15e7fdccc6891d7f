package search

import (
	"bytes"
	"encoding/json"
)

// Kind is the display shape of a tool result.
type Kind int

const (
	KindText Kind = iota
	KindStructured
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindStructured:
		return "structured"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// NotFoundPlaceholder is shown for a source that returned nothing.
const NotFoundPlaceholder = "No information found"

// Classification is the normalized, displayable form of a ToolResult.
type Classification struct {
	Kind Kind
	Text string
}

// Classify maps every ToolResult to exactly one Kind. An error always wins
// over results.
func Classify(r ToolResult) Classification {
	if r.Error != "" {
		return Classification{Kind: KindError, Text: r.Error}
	}

	raw := bytes.TrimSpace(r.Results)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return Classification{Kind: KindText, Text: NotFoundPlaceholder}
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if s == "" {
				return Classification{Kind: KindText, Text: NotFoundPlaceholder}
			}
			return Classification{Kind: KindText, Text: s}
		}
	}

	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return Classification{Kind: KindStructured, Text: string(raw)}
	}
	return Classification{Kind: KindStructured, Text: out.String()}
}
