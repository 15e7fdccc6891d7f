package search

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrEmptyQuery is returned when the query text is blank after trimming.
	ErrEmptyQuery = errors.New("query is empty")
	// ErrInvalidIterations is returned when max_iterations is not positive.
	ErrInvalidIterations = errors.New("max_iterations must be positive")
)

// DefaultMaxIterations matches the value the agent uses when none is sent.
const DefaultMaxIterations = 3

// SearchRequest is the payload sent to the agent
type SearchRequest struct {
	Query         string `json:"query"`
	MaxIterations int    `json:"max_iterations"`
}

// NewRequest builds a request from raw user input.
func NewRequest(text string, maxIterations int) (SearchRequest, error) {
	query := strings.TrimSpace(text)
	if query == "" {
		return SearchRequest{}, ErrEmptyQuery
	}
	if maxIterations <= 0 {
		return SearchRequest{}, ErrInvalidIterations
	}
	return SearchRequest{Query: query, MaxIterations: maxIterations}, nil
}

// ToolResult is the outcome of one sub-query against one tool
type ToolResult struct {
	Tool    string          `json:"tool"`
	Results json.RawMessage `json:"results,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// TextResult wraps a plain string payload as a ToolResult.
func TextResult(tool, text string) ToolResult {
	raw, _ := json.Marshal(text)
	return ToolResult{Tool: tool, Results: raw}
}

// SearchResponse is the agent's reply to a SearchRequest
type SearchResponse struct {
	Success       bool          `json:"success"`
	Query         string        `json:"query"`
	Timestamp     Instant       `json:"timestamp,omitzero"`
	Iterations    *int          `json:"iterations,omitempty"`
	Answer        *string       `json:"answer,omitempty"`
	SearchResults SearchResults `json:"search_results,omitzero"`
	Error         string        `json:"error,omitempty"`
}

// Validate checks the shape of a decoded response without reinterpreting it.
func (r *SearchResponse) Validate() error {
	if r.Iterations != nil && *r.Iterations < 0 {
		return fmt.Errorf("negative iteration count %d", *r.Iterations)
	}
	if r.Success && r.Query == "" {
		return errors.New("successful response without query")
	}
	return nil
}

// Failed builds a locally synthesized failure response.
func Failed(query, message string, at time.Time) *SearchResponse {
	return &SearchResponse{
		Success:   false,
		Query:     query,
		Timestamp: Instant{Time: at},
		Error:     message,
	}
}

// Instant is a timestamp that tolerates both RFC 3339 and naive ISO-8601 text.
type Instant struct {
	time.Time
}

// naiveLayouts carry no zone and are read as local wall-clock time.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// ParseInstant parses the timestamp formats the agent is known to emit.
func ParseInstant(s string) (Instant, error) {
	if s == "" {
		return Instant{}, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return Instant{Time: t}, nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return Instant{Time: t}, nil
		}
	}
	return Instant{}, fmt.Errorf("unrecognized timestamp %q", s)
}

func (i Instant) MarshalJSON() ([]byte, error) {
	if i.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(i.Time.Format(time.RFC3339Nano))
}

func (i *Instant) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*i = Instant{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	parsed, err := ParseInstant(s)
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}
