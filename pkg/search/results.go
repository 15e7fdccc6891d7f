package search

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SearchResults maps sub-queries to tool results and keeps the order in
// which the agent listed them. Keys are unique.
type SearchResults struct {
	keys  []string
	items map[string]ToolResult
}

// Entry is one sub-query and its tool result.
type Entry struct {
	SubQuery string
	Result   ToolResult
}

// Set adds or replaces the result for a sub-query. A replaced key keeps its
// original position.
func (s *SearchResults) Set(subQuery string, result ToolResult) {
	if s.items == nil {
		s.items = make(map[string]ToolResult)
	}
	if _, ok := s.items[subQuery]; !ok {
		s.keys = append(s.keys, subQuery)
	}
	s.items[subQuery] = result
}

// Get returns the result for a sub-query.
func (s SearchResults) Get(subQuery string) (ToolResult, bool) {
	r, ok := s.items[subQuery]
	return r, ok
}

func (s SearchResults) Len() int {
	return len(s.keys)
}

// Entries returns every sub-query in agent order.
func (s SearchResults) Entries() []Entry {
	entries := make([]Entry, 0, len(s.keys))
	for _, k := range s.keys {
		entries = append(entries, Entry{SubQuery: k, Result: s.items[k]})
	}
	return entries
}

// IsZero lets encoding/json omit an empty mapping.
func (s SearchResults) IsZero() bool {
	return len(s.keys) == 0
}

func (s SearchResults) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range s.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(s.items[k])
		if err != nil {
			return nil, fmt.Errorf("search_results[%q]: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s *SearchResults) UnmarshalJSON(data []byte) error {
	*s = SearchResults{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("search_results: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("search_results: expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("search_results: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("search_results: unexpected key %v", tok)
		}
		var result ToolResult
		if err := dec.Decode(&result); err != nil {
			return fmt.Errorf("search_results[%q]: %w", key, err)
		}
		s.Set(key, result)
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("search_results: %w", err)
	}
	return nil
}
