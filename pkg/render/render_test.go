package render

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mikeboe/search-client/pkg/search"
	"github.com/mikeboe/search-client/pkg/session"
	"github.com/stretchr/testify/assert"
)

type failingFormatter struct{}

func (failingFormatter) Format(string) (string, error) { return "", errors.New("bad markup") }

func successView(expanded bool) session.View {
	iterations := 2
	answer := "Qubits are **fragile**."
	var results search.SearchResults
	results.Set("quantum error correction", search.TextResult(search.ToolArxiv, "1. Surface codes\n2. Cat qubits"))
	results.Set("latest news", search.ToolResult{Tool: search.ToolGoogle, Error: "rate limited"})
	results.Set("qubit", search.ToolResult{Tool: search.ToolWikipedia, Results: json.RawMessage(`{"title":"Qubit"}`)})

	res := &session.Result{ID: uuid.New(), Response: &search.SearchResponse{
		Success:       true,
		Query:         "quantum computing breakthroughs",
		Iterations:    &iterations,
		Answer:        &answer,
		SearchResults: results,
	}}
	p := session.NewPresentation()
	if expanded {
		for _, e := range results.Entries() {
			p.Toggle(res.ID, e.SubQuery)
		}
	}
	return session.View{Current: res, Panels: p.Panels(res)}
}

func TestRenderSuccessCollapsed(t *testing.T) {
	out := New(nil).Results(successView(false), -1)

	assert.Contains(t, out, "Search results")
	assert.Contains(t, out, "After 2 rounds of iterative search")
	assert.Contains(t, out, "Qubits are **fragile**.")
	assert.Contains(t, out, "quantum error correction")
	assert.Contains(t, out, "via arxiv_search")
	assert.Contains(t, out, "📄")
	assert.NotContains(t, out, "Surface codes")
	assert.NotContains(t, out, "rate limited")
}

func TestRenderSuccessExpanded(t *testing.T) {
	out := New(nil).Results(successView(true), -1)

	assert.Contains(t, out, "Surface codes")
	assert.Contains(t, out, "Cat qubits")
	assert.Contains(t, out, "Error: rate limited")
	assert.Contains(t, out, `"title": "Qubit"`)
}

func TestRenderSelectedPanel(t *testing.T) {
	out := New(nil).Results(successView(false), 1)
	assert.Contains(t, out, "› ▾")
}

func TestRenderFailure(t *testing.T) {
	tests := []struct {
		name string
		err  string
		want string
	}{
		{"Agent message", "quota exceeded", "quota exceeded"},
		{"No message", "", UnknownErrorText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := session.View{Current: &session.Result{Response: &search.SearchResponse{Success: false, Query: "q", Error: tt.err}}}
			out := New(nil).Results(v, -1)
			assert.Contains(t, out, "Search failed")
			assert.Contains(t, out, tt.want)
			assert.NotContains(t, out, "Sources")
		})
	}
}

func TestRenderMissingAnswer(t *testing.T) {
	v := session.View{Current: &session.Result{Response: &search.SearchResponse{Success: true, Query: "q"}}}
	out := New(nil).Results(v, -1)
	assert.Contains(t, out, NoAnswerText)
	assert.NotContains(t, out, "rounds of iterative search")
}

func TestRenderFormatterErrorFallsBackToRawText(t *testing.T) {
	out := New(failingFormatter{}).Results(successView(false), -1)
	assert.Contains(t, out, "Qubits are **fragile**.")
}

func TestRenderBusyAndEmpty(t *testing.T) {
	r := New(nil)
	out := r.Render(session.View{Busy: true})
	assert.Contains(t, out, BusyText)
	assert.Contains(t, out, NoHistoryText)
}

func TestRenderHistory(t *testing.T) {
	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	v := session.View{History: []session.HistoryEntry{
		{Query: "newest", Timestamp: ts},
		{Query: "older", Timestamp: ts.Add(-time.Hour)},
	}}
	out := New(nil).History(v)

	assert.Less(t, strings.Index(out, "newest"), strings.Index(out, "older"))
	assert.Contains(t, out, ts.Local().Format(TimeLayout))
	assert.NotContains(t, out, NoHistoryText)
}

func TestGlyphUnknownIcon(t *testing.T) {
	assert.Equal(t, Glyph(search.IconGeneric), Glyph(search.Icon(99)))
}
