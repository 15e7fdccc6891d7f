package search

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequest(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		iterations int
		want       SearchRequest
		wantErr    error
	}{
		{"Plain query", "quantum computing", 3, SearchRequest{Query: "quantum computing", MaxIterations: 3}, nil},
		{"Trimmed", "  climate research \n", 1, SearchRequest{Query: "climate research", MaxIterations: 1}, nil},
		{"Empty", "", 3, SearchRequest{}, ErrEmptyQuery},
		{"Whitespace only", " \t\n ", 3, SearchRequest{}, ErrEmptyQuery},
		{"Zero iterations", "query", 0, SearchRequest{}, ErrInvalidIterations},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewRequest(tt.text, tt.iterations)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseInstant(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"Empty", "", time.Time{}, false},
		{"RFC 3339", "2024-05-01T10:20:30Z", time.Date(2024, 5, 1, 10, 20, 30, 0, time.UTC), false},
		{"Naive ISO with micros", "2024-05-01T10:20:30.123456", time.Date(2024, 5, 1, 10, 20, 30, 123456000, time.Local), false},
		{"Naive ISO", "2024-05-01T10:20:30", time.Date(2024, 5, 1, 10, 20, 30, 0, time.Local), false},
		{"Naive with space", "2024-05-01 10:20:30", time.Date(2024, 5, 1, 10, 20, 30, 0, time.Local), false},
		{"Garbage", "yesterday", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInstant(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got.Time), "got %v want %v", got.Time, tt.want)
		})
	}
}

func TestDecodeSuccessResponse(t *testing.T) {
	body := `{
		"success": true,
		"query": "quantum computing breakthroughs",
		"timestamp": "2024-05-01T10:20:30.000001",
		"iterations": 2,
		"answer": "## Summary\nRecent results...",
		"search_results": {
			"quantum error correction": {"tool": "arxiv_search", "results": "1. Paper"},
			"quantum supremacy": {"tool": "wikipedia_search", "results": {"title": "Quantum supremacy"}},
			"ibm quantum roadmap": {"tool": "google_search", "error": "rate limited"}
		}
	}`

	resp, err := decodeResponse([]byte(body))
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "quantum computing breakthroughs", resp.Query)
	require.NotNil(t, resp.Iterations)
	assert.Equal(t, 2, *resp.Iterations)
	require.NotNil(t, resp.Answer)
	assert.Contains(t, *resp.Answer, "Recent results")
	assert.Equal(t, 2024, resp.Timestamp.Year())

	entries := resp.SearchResults.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "quantum error correction", entries[0].SubQuery)
	assert.Equal(t, "quantum supremacy", entries[1].SubQuery)
	assert.Equal(t, "ibm quantum roadmap", entries[2].SubQuery)
	assert.Equal(t, "rate limited", entries[2].Result.Error)
}

func TestDecodeFailureResponse(t *testing.T) {
	resp, err := decodeResponse([]byte(`{"success": false, "query": "q", "error": "agent crashed"}`))
	require.NoError(t, err)

	assert.False(t, resp.Success)
	assert.Equal(t, "agent crashed", resp.Error)
	assert.Nil(t, resp.Answer)
	assert.Zero(t, resp.SearchResults.Len())
	assert.True(t, resp.Timestamp.IsZero())
}

func TestDecodeMalformedResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"Not JSON", `<html>bad gateway</html>`},
		{"Results not an object", `{"success": true, "query": "q", "search_results": [1, 2]}`},
		{"Negative iterations", `{"success": true, "query": "q", "iterations": -1}`},
		{"Success without query", `{"success": true}`},
		{"Bad timestamp", `{"success": true, "query": "q", "timestamp": "soon"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeResponse([]byte(tt.body))
			var te *TransportError
			require.ErrorAs(t, err, &te)
			assert.Zero(t, te.Status)
		})
	}
}

func TestFailedOmitsAbsentFields(t *testing.T) {
	data, err := json.Marshal(Failed("q", "boom", time.Time{}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success": false, "query": "q", "error": "boom"}`, string(data))
}
