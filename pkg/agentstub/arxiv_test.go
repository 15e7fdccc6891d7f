package agentstub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const atomFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <title>Surface Codes:
      Towards Practical Error Correction</title>
    <summary>  We review   surface codes. </summary>
    <published>2023-01-02T00:00:00Z</published>
    <link href="http://arxiv.org/abs/1" type="text/html"/>
    <link href="http://arxiv.org/pdf/1" type="application/pdf"/>
  </entry>
</feed>`

func TestArxivToolSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "all:error correction", r.URL.Query().Get("search_query"))
		assert.Equal(t, "3", r.URL.Query().Get("max_results"))
		_, _ = w.Write([]byte(atomFeed))
	}))
	defer srv.Close()

	tool := &ArxivTool{BaseURL: srv.URL, MaxResults: 3, Client: srv.Client()}
	out, err := tool.Search(context.Background(), "error correction")
	require.NoError(t, err)

	text, ok := out.(string)
	require.True(t, ok)
	assert.Contains(t, text, "1. Surface Codes: Towards Practical Error Correction")
	assert.Contains(t, text, "PDF: http://arxiv.org/pdf/1")
	assert.Contains(t, text, "We review surface codes.")
}

func TestArxivToolErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"Non-200", http.StatusServiceUnavailable, "down"},
		{"Bad XML", http.StatusOK, "<feed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			tool := &ArxivTool{BaseURL: srv.URL, Client: srv.Client()}
			_, err := tool.Search(context.Background(), "q")
			assert.Error(t, err)
		})
	}
}

func TestWikipediaToolSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/Quantum_computing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"title": "Quantum computing", "extract": "A quantum computer...",
			"content_urls": {"desktop": {"page": "https://en.wikipedia.org/wiki/Quantum_computing"}}}`))
	}))
	defer srv.Close()

	tool := &WikipediaTool{BaseURL: srv.URL + "/", Client: srv.Client()}

	out, err := tool.Search(context.Background(), "Quantum computing")
	require.NoError(t, err)
	assert.Equal(t, WikipediaSummary{
		Title:   "Quantum computing",
		Extract: "A quantum computer...",
		URL:     "https://en.wikipedia.org/wiki/Quantum_computing",
	}, out)

	out, err = tool.Search(context.Background(), "No such page")
	require.NoError(t, err)
	assert.Nil(t, out)
}
