package agentstub

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mikeboe/search-client/pkg/search"
)

// ArxivEntry struct to hold arXiv entry data
type ArxivEntry struct {
	Title     string      `xml:"title"`
	Summary   string      `xml:"summary"`
	Published string      `xml:"published"`
	Link      []ArxivLink `xml:"link"`
}

// ArxivLink struct to hold arXiv link data
type ArxivLink struct {
	Href string `xml:"href,attr"`
	Type string `xml:"type,attr"`
}

// ArxivFeed struct to hold the entire arXiv feed
type ArxivFeed struct {
	XMLName xml.Name     `xml:"feed"`
	Entry   []ArxivEntry `xml:"entry"`
}

// ArxivTool searches the arXiv Atom API.
type ArxivTool struct {
	BaseURL    string
	MaxResults int
	Client     *http.Client
}

func (t *ArxivTool) Name() string { return search.ToolArxiv }

// Search queries arXiv and returns a formatted text listing.
func (t *ArxivTool) Search(ctx context.Context, query string) (any, error) {
	maxResults := t.MaxResults
	if maxResults <= 0 {
		maxResults = 5
	}

	params := url.Values{}
	params.Add("search_query", "all:"+query)
	params.Add("max_results", strconv.Itoa(maxResults))
	params.Add("start", "0")
	apiURL := t.BaseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build arXiv request: %w", err)
	}
	resp, err := t.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		slog.Error("arXiv returned non-200 status code", "status", resp.StatusCode, "body", string(bodyBytes))
		return nil, fmt.Errorf("arXiv returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var feed ArxivFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal XML: %w", err)
	}

	var b strings.Builder
	for i, entry := range feed.Entry {
		fmt.Fprintf(&b, "%d. %s\n", i+1, collapseSpace(entry.Title))
		fmt.Fprintf(&b, "   Published: %s\n", entry.Published)
		for _, link := range entry.Link {
			if link.Type == "application/pdf" {
				fmt.Fprintf(&b, "   PDF: %s\n", link.Href)
				break
			}
		}
		fmt.Fprintf(&b, "   %s\n\n", collapseSpace(entry.Summary))
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
