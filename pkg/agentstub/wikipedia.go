package agentstub

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/mikeboe/search-client/pkg/search"
)

// WikipediaSummary is the subset of the REST summary payload the tool reports.
type WikipediaSummary struct {
	Title   string `json:"title"`
	Extract string `json:"extract"`
	URL     string `json:"url,omitempty"`
}

// WikipediaTool looks up page summaries. Its results are structured.
type WikipediaTool struct {
	BaseURL string
	Client  *http.Client
}

func (t *WikipediaTool) Name() string { return search.ToolWikipedia }

func (t *WikipediaTool) Search(ctx context.Context, query string) (any, error) {
	title := strings.ReplaceAll(strings.TrimSpace(query), " ", "_")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.BaseURL+url.PathEscape(title), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build wikipedia request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := t.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wikipedia returned status %d", resp.StatusCode)
	}

	var page struct {
		Title       string `json:"title"`
		Extract     string `json:"extract"`
		ContentURLs struct {
			Desktop struct {
				Page string `json:"page"`
			} `json:"desktop"`
		} `json:"content_urls"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode summary: %w", err)
	}

	return WikipediaSummary{
		Title:   page.Title,
		Extract: page.Extract,
		URL:     page.ContentURLs.Desktop.Page,
	}, nil
}
