package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// HTTPAgent talks to the agent's REST API.
type HTTPAgent struct {
	BaseURL string
	Client  *http.Client
	Logger  *slog.Logger
}

// NewHTTPAgent creates an agent client for baseURL with the given request timeout.
func NewHTTPAgent(baseURL string, timeout time.Duration) *HTTPAgent {
	return &HTTPAgent{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
		Logger:  slog.Default(),
	}
}

// Search posts the request to /api/search.
func (a *HTTPAgent) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.BaseURL+"/api/search", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	a.Logger.Info("Submitting search", "query", req.Query, "max_iterations", req.MaxIterations)
	start := time.Now()

	body, status, err := a.do(httpReq)
	if err != nil {
		a.Logger.Error("Search request failed", "error", err)
		return nil, err
	}
	if status < 200 || status > 299 {
		a.Logger.Error("Agent returned non-2xx status", "status", status, "body", string(body))
		return nil, &TransportError{Status: status, Detail: detailMessage(body)}
	}

	resp, err := decodeResponse(body)
	if err != nil {
		a.Logger.Error("Failed to decode search response", "error", err)
		return nil, err
	}

	a.Logger.Info("Search response received",
		"success", resp.Success,
		"sources", resp.SearchResults.Len(),
		"elapsed", time.Since(start))
	return resp, nil
}

// Health queries /api/health.
func (a *HTTPAgent) Health(ctx context.Context) (*Health, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, a.BaseURL+"/api/health", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	body, status, err := a.do(httpReq)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &TransportError{Status: status, Detail: detailMessage(body)}
	}

	var h Health
	if err := json.Unmarshal(body, &h); err != nil {
		return nil, &TransportError{Err: fmt.Errorf("malformed health body: %w", err)}
	}
	return &h, nil
}

func (a *HTTPAgent) do(req *http.Request) ([]byte, int, error) {
	resp, err := a.Client.Do(req)
	if err != nil {
		return nil, 0, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, &TransportError{Status: resp.StatusCode, Err: fmt.Errorf("failed to read response body: %w", err)}
	}
	return body, resp.StatusCode, nil
}
