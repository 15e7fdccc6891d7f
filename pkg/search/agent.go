package search

import (
	"context"
	"encoding/json"
	"fmt"
)

// Agent is the remote research agent. Search returns an error only for
// transport-level failures; a reply with success=false is a valid response.
type Agent interface {
	Search(ctx context.Context, req SearchRequest) (*SearchResponse, error)
}

// Health is the agent's readiness report
type Health struct {
	Status     string  `json:"status"`
	Timestamp  Instant `json:"timestamp,omitzero"`
	AgentReady bool    `json:"agent_ready"`
}

// TransportError describes a request that produced no usable response.
type TransportError struct {
	Status int    // HTTP status, 0 when no response was received
	Detail string // agent-provided detail message, if any
	Err    error
}

func (e *TransportError) Error() string {
	switch {
	case e.Status != 0 && e.Detail != "":
		return fmt.Sprintf("agent returned %d: %s", e.Status, e.Detail)
	case e.Status != 0:
		return fmt.Sprintf("agent returned %d", e.Status)
	case e.Err != nil:
		return e.Err.Error()
	default:
		return "transport failure"
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// errorBody is the FastAPI-style error payload.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// detailMessage extracts a human readable detail from an error body. Validation
// errors carry a list instead of a string; those are returned as raw JSON.
func detailMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || len(eb.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(eb.Detail, &s); err == nil {
		return s
	}
	if string(eb.Detail) == "null" {
		return ""
	}
	return string(eb.Detail)
}

// decodeResponse decodes and shape-checks a response body.
func decodeResponse(body []byte) (*SearchResponse, error) {
	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &TransportError{Err: fmt.Errorf("malformed response body: %w", err)}
	}
	if err := resp.Validate(); err != nil {
		return nil, &TransportError{Err: fmt.Errorf("malformed response: %w", err)}
	}
	return &resp, nil
}
