package agentstub

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mikeboe/search-client/pkg/search"
)

// Responder produces the answer and per-source results for a request.
type Responder interface {
	Respond(ctx context.Context, req search.SearchRequest) (string, search.SearchResults, error)
}

// ResponderFunc adapts a function to Responder.
type ResponderFunc func(ctx context.Context, req search.SearchRequest) (string, search.SearchResults, error)

func (f ResponderFunc) Respond(ctx context.Context, req search.SearchRequest) (string, search.SearchResults, error) {
	return f(ctx, req)
}

// Tool is one information source the stub can query.
type Tool interface {
	Name() string
	Search(ctx context.Context, query string) (any, error)
}

// ToolResponder asks every tool about the query and summarizes what came back.
type ToolResponder struct {
	Tools  []Tool
	Logger *slog.Logger
}

func NewToolResponder(tools ...Tool) *ToolResponder {
	return &ToolResponder{Tools: tools, Logger: slog.Default()}
}

func (r *ToolResponder) Respond(ctx context.Context, req search.SearchRequest) (string, search.SearchResults, error) {
	var results search.SearchResults
	var found []string

	for _, tool := range r.Tools {
		subQuery := req.Query
		if _, taken := results.Get(subQuery); taken {
			subQuery = fmt.Sprintf("%s [%s]", req.Query, tool.Name())
		}

		out, err := tool.Search(ctx, req.Query)
		if err != nil {
			r.Logger.Warn("Tool failed", "tool", tool.Name(), "error", err)
			results.Set(subQuery, search.ToolResult{Tool: tool.Name(), Error: err.Error()})
			continue
		}

		raw, err := json.Marshal(out)
		if err != nil {
			return "", search.SearchResults{}, fmt.Errorf("failed to encode %s results: %w", tool.Name(), err)
		}
		results.Set(subQuery, search.ToolResult{Tool: tool.Name(), Results: raw})
		if out != nil && out != "" {
			found = append(found, tool.Name())
		}
	}

	var answer strings.Builder
	fmt.Fprintf(&answer, "## %s\n\n", req.Query)
	if len(found) == 0 {
		answer.WriteString("No source returned information for this query.\n")
	} else {
		answer.WriteString("Information was found in the following sources:\n\n")
		for _, name := range found {
			fmt.Fprintf(&answer, "- **%s**\n", name)
		}
	}
	return answer.String(), results, nil
}

// Service runs searches for the HTTP and WebSocket handlers.
type Service struct {
	Responder Responder
	Logger    *slog.Logger
	Now       func() time.Time
}

func NewService(r Responder) *Service {
	return &Service{
		Responder: r,
		Logger:    slog.Default(),
		Now:       time.Now,
	}
}

// Ready reports whether a responder is configured.
func (s *Service) Ready() bool {
	return s.Responder != nil
}

// Search never fails: responder errors become success=false responses.
func (s *Service) Search(ctx context.Context, req search.SearchRequest) *search.SearchResponse {
	s.Logger.Info("Processing search request", "query", req.Query, "max_iterations", req.MaxIterations)

	answer, results, err := s.Responder.Respond(ctx, req)
	if err != nil {
		s.Logger.Error("Search failed", "query", req.Query, "error", err)
		return search.Failed(req.Query, err.Error(), s.Now())
	}

	iterations := req.MaxIterations
	s.Logger.Info("Search complete", "query", req.Query, "sources", results.Len())
	return &search.SearchResponse{
		Success:       true,
		Query:         req.Query,
		Timestamp:     search.Instant{Time: s.Now()},
		Iterations:    &iterations,
		Answer:        &answer,
		SearchResults: results,
	}
}
