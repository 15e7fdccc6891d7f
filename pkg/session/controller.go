package session

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/mikeboe/search-client/pkg/search"
)

// DefaultFallbackMessage is shown when a failed request carries no detail.
const DefaultFallbackMessage = "Search failed, please try again later"

// Result is one completed submission. Seq increases with every submission
// and lets the shell discard responses that arrive out of order.
type Result struct {
	Seq      uint64
	ID       uuid.UUID
	Response *search.SearchResponse
}

// Controller owns the lifecycle of a single in-flight search.
type Controller struct {
	Agent           search.Agent
	MaxIterations   int
	FallbackMessage string
	Logger          *slog.Logger
	Now             func() time.Time

	busy atomic.Bool
	seq  atomic.Uint64
}

func NewController(agent search.Agent, maxIterations int) *Controller {
	if maxIterations <= 0 {
		maxIterations = search.DefaultMaxIterations
	}
	return &Controller{
		Agent:           agent,
		MaxIterations:   maxIterations,
		FallbackMessage: DefaultFallbackMessage,
		Logger:          slog.Default(),
		Now:             time.Now,
	}
}

// Busy reports whether a submission is outstanding. Callers must not submit
// while it is true; the controller itself does not queue or reject.
func (c *Controller) Busy() bool {
	return c.busy.Load()
}

// Submit sends one query to the agent and always produces exactly one
// response unless text is blank, in which case it returns
// search.ErrEmptyQuery without touching any state.
func (c *Controller) Submit(ctx context.Context, text string) (Result, error) {
	req, err := search.NewRequest(text, c.MaxIterations)
	if err != nil {
		return Result{}, err
	}

	c.busy.Store(true)
	defer c.busy.Store(false)

	res := Result{Seq: c.seq.Add(1), ID: uuid.New()}
	c.Logger.Info("Starting search", "query", req.Query, "seq", res.Seq)

	resp, err := c.Agent.Search(ctx, req)
	if err != nil {
		msg := c.failureMessage(err)
		c.Logger.Error("Search failed", "query", req.Query, "error", err, "message", msg)
		res.Response = search.Failed(req.Query, msg, c.Now())
		return res, nil
	}

	if !resp.Success {
		c.Logger.Warn("Agent reported failure", "query", req.Query, "error", resp.Error)
	} else {
		c.Logger.Info("Search complete", "query", req.Query, "sources", resp.SearchResults.Len())
	}
	res.Response = resp
	return res, nil
}

// failureMessage picks the first available of: agent detail, the configured
// fallback, the raw transport error.
func (c *Controller) failureMessage(err error) string {
	var te *search.TransportError
	if errors.As(err, &te) && te.Detail != "" {
		return te.Detail
	}
	if c.FallbackMessage != "" {
		return c.FallbackMessage
	}
	return err.Error()
}
