package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// Frame types sent by the agent's /ws endpoint.
const (
	FrameStart    = "start"
	FrameResult   = "result"
	FrameComplete = "complete"
	FrameError    = "error"
)

// Frame is one message on the agent's WebSocket stream
type Frame struct {
	Type      string          `json:"type"`
	Query     string          `json:"query,omitempty"`
	Timestamp Instant         `json:"timestamp,omitzero"`
	Data      json.RawMessage `json:"data,omitempty"`
	Message   string          `json:"message,omitempty"`
}

// WSAgent runs searches over the agent's WebSocket endpoint. Intermediate
// frames are consumed internally; Search still returns exactly one response.
type WSAgent struct {
	URL     string
	Dialer  *websocket.Dialer
	Timeout time.Duration
	Logger  *slog.Logger
}

// NewWSAgent derives the ws:// endpoint from an http(s) base URL.
func NewWSAgent(baseURL string, timeout time.Duration) (*WSAgent, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid agent URL: %w", err)
	}
	switch u.Scheme {
	case "http", "":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	}
	u.Path += "/ws"

	return &WSAgent{
		URL:     u.String(),
		Dialer:  websocket.DefaultDialer,
		Timeout: timeout,
		Logger:  slog.Default(),
	}, nil
}

func (a *WSAgent) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	if a.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Timeout)
		defer cancel()
	}

	conn, httpResp, err := a.Dialer.DialContext(ctx, a.URL, nil)
	if err != nil {
		if httpResp != nil {
			return nil, &TransportError{Status: httpResp.StatusCode, Err: err}
		}
		return nil, &TransportError{Err: err}
	}
	defer conn.Close()

	// gorilla reads are not context aware; closing the conn unblocks them.
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetReadDeadline(deadline)
	}

	a.Logger.Info("Submitting search over websocket", "query", req.Query, "url", a.URL)
	if err := conn.WriteJSON(req); err != nil {
		return nil, &TransportError{Err: fmt.Errorf("failed to send request: %w", err)}
	}

	var started Frame
	for {
		var frame Frame
		if err := conn.ReadJSON(&frame); err != nil {
			if ctx.Err() != nil {
				return nil, &TransportError{Err: ctx.Err()}
			}
			return nil, &TransportError{Err: fmt.Errorf("failed to read frame: %w", err)}
		}

		switch frame.Type {
		case FrameStart:
			started = frame
		case FrameResult:
			return a.resultFrom(req, started, frame)
		case FrameError:
			msg := frame.Message
			a.Logger.Warn("Agent reported failure", "message", msg)
			return &SearchResponse{
				Success:   false,
				Query:     req.Query,
				Timestamp: started.Timestamp,
				Error:     msg,
			}, nil
		default:
			a.Logger.Debug("Ignoring frame", "type", frame.Type)
		}
	}
}

func (a *WSAgent) resultFrom(req SearchRequest, started, frame Frame) (*SearchResponse, error) {
	var resp SearchResponse
	if err := json.Unmarshal(frame.Data, &resp); err != nil {
		return nil, &TransportError{Err: fmt.Errorf("malformed result frame: %w", err)}
	}
	// result frames may omit the fields already carried by the start frame
	if resp.Query == "" {
		resp.Query = req.Query
	}
	if resp.Timestamp.IsZero() {
		resp.Timestamp = started.Timestamp
	}
	if err := resp.Validate(); err != nil {
		return nil, &TransportError{Err: fmt.Errorf("malformed response: %w", err)}
	}
	return &resp, nil
}
