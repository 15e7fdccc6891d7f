package agentstub

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/mikeboe/search-client/pkg/search"
)

type Handler struct {
	Service  *Service
	Logger   *slog.Logger
	upgrader websocket.Upgrader
}

func NewHandler(s *Service) *Handler {
	return &Handler{
		Service: s,
		Logger:  slog.Default(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.index)
	r.GET("/ws", h.serveWS)
	api := r.Group("/api")
	{
		api.GET("/health", h.health)
		api.POST("/search", h.search)
	}
}

func (h *Handler) index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Research search agent (stub)",
		"version": "1.0.0",
		"endpoints": gin.H{
			"search":    "/api/search",
			"health":    "/api/health",
			"websocket": "/ws",
		},
	})
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, search.Health{
		Status:     "healthy",
		Timestamp:  search.Instant{Time: time.Now()},
		AgentReady: h.Service.Ready(),
	})
}

// bindRequest applies the agent's defaults and rejects blank queries.
func bindRequest(req *search.SearchRequest) string {
	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		return "Query is required"
	}
	if req.MaxIterations <= 0 {
		req.MaxIterations = search.DefaultMaxIterations
	}
	return ""
}

func (h *Handler) search(c *gin.Context) {
	if !h.Service.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "Agent not initialized"})
		return
	}

	var req search.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	if msg := bindRequest(&req); msg != "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": msg})
		return
	}

	c.JSON(http.StatusOK, h.Service.Search(c.Request.Context(), req))
}

// serveWS serves one search per received request frame until the client
// disconnects.
func (h *Handler) serveWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Logger.Error("WebSocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	for {
		var req search.SearchRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.Logger.Warn("WebSocket read failed", "error", err)
			} else {
				h.Logger.Info("WebSocket disconnected")
			}
			return
		}

		if msg := bindRequest(&req); msg != "" {
			if err := conn.WriteJSON(search.Frame{Type: search.FrameError, Message: msg}); err != nil {
				return
			}
			continue
		}
		if !h.Service.Ready() {
			if err := conn.WriteJSON(search.Frame{Type: search.FrameError, Message: "Agent not initialized"}); err != nil {
				return
			}
			continue
		}

		frames := h.searchFrames(c, req)
		for _, f := range frames {
			if err := conn.WriteJSON(f); err != nil {
				h.Logger.Warn("WebSocket write failed", "error", err)
				return
			}
		}
	}
}

func (h *Handler) searchFrames(c *gin.Context, req search.SearchRequest) []search.Frame {
	start := search.Frame{Type: search.FrameStart, Query: req.Query, Timestamp: search.Instant{Time: time.Now()}}

	resp := h.Service.Search(c.Request.Context(), req)
	if !resp.Success {
		return []search.Frame{start, {Type: search.FrameError, Message: resp.Error}}
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return []search.Frame{start, {Type: search.FrameError, Message: err.Error()}}
	}
	return []search.Frame{
		start,
		{Type: search.FrameResult, Data: data},
		{Type: search.FrameComplete, Timestamp: search.Instant{Time: time.Now()}},
	}
}
