// Package agentstub is a local stand-in for the remote research agent. It
// speaks the same HTTP and WebSocket protocol so the client can be developed
// and tested without the real backend.
package agentstub

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewEngine builds the gin engine with CORS, request logging and all routes.
func NewEngine(svc *Service, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(logger))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Allow all for dev
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowWebSockets:  true,
		AllowCredentials: false,
	}))

	h := NewHandler(svc)
	h.Logger = logger
	h.RegisterRoutes(r)
	return r
}

// DefaultTools returns the arXiv and Wikipedia tools against the given endpoints.
func DefaultTools(arxivURL, wikipediaURL string) []Tool {
	client := &http.Client{Timeout: 30 * time.Second}
	return []Tool{
		&ArxivTool{BaseURL: arxivURL, MaxResults: 5, Client: client},
		&WikipediaTool{BaseURL: wikipediaURL, Client: client},
	}
}
