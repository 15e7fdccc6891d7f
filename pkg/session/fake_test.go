package session

import (
	"context"
	"sync"

	"github.com/mikeboe/search-client/pkg/search"
)

// fakeAgent returns scripted replies and records every request.
type fakeAgent struct {
	mu       sync.Mutex
	requests []search.SearchRequest
	reply    func(req search.SearchRequest) (*search.SearchResponse, error)
	onCall   func()
}

func (f *fakeAgent) Search(ctx context.Context, req search.SearchRequest) (*search.SearchResponse, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	if f.onCall != nil {
		f.onCall()
	}
	return f.reply(req)
}

func (f *fakeAgent) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

func okReply(req search.SearchRequest) (*search.SearchResponse, error) {
	return &search.SearchResponse{
		Success: true,
		Query:   req.Query,
		Answer:  strPtr("answer for " + req.Query),
	}, nil
}
