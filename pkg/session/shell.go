package session

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// View is everything a renderer needs. Rendering must depend on nothing else.
type View struct {
	Current *Result
	Busy    bool
	History []HistoryEntry
	Panels  []SourcePanel
}

// Shell composes the controller, the history ledger and the presentation
// state into one session.
type Shell struct {
	Controller   *Controller
	History      *Ledger
	Presentation *Presentation

	mu      sync.Mutex
	current *Result
	applied uint64
}

func NewShell(c *Controller) *Shell {
	return &Shell{
		Controller:   c,
		History:      &Ledger{},
		Presentation: NewPresentation(),
	}
}

func (s *Shell) Busy() bool {
	return s.Controller.Busy()
}

// Submit runs a search and applies its result. Blank input returns
// search.ErrEmptyQuery and leaves the session untouched.
func (s *Shell) Submit(ctx context.Context, text string) (Result, error) {
	if strings.TrimSpace(text) != "" {
		s.ClearError()
	}
	res, err := s.Controller.Submit(ctx, text)
	if err != nil {
		return Result{}, err
	}
	s.Apply(res)
	return res, nil
}

// ClearError removes a failed response from display. Call it when a new
// submission starts.
func (s *Shell) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil && !s.current.Response.Success {
		s.current = nil
		s.Presentation.Retain(uuid.Nil)
	}
}

// Apply makes res the current response and records successful searches.
// It reports false when res is not newer than the last applied result.
func (s *Shell) Apply(res Result) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if res.Response == nil || res.Seq <= s.applied {
		return false
	}
	s.applied = res.Seq
	cur := res
	s.current = &cur
	s.Presentation.Retain(res.ID)

	if res.Response.Success {
		s.History.Record(res.Response.Query, res.Response.Timestamp.Time)
	}
	return true
}

// ToggleSource expands or collapses a source panel of the current response.
func (s *Shell) ToggleSource(subQuery string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return
	}
	s.Presentation.Toggle(s.current.ID, subQuery)
}

// Dismiss clears the displayed response, including its error message.
func (s *Shell) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	s.Presentation.Retain(uuid.Nil)
}

// ReplayHistory returns the i-th displayed history entry and does nothing
// else: whether selecting an entry should re-run it or only fill the input
// is undecided.
func (s *Shell) ReplayHistory(i int) (HistoryEntry, bool) {
	recent := s.History.Recent(RecentLimit)
	if i < 0 || i >= len(recent) {
		return HistoryEntry{}, false
	}
	return recent[i], true
}

func (s *Shell) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		Busy:    s.Controller.Busy(),
		History: s.History.Recent(RecentLimit),
	}
	if s.current != nil {
		cur := *s.current
		v.Current = &cur
		v.Panels = s.Presentation.Panels(&cur)
	}
	return v
}
