package session

import (
	"github.com/google/uuid"
	"github.com/mikeboe/search-client/pkg/search"
)

// sourceKey scopes expansion state to one response so that equal sub-query
// strings in different searches do not share a panel state.
type sourceKey struct {
	response uuid.UUID
	subQuery string
}

// Presentation holds expand/collapse state for source panels. Absent keys
// are collapsed.
type Presentation struct {
	expanded map[sourceKey]bool
}

func NewPresentation() *Presentation {
	return &Presentation{expanded: make(map[sourceKey]bool)}
}

// Toggle flips the panel for subQuery within a response.
func (p *Presentation) Toggle(response uuid.UUID, subQuery string) {
	k := sourceKey{response, subQuery}
	p.expanded[k] = !p.expanded[k]
}

// Retain forgets the panel state of every response other than response.
func (p *Presentation) Retain(response uuid.UUID) {
	for k := range p.expanded {
		if k.response != response {
			delete(p.expanded, k)
		}
	}
}

func (p *Presentation) Expanded(response uuid.UUID, subQuery string) bool {
	return p.expanded[sourceKey{response, subQuery}]
}

// SourcePanel is the display model of one sub-query's result.
type SourcePanel struct {
	SubQuery string
	Tool     string
	Icon     search.Icon
	Expanded bool
	Body     search.Classification
}

// Panels lists every source of a successful result in agent order.
func (p *Presentation) Panels(res *Result) []SourcePanel {
	if res == nil || res.Response == nil || !res.Response.Success {
		return nil
	}
	entries := res.Response.SearchResults.Entries()
	panels := make([]SourcePanel, 0, len(entries))
	for _, e := range entries {
		panels = append(panels, SourcePanel{
			SubQuery: e.SubQuery,
			Tool:     e.Result.Tool,
			Icon:     search.IconFor(e.Result.Tool),
			Expanded: p.Expanded(res.ID, e.SubQuery),
			Body:     search.Classify(e.Result),
		})
	}
	return panels
}
