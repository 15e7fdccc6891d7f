// Package render turns a session view into a terminal document.
package render

import (
	"fmt"
	"strings"

	"github.com/mikeboe/search-client/pkg/search"
	"github.com/mikeboe/search-client/pkg/session"
)

// Placeholder and label text.
const (
	NoAnswerText     = "No relevant information found"
	UnknownErrorText = "Unknown error"
	NoHistoryText    = "No searches yet"
	BusyText         = "Searching and analyzing related information..."
	TimeLayout       = "2006-01-02 15:04:05"
)

// Renderer renders session views. It holds no session state.
type Renderer struct {
	Markdown Formatter
}

func New(f Formatter) *Renderer {
	if f == nil {
		f = PlainFormatter{}
	}
	return &Renderer{Markdown: f}
}

// Render draws the result area followed by the history list.
func (r *Renderer) Render(v session.View) string {
	var b strings.Builder
	b.WriteString(r.Results(v, -1))
	b.WriteString("\n")
	b.WriteString(r.History(v))
	return b.String()
}

// Results draws status, answer and sources. selected highlights one source
// panel; pass -1 for none.
func (r *Renderer) Results(v session.View, selected int) string {
	var b strings.Builder

	if v.Busy {
		b.WriteString(busyStyle.Render("⠿ " + BusyText))
		b.WriteString("\n")
	}
	if v.Current == nil {
		return b.String()
	}

	resp := v.Current.Response
	var head strings.Builder
	if resp.Success {
		head.WriteString(successStyle.Render("✔ Search results"))
		if resp.Iterations != nil && *resp.Iterations > 0 {
			head.WriteString("\n")
			head.WriteString(subtitleStyle.Render(fmt.Sprintf("After %d rounds of iterative search", *resp.Iterations)))
		}
		head.WriteString("\n\n")
		head.WriteString(r.answer(resp))
	} else {
		head.WriteString(errorStyle.Bold(true).Render("✘ Search failed"))
		head.WriteString("\n\n")
		msg := resp.Error
		if msg == "" {
			msg = UnknownErrorText
		}
		head.WriteString(errorStyle.Render(msg))
	}
	b.WriteString(boxStyle.Render(strings.TrimRight(head.String(), "\n")))
	b.WriteString("\n")

	if resp.Success && len(v.Panels) > 0 {
		b.WriteString(sectionStyle.Render("Sources"))
		b.WriteString("\n")
		for i, p := range v.Panels {
			b.WriteString(r.panel(p, i == selected))
		}
	}
	return b.String()
}

func (r *Renderer) answer(resp *search.SearchResponse) string {
	text := NoAnswerText
	if resp.Answer != nil && *resp.Answer != "" {
		text = *resp.Answer
	}
	out, err := r.Markdown.Format(text)
	if err != nil {
		return text
	}
	return strings.TrimSpace(out)
}

func (r *Renderer) panel(p session.SourcePanel, selected bool) string {
	chevron := "▾"
	if p.Expanded {
		chevron = "▴"
	}
	header := fmt.Sprintf("%s %s %s  %s", chevron, Glyph(p.Icon), p.SubQuery, subtitleStyle.Render("via "+p.Tool))

	var b strings.Builder
	if selected {
		b.WriteString(selectedPanelStyle.Render("› " + header))
	} else {
		b.WriteString(panelHeaderStyle.Render("  " + header))
	}
	b.WriteString("\n")

	if !p.Expanded {
		return b.String()
	}

	switch p.Body.Kind {
	case search.KindError:
		b.WriteString(panelBodyStyle.Render(errorStyle.Render("Error: " + p.Body.Text)))
	case search.KindStructured:
		b.WriteString(structuredStyle.Render(p.Body.Text))
	default:
		b.WriteString(panelBodyStyle.Render(p.Body.Text))
	}
	b.WriteString("\n")
	return b.String()
}

// History draws the recent searches, newest first.
func (r *Renderer) History(v session.View) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("History"))
	b.WriteString("\n")
	if len(v.History) == 0 {
		b.WriteString(subtitleStyle.Render(NoHistoryText))
		b.WriteString("\n")
		return b.String()
	}
	for _, h := range v.History {
		b.WriteString("  " + h.Query)
		if !h.Timestamp.IsZero() {
			b.WriteString("  " + subtitleStyle.Render(h.Timestamp.Local().Format(TimeLayout)))
		}
		b.WriteString("\n")
	}
	return b.String()
}
