package render

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// Formatter turns answer markup into a displayable document.
type Formatter interface {
	Format(markup string) (string, error)
}

// PlainFormatter returns markup unchanged.
type PlainFormatter struct{}

func (PlainFormatter) Format(markup string) (string, error) {
	return markup, nil
}

// MarkdownFormatter renders markdown for the terminal
type MarkdownFormatter struct {
	renderer *glamour.TermRenderer
}

// NewMarkdownFormatter creates a formatter; plain selects the colorless style.
func NewMarkdownFormatter(plain bool) (*MarkdownFormatter, error) {
	style := glamour.WithStandardStyle("dark")
	if plain {
		style = glamour.WithStandardStyle("notty")
	}

	renderer, err := glamour.NewTermRenderer(
		style,
		glamour.WithWordWrap(TerminalWidth()),
		glamour.WithEmoji(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return &MarkdownFormatter{renderer: renderer}, nil
}

func (f *MarkdownFormatter) Format(markup string) (string, error) {
	if markup == "" {
		return "", nil
	}
	out, err := f.renderer.Render(markup)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}

// TerminalWidth is the usable width of stdout, capped for readability.
func TerminalWidth() int {
	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w - 4
		if width > 120 {
			width = 120
		}
	}
	return width
}
