package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mikeboe/search-client/pkg/search"
)

var (
	primaryColor = lipgloss.Color("#4F46E5") // Indigo
	successColor = lipgloss.Color("#22C55E")
	errorColor   = lipgloss.Color("#EF4444")
	mutedColor   = lipgloss.Color("#6C7086")
	fgColor      = lipgloss.Color("#CDD6F4")
	borderColor  = lipgloss.Color("#45475A")
	selectedBg   = lipgloss.Color("#313244")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(fgColor)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	successStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginTop(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	panelHeaderStyle = lipgloss.NewStyle().
				Foreground(fgColor)

	selectedPanelStyle = lipgloss.NewStyle().
				Foreground(fgColor).
				Background(selectedBg).
				Bold(true)

	panelBodyStyle = lipgloss.NewStyle().
			PaddingLeft(4)

	structuredStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			PaddingLeft(4)

	busyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B"))
)

type iconStyle struct {
	glyph string
	color lipgloss.Color
}

var icons = map[search.Icon]iconStyle{
	search.IconPaper:        {"📄", lipgloss.Color("#9333EA")},
	search.IconEncyclopedia: {"📖", lipgloss.Color("#2563EB")},
	search.IconScholar:      {"🎓", lipgloss.Color("#16A34A")},
	search.IconWeb:          {"🌐", lipgloss.Color("#EA580C")},
	search.IconGeneric:      {"🌐", lipgloss.Color("#4B5563")},
}

// Glyph returns the symbol drawn for an icon category.
func Glyph(i search.Icon) string {
	s, ok := icons[i]
	if !ok {
		s = icons[search.IconGeneric]
	}
	return lipgloss.NewStyle().Foreground(s.color).Render(s.glyph)
}
