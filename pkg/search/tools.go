package search

// Tool identities the agent reports for each sub-query.
const (
	ToolArxiv         = "arxiv_search"
	ToolWikipedia     = "wikipedia_search"
	ToolGoogleScholar = "google_scholar_search"
	ToolGoogle        = "google_search"
	ToolUnknown       = "unknown"
)

// Icon is the visual category of a source.
type Icon int

const (
	IconGeneric Icon = iota
	IconPaper
	IconEncyclopedia
	IconScholar
	IconWeb
)

func (i Icon) String() string {
	switch i {
	case IconPaper:
		return "paper"
	case IconEncyclopedia:
		return "encyclopedia"
	case IconScholar:
		return "scholar"
	case IconWeb:
		return "web"
	default:
		return "generic"
	}
}

// IconFor never fails: unrecognized tools get IconGeneric.
func IconFor(tool string) Icon {
	switch tool {
	case ToolArxiv:
		return IconPaper
	case ToolWikipedia:
		return IconEncyclopedia
	case ToolGoogleScholar:
		return IconScholar
	case ToolGoogle:
		return IconWeb
	default:
		return IconGeneric
	}
}
