package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const (
	minDescriptionWrap = 24
	maxDescriptionWrap = 96
)

// markdownRenderer turns list descriptions into styled text for the detail overlay.
// The detail view re-renders every frame, so the last result is memoized per source and width.
type markdownRenderer struct {
	style string

	term     *glamour.TermRenderer
	termWrap int

	lastSource string
	lastWrap   int
	lastOut    string
}

func newMarkdownRenderer(style string) *markdownRenderer {
	if style = strings.TrimSpace(style); style == "" {
		style = "dark"
	}
	return &markdownRenderer{style: style}
}

func descriptionWrap(width int) int {
	return min(max(width, minDescriptionWrap), maxDescriptionWrap)
}

// render returns "" for blank input and the trimmed source when glamour cannot render it.
func (r *markdownRenderer) render(source string, width int) string {
	source = strings.TrimSpace(source)
	if source == "" {
		return ""
	}
	wrap := descriptionWrap(width)
	if r.lastOut != "" && r.lastSource == source && r.lastWrap == wrap {
		return r.lastOut
	}

	term, err := r.termFor(wrap)
	if err != nil {
		return source
	}
	out, err := term.Render(source)
	if err != nil {
		return source
	}
	r.lastSource, r.lastWrap, r.lastOut = source, wrap, strings.TrimRight(out, "\n")
	return r.lastOut
}

func (r *markdownRenderer) termFor(wrap int) (*glamour.TermRenderer, error) {
	if r.term != nil && r.termWrap == wrap {
		return r.term, nil
	}
	styleOpt := glamour.WithStandardStyle(r.style)
	if r.style == "auto" {
		styleOpt = glamour.WithAutoStyle()
	}
	term, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(wrap))
	if err != nil {
		return nil, err
	}
	r.term, r.termWrap = term, wrap
	return term, nil
}
