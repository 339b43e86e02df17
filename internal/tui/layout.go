package tui

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

const ellipsis = "…"

// clamp bounds v to [lo, hi]; when hi < lo the result is lo.
func clamp(v, lo, hi int) int {
	return max(lo, min(v, max(lo, hi)))
}

// fitLines returns content with exactly n lines, marking a cut with an ellipsis row.
func fitLines(content string, n int) string {
	if n <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	if len(lines) > n {
		lines = append(lines[:n-1], ellipsis)
	}
	for len(lines) < n {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// overlayOnContent draws overlay centred over base, which is first fitted to height rows.
func overlayOnContent(base, overlay string, width, height int) string {
	if strings.TrimSpace(overlay) == "" {
		return base
	}
	if width <= 0 || height <= 0 {
		return overlay + "\n\n" + base
	}
	x := max(0, (width-lipgloss.Width(overlay))/2)
	y := max(0, (height-lipgloss.Height(overlay))/2)
	// A bare layer clears the whole canvas when composed; the compositor confines each layer to its own bounds.
	layers := lipgloss.NewCompositor(
		lipgloss.NewLayer(fitLines(base, height)),
		lipgloss.NewLayer(overlay).X(x).Y(y).Z(1),
	)
	return lipgloss.NewCanvas(width, height).Compose(layers).Render()
}

// truncate shortens s to at most w terminal cells, escape sequences and wide runes included.
func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= w {
		return s
	}
	if w == 1 {
		return ansi.Truncate(s, 1, "")
	}
	return ansi.Truncate(s, w, ellipsis)
}
