package tui

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/hylla/wishlist/internal/domain"
)

// detailItemWindow caps how many items the detail overlay lists.
const detailItemWindow = 12

// renderDetail draws the drill-down view of lists[index].
func (m ListsModel) renderDetail(index, width int, accent, muted color.Color) string {
	list := m.lists[index]
	boxWidth := clamp(width, 36, 88)
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1).
		Width(boxWidth)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(accent)
	hintStyle := lipgloss.NewStyle().Foreground(muted)

	title := titleStyle.Render(list.Name)
	if index == 0 {
		title += " " + hintStyle.Render("(default)")
	}
	visibility := "private"
	if list.Public {
		visibility = "public"
	}
	count := itemCountLabel(list.ItemCount())
	if qty := list.TotalQuantity(); qty != list.ItemCount() {
		count += fmt.Sprintf(" (%d total)", qty)
	}
	lines := []string{
		title,
		hintStyle.Render(visibility + " • " + count + " • updated " + list.UpdatedAt.Local().Format("2006-01-02 15:04")),
		"",
	}
	lines = append(lines, renderItems(list.Items, boxWidth-4, hintStyle)...)
	if desc := m.md.render(list.Description, boxWidth-4); desc != "" {
		lines = append(lines, "", desc)
	}

	hints := make([]string, 0, 4)
	for _, binding := range m.keys.detailHelp() {
		h := binding.Help()
		hints = append(hints, h.Key+" "+h.Desc)
	}
	lines = append(lines, "", hintStyle.Render(strings.Join(hints, " • ")))
	return boxStyle.Render(strings.Join(lines, "\n"))
}

// renderItems lays out saved items as aligned rows.
func renderItems(items []domain.Item, width int, hintStyle lipgloss.Style) []string {
	if len(items) == 0 {
		return []string{hintStyle.Render("(no saved items)")}
	}
	nameWidth := clamp(width-18, 10, 48)
	out := []string{hintStyle.Render(fmt.Sprintf("%-*s  %-10s  %s", nameWidth, "item", "sku", "qty"))}
	for idx, item := range items {
		if idx >= detailItemWindow {
			out = append(out, hintStyle.Render(fmt.Sprintf("… %d more", len(items)-idx)))
			break
		}
		label := item.Name
		if strings.TrimSpace(label) == "" {
			label = item.ProductID
		}
		sku := item.SKU
		if sku == "" {
			sku = "-"
		}
		out = append(out, fmt.Sprintf("%-*s  %-10s  %d", nameWidth, truncate(label, nameWidth), truncate(sku, 10), item.Quantity))
	}
	return out
}
