// Package menuoptions renders a small trigger that reveals caller-supplied actions in a popover.
package menuoptions

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// DefaultIconSize is the cell width of the trigger when New receives size <= 0.
const DefaultIconSize = 16

// triggerGlyph marks a row that has actions.
const triggerGlyph = "⋯"

// Option is one selectable action. Effect may be nil.
type Option struct {
	Label  string
	Effect func() tea.Cmd
}

type keyMap struct {
	up     key.Binding
	down   key.Binding
	choose key.Binding
	close  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "previous")),
		down:   key.NewBinding(key.WithKeys("j", "down", "tab"), key.WithHelp("j/↓", "next")),
		choose: key.NewBinding(key.WithKeys("enter", "space"), key.WithHelp("enter", "choose")),
		close:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	}
}

// Model is the popover state.
type Model struct {
	options     []Option
	size        int
	showContent bool
	cursor      int
	keys        keyMap
}

// New constructs a closed popover over options.
func New(options []Option, size int) Model {
	if size <= 0 {
		size = DefaultIconSize
	}
	return Model{
		options: append([]Option(nil), options...),
		size:    size,
		keys:    newKeyMap(),
	}
}

// Size returns the trigger cell width.
func (m Model) Size() int {
	return m.size
}

// Options returns a copy of the configured options.
func (m Model) Options() []Option {
	return append([]Option(nil), m.options...)
}

// IsOpen reports whether the option content is shown.
func (m Model) IsOpen() bool {
	return m.showContent
}

// Open shows the content with the cursor on the first option.
func (m *Model) Open() {
	m.showContent = true
	m.cursor = 0
}

// Close hides the content.
func (m *Model) Close() {
	m.showContent = false
}

// Toggle flips content visibility.
func (m *Model) Toggle() {
	if m.showContent {
		m.Close()
		return
	}
	m.Open()
}

// Cursor returns the highlighted option index.
func (m Model) Cursor() int {
	return m.cursor
}

// Update routes keys while open. A chosen option closes the popover and runs its effect.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.showContent {
		return m, nil
	}
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.close):
		m.Close()
		return m, nil
	case key.Matches(keyMsg, m.keys.up):
		if len(m.options) > 0 {
			m.cursor = (m.cursor - 1 + len(m.options)) % len(m.options)
		}
		return m, nil
	case key.Matches(keyMsg, m.keys.down):
		if len(m.options) > 0 {
			m.cursor = (m.cursor + 1) % len(m.options)
		}
		return m, nil
	case key.Matches(keyMsg, m.keys.choose):
		return m.choose(m.cursor)
	}
	if text := keyMsg.String(); len(text) == 1 && text[0] >= '1' && text[0] <= '9' {
		return m.choose(int(text[0] - '1'))
	}
	return m, nil
}

func (m Model) choose(idx int) (Model, tea.Cmd) {
	if idx < 0 || idx >= len(m.options) {
		return m, nil
	}
	m.Close()
	effect := m.options[idx].Effect
	if effect == nil {
		return m, nil
	}
	return m, effect()
}

// View renders the trigger when closed and the option box when open.
func (m Model) View() string {
	accent := lipgloss.Color("62")
	muted := lipgloss.Color("241")
	if !m.showContent {
		return lipgloss.NewStyle().Foreground(muted).Width(m.size).Render(triggerGlyph)
	}

	width := m.size
	for idx, option := range m.options {
		width = max(width, lipgloss.Width(optionLine(idx, option.Label))+2)
	}
	selected := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	lines := make([]string, 0, len(m.options))
	for idx, option := range m.options {
		line := optionLine(idx, option.Label)
		if idx == m.cursor {
			line = selected.Render("› " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(muted).Render("(no actions)"))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1).
		Width(width + 2).
		Render(strings.Join(lines, "\n"))
}

func optionLine(idx int, label string) string {
	if idx < 9 {
		return fmt.Sprintf("%d %s", idx+1, label)
	}
	return "  " + label
}
