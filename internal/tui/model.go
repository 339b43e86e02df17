package tui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// listsClosedMsg asks the shell to unmount the lists controller.
type listsClosedMsg struct{}

type shellKeyMap struct {
	openLists key.Binding
	quit      key.Binding
}

func newShellKeyMap() shellKeyMap {
	return shellKeyMap{
		openLists: key.NewBinding(key.WithKeys("l", "enter"), key.WithHelp("l", "my lists")),
		quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp handles short help.
func (k shellKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.openLists, k.quit}
}

// FullHelp handles full help.
func (k shellKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// Model is the root program: a home screen that mounts the lists controller on demand.
type Model struct {
	svc  ListService
	opts options

	width  int
	height int

	help      help.Model
	keys      shellKeyMap
	lists     ListsModel
	showLists bool
}

// NewModel constructs the shell over svc.
func NewModel(svc ListService, opts ...Option) Model {
	o := applyOptions(opts)
	// Every controller shares the shell's document so the modal marker is visible here.
	shared := append(append([]Option(nil), opts...), WithDocument(o.document))
	onClose := func() tea.Cmd {
		return func() tea.Msg { return listsClosedMsg{} }
	}
	return Model{
		svc:   svc,
		opts:  o,
		help:  help.New(),
		keys:  newShellKeyMap(),
		lists: NewListsModel(svc, onClose, shared...),
	}
}

// Document returns the host document the controller writes its modal class to.
func (m Model) Document() *Document {
	return m.opts.document
}

// ListsOpen reports whether the lists controller is mounted.
func (m Model) ListsOpen() bool {
	return m.showLists
}

// Init handles init.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update routes messages to the mounted controller. Async results always reach it so it can drop stale ones.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		var cmd tea.Cmd
		m.lists, cmd = m.lists.Update(msg)
		return m, cmd

	case listsClosedMsg:
		m.lists.Deactivate()
		m.showLists = false
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			m.lists.Deactivate()
			m.showLists = false
			return m, tea.Quit
		}
		if m.showLists {
			var cmd tea.Cmd
			m.lists, cmd = m.lists.Update(msg)
			return m, cmd
		}
		switch {
		case key.Matches(msg, m.keys.openLists):
			m.showLists = true
			cmd := m.lists.Activate()
			return m, cmd
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.lists, cmd = m.lists.Update(msg)
	return m, cmd
}

// View handles view.
func (m Model) View() tea.View {
	var content string
	if m.showLists {
		content = m.lists.View()
	} else {
		content = m.homeView()
	}
	if m.opts.document.HasClass(ModalOpenClass) {
		marker := lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Render("● " + ModalOpenClass)
		content = marker + "\n" + content
	}
	v := tea.NewView(content)
	v.AltScreen = true
	return v
}

func (m Model) homeView() string {
	muted := lipgloss.Color("241")
	dim := lipgloss.Color("239")
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	hintStyle := lipgloss.NewStyle().Foreground(muted)

	visitor := "anonymous"
	if m.svc != nil && strings.TrimSpace(m.svc.VisitorID()) != "" {
		visitor = m.svc.VisitorID()
	}
	sections := []string{
		titleStyle.Render("wishlist"),
		"",
		"Signed in as " + visitor + ".",
	}
	if !m.lists.Loading() {
		sections = append(sections, hintStyle.Render(fmt.Sprintf("%s saved last time.", pluralLists(len(m.lists.lists)))))
	}
	sections = append(sections, "", "Press l to open your lists.")
	content := strings.Join(sections, "\n")

	helpBubble := m.help
	helpBubble.SetWidth(max(0, m.width-2))
	helpLine := lipgloss.NewStyle().
		Foreground(muted).
		BorderTop(true).
		BorderForeground(dim).
		Padding(0, 1).
		Width(max(0, m.width)).
		Render(helpBubble.View(m.keys))
	if m.height > 0 {
		content = fitLines(content, max(0, m.height-lipgloss.Height(helpLine)-1))
	}
	return content + "\n" + helpLine
}

func pluralLists(n int) string {
	if n == 1 {
		return "1 list"
	}
	return fmt.Sprintf("%d lists", n)
}
