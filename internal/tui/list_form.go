package tui

import (
	"image/color"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/hylla/wishlist/internal/domain"
)

const (
	formFieldName = iota
	formFieldDescription
	formFieldPublic
	formFieldCount
)

// formAction is what a key asked the form's host to do.
type formAction int

const (
	formActionNone formAction = iota
	formActionSubmit
	formActionCancel
)

// listForm edits the name, description and visibility of one list.
type listForm struct {
	title      string
	name       textinput.Model
	desc       textinput.Model
	public     bool
	focus      int
	err        string
	submitting bool
}

// listFormValues is what a submitted form carries.
type listFormValues struct {
	Name        string
	Description string
	Public      bool
}

// newListForm builds a form, prefilled from list when editing.
func newListForm(list *domain.List) (listForm, tea.Cmd) {
	f := listForm{
		title: "New list",
		name:  newModalInput("name: ", "Birthday ideas", "", domain.MaxListNameLength),
		desc:  newModalInput("notes: ", "markdown supported", "", 1000),
	}
	if list != nil {
		f.title = "Edit list"
		f.name.SetValue(list.Name)
		f.desc.SetValue(list.Description)
		f.public = list.Public
	}
	cmd := f.focusField(formFieldName)
	return f, cmd
}

func newModalInput(prompt, placeholder, value string, limit int) textinput.Model {
	in := textinput.New()
	in.Prompt = prompt
	in.Placeholder = placeholder
	in.CharLimit = limit
	if value != "" {
		in.SetValue(value)
	}
	return in
}

// focusField moves focus and returns the cursor blink command of the focused input.
func (f *listForm) focusField(idx int) tea.Cmd {
	f.focus = clamp(idx, 0, formFieldCount-1)
	f.name.Blur()
	f.desc.Blur()
	switch f.focus {
	case formFieldName:
		return f.name.Focus()
	case formFieldDescription:
		return f.desc.Focus()
	default:
		return nil
	}
}

func (f listForm) values() listFormValues {
	return listFormValues{
		Name:        strings.TrimSpace(f.name.Value()),
		Description: strings.TrimSpace(f.desc.Value()),
		Public:      f.public,
	}
}

// validate reports the first problem that would make the remote reject the form.
func (f listForm) validate() string {
	name := f.values().Name
	switch {
	case name == "":
		return "name is required"
	case len([]rune(name)) > domain.MaxListNameLength:
		return "name is too long"
	default:
		return ""
	}
}

// Update routes one key and reports whether the host should submit or close.
func (f listForm) Update(msg tea.KeyPressMsg) (listForm, tea.Cmd, formAction) {
	if f.submitting {
		if msg.String() == "esc" {
			return f, nil, formActionCancel
		}
		return f, nil, formActionNone
	}
	switch msg.String() {
	case "esc":
		return f, nil, formActionCancel
	case "ctrl+s":
		return f, nil, formActionSubmit
	case "tab", "down":
		cmd := f.focusField((f.focus + 1) % formFieldCount)
		return f, cmd, formActionNone
	case "shift+tab", "up":
		cmd := f.focusField((f.focus - 1 + formFieldCount) % formFieldCount)
		return f, cmd, formActionNone
	case "enter":
		if f.focus == formFieldCount-1 {
			return f, nil, formActionSubmit
		}
		cmd := f.focusField(f.focus + 1)
		return f, cmd, formActionNone
	}

	var cmd tea.Cmd
	switch f.focus {
	case formFieldName:
		f.name, cmd = f.name.Update(msg)
	case formFieldDescription:
		f.desc, cmd = f.desc.Update(msg)
	case formFieldPublic:
		if s := msg.String(); s == "space" || s == "x" || s == "left" || s == "right" {
			f.public = !f.public
		}
	}
	f.err = ""
	return f, cmd, formActionNone
}

func (f listForm) View(width int, accent, muted color.Color) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1)
	if width > 0 {
		boxStyle = boxStyle.Width(clamp(width, 36, 72))
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(accent)
	hintStyle := lipgloss.NewStyle().Foreground(muted)
	focusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("212"))

	visibility := "[ ] public"
	if f.public {
		visibility = "[x] public"
	}
	if f.focus == formFieldPublic {
		visibility = focusStyle.Render(visibility)
	}
	lines := []string{
		titleStyle.Render(f.title),
		f.name.View(),
		f.desc.View(),
		visibility,
	}
	switch {
	case f.submitting:
		lines = append(lines, hintStyle.Render("saving..."))
	case f.err != "":
		lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")).Render(f.err))
	}
	lines = append(lines, hintStyle.Render("tab next • enter save • esc cancel"))
	return boxStyle.Render(strings.Join(lines, "\n"))
}
