package tui

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/hylla/wishlist/internal/domain"
)

func TestListFormPrefillsFromList(t *testing.T) {
	form, _ := newListForm(&domain.List{ID: "1", Name: "Books", Description: "to read", Public: true})
	got := form.values()
	if got.Name != "Books" || got.Description != "to read" || !got.Public {
		t.Fatalf("unexpected values %#v", got)
	}
	if form.title != "Edit list" || form.focus != formFieldName {
		t.Fatalf("unexpected form state title=%q focus=%d", form.title, form.focus)
	}
}

func TestListFormFocusCyclesAndSubmitsOnLastField(t *testing.T) {
	form, _ := newListForm(nil)
	var action formAction
	form, _, action = form.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if action != formActionNone || form.focus != formFieldDescription {
		t.Fatalf("enter should advance focus, got focus=%d action=%d", form.focus, action)
	}
	form, _, _ = form.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if form.focus != formFieldPublic {
		t.Fatalf("expected public focus, got %d", form.focus)
	}
	form, _, _ = form.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if form.focus != formFieldName {
		t.Fatalf("tab should wrap to name, got %d", form.focus)
	}
	form, _, _ = form.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if form.focus != formFieldPublic {
		t.Fatalf("shift+tab should wrap to public, got %d", form.focus)
	}
	_, _, action = form.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if action != formActionSubmit {
		t.Fatalf("enter on the last field should submit, got %d", action)
	}
}

func TestListFormTogglesVisibilityOnlyOnPublicField(t *testing.T) {
	form, _ := newListForm(nil)
	form, _, _ = form.Update(keyRune('x'))
	if form.public || form.values().Name != "x" {
		t.Fatalf("x on the name field is text, got %#v", form.values())
	}
	form.focusField(formFieldPublic)
	form, _, _ = form.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	if !form.public {
		t.Fatal("space should toggle public")
	}
	form, _, _ = form.Update(keyRune('x'))
	if form.public {
		t.Fatal("x should toggle public back")
	}
}

func TestListFormValidation(t *testing.T) {
	form, _ := newListForm(nil)
	if got := form.validate(); got != "name is required" {
		t.Fatalf("unexpected validation %q", got)
	}
	form.name.CharLimit = 0
	form.name.SetValue(strings.Repeat("a", domain.MaxListNameLength+1))
	if got := form.validate(); got != "name is too long" {
		t.Fatalf("unexpected validation %q", got)
	}
	form.name.SetValue("  Gifts  ")
	if got := form.validate(); got != "" || form.values().Name != "Gifts" {
		t.Fatalf("expected trimmed valid name, got %q %q", got, form.values().Name)
	}
}

func TestListFormIgnoresInputWhileSubmitting(t *testing.T) {
	form, _ := newListForm(nil)
	form.submitting = true
	form, _, action := form.Update(keyRune('a'))
	if action != formActionNone || form.values().Name != "" {
		t.Fatalf("input while submitting must be ignored, got %#v", form.values())
	}
	_, _, action = form.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if action != formActionCancel {
		t.Fatalf("esc should still cancel, got %d", action)
	}
}

func TestListFormViewShowsState(t *testing.T) {
	form, _ := newListForm(nil)
	form.err = "list limit reached"
	view := form.View(60, lipgloss.Color("62"), lipgloss.Color("241"))
	for _, want := range []string{"New list", "[ ] public", "list limit reached"} {
		if !strings.Contains(view, want) {
			t.Fatalf("form view missing %q: %q", want, view)
		}
	}
	form.submitting = true
	if view := form.View(60, lipgloss.Color("62"), lipgloss.Color("241")); !strings.Contains(view, "saving...") {
		t.Fatalf("expected saving hint, got %q", view)
	}
}
