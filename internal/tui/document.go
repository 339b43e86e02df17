package tui

import (
	"slices"
	"strings"
)

// ModalOpenClass is held on the host document while the lists controller is active.
const ModalOpenClass = "wishlist-modal-open"

// Document is the host surface's class set. A nil Document ignores every call.
type Document struct {
	classes map[string]struct{}
}

// NewDocument constructs an empty class set.
func NewDocument() *Document {
	return &Document{classes: map[string]struct{}{}}
}

// AddClass adds name; adding a present class is a no-op.
func (d *Document) AddClass(name string) {
	name = strings.TrimSpace(name)
	if d == nil || name == "" {
		return
	}
	if d.classes == nil {
		d.classes = map[string]struct{}{}
	}
	d.classes[name] = struct{}{}
}

// RemoveClass removes name; removing an absent class is a no-op.
func (d *Document) RemoveClass(name string) {
	if d == nil {
		return
	}
	delete(d.classes, strings.TrimSpace(name))
}

// HasClass reports whether name is present.
func (d *Document) HasClass(name string) bool {
	if d == nil {
		return false
	}
	_, ok := d.classes[strings.TrimSpace(name)]
	return ok
}

// Classes returns the present classes sorted.
func (d *Document) Classes() []string {
	if d == nil {
		return nil
	}
	out := make([]string, 0, len(d.classes))
	for name := range d.classes {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}
