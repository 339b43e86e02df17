package tui

import (
	"strings"
	"unicode"

	"charm.land/bubbles/v2/key"
)

// KeyConfig overrides single-key bindings of the lists controller. Blank fields keep defaults.
type KeyConfig struct {
	AddList    string
	EditList   string
	DeleteList string
	CopyID     string
	Actions    string
	Filter     string
	Reload     string
}

// keyMap holds the lists controller bindings.
type keyMap struct {
	close      key.Binding
	reload     key.Binding
	toggleHelp key.Binding
	moveUp     key.Binding
	moveDown   key.Binding
	addList    key.Binding
	openList   key.Binding
	editList   key.Binding
	deleteList key.Binding
	copyID     key.Binding
	actions    key.Binding
	filter     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		close:      key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q/esc", "close")),
		reload:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		toggleHelp: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		moveUp:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "list up")),
		moveDown:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "list down")),
		addList:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "add list")),
		openList:   key.NewBinding(key.WithKeys("enter", "i"), key.WithHelp("enter", "open")),
		editList:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		deleteList: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		copyID:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy id")),
		actions:    key.NewBinding(key.WithKeys(".", "space"), key.WithHelp(".", "actions")),
		filter:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	}
}

// ShortHelp handles short help.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.addList, k.openList, k.editList, k.actions, k.filter, k.toggleHelp, k.close}
}

// FullHelp handles full help.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.addList, k.openList, k.editList, k.deleteList, k.copyID, k.actions},
		{k.moveUp, k.moveDown, k.filter, k.reload},
		{k.toggleHelp, k.close},
	}
}

// detailHelp lists the bindings shown inside the detail overlay.
func (k keyMap) detailHelp() []key.Binding {
	return []key.Binding{k.editList, k.deleteList, k.copyID, k.close}
}

// applyConfig rebinds the configurable actions, keeping each default help description.
func (k *keyMap) applyConfig(cfg KeyConfig) {
	configureBinding(&k.addList, cfg.AddList, "n", "add list")
	configureBinding(&k.editList, cfg.EditList, "e", "edit")
	configureBinding(&k.deleteList, cfg.DeleteList, "d", "delete")
	configureBinding(&k.copyID, cfg.CopyID, "y", "copy id")
	configureBinding(&k.filter, cfg.Filter, "/", "filter")
	configureBinding(&k.reload, cfg.Reload, "r", "reload")
	if strings.TrimSpace(cfg.Actions) != "" {
		configureBinding(&k.actions, cfg.Actions, ".", "actions")
	}
}

// configureBinding replaces b's keys with raw, or fallback when raw is blank.
func configureBinding(b *key.Binding, raw, fallback, desc string) {
	keys, help := parseBindingKeys(raw, fallback)
	b.SetKeys(keys...)
	b.SetHelp(help, desc)
}

// parseBindingKeys returns the key strings matched for raw and its help label.
// Uppercase letters also match their shift+ form and "space" matches a literal space.
func parseBindingKeys(raw, fallback string) ([]string, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = fallback
	}
	if strings.EqualFold(raw, "space") {
		return []string{" ", "space"}, "space"
	}
	runes := []rune(raw)
	if len(runes) == 1 {
		if unicode.IsUpper(runes[0]) {
			return []string{raw, "shift+" + string(unicode.ToLower(runes[0]))}, raw
		}
		return []string{raw}, raw
	}
	return []string{strings.ToLower(raw)}, raw
}
