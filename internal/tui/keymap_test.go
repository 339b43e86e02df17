package tui

import (
	"testing"

	"charm.land/bubbles/v2/key"
)

func TestParseBindingKeys(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		fallback string
		keys     []string
		help     string
	}{
		{name: "space aliases", raw: "space", fallback: ".", keys: []string{" ", "space"}, help: "space"},
		{name: "uppercase adds shift alias", raw: "A", fallback: "n", keys: []string{"A", "shift+a"}, help: "A"},
		{name: "chord lowercased for matching", raw: "Ctrl+N", fallback: "n", keys: []string{"ctrl+n"}, help: "Ctrl+N"},
		{name: "blank uses fallback", raw: "  ", fallback: "y", keys: []string{"y"}, help: "y"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			keys, help := parseBindingKeys(tc.raw, tc.fallback)
			if len(keys) != len(tc.keys) {
				t.Fatalf("keys = %#v, want %#v", keys, tc.keys)
			}
			for i := range keys {
				if keys[i] != tc.keys[i] {
					t.Fatalf("keys = %#v, want %#v", keys, tc.keys)
				}
			}
			if help != tc.help {
				t.Fatalf("help = %q, want %q", help, tc.help)
			}
		})
	}
}

func TestConfigureBinding(t *testing.T) {
	b := key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "add list"))
	configureBinding(&b, "a", "n", "add list")
	if keys := b.Keys(); len(keys) != 1 || keys[0] != "a" {
		t.Fatalf("unexpected keys %#v", keys)
	}
	if b.Help().Key != "a" || b.Help().Desc != "add list" {
		t.Fatalf("unexpected help %#v", b.Help())
	}
}

func TestKeyMapApplyConfigKeepsDefaultsForBlankFields(t *testing.T) {
	k := newKeyMap()
	k.applyConfig(KeyConfig{AddList: "a", Filter: "F"})

	if got := k.addList.Keys(); len(got) != 1 || got[0] != "a" {
		t.Fatalf("unexpected add keys %#v", got)
	}
	if got := k.filter.Keys(); len(got) != 2 || got[1] != "shift+f" {
		t.Fatalf("unexpected filter keys %#v", got)
	}
	if got := k.editList.Keys(); len(got) != 1 || got[0] != "e" {
		t.Fatalf("edit should keep its default, got %#v", got)
	}
	if got := k.actions.Keys(); len(got) != 2 || got[1] != "space" {
		t.Fatalf("actions should keep both defaults, got %#v", got)
	}
}

func TestListsModelUsesConfiguredKeys(t *testing.T) {
	m := activeModel(t, &fakeListService{lists: sampleLists()}, WithKeyConfig(KeyConfig{AddList: "a"}))
	m = applyMsg(t, m, keyRune('n'))
	if m.VisibleOverlay() != OverlayNone {
		t.Fatalf("default add key should be unbound, overlay=%v", m.VisibleOverlay())
	}
	m = applyMsg(t, m, keyRune('a'))
	if m.VisibleOverlay() != OverlayCreate {
		t.Fatalf("expected create overlay, got %v", m.VisibleOverlay())
	}
}
