package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MaxListNameLength bounds list names in runes.
const MaxListNameLength = 120

// List is a named collection of saved items owned by one visitor.
type List struct {
	ID          string    `json:"id" toml:"id"`
	OwnerID     string    `json:"owner_id" toml:"owner_id"`
	Name        string    `json:"name" toml:"name"`
	Description string    `json:"description,omitempty" toml:"description,omitempty"`
	Public      bool      `json:"public" toml:"public"`
	Items       []Item    `json:"items" toml:"items"`
	CreatedAt   time.Time `json:"created_at" toml:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" toml:"updated_at"`
}

// ListInput holds the caller-provided fields for a new list.
type ListInput struct {
	ID          string
	OwnerID     string
	Name        string
	Description string
	Public      bool
}

// NewList validates input and constructs a list with no items.
func NewList(in ListInput, now time.Time) (List, error) {
	in.ID = strings.TrimSpace(in.ID)
	in.OwnerID = strings.TrimSpace(in.OwnerID)
	if in.ID == "" {
		return List{}, ErrInvalidID
	}
	if in.OwnerID == "" {
		return List{}, ErrInvalidOwnerID
	}
	name, err := normalizeListName(in.Name)
	if err != nil {
		return List{}, err
	}
	ts := now.UTC()
	return List{
		ID:          in.ID,
		OwnerID:     in.OwnerID,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Public:      in.Public,
		Items:       []Item{},
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}, nil
}

// Rename changes the display name.
func (l *List) Rename(name string, now time.Time) error {
	name, err := normalizeListName(name)
	if err != nil {
		return err
	}
	l.Name = name
	l.UpdatedAt = now.UTC()
	return nil
}

// UpdateDetails replaces name, description and visibility together.
func (l *List) UpdateDetails(name, description string, public bool, now time.Time) error {
	name, err := normalizeListName(name)
	if err != nil {
		return err
	}
	l.Name = name
	l.Description = strings.TrimSpace(description)
	l.Public = public
	l.UpdatedAt = now.UTC()
	return nil
}

// AddItem appends an item. Adding a product/sku pair already on the list
// bumps its quantity instead.
func (l *List) AddItem(item Item, now time.Time) error {
	item, err := normalizeItem(item, now)
	if err != nil {
		return err
	}
	for i := range l.Items {
		if l.Items[i].sameProduct(item) {
			l.Items[i].Quantity += item.Quantity
			l.UpdatedAt = now.UTC()
			return nil
		}
		if l.Items[i].ID == item.ID {
			return ErrDuplicateItem
		}
	}
	l.Items = append(l.Items, item)
	l.UpdatedAt = now.UTC()
	return nil
}

// RemoveItem drops the item with the given id.
func (l *List) RemoveItem(itemID string, now time.Time) error {
	itemID = strings.TrimSpace(itemID)
	for i := range l.Items {
		if l.Items[i].ID != itemID {
			continue
		}
		l.Items = append(l.Items[:i], l.Items[i+1:]...)
		l.UpdatedAt = now.UTC()
		return nil
	}
	return ErrItemNotFound
}

// ItemCount returns the number of distinct saved items.
func (l List) ItemCount() int {
	return len(l.Items)
}

// TotalQuantity sums quantities across items.
func (l List) TotalQuantity() int {
	total := 0
	for _, item := range l.Items {
		total += item.Quantity
	}
	return total
}

// Clone returns a copy that shares no item storage with l.
func (l List) Clone() List {
	out := l
	if l.Items != nil {
		out.Items = append([]Item(nil), l.Items...)
	}
	return out
}

// normalizeListName trims and bounds a list name.
func normalizeListName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > MaxListNameLength {
		return "", ErrInvalidName
	}
	return name, nil
}
