package domain

import (
	"strings"
	"time"
)

// Item is one saved product on a list.
type Item struct {
	ID        string    `json:"id" toml:"id"`
	ProductID string    `json:"product_id" toml:"product_id"`
	SKU       string    `json:"sku,omitempty" toml:"sku,omitempty"`
	Name      string    `json:"name,omitempty" toml:"name,omitempty"`
	Quantity  int       `json:"quantity" toml:"quantity"`
	AddedAt   time.Time `json:"added_at" toml:"added_at"`
}

// sameProduct reports whether two items point at the same product variant.
func (i Item) sameProduct(other Item) bool {
	return i.ProductID == other.ProductID && i.SKU == other.SKU
}

// normalizeItem trims fields and applies the default quantity.
func normalizeItem(item Item, now time.Time) (Item, error) {
	item.ID = strings.TrimSpace(item.ID)
	item.ProductID = strings.TrimSpace(item.ProductID)
	item.SKU = strings.TrimSpace(item.SKU)
	item.Name = strings.TrimSpace(item.Name)
	if item.ID == "" {
		return Item{}, ErrInvalidID
	}
	if item.ProductID == "" {
		return Item{}, ErrInvalidProductID
	}
	if item.Quantity == 0 {
		item.Quantity = 1
	}
	if item.Quantity < 0 {
		return Item{}, ErrInvalidQuantity
	}
	if item.AddedAt.IsZero() {
		item.AddedAt = now.UTC()
	} else {
		item.AddedAt = item.AddedAt.UTC()
	}
	return item, nil
}
