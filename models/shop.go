// models/shop.go
package models

import "time"

// ItemCategory classifies a shop item.
type ItemCategory string

const (
	ItemCategoryRole       ItemCategory = "role"
	ItemCategoryBadge      ItemCategory = "badge"
	ItemCategoryConsumable ItemCategory = "consumable"
)

// Valid reports whether the category is one of the known values.
func (c ItemCategory) Valid() bool {
	switch c {
	case ItemCategoryRole, ItemCategoryBadge, ItemCategoryConsumable:
		return true
	}
	return false
}

// Consumable items may be purchased repeatedly; everything else is
// one-per-member.
func (c ItemCategory) Consumable() bool {
	return c == ItemCategoryConsumable
}

// ShopItem is a purchasable catalog entry, scoped to one community.
type ShopItem struct {
	ID        string       `json:"id"` // slug derived from the name
	Name      string       `json:"name"`
	Price     int64        `json:"price"` // always >= 1
	Category  ItemCategory `json:"category"`
	RoleID    string       `json:"role_id,omitempty"` // granted on purchase for role items
	CreatedAt time.Time    `json:"created_at"`
}

// InventoryEntry records one purchase of an item by a member.
type InventoryEntry struct {
	PurchasedAt time.Time `json:"purchased_at"`
}
