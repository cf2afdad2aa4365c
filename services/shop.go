// services/shop.go
package services

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"

	"guild-economy-system/models"
	"guild-economy-system/store"

	"github.com/gosimple/slug"
)

// ShopService manages the per-community item catalog and purchases.
type ShopService struct {
	Store *store.Repository
	Roles RoleGranter // nil disables grant intents (tests)
	now   func() time.Time
}

func NewShopService(repo *store.Repository, roles RoleGranter) *ShopService {
	return &ShopService{Store: repo, Roles: roles, now: time.Now}
}

// CreateItem adds a catalog entry. The item ID is the slug of its name;
// a colliding name is rejected rather than silently overwritten.
func (s *ShopService) CreateItem(communityID, name string, price int64, category models.ItemCategory, roleID string) (models.ShopItem, error) {
	name = strings.TrimSpace(name)
	if name == "" || price < 1 || !category.Valid() {
		return models.ShopItem{}, ErrInvalidArgument
	}
	if category == models.ItemCategoryRole && roleID == "" {
		return models.ShopItem{}, ErrInvalidArgument
	}

	item := models.ShopItem{
		ID:        slug.Make(name),
		Name:      name,
		Price:     price,
		Category:  category,
		RoleID:    roleID,
		CreatedAt: s.now().UTC(),
	}

	err := s.Store.UpdateCatalog(communityID, func(catalog map[string]models.ShopItem) error {
		if _, exists := catalog[item.ID]; exists {
			return ErrInvalidArgument
		}
		catalog[item.ID] = item
		return nil
	})
	if err != nil {
		return models.ShopItem{}, err
	}
	return item, nil
}

// RemoveItem deletes a catalog entry. Existing inventories keep their
// purchased copies.
func (s *ShopService) RemoveItem(communityID, itemID string) error {
	return s.Store.UpdateCatalog(communityID, func(catalog map[string]models.ShopItem) error {
		if _, exists := catalog[itemID]; !exists {
			return ErrNotFound
		}
		delete(catalog, itemID)
		return nil
	})
}

// ListItems returns the catalog sorted by item ID.
func (s *ShopService) ListItems(communityID string) []models.ShopItem {
	catalog := s.Store.GetCatalog(communityID)
	items := make([]models.ShopItem, 0, len(catalog))
	for _, item := range catalog {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

// PurchaseResult reports a completed purchase.
type PurchaseResult struct {
	Item  models.ShopItem `json:"item"`
	Coins int64           `json:"coins"`
	Owned int             `json:"owned"`
}

// Buy debits the wallet and records the inventory entry in one atomic
// transform. Non-consumable items deny a second purchase with AlreadyOwned;
// consumables repeat and debit every time. A role-category purchase emits a
// grant intent after commit; intent failure is logged only.
func (s *ShopService) Buy(ctx context.Context, communityID, memberID, itemID string) (PurchaseResult, error) {
	var item models.ShopItem
	owned := 0
	rec, err := s.Store.Purchase(communityID, memberID, itemID, s.now().UTC(), func(rec *models.MemberRecord, ownedCopies int) error {
		// Read the catalog entry inside the transform so the debit uses
		// the price in effect at commit time. Catalog writes are not
		// serialized with the purchase, only read freshly here.
		var ok bool
		item, ok = s.Store.GetItem(communityID, itemID)
		if !ok {
			return ErrNotFound
		}
		if !item.Category.Consumable() && ownedCopies > 0 {
			return ErrAlreadyOwned
		}
		if rec.Coins < item.Price {
			return ErrInsufficientFunds
		}
		rec.Coins -= item.Price
		owned = ownedCopies + 1
		return nil
	})
	if err != nil {
		return PurchaseResult{}, err
	}

	if item.Category == models.ItemCategoryRole && s.Roles != nil {
		if err := s.Roles.GrantRole(ctx, communityID, memberID, item.RoleID); err != nil {
			log.Printf("❌ [SHOP] Role grant failed for %s/%s (role %s): %v", communityID, memberID, item.RoleID, err)
		}
	}

	return PurchaseResult{Item: item, Coins: rec.Coins, Owned: owned}, nil
}

// InventoryItem is one owned line in a member's inventory view.
type InventoryItem struct {
	ItemID      string    `json:"item_id"`
	Name        string    `json:"name,omitempty"` // empty when the item left the catalog
	Copies      int       `json:"copies"`
	FirstBought time.Time `json:"first_bought"`
	LastBought  time.Time `json:"last_bought"`
}

// Inventory returns the member's owned items sorted by item ID.
func (s *ShopService) Inventory(communityID, memberID string) []InventoryItem {
	inv := s.Store.GetInventory(communityID, memberID)
	catalog := s.Store.GetCatalog(communityID)

	out := make([]InventoryItem, 0, len(inv))
	for itemID, copies := range inv {
		if len(copies) == 0 {
			continue
		}
		line := InventoryItem{
			ItemID:      itemID,
			Copies:      len(copies),
			FirstBought: copies[0].PurchasedAt,
			LastBought:  copies[len(copies)-1].PurchasedAt,
		}
		if item, ok := catalog[itemID]; ok {
			line.Name = item.Name
		}
		out = append(out, line)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out
}
