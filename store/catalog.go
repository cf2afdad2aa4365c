// store/catalog.go
package store

import (
	"maps"

	"guild-economy-system/models"
)

// UpdateCatalog runs one atomic transform against a community's shop
// catalog. The transform receives a clone of the current catalog map and may
// insert or delete entries freely.
func (r *Repository) UpdateCatalog(communityID string, fn func(map[string]models.ShopItem) error) error {
	_, err := update(r, "catalog", communityID,
		func(d *models.Document) map[string]map[string]models.ShopItem { return d.ShopCatalog },
		func() map[string]models.ShopItem { return map[string]models.ShopItem{} },
		func(catalog *map[string]models.ShopItem) error {
			*catalog = maps.Clone(*catalog)
			return fn(*catalog)
		},
	)
	return err
}

// GetItem returns one catalog entry.
func (r *Repository) GetItem(communityID, itemID string) (models.ShopItem, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.doc.ShopCatalog[communityID][itemID]
	return item, ok
}

// GetCatalog returns a copy of a community's catalog.
func (r *Repository) GetCatalog(communityID string) map[string]models.ShopItem {
	r.mu.RLock()
	defer r.mu.RUnlock()
	catalog := r.doc.ShopCatalog[communityID]
	if len(catalog) == 0 {
		return nil
	}
	return maps.Clone(catalog)
}
