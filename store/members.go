// store/members.go
package store

import (
	"sort"
	"time"

	"guild-economy-system/models"
)

// MemberEntry pairs a member ID with a copy of its record, as returned by
// snapshot scans.
type MemberEntry struct {
	MemberID string
	Record   models.MemberRecord
}

// UpdateMember runs one atomic transform against a member record, creating
// the default record on first interaction. A transform error rejects the
// update and returns the untouched current record.
func (r *Repository) UpdateMember(communityID, memberID string, fn func(*models.MemberRecord) error) (models.MemberRecord, error) {
	key := models.MemberKey(communityID, memberID)
	return update(r, "member", key,
		func(d *models.Document) map[string]models.MemberRecord { return d.Members },
		models.NewMemberRecord,
		fn,
	)
}

// GetMember returns a copy of the member's record, or the default record if
// the member has never interacted.
func (r *Repository) GetMember(communityID, memberID string) models.MemberRecord {
	rec, ok := read(r, models.MemberKey(communityID, memberID),
		func(d *models.Document) map[string]models.MemberRecord { return d.Members })
	if !ok {
		return models.NewMemberRecord()
	}
	return rec
}

// MembersOf returns copies of every member record in a community, ordered by
// member ID so repeated scans over unchanged data are identical.
func (r *Repository) MembersOf(communityID string) []MemberEntry {
	prefix := communityID + "_"

	r.mu.RLock()
	entries := make([]MemberEntry, 0, len(r.doc.Members))
	for key, rec := range r.doc.Members {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			entries = append(entries, MemberEntry{MemberID: key[len(prefix):], Record: rec})
		}
	}
	r.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].MemberID < entries[j].MemberID })
	return entries
}

// UpdateWarnings runs one atomic transform against a member's warning list.
// Transforms may only append or clear; the store hands out a fresh slice
// header so a rejected transform cannot leak partial appends.
func (r *Repository) UpdateWarnings(communityID, memberID string, fn func(*[]models.Warning) error) ([]models.Warning, error) {
	key := models.MemberKey(communityID, memberID)
	return update(r, "warnings", key,
		func(d *models.Document) map[string][]models.Warning { return d.Warnings },
		func() []models.Warning { return nil },
		func(list *[]models.Warning) error {
			cloned := make([]models.Warning, len(*list))
			copy(cloned, *list)
			*list = cloned
			return fn(list)
		},
	)
}

// GetWarnings returns a copy of the member's warning list, oldest first.
func (r *Repository) GetWarnings(communityID, memberID string) []models.Warning {
	list, ok := read(r, models.MemberKey(communityID, memberID),
		func(d *models.Document) map[string][]models.Warning { return d.Warnings })
	if !ok || len(list) == 0 {
		return nil
	}
	out := make([]models.Warning, len(list))
	copy(out, list)
	return out
}

// Purchase atomically transforms a member record together with that member's
// copies of one item. It holds both per-key locks (member first, inventory
// second, always in that order) so a racing duplicate purchase cannot slip
// past an already-owned or balance check. On success one inventory entry
// stamped at `at` is appended alongside the record mutation.
func (r *Repository) Purchase(communityID, memberID, itemID string, at time.Time, fn func(rec *models.MemberRecord, ownedCopies int) error) (models.MemberRecord, error) {
	key := models.MemberKey(communityID, memberID)

	memberLk := r.lockFor("member:" + key)
	memberLk.Lock()
	defer memberLk.Unlock()
	invLk := r.lockFor("inventory:" + key)
	invLk.Lock()
	defer invLk.Unlock()

	r.mu.RLock()
	cur, ok := r.doc.Members[key]
	owned := len(r.doc.Inventories[key][itemID])
	r.mu.RUnlock()
	if !ok {
		cur = models.NewMemberRecord()
	}

	next := cur
	if err := fn(&next, owned); err != nil {
		return cur, err
	}

	r.commit(func(d *models.Document) {
		d.Members[key] = next

		inv := d.Inventories[key]
		copies := make([]models.InventoryEntry, 0, len(inv[itemID])+1)
		copies = append(copies, inv[itemID]...)
		copies = append(copies, models.InventoryEntry{PurchasedAt: at})

		cloned := make(map[string][]models.InventoryEntry, len(inv)+1)
		for id, c := range inv {
			cloned[id] = c
		}
		cloned[itemID] = copies
		d.Inventories[key] = cloned
	})
	return next, nil
}

// GetInventory returns a copy of the member's inventory.
func (r *Repository) GetInventory(communityID, memberID string) map[string][]models.InventoryEntry {
	key := models.MemberKey(communityID, memberID)

	r.mu.RLock()
	defer r.mu.RUnlock()
	inv := r.doc.Inventories[key]
	if len(inv) == 0 {
		return nil
	}
	out := make(map[string][]models.InventoryEntry, len(inv))
	for id, copies := range inv {
		c := make([]models.InventoryEntry, len(copies))
		copy(c, copies)
		out[id] = c
	}
	return out
}
