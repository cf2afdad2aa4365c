// services/reactionroles.go
package services

import (
	"context"
	"log"

	"guild-economy-system/store"
)

// ReactionRoleService maintains the (message, emoji) -> role bindings and
// translates reaction events into role grants and revocations.
type ReactionRoleService struct {
	Store *store.Repository
	Roles RoleGranter // nil disables grant intents (tests)
}

func NewReactionRoleService(repo *store.Repository, roles RoleGranter) *ReactionRoleService {
	return &ReactionRoleService{Store: repo, Roles: roles}
}

// Bind registers a binding. An existing binding for the same message and
// emoji is rejected; callers unbind first to rebind.
func (s *ReactionRoleService) Bind(communityID, messageID, emoji, roleID string) error {
	if messageID == "" || emoji == "" || roleID == "" {
		return ErrInvalidArgument
	}
	return s.Store.UpdateReactionRoles(communityID, func(bindings map[string]map[string]string) error {
		byEmoji := bindings[messageID]
		if _, exists := byEmoji[emoji]; exists {
			return ErrBindingExists
		}
		if byEmoji == nil {
			byEmoji = make(map[string]string)
			bindings[messageID] = byEmoji
		}
		byEmoji[emoji] = roleID
		return nil
	})
}

// Unbind removes one binding, or every binding on the message when emoji is
// empty. Missing bindings report NotFound.
func (s *ReactionRoleService) Unbind(communityID, messageID, emoji string) error {
	return s.Store.UpdateReactionRoles(communityID, func(bindings map[string]map[string]string) error {
		byEmoji, ok := bindings[messageID]
		if !ok {
			return ErrNotFound
		}
		if emoji == "" {
			delete(bindings, messageID)
			return nil
		}
		if _, ok := byEmoji[emoji]; !ok {
			return ErrNotFound
		}
		delete(byEmoji, emoji)
		if len(byEmoji) == 0 {
			delete(bindings, messageID)
		}
		return nil
	})
}

// Resolve looks up the role bound to a message/emoji pair.
func (s *ReactionRoleService) Resolve(communityID, messageID, emoji string) (string, bool) {
	return s.Store.ResolveReactionRole(communityID, messageID, emoji)
}

// List returns every binding for the community keyed by message ID.
func (s *ReactionRoleService) List(communityID string) map[string]map[string]string {
	return s.Store.GetReactionRoles(communityID)
}

// HandleReaction processes a reaction add or remove. Unbound pairs are
// ignored silently; gateway failures are logged and do not surface as
// request errors.
func (s *ReactionRoleService) HandleReaction(ctx context.Context, communityID, messageID, emoji, memberID string, added bool) (roleID string, matched bool) {
	roleID, matched = s.Store.ResolveReactionRole(communityID, messageID, emoji)
	if !matched || s.Roles == nil {
		return roleID, matched
	}

	var err error
	if added {
		err = s.Roles.GrantRole(ctx, communityID, memberID, roleID)
	} else {
		err = s.Roles.RevokeRole(ctx, communityID, memberID, roleID)
	}
	if err != nil {
		log.Printf("❌ [REACTION-ROLES] Role update failed for %s/%s (role %s): %v", communityID, memberID, roleID, err)
	}
	return roleID, matched
}
