// services/moderation.go
package services

import (
	"strings"
	"time"

	"guild-economy-system/models"
	"guild-economy-system/store"

	"github.com/google/uuid"
)

// ModerationService manages the append-only warning records.
type ModerationService struct {
	Store *store.Repository

	now func() time.Time
}

func NewModerationService(repo *store.Repository) *ModerationService {
	return &ModerationService{Store: repo, now: time.Now}
}

// WarnResult reports a newly issued warning together with the member's
// running total.
type WarnResult struct {
	Warning models.Warning `json:"warning"`
	Total   int            `json:"total"`
}

// Warn appends a warning to the member's record.
func (s *ModerationService) Warn(communityID, memberID, issuerID, reason string) (WarnResult, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" || issuerID == "" {
		return WarnResult{}, ErrInvalidArgument
	}

	warning := models.Warning{
		ID:       uuid.NewString(),
		Reason:   reason,
		IssuedBy: issuerID,
		IssuedAt: s.now().UTC(),
	}

	list, err := s.Store.UpdateWarnings(communityID, memberID, func(list *[]models.Warning) error {
		*list = append(*list, warning)
		return nil
	})
	if err != nil {
		return WarnResult{}, err
	}
	return WarnResult{Warning: warning, Total: len(list)}, nil
}

// Warnings lists a member's warnings, oldest first.
func (s *ModerationService) Warnings(communityID, memberID string) []models.Warning {
	return s.Store.GetWarnings(communityID, memberID)
}

// ClearWarnings wipes a member's warnings and returns how many were removed.
// Clearing a clean record is a NotFound denial.
func (s *ModerationService) ClearWarnings(communityID, memberID string) (int, error) {
	cleared := 0
	_, err := s.Store.UpdateWarnings(communityID, memberID, func(list *[]models.Warning) error {
		if len(*list) == 0 {
			return ErrNotFound
		}
		cleared = len(*list)
		*list = nil
		return nil
	})
	if err != nil {
		return 0, err
	}
	return cleared, nil
}
