package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/settingskeeper/internal/common"
	"github.com/dmitrijs2005/settingskeeper/internal/server/models"
	"github.com/dmitrijs2005/settingskeeper/internal/server/repositories/repomanager"
)

// SettingsService reads and writes the per-user settings blob.
type SettingsService struct {
	repomanager repomanager.RepositoryManager
}

func NewSettingsService(m repomanager.RepositoryManager) *SettingsService {
	return &SettingsService{repomanager: m}
}

// Get returns the stored settings, or nil if the user never saved any.
func (s *SettingsService) Get(ctx context.Context, userID string) (*models.Settings, error) {
	st, err := s.repomanager.Settings().Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return st, nil
}

// Save replaces the user's settings with values.
func (s *SettingsService) Save(ctx context.Context, userID string, values map[string]any) (*models.Settings, error) {
	st, err := s.repomanager.Settings().Save(ctx, userID, values)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return st, nil
}

// Delete drops the user's settings. Deleting nothing succeeds.
func (s *SettingsService) Delete(ctx context.Context, userID string) error {
	if err := s.repomanager.Settings().Delete(ctx, userID); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return nil
}
