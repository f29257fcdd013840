package settings

import (
	"context"

	"github.com/dmitrijs2005/settingskeeper/internal/server/models"
)

// Repository is the settings table, one row per user id.
type Repository interface {
	// Get returns (nil, nil) when the user has no stored settings.
	Get(ctx context.Context, userID string) (*models.Settings, error)
	// Save inserts or fully replaces the user's settings.
	Save(ctx context.Context, userID string, values map[string]any) (*models.Settings, error)
	// Delete removes the user's row; a missing row is not an error.
	Delete(ctx context.Context, userID string) error
}
