package settings

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/settingskeeper/internal/csvx"
	"github.com/dmitrijs2005/settingskeeper/internal/server/models"
)

type CSVRepository struct {
	table *csvx.Table[*models.Settings]
	now   func() time.Time
}

func NewCSVRepository(table *csvx.Table[*models.Settings], now func() time.Time) *CSVRepository {
	return &CSVRepository{table: table, now: now}
}

func (r *CSVRepository) Get(ctx context.Context, userID string) (*models.Settings, error) {
	var found *models.Settings
	err := r.table.View(ctx, func(rows []*models.Settings) error {
		for _, s := range rows {
			if s.UserID == userID {
				found = s
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return found, nil
}

// Save replaces the stored values wholesale; keys are not merged.
func (r *CSVRepository) Save(ctx context.Context, userID string, values map[string]any) (*models.Settings, error) {
	// round-trip through the stored form so callers get back exactly what a
	// later Get would return, and unencodable values fail before the guard
	payload, err := MarshalValues(values)
	if err != nil {
		return nil, fmt.Errorf("save settings: encode: %w", err)
	}
	normalized, err := UnmarshalValues(payload)
	if err != nil {
		return nil, fmt.Errorf("save settings: decode: %w", err)
	}

	var saved *models.Settings
	err = r.table.Update(ctx, func(rows []*models.Settings) ([]*models.Settings, error) {
		saved = &models.Settings{UserID: userID, Values: normalized, UpdatedAt: r.stamp()}
		for i, s := range rows {
			if s.UserID == userID {
				rows[i] = saved
				return rows, nil
			}
		}
		return append(rows, saved), nil
	})
	if err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}
	return saved, nil
}

func (r *CSVRepository) Delete(ctx context.Context, userID string) error {
	err := r.table.Update(ctx, func(rows []*models.Settings) ([]*models.Settings, error) {
		for i, s := range rows {
			if s.UserID == userID {
				return append(rows[:i], rows[i+1:]...), nil
			}
		}
		return nil, csvx.ErrNoChange
	})
	if err != nil {
		return fmt.Errorf("delete settings: %w", err)
	}
	return nil
}

// stamp reads the clock at the precision the file keeps.
func (r *CSVRepository) stamp() time.Time {
	return r.now().UTC().Truncate(time.Microsecond)
}
