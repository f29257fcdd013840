// Package repomanager owns the storage backends and vends the table
// repositories built on top of them.
package repomanager

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/settingskeeper/internal/csvx"
	"github.com/dmitrijs2005/settingskeeper/internal/filex"
	"github.com/dmitrijs2005/settingskeeper/internal/logging"
	"github.com/dmitrijs2005/settingskeeper/internal/server/models"
	"github.com/dmitrijs2005/settingskeeper/internal/server/repositories/settings"
	"github.com/dmitrijs2005/settingskeeper/internal/server/repositories/users"
	"github.com/dmitrijs2005/settingskeeper/internal/timex"
)

// CSVRepositoryManager keeps the users and settings tables as two CSV files in
// one data directory. Each table has its own guard, so work on one never waits
// for the other, and no operation holds both.
type CSVRepositoryManager struct {
	dataDir  string
	logger   logging.Logger
	users    *csvx.Table[*models.User]
	settings *csvx.Table[*models.Settings]
	now      func() time.Time
}

// Option customizes a CSVRepositoryManager.
type Option func(*CSVRepositoryManager)

// WithClock replaces the timestamp source used for created_at, last_login and
// updated_at.
func WithClock(now func() time.Time) Option {
	return func(m *CSVRepositoryManager) {
		m.now = now
	}
}

// NewCSVRepositoryManager creates the data directory and both table files
// if needed. A malformed existing table makes it fail.
func NewCSVRepositoryManager(ctx context.Context, dataDir string, logger logging.Logger, opts ...Option) (*CSVRepositoryManager, error) {
	logger = logger.With("module", "csv_storage")

	m := &CSVRepositoryManager{
		dataDir: dataDir,
		logger:  logger,
		now:     timex.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	if err := m.Init(ctx); err != nil {
		return nil, err
	}

	return m, nil
}

// Init ensures the data directory and header-only table files exist. Existing
// files are never rewritten here.
func (m *CSVRepositoryManager) Init(ctx context.Context) error {
	dir, err := filex.EnsureDir(m.dataDir)
	if err != nil {
		return fmt.Errorf("storage init: %w", err)
	}

	if m.users == nil || m.dataDir != dir {
		m.dataDir = dir
		m.users = csvx.NewTable[*models.User](filepath.Join(dir, users.FileName), users.Codec{}, m.logger)
		m.settings = csvx.NewTable[*models.Settings](filepath.Join(dir, settings.FileName), settings.Codec{}, m.logger)
	}

	if err := m.users.Init(ctx); err != nil {
		return fmt.Errorf("storage init: users: %w", err)
	}
	if err := m.settings.Init(ctx); err != nil {
		return fmt.Errorf("storage init: settings: %w", err)
	}

	m.logger.Info(ctx, "storage ready", "data_dir", dir)
	return nil
}

// DataDir returns the absolute data directory.
func (m *CSVRepositoryManager) DataDir() string {
	return m.dataDir
}

func (m *CSVRepositoryManager) Users() users.Repository {
	return users.NewCSVRepository(m.users, m.now)
}

func (m *CSVRepositoryManager) Settings() settings.Repository {
	return settings.NewCSVRepository(m.settings, m.now)
}

// Ping re-reads both tables, one after the other. It reports whether the
// storage is usable right now (files present and well formed).
func (m *CSVRepositoryManager) Ping(ctx context.Context) error {
	if err := m.users.View(ctx, func([]*models.User) error { return nil }); err != nil {
		return fmt.Errorf("users: %w", err)
	}
	if err := m.settings.View(ctx, func([]*models.Settings) error { return nil }); err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	return nil
}
