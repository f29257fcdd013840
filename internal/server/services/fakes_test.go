package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/settingskeeper/internal/server/config"
	"github.com/dmitrijs2005/settingskeeper/internal/server/models"
	"github.com/dmitrijs2005/settingskeeper/internal/server/repositories/settings"
	"github.com/dmitrijs2005/settingskeeper/internal/server/repositories/users"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	byLogin    *models.User
	byLoginErr error

	byID    *models.User
	byIDErr error

	listOut []*models.User
	listErr error

	touchErr error
	touched  []string
	created  []*models.User
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.created = append(f.created, u)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeUsersRepo) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	return f.byLogin, f.byLoginErr
}

func (f *fakeUsersRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, nil
}

func (f *fakeUsersRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return f.byID, f.byIDErr
}

func (f *fakeUsersRepo) List(ctx context.Context) ([]*models.User, error) {
	return f.listOut, f.listErr
}

func (f *fakeUsersRepo) TouchLastLogin(ctx context.Context, id string) error {
	f.touched = append(f.touched, id)
	return f.touchErr
}

type fakeSettingsRepo struct {
	getOut *models.Settings
	getErr error

	saveErr error
	delErr  error

	saved   map[string]any
	deleted []string
}

func (f *fakeSettingsRepo) Get(ctx context.Context, userID string) (*models.Settings, error) {
	return f.getOut, f.getErr
}

func (f *fakeSettingsRepo) Save(ctx context.Context, userID string, values map[string]any) (*models.Settings, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.saved = values
	return &models.Settings{UserID: userID, Values: values, UpdatedAt: time.Now()}, nil
}

func (f *fakeSettingsRepo) Delete(ctx context.Context, userID string) error {
	f.deleted = append(f.deleted, userID)
	return f.delErr
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	s *fakeSettingsRepo
}

func (m *fakeRepoManager) Init(context.Context) error      { return nil }
func (m *fakeRepoManager) Users() users.Repository       { return m.u }
func (m *fakeRepoManager) Settings() settings.Repository { return m.s }

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                   "k",
		AccessTokenValidityDuration: time.Hour,
	}
}
