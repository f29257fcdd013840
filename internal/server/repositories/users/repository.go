package users

import (
	"context"

	"github.com/dmitrijs2005/settingskeeper/internal/server/models"
)

// Repository is the users table. Finders return (nil, nil) when no row
// matches; absence is not an error at this level.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, userName string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	TouchLastLogin(ctx context.Context, id string) error
}
