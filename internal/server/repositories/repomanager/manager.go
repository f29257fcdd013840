package repomanager

import (
	"context"

	"github.com/dmitrijs2005/settingskeeper/internal/server/repositories/settings"
	"github.com/dmitrijs2005/settingskeeper/internal/server/repositories/users"
)

type RepositoryManager interface {
	// Init prepares backing storage. It is safe to call repeatedly.
	Init(ctx context.Context) error
	Users() users.Repository
	Settings() settings.Repository
}
