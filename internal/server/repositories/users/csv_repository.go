package users

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/settingskeeper/internal/csvx"
	"github.com/dmitrijs2005/settingskeeper/internal/server/models"
)

type CSVRepository struct {
	table *csvx.Table[*models.User]
	now   func() time.Time
}

func NewCSVRepository(table *csvx.Table[*models.User], now func() time.Time) *CSVRepository {
	return &CSVRepository{table: table, now: now}
}

// Create assigns ID and CreatedAt and appends the user. The uniqueness scan
// and the write happen under one hold of the table guard.
func (r *CSVRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	var created *models.User

	err := r.table.Update(ctx, func(rows []*models.User) ([]*models.User, error) {
		for _, u := range rows {
			if u.UserName == user.UserName {
				return nil, &DuplicateError{Field: FieldUserName, Value: user.UserName}
			}
			if u.Email == user.Email {
				return nil, &DuplicateError{Field: FieldEmail, Value: user.Email}
			}
		}

		now := r.stamp()
		created = &models.User{
			ID:           NewUserID(user.UserName, now),
			UserName:     user.UserName,
			Email:        user.Email,
			PasswordHash: user.PasswordHash,
			CreatedAt:    now,
		}
		return append(rows, created), nil
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return created, nil
}

func (r *CSVRepository) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	return r.findFirst(ctx, func(u *models.User) bool { return u.UserName == userName })
}

func (r *CSVRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findFirst(ctx, func(u *models.User) bool { return u.Email == email })
}

func (r *CSVRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return r.findFirst(ctx, func(u *models.User) bool { return u.ID == id })
}

// List returns every user in file order.
func (r *CSVRepository) List(ctx context.Context) ([]*models.User, error) {
	var out []*models.User
	err := r.table.View(ctx, func(rows []*models.User) error {
		out = rows
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}

// TouchLastLogin sets LastLogin of the matching row to now. Unknown ids are
// ignored.
func (r *CSVRepository) TouchLastLogin(ctx context.Context, id string) error {
	err := r.table.Update(ctx, func(rows []*models.User) ([]*models.User, error) {
		for _, u := range rows {
			if u.ID == id {
				now := r.stamp()
				u.LastLogin = &now
				return rows, nil
			}
		}
		return nil, csvx.ErrNoChange
	})
	if err != nil {
		return fmt.Errorf("touch last login: %w", err)
	}
	return nil
}

func (r *CSVRepository) findFirst(ctx context.Context, match func(*models.User) bool) (*models.User, error) {
	var found *models.User
	err := r.table.View(ctx, func(rows []*models.User) error {
		for _, u := range rows {
			if match(u) {
				found = u
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return found, nil
}

// stamp reads the clock at the precision the file keeps, so returned
// records equal what a later read parses back.
func (r *CSVRepository) stamp() time.Time {
	return r.now().UTC().Truncate(time.Microsecond)
}
