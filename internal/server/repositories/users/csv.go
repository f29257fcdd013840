package users

import (
	"fmt"

	"github.com/dmitrijs2005/settingskeeper/internal/server/models"
	"github.com/dmitrijs2005/settingskeeper/internal/timex"
)

// FileName is the users table file inside the data directory.
const FileName = "users.csv"

var header = []string{"id", "username", "email", "password_hash", "created_at", "last_login"}

// Codec maps models.User onto the users.csv column layout.
type Codec struct{}

func (Codec) Header() []string {
	return header
}

func (Codec) Encode(u *models.User) ([]string, error) {
	lastLogin := ""
	if u.LastLogin != nil {
		lastLogin = timex.FormatTimestamp(*u.LastLogin)
	}
	return []string{
		u.ID,
		u.UserName,
		u.Email,
		u.PasswordHash,
		timex.FormatTimestamp(u.CreatedAt),
		lastLogin,
	}, nil
}

func (Codec) Decode(row []string) (*models.User, error) {
	createdAt, err := timex.ParseTimestamp(row[4])
	if err != nil {
		return nil, fmt.Errorf("created_at: %w", err)
	}

	u := &models.User{
		ID:           row[0],
		UserName:     row[1],
		Email:        row[2],
		PasswordHash: row[3],
		CreatedAt:    createdAt,
	}

	if row[5] != "" {
		lastLogin, err := timex.ParseTimestamp(row[5])
		if err != nil {
			return nil, fmt.Errorf("last_login: %w", err)
		}
		u.LastLogin = &lastLogin
	}

	return u, nil
}
