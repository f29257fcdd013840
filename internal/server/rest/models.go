package rest

import (
	"github.com/dmitrijs2005/settingskeeper/internal/common"
	"github.com/dmitrijs2005/settingskeeper/internal/server/models"
	"github.com/dmitrijs2005/settingskeeper/internal/timex"
)

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=100"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=6"`
}

// SaveSettingsRequest replaces the stored settings wholesale. A missing
// "settings" key saves an empty object.
type SaveSettingsRequest struct {
	Settings map[string]any `json:"settings"`
}

// UserResponse never carries the password hash.
type UserResponse struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	CreatedAt string  `json:"created_at"`
	LastLogin *string `json:"last_login"`
}

type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

type SettingsResponse struct {
	Settings  map[string]any `json:"settings"`
	UpdatedAt *string        `json:"updated_at"`
}

type MessageResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}

func newUserResponse(u *models.User) UserResponse {
	r := UserResponse{
		ID:        u.ID,
		Username:  u.UserName,
		Email:     u.Email,
		CreatedAt: timex.FormatTimestamp(u.CreatedAt),
	}
	if u.LastLogin != nil {
		s := timex.FormatTimestamp(*u.LastLogin)
		r.LastLogin = &s
	}
	return r
}

func newTokenResponse(token string, u *models.User) TokenResponse {
	return TokenResponse{
		AccessToken: token,
		TokenType:   common.BearerScheme,
		User:        newUserResponse(u),
	}
}

// newSettingsResponse maps absent settings to an empty object with a null
// updated_at.
func newSettingsResponse(s *models.Settings) SettingsResponse {
	if s == nil {
		return SettingsResponse{Settings: map[string]any{}}
	}
	updated := timex.FormatTimestamp(s.UpdatedAt)
	return SettingsResponse{Settings: s.Values, UpdatedAt: &updated}
}
