// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, token verification and
// user lookups on top of the users table.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/settingskeeper/internal/common"
	"github.com/dmitrijs2005/settingskeeper/internal/cryptox"
	"github.com/dmitrijs2005/settingskeeper/internal/server/auth"
	"github.com/dmitrijs2005/settingskeeper/internal/server/config"
	"github.com/dmitrijs2005/settingskeeper/internal/server/models"
	"github.com/dmitrijs2005/settingskeeper/internal/server/repositories/repomanager"
)

// ErrUnknownUser is wrapped by Authenticate when a valid token names a user
// that no longer exists.
var ErrUnknownUser = errors.New("user not found")

// AuthResult is what a successful Register or Login hands back.
type AuthResult struct {
	AccessToken string
	User        *models.User
}

// UserService provides authentication-related operations:
// - Register: hash the password, create the user, mint a token
// - Login: verify credentials, record the login, mint a token
// - Authenticate: resolve a bearer token to an existing user id
type UserService struct {
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration

	hashPassword   func(password string) (string, error)
	verifyPassword func(password, stored string) bool
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		hashPassword:                cryptox.HashPassword,
		verifyPassword:              cryptox.VerifyPassword,
	}
}

// Register creates a user. A taken username or email comes back as an error
// matching common.ErrorAlreadyExists (and users.DuplicateError via errors.As).
func (s *UserService) Register(ctx context.Context, userName, email, password string) (*AuthResult, error) {
	hash, err := s.hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("%w: hash password: %v", common.ErrorInternal, err)
	}

	user, err := s.repomanager.Users().Create(ctx, &models.User{
		UserName:     userName,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, fmt.Errorf("error creating user: %w", err)
		}
		return nil, fmt.Errorf("%w: error creating user: %v", common.ErrorInternal, err)
	}

	token, err := s.generateAccessToken(user.ID)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &AuthResult{AccessToken: token, User: user}, nil
}

// Login checks the password, stamps last_login and returns a fresh token
// together with the updated user.
func (s *UserService) Login(ctx context.Context, userName, password string) (*AuthResult, error) {
	repo := s.repomanager.Users()

	user, err := repo.GetUserByLogin(ctx, userName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	if user == nil || !s.verifyPassword(password, user.PasswordHash) {
		return nil, common.ErrorUnauthorized
	}

	if err := repo.TouchLastLogin(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	// re-read so the caller sees the new last_login
	if updated, err := repo.GetUserByID(ctx, user.ID); err == nil && updated != nil {
		user = updated
	}

	token, err := s.generateAccessToken(user.ID)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &AuthResult{AccessToken: token, User: user}, nil
}

// Authenticate validates tokenString and checks that its user still exists.
// Every failure matches common.ErrorUnauthorized except storage failures,
// which match common.ErrorInternal.
func (s *UserService) Authenticate(ctx context.Context, tokenString string) (string, error) {
	userID, err := auth.GetUserIDFromToken(tokenString, s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}

	user, err := s.repomanager.Users().GetUserByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	if user == nil {
		return "", fmt.Errorf("%w: %w", common.ErrorUnauthorized, ErrUnknownUser)
	}

	return user.ID, nil
}

// GetUser returns the user or common.ErrorNotFound.
func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repomanager.Users().GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	if user == nil {
		return nil, common.ErrorNotFound
	}
	return user, nil
}

// ListUsers returns all users in registration order.
func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	list, err := s.repomanager.Users().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return list, nil
}

// --- helpers below ---

func (s *UserService) generateAccessToken(userID string) (string, error) {
	return auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
}
