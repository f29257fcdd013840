// Package admin seeds the default administrator account into the users table.
package admin

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/settingskeeper/internal/common"
	"github.com/dmitrijs2005/settingskeeper/internal/cryptox"
	"github.com/dmitrijs2005/settingskeeper/internal/flagx"
	"github.com/dmitrijs2005/settingskeeper/internal/server/models"
	"github.com/dmitrijs2005/settingskeeper/internal/server/repositories/users"
)

const (
	DefaultUserName = "admin"
	DefaultEmail    = "admin@settingskeeper.local"
	// DefaultPassword is used only when no password is given and stdin is
	// not a terminal.
	DefaultPassword = "admin123"

	minPasswordLength = 6
)

var ErrPasswordTooShort = fmt.Errorf("%w: password must be at least %d characters", common.ErrorValidation, minPasswordLength)

// Options describe the account to seed.
type Options struct {
	UserName string
	Email    string
	Password string
}

// ParseOptions reads -username, -email and -password from os.Args, ignoring
// flags that belong to the server config.
func ParseOptions() Options {
	o := Options{}
	fs := flag.NewFlagSet("initadmin", flag.ContinueOnError)
	fs.StringVar(&o.UserName, "username", DefaultUserName, "admin username")
	fs.StringVar(&o.Email, "email", DefaultEmail, "admin email")
	fs.StringVar(&o.Password, "password", "", "admin password (prompted when empty)")

	if err := flagx.ParseKnown(fs, os.Args[1:]); err != nil {
		panic(err)
	}
	return o
}

// Seed creates the admin account unless a user with that name exists.
// It reports whether a user was created. Progress goes to w.
func Seed(ctx context.Context, repo users.Repository, o Options, w io.Writer) (bool, error) {
	existing, err := repo.GetUserByLogin(ctx, o.UserName)
	if err != nil {
		return false, err
	}
	if existing != nil {
		fmt.Fprintf(w, "Admin user already exists: %s\n", o.UserName)
		return false, nil
	}

	password, err := resolvePassword(o.Password, w)
	if err != nil {
		return false, err
	}
	defer common.WipeByteArray(password)

	if len(password) < minPasswordLength {
		return false, ErrPasswordTooShort
	}

	hash, err := cryptox.HashPassword(string(password))
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}

	user, err := repo.Create(ctx, &models.User{
		UserName:     o.UserName,
		Email:        o.Email,
		PasswordHash: hash,
	})
	if err != nil {
		var dup *users.DuplicateError
		if errors.As(err, &dup) {
			return false, fmt.Errorf("cannot create admin: %w", err)
		}
		return false, err
	}

	fmt.Fprintln(w, "Admin user created successfully!")
	fmt.Fprintf(w, "  ID: %s\n  Username: %s\n  Email: %s\n", user.ID, user.UserName, user.Email)
	if o.Password == "" && !stdinIsTerminal() {
		fmt.Fprintf(w, "  Password: %s\n\nIMPORTANT: change the admin password after first login!\n", DefaultPassword)
	}
	return true, nil
}

func resolvePassword(given string, w io.Writer) ([]byte, error) {
	if given != "" {
		return []byte(given), nil
	}
	if !stdinIsTerminal() {
		return []byte(DefaultPassword), nil
	}

	pw, err := GetPassword(w, "Admin password: ")
	if err != nil {
		return nil, err
	}
	again, err := GetPassword(w, "Repeat password: ")
	if err != nil {
		common.WipeByteArray(pw)
		return nil, err
	}
	defer common.WipeByteArray(again)

	if string(pw) != string(again) {
		common.WipeByteArray(pw)
		return nil, fmt.Errorf("%w: passwords do not match", common.ErrorValidation)
	}
	return pw, nil
}
