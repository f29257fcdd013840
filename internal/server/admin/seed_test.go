package admin

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/dmitrijs2005/settingskeeper/internal/common"
	"github.com/dmitrijs2005/settingskeeper/internal/cryptox"
	"github.com/dmitrijs2005/settingskeeper/internal/logging"
	"github.com/dmitrijs2005/settingskeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/settingskeeper/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) users.Repository {
	t.Helper()
	m, err := repomanager.NewCSVRepositoryManager(context.Background(), t.TempDir(), logging.Nop())
	require.NoError(t, err)
	return m.Users()
}

// stubTerminal swaps the x/term seams for the duration of the test.
func stubTerminal(t *testing.T, terminal bool, answers ...string) {
	t.Helper()
	oldRead, oldIsTerm := readPassword, isTerminal
	t.Cleanup(func() { readPassword, isTerminal = oldRead, oldIsTerm })

	isTerminal = func(int) bool { return terminal }
	readPassword = func(int) ([]byte, error) {
		if len(answers) == 0 {
			return nil, errors.New("no more input")
		}
		a := answers[0]
		answers = answers[1:]
		return []byte(a), nil
	}
}

func TestSeed_WithExplicitPassword(t *testing.T) {
	stubTerminal(t, false)
	repo := newRepo(t)
	ctx := context.Background()

	var out bytes.Buffer
	created, err := Seed(ctx, repo, Options{UserName: "root", Email: "root@x.io", Password: "s3cret!"}, &out)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Contains(t, out.String(), "Admin user created successfully!")
	assert.NotContains(t, out.String(), "s3cret!")

	u, err := repo.GetUserByLogin(ctx, "root")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.True(t, cryptox.VerifyPassword("s3cret!", u.PasswordHash))

	out.Reset()
	created, err = Seed(ctx, repo, Options{UserName: "root", Email: "root@x.io", Password: "s3cret!"}, &out)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Contains(t, out.String(), "Admin user already exists: root")
}

func TestSeed_DefaultPasswordWithoutTerminal(t *testing.T) {
	stubTerminal(t, false)
	repo := newRepo(t)

	var out bytes.Buffer
	created, err := Seed(context.Background(), repo, Options{UserName: DefaultUserName, Email: DefaultEmail}, &out)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Contains(t, out.String(), "Password: "+DefaultPassword)

	u, err := repo.GetUserByLogin(context.Background(), DefaultUserName)
	require.NoError(t, err)
	assert.True(t, cryptox.VerifyPassword(DefaultPassword, u.PasswordHash))
}

func TestSeed_PromptsOnTerminal(t *testing.T) {
	stubTerminal(t, true, "typed-pass", "typed-pass")
	repo := newRepo(t)

	var out bytes.Buffer
	created, err := Seed(context.Background(), repo, Options{UserName: "admin", Email: "a@x.io"}, &out)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Contains(t, out.String(), "Admin password: ")
	assert.NotContains(t, out.String(), "typed-pass")

	u, err := repo.GetUserByLogin(context.Background(), "admin")
	require.NoError(t, err)
	assert.True(t, cryptox.VerifyPassword("typed-pass", u.PasswordHash))
}

func TestSeed_Failures(t *testing.T) {
	tests := []struct {
		name     string
		terminal bool
		answers  []string
		opts     Options
		wantErr  error
	}{
		{name: "mismatch", terminal: true, answers: []string{"password1", "password2"}, opts: Options{UserName: "admin", Email: "a@x.io"}, wantErr: common.ErrorValidation},
		{name: "too short", terminal: false, opts: Options{UserName: "admin", Email: "a@x.io", Password: "123"}, wantErr: ErrPasswordTooShort},
		{name: "read error", terminal: true, opts: Options{UserName: "admin", Email: "a@x.io"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubTerminal(t, tt.terminal, tt.answers...)
			repo := newRepo(t)

			var out bytes.Buffer
			created, err := Seed(context.Background(), repo, tt.opts, &out)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.False(t, created)

			list, err := repo.List(context.Background())
			require.NoError(t, err)
			assert.Empty(t, list)
		})
	}
}

func TestSeed_EmailTakenByAnotherUser(t *testing.T) {
	stubTerminal(t, false)
	repo := newRepo(t)
	ctx := context.Background()

	_, err := Seed(ctx, repo, Options{UserName: "first", Email: "same@x.io", Password: "secret1"}, &bytes.Buffer{})
	require.NoError(t, err)

	_, err = Seed(ctx, repo, Options{UserName: "second", Email: "same@x.io", Password: "secret1"}, &bytes.Buffer{})
	require.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestParseOptions(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"initadmin", "-d", "/data", "-username", "boss", "-email=boss@x.io"}
	o := ParseOptions()
	assert.Equal(t, Options{UserName: "boss", Email: "boss@x.io"}, o)

	os.Args = []string{"initadmin"}
	o = ParseOptions()
	assert.Equal(t, Options{UserName: DefaultUserName, Email: DefaultEmail}, o)
}
