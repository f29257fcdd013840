package users

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/settingskeeper/internal/csvx"
	"github.com/dmitrijs2005/settingskeeper/internal/server/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_RoundTrip(t *testing.T) {
	login := time.Date(2024, 5, 6, 7, 8, 9, 123456000, time.UTC)
	records := []*models.User{
		{
			ID:           "user_1_abcdef01",
			UserName:     "alice",
			Email:        "a@x.com",
			PasswordHash: "0011:aabb",
			CreatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:           "user_2_abcdef02",
			UserName:     `o"brien, jr`,
			Email:        "ob@x.com",
			PasswordHash: "salt,with,commas:\"quoted\"",
			CreatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 1000, time.UTC),
			LastLogin:    &login,
		},
	}

	data, err := csvx.Encode[*models.User](Codec{}, records)
	require.NoError(t, err)

	got, err := csvx.Decode[*models.User](Codec{}, data)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(records, got))
}

func TestCodec_EmptyLastLoginIsAbsent(t *testing.T) {
	u, err := Codec{}.Decode([]string{"id", "alice", "a@x.com", "h", "2024-01-01T00:00:00.000000Z", ""})
	require.NoError(t, err)
	assert.Nil(t, u.LastLogin)
}

func TestCodec_AcceptsLegacyTimestamps(t *testing.T) {
	u, err := Codec{}.Decode([]string{"id", "alice", "a@x.com", "h", "2024-01-01T10:00:00.250000", "2024-01-02T11:00:00"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 10, 0, 0, 250000000, time.UTC), u.CreatedAt)
	require.NotNil(t, u.LastLogin)
	assert.Equal(t, time.Date(2024, 1, 2, 11, 0, 0, 0, time.UTC), *u.LastLogin)
}

func TestCodec_BadTimestamp(t *testing.T) {
	_, err := Codec{}.Decode([]string{"id", "alice", "a@x.com", "h", "not-a-time", ""})
	require.Error(t, err)
}

func TestCodec_HeaderOrder(t *testing.T) {
	assert.Equal(t, []string{"id", "username", "email", "password_hash", "created_at", "last_login"}, Codec{}.Header())
}

func TestNewUserID(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	id := NewUserID("alice", now)
	assert.Regexp(t, `^user_1700000000123_[0-9a-f]{8}$`, id)
	assert.Equal(t, id, NewUserID("alice", now), "deterministic for equal input")
	assert.NotEqual(t, id, NewUserID("bob", now))
	assert.NotEqual(t, id, NewUserID("alice", now.Add(time.Millisecond)))
}
