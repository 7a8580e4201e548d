package storage

import (
	"context"
	"testing"

	"news-reader/config"
	"news-reader/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	sq, err := NewSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { sq.Close(context.Background()) })
	return map[string]Store{
		"memory": NewMemory(),
		"sqlite": sq,
	}
}

func TestStoreContract(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(ctx, "s1", KeyTheme)
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Set(ctx, "s1", KeyTheme, "dark"))
			require.NoError(t, s.Set(ctx, "s1", KeyTheme, "light"))
			require.NoError(t, s.Set(ctx, "s2", KeyTheme, "dark"))

			v, err := s.Get(ctx, "s1", KeyTheme)
			require.NoError(t, err)
			assert.Equal(t, "light", v)

			require.NoError(t, s.Clear(ctx, "s1"))
			_, err = s.Get(ctx, "s1", KeyTheme)
			assert.ErrorIs(t, err, ErrNotFound)

			v, err = s.Get(ctx, "s2", KeyTheme)
			require.NoError(t, err)
			assert.Equal(t, "dark", v, "other sessions survive a clear")

			assert.NoError(t, s.Ping(ctx))
		})
	}
}

func TestAuthRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	_, err := LoadAuth(ctx, s, "s1")
	assert.ErrorIs(t, err, ErrNotFound)

	in := models.AuthSession{
		AccessToken:  "acc",
		RefreshToken: "ref",
		User:         &models.User{ID: "u1", Name: "Abebe", Role: models.RoleAdmin, Interests: []string{"t1"}},
	}
	require.NoError(t, SaveAuth(ctx, s, "s1", in))

	out, err := LoadAuth(ctx, s, "s1")
	require.NoError(t, err)
	assert.Equal(t, in, out)

	require.NoError(t, s.Clear(ctx, "s1"))
	_, err = LoadAuth(ctx, s, "s1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadAuthBadUserBlob(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	require.NoError(t, s.Set(ctx, "s1", KeyAccessToken, "acc"))
	require.NoError(t, s.Set(ctx, "s1", KeyUser, "{not json"))

	_, err := LoadAuth(ctx, s, "s1")
	assert.ErrorContains(t, err, "decode user blob")
}

func TestOpen(t *testing.T) {
	s, err := Open(context.Background(), config.StorageConfig{Driver: config.DriverMemory})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	_, err = Open(context.Background(), config.StorageConfig{Driver: "etcd"})
	assert.Error(t, err)
}
