package storage

import (
	"context"
	"errors"
	"path/filepath"
	"scout-client/internal/config"
	"scout-client/internal/constants"
	"scout-client/internal/database"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func devConfig() *config.Config {
	return &config.Config{Environment: config.EnvDevelopment}
}

func TestTokenPersistence_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	jar := NewMemoryCookieJar()
	p := NewTokenPersistence(jar, NewMemoryLocalStore(), devConfig(), zerolog.Nop())

	require.NoError(t, p.Save(ctx, Tokens{Access: "a1", Refresh: "r1"}))

	got, err := p.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Tokens{Access: "a1", Refresh: "r1"}, got)

	access, ok := jar.Cookie(constants.AccessTokenKey)
	require.True(t, ok)
	refresh, ok := jar.Cookie(constants.RefreshTokenKey)
	require.True(t, ok)

	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), access.Expires, time.Minute)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), refresh.Expires, time.Minute)
	assert.Equal(t, "lax", access.SameSite)
	assert.False(t, access.Secure)
}

func TestTokenPersistence_SecureOutsideDevelopment(t *testing.T) {
	ctx := context.Background()
	jar := NewMemoryCookieJar()
	p := NewTokenPersistence(jar, nil, &config.Config{Environment: "production"}, zerolog.Nop())

	require.NoError(t, p.Save(ctx, Tokens{Access: "a", Refresh: "r"}))

	c, ok := jar.Cookie(constants.AccessTokenKey)
	require.True(t, ok)
	assert.True(t, c.Secure)
}

func TestTokenPersistence_MigratesLegacy(t *testing.T) {
	ctx := context.Background()
	jar := NewMemoryCookieJar()
	legacy := NewMemoryLocalStore()
	require.NoError(t, legacy.Set(ctx, constants.AccessTokenKey, "old-access"))
	require.NoError(t, legacy.Set(ctx, constants.RefreshTokenKey, "old-refresh"))

	p := NewTokenPersistence(jar, legacy, devConfig(), zerolog.Nop())

	got, err := p.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Tokens{Access: "old-access", Refresh: "old-refresh"}, got)

	v, ok, _ := jar.Get(ctx, constants.AccessTokenKey)
	assert.True(t, ok)
	assert.Equal(t, "old-access", v)

	_, ok, _ = legacy.Get(ctx, constants.AccessTokenKey)
	assert.False(t, ok, "legacy copy should be removed after migration")
	_, ok, _ = legacy.Get(ctx, constants.RefreshTokenKey)
	assert.False(t, ok)
}

func TestTokenPersistence_CookieWinsOverLegacy(t *testing.T) {
	ctx := context.Background()
	jar := NewMemoryCookieJar()
	legacy := NewMemoryLocalStore()
	require.NoError(t, legacy.Set(ctx, constants.AccessTokenKey, "old-access"))

	p := NewTokenPersistence(jar, legacy, devConfig(), zerolog.Nop())
	require.NoError(t, p.Save(ctx, Tokens{Access: "new-access"}))

	got, err := p.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new-access", got.Access)
	assert.Empty(t, got.Refresh)

	_, ok, _ := legacy.Get(ctx, constants.AccessTokenKey)
	assert.True(t, ok, "legacy store is untouched when the jar has a token")
}

func TestTokenPersistence_LoadEmpty(t *testing.T) {
	p := NewTokenPersistence(NewMemoryCookieJar(), NewMemoryLocalStore(), devConfig(), zerolog.Nop())

	got, err := p.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, got.Empty())
}

func TestTokenPersistence_ClearRemovesEverything(t *testing.T) {
	ctx := context.Background()
	jar := NewMemoryCookieJar()
	legacy := NewMemoryLocalStore()
	require.NoError(t, legacy.Set(ctx, constants.RefreshTokenKey, "stale"))

	p := NewTokenPersistence(jar, legacy, devConfig(), zerolog.Nop())
	require.NoError(t, p.Save(ctx, Tokens{Access: "a", Refresh: "r"}))

	require.NoError(t, p.Clear(ctx))

	_, ok := jar.Cookie(constants.AccessTokenKey)
	assert.False(t, ok)
	_, ok, _ = legacy.Get(ctx, constants.RefreshTokenKey)
	assert.False(t, ok)
}

type stuckJar struct {
	*MemoryCookieJar
}

func (stuckJar) Delete(context.Context, string) error { return ErrUnavailable }

func TestTokenPersistence_ClearFallsBackToExpiry(t *testing.T) {
	ctx := context.Background()
	jar := stuckJar{NewMemoryCookieJar()}
	p := NewTokenPersistence(jar, nil, devConfig(), zerolog.Nop())
	require.NoError(t, jar.Set(ctx, Cookie{Name: constants.AccessTokenKey, Value: "a", Expires: time.Now().Add(time.Hour)}))

	require.NoError(t, p.Clear(ctx))

	_, ok, err := jar.Get(ctx, constants.AccessTokenKey)
	require.NoError(t, err)
	assert.False(t, ok)

	c, _ := jar.Cookie(constants.AccessTokenKey)
	assert.Empty(t, c.Value)
	assert.True(t, c.Expired(time.Now()))
}

func TestSQLStores_RoundTrip(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(filepath.Join(t.TempDir(), "session.db"), zerolog.Nop())
	require.NoError(t, err)
	defer db.Close()

	jar := NewSQLCookieJar(db, zerolog.Nop())
	legacy := NewSQLLocalStore(db)
	require.NoError(t, legacy.Set(ctx, constants.AccessTokenKey, "legacy-a"))

	p := NewTokenPersistence(jar, legacy, devConfig(), zerolog.Nop())

	got, err := p.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "legacy-a", got.Access)

	v, ok, err := jar.Get(ctx, constants.AccessTokenKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "legacy-a", v)

	require.NoError(t, p.Clear(ctx))
	_, ok, err = jar.Get(ctx, constants.AccessTokenKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLCookieJar_ExpiredIsInvisible(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(filepath.Join(t.TempDir(), "session.db"), zerolog.Nop())
	require.NoError(t, err)
	defer db.Close()

	jar := NewSQLCookieJar(db, zerolog.Nop())
	require.NoError(t, jar.Set(ctx, Cookie{Name: "x", Value: "v", Expires: time.Now().Add(-time.Minute)}))

	_, ok, err := jar.Get(ctx, "x")
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := jar.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestErrUnavailable(t *testing.T) {
	assert.True(t, errors.Is(stuckJar{}.Delete(context.Background(), "x"), ErrUnavailable))
}
