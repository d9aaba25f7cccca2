package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmatrios/ahorrape-front/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Backend {
	t.Helper()
	ctx := context.Background()

	mem, err := OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = mem.Close() })

	file, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "nested", "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = file.Close() })

	return map[string]Backend{
		"memory":        NewMemory(),
		"sqlite memory": mem,
		"sqlite file":   file,
	}
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "ana@example.com",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	user := model.User{ID: 7, Name: "Ana", Email: "ana@example.com", Plan: model.PlanFree, Role: model.RoleUser}

	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			store := New(backend)

			tok, err := store.Token(ctx)
			require.NoError(t, err)
			assert.Empty(t, tok)

			u, err := store.User(ctx)
			require.NoError(t, err)
			assert.Nil(t, u)

			require.NoError(t, store.Save(ctx, "abc", user))

			tok, err = store.Token(ctx)
			require.NoError(t, err)
			assert.Equal(t, "abc", tok)

			u, err = store.User(ctx)
			require.NoError(t, err)
			require.NotNil(t, u)
			assert.Equal(t, user, *u)

			updated := user
			updated.Name = "Ana María"
			require.NoError(t, store.SaveUser(ctx, updated))
			u, err = store.User(ctx)
			require.NoError(t, err)
			assert.Equal(t, "Ana María", u.Name)

			shown, err := store.UpgradePromptShown(ctx, user.ID)
			require.NoError(t, err)
			assert.False(t, shown)
			require.NoError(t, store.MarkUpgradePromptShown(ctx, user.ID))
			shown, err = store.UpgradePromptShown(ctx, user.ID)
			require.NoError(t, err)
			assert.True(t, shown)

			require.NoError(t, store.Clear(ctx))
			tok, err = store.Token(ctx)
			require.NoError(t, err)
			assert.Empty(t, tok)
			u, err = store.User(ctx)
			require.NoError(t, err)
			assert.Nil(t, u)

			shown, err = store.UpgradePromptShown(ctx, user.ID)
			require.NoError(t, err)
			assert.True(t, shown, "upgrade flag survives logout")
		})
	}
}

func TestStore_SaveRequiresToken(t *testing.T) {
	store := New(NewMemory())
	assert.Error(t, store.Save(context.Background(), "", model.User{ID: 1}))
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("empty", func(t *testing.T) {
		st, err := Load(ctx, New(NewMemory()))
		require.NoError(t, err)
		assert.False(t, st.Authenticated())
	})

	t.Run("valid opaque token", func(t *testing.T) {
		store := New(NewMemory())
		require.NoError(t, store.Save(ctx, "opaque-token", model.User{ID: 1}))

		st, err := Load(ctx, store)
		require.NoError(t, err)
		assert.True(t, st.Authenticated())
		assert.False(t, st.Expired)
	})

	t.Run("token without user", func(t *testing.T) {
		backend := NewMemory()
		require.NoError(t, backend.Set(ctx, keyToken, "abc"))

		st, err := Load(ctx, New(backend))
		require.NoError(t, err)
		assert.False(t, st.Authenticated())
	})

	t.Run("corrupt user clears session", func(t *testing.T) {
		backend := NewMemory()
		require.NoError(t, backend.Set(ctx, keyToken, "abc"))
		require.NoError(t, backend.Set(ctx, keyUser, "{not json"))

		st, err := Load(ctx, New(backend))
		require.NoError(t, err)
		assert.False(t, st.Authenticated())
		assert.Error(t, st.Discarded)

		_, err = backend.Get(ctx, keyToken)
		assert.ErrorIs(t, err, ErrNoValue)
	})

	t.Run("expired jwt", func(t *testing.T) {
		store := New(NewMemory())
		require.NoError(t, store.Save(ctx, signedToken(t, time.Now().Add(-time.Hour)), model.User{ID: 1}))

		st, err := Load(ctx, store)
		require.NoError(t, err)
		assert.True(t, st.Expired)
		assert.False(t, st.Authenticated())
	})

	t.Run("live jwt", func(t *testing.T) {
		store := New(NewMemory())
		require.NoError(t, store.Save(ctx, signedToken(t, time.Now().Add(time.Hour)), model.User{ID: 1}))

		st, err := Load(ctx, store)
		require.NoError(t, err)
		assert.True(t, st.Authenticated())
	})
}

func TestTokenExpiry(t *testing.T) {
	_, ok := TokenExpiry("")
	assert.False(t, ok)

	_, ok = TokenExpiry("not.a.jwt")
	assert.False(t, ok)

	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	got, ok := TokenExpiry(signedToken(t, exp))
	require.True(t, ok)
	assert.True(t, got.Equal(exp))
}

func TestOpenSQLite_EmptyPath(t *testing.T) {
	_, err := OpenSQLite(context.Background(), " ")
	assert.Error(t, err)
}
