package pages

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/dmatrios/ahorrape-front/internal/model"
	"github.com/dmatrios/ahorrape-front/internal/session"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	user := testUser
	authed := session.State{Token: "tok", User: &user}
	expired := session.State{Token: "tok", User: &user, Expired: true}

	tests := []struct {
		name string
		path string
		st   session.State
		want Route
	}{
		{name: "landing", path: "/", want: RouteLanding},
		{name: "login is public", path: "/login", want: RouteLogin},
		{name: "register is public", path: "/register", want: RouteRegister},
		{name: "protected without session", path: "/dashboard", want: RouteLogin},
		{name: "protected with session", path: "/dashboard", st: authed, want: RouteDashboard},
		{name: "expired token", path: "/history", st: expired, want: RouteLogin},
		{name: "token without user", path: "/plans", st: session.State{Token: "tok"}, want: RouteLogin},
		{name: "user without token", path: "/plans", st: session.State{User: &user}, want: RouteLogin},
		{name: "unknown", path: "/nowhere", st: authed, want: RouteLanding},
		{name: "unknown anonymous", path: "/admin", want: RouteLanding},
		{name: "trailing slash", path: "/categories/", st: authed, want: RouteCategories},
		{name: "missing slash", path: "transactions", st: authed, want: RouteTransactions},
		{name: "query string", path: "/account?tab=security", st: authed, want: RouteAccount},
		{name: "users placeholder", path: "/users", st: authed, want: RouteUsers},
		{name: "empty", path: "", want: RouteLanding},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.path, tt.st))
		})
	}
}

func TestNavigate(t *testing.T) {
	ctx := context.Background()

	t.Run("corrupt user clears the session", func(t *testing.T) {
		backend := session.NewMemory()
		require.NoError(t, backend.Set(ctx, "token", "tok"))
		require.NoError(t, backend.Set(ctx, "user", "{not json"))
		store := session.New(backend)

		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, nil))

		route, st, err := Navigate(ctx, store, "/dashboard", logger)
		require.NoError(t, err)
		assert.Equal(t, RouteLogin, route)
		assert.False(t, st.Authenticated())
		assert.Contains(t, logs.String(), "Discarding unreadable session")

		tok, err := store.Token(ctx)
		require.NoError(t, err)
		assert.Empty(t, tok)
	})

	t.Run("expired jwt", func(t *testing.T) {
		claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour))}
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		store := session.New(session.NewMemory())
		require.NoError(t, store.Save(ctx, tok, model.User{ID: 1, Name: "Ana", Email: "ana@example.com"}))

		route, _, err := Navigate(ctx, store, "/dashboard", nil)
		require.NoError(t, err)
		assert.Equal(t, RouteLogin, route)
	})

	t.Run("valid session", func(t *testing.T) {
		store := session.New(session.NewMemory())
		require.NoError(t, store.Save(ctx, "opaque", testUser))

		route, st, err := Navigate(ctx, store, "/transactions", nil)
		require.NoError(t, err)
		assert.Equal(t, RouteTransactions, route)
		assert.Equal(t, testUser, *st.User)
	})
}

func TestLifetime(t *testing.T) {
	life := NewLifetime()
	ctx, done := life.Bind(context.Background())
	defer done()

	assert.False(t, life.Closed())
	life.Close()
	assert.True(t, life.Closed())

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("bound context not canceled")
	}
}
