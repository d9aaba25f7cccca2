package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/dmatrios/ahorrape-front/internal/api"
	"github.com/dmatrios/ahorrape-front/internal/common"
	"github.com/dmatrios/ahorrape-front/internal/config"
	"github.com/dmatrios/ahorrape-front/internal/model"
	"github.com/dmatrios/ahorrape-front/internal/pages"
	"github.com/dmatrios/ahorrape-front/internal/session"
	"github.com/spf13/viper"
)

// app bundles what every command needs: configuration, the session store
// and the backend client.
type app struct {
	cfg     *config.Config
	backend *session.SQLite
	store   *session.Store
	client  *api.Client
}

func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}

	if cfg.SessionPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.SessionPath), 0o700); err != nil {
			return nil, fmt.Errorf("failed to create session directory: %w", err)
		}
	}
	backend, err := session.OpenSQLite(ctx, cfg.SessionPath)
	if err != nil {
		return nil, err
	}
	store := session.New(backend)

	client, err := api.NewClient(api.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Logger:  slog.Default(),
	}, store)
	if err != nil {
		_ = backend.Close()
		return nil, err
	}

	return &app{cfg: cfg, backend: backend, store: store, client: client}, nil
}

func (a *app) Close() {
	if err := a.backend.Close(); err != nil {
		slog.Warn("Failed to close session store", "error", err)
	}
}

func (a *app) deps() pages.Deps {
	return pages.Deps{API: a.client, Session: a.store, Logger: slog.Default()}
}

func (a *app) chart() pages.ChartOptions {
	return pages.ChartOptions{GroupBy: a.cfg.ChartGroupBy, Palette: a.cfg.ChartPalette}
}

// requireSession runs the router's session check for a protected route.
func (a *app) requireSession(ctx context.Context, route pages.Route) (*model.User, error) {
	resolved, st, err := pages.Navigate(ctx, a.store, string(route), slog.Default())
	if err != nil {
		return nil, err
	}
	if resolved != route {
		reason := common.ErrNotAuthenticated
		if st.Expired {
			reason = common.ErrSessionExpired
		}
		return nil, common.NewUserError(common.MsgSessionMissing+" Run 'ahorra login'.", reason)
	}
	return st.User, nil
}

// withApp opens the app, optionally checks the session and runs fn.
func withApp(ctx context.Context, route pages.Route, fn func(*app, *model.User) error) error {
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	var user *model.User
	if route.Protected() {
		if user, err = a.requireSession(ctx, route); err != nil {
			return err
		}
	}
	return fn(a, user)
}

// failed turns a controller or client error into the message shown to the
// user.
func failed(err error, fallback string) error {
	return common.NewUserError(common.Describe(err, fallback), err)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err == nil && id <= 0 {
		err = fmt.Errorf("id must be positive")
	}
	if err != nil {
		return 0, common.NewUserError(fmt.Sprintf("Invalid id %q.", s), err)
	}
	return id, nil
}
