package pages

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dmatrios/ahorrape-front/internal/session"
)

// Route is an application path.
type Route string

const (
	RouteLanding      Route = "/"
	RouteLogin        Route = "/login"
	RouteRegister     Route = "/register"
	RouteDashboard    Route = "/dashboard"
	RouteUsers        Route = "/users"
	RouteCategories   Route = "/categories"
	RouteTransactions Route = "/transactions"
	RouteHistory      Route = "/history"
	RouteAccount      Route = "/account"
	RoutePlans        Route = "/plans"
)

var routes = map[Route]bool{
	RouteLanding:      false,
	RouteLogin:        false,
	RouteRegister:     false,
	RouteDashboard:    true,
	RouteUsers:        true,
	RouteCategories:   true,
	RouteTransactions: true,
	RouteHistory:      true,
	RouteAccount:      true,
	RoutePlans:        true,
}

// Protected reports whether the route needs a session.
func (r Route) Protected() bool {
	return routes[r]
}

// Known reports whether r is a defined route.
func (r Route) Known() bool {
	_, ok := routes[r]
	return ok
}

// Resolve maps a requested path to the route that is shown. Unknown paths go
// to the landing page and protected ones go to login without a session.
func Resolve(path string, st session.State) Route {
	r := normalize(path)
	if !r.Known() {
		return RouteLanding
	}
	if r.Protected() && !st.Authenticated() {
		return RouteLogin
	}
	return r
}

// Navigate loads the session and resolves path against it. An unreadable
// stored user is cleared by the load, logged to logger and counts as no
// session. A nil logger uses slog.Default.
func Navigate(ctx context.Context, p session.Provider, path string, logger *slog.Logger) (Route, session.State, error) {
	st, err := session.Load(ctx, p)
	if err != nil {
		return RouteLogin, session.State{}, err
	}
	if st.Discarded != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("Discarding unreadable session", "error", st.Discarded)
	}
	return Resolve(path, st), st, nil
}

func normalize(path string) Route {
	path = strings.TrimSpace(path)
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return Route(path)
}
