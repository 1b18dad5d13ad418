package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/dmitrijs2005/gophsocial/internal/client/api"
	"github.com/dmitrijs2005/gophsocial/internal/client/config"
	"github.com/dmitrijs2005/gophsocial/internal/client/graphql"
	"github.com/dmitrijs2005/gophsocial/internal/client/metrics"
	"github.com/dmitrijs2005/gophsocial/internal/client/profile"
	"github.com/dmitrijs2005/gophsocial/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophsocial/internal/client/services"
	"github.com/dmitrijs2005/gophsocial/internal/client/session"
	"github.com/dmitrijs2005/gophsocial/internal/client/storage"
	"github.com/dmitrijs2005/gophsocial/internal/filex"
	"github.com/dmitrijs2005/gophsocial/internal/logging"
)

const sessionCheckInterval = time.Minute

type App struct {
	config      *config.Config
	log         logging.Logger
	db          *sql.DB
	api         api.Service
	authService services.AuthService
	metricsSrv  *http.Server
	reader      *bufio.Reader
	out         io.Writer

	mu    sync.Mutex
	route string
	draft *profile.Synchronizer
}

// NewApp opens local storage and builds the service graph: session store,
// GraphQL client (rate limit, request id and auth links), API and auth
// services.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	endpoint, err := c.GraphQLEndpoint()
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}

	path, err := filex.EnsureParentDir(c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error preparing database directory: %w", err)
	}

	db, err := storage.Open(ctx, path, log)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	a := &App{
		config: c,
		log:    log,
		db:     db,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		route:  session.RouteLogin,
	}

	store := session.NewStore(metadata.NewSQLiteRepository(db),
		session.WithNavigator(a.navigate),
		session.WithLogger(log),
	)

	var recorder metrics.Recorder = metrics.Nop{}
	if c.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		recorder = metrics.NewCollector(reg)
		a.metricsSrv = &http.Server{
			Addr:              c.MetricsAddr,
			Handler:           metrics.Handler(reg),
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	limiter := rate.NewLimiter(rate.Limit(c.RequestsPerSecond), 1)
	if c.RequestsPerSecond <= 0 {
		limiter = rate.NewLimiter(rate.Inf, 0)
	}

	gql := graphql.New(endpoint,
		graphql.WithHTTPClient(&http.Client{Timeout: c.RequestTimeout}),
		graphql.WithLinks(
			graphql.RateLimitLink(limiter),
			graphql.RequestIDLink(),
			graphql.AuthLink(store),
		),
		graphql.WithLogger(log),
		graphql.WithMetrics(recorder),
	)

	a.api = api.NewService(gql)
	a.authService = services.NewAuthService(a.api, store, gql.Cache(), log)
	return a, nil
}

// Run serves metrics (when configured), runs the REPL and releases
// resources once it returns.
func (a *App) Run(ctx context.Context) {
	defer a.Close(ctx)

	if a.metricsSrv != nil {
		go func() {
			a.log.Info(ctx, "serving metrics", "addr", a.metricsSrv.Addr)
			if err := a.metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.log.Error(ctx, "metrics server failed", "error", err)
			}
		}()
	}

	a.Root(ctx)
}

func (a *App) Close(ctx context.Context) {
	a.closeDraft()

	if a.metricsSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
		defer cancel()
		if err := a.metricsSrv.Shutdown(shutdownCtx); err != nil {
			a.log.Warn(ctx, "metrics server shutdown", "error", err)
		}
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn(ctx, "database close", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.authService.Session().LoggedIn
}

// navigate is the session store's navigation hook. Leaving the home route
// abandons any profile draft.
func (a *App) navigate(route string) {
	a.mu.Lock()
	changed := a.route != route
	a.route = route
	a.mu.Unlock()

	if route == session.RouteLogin {
		a.closeDraft()
	}
	if changed {
		a.log.Debug(context.Background(), "navigated", "route", route)
	}
}

func (a *App) currentRoute() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.route
}

// StartSessionWatcher checks the stored session every interval and logs out
// once it has expired. It returns when ctx is done.
func (a *App) StartSessionWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			expired, err := a.authService.ExpireIfNeeded(ctx)
			if err != nil {
				a.log.Warn(ctx, "session check failed", "error", err)
				continue
			}
			if expired {
				printlnFn("Session expired, please log in again.")
			}

		case <-ctx.Done():
			return
		}
	}
}
