package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shiftkerja/shiftclient/core/authclient"
	"github.com/shiftkerja/shiftclient/core/config"
	"github.com/shiftkerja/shiftclient/core/guard"
	"github.com/shiftkerja/shiftclient/core/health"
	"github.com/shiftkerja/shiftclient/core/logger"
	"github.com/shiftkerja/shiftclient/core/realtime"
	"github.com/shiftkerja/shiftclient/core/session"
	"github.com/shiftkerja/shiftclient/integration/database/redis"
)

var ErrUnknownStorage = errors.New("unknown session storage")

// App wires the session manager, navigation router and realtime connection.
// Each is created once here and handed out by reference.
type App struct {
	config    Config
	hasConfig bool

	logger   *slog.Logger
	auth     session.Authenticator
	storage  session.Storage
	session  *session.Manager
	router   *guard.Router
	conn     *realtime.Connection
	connOpts []realtime.Option

	checks  []health.Check
	closers []func() error
}

type AppOption func(*App) error

// NewApp builds the application. Configuration comes from the environment
// unless WithConfig is given. ctx bounds storage connection set-up only.
func NewApp(ctx context.Context, opts ...AppOption) (*App, error) {
	app := &App{}
	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if !app.hasConfig {
		if err := config.Load(&app.config); err != nil {
			return nil, err
		}
	}
	cfg := app.config

	if app.logger == nil {
		app.logger = logger.New(
			logger.WithEnvironment(cfg.Env, cfg.AppName),
			logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		)
	}

	if app.storage == nil {
		st, err := app.openStorage(ctx)
		if err != nil {
			return nil, err
		}
		app.storage = st
	}

	if app.auth == nil {
		app.auth = authclient.New(cfg.Login)
	}

	app.session = session.NewFromConfig(cfg.Session, app.storage, app.auth,
		session.WithLogger(app.logger),
	)

	app.router = guard.NewRouter(app.session,
		guard.WithLoginPath(app.session.LoginRoute()),
		guard.WithLogger(app.logger),
	)
	app.session.SetNavigator(app.router)

	app.conn = realtime.NewFromConfig(cfg.Realtime,
		append([]realtime.Option{realtime.WithLogger(app.logger)}, app.connOpts...)...,
	)

	return app, nil
}

func (a *App) openStorage(ctx context.Context) (session.Storage, error) {
	switch a.config.Storage {
	case StorageMemory:
		return session.NewMemoryStorage(nil), nil
	case StorageFile, "":
		return session.NewFileStorage(a.config.SessionFile), nil
	case StorageRedis:
		client, err := redis.Connect(ctx, a.config.Redis)
		if err != nil {
			return nil, err
		}
		a.checks = append(a.checks, redis.Healthcheck(client))
		a.closers = append(a.closers, client.Close)
		return redis.NewSessionStorage(client, a.config.Redis.KeyPrefix), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStorage, a.config.Storage)
	}
}

// Start hydrates the session, performs the initial navigation to the home
// route and, if configured, opens the realtime connection.
func (a *App) Start(ctx context.Context) error {
	if err := a.session.Hydrate(ctx); err != nil {
		a.logger.WarnContext(ctx, "starting without a stored session", logger.Error(err))
	}

	res := a.router.Navigate(ctx, guard.HomePath)
	a.logger.InfoContext(ctx, "client started",
		logger.Component("app"),
		logger.Route(res.Path),
		slog.Bool("authenticated", a.session.Current().IsAuthenticated()),
	)

	if a.config.ConnectOnStart {
		a.conn.Connect(ctx)
	}
	return nil
}

// Ready runs every dependency health check.
func (a *App) Ready(ctx context.Context) error {
	return health.Readiness(ctx, a.logger, a.checks...)
}

// Shutdown closes the realtime connection, releases subscribers and closes storage.
func (a *App) Shutdown(ctx context.Context) error {
	errs := []error{a.conn.Shutdown(), a.session.Close()}
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	err := errors.Join(errs...)
	a.logger.InfoContext(ctx, "client stopped", logger.Component("app"), logger.Error(err))
	return err
}

func (a *App) Config() Config                   { return a.config }
func (a *App) Logger() *slog.Logger             { return a.logger }
func (a *App) Session() *session.Manager        { return a.session }
func (a *App) Router() *guard.Router            { return a.router }
func (a *App) Connection() *realtime.Connection { return a.conn }

func WithConfig(cfg Config) AppOption {
	return func(app *App) error {
		app.config = cfg
		app.hasConfig = true
		return nil
	}
}

func WithLogger(logger *slog.Logger) AppOption {
	return func(app *App) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		app.logger = logger
		return nil
	}
}

func WithStorage(storage session.Storage) AppOption {
	return func(app *App) error {
		if storage == nil {
			return errors.New("storage cannot be nil")
		}
		app.storage = storage
		return nil
	}
}

func WithAuthenticator(auth session.Authenticator) AppOption {
	return func(app *App) error {
		if auth == nil {
			return errors.New("authenticator cannot be nil")
		}
		app.auth = auth
		return nil
	}
}

func WithRealtimeOptions(opts ...realtime.Option) AppOption {
	return func(app *App) error {
		app.connOpts = append(app.connOpts, opts...)
		return nil
	}
}
