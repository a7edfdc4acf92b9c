package session

import (
	"context"
	"log/slog"
)

// DefaultLoginRoute is where Logout navigates.
const DefaultLoginRoute = "/login"

// Config holds session manager configuration.
type Config struct {
	LoginRoute      string `env:"SESSION_LOGIN_ROUTE" envDefault:"/login"`
	BroadcastBuffer int    `env:"SESSION_BROADCAST_BUFFER" envDefault:"8"`
}

// Authenticator exchanges credentials for a session at the login endpoint.
type Authenticator interface {
	Authenticate(ctx context.Context, creds Credentials) (Session, error)
}

// Navigator performs the navigation side effect of Logout.
type Navigator interface {
	Redirect(ctx context.Context, path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, path string)

func (f NavigatorFunc) Redirect(ctx context.Context, path string) { f(ctx, path) }

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for login failures and storage errors.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithNavigator sets the navigator invoked by Logout.
func WithNavigator(n Navigator) Option {
	return func(m *Manager) {
		m.navigator = n
	}
}

// WithLoginRoute overrides the unauthenticated entry point used by Logout.
func WithLoginRoute(path string) Option {
	return func(m *Manager) {
		if path != "" {
			m.loginRoute = path
		}
	}
}

// WithBroadcastBuffer sets the per-subscriber buffer of Subscribe channels.
func WithBroadcastBuffer(n int) Option {
	return func(m *Manager) {
		m.bufferSize = n
	}
}

// WithConfig applies values from cfg.
func WithConfig(cfg Config) Option {
	return func(m *Manager) {
		WithLoginRoute(cfg.LoginRoute)(m)
		if cfg.BroadcastBuffer > 0 {
			m.bufferSize = cfg.BroadcastBuffer
		}
	}
}
