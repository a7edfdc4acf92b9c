package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/shiftkerja/shiftclient/core/logger"
	"github.com/shiftkerja/shiftclient/pkg/broadcast"
)

// Manager owns the process-wide session. Construct one with NewManager, call
// Hydrate once at start-up, and pass the *Manager to every consumer.
// Close releases subscribers on shutdown.
type Manager struct {
	mu         sync.RWMutex
	current    Session
	storage    Storage
	auth       Authenticator
	navigator  Navigator
	loginRoute string
	bufferSize int
	logger     *slog.Logger
	changes    *broadcast.MemoryBroadcaster[Session]
}

// NewManager creates a manager holding the empty session.
func NewManager(storage Storage, auth Authenticator, opts ...Option) *Manager {
	m := &Manager{
		storage:    storage,
		auth:       auth,
		loginRoute: DefaultLoginRoute,
		bufferSize: 8,
		logger:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.changes = broadcast.NewMemoryBroadcaster[Session](m.bufferSize)
	return m
}

// NewFromConfig creates a manager using cfg, then applies opts.
func NewFromConfig(cfg Config, storage Storage, auth Authenticator, opts ...Option) *Manager {
	return NewManager(storage, auth, append([]Option{WithConfig(cfg)}, opts...)...)
}

// SetNavigator replaces the navigator used by Logout. It exists for wiring
// cycles where the navigator itself depends on the manager.
func (m *Manager) SetNavigator(n Navigator) {
	m.mu.Lock()
	m.navigator = n
	m.mu.Unlock()
}

// Hydrate replaces the in-memory session with the durable copy.
// On a read failure the session is left unauthenticated and the error is returned.
func (m *Manager) Hydrate(ctx context.Context) error {
	m.mu.Lock()
	s, err := m.storage.Load(ctx)
	if err != nil {
		m.current = Session{}
	} else {
		m.current = s
	}
	m.mu.Unlock()

	if err != nil {
		m.logger.ErrorContext(ctx, "session hydrate failed",
			logger.Component("session"),
			logger.Error(err),
		)
		return err
	}

	m.logger.DebugContext(ctx, "session hydrated",
		logger.Component("session"),
		slog.Bool("authenticated", s.IsAuthenticated()),
		logger.Role(string(s.Role)),
	)
	m.publish(s)
	return nil
}

// Login exchanges creds for a session. On success the session is written to
// durable storage, then to memory, and true is returned. Any failure leaves
// the session untouched, is logged, and yields false.
func (m *Manager) Login(ctx context.Context, creds Credentials) bool {
	start := time.Now()

	s, err := m.auth.Authenticate(ctx, creds)
	if err != nil {
		m.logger.WarnContext(ctx, "login failed",
			logger.Component("session"),
			logger.Action("login"),
			logger.Error(err),
			logger.Elapsed(start),
		)
		return false
	}
	if !s.IsAuthenticated() || s.Role == "" {
		m.logger.WarnContext(ctx, "login failed",
			logger.Component("session"),
			logger.Action("login"),
			logger.Error(ErrIncompleteSession),
		)
		return false
	}

	m.mu.Lock()
	if err := m.storage.Save(ctx, s); err != nil {
		m.mu.Unlock()
		m.logger.ErrorContext(ctx, "login failed",
			logger.Component("session"),
			logger.Action("persist"),
			logger.Error(err),
		)
		return false
	}
	m.current = s
	m.mu.Unlock()

	attrs := []any{
		logger.Component("session"),
		logger.Action("login"),
		logger.Result("success"),
		logger.Role(string(s.Role)),
		logger.Elapsed(start),
	}
	if c, err := ParseClaims(s.Token); err == nil {
		attrs = append(attrs, logger.ID("user_id", c.UserID))
	}
	m.logger.InfoContext(ctx, "logged in", attrs...)

	m.publish(s)
	return true
}

// Logout clears the in-memory session and its durable copy, then redirects to
// the login route. Calling it while logged out only repeats the redirect.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	err := m.storage.Clear(ctx)
	m.current = Session{}
	nav := m.navigator
	m.mu.Unlock()

	if err != nil {
		m.logger.ErrorContext(ctx, "session clear failed",
			logger.Component("session"),
			logger.Action("logout"),
			logger.Error(err),
		)
	} else {
		m.logger.InfoContext(ctx, "logged out",
			logger.Component("session"),
			logger.Action("logout"),
		)
	}

	m.publish(Session{})

	if nav != nil {
		nav.Redirect(ctx, m.loginRoute)
	}
}

// Current returns the in-memory session.
func (m *Manager) Current() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// LoginRoute returns the path Logout redirects to.
func (m *Manager) LoginRoute() string {
	return m.loginRoute
}

// Subscribe returns a channel receiving the session after every hydrate,
// login and logout. The channel is closed when ctx ends or the manager is closed.
// Slow readers miss updates rather than block the manager.
func (m *Manager) Subscribe(ctx context.Context) <-chan Session {
	sub := m.changes.Subscribe(ctx)
	out := make(chan Session, m.bufferSize)

	go func() {
		defer close(out)
		for msg := range sub.Receive(ctx) {
			select {
			case out <- msg.Data:
			case <-ctx.Done():
				_ = sub.Close()
				return
			}
		}
	}()

	return out
}

// Close releases every subscriber. The session itself is left as is.
func (m *Manager) Close() error {
	return m.changes.Close()
}

func (m *Manager) publish(s Session) {
	_ = m.changes.Broadcast(context.Background(), broadcast.Message[Session]{Data: s})
}
