package guard

import (
	"context"
	"log/slog"
	"sync"

	"github.com/shiftkerja/shiftclient/core/logger"
	"github.com/shiftkerja/shiftclient/core/session"
)

// Default route paths.
const (
	LoginPath = "/login"
	HomePath  = "/"
)

// Route is a named navigation target with its access requirement.
type Route struct {
	Name   string
	Path   string
	Access Access
}

// DefaultRoutes returns the application's route table: a public login page
// and an authenticated home.
func DefaultRoutes() []Route {
	return []Route{
		{Name: "login", Path: LoginPath},
		{Name: "home", Path: HomePath, Access: Access{RequiresAuth: true}},
	}
}

// SessionSource provides the session the guard evaluates. *session.Manager satisfies it.
type SessionSource interface {
	Current() session.Session
}

// Result describes a completed navigation attempt.
type Result struct {
	// Requested is the path passed to Navigate.
	Requested string
	// Decision is the guard outcome for Requested.
	Decision Decision
	// Path is where the router ended up.
	Path string
	// Blocked is set when the redirect target was itself denied, leaving the router where it was.
	Blocked bool
}

// Router resolves paths to routes and consults Decide before every transition.
// Unknown paths carry no restriction.
type Router struct {
	sessions      SessionSource
	loginPath     string
	fallbackPath  string
	logger        *slog.Logger
	afterNavigate func(ctx context.Context, from string, res Result)

	mu      sync.RWMutex
	routes  map[string]Route
	current string
}

// RouterOption configures a Router.
type RouterOption func(*Router)

// WithRoutes replaces the default route table.
func WithRoutes(routes ...Route) RouterOption {
	return func(r *Router) {
		r.routes = make(map[string]Route, len(routes))
		for _, rt := range routes {
			r.routes[rt.Path] = rt
		}
	}
}

// WithLoginPath sets the redirect target for unauthenticated access.
func WithLoginPath(path string) RouterOption {
	return func(r *Router) {
		if path != "" {
			r.loginPath = path
		}
	}
}

// WithFallbackPath sets the redirect target for role mismatches.
func WithFallbackPath(path string) RouterOption {
	return func(r *Router) {
		if path != "" {
			r.fallbackPath = path
		}
	}
}

// WithLogger sets the router logger.
func WithLogger(l *slog.Logger) RouterOption {
	return func(r *Router) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithAfterNavigate registers a hook called after every navigation attempt.
func WithAfterNavigate(fn func(ctx context.Context, from string, res Result)) RouterOption {
	return func(r *Router) {
		r.afterNavigate = fn
	}
}

// NewRouter creates a router over DefaultRoutes, reading sessions from src.
func NewRouter(src SessionSource, opts ...RouterOption) *Router {
	r := &Router{
		sessions:     src,
		loginPath:    LoginPath,
		fallbackPath: HomePath,
		logger:       logger.Discard(),
	}
	WithRoutes(DefaultRoutes()...)(r)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds or replaces routes.
func (r *Router) Register(routes ...Route) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rt := range routes {
		r.routes[rt.Path] = rt
	}
}

// Lookup returns the route registered at path.
func (r *Router) Lookup(path string) (Route, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rt, ok := r.routes[path]
	return rt, ok
}

// Current returns the path of the last successful navigation, or "" before the first one.
func (r *Router) Current() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Evaluate runs the guard for path against the current session without navigating.
func (r *Router) Evaluate(path string) Decision {
	rt, _ := r.Lookup(path)
	return Decide(rt.Access, r.sessions.Current())
}

// Navigate attempts a transition to path, following at most one redirect.
func (r *Router) Navigate(ctx context.Context, path string) Result {
	s := r.sessions.Current()
	res := Result{Requested: path, Decision: r.decide(path, s)}

	target := path
	switch res.Decision {
	case RedirectToLogin:
		target = r.loginPath
	case RedirectToFallback:
		target = r.fallbackPath
	}

	if target != path && r.decide(target, s) != Proceed {
		res.Blocked = true
	}

	r.mu.Lock()
	from := r.current
	if !res.Blocked {
		r.current = target
	}
	res.Path = r.current
	r.mu.Unlock()

	level := slog.LevelDebug
	if res.Blocked {
		level = slog.LevelWarn
	}
	r.logger.Log(ctx, level, "navigation",
		logger.Component("guard"),
		logger.Route(path),
		slog.String("decision", res.Decision.String()),
		slog.String("landed", res.Path),
		slog.Bool("blocked", res.Blocked),
	)

	if r.afterNavigate != nil {
		r.afterNavigate(ctx, from, res)
	}
	return res
}

// Redirect navigates to path. It lets the router serve as a session.Navigator.
func (r *Router) Redirect(ctx context.Context, path string) {
	r.Navigate(ctx, path)
}

func (r *Router) decide(path string, s session.Session) Decision {
	rt, _ := r.Lookup(path)
	return Decide(rt.Access, s)
}
