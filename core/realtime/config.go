package realtime

import (
	"log/slog"
	"time"
)

// DefaultURL is the backend realtime endpoint.
const DefaultURL = "ws://localhost:8080/ws"

// Config holds realtime connection settings.
type Config struct {
	URL              string        `env:"REALTIME_URL" envDefault:"ws://localhost:8080/ws"`
	HandshakeTimeout time.Duration `env:"REALTIME_HANDSHAKE_TIMEOUT" envDefault:"0s"`
	ReadBufferSize   int           `env:"REALTIME_READ_BUFFER" envDefault:"1024"`
	WriteBufferSize  int           `env:"REALTIME_WRITE_BUFFER" envDefault:"1024"`
	BroadcastBuffer  int           `env:"REALTIME_BROADCAST_BUFFER" envDefault:"64"`

	Reconnect            bool          `env:"REALTIME_RECONNECT" envDefault:"false"`
	ReconnectMaxAttempts int           `env:"REALTIME_RECONNECT_MAX_ATTEMPTS" envDefault:"5"`
	ReconnectBaseDelay   time.Duration `env:"REALTIME_RECONNECT_BASE_DELAY" envDefault:"1s"`
	ReconnectMaxDelay    time.Duration `env:"REALTIME_RECONNECT_MAX_DELAY" envDefault:"30s"`
}

// Option configures a Connection.
type Option func(*Connection)

// WithLogger sets the logger for transport events.
func WithLogger(l *slog.Logger) Option {
	return func(c *Connection) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithDialer replaces the websocket dialer.
func WithDialer(d Dialer) Option {
	return func(c *Connection) {
		if d != nil {
			c.dialer = d
		}
	}
}

// WithReconnect enables automatic reconnection after unexpected closes.
func WithReconnect(p ReconnectPolicy) Option {
	return func(c *Connection) {
		c.policy = &p
	}
}

// WithBroadcastBuffer sets the per-subscriber buffer for Subscribe and Messages.
func WithBroadcastBuffer(n int) Option {
	return func(c *Connection) {
		if n > 0 {
			c.bufferSize = n
		}
	}
}

// NewFromConfig builds a Connection and its websocket dialer from cfg, then applies opts.
func NewFromConfig(cfg Config, opts ...Option) *Connection {
	base := []Option{
		WithDialer(NewWebsocketDialer(
			WithReadBuffer(cfg.ReadBufferSize),
			WithWriteBuffer(cfg.WriteBufferSize),
			WithHandshakeTimeout(cfg.HandshakeTimeout),
		)),
		WithBroadcastBuffer(cfg.BroadcastBuffer),
	}
	if cfg.Reconnect {
		base = append(base, WithReconnect(ReconnectPolicy{
			MaxAttempts: cfg.ReconnectMaxAttempts,
			BaseDelay:   cfg.ReconnectBaseDelay,
			MaxDelay:    cfg.ReconnectMaxDelay,
		}))
	}
	url := cfg.URL
	if url == "" {
		url = DefaultURL
	}
	return New(url, append(base, opts...)...)
}
