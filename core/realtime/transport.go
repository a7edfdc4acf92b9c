package realtime

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// Conn is one established transport instance. *websocket.Conn satisfies it.
// ReadMessage is called from a single goroutine; WriteMessage calls are serialized by Connection.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Dialer opens transports. It returns only after the handshake completes or fails.
type Dialer interface {
	Dial(ctx context.Context, url string) (Conn, error)
}

// DialerFunc adapts a function to Dialer.
type DialerFunc func(ctx context.Context, url string) (Conn, error)

func (f DialerFunc) Dial(ctx context.Context, url string) (Conn, error) { return f(ctx, url) }

// WebsocketDialer dials gorilla websocket connections.
type WebsocketDialer struct {
	dialer *websocket.Dialer
	header http.Header
}

// DialerOption configures a WebsocketDialer.
type DialerOption func(*WebsocketDialer)

// WithReadBuffer sets the read buffer size in bytes.
func WithReadBuffer(size int) DialerOption {
	return func(d *WebsocketDialer) {
		d.dialer.ReadBufferSize = size
	}
}

// WithWriteBuffer sets the write buffer size in bytes.
func WithWriteBuffer(size int) DialerOption {
	return func(d *WebsocketDialer) {
		d.dialer.WriteBufferSize = size
	}
}

// WithHandshakeTimeout bounds the opening handshake. Zero means no limit.
func WithHandshakeTimeout(timeout time.Duration) DialerOption {
	return func(d *WebsocketDialer) {
		d.dialer.HandshakeTimeout = timeout
	}
}

// WithSubprotocols sets the requested subprotocols.
func WithSubprotocols(protocols ...string) DialerOption {
	return func(d *WebsocketDialer) {
		d.dialer.Subprotocols = protocols
	}
}

// WithRequestHeader sets extra handshake request headers.
func WithRequestHeader(header http.Header) DialerOption {
	return func(d *WebsocketDialer) {
		d.header = header
	}
}

// NewWebsocketDialer creates a dialer with 1 KiB buffers and no handshake timeout.
func NewWebsocketDialer(opts ...DialerOption) *WebsocketDialer {
	d := &WebsocketDialer{
		dialer: &websocket.Dialer{
			Proxy:           http.ProxyFromEnvironment,
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *WebsocketDialer) Dial(ctx context.Context, url string) (Conn, error) {
	conn, resp, err := d.dialer.DialContext(ctx, url, d.header)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, errors.Join(ErrDial, err)
	}
	return conn, nil
}

// closeReason extracts close information from a read or dial error.
func closeReason(err error) CloseReason {
	var ce *websocket.CloseError
	if errors.As(err, &ce) {
		return CloseReason{Code: ce.Code, Text: ce.Text}
	}
	return CloseReason{Code: websocket.CloseAbnormalClosure, Text: err.Error()}
}

// isCleanClose reports whether err is the peer closing normally.
func isCleanClose(err error) bool {
	return websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway)
}
