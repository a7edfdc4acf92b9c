package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sethvargo/go-retry"

	"github.com/shiftkerja/shiftclient/core/logger"
	"github.com/shiftkerja/shiftclient/pkg/broadcast"
)

// clientCloseText is the reason recorded when Close ends a transport.
const clientCloseText = "client closed"

// Connection owns one logical realtime channel to the backend.
//
// It starts Disconnected. Connect dials in the background; the transport's
// open, message, close and error events then drive the state machine.
// A Closed connection stays closed until Connect is called again, unless a
// ReconnectPolicy was configured.
type Connection struct {
	url        string
	dialer     Dialer
	logger     *slog.Logger
	policy     *ReconnectPolicy
	bufferSize int

	mu      sync.Mutex
	state   State
	reason  CloseReason
	conn    Conn
	connID  string
	inbox   []string
	dials   int
	backoff retry.Backoff
	timer   *time.Timer
	dialCtx context.Context

	writeMu sync.Mutex

	statuses *broadcast.MemoryBroadcaster[Status]
	messages *broadcast.MemoryBroadcaster[string]
}

// New creates a Disconnected connection to url.
func New(url string, opts ...Option) *Connection {
	c := &Connection{
		url:        url,
		dialer:     NewWebsocketDialer(),
		logger:     logger.Discard(),
		bufferSize: 64,
		state:      Disconnected,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.statuses = broadcast.NewMemoryBroadcaster[Status](c.bufferSize)
	c.messages = broadcast.NewMemoryBroadcaster[string](c.bufferSize)
	return c
}

// Connect starts a transport unless one is already Open or Connecting.
// It returns true when a dial was started. ctx bounds the handshake only;
// once open, the transport lives until the peer closes it or Close is called.
func (c *Connection) Connect(ctx context.Context) bool {
	c.mu.Lock()
	if c.state == Open || c.state == Connecting {
		c.mu.Unlock()
		c.logger.DebugContext(ctx, "realtime connect ignored",
			logger.Component("realtime"),
			logger.State(c.State().String()),
		)
		return false
	}
	c.stopTimerLocked()
	id := uuid.NewString()
	c.connID = id
	c.state = Connecting
	c.reason = CloseReason{}
	c.dialCtx = ctx
	c.dials++
	st := c.statusLocked()
	c.mu.Unlock()

	c.logger.InfoContext(ctx, "realtime connecting",
		logger.Component("realtime"),
		logger.ConnectionID(id),
		logger.URL(c.url),
	)
	c.publish(st)

	go c.run(ctx, id)
	return true
}

// Send serializes v to JSON and writes it as a text frame. It is a no-op
// returning false unless the connection is Open; nothing is queued.
func (c *Connection) Send(v any) bool {
	c.mu.Lock()
	conn, id, open := c.conn, c.connID, c.state == Open
	c.mu.Unlock()
	if !open || conn == nil {
		return false
	}

	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn("realtime send dropped",
			logger.Component("realtime"),
			logger.ConnectionID(id),
			logger.Error(errors.Join(ErrEncode, err)),
		)
		return false
	}

	c.writeMu.Lock()
	err = conn.WriteMessage(websocket.TextMessage, data)
	c.writeMu.Unlock()
	if err != nil {
		c.logger.Warn("realtime send failed",
			logger.Component("realtime"),
			logger.ConnectionID(id),
			logger.Error(errors.Join(ErrWrite, err)),
		)
		return false
	}
	return true
}

// Close ends the current transport with a normal closure and moves to Closed.
// Automatic reconnection does not follow a Close. Calling Close while
// Disconnected or Closed does nothing.
func (c *Connection) Close() error {
	c.mu.Lock()
	if c.state == Disconnected || c.state == Closed {
		c.stopTimerLocked()
		c.mu.Unlock()
		return nil
	}
	conn, id := c.conn, c.connID
	c.stopTimerLocked()
	c.conn = nil
	c.connID = ""
	c.state = Closed
	c.reason = CloseReason{Code: websocket.CloseNormalClosure, Text: clientCloseText}
	st := c.statusLocked()
	st.ConnectionID = id
	c.mu.Unlock()

	var err error
	if conn != nil {
		c.writeMu.Lock()
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, clientCloseText))
		c.writeMu.Unlock()
		err = conn.Close()
	}

	c.logger.Info("realtime closed",
		logger.Component("realtime"),
		logger.ConnectionID(id),
		logger.Reason(clientCloseText),
	)
	c.publish(st)
	return err
}

// Shutdown closes the transport and releases every subscriber.
func (c *Connection) Shutdown() error {
	err := c.Close()
	_ = c.statuses.Close()
	_ = c.messages.Close()
	return err
}

// IsConnected reports whether the state is Open.
func (c *Connection) IsConnected() bool {
	return c.State() == Open
}

// State returns the current state.
func (c *Connection) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Status returns the current state with its close reason and transport id.
func (c *Connection) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statusLocked()
}

// Inbox returns a copy of every frame received so far, in arrival order.
func (c *Connection) Inbox() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.inbox)
}

// Dials returns how many transports Connect has started.
func (c *Connection) Dials() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dials
}

// URL returns the backend address.
func (c *Connection) URL() string {
	return c.url
}

// Subscribe delivers every state transition until ctx ends.
// Slow readers miss transitions rather than stall the connection.
func (c *Connection) Subscribe(ctx context.Context) <-chan Status {
	return relay(ctx, c.statuses.Subscribe(ctx), c.bufferSize)
}

// Messages delivers inbound frames as they arrive until ctx ends.
// Inbox remains the complete record.
func (c *Connection) Messages(ctx context.Context) <-chan string {
	return relay(ctx, c.messages.Subscribe(ctx), c.bufferSize)
}

func (c *Connection) run(ctx context.Context, id string) {
	conn, err := c.dialer.Dial(ctx, c.url)
	if err != nil {
		c.handleError(id, err)
		c.handleClose(id, closeReason(err))
		return
	}

	if !c.handleOpen(id, conn) {
		_ = conn.Close()
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !isCleanClose(err) {
				c.handleError(id, err)
			}
			c.handleClose(id, closeReason(err))
			return
		}
		c.handleMessage(id, data)
	}
}

// handleOpen moves Connecting to Open. It returns false when the attempt was
// superseded, in which case the caller must discard conn.
func (c *Connection) handleOpen(id string, conn Conn) bool {
	c.mu.Lock()
	if c.connID != id || c.state != Connecting {
		c.mu.Unlock()
		return false
	}
	c.conn = conn
	c.state = Open
	c.backoff = nil
	st := c.statusLocked()
	c.mu.Unlock()

	c.logger.Info("realtime open",
		logger.Component("realtime"),
		logger.ConnectionID(id),
	)
	c.publish(st)
	return true
}

// handleMessage appends a raw frame to the inbox.
func (c *Connection) handleMessage(id string, data []byte) {
	msg := string(data)

	c.mu.Lock()
	if c.connID != id {
		c.mu.Unlock()
		return
	}
	c.inbox = append(c.inbox, msg)
	c.mu.Unlock()

	c.logger.Debug("realtime message",
		logger.Component("realtime"),
		logger.ConnectionID(id),
		slog.Int("bytes", len(data)),
	)
	_ = c.messages.Broadcast(context.Background(), broadcast.Message[string]{Data: msg})
}

// handleError records a transport error. The close that follows changes state.
func (c *Connection) handleError(id string, err error) {
	c.logger.Warn("realtime transport error",
		logger.Component("realtime"),
		logger.ConnectionID(id),
		logger.Error(err),
	)
}

// handleClose moves the connection to Closed and, if a policy allows it,
// schedules the next attempt.
func (c *Connection) handleClose(id string, reason CloseReason) {
	c.mu.Lock()
	if c.connID != id {
		c.mu.Unlock()
		return
	}
	c.conn = nil
	c.state = Closed
	c.reason = reason
	st := c.statusLocked()
	delay, retrying := c.scheduleReconnectLocked()
	c.mu.Unlock()

	c.logger.Info("realtime closed",
		logger.Component("realtime"),
		logger.ConnectionID(id),
		logger.Reason(reason.String()),
	)
	c.publish(st)

	if retrying {
		c.logger.Info("realtime reconnect scheduled",
			logger.Component("realtime"),
			logger.Delay(delay),
		)
	}
}

func (c *Connection) scheduleReconnectLocked() (time.Duration, bool) {
	if c.policy == nil {
		return 0, false
	}
	ctx := c.dialCtx
	if ctx == nil || ctx.Err() != nil {
		return 0, false
	}
	if c.backoff == nil {
		c.backoff = c.policy.backoff()
	}
	delay, stop := c.backoff.Next()
	if stop {
		c.logger.Warn("realtime reconnect attempts exhausted",
			logger.Component("realtime"),
			logger.RetryCount(c.policy.MaxAttempts),
		)
		return 0, false
	}
	c.timer = time.AfterFunc(delay, func() {
		if ctx.Err() != nil {
			return
		}
		c.Connect(ctx)
	})
	return delay, true
}

func (c *Connection) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Connection) statusLocked() Status {
	st := Status{State: c.state, ConnectionID: c.connID}
	if c.state == Closed {
		st.Reason = c.reason
	}
	return st
}

func (c *Connection) publish(st Status) {
	_ = c.statuses.Broadcast(context.Background(), broadcast.Message[Status]{Data: st})
}

func relay[T any](ctx context.Context, sub broadcast.Subscriber[T], size int) <-chan T {
	out := make(chan T, size)
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
