package realtime_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/shiftkerja/shiftclient/core/realtime"
)

// wsServer is a websocket backend that records upgrades and received frames.
type wsServer struct {
	srv      *httptest.Server
	upgrades atomic.Int32
	conns    chan *websocket.Conn
	received chan string
	readErrs chan error
}

func newWSServer(t *testing.T) *wsServer {
	t.Helper()

	s := &wsServer{
		conns:    make(chan *websocket.Conn, 16),
		received: make(chan string, 16),
		readErrs: make(chan error, 16),
	}
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}

	s.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		s.upgrades.Add(1)
		s.conns <- conn
		go func() {
			for {
				_, data, err := conn.ReadMessage()
				if err != nil {
					s.readErrs <- err
					return
				}
				s.received <- string(data)
			}
		}()
	}))
	t.Cleanup(s.srv.Close)
	return s
}

func (s *wsServer) url() string {
	return "ws" + strings.TrimPrefix(s.srv.URL, "http")
}

// fakeConn is an in-memory transport.
type fakeConn struct {
	in     chan string
	closed chan struct{}
	once   sync.Once

	mu      sync.Mutex
	written []string
}

func newFakeConn() *fakeConn {
	return &fakeConn{in: make(chan string, 16), closed: make(chan struct{})}
}

func (f *fakeConn) ReadMessage() (int, []byte, error) {
	select {
	case msg := <-f.in:
		return websocket.TextMessage, []byte(msg), nil
	case <-f.closed:
		return 0, nil, &websocket.CloseError{Code: websocket.CloseGoingAway, Text: "bye"}
	}
}

func (f *fakeConn) WriteMessage(messageType int, data []byte) error {
	select {
	case <-f.closed:
		return errors.New("use of closed connection")
	default:
	}
	if messageType == websocket.TextMessage {
		f.mu.Lock()
		f.written = append(f.written, string(data))
		f.mu.Unlock()
	}
	return nil
}

func (f *fakeConn) Close() error {
	f.once.Do(func() { close(f.closed) })
	return nil
}

func (f *fakeConn) Written() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.written...)
}

// gatedDialer hands out conn once release is closed.
type gatedDialer struct {
	release chan struct{}
	conn    *fakeConn
	dials   atomic.Int32
}

func newGatedDialer() *gatedDialer {
	return &gatedDialer{release: make(chan struct{}), conn: newFakeConn()}
}

func (d *gatedDialer) Dial(ctx context.Context, url string) (realtime.Conn, error) {
	d.dials.Add(1)
	select {
	case <-d.release:
		return d.conn, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
