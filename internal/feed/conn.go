// Package feed maintains the WebSocket connection to the results server and
// turns it into an ordered stream of lifecycle and frame events.
package feed

import (
	"context"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/apex/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	apierrors "github.com/diogo/liveresults/internal/errors"
)

// DefaultHandshakeTimeout bounds the opening handshake
const DefaultHandshakeTimeout = 10 * time.Second

// closeGrace bounds the close frame written on Close
const closeGrace = time.Second

// EventKind identifies a connection event
type EventKind int

const (
	EventOpened EventKind = iota + 1
	EventReceived
	EventClosed
)

func (k EventKind) String() string {
	switch k {
	case EventOpened:
		return "opened"
	case EventReceived:
		return "received"
	case EventClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Event is one entry of the connection's event stream
type Event struct {
	Kind EventKind
	// Data holds the text frame for EventReceived.
	Data []byte
	// Err is set on EventClosed when the connection failed or dropped
	// abnormally. A normal close from the server leaves it nil.
	Err error
}

// Option configures a Conn
type Option func(*Conn)

// WithDialer replaces the default dialer
func WithDialer(d *websocket.Dialer) Option {
	return func(c *Conn) {
		if d != nil {
			c.dialer = *d
		}
	}
}

// WithHandshakeTimeout sets the opening handshake timeout
func WithHandshakeTimeout(timeout time.Duration) Option {
	return func(c *Conn) {
		c.dialer.HandshakeTimeout = timeout
	}
}

// WithLogger sets the diagnostic logger
func WithLogger(logger log.Interface) Option {
	return func(c *Conn) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithBuffer sets the event channel capacity
func WithBuffer(size int) Option {
	return func(c *Conn) {
		if size >= 0 {
			c.buffer = size
		}
	}
}

// Conn is a single receive-only WebSocket connection.
// It never reconnects and never writes data frames.
type Conn struct {
	endpoint  string
	sessionID string
	dialer    websocket.Dialer
	logger    log.Interface
	buffer    int
	events    chan Event

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	raw     net.Conn // transport while the handshake is in flight
	ws      *websocket.Conn
	closing bool

	closeOnce sync.Once
	closeErr  error
	closeRuns atomic.Int32
}

// Open starts connecting to endpoint in the background and returns at once.
// Events are delivered on Events in the order they occur: at most one
// EventOpened, any number of EventReceived, then EventClosed. The channel is
// closed after the last event or once Close is called. Cancelling parent
// has the same effect as calling Close.
func Open(parent context.Context, endpoint string, opts ...Option) *Conn {
	ctx, cancel := context.WithCancel(parent)

	c := &Conn{
		endpoint:  endpoint,
		sessionID: uuid.NewString(),
		dialer: websocket.Dialer{
			Proxy:            websocket.DefaultDialer.Proxy,
			HandshakeTimeout: DefaultHandshakeTimeout,
		},
		logger: log.Log,
		buffer: 16,
		ctx:    ctx,
		cancel: cancel,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.logger = c.logger.WithFields(log.Fields{
		"session":  c.sessionID,
		"endpoint": endpoint,
	})
	c.events = make(chan Event, c.buffer)

	go c.run()
	context.AfterFunc(parent, func() { _ = c.Close() })
	return c
}

// Events returns the event stream
func (c *Conn) Events() <-chan Event {
	return c.events
}

// SessionID returns the identifier used in this connection's log entries
func (c *Conn) SessionID() string {
	return c.sessionID
}

// Endpoint returns the address this connection dials
func (c *Conn) Endpoint() string {
	return c.endpoint
}

// Close releases the connection whatever its state: dialing, open or
// already closed by the server. Only the first call has any effect.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		c.closeRuns.Add(1)
		c.cancel()

		c.mu.Lock()
		c.closing = true
		raw, ws := c.raw, c.ws
		c.mu.Unlock()

		switch {
		case ws != nil:
			_ = ws.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(closeGrace),
			)
			c.closeErr = ws.Close()
		case raw != nil:
			c.closeErr = raw.Close()
		}

		c.logger.Debug("connection released")
	})
	return c.closeErr
}

func (c *Conn) run() {
	defer close(c.events)

	ws, err := c.dial()

	c.mu.Lock()
	c.raw = nil
	c.mu.Unlock()

	if err != nil {
		if c.ctx.Err() != nil {
			return
		}
		c.logger.WithError(err).Warn("connect failed")
		c.emit(Event{
			Kind: EventClosed,
			Err:  apierrors.NewConnectionError(c.endpoint, "connect failed", err),
		})
		return
	}

	c.mu.Lock()
	if c.closing {
		c.mu.Unlock()
		_ = ws.Close()
		return
	}
	c.ws = ws
	c.mu.Unlock()

	c.logger.Info("connected")
	if !c.emit(Event{Kind: EventOpened}) {
		return
	}

	for {
		kind, data, err := ws.ReadMessage()
		if err != nil {
			if c.ctx.Err() != nil {
				return
			}
			var closeErr error
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				closeErr = apierrors.NewConnectionError(c.endpoint, "", err)
			}
			c.logger.WithField("reason", err.Error()).Info("disconnected")
			c.emit(Event{Kind: EventClosed, Err: closeErr})
			return
		}

		if kind != websocket.TextMessage {
			c.logger.WithField("type", kind).Debug("ignoring non-text frame")
			continue
		}

		if !c.emit(Event{Kind: EventReceived, Data: data}) {
			return
		}
	}
}

// dial performs the handshake, keeping the transport reachable from Close
// so that an in-flight handshake can be aborted.
func (c *Conn) dial() (*websocket.Conn, error) {
	dialer := c.dialer
	base := dialer.NetDialContext
	if base == nil {
		base = (&net.Dialer{}).DialContext
	}

	dialer.NetDialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := base(ctx, network, addr)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		if c.closing {
			_ = conn.Close()
			return nil, context.Canceled
		}
		c.raw = conn
		return conn, nil
	}

	ws, _, err := dialer.DialContext(c.ctx, c.endpoint, nil)
	return ws, err
}

// emit delivers ev unless the connection has been released
func (c *Conn) emit(ev Event) bool {
	select {
	case c.events <- ev:
		return true
	case <-c.ctx.Done():
		return false
	}
}
