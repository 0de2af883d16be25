package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ErrNotConnected indicates a send was attempted with no open connection.
var ErrNotConnected = errors.New("realtime: not connected")

// reconnectBase is the initial delay between reconnect attempts; it doubles
// up to reconnectMax.
const (
	reconnectBase = time.Second
	reconnectMax  = 30 * time.Second
	writeTimeout  = 5 * time.Second
)

// envelope is the wire frame: a type tag plus a raw payload.
type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Client is a websocket-backed Feed. It maintains one connection, decodes
// typed envelopes onto the bus, and reconnects with backoff. A malformed
// frame is dropped, never fatal.
type Client struct {
	url string
	bus *Bus

	mu        sync.Mutex
	wmu       sync.Mutex // serializes writes; gorilla allows one writer
	conn      *websocket.Conn
	joined    string // course to (re-)join on connect
	connected bool
	closed    bool

	cancel context.CancelFunc
	done   chan struct{}
}

// NewClient creates a Client for the given websocket URL. Call Start to
// connect.
func NewClient(url string) *Client {
	return &Client{url: url, bus: NewBus()}
}

// Start opens the connection and begins the read/reconnect loop. It returns
// after the first dial attempt; later failures are handled by reconnection
// and surfaced through connection-state callbacks.
func (c *Client) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		cancel()
		return errors.New("realtime: client closed")
	}
	c.cancel = cancel
	c.done = make(chan struct{})
	c.mu.Unlock()

	err := c.dial(ctx)
	go c.run(ctx)
	return err
}

// JoinCourse subscribes this connection to one course's events. The course
// id is remembered and re-sent after every reconnect.
func (c *Client) JoinCourse(courseID string) error {
	c.mu.Lock()
	c.joined = courseID
	conn := c.conn
	c.mu.Unlock()

	if conn == nil {
		return ErrNotConnected
	}
	return c.send(conn, "join_course", map[string]string{"course_id": courseID})
}

// Connected reports whether the websocket is currently open.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// SubscribeConnection implements Feed.
func (c *Client) SubscribeConnection(fn func(bool)) func() {
	return c.bus.SubscribeConnection(fn)
}

// SubscribeResearchUpdate implements Feed.
func (c *Client) SubscribeResearchUpdate(fn func(ResearchUpdate)) func() {
	return c.bus.SubscribeResearchUpdate(fn)
}

// SubscribeSourceFound implements Feed.
func (c *Client) SubscribeSourceFound(fn func(SourceFound)) func() {
	return c.bus.SubscribeSourceFound(fn)
}

// SubscribeResearchCompleted implements Feed.
func (c *Client) SubscribeResearchCompleted(fn func(ResearchCompleted)) func() {
	return c.bus.SubscribeResearchCompleted(fn)
}

// Close shuts the connection down and stops reconnection. Closing twice is
// safe; no callback fires after Close returns.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	cancel := c.cancel
	conn := c.conn
	c.conn = nil
	c.connected = false
	done := c.done
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if conn != nil {
		conn.Close()
	}
	if done != nil {
		<-done
	}
	return nil
}

// run reads frames until the context is cancelled, reconnecting with
// exponential backoff on loss.
func (c *Client) run(ctx context.Context) {
	defer close(c.done)
	backoff := reconnectBase

	for {
		c.mu.Lock()
		conn := c.conn
		c.mu.Unlock()

		if conn != nil {
			backoff = reconnectBase
			c.readLoop(conn)
			c.setConnected(nil, false)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		if backoff < reconnectMax {
			backoff *= 2
		}
		if err := c.dial(ctx); err != nil && ctx.Err() != nil {
			return
		}
	}
}

func (c *Client) dial(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return fmt.Errorf("dialing %s: %w", c.url, err)
	}

	c.setConnected(conn, true)

	// Re-join the course after a reconnect.
	c.mu.Lock()
	joined := c.joined
	c.mu.Unlock()
	if joined != "" {
		if err := c.send(conn, "join_course", map[string]string{"course_id": joined}); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) setConnected(conn *websocket.Conn, connected bool) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		if conn != nil {
			conn.Close()
		}
		return
	}
	c.conn = conn
	c.connected = connected
	c.mu.Unlock()
	c.bus.PublishConnection(connected)
}

func (c *Client) readLoop(conn *websocket.Conn) {
	defer conn.Close()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		c.dispatch(data)
	}
}

// dispatch decodes one frame and publishes it. Unknown types and broken
// payloads are ignored.
func (c *Client) dispatch(data []byte) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return
	}
	switch env.Type {
	case "research_update":
		var ev ResearchUpdate
		if json.Unmarshal(env.Payload, &ev) == nil {
			c.bus.PublishResearchUpdate(ev)
		}
	case "source_found":
		var ev SourceFound
		if json.Unmarshal(env.Payload, &ev) == nil {
			c.bus.PublishSourceFound(ev)
		}
	case "research_completed":
		var ev ResearchCompleted
		if json.Unmarshal(env.Payload, &ev) == nil {
			c.bus.PublishResearchCompleted(ev)
		}
	}
}

func (c *Client) send(conn *websocket.Conn, msgType string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", msgType, err)
	}
	frame, err := json.Marshal(envelope{Type: msgType, Payload: raw})
	if err != nil {
		return fmt.Errorf("encoding envelope: %w", err)
	}
	c.wmu.Lock()
	defer c.wmu.Unlock()
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		return fmt.Errorf("sending %s: %w", msgType, err)
	}
	return nil
}
