// Package realtime maintains the persistent push connection to the booking
// service. One channel exists per active session; it is torn down and
// redialed whenever the owning session's token changes.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"homecall/models"
	"homecall/utils"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Owner events carry a payload (the booking, or the deleted booking id).
const (
	EventNewBooking     = "newBooking"
	EventBookingUpdated = "bookingUpdated"
	EventBookingDeleted = "bookingDeleted"
)

// Provider events are coarse change signals with no payload.
const (
	EventProviderConfirmed = "booking-confirmed"
	EventProviderUpdated   = "booking-updated"
	EventProviderDeleted   = "booking-deleted"
	EventProviderPaid      = "booking-paid"
)

// ProviderEvents lists every coarse provider-side signal.
var ProviderEvents = []string{
	EventProviderConfirmed,
	EventProviderUpdated,
	EventProviderDeleted,
	EventProviderPaid,
}

// Handler receives the raw payload of one named event.
type Handler func(data json.RawMessage)

// frame is the wire format: one named event per message.
type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Channel is one open push connection. Events are dispatched in the order the
// server sent them; no ordering is guaranteed relative to concurrent REST
// responses, so subscribers must merge idempotently.
type Channel struct {
	conn *websocket.Conn

	mu       sync.Mutex
	handlers map[string][]Handler
	closed   bool

	readerDone chan struct{}
}

// Dial opens a channel to the service at baseURL, authenticating with the
// session token at connection time.
func Dial(ctx context.Context, baseURL string, role models.Role, token, deviceID string) (*Channel, error) {
	u, err := socketURL(baseURL, role, token, deviceID)
	if err != nil {
		return nil, err
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		return nil, utils.ClassifyTransportError(err)
	}

	ch := &Channel{
		conn:       conn,
		handlers:   make(map[string][]Handler),
		readerDone: make(chan struct{}),
	}
	go ch.readLoop()
	return ch, nil
}

// On registers a handler for the named event.
func (c *Channel) On(event string, fn Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[event] = append(c.handlers[event], fn)
}

// Close tears down the connection. It blocks until the read loop has exited,
// so no handler fires after Close returns.
func (c *Channel) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	err := c.conn.Close()
	<-c.readerDone
	return err
}

func (c *Channel) readLoop() {
	defer close(c.readerDone)
	logger := utils.GetLogger()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			c.mu.Lock()
			closed := c.closed
			c.mu.Unlock()
			if !closed {
				logger.Warn("Realtime connection lost", zap.Error(err))
			}
			return
		}

		var f frame
		if err := json.Unmarshal(data, &f); err != nil {
			logger.Warn("Dropping malformed realtime frame", zap.Error(err))
			continue
		}

		c.mu.Lock()
		handlers := make([]Handler, len(c.handlers[f.Event]))
		copy(handlers, c.handlers[f.Event])
		c.mu.Unlock()

		for _, fn := range handlers {
			fn(f.Data)
		}
	}
}

func socketURL(baseURL string, role models.Role, token, deviceID string) (string, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	}
	u.Path += "/socket"
	q := u.Query()
	q.Set("role", string(role))
	if token != "" {
		q.Set("token", token)
	}
	if deviceID != "" {
		q.Set("deviceId", deviceID)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
