package obs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var (
	// ErrNotConnected is returned by Call when Connect has not succeeded yet
	// or the connection has been closed.
	ErrNotConnected = errors.New("not connected to OBS")

	// ErrAlreadyConnected is returned by Connect on a client that already
	// holds a live connection.
	ErrAlreadyConnected = errors.New("already connected to OBS")

	// ErrConnectionClosed is returned by in-flight calls when the
	// connection drops before a response arrives.
	ErrConnectionClosed = errors.New("connection to OBS closed")
)

// RequestError is a rejection reported by OBS for a single request.
type RequestError struct {
	RequestType string
	Code        int
	Comment     string
}

func (e *RequestError) Error() string {
	if e.Comment != "" {
		return fmt.Sprintf("obs rejected %s (code %d): %s", e.RequestType, e.Code, e.Comment)
	}
	return fmt.Sprintf("obs rejected %s (code %d)", e.RequestType, e.Code)
}

const (
	handshakeTimeout = 10 * time.Second
	callTimeout      = 15 * time.Second
)

// EventHandler receives the raw eventData payload of a matching event.
// Handlers run on the client's dispatch goroutine, never concurrently with
// each other and never re-entrant with Call.
type EventHandler func(data json.RawMessage)

// Client is a connection to the OBS websocket server. It is safe for use
// from multiple goroutines, but is meant to serve one recording session at
// a time; callers serialize sessions above this layer.
type Client struct {
	host     string
	port     int
	password string

	mu        sync.Mutex
	conn      *websocket.Conn
	connected bool
	nextReqID uint64
	pending   map[string]chan requestResponseData
	subs      map[string]map[int]EventHandler
	nextSubID int
	events    chan eventData
}

// New builds a client for the OBS websocket server at host:port. Password
// may be empty when the server has authentication disabled.
func New(host string, port int, password string) *Client {
	return &Client{
		host:     host,
		port:     port,
		password: password,
		subs:     make(map[string]map[int]EventHandler),
	}
}

// Connect dials the server and performs the Hello/Identify negotiation.
// Calling Connect on an already-connected client is an error; Disconnect
// first to reconnect.
func (c *Client) Connect() error {
	c.mu.Lock()
	if c.connected {
		c.mu.Unlock()
		return ErrAlreadyConnected
	}
	c.mu.Unlock()

	u := url.URL{Scheme: "ws", Host: net.JoinHostPort(c.host, strconv.Itoa(c.port))}
	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		return fmt.Errorf("connect to OBS at %s: %w", u.Host, err)
	}

	if err := c.identify(conn); err != nil {
		conn.Close()
		return err
	}

	c.mu.Lock()
	c.conn = conn
	c.connected = true
	c.pending = make(map[string]chan requestResponseData)
	c.events = make(chan eventData, 32)
	c.mu.Unlock()

	go c.dispatchLoop(c.events)
	go c.readLoop(conn, c.events)
	return nil
}

// identify runs the v5 handshake on a fresh connection: read Hello, answer
// the auth challenge if one is present, then wait for Identified.
func (c *Client) identify(conn *websocket.Conn) error {
	var env envelope
	if err := conn.ReadJSON(&env); err != nil {
		return fmt.Errorf("read hello: %w", err)
	}
	if env.Op != opHello {
		return fmt.Errorf("protocol error: expected hello (op %d), got op %d", opHello, env.Op)
	}
	var hello helloData
	if err := json.Unmarshal(env.D, &hello); err != nil {
		return fmt.Errorf("decode hello: %w", err)
	}

	identify := identifyData{
		RPCVersion:         rpcVersion,
		EventSubscriptions: subscriptionOutputs,
	}
	if hello.Authentication != nil {
		identify.Authentication = authResponse(c.password, hello.Authentication.Salt, hello.Authentication.Challenge)
	}
	frame, err := marshalEnvelope(opIdentify, identify)
	if err != nil {
		return fmt.Errorf("encode identify: %w", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		return fmt.Errorf("send identify: %w", err)
	}

	// OBS closes the connection instead of answering when the password
	// is wrong, so a read failure here usually means auth failure.
	if err := conn.ReadJSON(&env); err != nil {
		return fmt.Errorf("authentication with OBS failed (check password): %w", err)
	}
	if env.Op != opIdentified {
		return fmt.Errorf("protocol error: expected identified (op %d), got op %d", opIdentified, env.Op)
	}
	return nil
}

// Disconnect closes the connection. It is idempotent and safe to call on a
// client that never connected.
func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()

	if conn != nil {
		c.teardown(conn)
	}
}

// teardown marks the client disconnected and fails in-flight calls, but
// only if conn is still the current connection; a stale read loop must not
// touch state belonging to a newer connection.
func (c *Client) teardown(conn *websocket.Conn) {
	c.mu.Lock()
	if c.conn == conn {
		c.conn = nil
		c.connected = false
		for id, ch := range c.pending {
			close(ch)
			delete(c.pending, id)
		}
	}
	c.mu.Unlock()
	conn.Close()
}

// Call sends a request and blocks until its response arrives. The respData
// argument may be nil when the response payload is not needed.
func (c *Client) Call(requestType string, reqData any, respData any) error {
	c.mu.Lock()
	if !c.connected {
		c.mu.Unlock()
		return ErrNotConnected
	}
	c.nextReqID++
	id := strconv.FormatUint(c.nextReqID, 10)
	ch := make(chan requestResponseData, 1)
	c.pending[id] = ch
	conn := c.conn

	frame, err := marshalEnvelope(opRequest, requestData{
		RequestType: requestType,
		RequestID:   id,
		RequestData: reqData,
	})
	if err != nil {
		delete(c.pending, id)
		c.mu.Unlock()
		return fmt.Errorf("encode %s: %w", requestType, err)
	}
	err = conn.WriteMessage(websocket.TextMessage, frame)
	c.mu.Unlock()
	if err != nil {
		c.dropPending(id)
		return fmt.Errorf("send %s: %w", requestType, err)
	}

	select {
	case rr, ok := <-ch:
		if !ok {
			return fmt.Errorf("%s: %w", requestType, ErrConnectionClosed)
		}
		if !rr.RequestStatus.Result {
			return &RequestError{
				RequestType: requestType,
				Code:        rr.RequestStatus.Code,
				Comment:     rr.RequestStatus.Comment,
			}
		}
		if respData != nil && len(rr.ResponseData) > 0 {
			if err := json.Unmarshal(rr.ResponseData, respData); err != nil {
				return fmt.Errorf("decode %s response: %w", requestType, err)
			}
		}
		return nil
	case <-time.After(callTimeout):
		c.dropPending(id)
		return fmt.Errorf("%s: timed out waiting for response", requestType)
	}
}

func (c *Client) dropPending(id string) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
}

// Subscription identifies one registered event handler.
type Subscription struct {
	c         *Client
	eventType string
	id        int
}

// On registers a handler for an event type and returns its subscription.
func (c *Client) On(eventType string, h EventHandler) *Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.subs[eventType] == nil {
		c.subs[eventType] = make(map[int]EventHandler)
	}
	c.nextSubID++
	c.subs[eventType][c.nextSubID] = h
	return &Subscription{c: c, eventType: eventType, id: c.nextSubID}
}

// Cancel deregisters the handler. Idempotent: cancelling twice, or
// cancelling a subscription that was already removed, is a no-op. Cleanup
// paths call this unconditionally.
func (s *Subscription) Cancel() {
	if s == nil || s.c == nil {
		return
	}
	s.c.mu.Lock()
	if hs := s.c.subs[s.eventType]; hs != nil {
		delete(hs, s.id)
	}
	s.c.mu.Unlock()
}

func (c *Client) readLoop(conn *websocket.Conn, events chan eventData) {
	for {
		var env envelope
		if err := conn.ReadJSON(&env); err != nil {
			c.teardown(conn)
			close(events)
			return
		}
		switch env.Op {
		case opRequestResponse:
			var rr requestResponseData
			if err := json.Unmarshal(env.D, &rr); err != nil {
				continue
			}
			c.mu.Lock()
			ch := c.pending[rr.RequestID]
			delete(c.pending, rr.RequestID)
			c.mu.Unlock()
			if ch != nil {
				ch <- rr
			}
		case opEvent:
			var ev eventData
			if err := json.Unmarshal(env.D, &ev); err != nil {
				continue
			}
			events <- ev
		}
	}
}

func (c *Client) dispatchLoop(events chan eventData) {
	for ev := range events {
		c.mu.Lock()
		handlers := make([]EventHandler, 0, len(c.subs[ev.EventType]))
		for _, h := range c.subs[ev.EventType] {
			handlers = append(handlers, h)
		}
		c.mu.Unlock()
		for _, h := range handlers {
			h(ev.EventData)
		}
	}
}

// GetRecordStatus reports whether OBS is currently recording.
func (c *Client) GetRecordStatus() (*RecordStatus, error) {
	var status RecordStatus
	if err := c.Call("GetRecordStatus", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// StartRecord starts the record output.
func (c *Client) StartRecord() error {
	return c.Call("StartRecord", nil, nil)
}

// StopRecord requests the record output to stop. The output file path
// arrives later via the RecordStateChanged event, not in this response.
func (c *Client) StopRecord() error {
	return c.Call("StopRecord", nil, nil)
}

// GetVersion returns OBS and obs-websocket version information.
func (c *Client) GetVersion() (*Version, error) {
	var v Version
	if err := c.Call("GetVersion", nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// OnRecordStateChanged registers a typed handler for record-state events.
// Events with payloads that fail to decode are dropped.
func (c *Client) OnRecordStateChanged(h func(RecordStateChanged)) *Subscription {
	return c.On(EventRecordStateChanged, func(data json.RawMessage) {
		var ev RecordStateChanged
		if err := json.Unmarshal(data, &ev); err != nil {
			return
		}
		h(ev)
	})
}
