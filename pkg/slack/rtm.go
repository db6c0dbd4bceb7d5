package slack

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// RTM is a realtime connection to the Slack message stream. Incoming
// events and errors are delivered on buffered channels; the UI event
// loop drains them one at a time. Sends are fire-and-forget: delivery
// confirmation arrives later as an acknowledgment event carrying the
// client-assigned correlation id.
type RTM struct {
	url  string
	conn *websocket.Conn
	mu   sync.RWMutex

	connected bool
	closed    bool

	events   chan Event
	outgoing chan OutgoingMessage
	errors   chan error

	logger *log.Logger

	shutdown chan struct{}
	wg       sync.WaitGroup
}

// NewRTM creates a realtime connection for the websocket URL returned
// by rtm.start.
func NewRTM(wsURL string) *RTM {
	return &RTM{
		url:      wsURL,
		events:   make(chan Event, 100),
		outgoing: make(chan OutgoingMessage, 100),
		errors:   make(chan error, 10),
		shutdown: make(chan struct{}),
	}
}

// SetLogger sets a logger for debugging connection events.
func (r *RTM) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *RTM) logf(format string, args ...interface{}) {
	if r.logger != nil {
		r.logger.Printf(format, args...)
	}
}

// Connect dials the websocket and starts the reader and writer
// goroutines.
func (r *RTM) Connect() error {
	r.mu.Lock()
	if r.connected {
		r.mu.Unlock()
		return fmt.Errorf("already connected")
	}
	r.mu.Unlock()

	r.logf("Connecting to realtime stream at %s", r.url)

	conn, _, err := websocket.DefaultDialer.Dial(r.url, nil)
	if err != nil {
		return fmt.Errorf("realtime dial: %w", err)
	}

	r.mu.Lock()
	r.conn = conn
	r.connected = true
	r.mu.Unlock()

	r.logf("Realtime stream connected")

	r.wg.Add(2)
	go r.readLoop()
	go r.writeLoop()

	return nil
}

// Send queues an outgoing message. It never blocks the caller; a down
// connection or a full queue is reported as an error instead.
func (r *RTM) Send(msg OutgoingMessage) error {
	if !r.IsConnected() {
		return fmt.Errorf("realtime connection down")
	}
	select {
	case r.outgoing <- msg:
		return nil
	case <-r.shutdown:
		return fmt.Errorf("realtime connection closed")
	default:
		return fmt.Errorf("outgoing queue full")
	}
}

// Events returns the channel of decoded realtime events.
func (r *RTM) Events() <-chan Event {
	return r.events
}

// Errors returns the channel of connection errors.
func (r *RTM) Errors() <-chan error {
	return r.errors
}

// IsConnected reports whether the socket is up.
func (r *RTM) IsConnected() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.connected
}

// Close shuts the connection down permanently.
func (r *RTM) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.connected = false
	conn := r.conn
	r.mu.Unlock()

	close(r.shutdown)
	if conn != nil {
		conn.Close()
	}
	r.wg.Wait()
	close(r.events)
	close(r.errors)
}

// readLoop decodes events off the socket and hands them to the events
// channel. Events that fail to decode are reported and skipped; the
// stream itself stays up.
func (r *RTM) readLoop() {
	defer r.wg.Done()

	for {
		_, data, err := r.conn.ReadMessage()
		if err != nil {
			r.markDisconnected()
			select {
			case <-r.shutdown:
			default:
				r.logf("Realtime read failed: %v", err)
				r.reportError(fmt.Errorf("realtime stream: %w", err))
			}
			return
		}

		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			r.logf("Skipping undecodable event: %v", err)
			continue
		}

		select {
		case r.events <- ev:
		case <-r.shutdown:
			return
		default:
			// Queue full: the UI is not draining. Drop the event rather
			// than block the socket reader.
			r.logf("Warning: event queue full, dropping event type=%q", ev.Type)
		}
	}
}

// writeLoop serializes queued messages onto the socket.
func (r *RTM) writeLoop() {
	defer r.wg.Done()

	for {
		select {
		case msg := <-r.outgoing:
			data, err := json.Marshal(msg)
			if err != nil {
				r.reportError(fmt.Errorf("encoding outgoing message: %w", err))
				continue
			}
			if err := r.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				// Mark the connection down before reporting so callers
				// that see the error get fail-fast sends, not silent
				// queueing
				r.markDisconnected()
				r.logf("Realtime write failed: %v", err)
				r.reportError(fmt.Errorf("realtime send: %w", err))
				return
			}
		case <-r.shutdown:
			return
		}
	}
}

func (r *RTM) markDisconnected() {
	r.mu.Lock()
	r.connected = false
	r.mu.Unlock()
}

func (r *RTM) reportError(err error) {
	select {
	case r.errors <- err:
	default:
	}
}
