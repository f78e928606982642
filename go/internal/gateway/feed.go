package gateway

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/mcdev12/franchise/go/internal/events"
	"github.com/rs/zerolog/log"
)

// Feed fans league transaction events out to connected WebSocket clients.
// There is a single league-wide feed; clients that fall behind have their
// send buffer dropped rather than stalling the broadcast.
type Feed struct {
	connections map[*Connection]bool
	mu          sync.RWMutex

	upgrader    websocket.Upgrader
	config      ConnectionConfig
	broadcastCh chan events.TransactionEvent
}

// Connection is one WebSocket client on the feed
type Connection struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte
	feed *Feed

	ConnectedAt time.Time
}

// ConnectionConfig tunes WebSocket connection behavior
type ConnectionConfig struct {
	WriteTimeout    time.Duration
	ReadTimeout     time.Duration
	PingInterval    time.Duration
	MaxMessageSize  int64
	ReadBufferSize  int
	WriteBufferSize int
	CheckOrigin     func(r *http.Request) bool
}

// DefaultConnectionConfig returns default WebSocket settings
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		WriteTimeout:    10 * time.Second,
		ReadTimeout:     60 * time.Second,
		PingInterval:    30 * time.Second,
		MaxMessageSize:  1024,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			// restricted by the cors layer in front of the mux
			return true
		},
	}
}

// NewFeed creates a transaction feed
func NewFeed(config ConnectionConfig) *Feed {
	return &Feed{
		connections: make(map[*Connection]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		config:      config,
		broadcastCh: make(chan events.TransactionEvent, 1000),
	}
}

// Start processes broadcast events until the context ends
func (f *Feed) Start(ctx context.Context) {
	log.Info().Msg("transaction feed started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("transaction feed shutting down")
			f.closeAll()
			return
		case event := <-f.broadcastCh:
			f.broadcast(event)
		}
	}
}

// Broadcast queues an event for delivery to every connected client
func (f *Feed) Broadcast(event events.TransactionEvent) {
	select {
	case f.broadcastCh <- event:
	default:
		log.Warn().Str("event_id", event.ID.String()).Msg("broadcast channel full, dropping event")
	}
}

// Upgrade converts an HTTP request into a feed connection
func (f *Feed) Upgrade(w http.ResponseWriter, r *http.Request) error {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &Connection{
		ID:          uuid.New().String(),
		Conn:        conn,
		Send:        make(chan []byte, 256),
		feed:        f,
		ConnectedAt: time.Now(),
	}

	f.mu.Lock()
	f.connections[c] = true
	f.mu.Unlock()

	go c.writePump()
	go c.readPump()

	log.Info().Str("connection_id", c.ID).Msg("feed client connected")
	return nil
}

// ConnectionCount returns the number of live clients
func (f *Feed) ConnectionCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.connections)
}

func (f *Feed) broadcast(event events.TransactionEvent) {
	data, err := encodeEvent(event)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode feed event")
		return
	}

	f.mu.RLock()
	defer f.mu.RUnlock()
	for c := range f.connections {
		select {
		case c.Send <- data:
		default:
			// slow client; drop the message instead of blocking the feed
			log.Warn().Str("connection_id", c.ID).Msg("client send buffer full")
		}
	}
}

func (f *Feed) remove(c *Connection) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.connections[c] {
		delete(f.connections, c)
		close(c.Send)
	}
}

func (f *Feed) closeAll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for c := range f.connections {
		delete(f.connections, c)
		close(c.Send)
		_ = c.Conn.Close()
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(c.feed.config.PingInterval)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(c.feed.config.WriteTimeout))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Debug().Err(err).Str("connection_id", c.ID).Msg("write failed")
				return
			}
		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(c.feed.config.WriteTimeout))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Connection) readPump() {
	defer func() {
		c.feed.remove(c)
		_ = c.Conn.Close()
		log.Info().Str("connection_id", c.ID).Msg("feed client disconnected")
	}()

	c.Conn.SetReadLimit(c.feed.config.MaxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(c.feed.config.ReadTimeout))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(c.feed.config.ReadTimeout))
	})

	// the feed is one-way; reads only service control frames
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			return
		}
	}
}
