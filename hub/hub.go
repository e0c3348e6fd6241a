// Copyright (c) 2025, Orrery Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hub bridges the engine event stream onto WebSocket
// subscribers. The hub implements [events.Bus]: the engine publishes
// into a buffered channel and per-client writer goroutines fan the
// events out, so the hub never blocks the frame tick and never calls
// back into the engine.
package hub

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/orrery-viz/orrery/events"
)

// WebSocket timeouts per the gorilla chat example.
const (
	// writeWait is the time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// pongWait is the time allowed to read the next pong from the peer.
	pongWait = 60 * time.Second

	// pingPeriod is the ping interval; must be less than pongWait.
	pingPeriod = 54 * time.Second

	// maxMessageSize bounds inbound messages; subscribers only listen.
	maxMessageSize = 4096

	// sendBuffer is the per-client outbound queue length.
	sendBuffer = 64
)

// Hub fans the engine event stream out to WebSocket subscribers.
type Hub struct {
	upgrader websocket.Upgrader

	register   chan *client
	unregister chan *client
	broadcast  chan *events.Event
	done       chan struct{}
	closeOnce  sync.Once
}

// client is one WebSocket subscriber connection.
type client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan *events.Event
	id        string
	closeOnce sync.Once
}

// NewHub returns a running hub. Close releases it.
func NewHub() *Hub {
	h := &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan *events.Event, 256),
		done:       make(chan struct{}),
	}
	go h.run()
	return h
}

// Publish implements [events.Bus]. Events are queued without blocking;
// when the queue is full the event is dropped with a warning, never
// stalling the caller.
func (h *Hub) Publish(ev *events.Event) {
	select {
	case h.broadcast <- ev:
	case <-h.done:
	default:
		slog.Warn("hub: broadcast queue full, dropping event", "type", ev.Type)
	}
}

// ServeHTTP upgrades the request to a WebSocket subscription.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("hub: upgrade failed", "err", err)
		return
	}
	c := &client{
		hub:  h,
		conn: conn,
		send: make(chan *events.Event, sendBuffer),
		id:   uuid.NewString(),
	}
	select {
	case h.register <- c:
		go c.writePump()
		go c.readPump()
	case <-h.done:
		conn.Close()
	}
}

// Close shuts the hub down, closing all subscriber connections.
func (h *Hub) Close() {
	h.closeOnce.Do(func() {
		close(h.done)
	})
}

// run owns the client registry; all membership changes go through its
// channels so no lock is needed.
func (h *Hub) run() {
	clients := map[*client]bool{}
	for {
		select {
		case c := <-h.register:
			clients[c] = true
			slog.Debug("hub: client registered", "client_id", c.id)
		case c := <-h.unregister:
			if clients[c] {
				delete(clients, c)
				c.close()
			}
		case ev := <-h.broadcast:
			for c := range clients {
				select {
				case c.send <- ev:
				default:
					slog.Warn("hub: client queue full, dropping event",
						"client_id", c.id, "type", ev.Type)
				}
			}
		case <-h.done:
			for c := range clients {
				c.close()
			}
			return
		}
	}
}

// writePump serializes all writes for one connection: queued events
// and keepalive pings.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case <-c.hub.done:
			return
		case ev, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(ev); err != nil {
				slog.Warn("hub: event write failed",
					"client_id", c.id, "err", err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump drains the connection for control frames and detects
// closure. Subscribers send nothing meaningful; inbound payloads are
// discarded.
func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNoStatusReceived,
			) {
				slog.Warn("hub: read error", "client_id", c.id, "err", err)
			}
			return
		}
	}
}

// close releases the client's send channel exactly once.
func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}
