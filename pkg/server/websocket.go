package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const clientBuffer = 8

// client is one live update websocket.
type client struct {
	conn *websocket.Conn
	send chan string
	done chan struct{}
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &client{
		conn: conn,
		send: make(chan string, clientBuffer),
		done: make(chan struct{}),
	}
	s.addClient(c)
	defer s.removeClient(c)

	// Queue the current body on the loop so it orders before any later
	// broadcast.
	err = s.dispatchRaw(r.Context(), func() {
		if html, err := s.tree.HTML(); err == nil {
			c.send <- html
		}
	})
	if err != nil {
		return
	}

	go s.writeLoop(c)
	s.readLoop(c)
}

// readLoop discards client messages until the connection fails.
func (s *Server) readLoop(c *client) {
	c.conn.SetReadLimit(512)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("websocket read error", "error", err)
			}
			return
		}
	}
}

func (s *Server) writeLoop(c *client) {
	ticker := time.NewTicker(s.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				s.logger.Debug("websocket write error", "error", err)
				c.close()
				return
			}

		case <-ticker.C:
			deadline := time.Now().Add(s.config.WriteTimeout)
			if err := c.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				c.close()
				return
			}

		case <-c.done:
			return
		}
	}
}

func (s *Server) addClient(c *client) {
	s.clientsMu.Lock()
	s.clients[c] = struct{}{}
	n := len(s.clients)
	s.clientsMu.Unlock()

	if s.metrics != nil {
		s.metrics.ClientConnected()
	}
	s.logger.Debug("client connected", "clients", n)
}

func (s *Server) removeClient(c *client) {
	s.clientsMu.Lock()
	_, ok := s.clients[c]
	delete(s.clients, c)
	s.clientsMu.Unlock()

	c.close()
	if ok && s.metrics != nil {
		s.metrics.ClientDisconnected()
	}
}

// broadcast queues html for every client. A client whose buffer is full is
// disconnected.
func (s *Server) broadcast(html string) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	for c := range s.clients {
		select {
		case c.send <- html:
		default:
			s.logger.Warn("client too slow, disconnecting")
			c.close()
		}
	}
}

func (s *Server) closeClients() {
	s.clientsMu.Lock()
	clients := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.clientsMu.Unlock()

	for _, c := range clients {
		c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		c.close()
	}
}
