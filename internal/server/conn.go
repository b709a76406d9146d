package server

import (
	"sync"

	"nhooyr.io/websocket"
)

type wsConn struct {
	conn   *websocket.Conn
	remote string
	send   chan []byte

	mu        sync.Mutex
	closed    bool
	closeOnce sync.Once
}

func newWSConn(conn *websocket.Conn, remote string, buffer int) *wsConn {
	if buffer <= 0 {
		buffer = defaultSendBuffer
	}
	return &wsConn{
		conn:   conn,
		remote: remote,
		send:   make(chan []byte, buffer),
	}
}

// enqueue queues payload without blocking. It reports false when the
// connection is closed or its queue is full.
func (c *wsConn) enqueue(payload []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}

func (c *wsConn) close(code websocket.StatusCode, reason string) {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		close(c.send)
		c.mu.Unlock()
		_ = c.conn.Close(code, reason)
	})
}

func (s *Server) addConn(c *wsConn) int {
	s.connsMu.Lock()
	defer s.connsMu.Unlock()
	s.conns[c] = struct{}{}
	return len(s.conns)
}

func (s *Server) dropConn(c *wsConn) int {
	s.connsMu.Lock()
	defer s.connsMu.Unlock()
	delete(s.conns, c)
	return len(s.conns)
}

func (s *Server) snapshotConns() []*wsConn {
	s.connsMu.Lock()
	defer s.connsMu.Unlock()

	if len(s.conns) == 0 {
		return nil
	}
	out := make([]*wsConn, 0, len(s.conns))
	for c := range s.conns {
		out = append(out, c)
	}
	return out
}

// ConnectionCount returns the number of open WebSocket connections.
func (s *Server) ConnectionCount() int {
	s.connsMu.Lock()
	defer s.connsMu.Unlock()
	return len(s.conns)
}

func (s *Server) closeAllConnections(reason string) {
	for _, c := range s.snapshotConns() {
		c.close(websocket.StatusGoingAway, reason)
	}
}
