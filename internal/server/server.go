// Package server exposes a webdemo.Engine over HTTP and WebSocket.
//
// Every connection feeds decoded events into one event loop that owns the
// engine. Successful events broadcast the new frame to all connections;
// failures are reported only to the sender.
package server

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"nhooyr.io/websocket"

	"github.com/innabyinna/ad-labs/internal/logging"
	"github.com/innabyinna/ad-labs/internal/webdemo"
)

const (
	defaultSendBuffer = 16
	defaultReadLimit  = 64 << 10
	shutdownTimeout   = 5 * time.Second
)

var errLoopStopped = errors.New("event loop stopped")

//go:embed static/index.html
var indexHTML []byte

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSendBuffer sets the per-connection outbound queue length. Frames for a
// connection whose queue is full are dropped.
func WithSendBuffer(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.sendBuffer = n
		}
	}
}

// WithReadLimit caps the size of one inbound message in bytes.
func WithReadLimit(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.readLimit = n
		}
	}
}

// Server serves the lab page and the live WebSocket endpoint.
type Server struct {
	engine     *webdemo.Engine
	logger     *zap.Logger
	sendBuffer int
	readLimit  int64

	requests chan request
	loopDone chan struct{}

	connsMu sync.Mutex
	conns   map[*wsConn]struct{}
}

// New wraps engine. The engine must not be used by anyone else afterwards.
func New(engine *webdemo.Engine, opts ...Option) *Server {
	s := &Server{
		engine:     engine,
		logger:     zap.NewNop(),
		sendBuffer: defaultSendBuffer,
		readLimit:  defaultReadLimit,
		requests:   make(chan request),
		loopDone:   make(chan struct{}),
		conns:      make(map[*wsConn]struct{}),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Handler returns the HTTP routes: "/" page, "/healthz" and "/ws".
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(indexHTML)
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/ws", s.serveWS)

	return mux
}

// Run starts the event loop and listens on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	loopCtx, stopLoop := context.WithCancel(ctx)
	defer stopLoop()
	go s.Loop(loopCtx)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	defer s.closeAllConnections("server shutting down")

	select {
	case <-ctx.Done():
		s.logger.Info("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server error", zap.Error(err))
			return err
		}
		return nil
	}
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.logger.Warn("accept", zap.String(logging.FieldRemote, r.RemoteAddr), zap.Error(err))
		return
	}
	conn.SetReadLimit(s.readLimit)

	c := newWSConn(conn, r.RemoteAddr, s.sendBuffer)
	n := s.addConn(c)
	s.logger.Info("connection accepted", zap.String(logging.FieldRemote, c.remote), zap.Int(logging.FieldConns, n))

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go func() {
		select {
		case <-s.loopDone:
			cancel()
		case <-ctx.Done():
		}
	}()

	go func() {
		if err := s.writeLoop(ctx, c); err != nil {
			s.logger.Debug("write loop", zap.String(logging.FieldRemote, c.remote), zap.Error(err))
		}
	}()

	if err := s.submit(ctx, request{kind: requestSnapshot, from: c}); err == nil {
		if err := s.readLoop(ctx, c); err != nil {
			s.logger.Warn("read loop", zap.String(logging.FieldRemote, c.remote), zap.Error(err))
		}
	}

	n = s.dropConn(c)
	c.close(websocket.StatusNormalClosure, "connection closed")
	s.logger.Info("connection closed", zap.String(logging.FieldRemote, c.remote), zap.Int(logging.FieldConns, n))
}

func (s *Server) readLoop(ctx context.Context, c *wsConn) error {
	for {
		msgType, payload, err := c.conn.Read(ctx)
		if err != nil {
			return handleReadError(err)
		}
		if msgType != websocket.MessageText {
			c.enqueue(encodeError(errors.New("expected a text message")))
			continue
		}

		ev, err := decodeEvent(payload)
		if err != nil {
			c.enqueue(encodeError(fmt.Errorf("decode event: %w", err)))
			continue
		}

		if err := s.submit(ctx, request{kind: requestEvent, event: ev, from: c}); err != nil {
			return handleReadError(err)
		}
	}
}

func handleReadError(err error) error {
	if err == nil {
		return nil
	}
	status := websocket.CloseStatus(err)
	if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, errLoopStopped) {
		return nil
	}
	return err
}

func (s *Server) writeLoop(ctx context.Context, c *wsConn) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case payload, ok := <-c.send:
			if !ok {
				return nil
			}
			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := c.conn.Write(writeCtx, websocket.MessageText, payload)
			cancel()
			if err != nil {
				return err
			}
		}
	}
}
