package server

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/innabyinna/ad-labs/internal/logging"
	"github.com/innabyinna/ad-labs/internal/webdemo"
)

type requestKind int

const (
	requestEvent requestKind = iota
	requestSnapshot
)

type request struct {
	kind  requestKind
	event webdemo.Event
	from  *wsConn
}

// submit hands req to the event loop in arrival order.
func (s *Server) submit(ctx context.Context, req request) error {
	select {
	case s.requests <- req:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-s.loopDone:
		return errLoopStopped
	}
}

// Loop owns the engine and serves requests until ctx is cancelled. Exactly
// one Loop may run per Server.
func (s *Server) Loop(ctx context.Context) {
	defer close(s.loopDone)

	for {
		select {
		case <-ctx.Done():
			return
		case req := <-s.requests:
			s.handle(req)
		}
	}
}

func (s *Server) handle(req request) {
	switch req.kind {
	case requestSnapshot:
		s.sendSnapshot(req.from, s.engine.Frame())
	case requestEvent:
		frame, err := s.engine.OnEvent(req.event)
		if err != nil {
			req.from.enqueue(encodeError(err))
			return
		}
		if err := s.broadcastFrame(frame); err != nil {
			req.from.enqueue(encodeError(err))
		}
	}
}

// sendSnapshot queues f for c alone. A frame that cannot be encoded is
// reported to c as an error message.
func (s *Server) sendSnapshot(c *wsConn, f webdemo.Frame) {
	payload, err := encodeFrame(f)
	if err != nil {
		s.logger.Error("encode frame", zap.Uint64(logging.FieldSeq, f.Seq), zap.Error(err))
		c.enqueue(encodeError(fmt.Errorf("encode frame: %w", err)))
		return
	}
	if !c.enqueue(payload) {
		s.logger.Debug("snapshot dropped", zap.String(logging.FieldRemote, c.remote))
	}
}

// broadcastFrame queues frame for every connection. Nothing is sent when the
// frame cannot be encoded.
func (s *Server) broadcastFrame(frame webdemo.Frame) error {
	payload, err := encodeFrame(frame)
	if err != nil {
		s.logger.Error("encode frame", zap.Uint64(logging.FieldSeq, frame.Seq), zap.Error(err))
		return fmt.Errorf("encode frame: %w", err)
	}

	conns := s.snapshotConns()
	dropped := 0
	for _, c := range conns {
		if !c.enqueue(payload) {
			dropped++
		}
	}

	if dropped > 0 {
		s.logger.Warn("broadcast dropped",
			zap.Uint64(logging.FieldSeq, frame.Seq),
			zap.Int("dropped", dropped),
			zap.Int(logging.FieldConns, len(conns)),
		)
	}
	return nil
}
