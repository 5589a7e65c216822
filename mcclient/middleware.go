// The onion model chain in this file is adapted from the teacher's
// request/response middleware: there, a Middleware wrapped a handler
// that took an RPC message and returned one. Here there is no request
// paired with each response — the server pushes packets on its own
// schedule — so HandlerFunc wraps the receive step itself, not a
// handler of an already-received message. A middleware chain built
// from it still runs in the same order: outermost first on entry, same
// order in reverse once the wrapped receive returns.
package mcclient

import (
	"time"

	"go.uber.org/zap"

	"github.com/mcclient/mcclient/internal/ratelimit"
)

// HandlerFunc performs one blocking receive step against conn.
type HandlerFunc func(conn *Connection) (Packet, error)

// Middleware wraps a HandlerFunc with cross-cutting behavior.
type Middleware func(next HandlerFunc) HandlerFunc

// Chain composes middlewares so the first one listed is the outermost
// layer, exactly as in the request/response chain this is adapted
// from.
func Chain(middlewares ...Middleware) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}

// BaseHandler is the innermost HandlerFunc: an ordinary Connection.Recv.
func BaseHandler(conn *Connection) (Packet, error) {
	return conn.Recv()
}

// LoggingMiddleware logs each dispatch step's packet name, phase, and
// duration.
func LoggingMiddleware(log *zap.SugaredLogger) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(conn *Connection) (Packet, error) {
			start := time.Now()
			pkt, err := next(conn)
			if err != nil {
				log.Debugw("dispatch step failed", "phase", conn.Phase().String(), "duration", time.Since(start), "error", err)
				return pkt, err
			}
			log.Debugw("dispatch step", "phase", conn.Phase().String(), "packet", pkt.Name, "duration", time.Since(start))
			return pkt, nil
		}
	}
}

// TimeoutMiddleware bounds the next blocking receive by a deadline on
// the socket itself (Connection.SetDeadline sets both the read and the
// write deadline). The teacher's equivalent timeout
// middleware raced the handler against a context in a second
// goroutine because its handler ran arbitrary business logic that had
// to be abandoned without blocking the caller forever. Nothing here
// runs in the background: the only blocking operation is the socket
// read inside BaseHandler, and net.Conn already has a deadline
// primitive built to interrupt exactly that, so there is no race to
// build.
func TimeoutMiddleware(d time.Duration) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(conn *Connection) (Packet, error) {
			if err := conn.SetDeadline(d); err != nil {
				return Packet{}, err
			}
			return next(conn)
		}
	}
}

// RateLimitMiddleware short-circuits the dispatch loop when inbound
// packets are arriving faster than limiter allows, guarding against a
// misbehaving or hostile server driving the client's CPU with a packet
// flood (e.g. a tight loop of plugin messages).
func RateLimitMiddleware(limiter *ratelimit.Limiter) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(conn *Connection) (Packet, error) {
			if err := limiter.Allow(); err != nil {
				return Packet{}, err
			}
			return next(conn)
		}
	}
}

// RunLoop drives conn's dispatch loop through the given handler chain
// until either the handler returns an error or onPacket does.
func RunLoop(conn *Connection, handler HandlerFunc, onPacket func(Packet) error) error {
	for {
		pkt, err := handler(conn)
		if err != nil {
			return err
		}
		if pkt.Name == "" {
			continue
		}
		if err := onPacket(pkt); err != nil {
			return err
		}
	}
}
