// Package mcclient implements the client side of the connection state
// machine: the phase-indexed packet dispatch, the single connection's
// read/write loop, and keep alive reflection, the one protocol-level
// behavior that lives above framing but below application logic.
// Connection does not answer the server's known-packs packet itself:
// Recv returns it to the caller like any other packet.
//
// The connection is intentionally synchronous: one goroutine owns the
// socket, issues a blocking read, handles or forwards what comes back,
// and only then sends its own next packet. Real Minecraft traffic is
// not request/response — the server pushes unsolicited packets
// constantly — so there is no in-flight multiplexing to do here; a
// caller that wants concurrent bots runs one Connection per goroutine
// instead (see Pool).
package mcclient

import (
	"bufio"
	"fmt"
	"net"
	"time"

	"github.com/rs/xid"
	"go.uber.org/zap"

	"github.com/mcclient/mcclient/frame"
	"github.com/mcclient/mcclient/internal/logging"
	"github.com/mcclient/mcclient/internal/metrics"
	"github.com/mcclient/mcclient/internal/protoerr"
	"github.com/mcclient/mcclient/internal/ratelimit"
	"github.com/mcclient/mcclient/wire"
)

// Connection is one client-side session: a single TCP connection plus
// the phase it has progressed to.
type Connection struct {
	conn    net.Conn
	cr      *frame.CountingReader
	w       *bufio.Writer
	phase   Phase
	catalog *catalog
	trace   xid.ID
	log     *zap.SugaredLogger
	limiter *ratelimit.Limiter
}

// Option configures a Connection at Dial time.
type Option func(*Connection)

// WithLogger overrides the default logger (internal/logging.New()).
func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Connection) { c.log = l }
}

// WithRateLimit caps outbound packets per second, guarding against a
// runaway bot loop flooding the server.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Connection) { c.limiter = ratelimit.New(perSecond, burst) }
}

// Dial opens a TCP connection to addr and wraps it for the handshake
// phase. The caller still has to send the Handshake packet itself —
// Dial only establishes the socket.
func Dial(addr string, opts ...Option) (*Connection, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("mcclient: dial %s: %w", addr, protoerr.WrapIO(err))
	}
	return newConnection(conn, opts...), nil
}

func newConnection(conn net.Conn, opts ...Option) *Connection {
	c := &Connection{
		conn:    conn,
		cr:      frame.NewCountingReader(bufio.NewReader(conn)),
		w:       bufio.NewWriter(conn),
		phase:   PhaseHandshake,
		catalog: defaultCatalog,
		trace:   xid.New(),
		log:     logging.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Phase returns the connection's current phase.
func (c *Connection) Phase() Phase { return c.phase }

// SetPhase advances (or otherwise changes) the connection's phase.
// Callers drive this explicitly at the handshake transition points
// (LoginAcknowledged -> Configuration, FinishConfiguration ->
// AckFinishConfiguration -> Play) rather than Connection inferring it
// from traffic, since the transition is a client decision, not
// something derivable from packet ids alone.
func (c *Connection) SetPhase(p Phase) {
	c.log.Debugw("phase transition", "trace", c.trace.String(), "from", c.phase.String(), "to", p.String())
	c.phase = p
}

// Close closes the underlying connection.
func (c *Connection) Close() error { return c.conn.Close() }

// Send encodes and writes the named serverbound packet for the
// connection's current phase.
func (c *Connection) Send(name string, payload any) error {
	if c.limiter != nil {
		if err := c.limiter.Allow(); err != nil {
			return err
		}
	}
	entry, id, err := c.catalog.lookupForEncode(c.phase, name)
	if err != nil {
		return err
	}
	size := entry.size(payload)
	err = frame.WritePacket(c.w, id, size, func(w wire.Writer) error {
		return entry.encode(w, payload)
	})
	if err != nil {
		return fmt.Errorf("mcclient: send %s: %w", name, err)
	}
	c.log.Debugw("sent packet", "trace", c.trace.String(), "phase", c.phase.String(), "packet", name, "id", id)
	return nil
}

// Packet is one decoded inbound packet: its catalog name (empty if the
// id had no registered decoder) and its typed payload (nil in that
// case).
type Packet struct {
	Name    string
	ID      int32
	Payload any
}

// Recv blocks for exactly one application-visible packet, silently
// handling and not returning the protocol-level keep alive exchange —
// a caller never needs to see a keep alive to reflect it, so Recv loops
// past them internally.
func (c *Connection) Recv() (Packet, error) {
	for {
		pkt, err := c.recvOne()
		if err != nil {
			return Packet{}, err
		}
		if !c.reflectKeepAlive(pkt) {
			return pkt, nil
		}
	}
}

func (c *Connection) recvOne() (Packet, error) {
	h, err := frame.ReadHeader(c.cr)
	if err != nil {
		return Packet{}, fmt.Errorf("mcclient: recv: %w", err)
	}
	payloadLen := h.PayloadLen()

	entry, ok := c.catalog.clientboundEntry(c.phase, h.ID)
	if !ok {
		metrics.UnknownPacketsTotal.WithLabelValues(c.phase.String(), fmt.Sprint(h.ID)).Inc()
		if err := frame.SkipRaw(c.cr, payloadLen); err != nil {
			return Packet{}, err
		}
		c.log.Debugw("skipped unknown packet", "trace", c.trace.String(), "phase", c.phase.String(), "id", h.ID)
		return Packet{ID: h.ID}, nil
	}

	before := c.cr.Count()
	payload, decodeErr := entry.decode(c.cr, payloadLen)
	if decodeErr != nil {
		metrics.DecodeErrorsTotal.WithLabelValues(c.phase.String()).Inc()
		return Packet{}, fmt.Errorf("mcclient: decode %s: %w", entry.name, decodeErr)
	}
	if err := frame.Resync(c.cr, before, payloadLen); err != nil {
		return Packet{}, fmt.Errorf("mcclient: resync after %s: %w", entry.name, err)
	}

	metrics.PacketsDecodedTotal.WithLabelValues(c.phase.String(), fmt.Sprint(h.ID)).Inc()
	c.log.Debugw("received packet", "trace", c.trace.String(), "phase", c.phase.String(), "packet", entry.name)
	return Packet{Name: entry.name, ID: h.ID, Payload: payload}, nil
}

// reflectKeepAlive echoes a clientbound keep alive back to the server
// on the matching serverbound id for the current phase, reporting
// whether pkt was in fact a keep alive (and so should not be surfaced
// to the caller).
func (c *Connection) reflectKeepAlive(pkt Packet) bool {
	if pkt.Name != "ClientboundKeepAlive" {
		return false
	}
	ka, ok := pkt.Payload.(KeepAlivePacket)
	if !ok {
		return false
	}
	if err := c.Send("ServerboundKeepAlive", ka); err != nil {
		c.log.Warnw("keep alive reflection failed", "trace", c.trace.String(), "error", err)
		return true
	}
	metrics.KeepAliveReflectedTotal.WithLabelValues(c.phase.String()).Inc()
	return true
}

// SetDeadline sets both read and write deadlines on the underlying
// connection, the idiomatic net.Conn substitute for a goroutine-race
// timeout pattern: a
// blocking socket read can only actually be interrupted by a deadline,
// not by a second goroutine losing a select.
func (c *Connection) SetDeadline(d time.Duration) error {
	return c.conn.SetDeadline(time.Now().Add(d))
}
