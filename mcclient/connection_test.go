package mcclient

import (
	"bufio"
	"net"
	"testing"
	"time"

	"github.com/mcclient/mcclient/frame"
	"github.com/mcclient/mcclient/internal/logging"
	"github.com/mcclient/mcclient/wire"
)

func writeKeepAlive(w *bufio.Writer, id int32, value int64) error {
	return frame.WritePacket(w, id, wire.SizeI64(value), func(pw wire.Writer) error {
		return wire.EncodeI64(pw, value)
	})
}

func writeUnknownPacket(w *bufio.Writer, id int32) error {
	return frame.WritePacket(w, id, wire.SizeVarInt(1), func(pw wire.Writer) error {
		return wire.EncodeVarInt(pw, 1)
	})
}

func newCountingReaderFrom(conn net.Conn) *frame.CountingReader {
	return frame.NewCountingReader(bufio.NewReader(conn))
}

func readHeaderFrom(cr *frame.CountingReader) (int32, error) {
	h, err := frame.ReadHeader(cr)
	if err != nil {
		return 0, err
	}
	if err := frame.SkipRaw(cr, h.PayloadLen()); err != nil {
		return 0, err
	}
	return h.ID, nil
}

func readKeepAliveReply(conn net.Conn) (id int32, value int64, err error) {
	cr := newCountingReaderFrom(conn)
	h, err := frame.ReadHeader(cr)
	if err != nil {
		return 0, 0, err
	}
	value, err = wire.DecodeI64(cr)
	return h.ID, value, err
}

// pipeConnections returns two ends of an in-memory net.Conn pair, used
// so tests can drive a Connection without a real socket.
func pipeConnections() (net.Conn, net.Conn) {
	return net.Pipe()
}

func newTestConnection(conn net.Conn, phase Phase) *Connection {
	c := newConnection(conn, WithLogger(logging.Nop()))
	c.SetPhase(phase)
	return c
}

func TestKeepAliveReflection(t *testing.T) {
	clientSide, serverSide := pipeConnections()
	defer clientSide.Close()
	defer serverSide.Close()

	conn := newTestConnection(clientSide, PhasePlay)

	done := make(chan Packet, 1)
	errCh := make(chan error, 1)
	go func() {
		pkt, err := conn.Recv()
		if err != nil {
			errCh <- err
			return
		}
		done <- pkt
	}()

	serverW := bufio.NewWriter(serverSide)
	if err := writeKeepAlive(serverW, 0x2b, 42); err != nil {
		t.Fatalf("write keep alive: %v", err)
	}

	// The client should echo it straight back without surfacing it, so
	// the very next thing on the wire from the client must be the
	// reflected serverbound keep alive (id 0x1b) with the same value.
	gotID, gotValue, err := readKeepAliveReply(serverSide)
	if err != nil {
		t.Fatalf("read reflected keep alive: %v", err)
	}
	if gotID != 0x1b {
		t.Fatalf("reflected packet id = %#x, want 0x1b (ServerboundKeepAlive)", gotID)
	}
	if gotValue != 42 {
		t.Fatalf("reflected value = %d, want 42", gotValue)
	}

	// Now send a real, application-visible packet so Recv can return.
	if err := writeUnknownPacket(serverW, 0x7f); err != nil {
		t.Fatalf("write sentinel packet: %v", err)
	}

	select {
	case pkt := <-done:
		if pkt.ID != 0x7f {
			t.Fatalf("unexpected packet surfaced: %+v", pkt)
		}
	case err := <-errCh:
		t.Fatalf("Recv error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for Recv to return the sentinel packet")
	}
}

func TestSendUnknownPacketNameErrors(t *testing.T) {
	clientSide, serverSide := pipeConnections()
	defer clientSide.Close()
	defer serverSide.Close()

	conn := newTestConnection(clientSide, PhaseStatus)
	if err := conn.Send("NotARealPacket", nil); err == nil {
		t.Fatal("expected an error sending an unregistered packet name")
	}
}

func TestSendLooksUpServerboundIDByPhase(t *testing.T) {
	clientSide, serverSide := pipeConnections()
	defer clientSide.Close()
	defer serverSide.Close()

	conn := newTestConnection(clientSide, PhaseHandshake)

	go func() {
		conn.Send("Handshake", HandshakePacket{
			ProtocolVersion: 773,
			ServerAddress:   "localhost",
			ServerPort:      25565,
		})
	}()

	cr := newCountingReaderFrom(serverSide)
	h, err := readHeaderFrom(cr)
	if err != nil {
		t.Fatalf("read header: %v", err)
	}
	if h != 0x00 {
		t.Fatalf("id = %d, want 0x00 (Handshake)", h)
	}
}
