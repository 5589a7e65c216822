package frame

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/mcclient/mcclient/wire"
)

func TestReadHeaderAndResyncExactConsume(t *testing.T) {
	var raw bytes.Buffer
	w := bufio.NewWriter(&raw)
	// length = id(1 byte) + payload(3 bytes) = 4
	wire.EncodeVarInt(w, 4)
	wire.EncodeVarInt(w, 9) // id
	w.Write([]byte{0xaa, 0xbb, 0xcc})
	w.Flush()

	cr := NewCountingReader(bufio.NewReader(bytes.NewReader(raw.Bytes())))
	h, err := ReadHeader(cr)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if h.ID != 9 || h.PayloadLen() != 3 {
		t.Fatalf("header = %+v", h)
	}

	before := cr.Count()
	var got [3]byte
	if _, err := cr.Read(got[:]); err != nil {
		t.Fatalf("read payload: %v", err)
	}
	if err := Resync(cr, before, h.PayloadLen()); err != nil {
		t.Fatalf("Resync exact consume: %v", err)
	}
}

func TestResyncSkipsUnderread(t *testing.T) {
	var raw bytes.Buffer
	w := bufio.NewWriter(&raw)
	wire.EncodeVarInt(w, 4)
	wire.EncodeVarInt(w, 9)
	w.Write([]byte{0xaa, 0xbb, 0xcc})
	w.Flush()

	cr := NewCountingReader(bufio.NewReader(bytes.NewReader(raw.Bytes())))
	h, err := ReadHeader(cr)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}

	before := cr.Count()
	var one [1]byte
	cr.Read(one[:]) // decoder only consumes 1 of 3 payload bytes
	if err := Resync(cr, before, h.PayloadLen()); err != nil {
		t.Fatalf("Resync underread: %v", err)
	}

	// stream should now be exhausted, not mid-packet
	if _, err := cr.ReadByte(); err == nil {
		t.Fatalf("expected EOF after resync, got a byte")
	}
}

func TestResyncErrorsOnOverread(t *testing.T) {
	var raw bytes.Buffer
	w := bufio.NewWriter(&raw)
	// length = id(1) + payload(1) = 2, but the decoder below reads 2
	// payload bytes, spilling into what should be the next packet.
	wire.EncodeVarInt(w, 2)
	wire.EncodeVarInt(w, 9)
	w.Write([]byte{0xaa, 0xbb})
	w.Flush()

	cr := NewCountingReader(bufio.NewReader(bytes.NewReader(raw.Bytes())))
	h, _ := ReadHeader(cr)
	before := cr.Count()
	var buf [2]byte
	cr.Read(buf[:])
	if err := Resync(cr, before, h.PayloadLen()); err == nil {
		t.Fatalf("expected error when decode consumes more than the payload length promised")
	}
}

func TestUnknownPacketSkipRaw(t *testing.T) {
	var raw bytes.Buffer
	w := bufio.NewWriter(&raw)
	// length = id(2 bytes: 200 needs two VarInt bytes) + payload(4) = 6
	wire.EncodeVarInt(w, 6)
	wire.EncodeVarInt(w, 200)
	w.Write([]byte{1, 2, 3, 4})
	w.Flush()

	cr := NewCountingReader(bufio.NewReader(bytes.NewReader(raw.Bytes())))
	h, err := ReadHeader(cr)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if err := SkipRaw(cr, h.PayloadLen()); err != nil {
		t.Fatalf("SkipRaw: %v", err)
	}
	if _, err := cr.ReadByte(); err == nil {
		t.Fatalf("expected EOF after skipping unknown packet")
	}
}

func TestWritePacketRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	err := WritePacket(w, 3, wire.SizeVarInt(77), func(pw wire.Writer) error {
		return wire.EncodeVarInt(pw, 77)
	})
	if err != nil {
		t.Fatalf("WritePacket: %v", err)
	}

	cr := NewCountingReader(bufio.NewReader(bytes.NewReader(buf.Bytes())))
	h, err := ReadHeader(cr)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if h.ID != 3 {
		t.Fatalf("id = %d, want 3", h.ID)
	}
	v, err := wire.DecodeVarInt(cr)
	if err != nil || v != 77 {
		t.Fatalf("payload = %d, %v", v, err)
	}
}
