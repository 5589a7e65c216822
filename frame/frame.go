// Package frame implements the outer packet envelope: a VarInt length
// prefix, a VarInt packet id, and a payload — plus the forward
// compatibility behavior of skipping payloads this client doesn't
// recognize, and the byte-accounting fix that keeps the stream
// synchronized when a known packet's decoder consumes fewer bytes than
// the envelope promised (consuming more is reported as an error).
package frame

import (
	"bufio"
	"fmt"
	"io"

	"github.com/mcclient/mcclient/internal/protoerr"
	"github.com/mcclient/mcclient/wire"
)

// CountingReader wraps a wire.Reader and tracks the number of bytes
// consumed so far, so a caller can recover its exact position within
// one packet's payload without the underlying connection supporting
// seeks.
type CountingReader struct {
	r     wire.Reader
	count int64
}

func NewCountingReader(r wire.Reader) *CountingReader {
	return &CountingReader{r: r}
}

func (c *CountingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.count += int64(n)
	return n, err
}

func (c *CountingReader) ReadByte() (byte, error) {
	b, err := c.r.ReadByte()
	if err == nil {
		c.count++
	}
	return b, err
}

// Count returns the total number of bytes read so far.
func (c *CountingReader) Count() int64 { return c.count }

// Header is a decoded packet envelope: the outer length (id size plus
// payload size), the packet id, and the id's own encoded size — the
// last of which a caller needs to compute how many payload bytes
// remain.
type Header struct {
	Len    int32
	ID     int32
	IDSize int32
}

// ReadHeader reads the outer VarInt length and the VarInt packet id
// that follows it.
func ReadHeader(r *CountingReader) (Header, error) {
	length, err := wire.DecodeVarInt(r)
	if err != nil {
		return Header{}, fmt.Errorf("frame: length prefix: %w", err)
	}
	if length < 0 {
		return Header{}, fmt.Errorf("frame: %w (negative length %d)", protoerr.ErrMalformed, length)
	}
	before := r.Count()
	id, err := wire.DecodeVarInt(r)
	if err != nil {
		return Header{}, fmt.Errorf("frame: packet id: %w", err)
	}
	idSize := int32(r.Count() - before)
	if idSize > length {
		return Header{}, fmt.Errorf("frame: %w (id size %d exceeds packet length %d)", protoerr.ErrMalformed, idSize, length)
	}
	return Header{Len: length, ID: id, IDSize: idSize}, nil
}

// PayloadLen is the number of payload bytes following the id, per the
// outer length field.
func (h Header) PayloadLen() int32 { return h.Len - h.IDSize }

// SkipRaw discards n bytes, the framing layer's forward-compatibility
// path for a packet id this client has no decoder for.
func SkipRaw(r *CountingReader, n int32) error {
	if n == 0 {
		return nil
	}
	if n < 0 {
		return fmt.Errorf("frame: %w (negative skip %d)", protoerr.ErrMalformed, n)
	}
	_, err := io.CopyN(io.Discard, r, int64(n))
	if err != nil {
		return fmt.Errorf("frame: skip raw payload: %w", protoerr.WrapIO(err))
	}
	return nil
}

// Resync discards whatever bytes remain between the position recorded
// when the payload started (before) and the position that the header's
// promised payload length demands. A decoder is free to consume fewer
// bytes than the envelope advertises — unknown sub-fields, a server
// that padded a packet, or simply a partial-decode bug — and the
// stream must still land exactly on the next packet's length prefix
// rather than drift by whatever was left unread.
//
// Consuming more than promised is treated as a protocol error: nothing
// legitimate overruns its own declared payload length, and silently
// accepting it would desynchronize every packet after it.
func Resync(r *CountingReader, before int64, payloadLen int32) error {
	consumed := r.Count() - before
	remaining := int64(payloadLen) - consumed
	if remaining < 0 {
		return fmt.Errorf("frame: %w (decoder read %d bytes past its %d-byte payload)", protoerr.ErrMalformed, -remaining, payloadLen)
	}
	return SkipRaw(r, int32(remaining))
}

// WritePacket writes the outer length prefix, the packet id, and the
// payload, in one pass over a bufio.Writer so the three pieces reach
// the socket as a single flush.
func WritePacket(w *bufio.Writer, id int32, payloadSize int, encodePayload func(wire.Writer) error) error {
	length := wire.SizeVarInt(id) + payloadSize
	if err := wire.EncodeVarInt(w, int32(length)); err != nil {
		return fmt.Errorf("frame: write length: %w", err)
	}
	if err := wire.EncodeVarInt(w, id); err != nil {
		return fmt.Errorf("frame: write id: %w", err)
	}
	if err := encodePayload(w); err != nil {
		return fmt.Errorf("frame: write payload: %w", err)
	}
	return w.Flush()
}
