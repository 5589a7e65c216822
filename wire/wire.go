// Package wire implements the primitive binary codec for the Minecraft
// Java Edition protocol: the byte-exact encode/decode/size contract that
// every higher-level packet and domain type is built from.
//
// Every primitive here satisfies the same three-operation shape the rest
// of the module relies on — decode consumes exactly size(v) bytes on
// success, encode writes exactly size(v) bytes, and size is cheap enough
// to call before every write so frame lengths are always exact.
package wire

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/mcclient/mcclient/internal/protoerr"
)

// Reader is the minimal surface the codec needs from the connection's
// buffered input. *bufio.Reader satisfies it directly.
type Reader interface {
	io.Reader
	io.ByteReader
}

// Writer is the minimal surface the codec needs for output.
type Writer = *bufio.Writer

// ReadByte reads exactly one byte, wrapping any read error (EOF
// included) so errors.Is(err, protoerr.ErrIO) holds.
func ReadByte(r Reader) (byte, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, fmt.Errorf("wire: read byte: %w", protoerr.WrapIO(err))
	}
	return b, nil
}

func readFull(r Reader, buf []byte) error {
	if _, err := io.ReadFull(r, buf); err != nil {
		return fmt.Errorf("wire: read %d bytes: %w", len(buf), protoerr.WrapIO(err))
	}
	return nil
}

// Bool is the one-byte boolean encoding: 0x00 = false, 0x01 = true. Any
// other byte is a malformed-bytes error, per the protocol's strict
// boolean encoding.
type Bool bool

func DecodeBool(r Reader) (bool, error) {
	b, err := ReadByte(r)
	if err != nil {
		return false, err
	}
	switch b {
	case 0x00:
		return false, nil
	case 0x01:
		return true, nil
	default:
		return false, fmt.Errorf("wire: bool: %w (byte 0x%02x)", protoerr.ErrMalformed, b)
	}
}

func EncodeBool(w Writer, v bool) error {
	b := byte(0x00)
	if v {
		b = 0x01
	}
	return w.WriteByte(b)
}

func SizeBool(bool) int { return 1 }

// Fixed-width big-endian integers. Go's stdlib already has encoding/binary
// for this, but the packet layer calls these directly so every primitive
// in the catalog has a uniform Decode/Encode/Size triple to hang off of.

func DecodeU8(r Reader) (uint8, error) { return ReadByte(r) }
func EncodeU8(w Writer, v uint8) error { return w.WriteByte(v) }
func SizeU8(uint8) int                 { return 1 }

func DecodeI8(r Reader) (int8, error) {
	b, err := ReadByte(r)
	return int8(b), err
}
func EncodeI8(w Writer, v int8) error { return w.WriteByte(byte(v)) }
func SizeI8(int8) int                 { return 1 }

func DecodeU16(r Reader) (uint16, error) {
	var buf [2]byte
	if err := readFull(r, buf[:]); err != nil {
		return 0, err
	}
	return uint16(buf[0])<<8 | uint16(buf[1]), nil
}

func EncodeU16(w Writer, v uint16) error {
	_, err := w.Write([]byte{byte(v >> 8), byte(v)})
	return err
}
func SizeU16(uint16) int { return 2 }

func DecodeI16(r Reader) (int16, error) {
	v, err := DecodeU16(r)
	return int16(v), err
}
func EncodeI16(w Writer, v int16) error { return EncodeU16(w, uint16(v)) }
func SizeI16(int16) int                 { return 2 }

func DecodeU32(r Reader) (uint32, error) {
	var buf [4]byte
	if err := readFull(r, buf[:]); err != nil {
		return 0, err
	}
	return uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3]), nil
}

func EncodeU32(w Writer, v uint32) error {
	_, err := w.Write([]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
	return err
}
func SizeU32(uint32) int { return 4 }

func DecodeI32(r Reader) (int32, error) {
	v, err := DecodeU32(r)
	return int32(v), err
}
func EncodeI32(w Writer, v int32) error { return EncodeU32(w, uint32(v)) }
func SizeI32(int32) int                 { return 4 }

func DecodeU64(r Reader) (uint64, error) {
	hi, err := DecodeU32(r)
	if err != nil {
		return 0, err
	}
	lo, err := DecodeU32(r)
	if err != nil {
		return 0, err
	}
	return uint64(hi)<<32 | uint64(lo), nil
}

func EncodeU64(w Writer, v uint64) error {
	if err := EncodeU32(w, uint32(v>>32)); err != nil {
		return err
	}
	return EncodeU32(w, uint32(v))
}
func SizeU64(uint64) int { return 8 }

func DecodeI64(r Reader) (int64, error) {
	v, err := DecodeU64(r)
	return int64(v), err
}
func EncodeI64(w Writer, v int64) error { return EncodeU64(w, uint64(v)) }
func SizeI64(int64) int                 { return 8 }

func DecodeF32(r Reader) (float32, error) {
	v, err := DecodeU32(r)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}
func EncodeF32(w Writer, v float32) error { return EncodeU32(w, math.Float32bits(v)) }
func SizeF32(float32) int                 { return 4 }

func DecodeF64(r Reader) (float64, error) {
	v, err := DecodeU64(r)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}
func EncodeF64(w Writer, v float64) error { return EncodeU64(w, math.Float64bits(v)) }
func SizeF64(float64) int                 { return 8 }
