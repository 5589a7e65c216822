package wire

import (
	"fmt"
	"unicode/utf8"

	"github.com/mcclient/mcclient/internal/protoerr"
)

const (
	segmentBits = 0x7F
	continueBit = 0x80
)

// DecodeVarInt reads a LEB128-style variable-length 32-bit signed
// integer. Up to 5 bytes are consumed; a 6th continuation byte is a
// malformed-bytes error. Over-long encodings that still fit in 32 bits
// are accepted — the reference server does not reject them, so neither
// do we (see original_source/src/datatypes.rs for the accumulation
// loop this mirrors).
func DecodeVarInt(r Reader) (int32, error) {
	var value int32
	var position uint
	for position < 32 {
		b, err := ReadByte(r)
		if err != nil {
			return 0, err
		}
		value |= int32(b&segmentBits) << position
		if b&continueBit == 0 {
			return value, nil
		}
		position += 7
	}
	return 0, fmt.Errorf("wire: varint: %w (exceeds 5 bytes)", protoerr.ErrMalformed)
}

// EncodeVarInt writes v as a LEB128-style VarInt. Negative values are
// reinterpreted as their unsigned 32-bit bit pattern before shifting —
// a logical, not arithmetic, shift — so the full 5-byte encoding comes
// out for negative numbers.
func EncodeVarInt(w Writer, v int32) error {
	u := uint32(v)
	for {
		if u&^uint32(segmentBits) == 0 {
			return w.WriteByte(byte(u))
		}
		if err := w.WriteByte(byte(u&segmentBits) | continueBit); err != nil {
			return err
		}
		u >>= 7
	}
}

// SizeVarInt returns the number of bytes EncodeVarInt would write: one
// plus the highest set bit's index divided by 7, with zero counted as
// one byte.
func SizeVarInt(v int32) int {
	u := uint32(v)
	if u == 0 {
		return 1
	}
	bits := 32 - leadingZeros32(u)
	return (bits + 6) / 7
}

func leadingZeros32(u uint32) int {
	n := 0
	for mask := uint32(1) << 31; mask != 0 && u&mask == 0; mask >>= 1 {
		n++
	}
	return n
}

// DecodeBString reads a VarInt length prefix followed by that many
// UTF-8 bytes, rejecting a length prefix that exceeds max (the string's
// compile-time bound) or a negative length, and validating UTF-8.
func DecodeBString(r Reader, max int) (string, error) {
	length, err := DecodeVarInt(r)
	if err != nil {
		return "", fmt.Errorf("wire: bstring length: %w", err)
	}
	if length < 0 {
		return "", fmt.Errorf("wire: bstring: %w (negative length %d)", protoerr.ErrMalformed, length)
	}
	if int(length) > max {
		return "", fmt.Errorf("wire: bstring: %w (length %d exceeds max %d)", protoerr.ErrMalformed, length, max)
	}
	buf := make([]byte, length)
	if err := readFull(r, buf); err != nil {
		return "", err
	}
	if !utf8.Valid(buf) {
		return "", fmt.Errorf("wire: bstring: %w (invalid utf-8)", protoerr.ErrMalformed)
	}
	return string(buf), nil
}

// EncodeBString writes v as a VarInt length prefix followed by its raw
// bytes, rejecting payloads longer than max before writing anything.
func EncodeBString(w Writer, v string, max int) error {
	if len(v) > max {
		return fmt.Errorf("wire: bstring: %w (length %d exceeds max %d)", protoerr.ErrMalformed, len(v), max)
	}
	if err := EncodeVarInt(w, int32(len(v))); err != nil {
		return err
	}
	_, err := w.WriteString(v)
	return err
}

// SizeBString returns the wire size of v as a bounded string: the VarInt
// length prefix plus the raw byte length.
func SizeBString(v string) int {
	return SizeVarInt(int32(len(v))) + len(v)
}
