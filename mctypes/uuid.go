package mctypes

import (
	"fmt"

	"github.com/mcclient/mcclient/wire"
)

// UUID is the protocol's 128-bit UUID: 16 raw bytes, no dashes, no
// text encoding on the wire.
type UUID [16]byte

func DecodeUUID(r wire.Reader) (UUID, error) {
	var u UUID
	hi, err := wire.DecodeU64(r)
	if err != nil {
		return UUID{}, err
	}
	lo, err := wire.DecodeU64(r)
	if err != nil {
		return UUID{}, err
	}
	putUint64(u[0:8], hi)
	putUint64(u[8:16], lo)
	return u, nil
}

func EncodeUUID(w wire.Writer, u UUID) error {
	if err := wire.EncodeU64(w, getUint64(u[0:8])); err != nil {
		return err
	}
	return wire.EncodeU64(w, getUint64(u[8:16]))
}

func SizeUUID(UUID) int { return 16 }

// DecodeSelf/EncodeSelf/SizeSelf let UUID sit as a field inside a
// schema-derived record (login start, login success).
func (u *UUID) DecodeSelf(r wire.Reader) error {
	v, err := DecodeUUID(r)
	if err != nil {
		return err
	}
	*u = v
	return nil
}
func (u *UUID) EncodeSelf(w wire.Writer) error { return EncodeUUID(w, *u) }
func (u *UUID) SizeSelf() int                  { return SizeUUID(*u) }

func putUint64(b []byte, v uint64) {
	b[0] = byte(v >> 56)
	b[1] = byte(v >> 48)
	b[2] = byte(v >> 40)
	b[3] = byte(v >> 32)
	b[4] = byte(v >> 24)
	b[5] = byte(v >> 16)
	b[6] = byte(v >> 8)
	b[7] = byte(v)
}

func getUint64(b []byte) uint64 {
	return uint64(b[0])<<56 | uint64(b[1])<<48 | uint64(b[2])<<40 | uint64(b[3])<<32 |
		uint64(b[4])<<24 | uint64(b[5])<<16 | uint64(b[6])<<8 | uint64(b[7])
}

// String renders the standard 8-4-4-4-12 dashed hex form.
func (u UUID) String() string {
	return fmt.Sprintf("%x-%x-%x-%x-%x", u[0:4], u[4:6], u[6:8], u[8:10], u[10:16])
}
