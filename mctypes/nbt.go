package mctypes

import (
	"fmt"

	"github.com/mcclient/mcclient/internal/protoerr"
	"github.com/mcclient/mcclient/wire"
)

// Component patches and a handful of other packets (registry data,
// entity metadata) carry structured NBT payloads whose field-by-field
// shape this client never inspects. Rather than implement a full NBT
// decoder, those payloads are framed here the same way the catalog
// frames any other byte blob — a VarInt length prefix followed by that
// many raw bytes — and kept opaque end to end. Anything that actually
// needs to read inside one of these blocks (a tooltip renderer, a
// recipe book) would replace this with a real NBT walker; forwarding
// the bytes unmodified is all this client's scope requires.
func decodeOpaqueNBT(r wire.Reader) ([]byte, error) {
	n, err := wire.DecodeVarInt(r)
	if err != nil {
		return nil, fmt.Errorf("mctypes: opaque nbt length: %w", err)
	}
	if n < 0 {
		return nil, fmt.Errorf("mctypes: opaque nbt: %w (negative length %d)", protoerr.ErrMalformed, n)
	}
	buf := make([]byte, n)
	for i := range buf {
		b, err := wire.ReadByte(r)
		if err != nil {
			return nil, err
		}
		buf[i] = b
	}
	return buf, nil
}

func encodeOpaqueNBT(w wire.Writer, data []byte) error {
	if err := wire.EncodeVarInt(w, int32(len(data))); err != nil {
		return err
	}
	_, err := w.Write(data)
	return err
}

func sizeOpaqueNBT(data []byte) int {
	return wire.SizeVarInt(int32(len(data))) + len(data)
}
