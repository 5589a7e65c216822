package mctypes

import (
	"fmt"

	"github.com/mcclient/mcclient/internal/protoerr"
	"github.com/mcclient/mcclient/wire"
)

// HandshakeIntent is the client's declared next state, sent as the
// final field of the handshake packet. Unlike the VarInt-discriminated
// structural unions elsewhere in the catalog, this is a single VarInt
// enum with no per-variant payload, so it is encoded directly rather
// than routed through a schema.Union.
type HandshakeIntent int32

const (
	IntentStatus   HandshakeIntent = 1
	IntentLogin    HandshakeIntent = 2
	IntentTransfer HandshakeIntent = 3
)

func (i HandshakeIntent) String() string {
	switch i {
	case IntentStatus:
		return "status"
	case IntentLogin:
		return "login"
	case IntentTransfer:
		return "transfer"
	default:
		return fmt.Sprintf("HandshakeIntent(%d)", int32(i))
	}
}

func DecodeHandshakeIntent(r wire.Reader) (HandshakeIntent, error) {
	v, err := wire.DecodeVarInt(r)
	if err != nil {
		return 0, err
	}
	switch HandshakeIntent(v) {
	case IntentStatus, IntentLogin, IntentTransfer:
		return HandshakeIntent(v), nil
	default:
		return 0, fmt.Errorf("mctypes: handshake intent: %w (value %d)", protoerr.ErrMalformed, v)
	}
}

func EncodeHandshakeIntent(w wire.Writer, i HandshakeIntent) error {
	return wire.EncodeVarInt(w, int32(i))
}

func SizeHandshakeIntent(i HandshakeIntent) int { return wire.SizeVarInt(int32(i)) }

// DecodeSelf/EncodeSelf/SizeSelf let HandshakeIntent sit as a field
// inside a schema-derived record (the handshake packet) without a
// separate kind registration.
func (i *HandshakeIntent) DecodeSelf(r wire.Reader) error {
	v, err := DecodeHandshakeIntent(r)
	if err != nil {
		return err
	}
	*i = v
	return nil
}

func (i *HandshakeIntent) EncodeSelf(w wire.Writer) error { return EncodeHandshakeIntent(w, *i) }
func (i *HandshakeIntent) SizeSelf() int                  { return SizeHandshakeIntent(*i) }
