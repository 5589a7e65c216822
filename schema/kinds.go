package schema

import (
	"fmt"
	"reflect"

	"github.com/mcclient/mcclient/internal/protoerr"
	"github.com/mcclient/mcclient/wire"
)

// kind is a primitive field codec operating through reflect.Value, used
// for leaf fields that don't implement wire.SelfCodec themselves.
type kind struct {
	decode func(wire.Reader) (reflect.Value, error)
	encode func(wire.Writer, reflect.Value) error
	size   func(reflect.Value) int
}

func scalarKind[T any](
	decode func(wire.Reader) (T, error),
	encode func(wire.Writer, T) error,
	size func(T) int,
) kind {
	return kind{
		decode: func(r wire.Reader) (reflect.Value, error) {
			v, err := decode(r)
			return reflect.ValueOf(v), err
		},
		encode: func(w wire.Writer, v reflect.Value) error {
			return encode(w, v.Interface().(T))
		},
		size: func(v reflect.Value) int {
			return size(v.Interface().(T))
		},
	}
}

func bstringKind(max int) kind {
	return scalarKind(
		func(r wire.Reader) (string, error) { return wire.DecodeBString(r, max) },
		func(w wire.Writer, v string) error { return wire.EncodeBString(w, v, max) },
		func(v string) int { return wire.SizeBString(v) },
	)
}

// bytesKind reads/writes a VarInt-length-prefixed raw byte sequence
// (the protocol's Sequence<u8>) without the UTF-8 validation BString
// applies.
var bytesKind = kind{
	decode: func(r wire.Reader) (reflect.Value, error) {
		v, err := wire.DecodeSequence(r, wire.DecodeU8)
		return reflect.ValueOf(v), err
	},
	encode: func(w wire.Writer, v reflect.Value) error {
		return wire.EncodeSequence(w, v.Interface().([]byte), wire.EncodeU8)
	},
	size: func(v reflect.Value) int {
		return wire.SizeSequence(v.Interface().([]byte), wire.SizeU8)
	},
}

// registry maps an "mc" struct tag value to its kind.
var registry = map[string]kind{
	"bool":         scalarKind(wire.DecodeBool, wire.EncodeBool, wire.SizeBool),
	"u8":           scalarKind(wire.DecodeU8, wire.EncodeU8, wire.SizeU8),
	"i8":           scalarKind(wire.DecodeI8, wire.EncodeI8, wire.SizeI8),
	"u16":          scalarKind(wire.DecodeU16, wire.EncodeU16, wire.SizeU16),
	"i16":          scalarKind(wire.DecodeI16, wire.EncodeI16, wire.SizeI16),
	"u32":          scalarKind(wire.DecodeU32, wire.EncodeU32, wire.SizeU32),
	"i32":          scalarKind(wire.DecodeI32, wire.EncodeI32, wire.SizeI32),
	"u64":          scalarKind(wire.DecodeU64, wire.EncodeU64, wire.SizeU64),
	"i64":          scalarKind(wire.DecodeI64, wire.EncodeI64, wire.SizeI64),
	"f32":          scalarKind(wire.DecodeF32, wire.EncodeF32, wire.SizeF32),
	"f64":          scalarKind(wire.DecodeF64, wire.EncodeF64, wire.SizeF64),
	"varint":       scalarKind(wire.DecodeVarInt, wire.EncodeVarInt, wire.SizeVarInt),
	"identifier":   bstringKind(32767),
	"bstring16":    bstringKind(16),
	"bstring20":    bstringKind(20),
	"bstring255":   bstringKind(255),
	"bstring32767": bstringKind(32767),
	"bytes":        bytesKind,
}

// defaultKindFor returns the kind implied by a Go reflect.Kind when the
// field carries no explicit "mc" tag — the encoding/json-style
// "sensible default, override when needed" convenience.
func defaultKindFor(t reflect.Type) (kind, bool) {
	switch t.Kind() {
	case reflect.Bool:
		return registry["bool"], true
	case reflect.Int32:
		return registry["varint"], true
	case reflect.Uint8:
		return registry["u8"], true
	case reflect.Int8:
		return registry["i8"], true
	case reflect.Uint16:
		return registry["u16"], true
	case reflect.Int16:
		return registry["i16"], true
	case reflect.Uint32:
		return registry["u32"], true
	case reflect.Uint64:
		return registry["u64"], true
	case reflect.Int64:
		return registry["i64"], true
	case reflect.Float32:
		return registry["f32"], true
	case reflect.Float64:
		return registry["f64"], true
	case reflect.String:
		return registry["identifier"], true
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return bytesKind, true
		}
	}
	return kind{}, false
}

func lookupKind(tag string, t reflect.Type) (kind, error) {
	if tag != "" {
		k, ok := registry[tag]
		if !ok {
			return kind{}, fmt.Errorf("schema: %w (unknown mc kind %q)", protoerr.ErrMalformed, tag)
		}
		return k, nil
	}
	k, ok := defaultKindFor(t)
	if !ok {
		return kind{}, fmt.Errorf("schema: no codec for field type %s (implement wire.SelfCodec or add an `mc:\"...\"` tag)", t)
	}
	return k, nil
}
