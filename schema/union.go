package schema

import (
	"fmt"

	"github.com/mcclient/mcclient/internal/protoerr"
	"github.com/mcclient/mcclient/wire"
)

// Variant describes one arm of a tagged union: the VarInt discriminant
// that selects it, and a constructor for a fresh, zero-valued payload.
// A unit variant (no fields beyond the discriminant) still supplies a
// New func; its DecodeSelf/EncodeSelf/SizeSelf are simply no-ops.
type Variant struct {
	Tag int32
	New func() wire.SelfCodec
}

// Union is a compiled VarInt-discriminated tagged union: the shape the
// protocol uses for structural sum types such as a display hint tree,
// as opposed to the payload-free VarInt enums used for a handful of
// standalone fields (those are small enough to hand-write directly
// against wire.SelfCodec rather than route through Union).
type Union struct {
	variants []Variant
}

// NewUnion compiles a Union from its variants. It panics if two
// variants share a discriminant, since that is a schema authoring bug
// rather than a runtime data error.
func NewUnion(variants ...Variant) *Union {
	seen := map[int32]bool{}
	for _, v := range variants {
		if seen[v.Tag] {
			panic(fmt.Sprintf("schema: duplicate union discriminant %d", v.Tag))
		}
		seen[v.Tag] = true
	}
	return &Union{variants: variants}
}

func (u *Union) find(tag int32) (Variant, bool) {
	for _, v := range u.variants {
		if v.Tag == tag {
			return v, true
		}
	}
	return Variant{}, false
}

// Decode reads the discriminant and then the matching variant's body,
// returning both the payload and the discriminant that selected it.
func (u *Union) Decode(r wire.Reader) (wire.SelfCodec, int32, error) {
	tag, err := wire.DecodeVarInt(r)
	if err != nil {
		return nil, 0, fmt.Errorf("schema: union discriminant: %w", err)
	}
	v, ok := u.find(tag)
	if !ok {
		return nil, 0, fmt.Errorf("schema: %w (unknown union discriminant %d)", protoerr.ErrMalformed, tag)
	}
	payload := v.New()
	if err := payload.DecodeSelf(r); err != nil {
		return nil, 0, fmt.Errorf("schema: union variant %d: %w", tag, err)
	}
	return payload, tag, nil
}

// Encode writes tag followed by payload.EncodeSelf. The caller supplies
// tag explicitly (rather than this deriving it from payload's dynamic
// type) since variants are plain structs with no tag field of their
// own.
func (u *Union) Encode(w wire.Writer, tag int32, payload wire.SelfCodec) error {
	if _, ok := u.find(tag); !ok {
		return fmt.Errorf("schema: Encode: %w (unknown union discriminant %d)", protoerr.ErrMalformed, tag)
	}
	if err := wire.EncodeVarInt(w, tag); err != nil {
		return err
	}
	return payload.EncodeSelf(w)
}

// Size is the discriminant's VarInt size plus the payload's own size.
func (u *Union) Size(tag int32, payload wire.SelfCodec) int {
	return wire.SizeVarInt(tag) + payload.SizeSelf()
}
