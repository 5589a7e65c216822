package mctypes

import (
	"github.com/mcclient/mcclient/schema"
	"github.com/mcclient/mcclient/wire"
)

// Slot is an inventory slot: an item count plus, when that count is
// positive, the item's numeric id and a pair of structured-component
// patch lists. The component patch lists carry opaque NBT-encoded
// blocks whose internal structure this client has no need to
// interpret — it only needs to preserve their bytes across a
// read/forward/write cycle, so each "add" entry is a bare (registry
// id, opaque blob) pair rather than a decoded NBT tree. A client that
// actually renders item tooltips would need a real NBT decoder here;
// nothing in this module's scope does.
//
// This is the canonical exercise of a presence predicate: ID and the
// two component counts are read only when Count>0, and the component
// lists themselves are read only when their corresponding count field
// is present and positive — an "is-present-and-satisfies" probe over
// an already-Optional field.
type Slot struct {
	Count               int32                `mc:"varint"`
	ID                  wire.Optional[int32] `mc:"varint" mc-when:"Count>0"`
	NumComponentsAdd    wire.Optional[int32] `mc:"varint" mc-when:"Count>0"`
	NumComponentsRemove wire.Optional[int32] `mc:"varint" mc-when:"Count>0"`
	ComponentsAdd       wire.Optional[ComponentPatchList] `mc-when:"NumComponentsAdd.Valid && NumComponentsAdd.Value>0"`
	ComponentsRemove    wire.Optional[RemovedComponentList] `mc-when:"NumComponentsRemove.Valid && NumComponentsRemove.Value>0"`
}

var slotRecord = schema.Compile(Slot{})

func DecodeSlot(r wire.Reader) (Slot, error) {
	var s Slot
	err := slotRecord.Decode(r, &s)
	return s, err
}

func EncodeSlot(w wire.Writer, s Slot) error {
	return slotRecord.Encode(w, s)
}

func SizeSlot(s Slot) int {
	return slotRecord.Size(s)
}

// DecodeSelf/EncodeSelf/SizeSelf let Slot participate as a field inside
// another schema-derived record (e.g. a click-slot packet) without a
// separate kind registration.
func (s *Slot) DecodeSelf(r wire.Reader) error { return slotRecord.Decode(r, s) }
func (s *Slot) EncodeSelf(w wire.Writer) error { return slotRecord.Encode(w, *s) }
func (s *Slot) SizeSelf() int                  { return slotRecord.Size(*s) }

// ComponentPatch is one entry of a slot's "components to add" list: a
// registry id for the component type, followed by its opaque
// NBT-encoded payload.
type ComponentPatch struct {
	Type int32
	Data []byte
}

func (c *ComponentPatch) DecodeSelf(r wire.Reader) error {
	t, err := wire.DecodeVarInt(r)
	if err != nil {
		return err
	}
	data, err := decodeOpaqueNBT(r)
	if err != nil {
		return err
	}
	c.Type, c.Data = t, data
	return nil
}

func (c *ComponentPatch) EncodeSelf(w wire.Writer) error {
	if err := wire.EncodeVarInt(w, c.Type); err != nil {
		return err
	}
	return encodeOpaqueNBT(w, c.Data)
}

func (c *ComponentPatch) SizeSelf() int {
	return wire.SizeVarInt(c.Type) + sizeOpaqueNBT(c.Data)
}

// ComponentPatchList is the VarInt-length-prefixed "components to add"
// list, addressable as a SelfCodec so it can sit inside an
// wire.Optional field of a schema-derived record.
type ComponentPatchList []ComponentPatch

func (l *ComponentPatchList) DecodeSelf(r wire.Reader) error {
	items, err := wire.DecodeSequence(r, func(r wire.Reader) (ComponentPatch, error) {
		var c ComponentPatch
		err := c.DecodeSelf(r)
		return c, err
	})
	if err != nil {
		return err
	}
	*l = items
	return nil
}

func (l *ComponentPatchList) EncodeSelf(w wire.Writer) error {
	return wire.EncodeSequence(w, []ComponentPatch(*l), func(w wire.Writer, c ComponentPatch) error {
		return c.EncodeSelf(w)
	})
}

func (l *ComponentPatchList) SizeSelf() int {
	total := wire.SizeVarInt(int32(len(*l)))
	for _, c := range *l {
		total += c.SizeSelf()
	}
	return total
}

// RemovedComponentList is the VarInt-length-prefixed "components to
// remove" list: just the registry ids, with no payload.
type RemovedComponentList []int32

func (l *RemovedComponentList) DecodeSelf(r wire.Reader) error {
	items, err := wire.DecodeSequence(r, wire.DecodeVarInt)
	if err != nil {
		return err
	}
	*l = items
	return nil
}

func (l *RemovedComponentList) EncodeSelf(w wire.Writer) error {
	return wire.EncodeSequence(w, []int32(*l), wire.EncodeVarInt)
}

func (l *RemovedComponentList) SizeSelf() int {
	return wire.SizeSequence([]int32(*l), wire.SizeVarInt)
}
