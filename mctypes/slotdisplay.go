package mctypes

import (
	"fmt"

	"github.com/mcclient/mcclient/schema"
	"github.com/mcclient/mcclient/wire"
)

// SlotDisplay discriminant values.
const (
	SlotDisplayEmpty         int32 = 0
	SlotDisplayAnyFuel       int32 = 1
	SlotDisplayItem          int32 = 2
	SlotDisplayItemStack     int32 = 3
	SlotDisplayTag           int32 = 4
	SlotDisplaySmithingTrim  int32 = 5
	SlotDisplayWithRemainder int32 = 6
	SlotDisplayComposite     int32 = 7
)

// SlotDisplay is a recursive tagged union describing how a recipe
// ingredient or result should be rendered: a bare item, a fuel
// placeholder, an exact item stack, a registry tag, or one of three
// variants that nest other SlotDisplay values. The nesting is why this
// type is hand-written against wire.SelfCodec rather than built from a
// schema.Record: a reflection walker can derive a flat struct's fields,
// but SmithingTrim, WithRemainder and Composite reference SlotDisplay
// itself, and Go has no macro layer to synthesize that indirection
// generically.
type SlotDisplay struct {
	Tag     int32
	Payload wire.SelfCodec
}

var slotDisplayUnion = schema.NewUnion(
	schema.Variant{Tag: SlotDisplayEmpty, New: func() wire.SelfCodec { return &emptyDisplay{} }},
	schema.Variant{Tag: SlotDisplayAnyFuel, New: func() wire.SelfCodec { return &anyFuelDisplay{} }},
	schema.Variant{Tag: SlotDisplayItem, New: func() wire.SelfCodec { return &itemDisplay{} }},
	schema.Variant{Tag: SlotDisplayItemStack, New: func() wire.SelfCodec { return &itemStackDisplay{} }},
	schema.Variant{Tag: SlotDisplayTag, New: func() wire.SelfCodec { return &tagDisplay{} }},
	schema.Variant{Tag: SlotDisplaySmithingTrim, New: func() wire.SelfCodec { return &smithingTrimDisplay{} }},
	schema.Variant{Tag: SlotDisplayWithRemainder, New: func() wire.SelfCodec { return &withRemainderDisplay{} }},
	schema.Variant{Tag: SlotDisplayComposite, New: func() wire.SelfCodec { return &compositeDisplay{} }},
)

func DecodeSlotDisplay(r wire.Reader) (SlotDisplay, error) {
	payload, tag, err := slotDisplayUnion.Decode(r)
	if err != nil {
		return SlotDisplay{}, err
	}
	return SlotDisplay{Tag: tag, Payload: payload}, nil
}

func EncodeSlotDisplay(w wire.Writer, d SlotDisplay) error {
	return slotDisplayUnion.Encode(w, d.Tag, d.Payload)
}

func SizeSlotDisplay(d SlotDisplay) int {
	return slotDisplayUnion.Size(d.Tag, d.Payload)
}

func (d *SlotDisplay) DecodeSelf(r wire.Reader) error {
	v, err := DecodeSlotDisplay(r)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (d *SlotDisplay) EncodeSelf(w wire.Writer) error { return EncodeSlotDisplay(w, *d) }
func (d *SlotDisplay) SizeSelf() int                  { return SizeSlotDisplay(*d) }

// NewEmptyDisplay, NewAnyFuelDisplay and the rest are the ergonomic
// constructors for each variant; callers assembling a packet by hand
// use these instead of poking at Tag/Payload directly.

func NewEmptyDisplay() SlotDisplay {
	return SlotDisplay{Tag: SlotDisplayEmpty, Payload: &emptyDisplay{}}
}

func NewAnyFuelDisplay() SlotDisplay {
	return SlotDisplay{Tag: SlotDisplayAnyFuel, Payload: &anyFuelDisplay{}}
}

func NewItemDisplay(itemType int32) SlotDisplay {
	return SlotDisplay{Tag: SlotDisplayItem, Payload: &itemDisplay{ItemType: itemType}}
}

func NewItemStackDisplay(stack Slot) SlotDisplay {
	return SlotDisplay{Tag: SlotDisplayItemStack, Payload: &itemStackDisplay{ItemStack: stack}}
}

func NewTagDisplay(tag string) SlotDisplay {
	return SlotDisplay{Tag: SlotDisplayTag, Payload: &tagDisplay{TagName: tag}}
}

func NewSmithingTrimDisplay(base, material SlotDisplay, pattern int32) SlotDisplay {
	return SlotDisplay{Tag: SlotDisplaySmithingTrim, Payload: &smithingTrimDisplay{
		Base: base, Material: material, Pattern: pattern,
	}}
}

func NewWithRemainderDisplay(ingredient, remainder SlotDisplay) SlotDisplay {
	return SlotDisplay{Tag: SlotDisplayWithRemainder, Payload: &withRemainderDisplay{
		Ingredient: ingredient, Remainder: remainder,
	}}
}

func NewCompositeDisplay(options []SlotDisplay) SlotDisplay {
	return SlotDisplay{Tag: SlotDisplayComposite, Payload: &compositeDisplay{Options: options}}
}

// emptyDisplay and anyFuelDisplay are unit variants: the discriminant
// is their entire wire representation.

type emptyDisplay struct{}

func (*emptyDisplay) DecodeSelf(wire.Reader) error { return nil }
func (*emptyDisplay) EncodeSelf(wire.Writer) error { return nil }
func (*emptyDisplay) SizeSelf() int                { return 0 }

type anyFuelDisplay struct{}

func (*anyFuelDisplay) DecodeSelf(wire.Reader) error { return nil }
func (*anyFuelDisplay) EncodeSelf(wire.Writer) error { return nil }
func (*anyFuelDisplay) SizeSelf() int                { return 0 }

type itemDisplay struct {
	ItemType int32
}

func (d *itemDisplay) DecodeSelf(r wire.Reader) error {
	v, err := wire.DecodeVarInt(r)
	d.ItemType = v
	return err
}
func (d *itemDisplay) EncodeSelf(w wire.Writer) error { return wire.EncodeVarInt(w, d.ItemType) }
func (d *itemDisplay) SizeSelf() int                  { return wire.SizeVarInt(d.ItemType) }

type itemStackDisplay struct {
	ItemStack Slot
}

func (d *itemStackDisplay) DecodeSelf(r wire.Reader) error {
	s, err := DecodeSlot(r)
	d.ItemStack = s
	return err
}
func (d *itemStackDisplay) EncodeSelf(w wire.Writer) error { return EncodeSlot(w, d.ItemStack) }
func (d *itemStackDisplay) SizeSelf() int                  { return SizeSlot(d.ItemStack) }

type tagDisplay struct {
	TagName string
}

func (d *tagDisplay) DecodeSelf(r wire.Reader) error {
	v, err := DecodeIdentifier(r)
	d.TagName = v
	return err
}
func (d *tagDisplay) EncodeSelf(w wire.Writer) error { return EncodeIdentifier(w, d.TagName) }
func (d *tagDisplay) SizeSelf() int                  { return SizeIdentifier(d.TagName) }

type smithingTrimDisplay struct {
	Base, Material SlotDisplay
	Pattern        int32
}

func (d *smithingTrimDisplay) DecodeSelf(r wire.Reader) error {
	base, err := DecodeSlotDisplay(r)
	if err != nil {
		return fmt.Errorf("mctypes: smithing trim display base: %w", err)
	}
	material, err := DecodeSlotDisplay(r)
	if err != nil {
		return fmt.Errorf("mctypes: smithing trim display material: %w", err)
	}
	pattern, err := wire.DecodeVarInt(r)
	if err != nil {
		return fmt.Errorf("mctypes: smithing trim display pattern: %w", err)
	}
	d.Base, d.Material, d.Pattern = base, material, pattern
	return nil
}

func (d *smithingTrimDisplay) EncodeSelf(w wire.Writer) error {
	if err := EncodeSlotDisplay(w, d.Base); err != nil {
		return err
	}
	if err := EncodeSlotDisplay(w, d.Material); err != nil {
		return err
	}
	return wire.EncodeVarInt(w, d.Pattern)
}

func (d *smithingTrimDisplay) SizeSelf() int {
	return SizeSlotDisplay(d.Base) + SizeSlotDisplay(d.Material) + wire.SizeVarInt(d.Pattern)
}

type withRemainderDisplay struct {
	Ingredient, Remainder SlotDisplay
}

func (d *withRemainderDisplay) DecodeSelf(r wire.Reader) error {
	ingredient, err := DecodeSlotDisplay(r)
	if err != nil {
		return fmt.Errorf("mctypes: with-remainder display ingredient: %w", err)
	}
	remainder, err := DecodeSlotDisplay(r)
	if err != nil {
		return fmt.Errorf("mctypes: with-remainder display remainder: %w", err)
	}
	d.Ingredient, d.Remainder = ingredient, remainder
	return nil
}

func (d *withRemainderDisplay) EncodeSelf(w wire.Writer) error {
	if err := EncodeSlotDisplay(w, d.Ingredient); err != nil {
		return err
	}
	return EncodeSlotDisplay(w, d.Remainder)
}

func (d *withRemainderDisplay) SizeSelf() int {
	return SizeSlotDisplay(d.Ingredient) + SizeSlotDisplay(d.Remainder)
}

type compositeDisplay struct {
	Options []SlotDisplay
}

func (d *compositeDisplay) DecodeSelf(r wire.Reader) error {
	options, err := wire.DecodeSequence(r, DecodeSlotDisplay)
	if err != nil {
		return err
	}
	d.Options = options
	return nil
}

func (d *compositeDisplay) EncodeSelf(w wire.Writer) error {
	return wire.EncodeSequence(w, d.Options, EncodeSlotDisplay)
}

func (d *compositeDisplay) SizeSelf() int {
	return wire.SizeSequence(d.Options, SizeSlotDisplay)
}
