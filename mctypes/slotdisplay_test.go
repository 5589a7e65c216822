package mctypes

import (
	"bufio"
	"bytes"
	"testing"
)

func TestSlotDisplayCompositeOfEmptyAndAnyFuel(t *testing.T) {
	d := NewCompositeDisplay([]SlotDisplay{NewEmptyDisplay(), NewAnyFuelDisplay()})

	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	if err := EncodeSlotDisplay(w, d); err != nil {
		t.Fatalf("EncodeSlotDisplay: %v", err)
	}
	w.Flush()

	// composite tag(7), options length(2), Empty tag(0), AnyFuel tag(1)
	want := []byte{0x07, 0x02, 0x00, 0x01}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("composite display bytes = % x, want % x", buf.Bytes(), want)
	}

	got, err := DecodeSlotDisplay(bufio.NewReader(bytes.NewReader(buf.Bytes())))
	if err != nil {
		t.Fatalf("DecodeSlotDisplay: %v", err)
	}
	if got.Tag != SlotDisplayComposite {
		t.Fatalf("decoded tag = %d, want %d", got.Tag, SlotDisplayComposite)
	}
	composite, ok := got.Payload.(*compositeDisplay)
	if !ok {
		t.Fatalf("payload type = %T, want *compositeDisplay", got.Payload)
	}
	if len(composite.Options) != 2 {
		t.Fatalf("options length = %d, want 2", len(composite.Options))
	}
	if composite.Options[0].Tag != SlotDisplayEmpty || composite.Options[1].Tag != SlotDisplayAnyFuel {
		t.Fatalf("options = %+v", composite.Options)
	}
}

func TestSlotDisplaySmithingTrimRecursion(t *testing.T) {
	d := NewSmithingTrimDisplay(NewItemDisplay(42), NewItemDisplay(7), 3)

	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	if err := EncodeSlotDisplay(w, d); err != nil {
		t.Fatalf("EncodeSlotDisplay: %v", err)
	}
	w.Flush()

	got, err := DecodeSlotDisplay(bufio.NewReader(bytes.NewReader(buf.Bytes())))
	if err != nil {
		t.Fatalf("DecodeSlotDisplay: %v", err)
	}
	trim, ok := got.Payload.(*smithingTrimDisplay)
	if !ok {
		t.Fatalf("payload type = %T, want *smithingTrimDisplay", got.Payload)
	}
	if trim.Pattern != 3 {
		t.Fatalf("pattern = %d, want 3", trim.Pattern)
	}
	base, ok := trim.Base.Payload.(*itemDisplay)
	if !ok || base.ItemType != 42 {
		t.Fatalf("base = %+v", trim.Base)
	}
	material, ok := trim.Material.Payload.(*itemDisplay)
	if !ok || material.ItemType != 7 {
		t.Fatalf("material = %+v", trim.Material)
	}
}

func TestSlotDisplayUnknownDiscriminant(t *testing.T) {
	r := bufio.NewReader(bytes.NewReader([]byte{0x63}))
	if _, err := DecodeSlotDisplay(r); err == nil {
		t.Fatalf("expected error for unknown discriminant")
	}
}
