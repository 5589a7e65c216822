package schema

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/mcclient/mcclient/wire"
)

type sampleRecord struct {
	Count int32                `mc:"varint"`
	Name  wire.Optional[string] `mc:"identifier" mc-when:"Count>0"`
}

func TestRecordRoundTripWithPredicate(t *testing.T) {
	rec := Compile(sampleRecord{})

	present := sampleRecord{Count: 1, Name: wire.Some("minecraft:brand")}
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	if err := rec.Encode(w, present); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	w.Flush()

	var got sampleRecord
	if err := rec.Decode(bufio.NewReader(bytes.NewReader(buf.Bytes())), &got); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Count != 1 || !got.Name.Valid || got.Name.Value != "minecraft:brand" {
		t.Fatalf("decoded = %+v", got)
	}
}

func TestRecordPredicateAbsent(t *testing.T) {
	rec := Compile(sampleRecord{})

	absent := sampleRecord{Count: 0}
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	if err := rec.Encode(w, absent); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	w.Flush()
	if !bytes.Equal(buf.Bytes(), []byte{0x00}) {
		t.Fatalf("Count=0 should suppress Name entirely, got % x", buf.Bytes())
	}

	var got sampleRecord
	if err := rec.Decode(bufio.NewReader(bytes.NewReader(buf.Bytes())), &got); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Name.Valid {
		t.Fatalf("Name should be absent, got %+v", got.Name)
	}
}

func TestRecordSize(t *testing.T) {
	rec := Compile(sampleRecord{})
	v := sampleRecord{Count: 1, Name: wire.Some("x")}
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	rec.Encode(w, v)
	w.Flush()
	if got, want := rec.Size(v), buf.Len(); got != want {
		t.Fatalf("Size() = %d, actual encoded length = %d", got, want)
	}
}

func mustPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic, got none")
		}
	}()
	fn()
}

func TestCompileRejectsPredicateOnNonOptional(t *testing.T) {
	type bad struct {
		Count int32 `mc:"varint"`
		Flag  bool  `mc:"bool" mc-when:"Count>0"`
	}
	mustPanic(t, func() { Compile(bad{}) })
}

func TestCompileRejectsForwardReference(t *testing.T) {
	type bad struct {
		Name wire.Optional[string] `mc:"identifier" mc-when:"Count>0"`
		Count int32 `mc:"varint"`
	}
	mustPanic(t, func() { Compile(bad{}) })
}

func TestUnionUnknownDiscriminant(t *testing.T) {
	u := NewUnion(
		Variant{Tag: 0, New: func() wire.SelfCodec { return &noopCodec{} }},
	)
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	wire.EncodeVarInt(w, 9)
	w.Flush()
	if _, _, err := u.Decode(bufio.NewReader(bytes.NewReader(buf.Bytes()))); err == nil {
		t.Fatalf("expected error for unknown discriminant")
	}
}

type noopCodec struct{}

func (*noopCodec) DecodeSelf(wire.Reader) error { return nil }
func (*noopCodec) EncodeSelf(wire.Writer) error { return nil }
func (*noopCodec) SizeSelf() int                { return 0 }
