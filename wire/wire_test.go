package wire

import (
	"bufio"
	"bytes"
	"errors"
	"testing"

	"github.com/mcclient/mcclient/internal/protoerr"
)

func TestBoolStrict(t *testing.T) {
	r := bufio.NewReader(bytes.NewReader([]byte{0x02}))
	if _, err := DecodeBool(r); !errors.Is(err, protoerr.ErrMalformed) {
		t.Fatalf("DecodeBool(0x02): got %v, want protoerr.ErrMalformed", err)
	}
}

func TestFixedWidthRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	EncodeU16(w, 0xbeef)
	EncodeI32(w, -12345)
	EncodeU64(w, 0xdeadbeefcafebabe)
	EncodeF32(w, 3.5)
	EncodeF64(w, -2.25)
	w.Flush()

	r := bufio.NewReader(bytes.NewReader(buf.Bytes()))
	if v, err := DecodeU16(r); err != nil || v != 0xbeef {
		t.Fatalf("DecodeU16 = %v, %v", v, err)
	}
	if v, err := DecodeI32(r); err != nil || v != -12345 {
		t.Fatalf("DecodeI32 = %v, %v", v, err)
	}
	if v, err := DecodeU64(r); err != nil || v != 0xdeadbeefcafebabe {
		t.Fatalf("DecodeU64 = %v, %v", v, err)
	}
	if v, err := DecodeF32(r); err != nil || v != 3.5 {
		t.Fatalf("DecodeF32 = %v, %v", v, err)
	}
	if v, err := DecodeF64(r); err != nil || v != -2.25 {
		t.Fatalf("DecodeF64 = %v, %v", v, err)
	}
}

func TestSequenceRejectsNegativeLength(t *testing.T) {
	var raw bytes.Buffer
	w := bufio.NewWriter(&raw)
	EncodeVarInt(w, -1)
	w.Flush()
	r := bufio.NewReader(bytes.NewReader(raw.Bytes()))
	if _, err := DecodeSequence(r, DecodeU8); !errors.Is(err, protoerr.ErrMalformed) {
		t.Fatalf("DecodeSequence negative length: got %v, want protoerr.ErrMalformed", err)
	}
}

func TestArrayFixedCountNoPrefix(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	if err := EncodeArray(w, []uint8{1, 2, 3}, EncodeU8); err != nil {
		t.Fatalf("EncodeArray: %v", err)
	}
	w.Flush()
	if buf.Len() != 3 {
		t.Fatalf("Array should carry no length prefix, got %d bytes", buf.Len())
	}
	r := bufio.NewReader(bytes.NewReader(buf.Bytes()))
	got, err := DecodeArray(r, 3, DecodeU8)
	if err != nil {
		t.Fatalf("DecodeArray: %v", err)
	}
	want := []uint8{1, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("DecodeArray[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestOptionalPresenceByte(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	EncodeOptional(w, Some(int32(7)), EncodeVarInt)
	EncodeOptional(w, None[int32](), EncodeVarInt)
	w.Flush()

	r := bufio.NewReader(bytes.NewReader(buf.Bytes()))
	got, err := DecodeOptional(r, DecodeVarInt)
	if err != nil || !got.Valid || got.Value != 7 {
		t.Fatalf("DecodeOptional present = %+v, %v", got, err)
	}
	got2, err := DecodeOptional(r, DecodeVarInt)
	if err != nil || got2.Valid {
		t.Fatalf("DecodeOptional absent = %+v, %v", got2, err)
	}
}
