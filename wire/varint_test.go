package wire

import (
	"bufio"
	"bytes"
	"errors"
	"testing"

	"github.com/mcclient/mcclient/internal/protoerr"
)

func encodeVarIntBytes(t *testing.T, v int32) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	if err := EncodeVarInt(w, v); err != nil {
		t.Fatalf("EncodeVarInt(%d): %v", v, err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	return buf.Bytes()
}

func TestVarIntRoundTrip(t *testing.T) {
	cases := []struct {
		v    int32
		want []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{255, []byte{0xff, 0x01}},
		{2147483647, []byte{0xff, 0xff, 0xff, 0xff, 0x07}},
		{-1, []byte{0xff, 0xff, 0xff, 0xff, 0x0f}},
		{-2147483648, []byte{0x80, 0x80, 0x80, 0x80, 0x08}},
	}
	for _, c := range cases {
		got := encodeVarIntBytes(t, c.v)
		if !bytes.Equal(got, c.want) {
			t.Errorf("EncodeVarInt(%d) = % x, want % x", c.v, got, c.want)
		}
		r := bufio.NewReader(bytes.NewReader(c.want))
		v, err := DecodeVarInt(r)
		if err != nil {
			t.Errorf("DecodeVarInt(% x): %v", c.want, err)
			continue
		}
		if v != c.v {
			t.Errorf("DecodeVarInt(% x) = %d, want %d", c.want, v, c.v)
		}
	}
}

func TestVarIntTooLong(t *testing.T) {
	raw := []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01}
	r := bufio.NewReader(bytes.NewReader(raw))
	_, err := DecodeVarInt(r)
	if !errors.Is(err, protoerr.ErrMalformed) {
		t.Fatalf("DecodeVarInt: got %v, want protoerr.ErrMalformed", err)
	}
}

func TestBStringBoundary(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	exact := make([]byte, 16)
	for i := range exact {
		exact[i] = 'a'
	}
	if err := EncodeBString(w, string(exact), 16); err != nil {
		t.Fatalf("EncodeBString at exact max: %v", err)
	}
	w.Flush()
	r := bufio.NewReader(bytes.NewReader(buf.Bytes()))
	got, err := DecodeBString(r, 16)
	if err != nil {
		t.Fatalf("DecodeBString: %v", err)
	}
	if got != string(exact) {
		t.Fatalf("DecodeBString round trip mismatch")
	}

	over := string(make([]byte, 17))
	buf.Reset()
	w = bufio.NewWriter(&buf)
	if err := EncodeBString(w, over, 16); !errors.Is(err, protoerr.ErrMalformed) {
		t.Fatalf("EncodeBString over max: got %v, want protoerr.ErrMalformed", err)
	}
}

func TestBStringRejectsInvalidUTF8(t *testing.T) {
	var raw bytes.Buffer
	w := bufio.NewWriter(&raw)
	EncodeVarInt(w, 2)
	w.Write([]byte{0xff, 0xfe})
	w.Flush()
	r := bufio.NewReader(bytes.NewReader(raw.Bytes()))
	_, err := DecodeBString(r, 16)
	if !errors.Is(err, protoerr.ErrMalformed) {
		t.Fatalf("DecodeBString invalid utf-8: got %v, want protoerr.ErrMalformed", err)
	}
}
