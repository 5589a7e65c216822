package mctypes

import (
	"bufio"
	"bytes"
	"testing"
)

func TestUUIDRoundTrip(t *testing.T) {
	var u UUID
	for i := range u {
		u[i] = byte(i*16 + 1)
	}
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	if err := EncodeUUID(w, u); err != nil {
		t.Fatalf("EncodeUUID: %v", err)
	}
	w.Flush()
	if buf.Len() != 16 {
		t.Fatalf("UUID must be exactly 16 bytes, got %d", buf.Len())
	}
	got, err := DecodeUUID(bufio.NewReader(bytes.NewReader(buf.Bytes())))
	if err != nil {
		t.Fatalf("DecodeUUID: %v", err)
	}
	if got != u {
		t.Fatalf("round trip: got %v, want %v", got, u)
	}
}

func TestUUIDString(t *testing.T) {
	u := UUID{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10}
	want := "01020304-0506-0708-090a-0b0c0d0e0f10"
	if got := u.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
