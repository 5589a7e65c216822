package mctypes

import (
	"bufio"
	"bytes"
	"testing"
)

func TestPositionRoundTrip(t *testing.T) {
	cases := []Position{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 1, Z: 1},
		{X: -1, Y: -1, Z: -1},
		{X: xyzBits26Max, Y: yBits12Max, Z: xyzBits26Max},
		{X: xyzBits26Min, Y: yBits12Min, Z: xyzBits26Min},
		{X: 18357644, Y: 831, Z: -20882616},
	}
	for _, p := range cases {
		var buf bytes.Buffer
		w := bufio.NewWriter(&buf)
		if err := EncodePosition(w, p); err != nil {
			t.Fatalf("EncodePosition(%+v): %v", p, err)
		}
		w.Flush()
		if buf.Len() != 8 {
			t.Fatalf("Position must be exactly 8 bytes, got %d", buf.Len())
		}
		got, err := DecodePosition(bufio.NewReader(bytes.NewReader(buf.Bytes())))
		if err != nil {
			t.Fatalf("DecodePosition: %v", err)
		}
		if got != p {
			t.Fatalf("round trip: got %+v, want %+v", got, p)
		}
	}
}

func TestNewPositionRejectsOutOfRange(t *testing.T) {
	if _, err := NewPosition(xyzBits26Max+1, 0, 0); err == nil {
		t.Fatalf("expected error for x out of range")
	}
	if _, err := NewPosition(0, yBits12Max+1, 0); err == nil {
		t.Fatalf("expected error for y out of range")
	}
	if _, err := NewPosition(0, 0, xyzBits26Min-1); err == nil {
		t.Fatalf("expected error for z out of range")
	}
}
