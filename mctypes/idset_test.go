package mctypes

import (
	"bufio"
	"bytes"
	"testing"
)

func TestIDSetNamedTag(t *testing.T) {
	v := IDSet{Tag: "minecraft:wool"}
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	if err := EncodeIDSet(w, v); err != nil {
		t.Fatalf("EncodeIDSet: %v", err)
	}
	w.Flush()

	got, err := DecodeIDSet(bufio.NewReader(bytes.NewReader(buf.Bytes())))
	if err != nil {
		t.Fatalf("DecodeIDSet: %v", err)
	}
	if got.Tag != v.Tag || len(got.IDs) != 0 {
		t.Fatalf("round trip = %+v, want %+v", got, v)
	}
}

func TestIDSetEnumerated(t *testing.T) {
	v := IDSet{IDs: []int32{1, 2, 3}}
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	if err := EncodeIDSet(w, v); err != nil {
		t.Fatalf("EncodeIDSet: %v", err)
	}
	w.Flush()

	want := []byte{0x04, 0x01, 0x02, 0x03} // length+1=4, then three ids
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("bytes = % x, want % x", buf.Bytes(), want)
	}

	got, err := DecodeIDSet(bufio.NewReader(bytes.NewReader(buf.Bytes())))
	if err != nil {
		t.Fatalf("DecodeIDSet: %v", err)
	}
	if got.Tag != "" || len(got.IDs) != 3 {
		t.Fatalf("round trip = %+v", got)
	}
}

func TestIDSetEmptyEnumerated(t *testing.T) {
	v := IDSet{}
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	if err := EncodeIDSet(w, v); err != nil {
		t.Fatalf("EncodeIDSet: %v", err)
	}
	w.Flush()
	if !bytes.Equal(buf.Bytes(), []byte{0x01}) {
		t.Fatalf("empty IDSet without a tag should encode as length 1 (0 ids + 1): % x", buf.Bytes())
	}
}
