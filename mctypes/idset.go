package mctypes

import (
	"fmt"

	"github.com/mcclient/mcclient/internal/protoerr"
	"github.com/mcclient/mcclient/wire"
)

// IdentifierMax is the maximum byte length of an Identifier: a bounded
// string naming a namespaced resource such as "minecraft:brand".
const IdentifierMax = 32767

func DecodeIdentifier(r wire.Reader) (string, error) {
	return wire.DecodeBString(r, IdentifierMax)
}

func EncodeIdentifier(w wire.Writer, v string) error {
	return wire.EncodeBString(w, v, IdentifierMax)
}

func SizeIdentifier(v string) int { return wire.SizeBString(v) }

// IDSet is the protocol's tagged identifier set: either a single named
// tag (the server's "use this whole registry tag" shorthand) or an
// explicit, enumerated list of numeric registry ids. Exactly one of Tag
// or IDs is populated at a time.
type IDSet struct {
	Tag string  // non-empty iff this is the named-tag form
	IDs []int32 // populated iff this is the enumerated form
}

func DecodeIDSet(r wire.Reader) (IDSet, error) {
	n, err := wire.DecodeVarInt(r)
	if err != nil {
		return IDSet{}, fmt.Errorf("mctypes: idset length: %w", err)
	}
	if n < 0 {
		return IDSet{}, fmt.Errorf("mctypes: idset: %w (negative length %d)", protoerr.ErrMalformed, n)
	}
	if n == 0 {
		tag, err := DecodeIdentifier(r)
		if err != nil {
			return IDSet{}, err
		}
		return IDSet{Tag: tag}, nil
	}
	ids := make([]int32, n-1)
	for i := range ids {
		id, err := wire.DecodeVarInt(r)
		if err != nil {
			return IDSet{}, err
		}
		ids[i] = id
	}
	return IDSet{IDs: ids}, nil
}

func EncodeIDSet(w wire.Writer, v IDSet) error {
	if v.Tag != "" {
		if err := wire.EncodeVarInt(w, 0); err != nil {
			return err
		}
		return EncodeIdentifier(w, v.Tag)
	}
	if err := wire.EncodeVarInt(w, int32(len(v.IDs)+1)); err != nil {
		return err
	}
	for _, id := range v.IDs {
		if err := wire.EncodeVarInt(w, id); err != nil {
			return err
		}
	}
	return nil
}

func SizeIDSet(v IDSet) int {
	if v.Tag != "" {
		return wire.SizeVarInt(0) + SizeIdentifier(v.Tag)
	}
	total := wire.SizeVarInt(int32(len(v.IDs) + 1))
	for _, id := range v.IDs {
		total += wire.SizeVarInt(id)
	}
	return total
}
