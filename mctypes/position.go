package mctypes

import (
	"fmt"

	"github.com/mcclient/mcclient/internal/protoerr"
	"github.com/mcclient/mcclient/wire"
)

// Position packs three signed block coordinates into one 64-bit
// big-endian word: x occupies the top 26 bits, z the next 26, y the
// bottom 12 — x ‖ z ‖ y, most significant first.
type Position struct {
	X, Y, Z int32
}

const (
	xyzBits26Min = -(1 << 25)
	xyzBits26Max = (1 << 25) - 1
	yBits12Min   = -(1 << 11)
	yBits12Max   = (1 << 11) - 1
)

// NewPosition validates the coordinate ranges and builds a Position.
func NewPosition(x, y, z int32) (Position, error) {
	if x < xyzBits26Min || x > xyzBits26Max {
		return Position{}, fmt.Errorf("mctypes: position: %w (x=%d out of 26-bit range)", protoerr.ErrMalformed, x)
	}
	if z < xyzBits26Min || z > xyzBits26Max {
		return Position{}, fmt.Errorf("mctypes: position: %w (z=%d out of 26-bit range)", protoerr.ErrMalformed, z)
	}
	if y < yBits12Min || y > yBits12Max {
		return Position{}, fmt.Errorf("mctypes: position: %w (y=%d out of 12-bit range)", protoerr.ErrMalformed, y)
	}
	return Position{X: x, Y: y, Z: z}, nil
}

func (p Position) pack() uint64 {
	return (uint64(uint32(p.X))&0x3FFFFFF)<<38 |
		(uint64(uint32(p.Z))&0x3FFFFFF)<<12 |
		(uint64(uint32(p.Y)) & 0xFFF)
}

func unpackPosition(word uint64) Position {
	// Shift each field to the top of the 64-bit word, then arithmetic
	// shift back down, sign-extending it along the way.
	x := int64(word) >> 38
	z := int64(word<<26) >> 38
	y := int64(word<<52) >> 52
	return Position{X: int32(x), Y: int32(y), Z: int32(z)}
}

func DecodePosition(r wire.Reader) (Position, error) {
	word, err := wire.DecodeU64(r)
	if err != nil {
		return Position{}, err
	}
	return unpackPosition(word), nil
}

func EncodePosition(w wire.Writer, p Position) error {
	return wire.EncodeU64(w, p.pack())
}

func SizePosition(Position) int { return 8 }

// DecodeSelf/EncodeSelf/SizeSelf let Position sit as a field inside a
// schema-derived record.
func (p *Position) DecodeSelf(r wire.Reader) error {
	v, err := DecodePosition(r)
	if err != nil {
		return err
	}
	*p = v
	return nil
}
func (p *Position) EncodeSelf(w wire.Writer) error { return EncodePosition(w, *p) }
func (p *Position) SizeSelf() int                  { return SizePosition(*p) }
