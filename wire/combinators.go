package wire

import "fmt"

import "github.com/mcclient/mcclient/internal/protoerr"

// Optional wraps a value that is present or absent on the wire. Used
// both for the ordinary bool-prefixed Optional<T> primitive (via
// DecodeOptional/EncodeOptional) and as the required shape for any
// struct field carrying a schema presence predicate (see package
// schema) — a predicated field must be Optional[T], never a bare T.
type Optional[T any] struct {
	Valid bool
	Value T
}

// Some constructs a present Optional.
func Some[T any](v T) Optional[T] { return Optional[T]{Valid: true, Value: v} }

// None constructs an absent Optional.
func None[T any]() Optional[T] { return Optional[T]{} }

// DecodeOptional reads the one-byte presence prefix and, iff true,
// decodes the inner value with decodeElem.
func DecodeOptional[T any](r Reader, decodeElem func(Reader) (T, error)) (Optional[T], error) {
	present, err := DecodeBool(r)
	if err != nil {
		return Optional[T]{}, err
	}
	if !present {
		return Optional[T]{}, nil
	}
	v, err := decodeElem(r)
	if err != nil {
		return Optional[T]{}, err
	}
	return Optional[T]{Valid: true, Value: v}, nil
}

// EncodeOptional writes the presence byte, then the inner value iff
// present.
func EncodeOptional[T any](w Writer, v Optional[T], encodeElem func(Writer, T) error) error {
	if err := EncodeBool(w, v.Valid); err != nil {
		return err
	}
	if !v.Valid {
		return nil
	}
	return encodeElem(w, v.Value)
}

// SizeOptional returns the wire size of v: one presence byte, plus the
// element's size iff present.
func SizeOptional[T any](v Optional[T], sizeElem func(T) int) int {
	if !v.Valid {
		return 1
	}
	return 1 + sizeElem(v.Value)
}

// DecodeSequence reads a VarInt length prefix, rejects a negative
// count, then decodes that many elements with decodeElem.
func DecodeSequence[T any](r Reader, decodeElem func(Reader) (T, error)) ([]T, error) {
	count, err := DecodeVarInt(r)
	if err != nil {
		return nil, fmt.Errorf("wire: sequence length: %w", err)
	}
	if count < 0 {
		return nil, fmt.Errorf("wire: sequence: %w (negative length %d)", protoerr.ErrMalformed, count)
	}
	out := make([]T, 0, count)
	for i := int32(0); i < count; i++ {
		v, err := decodeElem(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// EncodeSequence writes the VarInt length prefix followed by each
// element in order.
func EncodeSequence[T any](w Writer, v []T, encodeElem func(Writer, T) error) error {
	if err := EncodeVarInt(w, int32(len(v))); err != nil {
		return err
	}
	for _, elem := range v {
		if err := encodeElem(w, elem); err != nil {
			return err
		}
	}
	return nil
}

// SizeSequence returns the wire size of v: the VarInt length prefix
// plus the sum of each element's size.
func SizeSequence[T any](v []T, sizeElem func(T) int) int {
	total := SizeVarInt(int32(len(v)))
	for _, elem := range v {
		total += sizeElem(elem)
	}
	return total
}

// DecodeArray reads exactly n elements with decodeElem, with no length
// prefix — the count is fixed by the schema, not the wire.
func DecodeArray[T any](r Reader, n int, decodeElem func(Reader) (T, error)) ([]T, error) {
	out := make([]T, n)
	for i := 0; i < n; i++ {
		v, err := decodeElem(r)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// EncodeArray writes each element in order with no length prefix. The
// caller is responsible for ensuring len(v) matches the schema's fixed
// count.
func EncodeArray[T any](w Writer, v []T, encodeElem func(Writer, T) error) error {
	for _, elem := range v {
		if err := encodeElem(w, elem); err != nil {
			return err
		}
	}
	return nil
}

// SizeArray returns the sum of each element's size; there is no prefix
// to account for.
func SizeArray[T any](v []T, sizeElem func(T) int) int {
	total := 0
	for _, elem := range v {
		total += sizeElem(elem)
	}
	return total
}
