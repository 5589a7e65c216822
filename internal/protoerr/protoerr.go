// Package protoerr defines the sentinel error kinds used across the
// codec, framing, and connection layers, following the plain
// errors.New + fmt.Errorf("...: %w", err) wrapping style the teacher
// repo uses throughout (e.g. transport/pool.go, registry/etcd_registry.go)
// rather than a custom exception hierarchy.
package protoerr

import "errors"

// ErrIO marks a failure in the underlying transport (short read, write
// failure, closed connection). Always fatal to the connection.
var ErrIO = errors.New("protoerr: io error")

// ErrMalformed marks bytes that violate the wire format: an over-long
// VarInt, an invalid boolean byte, non-UTF-8 string bytes, an unknown
// tagged-union discriminant, a length prefix exceeding its declared
// maximum, or a negative length prefix. Always fatal to the current
// packet; no resynchronization within a packet is attempted.
var ErrMalformed = errors.New("protoerr: malformed bytes")

// ErrUnexpectedPacket marks a packet that is well-formed on the wire
// but illegal in the connection's current phase.
var ErrUnexpectedPacket = errors.New("protoerr: unexpected packet for phase")

// WrapIO normalizes an arbitrary transport error so errors.Is(err,
// ErrIO) succeeds, without discarding the original error for logging.
func WrapIO(err error) error {
	if err == nil {
		return nil
	}
	return &ioError{cause: err}
}

type ioError struct{ cause error }

func (e *ioError) Error() string { return ErrIO.Error() + ": " + e.cause.Error() }
func (e *ioError) Unwrap() []error {
	return []error{ErrIO, e.cause}
}
