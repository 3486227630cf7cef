package dag

import (
	"errors"
	"fmt"

	terde "github.com/u1roh/terde-go"
)

// ErrDeserializerNotFound is returned when a frame's type key has no
// registered deserializer.
var ErrDeserializerNotFound = errors.New("dag: deserializer not found")

// ErrObjNotFound is returned when a reference points to an id that the
// reader has not (yet) decoded — a dangling reference, or a type assertion
// mismatch between the requested T and the stored value.
var ErrObjNotFound = errors.New("dag: object not found")

// FrameError annotates an error encountered while decoding one top-level
// frame with the id and type key that frame announced, so a caller can tell
// which frame in the stream failed.
type FrameError struct {
	ID      uint32
	TypeKey terde.TypeKey
	Err     error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("dag: frame %d (type %s): %v", e.ID, e.TypeKey, e.Err)
}

func (e *FrameError) Unwrap() error { return e.Err }
