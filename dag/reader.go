package dag

import (
	"io"

	terde "github.com/u1roh/terde-go"
	"github.com/u1roh/terde-go/wire"
)

// Deserialize is the shape of a DAG node type's deserialize routine: given a
// reader and the version the writer used, it produces a value of type T. It
// differs from [terde.Deserialize] only in taking a *Reader rather than a
// *wire.Decoder, so that it can call [ReadRef] to resolve dependencies by
// id as it reconstructs a node's fields.
type Deserialize[T any] func(r *Reader, version uint16) (T, error)

// Reader is the read side of a DAG stream: it wraps a [wire.Decoder] with
// the id table that [ReadRef] consults to resolve a reference to the
// already-decoded value it names.
type Reader struct {
	dec   *wire.Decoder
	table map[uint32]any
}

// The following primitive passthroughs let a [Deserialize] function read a
// node's own plain fields through the same Reader it uses for ReadRef.

// ReadU8 reads a tagged 8-bit unsigned integer.
func (r *Reader) ReadU8() (uint8, error) { return r.dec.ReadU8() }

// ReadU16 reads a tagged 16-bit unsigned integer.
func (r *Reader) ReadU16() (uint16, error) { return r.dec.ReadU16() }

// ReadU32 reads a tagged 32-bit unsigned integer.
func (r *Reader) ReadU32() (uint32, error) { return r.dec.ReadU32() }

// ReadU128 reads a tagged 128-bit unsigned integer.
func (r *Reader) ReadU128() (wire.U128, error) { return r.dec.ReadU128() }

// ReadRef reads a u32 id from the wire and resolves it against the reader's
// id table, downcasting the stored value to *T. A dangling id (one the
// reader has not yet decoded — the writer's post-order guarantee means this
// should never happen for a well-formed stream) or a T that does not match
// the value actually stored for that id both surface as [ErrObjNotFound].
func ReadRef[T any](r *Reader) (*T, error) {
	id, err := r.dec.ReadU32()
	if err != nil {
		return nil, err
	}
	v, ok := r.table[id]
	if !ok {
		return nil, ErrObjNotFound
	}
	t, ok := v.(*T)
	if !ok {
		return nil, ErrObjNotFound
	}
	return t, nil
}

// readObject reads the object envelope surrounding one frame's body, the
// DAG-aware analogue of [terde.ReadObject]: it differs only in handing
// deserialize a *Reader (so it can call ReadRef) instead of a *wire.Decoder.
func readObject[T any](r *Reader, deserialize Deserialize[T]) (T, error) {
	var zero T
	if err := r.dec.Begin(); err != nil {
		return zero, err
	}
	version, err := r.dec.ReadU16()
	if err != nil {
		return zero, err
	}
	val, err := deserialize(r, version)
	if err != nil {
		return zero, err
	}
	if err := r.dec.End(); err != nil {
		return zero, err
	}
	return val, nil
}

type deserializerFunc func(r *Reader) (any, error)

// Registry maps type keys to the deserializer registered for them. A
// Registry must have every type key that can appear in a stream registered
// before [Registry.ReadStream] is called on that stream; an unrecognized key
// surfaces as [ErrDeserializerNotFound].
type Registry struct {
	byKey map[terde.TypeKey]deserializerFunc
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byKey: map[terde.TypeKey]deserializerFunc{}}
}

// Register associates key with deserialize: any frame whose type key is key
// will be decoded by calling deserialize with that frame's version and a
// Reader positioned just past the version field.
func Register[T any](reg *Registry, key terde.TypeKey, deserialize Deserialize[T]) {
	reg.byKey[key] = func(r *Reader) (any, error) {
		val, err := readObject(r, deserialize)
		if err != nil {
			return nil, err
		}
		return &val, nil
	}
}

// ReadStream decodes every top-level frame from src in order, registering
// each one's value under its id as it goes so that later frames' references
// resolve, and returns every frame's decoded value in emission order,
// dependency frames included — the last element is the conventional "the"
// root for a stream written as a single [Writer.WriteObject] call. The wire
// format does not mark which frames were passed to WriteObject, so ReadStream
// does not separate roots from dependencies.
//
// ReadStream returns io.EOF if src contains no frames at all.
func (reg *Registry) ReadStream(src io.Reader) ([]any, error) {
	dec := wire.NewDecoder(src)
	r := &Reader{dec: dec, table: map[uint32]any{}}

	var roots []any
	for {
		atEOF, err := dec.AtEOF()
		if err != nil {
			return nil, err
		}
		if atEOF {
			break
		}

		if err := dec.Begin(); err != nil {
			return nil, err
		}
		id, err := dec.ReadU32()
		if err != nil {
			return nil, err
		}
		key, err := dec.ReadU128()
		if err != nil {
			return nil, err
		}
		des, ok := reg.byKey[key]
		if !ok {
			return nil, &FrameError{ID: id, TypeKey: key, Err: ErrDeserializerNotFound}
		}
		val, err := des(r)
		if err != nil {
			return nil, &FrameError{ID: id, TypeKey: key, Err: err}
		}
		if err := dec.End(); err != nil {
			return nil, &FrameError{ID: id, TypeKey: key, Err: err}
		}

		r.table[id] = val
		roots = append(roots, val)
	}
	if len(roots) == 0 {
		return nil, io.EOF
	}
	return roots, nil
}

// Root downcasts v (one of the values returned by [Registry.ReadStream]) to
// *T, reporting [ErrObjNotFound] on a mismatch.
func Root[T any](v any) (*T, error) {
	t, ok := v.(*T)
	if !ok {
		return nil, ErrObjNotFound
	}
	return t, nil
}
