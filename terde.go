// Package terde implements a binary object-serialization core: typed values
// and object graphs are encoded to and decoded from a self-describing,
// versioned byte stream. Every primitive and every composite object is
// preceded by a type tag (package [github.com/u1roh/terde-go/wire]) so that
// decoders can skip unknown fields for forward compatibility; every object
// carries a version number so that a newer decoder can reconstruct older
// encodings; and an object graph with shared nodes is serialized exactly
// once per node and reconstructed with sharing preserved, by package
// [github.com/u1roh/terde-go/dag].
//
// This package sits between the two: it defines the object-envelope
// protocol (version + content + terminator, with skip-to-end recovery) that
// both a plain nested value and a DAG node are built on top of.
//
// # Application-type contract
//
// A type participates in terde encoding by providing two things: a function
// that writes its body using a [*wire.Encoder], and a function that reads a
// value of that type given a [*wire.Decoder] and the version that was
// written. There is no interface to implement for the plain (non-shared)
// case — [WriteObject] and [ReadObject] take these as plain functions, which
// composes naturally with closures capturing a specific struct's fields.
package terde

import (
	"github.com/google/uuid"
	"github.com/u1roh/terde-go/wire"
)

// TypeKey is a 128-bit value that stably identifies a registered type. A
// type key is a property of the type, not of any particular value: every
// encoded instance of a type shares the same key, and the dag package's
// registry uses it to route an incoming frame to the right deserializer.
type TypeKey = wire.U128

// NewTypeKey generates a random type key suitable for hardcoding as a
// package-level constant. It is a development-time convenience, not part of
// the encode/decode hot path: call it once (e.g. from a throwaway test or a
// `go generate` step) when you add a new serializable type, then paste the
// resulting literal into your source so the key is stable across builds.
//
// The key is a version-4 UUID reinterpreted as a 128-bit integer, using
// github.com/google/uuid for the actual random generation rather than
// hand-rolling one from crypto/rand — a UUID is already exactly the right
// shape (16 random-ish bytes with good collision resistance) for a type key.
func NewTypeKey() TypeKey {
	id := uuid.New()
	return wire.U128FromUUIDBytes(id)
}

// Body is the shape of a type's serialize routine: it writes the type's
// fields (in declaration order, by convention) using w, returning any error
// encountered.
type Body func(w *wire.Encoder) error

// WriteObject writes the object envelope BEGIN · version · body · END.
// Version routing is entirely the caller's responsibility (WriteObject does
// not inspect version), and body is invoked between the version and the
// terminator.
func WriteObject(w *wire.Encoder, version uint16, body Body) error {
	if err := w.Begin(); err != nil {
		return err
	}
	if err := w.WriteU16(version); err != nil {
		return err
	}
	if err := body(w); err != nil {
		return err
	}
	return w.End()
}

// Deserialize is the shape of a type's deserialize routine: given a reader
// and the version the writer used, it produces a value of type T. A
// Deserialize implementation that does not recognize version should return
// [wire.ErrNotImplemented] (or an error wrapping it) rather than guessing at
// a layout.
type Deserialize[T any] func(r *wire.Decoder, version uint16) (T, error)

// ReadObject reads an object envelope: it asserts BEGIN, reads the version,
// invokes deserialize with that version, and then performs skip-to-end to
// discard any trailing fields the writer emitted that deserialize did not
// consume, before consuming the matching END.
//
// If deserialize reads more tags than were actually written for the object,
// the next tag read will not be the one it expects and a
// [wire.ErrTagMismatch] surfaces at that point — this is the expected
// failure mode for a backward-incompatible field removal.
func ReadObject[T any](r *wire.Decoder, deserialize Deserialize[T]) (T, error) {
	var zero T
	if err := r.Begin(); err != nil {
		return zero, err
	}
	version, err := r.ReadU16()
	if err != nil {
		return zero, err
	}
	val, err := deserialize(r, version)
	if err != nil {
		return zero, err
	}
	if err := r.End(); err != nil {
		return zero, err
	}
	return val, nil
}
